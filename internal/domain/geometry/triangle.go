package geometry

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// RightTriangle is an axis-aligned right triangle. Origin is the right-angle
// vertex; HCathetus and VCathetus are signed lengths along x and y. The
// hypotenuse is the walkable surface of a slope.
type RightTriangle struct {
	Origin    Vector
	HCathetus fixed.Int52_12
	VCathetus fixed.Int52_12
}

// EmptyTriangle has no area.
var EmptyTriangle = RightTriangle{}

func NewRightTriangle(origin Vector, hCathetus, vCathetus fixed.Int52_12) RightTriangle {
	return RightTriangle{Origin: origin, HCathetus: hCathetus, VCathetus: vCathetus}
}

// IsEmpty reports a degenerate triangle.
func (t RightTriangle) IsEmpty() bool {
	return t.HCathetus == 0 || t.VCathetus == 0
}

func (t RightTriangle) HCathetusSign() int { return Sign(t.HCathetus) }
func (t RightTriangle) VCathetusSign() int { return Sign(t.VCathetus) }

// HCathetusVertex is the end of the horizontal cathetus.
func (t RightTriangle) HCathetusVertex() Vector {
	return t.Origin.Add(Vector{X: t.HCathetus})
}

// VCathetusVertex is the end of the vertical cathetus.
func (t RightTriangle) VCathetusVertex() Vector {
	return t.Origin.Add(Vector{Y: t.VCathetus})
}

// HypotenuseLine joins the two cathetus ends.
func (t RightTriangle) HypotenuseLine() LineSegment {
	return LineSegment{Start: t.HCathetusVertex(), End: t.VCathetusVertex()}
}

func (t RightTriangle) HCathetusLine() LineSegment {
	return LineSegment{Start: t.Origin, End: t.HCathetusVertex()}
}

func (t RightTriangle) VCathetusLine() LineSegment {
	return LineSegment{Start: t.Origin, End: t.VCathetusVertex()}
}

func (t RightTriangle) Left() fixed.Int52_12   { return Min(t.Origin.X, t.Origin.X+t.HCathetus) }
func (t RightTriangle) Right() fixed.Int52_12  { return Max(t.Origin.X, t.Origin.X+t.HCathetus) }
func (t RightTriangle) Top() fixed.Int52_12    { return Min(t.Origin.Y, t.Origin.Y+t.VCathetus) }
func (t RightTriangle) Bottom() fixed.Int52_12 { return Max(t.Origin.Y, t.Origin.Y+t.VCathetus) }

// WrappingBox returns the bounding box.
func (t RightTriangle) WrappingBox() Box {
	return NewBox(t.Left(), t.Top(), Abs(t.HCathetus), Abs(t.VCathetus))
}

// Translate moves the triangle by v.
func (t RightTriangle) Translate(v Vector) RightTriangle {
	t.Origin = t.Origin.Add(v)
	return t
}

// Vertices returns origin and the two cathetus ends.
func (t RightTriangle) Vertices() []Vector {
	return []Vector{t.Origin, t.HCathetusVertex(), t.VCathetusVertex()}
}

// innerSide returns the value whose sign marks the origin's side of the hypotenuse.
func (t RightTriangle) innerSide(p Vector) int64 {
	h := t.HypotenuseLine()
	s := cross(h.Vector(), t.Origin.Sub(h.Start))
	v := cross(h.Vector(), p.Sub(h.Start))
	if s < 0 {
		return -v
	}
	return v
}

// Contains reports whether p lies in the closed triangle.
func (t RightTriangle) Contains(p Vector) bool {
	if t.IsEmpty() {
		return false
	}
	return t.WrappingBox().ContainsPointClosed(p) && t.innerSide(p) >= 0
}

// ContainsInterior reports whether p lies strictly inside the triangle.
func (t RightTriangle) ContainsInterior(p Vector) bool {
	if t.IsEmpty() {
		return false
	}
	b := t.WrappingBox()
	return b.Min.X < p.X && p.X < b.Max.X && b.Min.Y < p.Y && p.Y < b.Max.Y && t.innerSide(p) > 0
}

// HasIntersectionWithBox reports a positive-area overlap. A box resting exactly
// on the hypotenuse does not intersect.
func (t RightTriangle) HasIntersectionWithBox(b Box) bool {
	if t.IsEmpty() {
		return false
	}
	i := b.Intersection(t.WrappingBox())
	if !i.IsValid() {
		return false
	}
	for _, c := range i.Vertices() {
		if t.innerSide(c) > 0 {
			return true
		}
	}
	return false
}

// IntersectsBox satisfies Shape.
func (t RightTriangle) IntersectsBox(b Box) bool {
	return t.HasIntersectionWithBox(b)
}

// HasIntersectionWithSegment reports whether the segment touches the closed triangle.
func (t RightTriangle) HasIntersectionWithSegment(s LineSegment) bool {
	if t.IsEmpty() {
		return false
	}
	return t.Contains(s.Start) || t.Contains(s.End) ||
		t.HypotenuseLine().HasIntersectionWith(s) ||
		t.HCathetusLine().HasIntersectionWith(s) ||
		t.VCathetusLine().HasIntersectionWith(s)
}

// SurfaceY returns the y of the hypotenuse at x, with x clamped to the triangle.
func (t RightTriangle) SurfaceY(x fixed.Int52_12) fixed.Int52_12 {
	if t.IsEmpty() {
		return t.Origin.Y
	}
	x = Clamp(x, t.Left(), t.Right())
	// Along the hypotenuse y goes from Origin.Y at the HCathetus end to Origin.Y+V at Origin.X.
	end := t.Origin.X + t.HCathetus
	return t.Origin.Y + MulDiv(t.VCathetus, end-x, t.HCathetus)
}

func (t RightTriangle) String() string {
	return fmt.Sprintf("[%s : %s : %s]", t.Origin, t.HCathetus, t.VCathetus)
}
