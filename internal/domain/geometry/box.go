package geometry

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// Box is an axis-aligned rectangle. Min is inclusive and Max exclusive, so two
// boxes that only share an edge do not overlap.
type Box struct {
	fixed.Rectangle52_12
}

// NewBox builds a box from its left-top corner and size.
func NewBox(left, top, width, height fixed.Int52_12) Box {
	return Box{fixed.Rectangle52_12{
		Min: fixed.Point52_12{X: left, Y: top},
		Max: fixed.Point52_12{X: left + width, Y: top + height},
	}}
}

// BoxFromInts builds a box from integer pixel values.
func BoxFromInts(left, top, width, height int) Box {
	return NewBox(I(left), I(top), I(width), I(height))
}

// BoxFromCorners builds the normalized box spanning two corners.
func BoxFromCorners(a, b Vector) Box {
	return Box{fixed.Rectangle52_12{
		Min: fixed.Point52_12{X: Min(a.X, b.X), Y: Min(a.Y, b.Y)},
		Max: fixed.Point52_12{X: Max(a.X, b.X), Y: Max(a.Y, b.Y)},
	}}
}

func (b Box) Left() fixed.Int52_12   { return b.Min.X }
func (b Box) Top() fixed.Int52_12    { return b.Min.Y }
func (b Box) Right() fixed.Int52_12  { return b.Max.X }
func (b Box) Bottom() fixed.Int52_12 { return b.Max.Y }
func (b Box) Width() fixed.Int52_12  { return b.Max.X - b.Min.X }
func (b Box) Height() fixed.Int52_12 { return b.Max.Y - b.Min.Y }

func (b Box) LeftTop() Vector     { return Vector{X: b.Min.X, Y: b.Min.Y} }
func (b Box) RightTop() Vector    { return Vector{X: b.Max.X, Y: b.Min.Y} }
func (b Box) LeftBottom() Vector  { return Vector{X: b.Min.X, Y: b.Max.Y} }
func (b Box) RightBottom() Vector { return Vector{X: b.Max.X, Y: b.Max.Y} }

// Size returns (width, height).
func (b Box) Size() Vector {
	return Vector{X: b.Width(), Y: b.Height()}
}

// Center returns the middle point, truncated.
func (b Box) Center() Vector {
	return Vector{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// BottomCenter returns the middle of the bottom edge.
func (b Box) BottomCenter() Vector {
	return Vector{X: (b.Min.X + b.Max.X) / 2, Y: b.Max.Y}
}

// IsValid reports whether the box has positive area.
func (b Box) IsValid() bool {
	return !b.Empty()
}

// Translate moves the box by v.
func (b Box) Translate(v Vector) Box {
	return Box{b.Add(v.Point())}
}

// Intersection returns the overlap, or the zero box when there is none.
func (b Box) Intersection(o Box) Box {
	return Box{b.Intersect(o.Rectangle52_12)}
}

// Overlaps reports a positive-area intersection.
func (b Box) Overlaps(o Box) bool {
	return !b.Intersect(o.Rectangle52_12).Empty()
}

// Union returns the smallest box containing both.
func (b Box) Union(o Box) Box {
	return Box{b.Rectangle52_12.Union(o.Rectangle52_12)}
}

// ContainsPoint reports whether v is inside (min inclusive, max exclusive).
func (b Box) ContainsPoint(v Vector) bool {
	return v.Point().In(b.Rectangle52_12)
}

// ContainsPointClosed treats every border as inside.
func (b Box) ContainsPointClosed(v Vector) bool {
	return b.Min.X <= v.X && v.X <= b.Max.X && b.Min.Y <= v.Y && v.Y <= b.Max.Y
}

// ContainsBox reports whether o lies entirely inside b.
func (b Box) ContainsBox(o Box) bool {
	return o.In(b.Rectangle52_12)
}

// ClipTop removes n units from the top.
func (b Box) ClipTop(n fixed.Int52_12) Box {
	b.Min.Y += n
	return b
}

// ClipBottom removes n units from the bottom.
func (b Box) ClipBottom(n fixed.Int52_12) Box {
	b.Max.Y -= n
	return b
}

// ClipLeft removes n units from the left.
func (b Box) ClipLeft(n fixed.Int52_12) Box {
	b.Min.X += n
	return b
}

// ClipRight removes n units from the right.
func (b Box) ClipRight(n fixed.Int52_12) Box {
	b.Max.X -= n
	return b
}

// HalfLeft returns the left half.
func (b Box) HalfLeft() Box {
	b.Max.X = (b.Min.X + b.Max.X) / 2
	return b
}

// HalfRight returns the right half.
func (b Box) HalfRight() Box {
	b.Min.X = (b.Min.X + b.Max.X) / 2
	return b
}

// Extend grows the box by n toward every direction set in d.
func (b Box) Extend(d Direction, n fixed.Int52_12) Box {
	if d&DirLeft != 0 {
		b.Min.X -= n
	}
	if d&DirRight != 0 {
		b.Max.X += n
	}
	if d&DirUp != 0 {
		b.Min.Y -= n
	}
	if d&DirDown != 0 {
		b.Max.Y += n
	}
	return b
}

// Strip returns a band of thickness n along the given border, inside the box.
// SideInner or SideNone return the box itself.
func (b Box) Strip(side BoxSide, n fixed.Int52_12) Box {
	switch side {
	case SideLeft:
		b.Max.X = b.Min.X + n
	case SideTop:
		b.Max.Y = b.Min.Y + n
	case SideRight:
		b.Min.X = b.Max.X - n
	case SideBottom:
		b.Min.Y = b.Max.Y - n
	}
	return b
}

// TruncFracPart quantizes both corners to StepSize.
func (b Box) TruncFracPart() Box {
	b.Min.X = TruncFracPart(b.Min.X)
	b.Min.Y = TruncFracPart(b.Min.Y)
	b.Max.X = TruncFracPart(b.Max.X)
	b.Max.Y = TruncFracPart(b.Max.Y)
	return b
}

// Vertices returns the corners clockwise from the left-top.
func (b Box) Vertices() []Vector {
	return []Vector{b.LeftTop(), b.RightTop(), b.RightBottom(), b.LeftBottom()}
}

// WrappingBox returns the box itself.
func (b Box) WrappingBox() Box {
	return b
}

// IntersectsBox is Overlaps, satisfying Shape.
func (b Box) IntersectsBox(o Box) bool {
	return b.Overlaps(o)
}

func (b Box) String() string {
	return fmt.Sprintf("[%s, %s, %s, %s]", b.Min.X, b.Min.Y, b.Width(), b.Height())
}
