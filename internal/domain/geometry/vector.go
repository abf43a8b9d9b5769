package geometry

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// Vector is a fixed-point 2D vector. Y grows downward.
type Vector struct {
	X, Y fixed.Int52_12
}

var (
	NullVector  = Vector{}
	LeftVector  = Vector{X: -One}
	UpVector    = Vector{Y: -One}
	RightVector = Vector{X: One}
	DownVector  = Vector{Y: One}

	StepLeftVector  = Vector{X: -StepSize}
	StepUpVector    = Vector{Y: -StepSize}
	StepRightVector = Vector{X: StepSize}
	StepDownVector  = Vector{Y: StepSize}
)

// Vec builds a vector from integer pixel coordinates.
func Vec(x, y int) Vector {
	return Vector{X: I(x), Y: I(y)}
}

// FromPoint converts a fixed.Point52_12.
func FromPoint(p fixed.Point52_12) Vector {
	return Vector{X: p.X, Y: p.Y}
}

// Point converts to fixed.Point52_12.
func (v Vector) Point() fixed.Point52_12 {
	return fixed.Point52_12{X: v.X, Y: v.Y}
}

func (v Vector) Add(o Vector) Vector {
	return FromPoint(v.Point().Add(o.Point()))
}

func (v Vector) Sub(o Vector) Vector {
	return FromPoint(v.Point().Sub(o.Point()))
}

func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Scale multiplies both components by k.
func (v Vector) Scale(k fixed.Int52_12) Vector {
	return Vector{X: v.X.Mul(k), Y: v.Y.Mul(k)}
}

// ScaleInt multiplies both components by an integer.
func (v Vector) ScaleInt(n int) Vector {
	return Vector{X: v.X * fixed.Int52_12(n), Y: v.Y * fixed.Int52_12(n)}
}

// TruncFracPart quantizes both components to StepSize.
func (v Vector) TruncFracPart() Vector {
	return Vector{X: TruncFracPart(v.X), Y: TruncFracPart(v.Y)}
}

func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Dominant returns the larger absolute component.
func (v Vector) Dominant() fixed.Int52_12 {
	return Max(Abs(v.X), Abs(v.Y))
}

// Direction returns the direction mask of the vector's signs.
func (v Vector) Direction() Direction {
	return HorizontalDirection(v.X) | VerticalDirection(v.Y)
}

func (v Vector) String() string {
	return fmt.Sprintf("(%s, %s)", v.X, v.Y)
}

// cross returns the z component of a×b in raw squared units.
func cross(a, b Vector) int64 {
	return int64(a.X)*int64(b.Y) - int64(a.Y)*int64(b.X)
}

// dot returns a·b in raw squared units.
func dot(a, b Vector) int64 {
	return int64(a.X)*int64(b.X) + int64(a.Y)*int64(b.Y)
}

// WrappingBox returns the degenerate box at the point.
func (v Vector) WrappingBox() Box {
	return NewBox(v.X, v.Y, 0, 0)
}

// IntersectsBox reports whether the point lies inside b (min inclusive, max exclusive).
func (v Vector) IntersectsBox(b Box) bool {
	return b.ContainsPoint(v)
}
