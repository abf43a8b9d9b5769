package geometry

import "fmt"

// Shape is anything the partition and the checkers can test against a box.
type Shape interface {
	WrappingBox() Box
	IntersectsBox(b Box) bool
}

// Probe is a shape the world can test against map boxes and slope triangles.
type Probe interface {
	Shape
	IntersectsTriangle(t RightTriangle) bool
}

// IntersectsTriangle reports whether the point lies in the closed triangle.
func (v Vector) IntersectsTriangle(t RightTriangle) bool {
	return t.Contains(v)
}

// IntersectsTriangle reports a positive-area overlap.
func (b Box) IntersectsTriangle(t RightTriangle) bool {
	return t.HasIntersectionWithBox(b)
}

// IntersectsTriangle reports whether the segment touches the closed triangle.
func (s LineSegment) IntersectsTriangle(t RightTriangle) bool {
	return t.HasIntersectionWithSegment(s)
}

// IntersectsTriangle reports a positive-area overlap.
func (p Parallelogram) IntersectsTriangle(t RightTriangle) bool {
	return p.HasIntersectionWithTriangle(t)
}

var (
	_ Probe = Vector{}
	_ Probe = Box{}
	_ Probe = LineSegment{}
	_ Probe = Parallelogram{}
	_ Probe = Sweep{}

	_ Shape = Vector{}
	_ Shape = Box{}
	_ Shape = LineSegment{}
	_ Shape = RightTriangle{}
	_ Shape = Parallelogram{}
	_ Shape = Sweep{}
)

// Sweep is the region covered by Box while it travels by Delta: the convex hull
// of the box at both ends, including the corner-cutting diagonal bands.
type Sweep struct {
	Box   Box
	Delta Vector
}

func NewSweep(b Box, delta Vector) Sweep {
	return Sweep{Box: b, Delta: delta}
}

func (s Sweep) points() []Vector {
	end := s.Box.Translate(s.Delta)
	return append(s.Box.Vertices(), end.Vertices()...)
}

func (s Sweep) axes() []Vector {
	axes := []Vector{RightVector, DownVector}
	if s.Delta.X != 0 && s.Delta.Y != 0 {
		axes = append(axes, Vector{X: -s.Delta.Y, Y: s.Delta.X})
	}
	return axes
}

// End returns the box at the end of the sweep.
func (s Sweep) End() Box {
	return s.Box.Translate(s.Delta)
}

func (s Sweep) WrappingBox() Box {
	return s.Box.Union(s.End())
}

// IntersectsBox reports a positive-area overlap with b.
func (s Sweep) IntersectsBox(b Box) bool {
	if !s.Box.IsValid() || !b.IsValid() {
		return false
	}
	return separatedNowhere(s.points(), b.Vertices(), s.axes())
}

// IntersectsTriangle reports a positive-area overlap with t.
func (s Sweep) IntersectsTriangle(t RightTriangle) bool {
	if !s.Box.IsValid() || t.IsEmpty() {
		return false
	}
	h := t.HypotenuseLine().Vector()
	axes := append(s.axes(), Vector{X: -h.Y, Y: h.X})
	return separatedNowhere(s.points(), t.Vertices(), axes)
}

// LeadingEdges returns the parallelograms swept by the two edges that face the
// motion. Either may be degenerate when the motion is axis aligned.
func (s Sweep) LeadingEdges() (horizontal, vertical Parallelogram) {
	b := s.Box
	y := b.Top()
	if s.Delta.Y > 0 {
		y = b.Bottom()
	}
	x := b.Left()
	if s.Delta.X > 0 {
		x = b.Right()
	}
	horizontal = HorizontalParallelogram(Vector{X: b.Left(), Y: y}, s.Delta, b.Width())
	vertical = VerticalParallelogram(Vector{X: x, Y: b.Top()}, s.Delta, b.Height())
	return horizontal, vertical
}

func (s Sweep) String() string {
	return fmt.Sprintf("%s+%s", s.Box, s.Delta)
}

// separatedNowhere projects both point sets on every axis and reports whether
// all projections overlap with positive length.
func separatedNowhere(a, b []Vector, axes []Vector) bool {
	for _, axis := range axes {
		aMin, aMax := project(a, axis)
		bMin, bMax := project(b, axis)
		if aMax <= bMin || bMax <= aMin {
			return false
		}
	}
	return true
}
