package geometry

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// Parallelogram is the area swept by a box edge translated along a direction.
// Vertices are stored in order around the outline.
type Parallelogram struct {
	Origin    Vector
	Direction Vector
	vertices  [4]Vector
}

// HorizontalParallelogram sweeps the horizontal edge [origin, origin+(smallWidth, 0)] by direction.
func HorizontalParallelogram(origin, direction Vector, smallWidth fixed.Int52_12) Parallelogram {
	edge := Vector{X: smallWidth}
	return Parallelogram{
		Origin:    origin,
		Direction: direction,
		vertices:  [4]Vector{origin, origin.Add(edge), origin.Add(edge).Add(direction), origin.Add(direction)},
	}
}

// VerticalParallelogram sweeps the vertical edge [origin, origin+(0, smallHeight)] by direction.
func VerticalParallelogram(origin, direction Vector, smallHeight fixed.Int52_12) Parallelogram {
	edge := Vector{Y: smallHeight}
	return Parallelogram{
		Origin:    origin,
		Direction: direction,
		vertices:  [4]Vector{origin, origin.Add(direction), origin.Add(edge).Add(direction), origin.Add(edge)},
	}
}

// Vertices returns the four corners in outline order.
func (p Parallelogram) Vertices() []Vector {
	return p.vertices[:]
}

// Sides returns the four edges.
func (p Parallelogram) Sides() []LineSegment {
	s := make([]LineSegment, 4)
	for i := range p.vertices {
		s[i] = LineSegment{Start: p.vertices[i], End: p.vertices[(i+1)%4]}
	}
	return s
}

// IsDegenerate reports a parallelogram without area.
func (p Parallelogram) IsDegenerate() bool {
	return cross(p.vertices[1].Sub(p.vertices[0]), p.vertices[3].Sub(p.vertices[0])) == 0
}

func (p Parallelogram) WrappingBox() Box {
	b := BoxFromCorners(p.vertices[0], p.vertices[2])
	return b.Union(BoxFromCorners(p.vertices[1], p.vertices[3]))
}

// ContainsPoint reports whether v lies in the closed parallelogram.
func (p Parallelogram) ContainsPoint(v Vector) bool {
	if p.IsDegenerate() {
		for _, s := range p.Sides() {
			if s.ContainsPoint(v) {
				return true
			}
		}
		return false
	}
	sign := 0
	for i := range p.vertices {
		o := orientation(p.vertices[i], p.vertices[(i+1)%4], v)
		if o == 0 {
			continue
		}
		if sign == 0 {
			sign = o
		} else if o != sign {
			return false
		}
	}
	return true
}

// HasIntersectionWithBox reports a positive-area overlap with b.
func (p Parallelogram) HasIntersectionWithBox(b Box) bool {
	if p.IsDegenerate() || !b.IsValid() {
		return false
	}
	return overlapsConvex(p.vertices[:], b.Vertices())
}

// HasIntersectionWithTriangle reports a positive-area overlap with t.
func (p Parallelogram) HasIntersectionWithTriangle(t RightTriangle) bool {
	if p.IsDegenerate() || t.IsEmpty() {
		return false
	}
	return overlapsConvex(p.vertices[:], t.Vertices())
}

// IntersectsBox satisfies Shape.
func (p Parallelogram) IntersectsBox(b Box) bool {
	return p.HasIntersectionWithBox(b)
}

func (p Parallelogram) String() string {
	return fmt.Sprintf("<%s %s %s %s>", p.vertices[0], p.vertices[1], p.vertices[2], p.vertices[3])
}

// overlapsConvex runs a separating axis test on two convex polygons with
// positive area. Projections that only touch count as separated.
func overlapsConvex(a, b []Vector) bool {
	for _, poly := range [][]Vector{a, b} {
		for i := range poly {
			e := poly[(i+1)%len(poly)].Sub(poly[i])
			axis := Vector{X: -e.Y, Y: e.X}
			if axis.IsZero() {
				continue
			}
			aMin, aMax := project(a, axis)
			bMin, bMax := project(b, axis)
			if aMax <= bMin || bMax <= aMin {
				return false
			}
		}
	}
	return true
}

func project(poly []Vector, axis Vector) (lo, hi int64) {
	lo = dot(poly[0], axis)
	hi = lo
	for _, v := range poly[1:] {
		d := dot(v, axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}
