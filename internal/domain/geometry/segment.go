package geometry

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// LineSegment is the closed segment between Start and End.
type LineSegment struct {
	Start, End Vector
}

// Segment builds a segment.
func Segment(start, end Vector) LineSegment {
	return LineSegment{Start: start, End: end}
}

// Vector returns End - Start.
func (s LineSegment) Vector() Vector {
	return s.End.Sub(s.Start)
}

// IsPoint reports a zero-length segment.
func (s LineSegment) IsPoint() bool {
	return s.Start == s.End
}

// WrappingBox returns the (possibly degenerate) box spanned by the endpoints.
func (s LineSegment) WrappingBox() Box {
	return BoxFromCorners(s.Start, s.End)
}

func orientation(a, b, c Vector) int {
	v := cross(b.Sub(a), c.Sub(a))
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func onSegmentBox(a, b, p Vector) bool {
	return Min(a.X, b.X) <= p.X && p.X <= Max(a.X, b.X) &&
		Min(a.Y, b.Y) <= p.Y && p.Y <= Max(a.Y, b.Y)
}

// ContainsPoint reports whether p lies on the segment.
func (s LineSegment) ContainsPoint(p Vector) bool {
	return orientation(s.Start, s.End, p) == 0 && onSegmentBox(s.Start, s.End, p)
}

// HasIntersectionWith reports whether the two closed segments share a point.
func (s LineSegment) HasIntersectionWith(o LineSegment) bool {
	o1 := orientation(s.Start, s.End, o.Start)
	o2 := orientation(s.Start, s.End, o.End)
	o3 := orientation(o.Start, o.End, s.Start)
	o4 := orientation(o.Start, o.End, s.End)

	if o1 != o2 && o3 != o4 {
		return true
	}
	return o1 == 0 && onSegmentBox(s.Start, s.End, o.Start) ||
		o2 == 0 && onSegmentBox(s.Start, s.End, o.End) ||
		o3 == 0 && onSegmentBox(o.Start, o.End, s.Start) ||
		o4 == 0 && onSegmentBox(o.Start, o.End, s.End)
}

// Param is a position along a segment expressed as Num/Den, 0 at Start and 1 at End.
type Param struct {
	Num, Den int64
}

// Less compares two params exactly.
func (p Param) Less(o Param) bool {
	return cmpProducts(p.Num, o.Den, o.Num, p.Den) < 0
}

// At returns the point at parameter p.
func (s LineSegment) At(p Param) Vector {
	if p.Den == 0 {
		return s.Start
	}
	d := s.Vector()
	return Vector{
		X: s.Start.X + fixed.Int52_12(mulDiv(int64(d.X), p.Num, p.Den)),
		Y: s.Start.Y + fixed.Int52_12(mulDiv(int64(d.Y), p.Num, p.Den)),
	}
}

// IntersectionParam returns the smallest parameter along s at which it meets o.
func (s LineSegment) IntersectionParam(o LineSegment) (Param, bool) {
	if !s.HasIntersectionWith(o) {
		return Param{}, false
	}
	r := s.Vector()
	q := o.Vector()
	den := cross(r, q)
	if den != 0 {
		num := cross(o.Start.Sub(s.Start), q)
		if den < 0 {
			num, den = -num, -den
		}
		return Param{Num: num, Den: den}, true
	}

	// Collinear overlap: the first point of o (or s.Start itself) met along s.
	rr := dot(r, r)
	if rr == 0 {
		return Param{Num: 0, Den: 1}, true
	}
	best := Param{Num: 1, Den: 1}
	found := false
	for _, p := range []Vector{o.Start, o.End} {
		t := Param{Num: dot(p.Sub(s.Start), r), Den: rr}
		if t.Num >= 0 && t.Num <= t.Den && (!found || t.Less(best)) {
			best, found = t, true
		}
	}
	if o.ContainsPoint(s.Start) {
		return Param{Num: 0, Den: 1}, true
	}
	return best, found
}

// ClipParam returns the parameter at which the segment enters the closed box.
func (s LineSegment) ClipParam(b Box) (Param, bool) {
	enter, _, ok := s.ClipRange(b)
	return enter, ok
}

// ClipRange returns the parameters at which the segment enters and leaves the
// closed box, using Liang-Barsky clipping with exact rational arithmetic.
func (s LineSegment) ClipRange(b Box) (enter, exit Param, ok bool) {
	d := s.Vector()
	enter = Param{Num: 0, Den: 1}
	exit = Param{Num: 1, Den: 1}

	clip := func(p, q int64) bool {
		// Constraint p*t <= q.
		if p == 0 {
			return q >= 0
		}
		t := Param{Num: q, Den: p}
		if p < 0 {
			t = Param{Num: -q, Den: -p}
			if exit.Less(t) {
				return false
			}
			if enter.Less(t) {
				enter = t
			}
			return true
		}
		if t.Less(enter) {
			return false
		}
		if t.Less(exit) {
			exit = t
		}
		return true
	}

	if !clip(-int64(d.X), int64(s.Start.X-b.Left())) ||
		!clip(int64(d.X), int64(b.Right()-s.Start.X)) ||
		!clip(-int64(d.Y), int64(s.Start.Y-b.Top())) ||
		!clip(int64(d.Y), int64(b.Bottom()-s.Start.Y)) {
		return Param{}, Param{}, false
	}
	if exit.Less(enter) {
		return Param{}, Param{}, false
	}
	return enter, exit, true
}

// IntersectsBox reports whether the segment touches the closed box.
func (s LineSegment) IntersectsBox(b Box) bool {
	_, ok := s.ClipParam(b)
	return ok
}

func (s LineSegment) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
