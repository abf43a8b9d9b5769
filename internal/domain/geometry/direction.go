package geometry

import (
	"strings"

	"golang.org/x/image/math/fixed"
)

// Direction is a bitmask of the four movement directions.
type Direction uint8

const (
	DirNone  Direction = 0
	DirLeft  Direction = 1 << 0
	DirUp    Direction = 1 << 1
	DirRight Direction = 1 << 2
	DirDown  Direction = 1 << 3

	DirHorizontal = DirLeft | DirRight
	DirVertical   = DirUp | DirDown
	DirAll        = DirHorizontal | DirVertical
)

// HorizontalDirection maps the sign of dx to DirLeft, DirRight or DirNone.
func HorizontalDirection(dx fixed.Int52_12) Direction {
	switch {
	case dx < 0:
		return DirLeft
	case dx > 0:
		return DirRight
	}
	return DirNone
}

// VerticalDirection maps the sign of dy to DirUp, DirDown or DirNone.
func VerticalDirection(dy fixed.Int52_12) Direction {
	switch {
	case dy < 0:
		return DirUp
	case dy > 0:
		return DirDown
	}
	return DirNone
}

// Has reports whether every bit of o is set in d.
func (d Direction) Has(o Direction) bool {
	return d&o == o && o != 0
}

// Opposite mirrors every set direction.
func (d Direction) Opposite() Direction {
	var r Direction
	if d&DirLeft != 0 {
		r |= DirRight
	}
	if d&DirRight != 0 {
		r |= DirLeft
	}
	if d&DirUp != 0 {
		r |= DirDown
	}
	if d&DirDown != 0 {
		r |= DirUp
	}
	return r
}

// StepVector returns the StepSize displacement for the set directions.
func (d Direction) StepVector() Vector {
	var v Vector
	if d&DirLeft != 0 {
		v.X -= StepSize
	}
	if d&DirRight != 0 {
		v.X += StepSize
	}
	if d&DirUp != 0 {
		v.Y -= StepSize
	}
	if d&DirDown != 0 {
		v.Y += StepSize
	}
	return v
}

func (d Direction) String() string {
	if d == DirNone {
		return "NONE"
	}
	var parts []string
	for _, e := range []struct {
		bit  Direction
		name string
	}{{DirLeft, "LEFT"}, {DirUp, "UP"}, {DirRight, "RIGHT"}, {DirDown, "DOWN"}} {
		if d&e.bit != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// BoxSide selects a border of a box, or its interior.
type BoxSide uint8

const (
	SideNone   BoxSide = 0
	SideLeft   BoxSide = 1 << 0
	SideTop    BoxSide = 1 << 1
	SideRight  BoxSide = 1 << 2
	SideBottom BoxSide = 1 << 3
	SideInner  BoxSide = 1 << 4

	SideBorders = SideLeft | SideTop | SideRight | SideBottom
	SideAll     = SideBorders | SideInner
)
