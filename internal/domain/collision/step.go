package collision

import (
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
)

// GetStepVectorHorizontal returns the displacement of one step along dir
// whose x component is exactly stepSize.
func GetStepVectorHorizontal(dir geometry.Vector, stepSize fixed.Int52_12) geometry.Vector {
	if v, ok := axisStep(dir, stepSize); ok {
		return v
	}
	return geometry.Vector{
		X: stepSize * fixed.Int52_12(geometry.Sign(dir.X)),
		Y: geometry.MulDiv(dir.Y, stepSize, geometry.Abs(dir.X)),
	}
}

// GetStepVectorVertical returns the displacement of one step along dir
// whose y component is exactly stepSize.
func GetStepVectorVertical(dir geometry.Vector, stepSize fixed.Int52_12) geometry.Vector {
	if v, ok := axisStep(dir, stepSize); ok {
		return v
	}
	return geometry.Vector{
		X: geometry.MulDiv(dir.X, stepSize, geometry.Abs(dir.Y)),
		Y: stepSize * fixed.Int52_12(geometry.Sign(dir.Y)),
	}
}

// GetStepVector steps along the dominant axis of dir.
func GetStepVector(dir geometry.Vector, stepSize fixed.Int52_12) geometry.Vector {
	if geometry.Abs(dir.X) > geometry.Abs(dir.Y) {
		return GetStepVectorHorizontal(dir, stepSize)
	}
	return GetStepVectorVertical(dir, stepSize)
}

func axisStep(dir geometry.Vector, stepSize fixed.Int52_12) (geometry.Vector, bool) {
	switch {
	case dir.X == 0:
		return geometry.Vector{Y: stepSize * fixed.Int52_12(geometry.Sign(dir.Y))}, true
	case dir.Y == 0:
		return geometry.Vector{X: stepSize * fixed.Int52_12(geometry.Sign(dir.X))}, true
	}
	return geometry.Vector{}, false
}

// MoveContactSolid advances the test box along dir one step at a time, at most
// maxDistance, and stops before the first step whose flags block the move
// toward direction. DirNone derives the direction from dir. It returns the
// flags that stopped the move, or FlagNone.
func (c *Checker) MoveContactSolid(dir geometry.Vector, maxDistance fixed.Int52_12, direction geometry.Direction) world.CollisionFlags {
	step := GetStepVector(dir, c.step)
	return c.moveContact(step, maxDistance, direction, dir)
}

// MoveContactSolidHorizontal moves the test box by dx, stopping at the first obstacle.
func (c *Checker) MoveContactSolidHorizontal(dx fixed.Int52_12) world.CollisionFlags {
	dir := geometry.Vector{X: dx}
	return c.moveContact(GetStepVector(dir, c.step), geometry.Abs(dx), geometry.HorizontalDirection(dx), dir)
}

// MoveContactSolidVertical moves the test box by dy, stopping at the first obstacle.
func (c *Checker) MoveContactSolidVertical(dy fixed.Int52_12) world.CollisionFlags {
	dir := geometry.Vector{Y: dy}
	return c.moveContact(GetStepVector(dir, c.step), geometry.Abs(dy), geometry.VerticalDirection(dy), dir)
}

// MoveContactSolidDiagonalHorizontal moves the test box by delta, stepping on
// x, and stops at the first obstacle blocking the horizontal part of the move.
// Candidate steps are found with the swept hull of the box so corners cut by
// the diagonal are never skipped.
func (c *Checker) MoveContactSolidDiagonalHorizontal(delta geometry.Vector) world.CollisionFlags {
	if delta.X == 0 {
		return world.FlagNone
	}
	step := GetStepVectorHorizontal(delta, c.step)
	return c.moveContact(step, geometry.Abs(delta.X), geometry.HorizontalDirection(delta.X), delta)
}

func (c *Checker) moveContact(step geometry.Vector, maxDistance fixed.Int52_12, direction geometry.Direction,
	dir geometry.Vector) world.CollisionFlags {
	if step.IsZero() || maxDistance < c.step {
		return world.FlagNone
	}
	if direction == geometry.DirNone {
		direction = dir.Direction()
	}

	start := c.testBox
	n := int(maxDistance / c.step)
	at := func(i int) geometry.Box {
		return start.Translate(step.ScaleInt(i).TruncFracPart())
	}

	for i := c.firstSweptBlock(start, step, n, direction); i <= n; i++ {
		if flags := c.flagsAt(at(i)); flags.CanBlockTheMove(direction) {
			c.testBox = at(i - 1)
			return flags
		}
	}
	c.testBox = at(n)
	return world.FlagNone
}

// firstSweptBlock returns the smallest i in [1, n] whose swept hull blocks, or
// n+1. No single step box can block before it, since every box up to step i
// lies inside hull i. Diagonal steps are quantized, so the hull is widened by
// one step across the motion to keep that true.
func (c *Checker) firstSweptBlock(start geometry.Box, step geometry.Vector, n int, direction geometry.Direction) int {
	if step.X != 0 && step.Y != 0 {
		if geometry.Abs(step.X) >= geometry.Abs(step.Y) {
			start = start.Extend(geometry.DirVertical, c.step)
		} else {
			start = start.Extend(geometry.DirHorizontal, c.step)
		}
	}
	blocks := func(i int) bool {
		sweep := geometry.NewSweep(start, step.ScaleInt(i).TruncFracPart())
		return c.collide(sweep, nil).CanBlockTheMove(direction)
	}

	if !blocks(n) {
		return n + 1
	}
	lo, hi := 1, n
	for lo < hi {
		mid := lo + (hi-lo)/2
		if blocks(mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// GetTouchingFlags returns the flags found one step away from the test box toward direction.
func (c *Checker) GetTouchingFlags(direction geometry.Direction) world.CollisionFlags {
	var dir geometry.Vector
	switch {
	case direction&geometry.DirLeft != 0:
		dir.X = -c.step
	case direction&geometry.DirRight != 0:
		dir.X = c.step
	}
	switch {
	case direction&geometry.DirUp != 0:
		dir.Y = -c.step
	case direction&geometry.DirDown != 0:
		dir.Y = c.step
	}

	box := c.testBox
	c.testBox = box.Translate(dir)
	flags := c.GetCollisionFlags()
	c.testBox = box
	return flags
}
