package collision

import (
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
)

// ComputeLandedState inspects the step just below the test box, split into a
// left and a right half. Flat ground under either half wins over a slope under
// the other; a slope alone only counts when it rises toward the other half.
// The result is FlagNone, or flags that block a downward move (BLOCK, SLOPE,
// TOP_LADDER). perfectlyLanded reports that the ground under the middle of
// the box is less than one step away.
func (c *Checker) ComputeLandedState() (flags world.CollisionFlags, perfectlyLanded bool) {
	flags = c.landedFlags()
	if !flags.CanBlockTheMove(geometry.DirDown) {
		return flags, false
	}

	tracer := c.sub(&c.tracer)
	tracer.SetupVector(c.testBox.BottomCenter(), Options{
		Ignore:       c.opts.Ignore,
		CheckWorld:   c.opts.CheckWorld,
		CheckSolids:  c.opts.CheckSolids,
		IgnoreSolids: c.opts.IgnoreSolids,
	})
	perfectlyLanded = tracer.TraceRay(geometry.DownVector, c.step) != world.FlagNone
	return flags, perfectlyLanded
}

func (c *Checker) landedFlags() world.CollisionFlags {
	box := c.testBox
	below := box.ClipTop(box.Height() - c.step).Translate(geometry.Vector{Y: c.step})

	left := c.sub(&c.left)
	right := c.sub(&c.right)
	opts := c.opts
	left.Setup(below.HalfLeft(), opts)
	right.Setup(below.HalfRight(), opts)

	lf := left.GetCollisionFlags()
	rf := right.GetCollisionFlags()
	lBlocks := lf.CanBlockTheMove(geometry.DirDown)
	rBlocks := rf.CanBlockTheMove(geometry.DirDown)

	if !lBlocks && !rBlocks {
		return world.FlagNone
	}

	switch {
	case !lf.IsSlope() && !rf.IsSlope():
		switch {
		case lBlocks && rBlocks:
			c.keepPlacements(left, right)
			return lf | rf
		case lBlocks:
			c.keepPlacements(left)
			return lf
		default:
			c.keepPlacements(right)
			return rf
		}

	case !lf.IsSlope():
		if lBlocks {
			c.keepPlacements(left)
			return lf
		}
		if right.SlopeTriangle().HCathetusSign() > 0 {
			c.keepPlacements(right)
			c.slopeTriangle = right.SlopeTriangle()
			return world.FlagSlope
		}
		return world.FlagNone

	case !rf.IsSlope():
		if rBlocks {
			c.keepPlacements(right)
			return rf
		}
		if left.SlopeTriangle().HCathetusSign() < 0 {
			c.keepPlacements(left)
			c.slopeTriangle = left.SlopeTriangle()
			return world.FlagSlope
		}
		return world.FlagNone
	}

	c.keepPlacements(left, right)
	c.slopeTriangle = left.SlopeTriangle()
	return lf | rf
}

func (c *Checker) keepPlacements(from ...*Checker) {
	if !c.opts.ComputePlacements {
		return
	}
	for _, sub := range from {
		c.placements = append(c.placements, sub.placements...)
	}
}

func (c *Checker) landed() bool {
	return c.landedFlags().CanBlockTheMove(geometry.DirDown)
}

// MoveContactFloor lowers the test box one step at a time, at most
// maxDistance, until it is landed. The box stays where the scan stopped.
func (c *Checker) MoveContactFloor(maxDistance fixed.Int52_12) bool {
	return c.scanDown(maxDistance, c.landed, false)
}

// TryMoveContactFloor is MoveContactFloor that restores the box on failure.
func (c *Checker) TryMoveContactFloor(maxDistance fixed.Int52_12) bool {
	return c.scanDown(maxDistance, c.landed, true)
}

// TryMoveContactSlope lowers the test box until it lands on a slope,
// restoring the box on failure.
func (c *Checker) TryMoveContactSlope(maxDistance fixed.Int52_12) bool {
	return c.scanDown(maxDistance, func() bool { return c.landedFlags().IsSlope() }, true)
}

func (c *Checker) scanDown(maxDistance fixed.Int52_12, done func() bool, restore bool) bool {
	if maxDistance <= 0 {
		return false
	}
	last := c.testBox
	down := geometry.Vector{Y: c.step}
	for distance := fixed.Int52_12(0); ; distance += c.step {
		if done() {
			return true
		}
		if distance+c.step > maxDistance {
			break
		}
		c.testBox = c.testBox.Translate(down)
	}
	if restore {
		c.testBox = last
	}
	return false
}

// AdjustOnTheFloor raises a landed test box, at most maxDistance, to the
// highest position where it is still landed. The box is restored when no such
// position exists within reach.
func (c *Checker) AdjustOnTheFloor(maxDistance fixed.Int52_12) bool {
	if maxDistance <= 0 || !c.landed() {
		return false
	}

	last := c.testBox
	up := geometry.Vector{Y: -c.step}
	for distance := fixed.Int52_12(0); distance <= maxDistance; distance += c.step {
		c.testBox = c.testBox.Translate(up)
		if !c.landed() {
			c.testBox = c.testBox.Translate(up.Neg())
			return true
		}
	}
	c.testBox = last
	return false
}
