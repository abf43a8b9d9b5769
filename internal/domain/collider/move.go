package collider

import (
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/collision"
	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
)

// Sideways and upward contact moves pass through ladders and water. Falling
// still stops on a top ladder.
const (
	passThrough     = world.FlagLadder | world.FlagTopLadder | world.FlagWater | world.FlagWaterSurface
	passThroughDown = world.FlagLadder | world.FlagWater | world.FlagWaterSurface
)

func ignoreFor(direction geometry.Direction, ignore world.CollisionFlags) world.CollisionFlags {
	if direction == geometry.DirDown {
		return ignore | passThroughDown
	}
	return ignore | passThrough
}

// contact runs fn on ch and returns how far its test box travelled. The box is
// restored: the caller applies the delta through SetBox.
func contact(ch *collision.Checker, ignore world.CollisionFlags, fn func() world.CollisionFlags) (geometry.Vector, world.CollisionFlags) {
	last := ch.TestBox()
	saved := ch.Ignore()
	ch.SetIgnore(ignore)
	flags := fn()
	delta := ch.TestBox().LeftTop().Sub(last.LeftTop())
	ch.SetTestBox(last)
	ch.SetIgnore(saved)
	return delta, flags
}

// MoveContactSolid moves the box along dir, at most maxDistance along its
// dominant axis. The horizontal probe facing the move and the vertical one are
// swept separately and the shorter result wins. Directions missing from masks
// move freely.
func (c *Collider) MoveContactSolid(dir geometry.Vector, maxDistance fixed.Int52_12, masks geometry.Direction,
	ignore world.CollisionFlags) world.CollisionFlags {
	if dir.IsZero() || maxDistance <= 0 {
		return world.FlagNone
	}

	full := dir
	if d := dir.Dominant(); d > maxDistance {
		full = geometry.Vector{X: geometry.MulDiv(dir.X, maxDistance, d), Y: geometry.MulDiv(dir.Y, maxDistance, d)}
	}
	sweep := func(ch *collision.Checker, side geometry.Direction) (geometry.Vector, world.CollisionFlags) {
		if masks&side == 0 {
			return full, world.FlagNone
		}
		return contact(ch, ignoreFor(side, ignore), func() world.CollisionFlags {
			return ch.MoveContactSolid(dir, maxDistance, geometry.DirNone)
		})
	}

	delta1, delta2 := full, full
	var flags world.CollisionFlags
	var f world.CollisionFlags
	switch {
	case dir.X > 0:
		delta1, f = sweep(c.right, geometry.DirRight)
		flags |= f
	case dir.X < 0:
		delta1, f = sweep(c.left, geometry.DirLeft)
		flags |= f
	}
	switch {
	case dir.Y > 0:
		delta2, f = sweep(c.down, geometry.DirDown)
		flags |= f
	case dir.Y < 0:
		delta2, f = sweep(c.up, geometry.DirUp)
		flags |= f
	default:
		delta2 = delta1
	}

	delta := delta1
	if delta2.Dominant() < delta1.Dominant() {
		delta = delta2
	}
	if !delta.IsZero() {
		c.TranslateBy(delta)
	}
	return flags
}

// MoveContactSolidHorizontal moves the box by dx using the side probe facing the move.
func (c *Collider) MoveContactSolidHorizontal(dx fixed.Int52_12, masks geometry.Direction, ignore world.CollisionFlags) world.CollisionFlags {
	if dx == 0 {
		return world.FlagNone
	}
	side, ch := geometry.DirRight, c.right
	if dx < 0 {
		side, ch = geometry.DirLeft, c.left
	}
	if masks&side == 0 {
		c.TranslateBy(geometry.Vector{X: dx}.TruncFracPart())
		return world.FlagNone
	}
	delta, flags := contact(ch, ignoreFor(side, ignore), func() world.CollisionFlags {
		return ch.MoveContactSolidHorizontal(dx)
	})
	c.TranslateBy(delta.TruncFracPart())
	return flags
}

// MoveContactSolidVertical moves the box by dy using the head or the feet probe.
func (c *Collider) MoveContactSolidVertical(dy fixed.Int52_12, masks geometry.Direction, ignore world.CollisionFlags) world.CollisionFlags {
	if dy == 0 {
		return world.FlagNone
	}
	side, ch := geometry.DirDown, c.down
	if dy < 0 {
		side, ch = geometry.DirUp, c.up
	}
	if masks&side == 0 {
		c.TranslateBy(geometry.Vector{Y: dy}.TruncFracPart())
		return world.FlagNone
	}
	delta, flags := contact(ch, ignoreFor(side, ignore), func() world.CollisionFlags {
		return ch.MoveContactSolidVertical(dy)
	})
	c.TranslateBy(delta.TruncFracPart())
	return flags
}

// MoveContactSolidDiagonalHorizontal moves the box by delta, stopping at the
// first obstacle met by the side probe facing the horizontal part of the move.
func (c *Collider) MoveContactSolidDiagonalHorizontal(delta geometry.Vector, masks geometry.Direction,
	ignore world.CollisionFlags) world.CollisionFlags {
	if delta.X == 0 {
		return world.FlagNone
	}
	side, ch := geometry.DirRight, c.right
	if delta.X < 0 {
		side, ch = geometry.DirLeft, c.left
	}
	if masks&side == 0 {
		c.TranslateBy(delta.TruncFracPart())
		return world.FlagNone
	}
	moved, flags := contact(ch, ignoreFor(side, ignore), func() world.CollisionFlags {
		return ch.MoveContactSolidDiagonalHorizontal(delta)
	})
	c.TranslateBy(moved.TruncFracPart())
	return flags
}

// MoveContactFloor lowers the whole box, at most maxDistance, until it lands.
func (c *Collider) MoveContactFloor(maxDistance fixed.Int52_12, ignore world.CollisionFlags) bool {
	return c.scan(c.inner, ignore, true, func() bool { return c.inner.MoveContactFloor(maxDistance) })
}

// TryMoveContactFloor is MoveContactFloor that leaves the box alone on failure.
func (c *Collider) TryMoveContactFloor(maxDistance fixed.Int52_12, ignore world.CollisionFlags) bool {
	return c.scan(c.inner, ignore, false, func() bool { return c.inner.TryMoveContactFloor(maxDistance) })
}

// TryMoveContactSlope lowers the box onto a slope within maxDistance, or leaves it alone.
func (c *Collider) TryMoveContactSlope(maxDistance fixed.Int52_12, ignore world.CollisionFlags) bool {
	return c.scan(c.inner, ignore, false, func() bool { return c.inner.TryMoveContactSlope(maxDistance) })
}

// AdjustOnTheFloor raises a landed box to the top of the ground under it,
// within maxDistance.
func (c *Collider) AdjustOnTheFloor(maxDistance fixed.Int52_12, ignore world.CollisionFlags) bool {
	return c.scan(c.down, ignore, false, func() bool { return c.down.AdjustOnTheFloor(maxDistance) })
}

func (c *Collider) scan(ch *collision.Checker, ignore world.CollisionFlags, always bool, fn func() bool) bool {
	var ok bool
	delta, _ := contact(ch, ignore, func() world.CollisionFlags {
		ok = fn()
		return world.FlagNone
	})
	if (ok || always) && !delta.IsZero() {
		c.TranslateBy(delta)
	}
	return ok
}

// AdjustOnTheLadder centres the box horizontally on the ladder it touches:
// the top ladder under it when standing on one, else the ladder at its head.
// It needs UsePlacements.
func (c *Collider) AdjustOnTheLadder() bool {
	if !c.opts.UsePlacements {
		return false
	}
	ch, data := c.up, world.Ladder
	if c.LandedOnTopLadder() {
		ch, data = c.down, world.TopLadder
	}
	p, ok := ch.PlacementOf(data)
	if !ok {
		return false
	}
	dx := p.ObstacleBox.Left() - c.box.Left() + (world.MapSizeFixed-c.box.Width())/2
	dx = geometry.TruncFracPart(dx)
	if dx != 0 {
		c.TranslateBy(geometry.Vector{X: dx})
	}
	return true
}
