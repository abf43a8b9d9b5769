package entity

import (
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/collider"
	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
)

// slopeReach is how far a walking sprite may snap up or down to stay on the ground.
const slopeReach = world.TileSize / 2 * collider.QueryMaxDistance

// Move displaces the sprite by delta, horizontal first when falling and
// vertical first when rising. Whatever it carries follows. It returns the
// displacement actually applied.
func (s *Sprite) Move(delta geometry.Vector) geometry.Vector {
	gravity := s.Gravity() != 0
	return s.apply(delta, gravity, nil, func() { s.resolve(delta, gravity) })
}

// MoveX walks the sprite horizontally, following slopes when it stands on one.
func (s *Sprite) MoveX(dx fixed.Int52_12) geometry.Vector {
	gravity := s.Gravity() != 0
	return s.apply(geometry.Vector{X: dx}, gravity, nil, func() { s.moveHorizontal(dx, gravity) })
}

// MoveY moves the sprite vertically, stopping on floors and ceilings.
func (s *Sprite) MoveY(dy fixed.Int52_12) geometry.Vector {
	return s.apply(geometry.Vector{Y: dy}, s.Gravity() != 0, nil, func() { s.moveY(dy) })
}

// MoveAlongSlope walks dx along slope, deriving the vertical part from the
// slope's cathetus ratio.
func (s *Sprite) MoveAlongSlope(slope geometry.RightTriangle, dx fixed.Int52_12) geometry.Vector {
	if slope.IsEmpty() {
		return s.MoveX(dx)
	}
	gravity := s.Gravity() != 0
	planned := geometry.Vector{X: dx, Y: slopeDY(slope, dx)}
	return s.apply(planned, gravity, nil, func() { s.moveAlongSlope(slope, dx, gravity) })
}

// apply runs resolve on the collider box, commits the result and carries the
// riders of a carrier by the accepted delta. carried holds the sprites already
// moved by this propagation.
func (s *Sprite) apply(planned geometry.Vector, gravity bool, carried map[*Sprite]struct{}, resolve func()) geometry.Vector {
	if !s.alive || planned.IsZero() {
		return geometry.NullVector
	}

	start := s.CollisionBox()
	c := s.collider
	c.SetBox(start)

	var riders, pushed []*Sprite
	if s.IsCarrier() {
		riders = s.stage.SpritesTouching(s, geometry.DirUp)
		if dir := geometry.HorizontalDirection(planned.X); dir != geometry.DirNone && s.pushes() {
			pushed = s.stage.SpritesTouching(s, dir)
		}
	}

	if s.NoClip {
		c.TranslateBy(planned)
	} else {
		resolve()
	}
	accepted := c.Box().LeftTop().Sub(start.LeftTop())
	s.commit(accepted)

	if accepted.IsZero() || len(riders)+len(pushed) == 0 {
		return accepted
	}
	if carried == nil {
		carried = make(map[*Sprite]struct{})
	}
	carried[s] = struct{}{}
	for _, r := range riders {
		s.carry(r, accepted, carried)
	}
	for _, p := range pushed {
		if accepted.X != 0 {
			s.carry(p, geometry.Vector{X: accepted.X}, carried)
		}
	}
	return accepted
}

// commit moves the origin by delta and refreshes the partition.
func (s *Sprite) commit(delta geometry.Vector) {
	if delta.IsZero() {
		return
	}
	s.origin = s.origin.Add(delta)
	if box := s.CollisionBox(); s.collider.Box() != box {
		s.collider.SetBox(box)
	}
	s.reindex()
}

// carry moves r by delta while r ignores the carrier s.
func (s *Sprite) carry(r *Sprite, delta geometry.Vector, carried map[*Sprite]struct{}) {
	if _, done := carried[r]; done || !r.alive || r.Static || r.NoClip {
		return
	}
	carried[r] = struct{}{}

	c := r.collider
	c.AddIgnoredSolid(s)
	r.apply(delta, false, carried, func() { r.resolve(delta, false) })
	c.ClearIgnoredSolids()
	c.SetBox(r.CollisionBox())
}

// resolve moves the collider box by delta against the world.
func (s *Sprite) resolve(delta geometry.Vector, gravity bool) {
	if delta.Y < 0 {
		s.moveY(delta.Y)
		s.moveHorizontal(delta.X, gravity)
		return
	}
	s.moveHorizontal(delta.X, gravity)
	s.moveY(delta.Y)
}

func (s *Sprite) moveHorizontal(dx fixed.Int52_12, gravity bool) {
	if dx == 0 {
		return
	}
	c := s.collider
	if !c.LandedOnSlope() {
		s.moveX(dx, gravity, true)
		return
	}
	slope := c.LandedSlope()
	if slope.HCathetusSign() == geometry.Sign(dx) && !gravity {
		// Going down a slope without gravity would leave the ground.
		s.moveX(dx, false, false)
		return
	}
	s.moveAlongSlope(slope, dx, gravity)
}

func slopeDY(slope geometry.RightTriangle, dx fixed.Int52_12) fixed.Int52_12 {
	dy := geometry.Abs(geometry.MulDiv(slope.VCathetus, dx, slope.HCathetus))
	if geometry.Sign(dx)*slope.HCathetusSign() < 0 {
		return -dy
	}
	return dy
}

func (s *Sprite) moveAlongSlope(slope geometry.RightTriangle, dx fixed.Int52_12, gravity bool) {
	c := s.collider
	masks := geometry.HorizontalDirection(dx)
	if geometry.Sign(dx) != slope.HCathetusSign() {
		masks |= geometry.DirUp
	}
	c.MoveContactSolid(geometry.Vector{X: dx, Y: slopeDY(slope, dx)}, geometry.Abs(dx), masks, world.FlagSlope)

	if gravity {
		c.MoveContactFloor(slopeReach, world.FlagNone)
	}
	if c.Landed() {
		c.AdjustOnTheFloor(collider.QueryMaxDistance, world.FlagNone)
	}
}

// sideProbe returns the side probe facing dx.
func sideProbe(p collider.Probes, dx fixed.Int52_12) geometry.Box {
	if dx > 0 {
		return p.Right
	}
	return p.Left
}

// crossesSlopeStart reports whether walking dx from x reaches the edge stx of
// the slope at which the sprite enters it.
func crossesSlopeStart(stxX, dx fixed.Int52_12) bool {
	return dx > 0 && stxX > 0 && stxX <= dx || dx < 0 && stxX < 0 && stxX >= dx
}

func (s *Sprite) moveX(dx fixed.Int52_12, gravity, followSlopes bool) {
	c := s.collider
	dir := geometry.HorizontalDirection(dx)

	lastBox := c.Box()
	wasLanded := c.Landed()
	wasLandedOnSlope := c.LandedOnSlope()
	lastSlope := c.LandedSlope()
	lastSide := sideProbe(c.Probes(), dx)

	c.TranslateBy(geometry.Vector{X: dx})
	if c.Landed() {
		c.AdjustOnTheFloor(slopeReach, world.FlagNone)
	} else if gravity && wasLanded {
		c.TryMoveContactSlope(slopeReach, world.FlagNone)
	}

	flags := c.FlagsIn(lastSide.Union(sideProbe(c.Probes(), dx)), world.FlagNone)

	// enterSlope walks flat up to the slope's entry edge and along the slope
	// for the rest.
	enterSlope := func() {
		slope := c.LandedSlope()
		stx := slope.Right()
		if dx > 0 {
			stx = slope.Left()
		}
		stxX := stx - lastBox.Center().X
		switch {
		case crossesSlopeStart(stxX, dx):
			c.SetBox(lastBox)
			if wasLandedOnSlope {
				s.moveAlongSlope(lastSlope, stxX, gravity)
			} else {
				c.TranslateBy(geometry.Vector{X: stxX})
			}
			s.moveAlongSlope(slope, dx-stxX, gravity)
		case wasLandedOnSlope:
			c.SetBox(lastBox)
			s.moveAlongSlope(lastSlope, dx, gravity)
		}
	}

	switch {
	case !flags.CanBlockTheMove(dir):
		if !gravity || !followSlopes || !wasLanded {
			return
		}
		if c.LandedOnSlope() {
			if c.LandedSlope().HCathetusSign() == geometry.Sign(dx) {
				enterSlope()
			} else if wasLandedOnSlope {
				c.SetBox(lastBox)
				s.moveAlongSlope(lastSlope, dx, gravity)
			}
		} else if c.FlagsIn(c.Probes().Down, world.FlagNone).IsSlope() {
			c.MoveContactFloor(collider.QueryMaxDistance, world.FlagNone)
		}

	case flags.IsSlope() && !flags.Any(world.FlagBlock):
		if c.LandedOnSlope() {
			enterSlope()
		} else if !wasLanded {
			s.contactSide(lastBox, dx)
		}

	default:
		s.contactSide(lastBox, dx)
	}
}

// contactSide puts the box back at lastBox and walks it toward dx until it touches.
func (s *Sprite) contactSide(lastBox geometry.Box, dx fixed.Int52_12) {
	c := s.collider
	c.SetBox(lastBox)
	dir, v := geometry.DirRight, geometry.RightVector
	if dx < 0 {
		dir, v = geometry.DirLeft, geometry.LeftVector
	}
	c.MoveContactSolid(v, geometry.I(geometry.Abs(dx).Ceil()), dir, world.FlagNone)
}

func (s *Sprite) moveY(dy fixed.Int52_12) {
	if dy == 0 {
		return
	}
	c := s.collider
	lastBox := c.Box()
	lastProbes := c.Probes()
	c.TranslateBy(geometry.Vector{Y: dy})

	if dy > 0 {
		union := lastProbes.Down.Union(c.Probes().Down)
		if c.FlagsIn(union, world.FlagNone).CanBlockTheMove(geometry.DirDown) {
			c.SetBox(lastBox)
			c.MoveContactFloor(geometry.I(dy.Ceil()), world.FlagNone)
		}
		return
	}
	union := lastProbes.Up.Union(c.Probes().Up)
	if c.FlagsIn(union, world.FlagNone).CanBlockTheMove(geometry.DirUp) {
		c.SetBox(lastBox)
		c.MoveContactSolid(geometry.Vector{Y: dy}, geometry.I((-dy).Ceil()), geometry.DirUp, world.FlagNone)
	}
}

// DoPhysics advances the sprite by one frame: gravity, velocity and the
// contact handlers of the contacts that started during the move.
func (s *Sprite) DoPhysics() {
	if !s.alive || s.Static {
		return
	}
	c := s.collider
	c.SetBox(s.CollisionBox())

	g := s.Gravity()
	landed := c.Landed()
	if !s.NoClip {
		switch {
		case landed:
			if s.Velocity.Y > 0 {
				s.Velocity.Y = 0
			}
		case g != 0:
			s.Velocity.Y = min(s.Velocity.Y+g, s.TerminalDownwardSpeed())
		}
		if c.BlockedUp() && s.Velocity.Y < 0 {
			s.Velocity.Y = 0
		}
		if !landed && g != 0 && s.Velocity.Y > g && s.Velocity.Y < 2*g {
			s.Velocity.Y = g
		}
	}

	if !s.Velocity.IsZero() {
		delta := s.Velocity
		s.apply(delta, g != 0, nil, func() { s.resolve(delta, g != 0) })
	}
	if !s.NoClip {
		s.fireContacts()
	}
}
