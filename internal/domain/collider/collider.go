// Package collider bundles the directional checkers a moving sprite consults
// every frame. A Collider caches its contact flags per box: every SetBox
// recomputes them.
package collider

import (
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/collision"
	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
)

// QueryMaxDistance is the default reach of the floor adjustments.
const QueryMaxDistance = geometry.One

// Options selects what a Collider tests against.
type Options struct {
	CheckWorld    bool
	CheckSolids   bool
	UsePlacements bool

	// Owner is never reported as an obstacle to its own collider.
	Owner collision.Solid
}

// DefaultOptions checks the world and the solid sprites.
func DefaultOptions() Options {
	return Options{CheckWorld: true, CheckSolids: true}
}

// Collider tracks one box and its contacts.
type Collider struct {
	env     collision.Env
	profile Profile
	opts    Options
	ignore  []collision.Solid

	box    geometry.Box
	probes Probes

	left, up, right, down, inner *collision.Checker
	scratch                      *collision.Checker

	leftFlags, upFlags, rightFlags, downFlags, innerFlags world.CollisionFlags

	landedSlope     geometry.RightTriangle
	perfectlyLanded bool
}

// New builds a collider with an arbitrary profile.
func New(env collision.Env, profile Profile, box geometry.Box, opts Options) *Collider {
	c := &Collider{
		env:     env,
		profile: profile,
		opts:    opts,
		left:    collision.NewChecker(env),
		up:      collision.NewChecker(env),
		right:   collision.NewChecker(env),
		down:    collision.NewChecker(env),
		inner:   collision.NewChecker(env),
		scratch: collision.NewChecker(env),
	}
	c.ClearIgnoredSolids()
	c.SetBox(box)
	return c
}

// NewSpriteCollider probes thin strips on each border.
func NewSpriteCollider(env collision.Env, box geometry.Box, headHeight, legsHeight fixed.Int52_12, opts Options) *Collider {
	return New(env, SpriteProfile{HeadHeight: headHeight, LegsHeight: legsHeight}, box, opts)
}

// NewWorldCollider probes head, chest and legs bands.
func NewWorldCollider(env collision.Env, box geometry.Box, headHeight, legsHeight fixed.Int52_12, opts Options) *Collider {
	return New(env, WorldProfile{HeadHeight: headHeight, LegsHeight: legsHeight}, box, opts)
}

func (c *Collider) Env() collision.Env { return c.env }

// SetEnv switches the layout and solids and recomputes the flags.
func (c *Collider) SetEnv(env collision.Env) {
	c.env = env
	for _, ch := range c.checkers() {
		ch.SetEnv(env)
	}
	c.update()
}

func (c *Collider) Profile() Profile { return c.profile }

// SetProfile changes how the box is split and recomputes the flags.
func (c *Collider) SetProfile(p Profile) {
	c.profile = p
	c.update()
}

func (c *Collider) Options() Options { return c.opts }

// SetOptions changes the query toggles and recomputes the flags.
func (c *Collider) SetOptions(opts Options) {
	c.opts = opts
	c.ClearIgnoredSolids()
	c.update()
}

// ClearIgnoredSolids forgets every ignored solid except the owner.
func (c *Collider) ClearIgnoredSolids() {
	c.ignore = c.ignore[:0]
	if c.opts.Owner != nil {
		c.ignore = append(c.ignore, c.opts.Owner)
	}
}

// AddIgnoredSolid excludes s from queries, starting with the next SetBox.
func (c *Collider) AddIgnoredSolid(s collision.Solid) {
	c.ignore = append(c.ignore, s)
}

func (c *Collider) IgnoredSolids() []collision.Solid { return c.ignore }

func (c *Collider) Box() geometry.Box { return c.box }

// SetBox moves the collider and recomputes every cached flag.
func (c *Collider) SetBox(b geometry.Box) {
	c.box = b
	c.update()
}

// TranslateBy moves the box by delta.
func (c *Collider) TranslateBy(delta geometry.Vector) {
	c.SetBox(c.box.Translate(delta))
}

// Probes returns the current probe boxes, after slope clipping.
func (c *Collider) Probes() Probes { return c.probes }

func (c *Collider) checkers() []*collision.Checker {
	return []*collision.Checker{c.left, c.up, c.right, c.down, c.inner, c.scratch}
}

func (c *Collider) checkerOptions() collision.Options {
	return collision.Options{
		CheckWorld:        c.opts.CheckWorld,
		CheckSolids:       c.opts.CheckSolids,
		ComputePlacements: c.opts.UsePlacements,
		IgnoreSolids:      c.ignore,
	}
}

func (c *Collider) update() {
	c.probes = c.profile.Probes(c.box)
	o := c.checkerOptions()

	c.down.Setup(c.probes.Down, o)
	c.up.Setup(c.probes.Up, o)
	c.inner.Setup(c.probes.Inner, o)

	c.downFlags, c.perfectlyLanded = c.down.ComputeLandedState()
	c.landedSlope = geometry.EmptyTriangle
	if c.LandedOnSlope() {
		c.landedSlope = c.down.SlopeTriangle()
		c.clipFromSlope(c.landedSlope)
	}

	c.left.Setup(c.probes.Left, o)
	c.right.Setup(c.probes.Right, o)

	c.upFlags = c.up.GetTouchingFlags(geometry.DirUp)
	c.leftFlags = c.touching(c.left, geometry.DirLeft)
	c.rightFlags = c.touching(c.right, geometry.DirRight)
	c.innerFlags = c.inner.GetCollisionFlags()
}

func (c *Collider) touching(ch *collision.Checker, dir geometry.Direction) world.CollisionFlags {
	if !ch.TestBox().IsValid() {
		return world.FlagNone
	}
	return ch.GetTouchingFlags(dir)
}

// clipFromSlope shortens the side probe facing uphill by the rise of the slope
// across the box, so standing on a slope never reads as touching a wall.
func (c *Collider) clipFromSlope(slope geometry.RightTriangle) {
	h := slope.HCathetus
	if h == 0 {
		return
	}
	rise := geometry.Abs(geometry.MulDiv(slope.VCathetus, c.box.Width()+c.down.StepSize(), h))
	if h > 0 {
		c.probes.Left = c.probes.Left.ClipBottom(rise)
	} else {
		c.probes.Right = c.probes.Right.ClipBottom(rise)
	}
}

func (c *Collider) LeftMaskFlags() world.CollisionFlags  { return c.leftFlags }
func (c *Collider) UpMaskFlags() world.CollisionFlags    { return c.upFlags }
func (c *Collider) RightMaskFlags() world.CollisionFlags { return c.rightFlags }
func (c *Collider) DownMaskFlags() world.CollisionFlags  { return c.downFlags }
func (c *Collider) InnerMaskFlags() world.CollisionFlags { return c.innerFlags }

func (c *Collider) BlockedLeft() bool  { return c.leftFlags.CanBlockTheMove(geometry.DirLeft) }
func (c *Collider) BlockedUp() bool    { return c.upFlags.CanBlockTheMove(geometry.DirUp) }
func (c *Collider) BlockedRight() bool { return c.rightFlags.CanBlockTheMove(geometry.DirRight) }

// LandedOnBlock covers spikes too, since they report BLOCK|SPIKE.
func (c *Collider) LandedOnBlock() bool { return c.downFlags&world.FlagBlock != 0 }

func (c *Collider) LandedOnSlope() bool {
	return !c.LandedOnBlock() && c.downFlags.IsSlope()
}

func (c *Collider) LandedOnTopLadder() bool {
	return !c.LandedOnBlock() && !c.downFlags.IsSlope() && c.downFlags&world.FlagTopLadder != 0
}

func (c *Collider) Landed() bool {
	return c.LandedOnBlock() || c.LandedOnSlope() || c.LandedOnTopLadder()
}

// LandedSlope is the slope under the box, or an empty triangle.
func (c *Collider) LandedSlope() geometry.RightTriangle { return c.landedSlope }

// PerfectlyLanded reports that the ground is less than one step below the middle of the box.
func (c *Collider) PerfectlyLanded() bool { return c.perfectlyLanded }

func (c *Collider) Underwater() bool { return c.innerFlags&world.FlagWater != 0 }

func (c *Collider) TouchingWaterSurface() bool { return c.innerFlags&world.FlagWaterSurface != 0 }

// FlagsIn tests an arbitrary box with this collider's options.
func (c *Collider) FlagsIn(box geometry.Box, ignore world.CollisionFlags) world.CollisionFlags {
	o := c.checkerOptions()
	o.ComputePlacements = false
	o.Ignore = ignore
	c.scratch.Setup(box, o)
	return c.scratch.GetCollisionFlags()
}

// Placements returns what the probe facing direction matched during the last
// update. DirNone selects the inner probe. Empty unless UsePlacements is set.
func (c *Collider) Placements(direction geometry.Direction) []world.CollisionPlacement {
	return c.checkerFor(direction).Placements()
}

func (c *Collider) checkerFor(direction geometry.Direction) *collision.Checker {
	switch {
	case direction&geometry.DirLeft != 0:
		return c.left
	case direction&geometry.DirRight != 0:
		return c.right
	case direction&geometry.DirUp != 0:
		return c.up
	case direction&geometry.DirDown != 0:
		return c.down
	}
	return c.inner
}

// IsTouchingLeft reports whether other lies within one step left of the left probe.
func (c *Collider) IsTouchingLeft(other geometry.Box) bool {
	return c.probes.Left.Extend(geometry.DirLeft, geometry.StepSize).Overlaps(other)
}

func (c *Collider) IsTouchingUp(other geometry.Box) bool {
	return c.probes.Up.Extend(geometry.DirUp, geometry.StepSize).Overlaps(other)
}

func (c *Collider) IsTouchingRight(other geometry.Box) bool {
	return c.probes.Right.Extend(geometry.DirRight, geometry.StepSize).Overlaps(other)
}

func (c *Collider) IsTouchingDown(other geometry.Box) bool {
	return c.probes.Down.Extend(geometry.DirDown, geometry.StepSize).Overlaps(other)
}
