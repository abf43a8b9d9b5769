// Package collision answers "what does this shape touch" against the tile
// layout and the solid sprites, and resolves stepped moves against the answer.
//
// A Checker is long-lived: owners call one of the Setup methods before each
// logically new query and reuse the same value frame after frame.
package collision

import (
	"fmt"

	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
)

// Mode selects the shape a Checker tests.
type Mode uint8

const (
	ModePoint Mode = iota
	ModeBox
	ModeParallelogram
	ModeSweep
)

func (m Mode) String() string {
	switch m {
	case ModePoint:
		return "point"
	case ModeBox:
		return "box"
	case ModeParallelogram:
		return "parallelogram"
	case ModeSweep:
		return "sweep"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Solid is a dynamic obstacle that behaves like terrain.
type Solid interface {
	CollisionBox() geometry.Box
	CollisionData() world.CollisionData
}

// SolidSource finds the solids whose collision box intersects shape.
type SolidSource interface {
	QuerySolids(shape geometry.Shape, ignore []Solid) []Solid
}

// Env is the explicit context every query runs against. Either field may be nil.
type Env struct {
	Layout *world.Layout
	Solids SolidSource
}

// Options configures a query.
type Options struct {
	Ignore            world.CollisionFlags
	CheckWorld        bool
	CheckSolids       bool
	ComputePlacements bool
	IgnoreSolids      []Solid
}

// DefaultOptions checks the world and the solid sprites.
func DefaultOptions() Options {
	return Options{CheckWorld: true, CheckSolids: true}
}

// Checker tests one shape at a time. The zero value is not usable; use NewChecker.
type Checker struct {
	env  Env
	opts Options
	step fixed.Int52_12

	mode          Mode
	testVector    geometry.Vector
	testBox       geometry.Box
	parallelogram geometry.Parallelogram
	sweepDelta    geometry.Vector

	placements    []world.CollisionPlacement
	slopeTriangle geometry.RightTriangle

	nearestDistance      fixed.Int52_12
	nearestObstacleBox   geometry.Box
	nearestObstacleSlope geometry.RightTriangle

	left, right *Checker
	tracer      *Checker
}

// NewChecker creates a box-mode checker with the default options and step.
func NewChecker(env Env) *Checker {
	return &Checker{env: env, opts: DefaultOptions(), step: geometry.StepSize, mode: ModeBox}
}

func (c *Checker) Env() Env { return c.env }

// SetEnv swaps the layout and solid source of this checker and its helpers.
func (c *Checker) SetEnv(env Env) {
	c.env = env
	for _, sub := range []*Checker{c.left, c.right, c.tracer} {
		if sub != nil {
			sub.env = env
		}
	}
}

// StepSize is the resolution of every stepped scan.
func (c *Checker) StepSize() fixed.Int52_12 { return c.step }

// SetStepSize changes the scan resolution. Non-positive values restore the default.
func (c *Checker) SetStepSize(step fixed.Int52_12) {
	if step <= 0 {
		step = geometry.StepSize
	}
	c.step = step
}

func (c *Checker) reset(mode Mode, opts Options) {
	if opts.ComputePlacements {
		c.placements = c.placements[:0]
	}
	c.mode = mode
	c.opts = opts
	c.slopeTriangle = geometry.EmptyTriangle
}

// Setup prepares a box query.
func (c *Checker) Setup(box geometry.Box, opts Options) {
	c.reset(ModeBox, opts)
	c.testBox = box
}

// SetupVector prepares a point query.
func (c *Checker) SetupVector(v geometry.Vector, opts Options) {
	c.reset(ModePoint, opts)
	c.testVector = v
}

// SetupParallelogram prepares a query against a swept edge.
func (c *Checker) SetupParallelogram(p geometry.Parallelogram, opts Options) {
	c.reset(ModeParallelogram, opts)
	c.parallelogram = p
}

// SetupSweep prepares a query against the area box covers while moving by delta.
func (c *Checker) SetupSweep(box geometry.Box, delta geometry.Vector, opts Options) {
	c.reset(ModeSweep, opts)
	c.testBox = box
	c.sweepDelta = delta
}

func (c *Checker) Mode() Mode                                   { return c.mode }
func (c *Checker) Options() Options                             { return c.opts }
func (c *Checker) TestBox() geometry.Box                        { return c.testBox }
func (c *Checker) SetTestBox(b geometry.Box)                    { c.testBox = b }
func (c *Checker) TestVector() geometry.Vector                  { return c.testVector }
func (c *Checker) SetTestVector(v geometry.Vector)              { c.testVector = v }
func (c *Checker) Ignore() world.CollisionFlags                 { return c.opts.Ignore }
func (c *Checker) SetIgnore(f world.CollisionFlags)             { c.opts.Ignore = f }
func (c *Checker) SlopeTriangle() geometry.RightTriangle        { return c.slopeTriangle }
func (c *Checker) NearestDistance() fixed.Int52_12              { return c.nearestDistance }
func (c *Checker) NearestObstacleBox() geometry.Box             { return c.nearestObstacleBox }
func (c *Checker) NearestObstacleSlope() geometry.RightTriangle { return c.nearestObstacleSlope }

// Placements returns the matches recorded since the last Setup with
// ComputePlacements. The slice is reused by the next query.
func (c *Checker) Placements() []world.CollisionPlacement {
	return c.placements
}

// HasPlacement reports whether some recorded match carries data.
func (c *Checker) HasPlacement(data world.CollisionData) bool {
	_, ok := c.PlacementOf(data)
	return ok
}

// PlacementOf returns the first recorded match carrying data.
func (c *Checker) PlacementOf(data world.CollisionData) (world.CollisionPlacement, bool) {
	for _, p := range c.placements {
		if p.CollisionData == data {
			return p, true
		}
	}
	return world.CollisionPlacement{}, false
}

// HasOnlyPlacements reports whether there is at least one match and every match carries one of data.
func (c *Checker) HasOnlyPlacements(data ...world.CollisionData) bool {
	if len(c.placements) == 0 {
		return false
	}
	for _, p := range c.placements {
		found := false
		for _, d := range data {
			if p.CollisionData == d {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (c *Checker) probe() geometry.Probe {
	switch c.mode {
	case ModePoint:
		return c.testVector
	case ModeParallelogram:
		return c.parallelogram
	case ModeSweep:
		return geometry.NewSweep(c.testBox, c.sweepDelta)
	}
	return c.testBox
}

// GetCollisionFlags tests the current shape and returns the union of every
// matched flag. The last slope matched becomes SlopeTriangle.
func (c *Checker) GetCollisionFlags() world.CollisionFlags {
	return c.collide(c.probe(), c.placementSink())
}

func (c *Checker) placementSink() *[]world.CollisionPlacement {
	if c.opts.ComputePlacements {
		return &c.placements
	}
	return nil
}

func (c *Checker) collide(probe geometry.Probe, placements *[]world.CollisionPlacement) world.CollisionFlags {
	result := world.FlagNone

	if c.opts.CheckWorld && c.env.Layout != nil {
		flags, slope := c.env.Layout.Collide(probe, c.opts.Ignore, true, placements)
		result |= flags
		if !slope.IsEmpty() {
			c.slopeTriangle = slope
		}
	}

	if c.opts.CheckSolids && c.env.Solids != nil {
		for _, s := range c.env.Solids.QuerySolids(probe, c.opts.IgnoreSolids) {
			flags, slope := world.TestCollision(probe, s.CollisionData(), s.CollisionBox(), c.opts.Ignore, true, placements)
			result |= flags
			if !slope.IsEmpty() {
				c.slopeTriangle = slope
			}
		}
	}
	return result
}

// flagsAt tests box without touching the current shape.
func (c *Checker) flagsAt(box geometry.Box) world.CollisionFlags {
	return c.collide(box, nil)
}

// sub returns a helper checker sharing this checker's environment.
func (c *Checker) sub(p **Checker) *Checker {
	if *p == nil {
		*p = NewChecker(c.env)
	}
	(*p).step = c.step
	return *p
}
