package ecs

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/entity"
	"github.com/younwookim/xcore/internal/domain/geometry"
)

// BodyData links an entry to its sprite on the stage.
type BodyData struct {
	Sprite *entity.Sprite
}

// PlatformData drives a sprite along its waypoints, forth and back, one
// eased tween per leg.
type PlatformData struct {
	Waypoints []geometry.Vector
	Duration  float32 // seconds per leg
	Easing    ease.TweenFunc

	leg     int
	reverse bool
	tween   *gween.Tween
}

var (
	Body     = donburi.NewComponentType[BodyData]()
	Platform = donburi.NewComponentType[PlatformData]()
)

// Tags
var (
	PlayerTag   = donburi.NewTag().SetName("Player")
	PropTag     = donburi.NewTag().SetName("Prop")
	PlatformTag = donburi.NewTag().SetName("Platform")
)

// Leg returns the waypoints of the current leg, in travel order.
func (p *PlatformData) Leg() (from, to geometry.Vector) {
	from, to = p.Waypoints[p.leg], p.Waypoints[p.leg+1]
	if p.reverse {
		from, to = to, from
	}
	return from, to
}

// Advance moves the tween by dt seconds and returns the origin the platform
// should be at. Time left over when a leg ends is dropped.
func (p *PlatformData) Advance(dt float32) geometry.Vector {
	if p.tween == nil {
		p.tween = gween.New(0, 1, p.Duration, p.easing())
	}
	t, done := p.tween.Update(dt)
	from, to := p.Leg()
	pos := geometry.Vector{X: lerp(from.X, to.X, t), Y: lerp(from.Y, to.Y, t)}
	if done {
		p.nextLeg()
		p.tween = gween.New(0, 1, p.Duration, p.easing())
	}
	return pos
}

func (p *PlatformData) easing() ease.TweenFunc {
	if p.Easing == nil {
		return ease.Linear
	}
	return p.Easing
}

func (p *PlatformData) nextLeg() {
	last := len(p.Waypoints) - 2
	switch {
	case !p.reverse && p.leg < last:
		p.leg++
	case !p.reverse:
		p.reverse = true
	case p.leg > 0:
		p.leg--
	default:
		p.reverse = false
	}
}

// progress quantizes the tween output to StepSize. Only that rounding sees
// floating point, so tiny float differences do not move a platform.
func progress(t float32) fixed.Int52_12 {
	steps := math.Round(float64(t) * float64(geometry.One/geometry.StepSize))
	return fixed.Int52_12(steps) * geometry.StepSize
}

// lerp interpolates on the sub-pixel grid so that platform moves stay
// aligned with every other sweep.
func lerp(a, b fixed.Int52_12, t float32) fixed.Int52_12 {
	return geometry.TruncFracPart(a + (b - a).Mul(progress(t)))
}
