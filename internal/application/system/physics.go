package system

import (
	"github.com/younwookim/xcore/internal/domain/entity"
	"github.com/younwookim/xcore/internal/ecs"
)

// PhysicsSystem handles the frame step with the Intent & Apply model: intents
// only touch velocities, Update does every move.
type PhysicsSystem struct {
	world *ecs.World
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(w *ecs.World) *PhysicsSystem {
	return &PhysicsSystem{world: w}
}

// Apply sets the velocity of target from intents.
func (s *PhysicsSystem) Apply(target *entity.Sprite, intents []Intent) {
	if target == nil || !target.Alive() {
		return
	}
	for _, in := range intents {
		switch in := in.(type) {
		case WalkIntent:
			target.Velocity.X = in.Speed
			if in.Speed > 0 {
				target.FacingRight = true
			} else if in.Speed < 0 {
				target.FacingRight = false
			}
		case JumpIntent:
			if target.Landed() {
				target.Velocity.Y = -in.Speed
			}
		case CutJumpIntent:
			if target.Velocity.Y < 0 {
				target.Velocity.Y = 0
			}
		}
	}
}

// Update runs one physics frame for every body and drops the killed ones.
func (s *PhysicsSystem) Update() {
	ecs.UpdatePhysics(s.world)
	s.world.Sweep()
}
