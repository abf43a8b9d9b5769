package system

import (
	"github.com/younwookim/xcore/internal/ecs"
)

// PlatformSystem moves the tweened platforms. It runs before the physics so
// that riders walk and fall from where they were carried.
type PlatformSystem struct {
	world *ecs.World
	dt    float32
}

// NewPlatformSystem creates a platform system stepping framerate times a second.
func NewPlatformSystem(w *ecs.World, framerate int) *PlatformSystem {
	if framerate <= 0 {
		framerate = 60
	}
	return &PlatformSystem{world: w, dt: 1 / float32(framerate)}
}

// Update advances every platform by one frame.
func (s *PlatformSystem) Update() {
	ecs.UpdatePlatforms(s.world, s.dt)
}
