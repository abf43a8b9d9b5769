package ecs

import (
	"github.com/yohamta/donburi"
)

// UpdatePlatforms advances every platform by dt seconds. Platforms move
// before the other bodies so that riders fall and walk from where they were
// carried.
func UpdatePlatforms(w *World, dt float32) {
	platforms.Each(w.World, func(e *donburi.Entry) {
		s := SpriteOf(e)
		if s == nil || !s.Alive() {
			return
		}
		target := Platform.Get(e).Advance(dt)
		if delta := target.Sub(s.Origin()); !delta.IsZero() {
			s.Move(delta)
		}
	})
}

// UpdatePhysics runs one physics frame for every live body.
func UpdatePhysics(w *World) {
	bodies.Each(w.World, func(e *donburi.Entry) {
		if s := SpriteOf(e); s != nil && s.Alive() {
			s.DoPhysics()
		}
	})
}

// Update runs one frame: platforms, physics, then the removal of killed sprites.
func Update(w *World, dt float32) {
	UpdatePlatforms(w, dt)
	UpdatePhysics(w)
	w.Sweep()
}
