package ecs

import (
	"fmt"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/younwookim/xcore/internal/domain/entity"
	"github.com/younwookim/xcore/internal/infrastructure/logging"
)

var (
	bodies    = donburi.NewQuery(filter.Contains(Body))
	platforms = donburi.NewQuery(filter.Contains(Body, Platform))
)

// World keeps a donburi registry in step with the sprites of a stage: every
// entry owns one sprite and despawning an entry kills it.
type World struct {
	donburi.World
	Stage *entity.Stage

	log *logging.Logger
}

// NewWorld creates an empty registry over stage.
func NewWorld(stage *entity.Stage, log *logging.Logger) *World {
	if log == nil {
		log = logging.Nop()
	}
	return &World{
		World: donburi.NewWorld(),
		Stage: stage,
		log:   log,
	}
}

// Spawn adds a sprite to the stage and an entry for it carrying components.
func (w *World) Spawn(cfg entity.SpriteConfig, components ...donburi.IComponentType) (*donburi.Entry, error) {
	s, err := w.Stage.Spawn(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn %q: %w", cfg.Name, err)
	}
	e := w.Entry(w.Create(append([]donburi.IComponentType{Body}, components...)...))
	Body.SetValue(e, BodyData{Sprite: s})
	w.log.Debug("spawned", "name", cfg.Name, "id", s.ID(), "box", s.CollisionBox().String())
	return e, nil
}

// SpawnPlatform spawns a moving platform. The sprite never clips against the
// world and never falls; it starts at the first waypoint.
func (w *World) SpawnPlatform(cfg entity.SpriteConfig, path PlatformData) (*donburi.Entry, error) {
	if len(path.Waypoints) < 2 || path.Duration <= 0 {
		return nil, fmt.Errorf("failed to spawn platform %q: need two waypoints and a positive duration", cfg.Name)
	}
	cfg.Origin = path.Waypoints[0]
	cfg.NoClip, cfg.NoGravity, cfg.Static = true, true, true
	e, err := w.Spawn(cfg, Platform, PlatformTag)
	if err != nil {
		return nil, err
	}
	Platform.SetValue(e, path)
	return e, nil
}

// Despawn kills the entry's sprite and removes the entry.
func (w *World) Despawn(e *donburi.Entry) {
	if e == nil || !e.Valid() {
		return
	}
	if s := SpriteOf(e); s != nil {
		w.Stage.Kill(s)
		w.log.Debug("despawned", "name", s.Name(), "id", s.ID())
	}
	w.Remove(e.Entity())
}

// Sweep removes the entries whose sprite was killed directly on the stage.
func (w *World) Sweep() int {
	var dead []donburi.Entity
	bodies.Each(w.World, func(e *donburi.Entry) {
		if s := SpriteOf(e); s == nil || !s.Alive() {
			dead = append(dead, e.Entity())
		}
	})
	for _, id := range dead {
		w.Remove(id)
	}
	return len(dead)
}

// Count returns the number of entries owning a sprite.
func (w *World) Count() int {
	return bodies.Count(w.World)
}

// Player returns the sprite tagged as the player.
func (w *World) Player() (*entity.Sprite, bool) {
	e, ok := PlayerTag.First(w.World)
	if !ok {
		return nil, false
	}
	return SpriteOf(e), true
}

// SpriteOf returns the sprite owned by e, or nil.
func SpriteOf(e *donburi.Entry) *entity.Sprite {
	if !e.HasComponent(Body) {
		return nil
	}
	return Body.Get(e).Sprite
}
