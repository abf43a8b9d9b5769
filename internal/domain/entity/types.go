package entity

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/collider"
	"github.com/younwookim/xcore/internal/domain/collision"
	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/partition"
	"github.com/younwookim/xcore/internal/domain/world"
)

// ErrInvalidCollisionBox is returned when a sprite is spawned without a collision box.
var ErrInvalidCollisionBox = errors.New("collision box has no area")

// SpriteID is a unique identifier for a sprite within its stage
type SpriteID uint32

// partitionCellSize is the side of a partition cell in pixels.
const partitionCellSize = world.SceneSize / 4

// PhysicsSettings holds the per-frame constants of the sprite physics.
type PhysicsSettings struct {
	Gravity                         fixed.Int52_12
	UnderwaterGravity               fixed.Int52_12
	TerminalDownwardSpeed           fixed.Int52_12
	UnderwaterTerminalDownwardSpeed fixed.Int52_12
}

// DefaultPhysics returns the classic values: 0.25 px/frame² of gravity and a
// 5.75 px/frame fall, both roughly halved under water.
func DefaultPhysics() PhysicsSettings {
	return PhysicsSettings{
		Gravity:                         geometry.Frac(1, 4),
		UnderwaterGravity:               geometry.Frac(33, 256),
		TerminalDownwardSpeed:           geometry.Frac(23, 4),
		UnderwaterTerminalDownwardSpeed: geometry.Frac(737, 256),
	}
}

// Stage is the explicit context every sprite moves in: the static layout, the
// partition of the sprites and the physics constants.
type Stage struct {
	Layout  *world.Layout
	Physics PhysicsSettings

	partition *partition.Partition[*Sprite]
	sprites   []*Sprite
	nextID    SpriteID

	// Query buffers reused by QuerySolids.
	scratch []*Sprite
	exclude []*Sprite
	solids  []collision.Solid
}

// NewStage creates an empty stage over layout. A nil layout gets a single empty scene.
func NewStage(layout *world.Layout, physics PhysicsSettings) *Stage {
	if layout == nil {
		layout = world.NewLayout(1, 1)
	}
	st := &Stage{Layout: layout, Physics: physics}
	st.resetPartition()
	return st
}

func (st *Stage) resetPartition() {
	box := st.Layout.BoundingBox()
	rows := geometry.CeilDiv(box.Height(), geometry.I(partitionCellSize))
	cols := geometry.CeilDiv(box.Width(), geometry.I(partitionCellSize))
	st.partition = partition.New[*Sprite](box, rows, cols)
	for _, s := range st.sprites {
		st.partition.Insert(s, partition.AllKinds)
	}
}

// SetLayout swaps the level. Every sprite is re-indexed and its contacts recomputed.
func (st *Stage) SetLayout(layout *world.Layout) {
	st.Layout = layout
	st.resetPartition()
	env := st.env()
	for _, s := range st.sprites {
		s.collider.SetEnv(env)
		s.cacheContacts()
	}
}

// Partition exposes the sprite index for ad hoc queries.
func (st *Stage) Partition() *partition.Partition[*Sprite] { return st.partition }

func (st *Stage) env() collision.Env {
	return collision.Env{Layout: st.Layout, Solids: st}
}

// Spawn creates a sprite from cfg, indexes it and computes its initial contacts.
func (st *Stage) Spawn(cfg SpriteConfig) (*Sprite, error) {
	if !cfg.CollisionBox.IsValid() {
		return nil, fmt.Errorf("failed to spawn %q: %w", cfg.Name, ErrInvalidCollisionBox)
	}

	st.nextID++
	hitBox := cfg.HitBox
	if !hitBox.IsValid() {
		hitBox = cfg.CollisionBox
	}
	s := &Sprite{
		id:            st.nextID,
		name:          cfg.Name,
		stage:         st,
		alive:         true,
		origin:        cfg.Origin,
		collisionBox:  cfg.CollisionBox,
		hitBox:        hitBox,
		collisionData: cfg.CollisionData,
		FacingRight:   !cfg.FacingLeft,
		NoGravity:     cfg.NoGravity,
		NoClip:        cfg.NoClip,
		Static:        cfg.Static,
	}

	var profile collider.Profile = collider.SpriteProfile{HeadHeight: cfg.HeadHeight, LegsHeight: cfg.LegsHeight}
	if cfg.WorldProfile {
		profile = collider.WorldProfile{HeadHeight: cfg.HeadHeight, LegsHeight: cfg.LegsHeight}
	}
	s.collider = collider.New(st.env(), profile, s.CollisionBox(), collider.Options{
		CheckWorld:    true,
		CheckSolids:   true,
		UsePlacements: cfg.UsePlacements,
		Owner:         s,
	})

	st.sprites = append(st.sprites, s)
	st.partition.Insert(s, partition.AllKinds)
	s.cacheContacts()
	return s, nil
}

// Kill removes the sprite from the stage. Killing a dead sprite does nothing.
func (st *Stage) Kill(s *Sprite) {
	if s == nil || !s.alive || s.stage != st {
		return
	}
	s.alive = false
	st.partition.Remove(s, partition.AllKinds)
	if i := slices.Index(st.sprites, s); i >= 0 {
		st.sprites = slices.Delete(st.sprites, i, i+1)
	}
}

// Sprites returns the alive sprites in spawn order.
func (st *Stage) Sprites() []*Sprite {
	return slices.Clone(st.sprites)
}

// SpriteByID returns the alive sprite with the given id.
func (st *Stage) SpriteByID(id SpriteID) (*Sprite, bool) {
	for _, s := range st.sprites {
		if s.id == id {
			return s, true
		}
	}
	return nil, false
}

// Len returns the number of alive sprites.
func (st *Stage) Len() int { return len(st.sprites) }

// QuerySolids returns the sprites with collision data whose collision box
// intersects shape. It makes the stage the solid source of every collider.
// The result is only valid until the next call.
func (st *Stage) QuerySolids(shape geometry.Shape, ignore []collision.Solid) []collision.Solid {
	st.exclude = st.exclude[:0]
	for _, o := range ignore {
		if s, ok := o.(*Sprite); ok {
			st.exclude = append(st.exclude, s)
		}
	}

	st.scratch = st.partition.QueryInto(st.scratch[:0], shape, partition.CollisionBox, st.exclude...)
	st.solids = st.solids[:0]
	for _, s := range st.scratch {
		if s.collisionData != world.CollisionNone {
			st.solids = append(st.solids, s)
		}
	}
	return st.solids
}

// SpritesTouching returns the sprites in contact with the side of s given by
// side: DirUp finds whoever stands on it, DirLeft and DirRight whoever leans
// on that side, DirDown whoever it stands on.
func (st *Stage) SpritesTouching(s *Sprite, side geometry.Direction) []*Sprite {
	box := s.CollisionBox()
	var touching []*Sprite
	for _, o := range st.partition.Query(box.Extend(side, geometry.StepSize), partition.CollisionBox, s) {
		c := o.collider
		var hit bool
		switch side {
		case geometry.DirUp:
			hit = c.IsTouchingDown(box)
		case geometry.DirDown:
			hit = c.IsTouchingUp(box)
		case geometry.DirLeft:
			hit = c.IsTouchingRight(box)
		case geometry.DirRight:
			hit = c.IsTouchingLeft(box)
		}
		if hit {
			touching = append(touching, o)
		}
	}
	return touching
}

// DoPhysics advances every sprite by one frame in spawn order.
func (st *Stage) DoPhysics() {
	for _, s := range st.Sprites() {
		s.DoPhysics()
	}
}
