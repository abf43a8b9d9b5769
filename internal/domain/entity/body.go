package entity

import (
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/collider"
	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/partition"
	"github.com/younwookim/xcore/internal/domain/world"
)

// SpriteConfig describes a sprite to spawn. Boxes are relative to Origin.
type SpriteConfig struct {
	Name          string
	Origin        geometry.Vector
	CollisionBox  geometry.Box
	HitBox        geometry.Box // zero means the collision box
	CollisionData world.CollisionData

	// HeadHeight and LegsHeight are the bands the side probes skip.
	HeadHeight fixed.Int52_12
	LegsHeight fixed.Int52_12

	// WorldProfile probes head, chest and legs bands instead of border strips.
	WorldProfile  bool
	UsePlacements bool

	FacingLeft bool
	NoGravity  bool
	NoClip     bool
	Static     bool
}

// ContactHandler is called when a contact starts.
type ContactHandler func(s *Sprite)

// Sprite is a moving box resolved against the layout and the other sprites.
// Its origin moves; the collision and hit boxes stay relative to it.
type Sprite struct {
	id    SpriteID
	name  string
	stage *Stage
	alive bool

	origin        geometry.Vector
	collisionBox  geometry.Box
	hitBox        geometry.Box
	collisionData world.CollisionData

	Velocity    geometry.Vector
	FacingRight bool

	NoGravity bool // gravity never applies
	NoClip    bool // moves ignore every obstacle
	Static    bool // DoPhysics leaves it alone; Move still works

	collider *collider.Collider

	OnBlockedLeft  ContactHandler
	OnBlockedUp    ContactHandler
	OnBlockedRight ContactHandler
	OnLanded       ContactHandler

	// Contacts at the end of the last move, for edge-triggered handlers.
	lastBlockedLeft  bool
	lastBlockedUp    bool
	lastBlockedRight bool
	lastLanded       bool
}

func (s *Sprite) ID() SpriteID            { return s.id }
func (s *Sprite) Name() string            { return s.name }
func (s *Sprite) Stage() *Stage           { return s.stage }
func (s *Sprite) Alive() bool             { return s.alive }
func (s *Sprite) Origin() geometry.Vector { return s.origin }

// SetOrigin teleports the sprite without collision checks.
func (s *Sprite) SetOrigin(v geometry.Vector) {
	s.origin = v
	s.collider.SetBox(s.CollisionBox())
	s.reindex()
	s.cacheContacts()
}

// LocalCollisionBox is the collision box relative to the origin.
func (s *Sprite) LocalCollisionBox() geometry.Box { return s.collisionBox }

// SetLocalCollisionBox resizes the sprite in place.
func (s *Sprite) SetLocalCollisionBox(b geometry.Box) {
	if !b.IsValid() {
		return
	}
	s.collisionBox = b
	s.collider.SetBox(s.CollisionBox())
	s.reindex()
}

// CollisionBox returns the world collision box.
func (s *Sprite) CollisionBox() geometry.Box {
	return s.collisionBox.Translate(s.origin)
}

// HitBox returns the world hit box, mirrored inside the collision box when
// the sprite faces left.
func (s *Sprite) HitBox() geometry.Box {
	hit := s.hitBox
	if !s.FacingRight {
		dx := s.collisionBox.Left() + s.collisionBox.Right() - hit.Right() - hit.Left()
		hit = hit.Translate(geometry.Vector{X: dx})
	}
	return hit.Translate(s.origin)
}

// BoundingBox wraps the collision and hit boxes.
func (s *Sprite) BoundingBox() geometry.Box {
	return s.CollisionBox().Union(s.HitBox())
}

// GetBox satisfies partition.Entity.
func (s *Sprite) GetBox(kind partition.BoxKind) geometry.Box {
	switch kind {
	case partition.HitBox:
		return s.HitBox()
	case partition.CollisionBox:
		return s.CollisionBox()
	}
	return s.BoundingBox()
}

// CollisionData tells the other sprites how to treat this one. Anything but
// CollisionNone makes it terrain for them.
func (s *Sprite) CollisionData() world.CollisionData { return s.collisionData }

func (s *Sprite) SetCollisionData(d world.CollisionData) { s.collisionData = d }

// IsCarrier reports sprites that carry what stands on them: solid blocks and
// top-ladder platforms.
func (s *Sprite) IsCarrier() bool {
	return s.collisionData.IsSolidBlock() || s.collisionData.IsTopLadder()
}

// pushes reports carriers that also push what leans on their sides.
func (s *Sprite) pushes() bool {
	return s.collisionData.IsSolidBlock()
}

func (s *Sprite) Collider() *collider.Collider { return s.collider }

func (s *Sprite) BlockedLeft() bool   { return s.collider.BlockedLeft() }
func (s *Sprite) BlockedUp() bool     { return s.collider.BlockedUp() }
func (s *Sprite) BlockedRight() bool  { return s.collider.BlockedRight() }
func (s *Sprite) Landed() bool        { return s.collider.Landed() }
func (s *Sprite) LandedOnSlope() bool { return s.collider.LandedOnSlope() }
func (s *Sprite) Underwater() bool    { return s.collider.Underwater() }

// Gravity returns the downward acceleration that applies this frame.
func (s *Sprite) Gravity() fixed.Int52_12 {
	switch {
	case s.NoGravity:
		return 0
	case s.Underwater():
		return s.stage.Physics.UnderwaterGravity
	}
	return s.stage.Physics.Gravity
}

// TerminalDownwardSpeed caps the falling speed.
func (s *Sprite) TerminalDownwardSpeed() fixed.Int52_12 {
	if s.Underwater() {
		return s.stage.Physics.UnderwaterTerminalDownwardSpeed
	}
	return s.stage.Physics.TerminalDownwardSpeed
}

func (s *Sprite) reindex() {
	if s.alive {
		s.stage.partition.Update(s, partition.AllKinds, false)
	}
}

// cacheContacts records the current contacts without firing any handler.
func (s *Sprite) cacheContacts() {
	c := s.collider
	s.lastBlockedLeft = c.BlockedLeft()
	s.lastBlockedUp = c.BlockedUp()
	s.lastBlockedRight = c.BlockedRight()
	s.lastLanded = c.Landed()
}

// fireContacts calls the handlers of the contacts that started since the
// last call and records the new state.
func (s *Sprite) fireContacts() {
	c := s.collider
	left, up, right, landed := c.BlockedLeft(), c.BlockedUp(), c.BlockedRight(), c.Landed()
	fire := func(now, last bool, h ContactHandler) {
		if now && !last && h != nil {
			h(s)
		}
	}
	fire(up, s.lastBlockedUp, s.OnBlockedUp)
	fire(left, s.lastBlockedLeft, s.OnBlockedLeft)
	fire(right, s.lastBlockedRight, s.OnBlockedRight)
	fire(landed, s.lastLanded, s.OnLanded)
	s.lastBlockedLeft, s.lastBlockedUp, s.lastBlockedRight, s.lastLanded = left, up, right, landed
}
