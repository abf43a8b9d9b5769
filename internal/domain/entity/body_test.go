package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/partition"
	"github.com/younwookim/xcore/internal/domain/world"
)

func TestSprite_HitBox(t *testing.T) {
	tests := []struct {
		name        string
		hit         geometry.Box
		facingRight bool
		want        geometry.Box
	}{
		{
			name:        "facing right",
			hit:         geometry.BoxFromInts(-7, -28, 10, 8),
			facingRight: true,
			want:        geometry.BoxFromInts(93, 72, 10, 8),
		},
		{
			name:        "facing left - mirrored",
			hit:         geometry.BoxFromInts(-7, -28, 10, 8),
			facingRight: false,
			want:        geometry.BoxFromInts(97, 72, 10, 8), // -8 + 8 - 3 - (-7) = 4 to the right
		},
		{
			name:        "centred hit box is symmetric",
			hit:         geometry.BoxFromInts(-4, -32, 8, 32),
			facingRight: false,
			want:        geometry.BoxFromInts(96, 68, 8, 32),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := createTestStage(t)
			cfg := actorConfig("actor", 100, 100)
			cfg.HitBox = tt.hit
			cfg.FacingLeft = !tt.facingRight
			s := spawn(t, st, cfg)

			assert.Equal(t, tt.want, s.HitBox())
			assert.Equal(t, tt.want, s.GetBox(partition.HitBox))
			assert.Equal(t, s.CollisionBox(), s.GetBox(partition.CollisionBox))
			assert.Equal(t, s.CollisionBox().Union(tt.want), s.GetBox(partition.BoundingBox))
		})
	}
}

func TestSprite_DefaultHitBox(t *testing.T) {
	st := createTestStage(t)
	s := spawn(t, st, actorConfig("actor", 100, 100))
	assert.Equal(t, s.CollisionBox(), s.HitBox())
}

func TestSprite_SetOrigin(t *testing.T) {
	st := createTestStage(t)
	s := spawn(t, st, actorConfig("actor", 40, 100))
	require.False(t, s.Landed())

	s.SetOrigin(geometry.Vec(40, 160))
	assert.Equal(t, geometry.BoxFromInts(32, 128, 16, 32), s.CollisionBox())
	assert.True(t, s.Landed())
	assert.Equal(t, []*Sprite{s}, st.Partition().QueryPoint(geometry.Vec(40, 150), partition.CollisionBox))
	assert.Empty(t, st.Partition().QueryPoint(geometry.Vec(40, 90), partition.CollisionBox))
}

func TestSprite_SetLocalCollisionBox(t *testing.T) {
	st := createTestStage(t)
	s := spawn(t, st, actorConfig("actor", 40, 160))

	s.SetLocalCollisionBox(geometry.BoxFromInts(-8, -16, 16, 16))
	assert.Equal(t, geometry.BoxFromInts(32, 144, 16, 16), s.CollisionBox())
	assert.Empty(t, st.Partition().QueryPoint(geometry.Vec(40, 130), partition.CollisionBox))

	s.SetLocalCollisionBox(geometry.Box{})
	assert.Equal(t, geometry.BoxFromInts(-8, -16, 16, 16), s.LocalCollisionBox(), "empty boxes are refused")
}

func TestSprite_IsCarrier(t *testing.T) {
	tests := []struct {
		data world.CollisionData
		want bool
	}{
		{world.CollisionNone, false},
		{world.Solid, true},
		{world.UnclimbableSolid, true},
		{world.TopLadder, true},
		{world.Ladder, false},
		{world.Slope16_8, false},
		{world.Water, false},
	}
	for _, tt := range tests {
		t.Run(tt.data.String(), func(t *testing.T) {
			s := &Sprite{collisionData: tt.data}
			assert.Equal(t, tt.want, s.IsCarrier())
		})
	}
}

func TestSprite_Gravity(t *testing.T) {
	l := createTestLayout(t)
	require.NoError(t, l.FillRectangle(geometry.BoxFromInts(0, 0, 64, 64), l.AddMap(world.Water)))
	st := NewStage(l, DefaultPhysics())

	dry := spawn(t, st, actorConfig("dry", 120, 100))
	wet := spawn(t, st, actorConfig("wet", 32, 48))
	cfg := actorConfig("floating", 200, 100)
	cfg.NoGravity = true
	floating := spawn(t, st, cfg)

	assert.Equal(t, st.Physics.Gravity, dry.Gravity())
	assert.Equal(t, st.Physics.TerminalDownwardSpeed, dry.TerminalDownwardSpeed())
	assert.True(t, wet.Underwater())
	assert.Equal(t, st.Physics.UnderwaterGravity, wet.Gravity())
	assert.Equal(t, st.Physics.UnderwaterTerminalDownwardSpeed, wet.TerminalDownwardSpeed())
	assert.Zero(t, floating.Gravity())
}
