package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/xcore/internal/domain/entity"
	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
	"github.com/younwookim/xcore/internal/infrastructure/config"
)

func createTestStageConfig() *config.StageConfig {
	return &config.StageConfig{
		ID:          "test",
		Size:        config.StageSizeConfig{Width: 256, Height: 128},
		PlayerSpawn: config.PositionConfig{X: 40, Y: 96},
		Layers: config.LayersConfig{
			Collision: []string{
				"................",
				"................",
				"................",
				"................",
				"................",
				"......ab##......",
				"################",
			},
		},
		TileMapping: map[string]string{
			"#": "SOLID",
			"a": "SLOPE_16_8",
			"b": "SLOPE_8_0",
		},
	}
}

func createTestPhysicsConfig() *config.PhysicsConfig {
	return &config.PhysicsConfig{
		Display: config.DisplayConfig{Framerate: 60},
		Physics: config.PhysicsSettings{
			Gravity:                         64,
			UnderwaterGravity:               33,
			TerminalDownwardSpeed:           1472,
			UnderwaterTerminalDownwardSpeed: 737,
		},
		Player: config.PlayerConfig{
			Hitbox:     config.Rect{X: -7, Y: -30, Width: 14, Height: 30},
			HeadHeight: 4,
			LegsHeight: 8,
		},
		Movement: config.MovementConfig{
			WalkSpeed: 384,
			DashSpeed: 896,
			JumpSpeed: 1344,
		},
	}
}

func TestBuildLayout(t *testing.T) {
	t.Run("rounds the size up to whole scenes", func(t *testing.T) {
		l, err := BuildLayout(createTestStageConfig())
		require.NoError(t, err)
		assert.Equal(t, 1, l.SceneRowCount())
		assert.Equal(t, 1, l.SceneColCount())

		cfg := createTestStageConfig()
		cfg.Size = config.StageSizeConfig{Width: 257, Height: 513}
		l, err = BuildLayout(cfg)
		require.NoError(t, err)
		assert.Equal(t, 3, l.SceneRowCount())
		assert.Equal(t, 2, l.SceneColCount())
	})

	t.Run("maps characters to collision data", func(t *testing.T) {
		l, err := BuildLayout(createTestStageConfig())
		require.NoError(t, err)

		assert.Equal(t, world.Slope16_8, l.GetMapAt(5, 6).CollisionData)
		assert.Equal(t, world.Slope8_0, l.GetMapAt(5, 7).CollisionData)
		assert.Equal(t, world.Solid, l.GetMapAt(5, 8).CollisionData)
		assert.Equal(t, world.Solid, l.GetMapAt(6, 15).CollisionData)
		assert.Nil(t, l.GetMapAt(4, 6), "empty cells get no map")
	})

	t.Run("shares one map per character", func(t *testing.T) {
		l, err := BuildLayout(createTestStageConfig())
		require.NoError(t, err)

		assert.Equal(t, 3, l.MapCount())
		assert.Same(t, l.GetMapAt(6, 0), l.GetMapAt(5, 9))
	})

	t.Run("rejects unknown collision names", func(t *testing.T) {
		cfg := createTestStageConfig()
		cfg.TileMapping["#"] = "BOUNCY"
		_, err := BuildLayout(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalidStage)
	})

	t.Run("rejects unmapped characters", func(t *testing.T) {
		cfg := createTestStageConfig()
		delete(cfg.TileMapping, "b")
		_, err := BuildLayout(cfg)
		assert.ErrorIs(t, err, config.ErrInvalidStage)
	})
}

func TestLoadStage(t *testing.T) {
	st, err := LoadStage(createTestStageConfig(), createTestPhysicsConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, st.Len())
	assert.Equal(t, geometry.BoxFromInts(0, 0, 256, 256), st.Layout.BoundingBox())
	assert.Equal(t, entity.DefaultPhysics(), st.Physics, "64/33/1472/737 sub-pixels are the classic values")
}

func TestPhysicsSettings(t *testing.T) {
	t.Run("converts sub-pixels", func(t *testing.T) {
		cfg := createTestPhysicsConfig()
		cfg.Physics.Gravity = 128
		p := PhysicsSettings(cfg)
		assert.Equal(t, geometry.Frac(1, 2), p.Gravity)
		assert.Equal(t, geometry.Frac(33, 256), p.UnderwaterGravity)
	})

	t.Run("zero values fall back to defaults", func(t *testing.T) {
		assert.Equal(t, entity.DefaultPhysics(), PhysicsSettings(&config.PhysicsConfig{}))
		assert.Equal(t, entity.DefaultPhysics(), PhysicsSettings(nil))
	})
}

func TestPlayerSprite(t *testing.T) {
	cfg := createTestPhysicsConfig()
	cfg.Player.WorldProfile = true

	sc := PlayerSprite(cfg.Player, config.PositionConfig{X: 40, Y: 96})

	assert.Equal(t, geometry.Vec(40, 96), sc.Origin)
	assert.Equal(t, geometry.BoxFromInts(-7, -30, 14, 30), sc.CollisionBox)
	assert.Equal(t, geometry.I(4), sc.HeadHeight)
	assert.Equal(t, geometry.I(8), sc.LegsHeight)
	assert.True(t, sc.WorldProfile)
	assert.Equal(t, world.CollisionNone, sc.CollisionData)
}

func TestPropSprite(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.SpriteSpawnConfig
		wantData world.CollisionData
		wantErr  bool
	}{
		{
			name:     "solid crate",
			cfg:      config.SpriteSpawnConfig{Name: "crate", Rect: config.Rect{X: 16, Y: 32, Width: 16, Height: 16}, Collision: "SOLID", Gravity: true},
			wantData: world.Solid,
		},
		{
			name:     "no collision",
			cfg:      config.SpriteSpawnConfig{Name: "ghost", Rect: config.Rect{X: 16, Y: 32, Width: 8, Height: 8}},
			wantData: world.CollisionNone,
		},
		{
			name:    "unknown collision",
			cfg:     config.SpriteSpawnConfig{Name: "bad", Rect: config.Rect{Width: 8, Height: 8}, Collision: "STICKY"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := PropSprite(tt.cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidStage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, sc.CollisionData)
			assert.Equal(t, geometry.Vec(tt.cfg.Rect.X, tt.cfg.Rect.Y), sc.Origin)
			assert.Equal(t, geometry.BoxFromInts(0, 0, tt.cfg.Rect.Width, tt.cfg.Rect.Height), sc.CollisionBox)
			assert.Equal(t, !tt.cfg.Gravity, sc.NoGravity)
		})
	}
}

func TestPlatformSprite(t *testing.T) {
	cfg := config.PlatformConfig{
		Name:     "lift",
		Rect:     config.Rect{X: 64, Y: 64, Width: 32, Height: 8},
		Path:     []config.PositionConfig{{X: 64, Y: 64}, {X: 64, Y: 32}},
		Duration: 2,
	}

	sc, path, err := PlatformSprite(cfg)
	require.NoError(t, err)
	assert.Equal(t, world.Solid, sc.CollisionData, "platforms default to SOLID")
	assert.Equal(t, []geometry.Vector{geometry.Vec(64, 64), geometry.Vec(64, 32)}, path.Waypoints)
	assert.Equal(t, float32(2), path.Duration)
	assert.NotNil(t, path.Easing)

	cfg.Easing = "bounce"
	_, _, err = PlatformSprite(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidStage)
}

func TestEasingByName(t *testing.T) {
	for _, name := range []string{"", "linear", "inOutSine", "inOutQuad"} {
		t.Run(name, func(t *testing.T) {
			fn, err := EasingByName(name)
			require.NoError(t, err)
			assert.InDelta(t, 0, fn(0, 0, 1, 1), 1e-6)
			assert.InDelta(t, 1, fn(1, 0, 1, 1), 1e-6)
		})
	}
}
