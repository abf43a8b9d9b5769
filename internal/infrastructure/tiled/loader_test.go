package tiled

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
	"github.com/younwookim/xcore/internal/infrastructure/config"
)

func loadTestLevel(t *testing.T) *Level {
	t.Helper()
	level, err := Load(os.DirFS("testdata"), "level.tmx")
	require.NoError(t, err)
	return level
}

func TestLoad_Layout(t *testing.T) {
	l := loadTestLevel(t).Layout

	assert.Equal(t, geometry.BoxFromInts(0, 0, 256, 256), l.BoundingBox())

	tests := []struct {
		row, col int
		want     world.CollisionData
	}{
		{5, 6, world.Slope16_8},
		{5, 7, world.Slope8_0},
		{5, 8, world.Solid},
		{6, 0, world.Solid},
		{7, 15, world.Solid},
	}
	for _, tt := range tests {
		m := l.GetMapAt(tt.row, tt.col)
		require.NotNil(t, m, "row %d col %d", tt.row, tt.col)
		assert.Equal(t, tt.want, m.CollisionData, "row %d col %d", tt.row, tt.col)
	}

	assert.Nil(t, l.GetMapAt(2, 2), "tiles without a collision property are decoration")
	assert.Nil(t, l.GetMapAt(4, 6))
	assert.Equal(t, 3, l.MapCount(), "one shared map per collision value")
	assert.Same(t, l.GetMapAt(6, 0), l.GetMapAt(5, 9))
}

func TestLoad_Objects(t *testing.T) {
	stage := loadTestLevel(t).Stage

	assert.Equal(t, "level", stage.ID)
	assert.Equal(t, config.StageSizeConfig{Width: 256, Height: 128}, stage.Size)
	assert.Equal(t, config.PositionConfig{X: 40, Y: 96}, stage.PlayerSpawn)
	assert.Empty(t, stage.Layers.Collision)

	require.Len(t, stage.Sprites, 1)
	assert.Equal(t, config.SpriteSpawnConfig{
		Name:      "crate",
		Rect:      config.Rect{X: 176, Y: 48, Width: 16, Height: 16},
		Collision: "SOLID",
		Gravity:   true,
	}, stage.Sprites[0])

	require.Len(t, stage.Platforms, 1)
	lift := stage.Platforms[0]
	assert.Equal(t, "lift", lift.Name)
	assert.Equal(t, config.Rect{X: 208, Y: 80, Width: 32, Height: 8}, lift.Rect)
	assert.Equal(t, []config.PositionConfig{{X: 208, Y: 80}, {X: 208, Y: 32}}, lift.Path)
	assert.InDelta(t, 1.5, lift.Duration, 1e-9)
	assert.Equal(t, "inOutQuad", lift.Easing)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		want error
	}{
		{"no collision layer", "nocollision.tmx", ErrNoCollisionLayer},
		{"8px tiles", "smalltiles.tmx", ErrTileSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(os.DirFS("testdata"), tt.file)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(os.DirFS("testdata"), "missing.tmx")
		assert.Error(t, err)
	})
}

type propertyMap map[string]string

func (p propertyMap) GetString(name string) string { return p[name] }

func TestPlatform_Waypoints(t *testing.T) {
	tests := []struct {
		name      string
		waypoints string
		duration  string
		wantErr   bool
	}{
		{"two legs", "16,0 16,-16", "1", false},
		{"no waypoint", "", "1", true},
		{"bad pair", "16", "1", true},
		{"not a number", "a,b", "1", true},
		{"no duration", "16,0", "", true},
		{"zero duration", "16,0", "0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := propertyMap{"waypoints": tt.waypoints, "duration": tt.duration}
			p, err := platform("lift", config.Rect{X: 8, Y: 8, Width: 16, Height: 8}, props)
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidStage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []config.PositionConfig{{X: 8, Y: 8}, {X: 24, Y: 8}, {X: 24, Y: -8}}, p.Path)
		})
	}
}
