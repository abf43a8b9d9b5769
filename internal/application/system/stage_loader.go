package system

import (
	"fmt"

	"github.com/tanema/gween/ease"
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/entity"
	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
	"github.com/younwookim/xcore/internal/ecs"
	"github.com/younwookim/xcore/internal/infrastructure/config"
)

// BuildLayout converts the collision rows of a stage into a layout. Cells
// sharing a character share one map.
func BuildLayout(cfg *config.StageConfig) (*world.Layout, error) {
	l := world.NewLayout(
		ceilDiv(cfg.Size.Height, world.SceneSize),
		ceilDiv(cfg.Size.Width, world.SceneSize),
	)

	maps := make(map[rune]*world.Map)
	for row, line := range cfg.Layers.Collision {
		for col, char := range []rune(line) {
			if config.EmptyCell(char) {
				continue
			}
			m, ok := maps[char]
			if !ok {
				name, mapped := cfg.TileMapping[string(char)]
				if !mapped {
					return nil, fmt.Errorf("%w: no mapping for %q at row %d", config.ErrInvalidStage, char, row)
				}
				data, err := world.ParseCollisionData(name)
				if err != nil {
					return nil, fmt.Errorf("%w: %v", config.ErrInvalidStage, err)
				}
				m = l.AddMap(data)
				maps[char] = m
			}
			if err := l.SetMap(world.GetMapLeftTop(row, col), m); err != nil {
				return nil, fmt.Errorf("failed to place map at row %d col %d: %w", row, col, err)
			}
		}
	}
	return l, nil
}

// LoadStage builds the layout of cfg and an empty stage over it.
func LoadStage(cfg *config.StageConfig, physics *config.PhysicsConfig) (*entity.Stage, error) {
	l, err := BuildLayout(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build stage %s: %w", cfg.ID, err)
	}
	return entity.NewStage(l, PhysicsSettings(physics)), nil
}

// PhysicsSettings converts the sub-pixel constants of cfg. Missing values
// fall back to the defaults.
func PhysicsSettings(cfg *config.PhysicsConfig) entity.PhysicsSettings {
	p := entity.DefaultPhysics()
	if cfg == nil {
		return p
	}
	set := func(dst *fixed.Int52_12, raw int) {
		if raw > 0 {
			*dst = subpixels(raw)
		}
	}
	set(&p.Gravity, cfg.Physics.Gravity)
	set(&p.UnderwaterGravity, cfg.Physics.UnderwaterGravity)
	set(&p.TerminalDownwardSpeed, cfg.Physics.TerminalDownwardSpeed)
	set(&p.UnderwaterTerminalDownwardSpeed, cfg.Physics.UnderwaterTerminalDownwardSpeed)
	return p
}

// PlayerSprite describes the player standing with its feet at spawn.
func PlayerSprite(cfg config.PlayerConfig, spawn config.PositionConfig) entity.SpriteConfig {
	return entity.SpriteConfig{
		Name:         "player",
		Origin:       geometry.Vec(spawn.X, spawn.Y),
		CollisionBox: rectBox(cfg.Hitbox),
		HeadHeight:   geometry.I(cfg.HeadHeight),
		LegsHeight:   geometry.I(cfg.LegsHeight),
		WorldProfile: cfg.WorldProfile,
	}
}

// PropSprite describes a sprite placed by the stage. Its origin is the
// left-top corner of its rectangle.
func PropSprite(cfg config.SpriteSpawnConfig) (entity.SpriteConfig, error) {
	data, err := collisionData(cfg.Collision, world.CollisionNone)
	if err != nil {
		return entity.SpriteConfig{}, fmt.Errorf("failed to convert sprite %q: %w", cfg.Name, err)
	}
	return entity.SpriteConfig{
		Name:          cfg.Name,
		Origin:        geometry.Vec(cfg.Rect.X, cfg.Rect.Y),
		CollisionBox:  geometry.BoxFromInts(0, 0, cfg.Rect.Width, cfg.Rect.Height),
		CollisionData: data,
		NoGravity:     !cfg.Gravity,
		Static:        cfg.Static,
	}, nil
}

// PlatformSprite converts a platform into its sprite and path.
func PlatformSprite(cfg config.PlatformConfig) (entity.SpriteConfig, ecs.PlatformData, error) {
	data, err := collisionData(cfg.Collision, world.Solid)
	if err != nil {
		return entity.SpriteConfig{}, ecs.PlatformData{}, fmt.Errorf("failed to convert platform %q: %w", cfg.Name, err)
	}
	easing, err := EasingByName(cfg.Easing)
	if err != nil {
		return entity.SpriteConfig{}, ecs.PlatformData{}, fmt.Errorf("failed to convert platform %q: %w", cfg.Name, err)
	}
	path := ecs.PlatformData{
		Duration: float32(cfg.Duration),
		Easing:   easing,
	}
	for _, p := range cfg.Path {
		path.Waypoints = append(path.Waypoints, geometry.Vec(p.X, p.Y))
	}
	sprite := entity.SpriteConfig{
		Name:          cfg.Name,
		Origin:        geometry.Vec(cfg.Rect.X, cfg.Rect.Y),
		CollisionBox:  geometry.BoxFromInts(0, 0, cfg.Rect.Width, cfg.Rect.Height),
		CollisionData: data,
	}
	return sprite, path, nil
}

// EasingByName maps a platform easing to its tween function. The empty name
// is linear.
func EasingByName(name string) (ease.TweenFunc, error) {
	switch name {
	case "", "linear":
		return ease.Linear, nil
	case "inOutSine":
		return ease.InOutSine, nil
	case "inOutQuad":
		return ease.InOutQuad, nil
	}
	return nil, fmt.Errorf("%w: unknown easing %q", config.ErrInvalidStage, name)
}

func collisionData(name string, fallback world.CollisionData) (world.CollisionData, error) {
	if name == "" {
		return fallback, nil
	}
	d, err := world.ParseCollisionData(name)
	if err != nil {
		return world.CollisionNone, fmt.Errorf("%w: %v", config.ErrInvalidStage, err)
	}
	return d, nil
}

func rectBox(r config.Rect) geometry.Box {
	return geometry.BoxFromInts(r.X, r.Y, r.Width, r.Height)
}

func subpixels(raw int) fixed.Int52_12 {
	return geometry.Frac(raw, config.SubpixelsPerPixel)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
