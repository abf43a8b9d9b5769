// Package tiled builds layouts from Tiled TMX maps. Every tile of the
// collision layer covers one 16x16 map and names its collision data in a
// "collision" tile property. Object groups place the player, the sprites and
// the moving platforms.
package tiled

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"strconv"
	"strings"

	gotiled "github.com/lafriks/go-tiled"

	"github.com/younwookim/xcore/internal/domain/world"
	"github.com/younwookim/xcore/internal/infrastructure/config"
)

// Layer and property names read from the map.
const (
	CollisionLayer    = "collision"
	CollisionProperty = "collision"

	SpawnGroup    = "spawn"
	SpritesGroup  = "sprites"
	PlatformGroup = "platforms"

	PlayerObject = "player"
)

var (
	// ErrNoCollisionLayer is returned for maps without a collision tile layer.
	ErrNoCollisionLayer = errors.New("no collision layer")

	// ErrTileSize is returned for maps whose tiles are not one map wide.
	ErrTileSize = errors.New("unsupported tile size")
)

// Level is a TMX map converted for the simulation. Stage carries the size,
// the spawns and an id; its collision rows stay empty since Layout holds
// the collision.
type Level struct {
	Layout *world.Layout
	Stage  *config.StageConfig
}

// Load parses the TMX file at name in fsys.
func Load(fsys fs.FS, name string) (*Level, error) {
	m, err := gotiled.LoadFile(name, gotiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load TMX %s: %w", name, err)
	}
	if m.TileWidth != world.MapSize || m.TileHeight != world.MapSize {
		return nil, fmt.Errorf("failed to load TMX %s: %w: %dx%d", name, ErrTileSize, m.TileWidth, m.TileHeight)
	}

	layout, err := buildLayout(m)
	if err != nil {
		return nil, fmt.Errorf("failed to load TMX %s: %w", name, err)
	}

	stage := &config.StageConfig{
		ID: strings.TrimSuffix(path.Base(name), path.Ext(name)),
		Size: config.StageSizeConfig{
			Width:  m.Width * m.TileWidth,
			Height: m.Height * m.TileHeight,
		},
	}
	stage.Name = stage.ID
	if err := readObjects(m, stage); err != nil {
		return nil, fmt.Errorf("failed to load TMX %s: %w", name, err)
	}
	return &Level{Layout: layout, Stage: stage}, nil
}

func buildLayout(m *gotiled.Map) (*world.Layout, error) {
	var layer *gotiled.Layer
	for _, l := range m.Layers {
		if l.Name == CollisionLayer {
			layer = l
			break
		}
	}
	if layer == nil {
		return nil, ErrNoCollisionLayer
	}
	if len(layer.Tiles) < m.Width*m.Height {
		// Infinite maps store chunks instead.
		return nil, fmt.Errorf("%w: layer %q has %d tiles for %dx%d", config.ErrInvalidStage, layer.Name, len(layer.Tiles), m.Width, m.Height)
	}

	l := world.NewLayout(
		ceilDiv(m.Height*m.TileHeight, world.SceneSize),
		ceilDiv(m.Width*m.TileWidth, world.SceneSize),
	)

	// One shared map per collision value.
	maps := make(map[world.CollisionData]*world.Map)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile := layer.Tiles[y*m.Width+x]
			if tile.IsNil() {
				continue
			}
			ts, err := tile.Tileset.GetTilesetTile(tile.ID)
			if err != nil {
				// Tiles without properties are decoration.
				continue
			}
			name := ts.Properties.GetString(CollisionProperty)
			if name == "" {
				continue
			}
			data, err := world.ParseCollisionData(name)
			if err != nil {
				return nil, fmt.Errorf("%w: tile %d at %d,%d", config.ErrInvalidStage, tile.ID, x, y)
			}
			mp, ok := maps[data]
			if !ok {
				mp = l.AddMap(data)
				maps[data] = mp
			}
			if err := l.SetMap(world.GetMapLeftTop(y, x), mp); err != nil {
				return nil, fmt.Errorf("failed to place map at %d,%d: %w", x, y, err)
			}
		}
	}
	return l, nil
}

func readObjects(m *gotiled.Map, stage *config.StageConfig) error {
	for _, og := range m.ObjectGroups {
		switch og.Name {
		case SpawnGroup:
			for _, o := range og.Objects {
				if o.Name == PlayerObject {
					stage.PlayerSpawn = config.PositionConfig{X: round(o.X), Y: round(o.Y)}
				}
			}
		case SpritesGroup:
			for _, o := range og.Objects {
				stage.Sprites = append(stage.Sprites, config.SpriteSpawnConfig{
					Name:      o.Name,
					Rect:      objectRect(o),
					Collision: o.Properties.GetString(CollisionProperty),
					Gravity:   boolProperty(o.Properties, "gravity"),
					Static:    boolProperty(o.Properties, "static"),
				})
			}
		case PlatformGroup:
			for _, o := range og.Objects {
				p, err := platform(o.Name, objectRect(o), o.Properties)
				if err != nil {
					return err
				}
				stage.Platforms = append(stage.Platforms, p)
			}
		}
	}
	return nil
}

// platform reads a rectangle object. Its path starts at the object and goes
// on through the "waypoints" property, "dx,dy" offsets separated by spaces.
func platform(name string, rect config.Rect, props properties) (config.PlatformConfig, error) {
	p := config.PlatformConfig{
		Name:      name,
		Rect:      rect,
		Collision: props.GetString(CollisionProperty),
		Easing:    props.GetString("easing"),
	}
	d, err := floatProperty(props, "duration")
	if err != nil {
		return p, fmt.Errorf("%w: platform %q: %v", config.ErrInvalidStage, name, err)
	}
	p.Duration = d

	p.Path = append(p.Path, config.PositionConfig{X: p.Rect.X, Y: p.Rect.Y})
	for _, pair := range strings.Fields(props.GetString("waypoints")) {
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			return p, fmt.Errorf("%w: platform %q: waypoint %q", config.ErrInvalidStage, name, pair)
		}
		dx, errX := strconv.Atoi(xs)
		dy, errY := strconv.Atoi(ys)
		if errX != nil || errY != nil {
			return p, fmt.Errorf("%w: platform %q: waypoint %q", config.ErrInvalidStage, name, pair)
		}
		p.Path = append(p.Path, config.PositionConfig{X: p.Rect.X + dx, Y: p.Rect.Y + dy})
	}
	if len(p.Path) < 2 || p.Duration <= 0 {
		return p, fmt.Errorf("%w: platform %q needs a waypoint and a positive duration", config.ErrInvalidStage, name)
	}
	return p, nil
}

func objectRect(o *gotiled.Object) config.Rect {
	return config.Rect{X: round(o.X), Y: round(o.Y), Width: round(o.Width), Height: round(o.Height)}
}

type properties interface {
	GetString(name string) string
}

func boolProperty(p properties, name string) bool {
	b, _ := strconv.ParseBool(p.GetString(name))
	return b
}

func floatProperty(p properties, name string) (float64, error) {
	s := p.GetString(name)
	if s == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	return strconv.ParseFloat(s, 64)
}

func round(f float64) int {
	return int(math.Round(f))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
