package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"
)

// ErrInvalidStage is returned for stage files that parse but cannot describe a level.
var ErrInvalidStage = errors.New("invalid stage")

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics *PhysicsConfig
}

// Loader loads game configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// FS returns the filesystem the loader reads from.
func (l *Loader) FS() fs.FS { return l.fsys }

// LoadPhysics loads physics.json
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "physics.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read physics.json: %w", err)
	}

	var cfg PhysicsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse physics.json: %w", err)
	}

	return &cfg, nil
}

// LoadStage loads a stage JSON file and validates its shape.
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", name, err)
	}

	return &cfg, nil
}

// StageNames lists the stages found under stages/.
func (l *Loader) StageNames() ([]string, error) {
	matches, err := fs.Glob(l.fsys, "stages/*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[len("stages/"):len(m)-len(".json")])
	}
	return names, nil
}

// LoadAll loads all base configurations
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics: physics,
	}, nil
}

// Validate checks the parts of a stage that do not depend on the collision
// catalog: size, rows, character mapping and spawn rectangles.
func (c *StageConfig) Validate() error {
	if c.Size.Width <= 0 || c.Size.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidStage, c.Size.Width, c.Size.Height)
	}
	maxCols := (c.Size.Width + 15) / 16
	maxRows := (c.Size.Height + 15) / 16
	if len(c.Layers.Collision) > maxRows {
		return fmt.Errorf("%w: %d collision rows for a height of %d", ErrInvalidStage, len(c.Layers.Collision), c.Size.Height)
	}
	for y, row := range c.Layers.Collision {
		if n := utf8.RuneCountInString(row); n > maxCols {
			return fmt.Errorf("%w: row %d has %d cells for a width of %d", ErrInvalidStage, y, n, c.Size.Width)
		}
		for x, r := range []rune(row) {
			if EmptyCell(r) {
				continue
			}
			if _, ok := c.TileMapping[string(r)]; !ok {
				return fmt.Errorf("%w: unmapped character %q at row %d col %d", ErrInvalidStage, r, y, x)
			}
		}
	}
	for _, s := range c.Sprites {
		if s.Rect.Empty() {
			return fmt.Errorf("%w: sprite %q has an empty rect", ErrInvalidStage, s.Name)
		}
	}
	for _, p := range c.Platforms {
		if p.Rect.Empty() {
			return fmt.Errorf("%w: platform %q has an empty rect", ErrInvalidStage, p.Name)
		}
		if len(p.Path) < 2 || p.Duration <= 0 {
			return fmt.Errorf("%w: platform %q needs two waypoints and a positive duration", ErrInvalidStage, p.Name)
		}
	}
	return nil
}
