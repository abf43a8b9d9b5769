package system

import (
	"fmt"

	"github.com/younwookim/xcore/internal/domain/entity"
	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
	"github.com/younwookim/xcore/internal/ecs"
	"github.com/younwookim/xcore/internal/infrastructure/config"
	"github.com/younwookim/xcore/internal/infrastructure/logging"
)

// Simulation runs a stage frame by frame from player input, without any
// rendering. The viewer, the inspector and the replays all drive one.
type Simulation struct {
	Stage  *entity.Stage
	World  *ecs.World
	Player *entity.Sprite

	physicsCfg *config.PhysicsConfig
	stageCfg   *config.StageConfig
	layout     *world.Layout

	input     *InputSystem
	physics   *PhysicsSystem
	platforms *PlatformSystem
	log       *logging.Logger
	frame     int
}

// NewSimulation builds the layout of stageCfg and spawns its sprites.
func NewSimulation(physicsCfg *config.PhysicsConfig, stageCfg *config.StageConfig, log *logging.Logger) (*Simulation, error) {
	l, err := BuildLayout(stageCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build stage %s: %w", stageCfg.ID, err)
	}
	return NewSimulationWithLayout(physicsCfg, stageCfg, l, log)
}

// NewSimulationWithLayout spawns the sprites of stageCfg over a layout built
// elsewhere, such as a TMX map. The collision rows of stageCfg are ignored.
func NewSimulationWithLayout(physicsCfg *config.PhysicsConfig, stageCfg *config.StageConfig, l *world.Layout, log *logging.Logger) (*Simulation, error) {
	if log == nil {
		log = logging.Nop()
	}
	s := &Simulation{
		physicsCfg: physicsCfg,
		stageCfg:   stageCfg,
		layout:     l,
		input:      NewInputSystem(physicsCfg.Movement),
		log:        log.WithStage(stageCfg.ID),
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset puts every sprite back where the stage spawns it. The layout is kept.
func (s *Simulation) Reset() error {
	stage := entity.NewStage(s.layout, PhysicsSettings(s.physicsCfg))
	w := ecs.NewWorld(stage, s.log)

	playerEntry, err := w.Spawn(PlayerSprite(s.physicsCfg.Player, s.stageCfg.PlayerSpawn), ecs.PlayerTag)
	if err != nil {
		return fmt.Errorf("failed to reset stage %s: %w", s.stageCfg.ID, err)
	}
	for _, sc := range s.stageCfg.Sprites {
		cfg, err := PropSprite(sc)
		if err != nil {
			return fmt.Errorf("failed to reset stage %s: %w", s.stageCfg.ID, err)
		}
		if _, err := w.Spawn(cfg, ecs.PropTag); err != nil {
			return fmt.Errorf("failed to reset stage %s: %w", s.stageCfg.ID, err)
		}
	}
	for _, pc := range s.stageCfg.Platforms {
		cfg, path, err := PlatformSprite(pc)
		if err != nil {
			return fmt.Errorf("failed to reset stage %s: %w", s.stageCfg.ID, err)
		}
		if _, err := w.SpawnPlatform(cfg, path); err != nil {
			return fmt.Errorf("failed to reset stage %s: %w", s.stageCfg.ID, err)
		}
	}

	s.Stage = stage
	s.World = w
	s.Player = ecs.SpriteOf(playerEntry)
	s.physics = NewPhysicsSystem(w)
	s.platforms = NewPlatformSystem(w, s.physicsCfg.Display.Framerate)
	s.frame = 0
	s.log.Info("stage ready", "sprites", stage.Len(), "platforms", len(s.stageCfg.Platforms))
	return nil
}

// Step runs one frame: player intents, platforms, then physics.
func (s *Simulation) Step(in InputState) {
	s.physics.Apply(s.Player, s.input.Intents(in))
	s.platforms.Update()
	s.physics.Update()
	s.frame++
}

// Frame returns the number of frames stepped since the last reset.
func (s *Simulation) Frame() int { return s.frame }

// Layout returns the static layout the stage runs on.
func (s *Simulation) Layout() *world.Layout { return s.layout }

// StageConfig returns the stage being simulated.
func (s *Simulation) StageConfig() *config.StageConfig { return s.stageCfg }

// Boxes returns the collision box of every live sprite in spawn order.
func (s *Simulation) Boxes() []geometry.Box {
	sprites := s.Stage.Sprites()
	boxes := make([]geometry.Box, len(sprites))
	for i, sp := range sprites {
		boxes[i] = sp.CollisionBox()
	}
	return boxes
}
