// Command inspect shows the collision layer of a stage in the terminal and
// drops a probe sprite into it one frame at a time.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/xcore/internal/application/system"
	"github.com/younwookim/xcore/internal/domain/world"
	"github.com/younwookim/xcore/internal/infrastructure/config"
	"github.com/younwookim/xcore/internal/infrastructure/logging"
	"github.com/younwookim/xcore/internal/infrastructure/tiled"
)

func main() {
	configsFlag := flag.String("configs", "cmd/game/configs", "Config directory")
	stageFlag := flag.String("stage", "demo", "Stage name under configs/stages")
	tmxFlag := flag.String("tmx", "", "Inspect a Tiled TMX file instead of the stage")
	logFlag := flag.String("log", "", "Write logs to this file (the terminal is taken)")
	flag.Parse()

	logger := logging.Nop()
	if *logFlag != "" {
		f, err := os.Create(*logFlag)
		if err != nil {
			log.Fatalf("Failed to create log file: %v", err)
		}
		defer func() { _ = f.Close() }()
		logger = logging.New(f)
	}

	loader := config.NewLoader(*configsFlag)
	physics, err := loader.LoadPhysics()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	layout, spawn, err := loadLayout(loader, *stageFlag, *tmxFlag)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}

	in, err := newInspector(screen, layout, system.PhysicsSettings(physics), system.PlayerSprite(physics.Player, spawn), logger)
	if err != nil {
		screen.Fini()
		log.Fatalf("Failed to start inspector: %v", err)
	}
	in.run()
	screen.Fini()
}

// loadLayout returns the collision layout and the player spawn of a stage or
// of a TMX map.
func loadLayout(loader *config.Loader, stage, tmxPath string) (*world.Layout, config.PositionConfig, error) {
	if tmxPath != "" {
		level, err := tiled.Load(os.DirFS(filepath.Dir(tmxPath)), filepath.Base(tmxPath))
		if err != nil {
			return nil, config.PositionConfig{}, err
		}
		return level.Layout, level.Stage.PlayerSpawn, nil
	}

	cfg, err := loader.LoadStage(stage)
	if err != nil {
		return nil, config.PositionConfig{}, err
	}
	layout, err := system.BuildLayout(cfg)
	if err != nil {
		return nil, config.PositionConfig{}, err
	}
	return layout, cfg.PlayerSpawn, nil
}
