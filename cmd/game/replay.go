package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/younwookim/xcore/internal/application/replay"
	"github.com/younwookim/xcore/internal/application/system"
	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/infrastructure/config"
	"github.com/younwookim/xcore/internal/infrastructure/logging"
	"github.com/younwookim/xcore/internal/infrastructure/tiled"
)

// newSimulation builds the stage named stage from loader, or the TMX map at
// tmxPath when one is given.
func newSimulation(loader *config.Loader, physics *config.PhysicsConfig, stage, tmxPath string, log *logging.Logger) (*system.Simulation, error) {
	if tmxPath == "" {
		stageCfg, err := loader.LoadStage(stage)
		if err != nil {
			return nil, err
		}
		return system.NewSimulation(physics, stageCfg, log)
	}

	level, err := tiled.Load(os.DirFS(filepath.Dir(tmxPath)), filepath.Base(tmxPath))
	if err != nil {
		return nil, err
	}
	return system.NewSimulationWithLayout(physics, level.Stage, level.Layout, log)
}

// verifyReplay runs data against sim without a window and logs where every
// sprite ends up.
func verifyReplay(sim *system.Simulation, data *replay.ReplayData, log *logging.Logger) ([]geometry.Box, error) {
	stage := sim.StageConfig().ID
	if data.Stage != "" && data.Stage != stage {
		return nil, fmt.Errorf("failed to verify replay: recorded on %q, loaded %q", data.Stage, stage)
	}

	boxes := replay.NewReplayer(*data).Run(sim)
	for i, b := range boxes {
		log.Info("final box", "sprite", i, "box", b.String())
	}
	log.Info("replay verified", "frames", sim.Frame())
	return boxes, nil
}
