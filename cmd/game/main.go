package main

import (
	"embed"
	"flag"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/xcore/internal/application/game"
	"github.com/younwookim/xcore/internal/application/replay"
	"github.com/younwookim/xcore/internal/application/scene/playing"
	"github.com/younwookim/xcore/internal/infrastructure/config"
	"github.com/younwookim/xcore/internal/infrastructure/logging"
)

//go:embed configs
var configFS embed.FS

func main() {
	// Parse command line flags
	configsFlag := flag.String("configs", "", "Config directory (default: embedded configs)")
	stageFlag := flag.String("stage", "demo", "Stage name under configs/stages")
	tmxFlag := flag.String("tmx", "", "Load the layout from a Tiled TMX file instead of the stage")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	verifyFlag := flag.Bool("verify", false, "With -replay, run headless and log the final boxes")
	flag.Parse()

	logger := logging.Default()

	// Load configurations, embedded unless a directory is given
	var loader *config.Loader
	if *configsFlag != "" {
		loader = config.NewLoader(*configsFlag)
	} else {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			log.Fatalf("Failed to get config subfs: %v", err)
		}
		loader = config.NewFSLoader(fsys, "configs")
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sim, err := newSimulation(loader, cfg.Physics, *stageFlag, *tmxFlag, logger)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	var replayData *replay.ReplayData
	if *replayFlag != "" {
		replayData, err = replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		if *verifyFlag {
			if _, err := verifyReplay(sim, replayData, logger); err != nil {
				log.Fatalf("Replay failed: %v", err)
			}
			return
		}
	}

	viewer := playing.New(sim, cfg.Physics, playing.Options{
		RecordPath: *recordFlag,
		Replay:     replayData,
	}, logger)
	g := game.New(viewer, cfg.Physics.Display, logger)

	// Set up ebiten
	display := cfg.Physics.Display
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("xcore collision viewer")
	ebiten.SetTPS(display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
