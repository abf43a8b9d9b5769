// Package game runs the viewer loop and hands every frame to the current scene.
package game

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/xcore/internal/application/scene"
	"github.com/younwookim/xcore/internal/infrastructure/config"
	"github.com/younwookim/xcore/internal/infrastructure/logging"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	log     *logging.Logger
}

// New creates a Game over the display settings. The initial scene's OnEnter
// is called immediately.
func New(initialScene scene.Scene, display config.DisplayConfig, log *logging.Logger) *Game {
	if log == nil {
		log = logging.Nop()
	}
	framerate := display.Framerate
	if framerate <= 0 {
		framerate = 60
	}
	g := &Game{
		current: initialScene,
		screenW: display.ScreenWidth,
		screenH: display.ScreenHeight,
		dt:      1.0 / float64(framerate),
		log:     log,
	}
	g.log.Info("entering scene", "scene", sceneName(initialScene))
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		if !errors.Is(err, ebiten.Termination) {
			g.log.Failure("scene update failed", err, "scene", sceneName(g.current))
		}
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.log.Info("entering scene", "from", sceneName(g.current), "scene", sceneName(next))
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// DT returns the seconds a frame lasts.
func (g *Game) DT() float64 { return g.dt }

func sceneName(s scene.Scene) string {
	if n, ok := s.(fmt.Stringer); ok {
		return n.String()
	}
	return fmt.Sprintf("%T", s)
}
