// Package scene defines the Scene interface for viewer screens.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the viewer. The game loop delegates Update and Draw
// calls to the current scene; returning a new Scene from Update switches to it.
type Scene interface {
	// Update steps the scene by dt seconds (typically 1/60).
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the viewer.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene.
	OnExit()
}
