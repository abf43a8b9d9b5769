package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/infrastructure/config"
)

// InputSystem turns the keyboard into player intents
type InputSystem struct {
	walk, dash, jump fixed.Int52_12
}

// NewInputSystem creates a new input system
func NewInputSystem(cfg config.MovementConfig) *InputSystem {
	return &InputSystem{
		walk: subpixels(cfg.WalkSpeed),
		dash: subpixels(cfg.DashSpeed),
		jump: subpixels(cfg.JumpSpeed),
	}
}

// InputState holds the current input state
type InputState struct {
	Left         bool
	Right        bool
	Jump         bool
	JumpPressed  bool
	JumpReleased bool
	Dash         bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:         ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:        ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:         ebiten.IsKeyPressed(ebiten.KeyZ),
		JumpPressed:  inpututil.IsKeyJustPressed(ebiten.KeyZ),
		JumpReleased: inpututil.IsKeyJustReleased(ebiten.KeyZ),
		Dash:         ebiten.IsKeyPressed(ebiten.KeyX),
	}
}

// Intents converts one frame of input. Opposite directions cancel out.
func (s *InputSystem) Intents(in InputState) []Intent {
	speed := s.walk
	if in.Dash {
		speed = s.dash
	}
	var walk fixed.Int52_12
	if in.Left && !in.Right {
		walk = -speed
	} else if in.Right && !in.Left {
		walk = speed
	}

	intents := []Intent{WalkIntent{Speed: walk}}
	if in.JumpPressed {
		intents = append(intents, JumpIntent{Speed: s.jump})
	}
	if in.JumpReleased {
		intents = append(intents, CutJumpIntent{})
	}
	return intents
}
