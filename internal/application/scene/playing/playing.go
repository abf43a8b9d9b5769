// Package playing provides the collision viewer scene: it steps a stage from
// the keyboard or from a replay and draws the layout, the sprites and their
// probes.
package playing

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/xcore/internal/application/replay"
	"github.com/younwookim/xcore/internal/application/scene"
	"github.com/younwookim/xcore/internal/application/state"
	"github.com/younwookim/xcore/internal/application/system"
	"github.com/younwookim/xcore/internal/infrastructure/config"
	"github.com/younwookim/xcore/internal/infrastructure/logging"
)

// Options select where the input comes from and where it goes.
type Options struct {
	// RecordPath records the session; F5 and leaving the scene save it.
	RecordPath string
	// Replay drives the player from a recording instead of the keyboard.
	Replay *replay.ReplayData
}

// Playing is the viewer scene
type Playing struct {
	sim         *system.Simulation
	inputSystem *system.InputSystem
	display     config.DisplayConfig
	state       state.GameState
	resumeTo    state.GameState
	showProbes  bool
	log         *logging.Logger

	// Input recording
	recorder   *replay.Recorder
	recordPath string

	// Playback
	replayer *replay.Replayer

	// Slope fill source, created on first draw
	whiteImage *ebiten.Image
}

// New creates a Playing scene over sim.
func New(sim *system.Simulation, physics *config.PhysicsConfig, opts Options, log *logging.Logger) *Playing {
	if log == nil {
		log = logging.Nop()
	}
	p := &Playing{
		sim:         sim,
		inputSystem: system.NewInputSystem(physics.Movement),
		display:     physics.Display,
		state:       state.StatePlaying,
		showProbes:  true,
		log:         log.WithStage(sim.StageConfig().ID),
		recordPath:  opts.RecordPath,
	}
	if opts.Replay != nil {
		p.replayer = replay.NewReplayer(*opts.Replay)
		p.state = state.StateReplaying
		p.log.Info("replaying", "frames", p.replayer.TotalFrames(), "recorded_stage", p.replayer.Stage())
	}
	if opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(sim.StageConfig().ID)
		p.log.Info("recording enabled", "path", opts.RecordPath)
	}
	return p
}

// String names the scene in logs.
func (p *Playing) String() string { return "playing" }

// State returns the viewer mode.
func (p *Playing) State() state.GameState { return p.state }

// keys are the viewer commands read once per frame.
type keys struct {
	pause  bool
	reset  bool
	probes bool
	save   bool
}

func readKeys() keys {
	return keys{
		pause:  inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		reset:  inpututil.IsKeyJustPressed(ebiten.KeyR),
		probes: inpututil.IsKeyJustPressed(ebiten.KeyF1),
		save:   inpututil.IsKeyJustPressed(ebiten.KeyF5),
	}
}

// Update proceeds the viewer state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	p.handleKeys(readKeys())
	if !p.state.Running() {
		return nil, nil
	}

	var in system.InputState
	if p.replayer == nil {
		in = p.inputSystem.GetInput()
	}
	p.advance(in)
	return nil, nil // nil = stay on this scene
}

func (p *Playing) handleKeys(k keys) {
	if k.probes {
		p.showProbes = !p.showProbes
	}
	if k.save {
		p.saveRecording()
	}
	if k.reset {
		p.reset()
		return
	}
	if k.pause {
		switch p.state {
		case state.StatePlaying, state.StateReplaying:
			p.resumeTo = p.state
			p.state = state.StatePaused
		case state.StatePaused:
			p.state = p.resumeTo
		}
	}
}

// advance steps one frame. Replays ignore live, which only drives the
// keyboard mode.
func (p *Playing) advance(live system.InputState) {
	in := live
	if p.replayer != nil {
		var ok bool
		in, ok = p.replayer.GetInput()
		if !ok {
			p.state = state.StateReplayDone
			p.log.Info("replay finished", "frame", p.sim.Frame(), "player", p.sim.Player.CollisionBox().String())
			return
		}
	}
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}
	p.sim.Step(in)
}

func (p *Playing) reset() {
	if err := p.sim.Reset(); err != nil {
		p.log.Failure("failed to reset stage", err)
		return
	}
	if p.replayer != nil {
		p.replayer.Reset()
		p.state = state.StateReplaying
	} else {
		p.state = state.StatePlaying
	}
	if p.recorder != nil {
		p.recorder.Restart()
		p.log.Info("recording restarted")
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.Save(p.recordPath); err != nil {
		p.log.Failure("failed to save recording", err, "path", p.recordPath)
		return
	}
	p.log.Info("recording saved", "path", p.recordPath, "frames", p.recorder.FrameCount())
}

// OnEnter implements scene.Scene
func (p *Playing) OnEnter() {
	p.log.Info("viewer started", "sprites", p.sim.Stage.Len())
}

// OnExit implements scene.Scene
func (p *Playing) OnExit() {
	p.saveRecording()
}
