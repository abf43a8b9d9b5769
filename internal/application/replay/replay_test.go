package replay

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/xcore/internal/application/system"
	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/infrastructure/config"
)

func createDemoSimulation(t *testing.T) *system.Simulation {
	t.Helper()

	loader := config.NewLoader("../../../cmd/game/configs")
	physics, err := loader.LoadPhysics()
	require.NoError(t, err)
	stage, err := loader.LoadStage("demo")
	require.NoError(t, err)

	sim, err := system.NewSimulation(physics, stage, nil)
	require.NoError(t, err)
	return sim
}

// scriptedInput walks right, hops twice, dashes back and idles.
func scriptedInput(frame int, prev system.InputState) system.InputState {
	in := system.InputState{}
	switch {
	case frame < 40:
		in.Right = true
	case frame < 60:
		in.Right, in.Jump = true, true
	case frame < 70:
		in.Right = true
	case frame < 75:
		in.Jump = true
	case frame < 140:
		in.Left, in.Dash = true, true
	case frame < 150:
		in.Left, in.Jump = true, true
	}
	in.JumpPressed = in.Jump && !prev.Jump
	in.JumpReleased = !in.Jump && prev.Jump
	return in
}

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Version: Version,
		Stage:   "test",
		Frames: []FrameInput{
			{F: 0, L: true},
			{F: 1, R: true, J: true},
			{F: 2, J: true, Dsh: true},
			{F: 3},
		},
	}

	replayer := NewReplayer(data)

	// Frame 0
	input, ok := replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.InputState{Left: true}, input)

	// Frame 1
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.InputState{Right: true, Jump: true, JumpPressed: true}, input)

	// Frame 2
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.InputState{Jump: true, Dash: true}, input, "held jump is not pressed again")

	// Frame 3
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.InputState{JumpReleased: true}, input)

	// End of frames
	_, ok = replayer.GetInput()
	assert.False(t, ok)
}

func TestReplayer_CurrentFrame(t *testing.T) {
	replayer := NewReplayer(ReplayData{Frames: make([]FrameInput, 5)})

	assert.Equal(t, 0, replayer.CurrentFrame())
	assert.Equal(t, 5, replayer.TotalFrames())

	replayer.GetInput()
	assert.Equal(t, 1, replayer.CurrentFrame())

	replayer.GetInput()
	replayer.GetInput()
	assert.Equal(t, 3, replayer.CurrentFrame())
}

func TestReplayer_Reset(t *testing.T) {
	replayer := NewReplayer(ReplayData{Frames: []FrameInput{{F: 0, J: true}, {F: 1, J: true}}})

	// Advance to end
	replayer.GetInput()
	replayer.GetInput()
	_, ok := replayer.GetInput()
	assert.False(t, ok)

	// Reset
	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())

	// The first frame presses jump again
	input, ok := replayer.GetInput()
	assert.True(t, ok)
	assert.True(t, input.JumpPressed)
}

func TestRecorder_RecordFrame(t *testing.T) {
	rec := NewRecorder("demo")
	require.True(t, rec.IsRecording())

	rec.RecordFrame(system.InputState{Left: true, Jump: true, JumpPressed: true})
	rec.RecordFrame(system.InputState{Dash: true, JumpReleased: true})
	rec.Stop()
	rec.RecordFrame(system.InputState{Right: true})

	assert.False(t, rec.IsRecording())
	assert.Equal(t, 2, rec.FrameCount())

	data := rec.GetData()
	assert.Equal(t, Version, data.Version)
	assert.Equal(t, "demo", data.Stage)
	assert.Equal(t, []FrameInput{{F: 0, L: true, J: true}, {F: 1, Dsh: true}}, data.Frames)

	rec.Restart()
	assert.True(t, rec.IsRecording())
	assert.Zero(t, rec.FrameCount())
	rec.RecordFrame(system.InputState{})
	assert.Equal(t, 0, rec.GetData().Frames[0].F)
}

func TestRecorder_EncodeDecode(t *testing.T) {
	rec := NewRecorder("demo")
	rec.RecordFrame(system.InputState{Right: true})
	rec.RecordFrame(system.InputState{Right: true, Jump: true})

	var buf bytes.Buffer
	require.NoError(t, rec.Encode(&buf))
	assert.Contains(t, buf.String(), `"stage": "demo"`)
	assert.NotContains(t, buf.String(), `"l"`, "released keys are omitted")

	data, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, rec.GetData(), *data)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version":"1.0","frames":[]}`))
	assert.ErrorIs(t, err, ErrEmptyReplay)

	_, err = Decode(strings.NewReader(`{"frames":`))
	assert.Error(t, err)

	_, err = LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	assert.ErrorIs(t, NewRecorder("demo").Save(filepath.Join(t.TempDir(), "empty.json")), ErrEmptyReplay)
}

func TestReplayIdlePlayer(t *testing.T) {
	sim := createDemoSimulation(t)
	spawn := sim.Player.CollisionBox()

	boxes := NewReplayer(ReplayData{Frames: make([]FrameInput, 600)}).Run(sim)

	assert.Equal(t, spawn, boxes[0], "an idle player never drifts")
	assert.True(t, sim.Player.Velocity.IsZero())
	assert.Equal(t, 600, sim.Frame())
}

func TestReplayDeterminism(t *testing.T) {
	// Play the script live while recording it.
	live := createDemoSimulation(t)
	rec := NewRecorder("demo")
	var prev system.InputState
	for frame := range 300 {
		in := scriptedInput(frame, prev)
		rec.RecordFrame(in)
		live.Step(in)
		prev = in
	}
	want := live.Boxes()
	require.NotEqual(t, geometry.Vec(120, 208), live.Player.Origin(), "the script moves the player")

	path := filepath.Join(t.TempDir(), GenerateFilename())
	require.NoError(t, rec.Save(path))
	data, err := LoadReplay(path)
	require.NoError(t, err)

	replayer := NewReplayer(*data)
	assert.Equal(t, "demo", replayer.Stage())
	assert.Equal(t, want, replayer.Run(createDemoSimulation(t)), "the replay reproduces the live session")

	replayer.Reset()
	assert.Equal(t, want, replayer.Run(createDemoSimulation(t)), "and does so every time")
}
