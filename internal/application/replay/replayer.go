package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/younwookim/xcore/internal/application/system"
	"github.com/younwookim/xcore/internal/domain/geometry"
)

// ErrEmptyReplay is returned for recordings without frames.
var ErrEmptyReplay = errors.New("replay has no frames")

// Replayer handles input playback from recorded data
type Replayer struct {
	data     ReplayData
	frame    int
	prevJump bool
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file)
}

// Decode reads replay data written by Recorder.Encode.
func Decode(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if len(data.Frames) == 0 {
		return nil, ErrEmptyReplay
	}
	return &data, nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	in := system.InputState{
		Left:         fi.L,
		Right:        fi.R,
		Jump:         fi.J,
		JumpPressed:  fi.J && !r.prevJump,
		JumpReleased: !fi.J && r.prevJump,
		Dash:         fi.Dsh,
	}
	r.prevJump = fi.J
	return in, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Stage returns the id of the recorded stage
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.prevJump = false
}

// Run feeds every remaining frame to sim and returns the final collision
// boxes of its sprites.
func (r *Replayer) Run(sim *system.Simulation) []geometry.Box {
	for {
		in, ok := r.GetInput()
		if !ok {
			return sim.Boxes()
		}
		sim.Step(in)
	}
}
