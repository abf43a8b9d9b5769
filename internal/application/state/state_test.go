package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_String(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
		running  bool
	}{
		{StatePlaying, "Playing", true},
		{StatePaused, "Paused", false},
		{StateReplaying, "Replaying", true},
		{StateReplayDone, "ReplayDone", false},
		{GameState(99), "Unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
			assert.Equal(t, tt.running, tt.state.Running())
		})
	}
}
