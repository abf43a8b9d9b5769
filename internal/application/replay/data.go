package replay

// FrameInput records the keys held during a single frame. Press and release
// edges are derived from the previous frame on playback.
type FrameInput struct {
	F   int  `json:"f"`             // Frame number
	L   bool `json:"l,omitempty"`   // Left
	R   bool `json:"r,omitempty"`   // Right
	J   bool `json:"j,omitempty"`   // Jump
	Dsh bool `json:"dsh,omitempty"` // Dash
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// Version is written into every new recording.
const Version = "1.0"
