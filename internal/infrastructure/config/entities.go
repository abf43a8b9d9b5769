package config

// SpriteSpawnConfig places a sprite when the stage loads.
type SpriteSpawnConfig struct {
	Name      string `json:"name"`
	Rect      Rect   `json:"rect"`
	Collision string `json:"collision,omitempty"` // catalog name, empty for none
	Gravity   bool   `json:"gravity"`
	Static    bool   `json:"static,omitempty"`
}

// PlatformConfig is a solid sprite moving along a path of waypoints. Each
// leg takes Duration seconds; the path is walked forth and back.
type PlatformConfig struct {
	Name      string           `json:"name"`
	Rect      Rect             `json:"rect"`
	Collision string           `json:"collision,omitempty"` // defaults to SOLID
	Path      []PositionConfig `json:"path"`
	Duration  float64          `json:"duration"`
	Easing    string           `json:"easing,omitempty"` // linear, inOutSine or inOutQuad
}
