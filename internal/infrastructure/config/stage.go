package config

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Size        StageSizeConfig     `json:"size"`
	PlayerSpawn PositionConfig      `json:"playerSpawn"`
	Layers      LayersConfig        `json:"layers"`
	TileMapping map[string]string   `json:"tileMapping"`
	Sprites     []SpriteSpawnConfig `json:"sprites"`
	Platforms   []PlatformConfig    `json:"platforms"`
}

// StageSizeConfig is the stage extent in pixels. It is rounded up to whole
// scenes when the layout is built.
type StageSizeConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type PositionConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LayersConfig holds the collision rows. Each character is one 16x16 map;
// '.' and ' ' are empty.
type LayersConfig struct {
	Collision []string `json:"collision"`
}

// EmptyCell reports the characters that never need a mapping.
func EmptyCell(r rune) bool {
	return r == '.' || r == ' '
}
