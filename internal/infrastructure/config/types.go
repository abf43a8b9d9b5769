package config

// Speeds and accelerations in physics.json are raw sub-pixel units: 256 of
// them make one pixel, so a gravity of 64 is a quarter pixel per frame squared.
const SubpixelsPerPixel = 256

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Display  DisplayConfig   `json:"display"`
	Physics  PhysicsSettings `json:"physics"`
	Player   PlayerConfig    `json:"player"`
	Movement MovementConfig  `json:"movement"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

// PhysicsSettings holds the falling constants, in sub-pixels.
type PhysicsSettings struct {
	Gravity                         int `json:"gravity"`
	UnderwaterGravity               int `json:"underwaterGravity"`
	TerminalDownwardSpeed           int `json:"terminalDownwardSpeed"`
	UnderwaterTerminalDownwardSpeed int `json:"underwaterTerminalDownwardSpeed"`
}

// PlayerConfig describes the player sprite. The hitbox is relative to the
// bottom-middle origin.
type PlayerConfig struct {
	Hitbox       Rect `json:"hitbox"`
	HeadHeight   int  `json:"headHeight"`
	LegsHeight   int  `json:"legsHeight"`
	WorldProfile bool `json:"worldProfile"`
}

// MovementConfig holds the player speeds, in sub-pixels per frame.
type MovementConfig struct {
	WalkSpeed int `json:"walkSpeed"`
	DashSpeed int `json:"dashSpeed"`
	JumpSpeed int `json:"jumpSpeed"`
}

// Rect is an integer pixel rectangle.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports rectangles without area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
