package world

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/younwookim/xcore/internal/domain/geometry"
)

// CollisionData is the collision semantics shared by every pixel of a map.
// The codes match the ones stored in the cartridge level data.
type CollisionData uint8

const (
	CollisionNone CollisionData = 0x00

	Slope16_8  CollisionData = 0x01
	Slope8_0   CollisionData = 0x02
	Slope8_16  CollisionData = 0x03
	Slope0_8   CollisionData = 0x04
	Slope16_12 CollisionData = 0x05
	Slope12_8  CollisionData = 0x06
	Slope8_4   CollisionData = 0x07
	Slope4_0   CollisionData = 0x08
	Slope12_16 CollisionData = 0x09
	Slope8_12  CollisionData = 0x0A
	Slope4_8   CollisionData = 0x0B
	Slope0_4   CollisionData = 0x0C

	Water        CollisionData = 0x0D
	WaterSurface CollisionData = 0x0E
	Mud          CollisionData = 0x11
	Ladder       CollisionData = 0x12
	TopLadder    CollisionData = 0x13
	TopMud       CollisionData = 0x1C

	Lava             CollisionData = 0x33
	Solid2           CollisionData = 0x34
	Solid3           CollisionData = 0x35
	UnclimbableSolid CollisionData = 0x36
	LeftConveyor     CollisionData = 0x37
	RightConveyor    CollisionData = 0x38
	UpSlopeBase      CollisionData = 0x39
	DownSlopeBase    CollisionData = 0x3A
	Solid            CollisionData = 0x3B
	Breakable        CollisionData = 0x3C
	Door             CollisionData = 0x3D
	NonLethalSpike   CollisionData = 0x3E
	LethalSpike      CollisionData = 0x3F

	LeftConveyorSlope16_12  CollisionData = 0x45
	LeftConveyorSlope12_8   CollisionData = 0x46
	LeftConveyorSlope8_4    CollisionData = 0x47
	LeftConveyorSlope4_0    CollisionData = 0x48
	RightConveyorSlope12_16 CollisionData = 0x49
	RightConveyorSlope8_12  CollisionData = 0x4A
	RightConveyorSlope4_8   CollisionData = 0x4B
	RightConveyorSlope0_4   CollisionData = 0x4C

	SemiSolid CollisionData = 0x53

	SlipperySlope16_8  CollisionData = 0x81
	SlipperySlope8_0   CollisionData = 0x82
	SlipperySlope8_16  CollisionData = 0x83
	SlipperySlope0_8   CollisionData = 0x84
	SlipperySlope16_12 CollisionData = 0x85
	SlipperySlope12_8  CollisionData = 0x86
	SlipperySlope8_4   CollisionData = 0x87
	SlipperySlope4_0   CollisionData = 0x88
	SlipperySlope12_16 CollisionData = 0x89
	SlipperySlope8_12  CollisionData = 0x8A
	SlipperySlope4_8   CollisionData = 0x8B
	SlipperySlope0_4   CollisionData = 0x8C

	SlipperySlopeBase   CollisionData = 0xBA
	SlipperyBorderFloor CollisionData = 0xBB
	SlipperyFloor       CollisionData = 0xBE
)

var collisionDataNames = map[CollisionData]string{
	CollisionNone: "NONE",

	Slope16_8: "SLOPE_16_8", Slope8_0: "SLOPE_8_0", Slope8_16: "SLOPE_8_16", Slope0_8: "SLOPE_0_8",
	Slope16_12: "SLOPE_16_12", Slope12_8: "SLOPE_12_8", Slope8_4: "SLOPE_8_4", Slope4_0: "SLOPE_4_0",
	Slope12_16: "SLOPE_12_16", Slope8_12: "SLOPE_8_12", Slope4_8: "SLOPE_4_8", Slope0_4: "SLOPE_0_4",

	Water: "WATER", WaterSurface: "WATER_SURFACE", Mud: "MUD", Ladder: "LADDER", TopLadder: "TOP_LADDER",
	TopMud: "TOP_MUD",

	Lava: "LAVA", Solid2: "SOLID2", Solid3: "SOLID3", UnclimbableSolid: "UNCLIMBABLE_SOLID",
	LeftConveyor: "LEFT_CONVEYOR", RightConveyor: "RIGHT_CONVEYOR", UpSlopeBase: "UP_SLOPE_BASE",
	DownSlopeBase: "DOWN_SLOPE_BASE", Solid: "SOLID", Breakable: "BREAKABLE", Door: "DOOR",
	NonLethalSpike: "NON_LETHAL_SPIKE", LethalSpike: "LETHAL_SPIKE",

	LeftConveyorSlope16_12: "LEFT_CONVEYOR_SLOPE_16_12", LeftConveyorSlope12_8: "LEFT_CONVEYOR_SLOPE_12_8",
	LeftConveyorSlope8_4: "LEFT_CONVEYOR_SLOPE_8_4", LeftConveyorSlope4_0: "LEFT_CONVEYOR_SLOPE_4_0",
	RightConveyorSlope12_16: "RIGHT_CONVEYOR_SLOPE_12_16", RightConveyorSlope8_12: "RIGHT_CONVEYOR_SLOPE_8_12",
	RightConveyorSlope4_8: "RIGHT_CONVEYOR_SLOPE_4_8", RightConveyorSlope0_4: "RIGHT_CONVEYOR_SLOPE_0_4",

	SemiSolid: "SEMI_SOLID",

	SlipperySlope16_8: "SLIPPERY_SLOPE_16_8", SlipperySlope8_0: "SLIPPERY_SLOPE_8_0",
	SlipperySlope8_16: "SLIPPERY_SLOPE_8_16", SlipperySlope0_8: "SLIPPERY_SLOPE_0_8",
	SlipperySlope16_12: "SLIPPERY_SLOPE_16_12", SlipperySlope12_8: "SLIPPERY_SLOPE_12_8",
	SlipperySlope8_4: "SLIPPERY_SLOPE_8_4", SlipperySlope4_0: "SLIPPERY_SLOPE_4_0",
	SlipperySlope12_16: "SLIPPERY_SLOPE_12_16", SlipperySlope8_12: "SLIPPERY_SLOPE_8_12",
	SlipperySlope4_8: "SLIPPERY_SLOPE_4_8", SlipperySlope0_4: "SLIPPERY_SLOPE_0_4",

	SlipperySlopeBase: "SLIPPERY_SLOPE_BASE", SlipperyBorderFloor: "SLIPPERY_BORDER_FLOOR",
	SlipperyFloor: "SLIPPERY_FLOOR",
}

var collisionDataByName = func() map[string]CollisionData {
	m := make(map[string]CollisionData, len(collisionDataNames))
	for d, name := range collisionDataNames {
		m[name] = d
	}
	return m
}()

// String returns the catalog name, or UNKNOWN_XX for codes without semantics.
func (d CollisionData) String() string {
	if name, ok := collisionDataNames[d]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_%02X", uint8(d))
}

// ParseCollisionData accepts a catalog name (case-insensitive) or a numeric
// code such as "0x3B".
func ParseCollisionData(s string) (CollisionData, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if d, ok := collisionDataByName[name]; ok {
		return d, nil
	}
	if v, err := strconv.ParseUint(name, 0, 8); err == nil {
		return CollisionData(v), nil
	}
	if strings.HasPrefix(name, "UNKNOWN_") {
		if v, err := strconv.ParseUint(strings.TrimPrefix(name, "UNKNOWN_"), 16, 8); err == nil {
			return CollisionData(v), nil
		}
	}
	return CollisionNone, fmt.Errorf("unknown collision data %q", s)
}

// IsSolidBlock reports data that behaves as a full solid square.
func (d CollisionData) IsSolidBlock() bool {
	switch d {
	case Mud, TopMud, Lava, Solid2, Solid3, UnclimbableSolid, LeftConveyor, RightConveyor,
		UpSlopeBase, DownSlopeBase, Solid, Breakable, NonLethalSpike, LethalSpike,
		SlipperySlopeBase, SlipperyBorderFloor, SlipperyFloor, Door:
		return true
	}
	return false
}

func (d CollisionData) IsSlope() bool {
	return d >= Slope16_8 && d <= Slope0_4 ||
		d.IsConveyorSlope() ||
		d.IsSlipperySlope()
}

func (d CollisionData) IsConveyorSlope() bool {
	return d >= LeftConveyorSlope16_12 && d <= RightConveyorSlope0_4
}

func (d CollisionData) IsSlipperySlope() bool {
	return d >= SlipperySlope16_8 && d <= SlipperySlope0_4
}

func (d CollisionData) IsLadder() bool       { return d == Ladder }
func (d CollisionData) IsTopLadder() bool    { return d == TopLadder }
func (d CollisionData) IsWater() bool        { return d == Water }
func (d CollisionData) IsWaterSurface() bool { return d == WaterSurface }

// IsSpike reports solids that hurt on contact.
func (d CollisionData) IsSpike() bool {
	return d == NonLethalSpike || d == LethalSpike || d == Lava
}

// IsConveyor reports floors that push whoever stands on them.
func (d CollisionData) IsConveyor() bool {
	return d == LeftConveyor || d == RightConveyor || d.IsConveyorSlope()
}

// IsSlippery reports low friction floors and slopes.
func (d CollisionData) IsSlippery() bool {
	return d == SlipperySlopeBase || d == SlipperyBorderFloor || d == SlipperyFloor || d.IsSlipperySlope()
}

func (d CollisionData) IsMud() bool {
	return d == Mud || d == TopMud
}

// Category is the exclusive classification of a CollisionData value.
type Category uint8

const (
	CategoryNone Category = iota
	CategorySolid
	CategorySlope
	CategoryLadder
	CategoryTopLadder
	CategoryWater
	CategoryWaterSurface
)

func (c Category) String() string {
	switch c {
	case CategorySolid:
		return "solid"
	case CategorySlope:
		return "slope"
	case CategoryLadder:
		return "ladder"
	case CategoryTopLadder:
		return "top-ladder"
	case CategoryWater:
		return "water"
	case CategoryWaterSurface:
		return "water-surface"
	}
	return "none"
}

func (d CollisionData) Category() Category {
	switch {
	case d.IsSolidBlock():
		return CategorySolid
	case d.IsSlope():
		return CategorySlope
	case d.IsLadder():
		return CategoryLadder
	case d.IsTopLadder():
		return CategoryTopLadder
	case d.IsWater():
		return CategoryWater
	case d.IsWaterSurface():
		return CategoryWaterSurface
	}
	return CategoryNone
}

// slopeHeights gives the surface height at the left and right border of the
// map, measured down from its top.
var slopeHeights = map[CollisionData][2]int{
	Slope16_8: {16, 8}, Slope8_0: {8, 0}, Slope8_16: {8, 16}, Slope0_8: {0, 8},
	Slope16_12: {16, 12}, Slope12_8: {12, 8}, Slope8_4: {8, 4}, Slope4_0: {4, 0},
	Slope12_16: {12, 16}, Slope8_12: {8, 12}, Slope4_8: {4, 8}, Slope0_4: {0, 4},

	LeftConveyorSlope16_12: {16, 12}, LeftConveyorSlope12_8: {12, 8},
	LeftConveyorSlope8_4: {8, 4}, LeftConveyorSlope4_0: {4, 0},
	RightConveyorSlope12_16: {12, 16}, RightConveyorSlope8_12: {8, 12},
	RightConveyorSlope4_8: {4, 8}, RightConveyorSlope0_4: {0, 4},

	SlipperySlope16_8: {16, 8}, SlipperySlope8_0: {8, 0}, SlipperySlope8_16: {8, 16}, SlipperySlope0_8: {0, 8},
	SlipperySlope16_12: {16, 12}, SlipperySlope12_8: {12, 8}, SlipperySlope8_4: {8, 4}, SlipperySlope4_0: {4, 0},
	SlipperySlope12_16: {12, 16}, SlipperySlope8_12: {8, 12}, SlipperySlope4_8: {4, 8}, SlipperySlope0_4: {0, 4},
}

// SlopeHeights returns the left and right surface heights of a slope code.
func (d CollisionData) SlopeHeights() (left, right int, ok bool) {
	h, ok := slopeHeights[d]
	return h[0], h[1], ok
}

// MakeSlopeTriangleFromHeights builds the map-local triangle whose hypotenuse
// runs from (0, left) to (MapSize, right).
func MakeSlopeTriangleFromHeights(left, right int) geometry.RightTriangle {
	if left < right {
		return geometry.NewRightTriangle(geometry.Vec(0, right), MapSizeFixed, geometry.I(left-right))
	}
	return geometry.NewRightTriangle(geometry.Vec(MapSize, left), -MapSizeFixed, geometry.I(right-left))
}

// MakeSlopeTriangle returns the map-local slope triangle, or an empty one for
// data that is not a slope. Translate it by the map's left-top corner.
func MakeSlopeTriangle(d CollisionData) geometry.RightTriangle {
	left, right, ok := d.SlopeHeights()
	if !ok {
		return geometry.EmptyTriangle
	}
	return MakeSlopeTriangleFromHeights(left, right)
}
