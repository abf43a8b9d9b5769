package world

import (
	"strings"

	"github.com/younwookim/xcore/internal/domain/geometry"
)

// CollisionFlags is the result of every collision query.
type CollisionFlags uint16

const (
	FlagNone         CollisionFlags = 0
	FlagBlock        CollisionFlags = 1 << 0
	FlagSpike        CollisionFlags = 1 << 1
	FlagSlope        CollisionFlags = 1 << 2
	FlagLadder       CollisionFlags = 1 << 3
	FlagTopLadder    CollisionFlags = 1 << 4
	FlagUnclimbable  CollisionFlags = 1 << 5
	FlagWater        CollisionFlags = 1 << 6
	FlagWaterSurface CollisionFlags = 1 << 7

	// FlagsPassThrough are never solid for sideways or upward motion.
	FlagsPassThrough = FlagLadder | FlagTopLadder | FlagWater | FlagWaterSurface
)

// Has reports whether every bit of o is set.
func (f CollisionFlags) Has(o CollisionFlags) bool {
	return f&o == o && o != 0
}

// Any reports whether some bit of o is set.
func (f CollisionFlags) Any(o CollisionFlags) bool {
	return f&o != 0
}

func (f CollisionFlags) IsSlope() bool { return f&FlagSlope != 0 }

// CanBlockTheMove reports whether these flags stop motion toward dir. Blocks
// stop everything; unclimbable walls and slopes stop sideways motion; top
// ladders and slopes stop falling.
func (f CollisionFlags) CanBlockTheMove(dir geometry.Direction) bool {
	if f == FlagNone {
		return false
	}
	if f&FlagBlock != 0 {
		return true
	}
	if dir&geometry.DirHorizontal != 0 && f&(FlagUnclimbable|FlagSlope) != 0 {
		return true
	}
	return dir&geometry.DirDown != 0 && f&(FlagTopLadder|FlagSlope) != 0
}

var flagNames = []struct {
	flag CollisionFlags
	name string
}{
	{FlagBlock, "BLOCK"},
	{FlagSpike, "SPIKE"},
	{FlagSlope, "SLOPE"},
	{FlagLadder, "LADDER"},
	{FlagTopLadder, "TOP_LADDER"},
	{FlagUnclimbable, "UNCLIMBABLE"},
	{FlagWater, "WATER"},
	{FlagWaterSurface, "WATER_SURFACE"},
}

func (f CollisionFlags) String() string {
	if f == FlagNone {
		return "NONE"
	}
	var parts []string
	for _, e := range flagNames {
		if f&e.flag != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// ToCollisionFlags returns the flags a map with this data reports when touched.
func ToCollisionFlags(d CollisionData) CollisionFlags {
	switch {
	case d == UnclimbableSolid:
		return FlagBlock | FlagUnclimbable
	case d.IsSpike():
		return FlagBlock | FlagSpike
	case d.IsSolidBlock():
		return FlagBlock
	case d.IsSlope():
		return FlagSlope
	case d.IsLadder():
		return FlagLadder
	case d.IsTopLadder():
		return FlagTopLadder
	case d.IsWater():
		return FlagWater
	case d.IsWaterSurface():
		return FlagWaterSurface
	}
	return FlagNone
}

// primaryFlag is the flag whose presence in an ignore mask discards the data entirely.
func primaryFlag(d CollisionData) CollisionFlags {
	if d.IsSolidBlock() {
		return FlagBlock
	}
	return ToCollisionFlags(d)
}
