package world

import (
	"fmt"

	"github.com/younwookim/xcore/internal/domain/geometry"
)

// CollisionPlacement records which obstacle matched a query and where.
// Slope matches carry the world-space triangle and an empty ObstacleBox.
type CollisionPlacement struct {
	Flags         CollisionFlags
	CollisionData CollisionData
	ObstacleBox   geometry.Box
	Slope         geometry.RightTriangle
}

func (p CollisionPlacement) String() string {
	if p.CollisionData.IsSlope() {
		return fmt.Sprintf("%s@%s", p.CollisionData, p.Slope)
	}
	return fmt.Sprintf("%s@%s", p.CollisionData, p.ObstacleBox)
}

// TestCollision classifies one obstacle (a map or a solid sprite) occupying
// obstacle against probe. Slopes use the exact triangle when precise is set and
// the whole obstacle box otherwise. The returned triangle is non-empty only for
// slope matches. Matches are appended to placements when it is not nil.
func TestCollision(probe geometry.Probe, data CollisionData, obstacle geometry.Box, ignore CollisionFlags,
	precise bool, placements *[]CollisionPlacement) (CollisionFlags, geometry.RightTriangle) {
	if data == CollisionNone || !probe.IntersectsBox(obstacle) {
		return FlagNone, geometry.EmptyTriangle
	}

	if data.IsSlope() {
		if ignore&FlagSlope != 0 {
			return FlagNone, geometry.EmptyTriangle
		}
		slope := MakeSlopeTriangle(data).Translate(obstacle.LeftTop())
		if precise && !probe.IntersectsTriangle(slope) {
			return FlagNone, geometry.EmptyTriangle
		}
		if placements != nil {
			*placements = append(*placements, CollisionPlacement{Flags: FlagSlope, CollisionData: data, Slope: slope})
		}
		return FlagSlope, slope
	}

	if ignore&primaryFlag(data) != 0 {
		return FlagNone, geometry.EmptyTriangle
	}
	flags := ToCollisionFlags(data) &^ ignore
	if flags == FlagNone {
		return FlagNone, geometry.EmptyTriangle
	}
	if placements != nil {
		*placements = append(*placements, CollisionPlacement{Flags: flags, CollisionData: data, ObstacleBox: obstacle})
	}
	return flags, geometry.EmptyTriangle
}
