package collision

import (
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
)

// TraceRay moves the test vector along direction until it meets an obstacle
// that blocks the move, travelling at most maxDistance along the dominant axis.
// Candidates are gathered one map-sized stretch at a time; the nearest exact
// contact wins, and a block keeps the record on a tie with a slope. It returns
// the flags of the obstacle hit, or FlagNone when the ray travelled the whole
// distance.
func (c *Checker) TraceRay(direction geometry.Vector, maxDistance fixed.Int52_12) world.CollisionFlags {
	c.nearestDistance = 0
	c.nearestObstacleBox = geometry.Box{}
	c.nearestObstacleSlope = geometry.EmptyTriangle
	if direction.IsZero() || maxDistance <= 0 {
		return world.FlagNone
	}

	dominant := direction.Dominant()
	start := c.testVector
	end := start.Add(geometry.Vector{
		X: geometry.MulDiv(direction.X, maxDistance, dominant),
		Y: geometry.MulDiv(direction.Y, maxDistance, dominant),
	})
	ray := geometry.Segment(start, end)
	blockDir := direction.Direction()

	var (
		best      geometry.Param
		bestFlags world.CollisionFlags
		found     bool
		scratch   []world.CollisionPlacement
	)

	strides := geometry.CeilDiv(maxDistance, world.MapSizeFixed)
	for k := 0; k < strides && !found; k++ {
		from := ray.At(geometry.Param{Num: int64(k), Den: int64(strides)})
		to := ray.At(geometry.Param{Num: int64(k + 1), Den: int64(strides)})

		scratch = scratch[:0]
		c.collide(geometry.Segment(from, to), &scratch)

		for _, p := range scratch {
			if !p.Flags.CanBlockTheMove(blockDir) {
				continue
			}
			t, ok := contactParam(ray, p)
			if !ok {
				continue
			}
			isSlope := p.CollisionData.IsSlope()
			wasSlope := found && bestFlags.IsSlope()
			if !found || t.Less(best) || (!t.Less(best) && !best.Less(t) && wasSlope && !isSlope) {
				best, bestFlags, found = t, p.Flags, true
				c.nearestObstacleBox = p.ObstacleBox
				c.nearestObstacleSlope = p.Slope
			}
		}
	}

	if !found {
		c.testVector = end
		c.nearestDistance = maxDistance
		return world.FlagNone
	}

	c.testVector = ray.At(best)
	c.nearestDistance = geometry.MulDiv(maxDistance, fixed.Int52_12(best.Num), fixed.Int52_12(best.Den))
	if c.opts.ComputePlacements {
		c.placements = append(c.placements, world.CollisionPlacement{
			Flags:         bestFlags,
			CollisionData: placementData(scratch, c.nearestObstacleBox, c.nearestObstacleSlope),
			ObstacleBox:   c.nearestObstacleBox,
			Slope:         c.nearestObstacleSlope,
		})
	}
	if bestFlags.IsSlope() {
		c.slopeTriangle = c.nearestObstacleSlope
	}
	return bestFlags
}

// contactParam returns where ray first meets the obstacle of p.
func contactParam(ray geometry.LineSegment, p world.CollisionPlacement) (geometry.Param, bool) {
	if !p.Slope.IsEmpty() {
		if p.Slope.Contains(ray.Start) {
			return geometry.Param{Num: 0, Den: 1}, true
		}
		var best geometry.Param
		found := false
		for _, edge := range []geometry.LineSegment{p.Slope.HypotenuseLine(), p.Slope.HCathetusLine(), p.Slope.VCathetusLine()} {
			if t, ok := ray.IntersectionParam(edge); ok && (!found || t.Less(best)) {
				best, found = t, true
			}
		}
		return best, found
	}
	// Boxes are half-open: a ray running along the right or bottom face never enters.
	b := p.ObstacleBox
	enter, exit, ok := ray.ClipRange(b)
	if !ok {
		return geometry.Param{}, false
	}
	in, out := ray.At(enter), ray.At(exit)
	if in.X == b.Right() && out.X == b.Right() || in.Y == b.Bottom() && out.Y == b.Bottom() {
		return geometry.Param{}, false
	}
	return enter, true
}

func placementData(list []world.CollisionPlacement, box geometry.Box, slope geometry.RightTriangle) world.CollisionData {
	for _, p := range list {
		if p.ObstacleBox == box && p.Slope == slope {
			return p.CollisionData
		}
	}
	return world.CollisionNone
}
