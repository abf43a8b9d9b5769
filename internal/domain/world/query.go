package world

import (
	"github.com/younwookim/xcore/internal/domain/geometry"
)

// MapRange returns the inclusive map-grid range covering box, clamped to the
// layout. ok is false for an empty layout.
func (l *Layout) MapRange(box geometry.Box) (start, end Cell, ok bool) {
	rows, cols := l.MapRowCount(), l.MapColCount()
	if rows == 0 || cols == 0 {
		return Cell{}, Cell{}, false
	}
	start = GetMapCellFromPos(box.LeftTop())
	end = GetMapCellFromPos(box.RightBottom())
	start.Row = clampIndex(start.Row, rows)
	start.Col = clampIndex(start.Col, cols)
	end.Row = clampIndex(end.Row, rows)
	end.Col = clampIndex(end.Col, cols)
	return start, end, true
}

func clampIndex(i, n int) int {
	return min(max(i, 0), n-1)
}

// Collide classifies probe against every map it may touch and returns the
// union of matched flags. The returned triangle is the last slope matched.
func (l *Layout) Collide(probe geometry.Probe, ignore CollisionFlags, precise bool,
	placements *[]CollisionPlacement) (CollisionFlags, geometry.RightTriangle) {
	start, end, ok := l.MapRange(probe.WrappingBox())
	if !ok {
		return FlagNone, geometry.EmptyTriangle
	}

	result := FlagNone
	slope := geometry.EmptyTriangle
	for row := start.Row; row <= end.Row; row++ {
		for col := start.Col; col <= end.Col; col++ {
			m := l.GetMapAt(row, col)
			if m == nil || m.CollisionData == CollisionNone {
				continue
			}
			flags, tri := TestCollision(probe, m.CollisionData, GetMapBoundingBox(Cell{Row: row, Col: col}),
				ignore, precise, placements)
			if flags == FlagNone {
				continue
			}
			result |= flags
			if !tri.IsEmpty() {
				slope = tri
			}
		}
	}
	return result, slope
}

// GetCollisionFlags probes the world around box. side selects a one-step strip
// just outside that border of the box; SideInner or SideNone probe the box itself.
func (l *Layout) GetCollisionFlags(box geometry.Box, ignore CollisionFlags, precise bool, side geometry.BoxSide,
	placements *[]CollisionPlacement) CollisionFlags {
	flags, _ := l.Collide(SideProbe(box, side), ignore, precise, placements)
	return flags
}

// SideProbe returns the strip of one step just outside the given border.
func SideProbe(box geometry.Box, side geometry.BoxSide) geometry.Box {
	switch side {
	case geometry.SideLeft:
		return box.Extend(geometry.DirLeft, geometry.StepSize).Strip(geometry.SideLeft, geometry.StepSize)
	case geometry.SideTop:
		return box.Extend(geometry.DirUp, geometry.StepSize).Strip(geometry.SideTop, geometry.StepSize)
	case geometry.SideRight:
		return box.Extend(geometry.DirRight, geometry.StepSize).Strip(geometry.SideRight, geometry.StepSize)
	case geometry.SideBottom:
		return box.Extend(geometry.DirDown, geometry.StepSize).Strip(geometry.SideBottom, geometry.StepSize)
	}
	return box
}
