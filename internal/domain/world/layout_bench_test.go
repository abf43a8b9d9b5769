package world

import (
	"testing"

	"github.com/younwookim/xcore/internal/domain/geometry"
)

// benchLayout is 4x4 scenes with a floor and a staircase of slopes on every
// scene row.
func benchLayout(b *testing.B) *Layout {
	b.Helper()

	l := NewLayout(4, 4)
	solid := l.AddMap(Solid)
	for row := 0; row < 4; row++ {
		top := row*SceneSize + 240
		if err := l.FillRectangle(geometry.BoxFromInts(0, top, 4*SceneSize, MapSize), solid); err != nil {
			b.Fatal(err)
		}
		for col := 0; col < 4*SideMapsPerScene; col += 4 {
			if _, err := l.AddMapAt(geometry.Vec(col*MapSize, top-MapSize), Slope16_8); err != nil {
				b.Fatal(err)
			}
		}
	}
	return l
}

// The layout is a scene/block/map tree; flatGrid is the same maps in one
// row-major slice, kept to measure what the tree costs per lookup.
func flatGrid(l *Layout) []*Map {
	grid := make([]*Map, l.MapRowCount()*l.MapColCount())
	l.EachMap(func(row, col int, m *Map) {
		grid[row*l.MapColCount()+col] = m
	})
	return grid
}

var sinkMap *Map

func BenchmarkLayout_GetMapAt(b *testing.B) {
	l := benchLayout(b)
	rows, cols := l.MapRowCount(), l.MapColCount()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkMap = l.GetMapAt(i%rows, (i/rows)%cols)
	}
}

func BenchmarkFlatGrid_Lookup(b *testing.B) {
	l := benchLayout(b)
	grid := flatGrid(l)
	rows, cols := l.MapRowCount(), l.MapColCount()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkMap = grid[(i%rows)*cols+(i/rows)%cols]
	}
}

var sinkFlags CollisionFlags

func BenchmarkLayout_GetCollisionFlags(b *testing.B) {
	l := benchLayout(b)
	box := geometry.BoxFromInts(60, 200, 16, 32)
	for _, precise := range []bool{false, true} {
		name := "coarse"
		if precise {
			name = "precise"
		}
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkFlags = l.GetCollisionFlags(box, FlagNone, precise, geometry.SideBottom, nil)
			}
		})
	}
}
