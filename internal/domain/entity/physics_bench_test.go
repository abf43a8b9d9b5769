package entity

import (
	"fmt"
	"testing"

	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
)

func benchStage(b *testing.B, actors int) *Stage {
	b.Helper()

	l := world.NewLayout(1, 4)
	if err := l.FillRectangle(geometry.BoxFromInts(0, 240, 4*world.SceneSize, world.MapSize), l.AddMap(world.Solid)); err != nil {
		b.Fatal(err)
	}
	st := NewStage(l, DefaultPhysics())
	for i := 0; i < actors; i++ {
		cfg := actorConfig("actor", 16+i*16%(4*world.SceneSize-32), 120)
		if _, err := st.Spawn(cfg); err != nil {
			b.Fatal(err)
		}
	}
	return st
}

// BenchmarkStage_DoPhysics measures a frame of falling and resting actors.
// Actors overlap freely since they are not solid.
func BenchmarkStage_DoPhysics(b *testing.B) {
	for _, n := range []int{1, 16, 64} {
		b.Run(fmt.Sprintf("actors=%d", n), func(b *testing.B) {
			st := benchStage(b, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				st.DoPhysics()
			}
		})
	}
}
