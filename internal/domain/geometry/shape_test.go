package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelogram_HasIntersectionWithBox(t *testing.T) {
	// Top edge of width 4 swept diagonally down-right by (8, 8).
	p := HorizontalParallelogram(Vec(0, 0), Vec(8, 8), I(4))

	tests := []struct {
		name string
		box  Box
		want bool
	}{
		{name: "left of the band", box: BoxFromInts(0, 6, 2, 2), want: false},
		{name: "inside the band", box: BoxFromInts(7, 6, 2, 2), want: true},
		{name: "right of the band", box: BoxFromInts(10, 0, 2, 2), want: false},
		{name: "below the band", box: BoxFromInts(0, 8, 20, 4), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.HasIntersectionWithBox(tt.box))
		})
	}

	assert.Equal(t, BoxFromInts(0, 0, 12, 8), p.WrappingBox())
	assert.True(t, p.ContainsPoint(Vec(6, 4)))
	assert.False(t, p.ContainsPoint(Vec(1, 4)))
}

func TestParallelogram_Degenerate(t *testing.T) {
	p := HorizontalParallelogram(Vec(0, 0), Vec(8, 0), I(4))

	assert.True(t, p.IsDegenerate())
	assert.False(t, p.HasIntersectionWithBox(BoxFromInts(0, -2, 20, 4)))
	assert.True(t, p.ContainsPoint(Vec(6, 0)))
}

func TestParallelogram_HasIntersectionWithTriangle(t *testing.T) {
	p := VerticalParallelogram(Vec(0, 4), Vec(8, 8), I(4))
	tri := NewRightTriangle(Vec(0, 16), I(16), I(-8))

	assert.True(t, p.HasIntersectionWithTriangle(tri))
	assert.False(t, p.HasIntersectionWithTriangle(tri.Translate(Vec(40, 0))))
}

func TestSweep_IntersectsBox(t *testing.T) {
	s := NewSweep(BoxFromInts(0, 0, 4, 4), Vec(8, 8))

	tests := []struct {
		name string
		box  Box
		want bool
	}{
		{name: "corner cut off by the diagonal", box: BoxFromInts(8, 0, 2, 2), want: false},
		{name: "on the path", box: BoxFromInts(5, 3, 2, 2), want: true},
		{name: "end box", box: BoxFromInts(10, 10, 1, 1), want: true},
		{name: "touching end box", box: BoxFromInts(12, 8, 2, 4), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IntersectsBox(tt.box))
		})
	}

	assert.Equal(t, BoxFromInts(0, 0, 12, 12), s.WrappingBox())
}

func TestSweep_IntersectsTriangle(t *testing.T) {
	tri := NewRightTriangle(Vec(0, 32), I(16), I(-8))

	falling := NewSweep(BoxFromInts(4, 0, 4, 4), Vec(0, 26))
	assert.True(t, falling.IntersectsTriangle(tri))

	short := NewSweep(BoxFromInts(4, 0, 4, 4), Vec(0, 10))
	assert.False(t, short.IntersectsTriangle(tri))
}

func TestDirection(t *testing.T) {
	assert.Equal(t, DirRight|DirUp, (DirLeft | DirDown).Opposite())
	assert.Equal(t, Vector{X: StepSize, Y: -StepSize}, (DirRight | DirUp).StepVector())
	assert.Equal(t, "LEFT|DOWN", (DirLeft | DirDown).String())
	assert.Equal(t, DirLeft|DirDown, Vec(-1, 3).Direction())
	assert.True(t, DirAll.Has(DirHorizontal))
	assert.False(t, DirLeft.Has(DirHorizontal))
}
