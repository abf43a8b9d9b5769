package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// rising is the 16x8 slope whose surface climbs from (16,16) to (0,8).
func rising() RightTriangle {
	return NewRightTriangle(Vec(0, 16), I(16), I(-8))
}

func TestRightTriangle_WrappingBox(t *testing.T) {
	assert.Equal(t, BoxFromInts(0, 8, 16, 8), rising().WrappingBox())

	mirrored := NewRightTriangle(Vec(16, 16), I(-16), I(-8))
	assert.Equal(t, BoxFromInts(0, 8, 16, 8), mirrored.WrappingBox())
}

func TestRightTriangle_SurfaceY(t *testing.T) {
	tri := rising()

	tests := []struct {
		name string
		x    int
		want int
	}{
		{name: "high end", x: 0, want: 8},
		{name: "middle", x: 8, want: 12},
		{name: "low end", x: 16, want: 16},
		{name: "clamped left", x: -5, want: 8},
		{name: "clamped right", x: 40, want: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, I(tt.want), tri.SurfaceY(I(tt.x)))
		})
	}
}

func TestRightTriangle_Contains(t *testing.T) {
	tri := rising()

	assert.True(t, tri.Contains(Vec(0, 16)), "right angle vertex")
	assert.True(t, tri.Contains(Vec(8, 12)), "on hypotenuse")
	assert.False(t, tri.ContainsInterior(Vec(8, 12)))
	assert.True(t, tri.ContainsInterior(Vec(4, 14)))
	assert.False(t, tri.Contains(Vec(12, 9)))
	assert.False(t, EmptyTriangle.Contains(Vec(0, 0)))
}

func TestRightTriangle_HasIntersectionWithBox(t *testing.T) {
	tri := rising()

	tests := []struct {
		name string
		box  Box
		want bool
	}{
		{name: "corner resting on hypotenuse", box: BoxFromInts(8, 0, 4, 12), want: false},
		{name: "one pixel into slope", box: BoxFromInts(8, 1, 4, 12), want: true},
		{name: "one step into slope", box: NewBox(I(8), StepSize, I(4), I(12)), want: true},
		{name: "above wrapping box", box: BoxFromInts(0, 0, 16, 8), want: false},
		{name: "inside empty half", box: BoxFromInts(12, 8, 4, 2), want: false},
		{name: "covering everything", box: BoxFromInts(-4, -4, 32, 32), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tri.HasIntersectionWithBox(tt.box))
		})
	}
}

func TestRightTriangle_HasIntersectionWithSegment(t *testing.T) {
	tri := rising()

	assert.True(t, tri.HasIntersectionWithSegment(Segment(Vec(8, 0), Vec(8, 20))))
	assert.False(t, tri.HasIntersectionWithSegment(Segment(Vec(8, 0), Vec(8, 11))))
	assert.True(t, tri.HasIntersectionWithSegment(Segment(Vec(2, 15), Vec(3, 15))), "fully inside")
}

func TestRightTriangle_Translate(t *testing.T) {
	moved := rising().Translate(Vec(32, 48))

	assert.Equal(t, BoxFromInts(32, 56, 16, 8), moved.WrappingBox())
	assert.Equal(t, I(60), moved.SurfaceY(I(40)))
}
