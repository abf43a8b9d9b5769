package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/xcore/internal/domain/geometry"
)

func TestCollisionData_ClassificationIsDisjoint(t *testing.T) {
	for code := 0; code <= 0xFF; code++ {
		d := CollisionData(code)
		matches := 0
		for _, pred := range []func() bool{d.IsSolidBlock, d.IsSlope, d.IsLadder, d.IsTopLadder, d.IsWater, d.IsWaterSurface} {
			if pred() {
				matches++
			}
		}
		assert.LessOrEqual(t, matches, 1, "%s classified %d times", d, matches)
		if matches == 0 {
			assert.Equal(t, CategoryNone, d.Category(), d.String())
		}
	}
}

func TestCollisionData_Predicates(t *testing.T) {
	tests := []struct {
		data     CollisionData
		category Category
		flags    CollisionFlags
	}{
		{data: CollisionNone, category: CategoryNone, flags: FlagNone},
		{data: Solid, category: CategorySolid, flags: FlagBlock},
		{data: Door, category: CategorySolid, flags: FlagBlock},
		{data: LethalSpike, category: CategorySolid, flags: FlagBlock | FlagSpike},
		{data: Lava, category: CategorySolid, flags: FlagBlock | FlagSpike},
		{data: UnclimbableSolid, category: CategorySolid, flags: FlagBlock | FlagUnclimbable},
		{data: Slope16_8, category: CategorySlope, flags: FlagSlope},
		{data: LeftConveyorSlope8_4, category: CategorySlope, flags: FlagSlope},
		{data: SlipperySlope0_4, category: CategorySlope, flags: FlagSlope},
		{data: Ladder, category: CategoryLadder, flags: FlagLadder},
		{data: TopLadder, category: CategoryTopLadder, flags: FlagTopLadder},
		{data: Water, category: CategoryWater, flags: FlagWater},
		{data: WaterSurface, category: CategoryWaterSurface, flags: FlagWaterSurface},
		{data: SemiSolid, category: CategoryNone, flags: FlagNone},
		{data: CollisionData(0x20), category: CategoryNone, flags: FlagNone},
	}

	for _, tt := range tests {
		t.Run(tt.data.String(), func(t *testing.T) {
			assert.Equal(t, tt.category, tt.data.Category())
			assert.Equal(t, tt.flags, ToCollisionFlags(tt.data))
		})
	}

	assert.True(t, LeftConveyor.IsConveyor())
	assert.True(t, RightConveyorSlope0_4.IsConveyor())
	assert.True(t, SlipperyFloor.IsSlippery())
	assert.True(t, SlipperySlope8_0.IsSlippery())
	assert.False(t, Solid.IsSlippery())
	assert.True(t, TopMud.IsMud())
}

func TestMakeSlopeTriangle_FitsInMap(t *testing.T) {
	mapBox := GetMapBoundingBox(Cell{Row: 3, Col: 7})

	for code := 0; code <= 0xFF; code++ {
		d := CollisionData(code)
		tri := MakeSlopeTriangle(d)
		if !d.IsSlope() {
			assert.True(t, tri.IsEmpty(), d.String())
			continue
		}

		placed := tri.Translate(mapBox.LeftTop())
		require.False(t, placed.IsEmpty(), d.String())
		assert.True(t, mapBox.ContainsBox(placed.WrappingBox()), "%s: %s outside %s", d, placed, mapBox)
	}
}

func TestMakeSlopeTriangle_SurfaceHeights(t *testing.T) {
	for d := range slopeHeights {
		left, right, ok := d.SlopeHeights()
		require.True(t, ok)

		tri := MakeSlopeTriangle(d)
		assert.Equal(t, geometry.I(left), tri.SurfaceY(0), "%s left", d)
		assert.Equal(t, geometry.I(right), tri.SurfaceY(MapSizeFixed), "%s right", d)
	}
}

func TestParseCollisionData(t *testing.T) {
	for d, name := range collisionDataNames {
		got, err := ParseCollisionData(name)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	got, err := ParseCollisionData(" solid ")
	require.NoError(t, err)
	assert.Equal(t, Solid, got)

	got, err = ParseCollisionData("0x3B")
	require.NoError(t, err)
	assert.Equal(t, Solid, got)

	got, err = ParseCollisionData(CollisionData(0x20).String())
	require.NoError(t, err)
	assert.Equal(t, CollisionData(0x20), got)

	_, err = ParseCollisionData("lava-ish")
	assert.Error(t, err)
}

func TestCollisionFlags_CanBlockTheMove(t *testing.T) {
	tests := []struct {
		name  string
		flags CollisionFlags
		dir   geometry.Direction
		want  bool
	}{
		{name: "none", flags: FlagNone, dir: geometry.DirAll, want: false},
		{name: "block up", flags: FlagBlock, dir: geometry.DirUp, want: true},
		{name: "slope left", flags: FlagSlope, dir: geometry.DirLeft, want: true},
		{name: "slope up", flags: FlagSlope, dir: geometry.DirUp, want: false},
		{name: "slope down", flags: FlagSlope, dir: geometry.DirDown, want: true},
		{name: "unclimbable right", flags: FlagUnclimbable, dir: geometry.DirRight, want: true},
		{name: "top ladder down", flags: FlagTopLadder, dir: geometry.DirDown, want: true},
		{name: "top ladder left", flags: FlagTopLadder, dir: geometry.DirLeft, want: false},
		{name: "ladder down", flags: FlagLadder, dir: geometry.DirDown, want: false},
		{name: "water any", flags: FlagWater | FlagWaterSurface, dir: geometry.DirAll, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.flags.CanBlockTheMove(tt.dir))
		})
	}

	assert.Equal(t, "BLOCK|SPIKE", (FlagBlock | FlagSpike).String())
	assert.Equal(t, "NONE", FlagNone.String())
}
