package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
)

// surfaceY is the ground height of createTestLayout at x.
func surfaceY(x fixed.Int52_12) fixed.Int52_12 {
	switch {
	case x <= geometry.I(64):
		return geometry.I(160)
	case x >= geometry.I(96):
		return geometry.I(144)
	}
	return geometry.I(160) - (x-geometry.I(64))/2
}

func assertOnSurface(t *testing.T, s *Sprite, frame int) {
	t.Helper()
	box := s.CollisionBox()
	want := surfaceY(box.Center().X)
	assert.LessOrEqual(t, geometry.Abs(box.Bottom()-want), geometry.StepSize,
		"frame %d: bottom %s, surface %s at x=%s", frame, box.Bottom(), want, box.Center().X)
}

func TestSprite_FallsOntoTheFloor(t *testing.T) {
	st := createTestStage(t)
	s := spawn(t, st, actorConfig("actor", 40, 32))
	landings := 0
	s.OnLanded = func(*Sprite) { landings++ }

	for frame := 0; frame < 120; frame++ {
		s.DoPhysics()
		require.LessOrEqual(t, s.CollisionBox().Bottom(), geometry.I(160), "frame %d", frame)
	}

	assert.True(t, s.Landed())
	assert.True(t, s.Collider().PerfectlyLanded())
	assert.Equal(t, geometry.I(160), s.CollisionBox().Bottom())
	assert.Equal(t, geometry.I(40), s.Origin().X)
	assert.Zero(t, s.Velocity.Y)
	assert.Equal(t, 1, landings)
}

func TestSprite_FallSpeedIsCapped(t *testing.T) {
	l := world.NewLayout(4, 1)
	st := NewStage(l, DefaultPhysics())
	s := spawn(t, st, actorConfig("actor", 40, 32))

	last := s.Origin().Y
	for frame := 0; frame < 60; frame++ {
		s.DoPhysics()
		assert.LessOrEqual(t, s.Origin().Y-last, st.Physics.TerminalDownwardSpeed, "frame %d", frame)
		last = s.Origin().Y
	}
	assert.Equal(t, st.Physics.TerminalDownwardSpeed, s.Velocity.Y)
}

func TestSprite_WalksUpTheSlope(t *testing.T) {
	st := createTestStage(t)
	s := spawn(t, st, actorConfig("actor", 56, 160))
	require.True(t, s.Landed())

	s.Velocity.X = geometry.I(2)
	for frame := 0; frame < 10; frame++ {
		s.DoPhysics()
	}

	box := s.CollisionBox()
	assert.Equal(t, geometry.I(76), box.Center().X)
	assert.True(t, s.LandedOnSlope())
	assert.Less(t, box.Bottom(), geometry.I(160), "not on the flat floor")
	assert.LessOrEqual(t, geometry.Abs(box.Bottom()-geometry.I(154)), geometry.StepSize)
}

func TestSprite_SlopeContinuity(t *testing.T) {
	st := createTestStage(t)
	s := spawn(t, st, actorConfig("actor", 40, 160))
	s.Velocity.X = geometry.Frac(3, 2)

	// Up the two slopes until the front of the box reaches the ledge.
	for frame := 0; frame < 32; frame++ {
		s.DoPhysics()
		require.True(t, s.Landed(), "frame %d", frame)
		assertOnSurface(t, s, frame)
	}
	assert.Equal(t, geometry.I(88), s.CollisionBox().Center().X)

	// Then onto the ledge without catching on its corner.
	lastX := s.Origin().X
	for frame := 32; frame < 60; frame++ {
		s.DoPhysics()
		require.True(t, s.Landed(), "frame %d", frame)
		assert.Equal(t, lastX+geometry.Frac(3, 2), s.Origin().X, "frame %d", frame)
		lastX = s.Origin().X
	}
	assert.Equal(t, geometry.I(130), s.CollisionBox().Center().X)
	assert.Equal(t, geometry.I(144), s.CollisionBox().Bottom())
}

func TestSprite_RestIsIdempotent(t *testing.T) {
	tests := []struct {
		name string
		x    int
	}{
		{"on the floor", 40},
		{"on the slope", 72},
		{"on the ledge", 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := createTestStage(t)
			s := spawn(t, st, actorConfig("actor", tt.x, 120))
			for frame := 0; frame < 60; frame++ {
				s.DoPhysics()
			}
			require.True(t, s.Landed())
			rest := s.CollisionBox()

			for frame := 0; frame < 30; frame++ {
				s.DoPhysics()
				s.Collider().AdjustOnTheFloor(geometry.One, world.FlagNone)
				assert.LessOrEqual(t, geometry.Abs(s.Collider().Box().Bottom()-rest.Bottom()), geometry.StepSize)
			}
			assert.Equal(t, rest, s.CollisionBox())
		})
	}
}

func TestSprite_DoesNotTunnel(t *testing.T) {
	tests := []struct {
		name     string
		velocity geometry.Vector
		check    func(t *testing.T, box geometry.Box)
	}{
		{
			name:     "into the wall",
			velocity: geometry.Vector{X: geometry.I(12)},
			check: func(t *testing.T, box geometry.Box) {
				assert.Equal(t, geometry.I(240), box.Right())
			},
		},
		{
			name:     "into the ledge side",
			velocity: geometry.Vector{X: -geometry.I(12)},
			check: func(t *testing.T, box geometry.Box) {
				assert.Equal(t, geometry.I(160), box.Left())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := createTestStage(t)
			s := spawn(t, st, actorConfig("actor", 200, 160))
			s.Velocity = tt.velocity
			for frame := 0; frame < 10; frame++ {
				s.DoPhysics()
				box := s.CollisionBox()
				assert.False(t, box.Overlaps(geometry.BoxFromInts(240, 96, 16, 64)), "frame %d", frame)
				assert.False(t, box.Overlaps(geometry.BoxFromInts(96, 144, 64, 16)), "frame %d", frame)
			}
			tt.check(t, s.CollisionBox())
			assert.Equal(t, geometry.I(160), s.CollisionBox().Bottom())
		})
	}
}

func TestSprite_BlockedEventsFireOnce(t *testing.T) {
	st := createTestStage(t)
	s := spawn(t, st, actorConfig("actor", 220, 160))
	var right, left int
	s.OnBlockedRight = func(*Sprite) { right++ }
	s.OnBlockedLeft = func(*Sprite) { left++ }

	s.Velocity.X = geometry.I(4)
	for frame := 0; frame < 20; frame++ {
		s.DoPhysics()
	}
	assert.True(t, s.BlockedRight())
	assert.Equal(t, 1, right)

	s.Velocity.X = -geometry.I(4)
	for frame := 0; frame < 5; frame++ {
		s.DoPhysics()
	}
	assert.False(t, s.BlockedRight())
	assert.Equal(t, 1, right)
	assert.Zero(t, left)

	s.Velocity.X = geometry.I(4)
	for frame := 0; frame < 5; frame++ {
		s.DoPhysics()
	}
	assert.Equal(t, 2, right)
}

func TestSprite_HitsTheCeiling(t *testing.T) {
	l := world.NewLayout(1, 1)
	require.NoError(t, l.FillRectangle(geometry.BoxFromInts(0, 96, 256, 16), l.AddMap(world.Solid)))
	st := NewStage(l, DefaultPhysics())
	s := spawn(t, st, actorConfig("actor", 40, 150))
	bumps := 0
	s.OnBlockedUp = func(*Sprite) { bumps++ }

	s.Velocity.Y = -geometry.I(5)
	for frame := 0; frame < 3; frame++ {
		s.DoPhysics()
	}
	assert.Equal(t, geometry.I(112), s.CollisionBox().Top())
	assert.Equal(t, 1, bumps)
	assert.GreaterOrEqual(t, s.Velocity.Y, fixed.Int52_12(0), "upward speed is dropped against the ceiling")
}

func TestSprite_JumpsFromTheFloor(t *testing.T) {
	st := createTestStage(t)
	s := spawn(t, st, actorConfig("actor", 40, 160))
	require.True(t, s.Landed())

	s.Velocity.Y = -geometry.I(4)
	s.DoPhysics()
	assert.Equal(t, geometry.I(156), s.CollisionBox().Bottom())
	assert.False(t, s.Landed())
}

func TestSprite_HalfStepSeam(t *testing.T) {
	l := world.NewLayout(1, 1)
	require.NoError(t, l.FillRectangle(geometry.BoxFromInts(0, 160, 128, 16), l.AddMap(world.Solid)))
	st := NewStage(l, DefaultPhysics())
	raised := geometry.NewBox(geometry.I(128), geometry.I(160)-geometry.StepSize/2, geometry.I(128), geometry.I(16))
	spawn(t, st, blockConfig("raised floor", raised))

	s := spawn(t, st, actorConfig("actor", 100, 160))
	require.True(t, s.Landed())
	s.Velocity.X = geometry.Frac(3, 2)

	lastX := s.Origin().X
	for frame := 0; frame < 40; frame++ {
		s.DoPhysics()
		box := s.CollisionBox()
		require.True(t, s.Landed(), "frame %d", frame)
		assert.Equal(t, lastX+geometry.Frac(3, 2), s.Origin().X, "frame %d: caught on the seam", frame)
		assert.LessOrEqual(t, box.Bottom(), geometry.I(160), "frame %d", frame)
		assert.GreaterOrEqual(t, box.Bottom(), geometry.I(160)-geometry.StepSize, "frame %d", frame)
		lastX = s.Origin().X
	}
	assert.Equal(t, geometry.I(160), s.Origin().X)
}

func TestSprite_MoveOrdering(t *testing.T) {
	t.Run("rising resolves the vertical part first", func(t *testing.T) {
		l := world.NewLayout(1, 1)
		_, err := l.AddMapAt(geometry.Vec(112, 96), world.Solid)
		require.NoError(t, err)
		st := NewStage(l, DefaultPhysics())
		s := spawn(t, st, actorConfig("actor", 128, 146))

		got := s.Move(geometry.Vec(16, -4))
		assert.Equal(t, geometry.Vec(16, -2), got)
		assert.Equal(t, geometry.I(112), s.CollisionBox().Top())
	})

	t.Run("falling resolves the horizontal part first", func(t *testing.T) {
		l := world.NewLayout(1, 1)
		_, err := l.AddMapAt(geometry.Vec(112, 144), world.Solid)
		require.NoError(t, err)
		st := NewStage(l, DefaultPhysics())
		s := spawn(t, st, actorConfig("actor", 128, 142))

		got := s.Move(geometry.Vec(16, 4))
		assert.Equal(t, geometry.Vec(16, 4), got)
		assert.Equal(t, geometry.I(146), s.CollisionBox().Bottom())
	})
}

func TestSprite_MoveAxes(t *testing.T) {
	st := createTestStage(t)
	s := spawn(t, st, actorConfig("actor", 200, 100))

	assert.Equal(t, geometry.Vec(0, 60), s.MoveY(geometry.I(100)), "stops on the floor")
	assert.Equal(t, geometry.Vec(32, 0), s.MoveX(geometry.I(40)), "stops at the wall")
	assert.Equal(t, geometry.I(232), s.Origin().X)

	cfg := actorConfig("ghost", 200, 100)
	cfg.NoClip = true
	ghost := spawn(t, st, cfg)
	assert.Equal(t, geometry.Vec(0, 100), ghost.MoveY(geometry.I(100)))
}

func TestSprite_MoveAlongSlope(t *testing.T) {
	st := createTestStage(t)
	s := spawn(t, st, actorConfig("actor", 72, 120))
	for frame := 0; frame < 60; frame++ {
		s.DoPhysics()
	}
	require.True(t, s.LandedOnSlope())
	start := s.CollisionBox()

	got := s.MoveAlongSlope(s.Collider().LandedSlope(), geometry.I(4))
	assert.Equal(t, geometry.I(4), got.X)
	assert.Equal(t, -geometry.I(2), got.Y)
	assert.Equal(t, start.Bottom()-geometry.I(2), s.CollisionBox().Bottom())
	assertOnSurface(t, s, 0)
}

func TestSprite_CarriesRiders(t *testing.T) {
	st := createTestStage(t)
	platform := spawn(t, st, blockConfig("platform", geometry.BoxFromInts(100, 100, 32, 8)))
	rider := spawn(t, st, actorConfig("rider", 116, 100))
	require.True(t, rider.Landed())

	steps := []struct {
		name  string
		delta geometry.Vector
	}{
		{"up", geometry.Vec(0, -4)},
		{"right", geometry.Vec(10, 0)},
		{"down", geometry.Vec(0, 6)},
		{"left", geometry.Vec(-3, 0)},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			before := rider.Origin()
			got := platform.Move(step.delta)
			require.Equal(t, step.delta, got)
			assert.Equal(t, before.Add(step.delta), rider.Origin())
			assert.Equal(t, platform.CollisionBox().Top(), rider.CollisionBox().Bottom())
			assert.True(t, rider.Landed())
		})
	}
}

func TestSprite_PushesSideways(t *testing.T) {
	st := createTestStage(t)
	pusher := spawn(t, st, blockConfig("pusher", geometry.BoxFromInts(8, 144, 16, 16)))
	pushed := spawn(t, st, actorConfig("pushed", 32, 160))
	bystander := spawn(t, st, actorConfig("bystander", 56, 160))

	got := pusher.Move(geometry.Vec(4, 0))
	require.Equal(t, geometry.Vec(4, 0), got)
	assert.Equal(t, geometry.I(36), pushed.Origin().X)
	assert.Equal(t, geometry.I(56), bystander.Origin().X, "only direct contacts are pushed")

	pusher.Move(geometry.Vec(-4, 0))
	assert.Equal(t, geometry.I(36), pushed.Origin().X, "carriers do not pull")
}

func TestSprite_CarriesStacks(t *testing.T) {
	st := createTestStage(t)
	lowerCfg := blockConfig("lower", geometry.BoxFromInts(100, 100, 32, 8))
	lowerCfg.NoClip = true
	lower := spawn(t, st, lowerCfg)
	upperCfg := blockConfig("upper", geometry.BoxFromInts(104, 92, 16, 8))
	upperCfg.Static = false
	upper := spawn(t, st, upperCfg)
	anchored := spawn(t, st, blockConfig("anchored", geometry.BoxFromInts(122, 92, 8, 8)))
	rider := spawn(t, st, actorConfig("rider", 112, 92))

	got := lower.Move(geometry.Vec(0, -4))
	require.Equal(t, geometry.Vec(0, -4), got)
	assert.Equal(t, geometry.I(88), upper.CollisionBox().Top())
	assert.Equal(t, geometry.I(88), rider.CollisionBox().Bottom(), "carried through the upper block")
	assert.Equal(t, geometry.I(92), anchored.CollisionBox().Top(), "static sprites are not carried")
}
