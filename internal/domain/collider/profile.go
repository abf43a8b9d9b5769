package collider

import (
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/xcore/internal/domain/geometry"
)

// Probes are the boxes a Collider tests for one owner box.
type Probes struct {
	Left, Up, Right, Down, Inner geometry.Box
}

// Profile splits an owner box into probes.
type Profile interface {
	Probes(box geometry.Box) Probes
}

// SpriteProfile probes one-pixel strips inside each border of the box. The
// side strips skip HeadHeight at the top and LegsHeight at the bottom.
type SpriteProfile struct {
	HeadHeight fixed.Int52_12
	LegsHeight fixed.Int52_12
}

func (p SpriteProfile) Probes(b geometry.Box) Probes {
	thickness := geometry.Min(geometry.One, b.Width())
	sides := trimBand(b, p.HeadHeight, p.LegsHeight)
	return Probes{
		Left:  sides.Strip(geometry.SideLeft, thickness),
		Up:    b.Strip(geometry.SideTop, geometry.Min(geometry.One, b.Height())),
		Right: sides.Strip(geometry.SideRight, thickness),
		Down:  b.Strip(geometry.SideBottom, geometry.Min(geometry.One, b.Height())),
		Inner: b,
	}
}

// WorldProfile splits the box into head, chest and legs bands. The chest is
// probed on both sides, the head upward and the legs downward.
type WorldProfile struct {
	HeadHeight fixed.Int52_12
	LegsHeight fixed.Int52_12
}

func (p WorldProfile) Probes(b geometry.Box) Probes {
	head := geometry.Clamp(p.HeadHeight, geometry.One, b.Height())
	legs := geometry.Clamp(p.LegsHeight, geometry.One, b.Height())
	chest := trimBand(b, p.HeadHeight, p.LegsHeight)
	return Probes{
		Left:  chest,
		Up:    b.Strip(geometry.SideTop, head),
		Right: chest,
		Down:  b.Strip(geometry.SideBottom, legs),
		Inner: b,
	}
}

// HeadBox, ChestBox and LegsBox expose the bands for drawing.
func (p WorldProfile) HeadBox(b geometry.Box) geometry.Box  { return p.Probes(b).Up }
func (p WorldProfile) ChestBox(b geometry.Box) geometry.Box { return p.Probes(b).Left }
func (p WorldProfile) LegsBox(b geometry.Box) geometry.Box  { return p.Probes(b).Down }

// trimBand removes head from the top and legs from the bottom, leaving at
// least one pixel (or the whole box when it is shorter).
func trimBand(b geometry.Box, head, legs fixed.Int52_12) geometry.Box {
	minHeight := geometry.Min(geometry.One, b.Height())
	head = geometry.Max(head, 0)
	legs = geometry.Max(legs, 0)
	if b.Height()-head-legs < minHeight {
		return b.Strip(geometry.SideTop, minHeight).Translate(geometry.Vector{Y: geometry.Clamp(head, 0, b.Height()-minHeight)})
	}
	return b.ClipTop(head).ClipBottom(legs)
}
