package playing

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/xcore/internal/application/state"
	"github.com/younwookim/xcore/internal/domain/collider"
	"github.com/younwookim/xcore/internal/domain/entity"
	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
)

// Colors
var (
	colorBackground   = color.RGBA{20, 20, 30, 255}
	colorSolid        = color.RGBA{90, 90, 110, 255}
	colorSlope        = color.RGBA{110, 140, 90, 255}
	colorLadder       = color.RGBA{150, 110, 60, 255}
	colorTopLadder    = color.RGBA{200, 150, 70, 255}
	colorWater        = color.RGBA{40, 80, 170, 120}
	colorWaterSurface = color.RGBA{80, 140, 230, 160}
	colorOther        = color.RGBA{160, 60, 160, 255}
	colorPlayer       = color.RGBA{100, 200, 255, 255}
	colorCarrier      = color.RGBA{230, 200, 80, 255}
	colorProp         = color.RGBA{200, 120, 90, 255}
	colorProbe        = color.RGBA{255, 255, 255, 70}
	colorProbeHit     = color.RGBA{255, 60, 60, 170}
	colorOverlay      = color.RGBA{0, 0, 0, 150}
)

// categoryColor maps each collision category to its fill.
func categoryColor(d world.CollisionData) color.Color {
	switch d.Category() {
	case world.CategorySolid:
		return colorSolid
	case world.CategorySlope:
		return colorSlope
	case world.CategoryLadder:
		return colorLadder
	case world.CategoryTopLadder:
		return colorTopLadder
	case world.CategoryWater:
		return colorWater
	case world.CategoryWaterSurface:
		return colorWaterSurface
	}
	return colorOther
}

// Draw renders the viewer (implements scene.Scene)
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	camX, camY := p.camera()
	p.drawLayout(screen, camX, camY)
	p.drawSprites(screen, camX, camY)
	if p.showProbes {
		p.drawProbes(screen, p.sim.Player.Collider(), camX, camY)
	}
	p.drawHUD(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nESC: Resume\nR: Reset")
	case state.StateReplayDone:
		p.drawOverlay(screen, "REPLAY DONE\n\nR: Replay again")
	}
}

// camera centers the player and clamps to the stage.
func (p *Playing) camera() (float64, float64) {
	center := p.sim.Player.CollisionBox().Center()
	stage := p.sim.StageConfig().Size
	return cameraAxis(geometry.ToFloat(center.X), float64(p.display.ScreenWidth), float64(stage.Width)),
		cameraAxis(geometry.ToFloat(center.Y), float64(p.display.ScreenHeight), float64(stage.Height))
}

func cameraAxis(center, screen, stage float64) float64 {
	c := center - screen/2
	if c > stage-screen {
		c = stage - screen
	}
	if c < 0 {
		c = 0
	}
	return c
}

func (p *Playing) drawLayout(screen *ebiten.Image, camX, camY float64) {
	w, h := float64(p.display.ScreenWidth), float64(p.display.ScreenHeight)
	p.sim.Layout().EachMap(func(row, col int, m *world.Map) {
		lt := world.GetMapLeftTop(row, col)
		x, y := geometry.ToFloat(lt.X)-camX, geometry.ToFloat(lt.Y)-camY
		if x+world.MapSize < 0 || y+world.MapSize < 0 || x > w || y > h {
			return
		}
		c := categoryColor(m.CollisionData)
		if left, right, ok := m.CollisionData.SlopeHeights(); ok {
			p.drawSlope(screen, x, y, float64(left), float64(right), c)
			return
		}
		ebitenutil.DrawRect(screen, x, y, world.MapSize, world.MapSize, c)
	})
}

// drawSlope fills the map below its surface line with two triangles.
func (p *Playing) drawSlope(screen *ebiten.Image, x, y, left, right float64, c color.Color) {
	if p.whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		p.whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	r, g, b, a := c.RGBA()
	vertex := func(vx, vy float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(vx), DstY: float32(vy),
			SrcX: 1, SrcY: 1,
			ColorR: float32(r) / 0xffff, ColorG: float32(g) / 0xffff,
			ColorB: float32(b) / 0xffff, ColorA: float32(a) / 0xffff,
		}
	}
	vs := []ebiten.Vertex{
		vertex(x, y+left),
		vertex(x+world.MapSize, y+right),
		vertex(x+world.MapSize, y+world.MapSize),
		vertex(x, y+world.MapSize),
	}
	screen.DrawTriangles(vs, []uint16{0, 1, 2, 0, 2, 3}, p.whiteImage, nil)
}

func (p *Playing) drawSprites(screen *ebiten.Image, camX, camY float64) {
	for _, s := range p.sim.Stage.Sprites() {
		if !s.Alive() {
			continue
		}
		drawBox(screen, s.CollisionBox(), camX, camY, p.spriteColor(s))
	}
}

func (p *Playing) spriteColor(s *entity.Sprite) color.Color {
	switch {
	case s == p.sim.Player:
		return colorPlayer
	case s.IsCarrier():
		return colorCarrier
	}
	return colorProp
}

// drawProbes shows the probe boxes, red where the contact is active.
func (p *Playing) drawProbes(screen *ebiten.Image, c *collider.Collider, camX, camY float64) {
	probes := c.Probes()
	for _, pr := range []struct {
		box    geometry.Box
		active bool
	}{
		{probes.Left, c.BlockedLeft()},
		{probes.Up, c.BlockedUp()},
		{probes.Right, c.BlockedRight()},
		{probes.Down, c.Landed()},
		{probes.Inner, c.Underwater()},
	} {
		col := colorProbe
		if pr.active {
			col = colorProbeHit
		}
		drawBox(screen, pr.box, camX, camY, col)
	}
}

func drawBox(screen *ebiten.Image, b geometry.Box, camX, camY float64, c color.Color) {
	ebitenutil.DrawRect(screen,
		geometry.ToFloat(b.Left())-camX, geometry.ToFloat(b.Top())-camY,
		geometry.ToFloat(b.Width()), geometry.ToFloat(b.Height()), c)
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, p.hudText())
}

func (p *Playing) hudText() string {
	pl := p.sim.Player
	return fmt.Sprintf("%s  frame %d  [%s]\norigin %s  v %s\nL:%s U:%s R:%s D:%s water:%s\n%s",
		p.sim.StageConfig().Name, p.sim.Frame(), p.state,
		pl.Origin(), pl.Velocity,
		flag(pl.BlockedLeft()), flag(pl.BlockedUp()), flag(pl.BlockedRight()), flag(pl.Landed()), flag(pl.Underwater()),
		"Arrows: Move  Z: Jump  X: Dash  R: Reset  F1: Probes  ESC: Pause",
	)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.display.ScreenWidth), float64(p.display.ScreenHeight), colorOverlay)
	ebitenutil.DebugPrintAt(screen, text, p.display.ScreenWidth/2-50, p.display.ScreenHeight/2-20)
}
