package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/xcore/internal/domain/entity"
	"github.com/younwookim/xcore/internal/domain/geometry"
	"github.com/younwookim/xcore/internal/domain/world"
	"github.com/younwookim/xcore/internal/infrastructure/logging"
)

// Styles
var (
	styleEmpty  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSolid  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSlope  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleLadder = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleWater  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleSpike  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleProbe  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

// mapGlyph picks the character drawn for one map cell.
func mapGlyph(m *world.Map) (rune, tcell.Style) {
	if m == nil {
		return '.', styleEmpty
	}
	d := m.CollisionData
	if left, right, ok := d.SlopeHeights(); ok {
		// Heights are measured down from the top, so a smaller right side rises.
		if right < left {
			return '/', styleSlope
		}
		return '\\', styleSlope
	}
	switch {
	case d.IsSpike():
		return '^', styleSpike
	case d.IsSolidBlock():
		return '#', styleSolid
	case d.IsTopLadder():
		return 'T', styleLadder
	case d.IsLadder():
		return 'H', styleLadder
	case d.IsWaterSurface():
		return '~', styleWater
	case d.IsWater():
		return '=', styleWater
	}
	return '?', styleSolid
}

// inspector draws one character per map cell and a falling probe sprite
// stepped by hand.
type inspector struct {
	screen tcell.Screen
	stage  *entity.Stage
	layout *world.Layout
	probe  *entity.Sprite
	spawn  entity.SpriteConfig
	frame  int
	log    *logging.Logger
}

func newInspector(screen tcell.Screen, layout *world.Layout, physics entity.PhysicsSettings, probe entity.SpriteConfig, log *logging.Logger) (*inspector, error) {
	if log == nil {
		log = logging.Nop()
	}
	stage := entity.NewStage(layout, physics)
	sprite, err := stage.Spawn(probe)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn probe: %w", err)
	}
	return &inspector{
		screen: screen,
		stage:  stage,
		layout: layout,
		probe:  sprite,
		spawn:  probe,
		log:    log,
	}, nil
}

// step runs one physics frame.
func (in *inspector) step() {
	in.stage.DoPhysics()
	in.frame++
	in.log.Debug("step", "frame", in.frame, "box", in.probe.CollisionBox().String(), "landed", in.probe.Landed())
}

// reset drops a fresh probe at its spawn point.
func (in *inspector) reset() error {
	in.stage.Kill(in.probe)
	sprite, err := in.stage.Spawn(in.spawn)
	if err != nil {
		return fmt.Errorf("failed to respawn probe: %w", err)
	}
	in.probe = sprite
	in.frame = 0
	return nil
}

// nudge moves the probe one pixel through the collision resolution.
func (in *inspector) nudge(dx, dy int) {
	in.probe.Move(geometry.Vec(dx, dy))
}

// handleKey applies a key press and reports whether the inspector quits.
func (in *inspector) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		in.nudge(-1, 0)
	case tcell.KeyRight:
		in.nudge(1, 0)
	case tcell.KeyUp:
		in.nudge(0, -1)
	case tcell.KeyDown:
		in.nudge(0, 1)
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return true
		case ' ':
			in.step()
		case 'r', 'R':
			if err := in.reset(); err != nil {
				in.log.Failure("failed to reset", err)
			}
		}
	}
	return false
}

// viewport returns the top-left map cell so that the probe stays centered.
func (in *inspector) viewport(cols, rows int) (int, int) {
	c := world.GetMapCellFromPos(in.probe.CollisionBox().Center())
	return clampView(c.Col-cols/2, cols, in.layout.MapColCount()),
		clampView(c.Row-rows/2, rows, in.layout.MapRowCount())
}

func clampView(start, view, total int) int {
	if start > total-view {
		start = total - view
	}
	if start < 0 {
		start = 0
	}
	return start
}

func (in *inspector) draw() {
	in.screen.Clear()
	w, h := in.screen.Size()
	rows := h - 1 // status line
	col0, row0 := in.viewport(w, rows)

	for y := 0; y < rows; y++ {
		for x := 0; x < w; x++ {
			row, col := row0+y, col0+x
			if row >= in.layout.MapRowCount() || col >= in.layout.MapColCount() {
				continue
			}
			r, style := mapGlyph(in.layout.GetMapAt(row, col))
			in.screen.SetContent(x, y, r, nil, style)
		}
	}

	// Probe cells; the box max is exclusive.
	box := in.probe.CollisionBox()
	first := world.GetMapCellFromPos(box.LeftTop())
	last := world.GetMapCellFromPos(box.RightBottom().Sub(geometry.Vector{X: 1, Y: 1}))
	for row := first.Row; row <= last.Row; row++ {
		for col := first.Col; col <= last.Col; col++ {
			x, y := col-col0, row-row0
			if x >= 0 && x < w && y >= 0 && y < rows {
				in.screen.SetContent(x, y, '@', nil, styleProbe)
			}
		}
	}

	drawText(in.screen, 0, h-1, w, in.status(), styleStatus)
	in.screen.Show()
}

func (in *inspector) status() string {
	return fmt.Sprintf(" frame %d  box %s  L:%t U:%t R:%t D:%t  SPACE step  arrows nudge  R reset  Q quit",
		in.frame, in.probe.CollisionBox(),
		in.probe.BlockedLeft(), in.probe.BlockedUp(), in.probe.BlockedRight(), in.probe.Landed())
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		if x+i >= width {
			return
		}
		s.SetContent(x+i, y, r, nil, style)
	}
	for i := len([]rune(text)); x+i < width; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
}

// run draws and handles events until the user quits.
func (in *inspector) run() {
	in.draw()
	for {
		switch ev := in.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if in.handleKey(ev.Key(), ev.Rune()) {
				return
			}
		case *tcell.EventResize:
			in.screen.Sync()
		case nil:
			return
		}
		in.draw()
	}
}
