package snake

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// hudHeight is the number of screen lines above the field box.
const hudHeight = 2

// FieldSize returns the field dimensions in cells.
func (g *Game) FieldSize() (cols, rows int) {
	return g.grid.Cols(), g.grid.Rows()
}

// BorderColor returns the configured field border color.
func (g *Game) BorderColor() core.Color {
	return g.palette.Border
}

// HUD returns the one-line status text.
func (g *Game) HUD() string {
	hud := fmt.Sprintf(" %s | Length: %d  Best: %d  Apples: %d  Resets: %d",
		g.Title(), g.snake.Len(), g.bestLength, g.applesEaten, g.resets)
	if g.poison != nil {
		hud += fmt.Sprintf("  Poison: %d  Jump in: %.0fs", g.poisonsEaten, math.Ceil(g.untilJump().Seconds()))
	}
	if g.paused {
		hud += "  [PAUSED]"
	}
	return hud
}

// untilJump returns the time left before the timed poison jump.
func (g *Game) untilJump() time.Duration {
	now := g.clock.Now()
	if g.paused {
		now = g.pausedAt
	}
	return max(0, g.poisonDeadline.Sub(now))
}

// occupancy maps every non-empty cell to its color. Later writes win, so
// the snake is drawn on top of the apple, and the apple on top of poison.
// Unplaced occupants are not drawn.
func (g *Game) occupancy() map[Cell]core.Color {
	occ := make(map[Cell]core.Color, g.snake.Len()+2)
	if g.poison != nil && g.poison.Placed() {
		occ[g.poison.Position()] = g.poison.Color()
	}
	if g.apple.Placed() {
		occ[g.apple.Position()] = g.apple.Color()
	}
	for _, c := range g.snake.Cells() {
		occ[c] = g.palette.Snake
	}
	return occ
}

// DrawAll repaints every cell of the field and forgets pending damage.
func (g *Game) DrawAll(s core.Surface) {
	g.snake.TakeVacated()
	g.vacated = nil
	g.fullRedraw = false

	occ := g.occupancy()
	for _, c := range g.grid.AllCells() {
		col, row := g.grid.ColRow(c)
		s.DrawCell(col, row, occ[c])
	}
	s.Present()
}

// Draw repaints only the cells that changed since the previous Draw or
// DrawAll: cells something moved away from, the occupants, and the head.
func (g *Game) Draw(s core.Surface) {
	if g.fullRedraw {
		g.DrawAll(s)
		return
	}

	damage := g.snake.TakeVacated()
	damage = append(damage, g.vacated...)
	g.vacated = nil
	damage = append(damage, g.apple.Position(), g.snake.Head())
	if g.poison != nil {
		damage = append(damage, g.poison.Position())
	}

	occ := g.occupancy()
	for _, c := range damage {
		col, row := g.grid.ColRow(c)
		s.DrawCell(col, row, occ[c])
	}
	s.Present()
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	cols, rows := g.FieldSize()
	box := core.FrameRect(dst.Width(), hudHeight, cols, rows)
	if !box.Fits(dst.Width(), dst.Height()) {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d, have %dx%d", box.W, box.Bottom(), dst.Width(), dst.Height()))
		return
	}

	dst.DrawBoxColored(box, g.palette.Border)
	inner := box.Inset(1)
	g.DrawAll(core.NewCellCanvas(dst, inner.X, inner.Y, cols, rows))

	if g.paused {
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(0, 0, g.HUD())
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len(line1), len(line2))
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			isTopOrBottom := y == boxY || y == boxY+boxH-1
			isLeftOrRight := x == boxX || x == boxX+boxW-1
			switch {
			case isTopOrBottom && isLeftOrRight:
				dst.Set(x, y, '+')
			case isTopOrBottom:
				dst.Set(x, y, '-')
			case isLeftOrRight:
				dst.Set(x, y, '|')
			default:
				dst.Set(x, y, ' ')
			}
		}
	}

	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
