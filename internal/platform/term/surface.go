// Package term runs games on a retained tcell screen.
//
// Unlike the Bubble Tea frontend, which re-renders the whole frame every
// tick, this backend keeps the terminal contents between ticks and only
// repaints the cells a game reports as changed.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Style returns the foreground style for a core color.
func Style(c core.Color) tcell.Style {
	code, ok := c.ANSI()
	if !ok {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.PaletteColor(int(code)))
}

// Surface is a core.Surface over a region of a tcell screen.
// Each grid cell is core.CellWidth terminal columns wide.
type Surface struct {
	screen tcell.Screen
	origin core.Rect // Screen area covered by the grid, in characters
}

// NewSurface maps a cols×rows grid onto the screen starting at (x, y).
func NewSurface(screen tcell.Screen, x, y, cols, rows int) *Surface {
	return &Surface{
		screen: screen,
		origin: core.NewRect(x, y, cols*core.CellWidth, rows),
	}
}

// DrawCell paints a cell as block characters, or blanks it for ColorDefault.
func (s *Surface) DrawCell(col, row int, c core.Color) {
	x := s.origin.X + col*core.CellWidth
	y := s.origin.Y + row
	if !s.origin.Contains(x, y) {
		return
	}
	r := '█'
	if c == core.ColorDefault {
		r = ' '
	}
	style := Style(c)
	for i := 0; i < core.CellWidth; i++ {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Present flushes pending changes to the terminal.
func (s *Surface) Present() {
	s.screen.Show()
}

// Bounds returns the screen rectangle the grid occupies.
func (s *Surface) Bounds() core.Rect {
	return s.origin
}

// drawText writes text at (x, y), clipped to the screen width.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	w, _ := screen.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		if x >= 0 {
			screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

// clearLine blanks row y.
func clearLine(screen tcell.Screen, y int) {
	w, _ := screen.Size()
	for x := 0; x < w; x++ {
		screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

// drawBox draws a box outline using box-drawing characters.
func drawBox(screen tcell.Screen, r core.Rect, style tcell.Style) {
	screen.SetContent(r.X, r.Y, '┌', nil, style)
	screen.SetContent(r.Right()-1, r.Y, '┐', nil, style)
	screen.SetContent(r.X, r.Bottom()-1, '└', nil, style)
	screen.SetContent(r.Right()-1, r.Bottom()-1, '┘', nil, style)

	for x := r.X + 1; x < r.Right()-1; x++ {
		screen.SetContent(x, r.Y, '─', nil, style)
		screen.SetContent(x, r.Bottom()-1, '─', nil, style)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		screen.SetContent(r.X, y, '│', nil, style)
		screen.SetContent(r.Right()-1, y, '│', nil, style)
	}
}
