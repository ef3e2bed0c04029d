package core

// Surface is a retained canvas addressed in grid cells.
// Contents persist between frames, so callers only touch what changed.
type Surface interface {
	// DrawCell fills one grid cell. ColorDefault erases it.
	DrawCell(col, row int, c Color)
	// Present commits the frame.
	Present()
}

// CellWidth is how many terminal columns one grid cell occupies.
// Two columns keep cells roughly square in most terminal fonts.
const CellWidth = 2

// CellCanvas adapts a Screen region to the Surface interface.
type CellCanvas struct {
	screen *Screen
	origin Rect // Screen area covered by the grid, in characters
}

// NewCellCanvas maps a cols×rows grid onto the screen starting at (x, y).
func NewCellCanvas(s *Screen, x, y, cols, rows int) *CellCanvas {
	return &CellCanvas{
		screen: s,
		origin: NewRect(x, y, cols*CellWidth, rows),
	}
}

// DrawCell paints a cell as a pair of block characters, or blanks it.
func (c *CellCanvas) DrawCell(col, row int, color Color) {
	x := c.origin.X + col*CellWidth
	y := c.origin.Y + row
	if !c.origin.Contains(x, y) {
		return
	}
	r := '█'
	if color == ColorDefault {
		r = ' '
	}
	for i := 0; i < CellWidth; i++ {
		c.screen.SetColored(x+i, y, r, color)
	}
}

// Present is a no-op: the platform flushes the Screen when it renders a view.
func (c *CellCanvas) Present() {}

// Bounds returns the screen rectangle the grid occupies.
func (c *CellCanvas) Bounds() Rect {
	return c.origin
}
