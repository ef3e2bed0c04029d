// Package core holds the types games and frontends share: the character
// screen buffer, cell surfaces, input frames, clocks and colors. It imports
// no UI library, so game logic can be stepped headless.
package core

// Rect represents an axis-aligned rectangle on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Fits reports whether r lies entirely within a w×h screen.
func (r Rect) Fits(w, h int) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= w && r.Bottom() <= h
}

// Inset returns r shrunk by n on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(0, r.W-2*n), H: max(0, r.H-2*n)}
}

// FrameRect returns the bordered box around a cols×rows cell grid,
// centred horizontally on a screen screenW wide with its top edge at row top.
// Each cell is CellWidth characters wide. X is negative when the box is wider
// than the screen.
func FrameRect(screenW, top, cols, rows int) Rect {
	w := cols*CellWidth + 2
	return NewRect((screenW-w)/2, top, w, rows+2)
}
