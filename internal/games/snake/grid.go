package snake

// Cell is a grid-aligned position in pixels.
// Both coordinates are multiples of the grid's cell size.
type Cell struct {
	X, Y int
}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Delta returns the unit vector for the direction (screen coordinates, y down).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Grid is a toroidal playing field measured in pixels.
type Grid struct {
	Width    int
	Height   int
	CellSize int
}

// NewGrid creates a grid. Width and height should be multiples of cellSize.
func NewGrid(width, height, cellSize int) Grid {
	return Grid{Width: width, Height: height, CellSize: cellSize}
}

// Cols returns the number of cells per row.
func (g Grid) Cols() int {
	return g.Width / g.CellSize
}

// Rows returns the number of cells per column.
func (g Grid) Rows() int {
	return g.Height / g.CellSize
}

// AllCells returns every valid cell in row-major order.
func (g Grid) AllCells() []Cell {
	cells := make([]Cell, 0, g.Cols()*g.Rows())
	for y := 0; y < g.Height; y += g.CellSize {
		for x := 0; x < g.Width; x += g.CellSize {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}

// Wrap offsets a cell by (dx, dy) pixels, wrapping at the field edges.
func (g Grid) Wrap(c Cell, dx, dy int) Cell {
	return Cell{
		X: mod(c.X+dx, g.Width),
		Y: mod(c.Y+dy, g.Height),
	}
}

// Step moves a cell n cells in direction d, wrapping at the edges.
func (g Grid) Step(c Cell, d Direction, n int) Cell {
	dx, dy := d.Delta()
	return g.Wrap(c, dx*g.CellSize*n, dy*g.CellSize*n)
}

// Center returns the cell at the middle of the field.
func (g Grid) Center() Cell {
	return g.Cell(g.Cols()/2, g.Rows()/2)
}

// Contains reports whether c is a valid cell of this grid.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height &&
		c.X%g.CellSize == 0 && c.Y%g.CellSize == 0
}

// Cell returns the cell at the given column and row.
func (g Grid) Cell(col, row int) Cell {
	return Cell{X: col * g.CellSize, Y: row * g.CellSize}
}

// ColRow converts a cell to its column and row.
func (g Grid) ColRow(c Cell) (col, row int) {
	return c.X / g.CellSize, c.Y / g.CellSize
}

// mod is a modulo that never returns a negative result.
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
