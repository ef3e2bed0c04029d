package snake

import "testing"

func TestGridDimensions(t *testing.T) {
	g := NewGrid(640, 480, 20)

	if g.Cols() != 32 {
		t.Errorf("Cols() = %d, expected 32", g.Cols())
	}
	if g.Rows() != 24 {
		t.Errorf("Rows() = %d, expected 24", g.Rows())
	}
	if got := len(g.AllCells()); got != 32*24 {
		t.Errorf("len(AllCells()) = %d, expected %d", got, 32*24)
	}
	if c := g.Center(); c != (Cell{X: 320, Y: 240}) {
		t.Errorf("Center() = %v, expected (320,240)", c)
	}
}

func TestGridAllCellsRowMajor(t *testing.T) {
	g := NewGrid(60, 40, 20)
	expected := []Cell{
		{0, 0}, {20, 0}, {40, 0},
		{0, 20}, {20, 20}, {40, 20},
	}

	got := g.AllCells()
	if len(got) != len(expected) {
		t.Fatalf("len(AllCells()) = %d, expected %d", len(got), len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("AllCells()[%d] = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestGridWrap(t *testing.T) {
	g := NewGrid(640, 480, 20)

	tests := []struct {
		name   string
		cell   Cell
		dx, dy int
		want   Cell
	}{
		{"identity", Cell{100, 100}, 0, 0, Cell{100, 100}},
		{"right edge", Cell{620, 100}, 20, 0, Cell{0, 100}},
		{"left edge", Cell{0, 100}, -20, 0, Cell{620, 100}},
		{"bottom edge", Cell{100, 460}, 0, 20, Cell{100, 0}},
		{"top edge", Cell{100, 0}, 0, -20, Cell{100, 460}},
		{"corner", Cell{0, 0}, -20, -20, Cell{620, 460}},
		{"several laps", Cell{0, 0}, -640 * 3, 480*2 + 40, Cell{0, 40}},
		{"projection", Cell{600, 240}, 100, 0, Cell{60, 240}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Wrap(tt.cell, tt.dx, tt.dy); got != tt.want {
				t.Errorf("Wrap(%v, %d, %d) = %v, expected %v", tt.cell, tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestGridWrapStaysInField(t *testing.T) {
	g := NewGrid(640, 480, 20)

	for _, c := range g.AllCells() {
		for dx := -1300; dx <= 1300; dx += 260 {
			for dy := -1000; dy <= 1000; dy += 200 {
				got := g.Wrap(c, dx, dy)
				if !g.Contains(got) {
					t.Fatalf("Wrap(%v, %d, %d) = %v, outside the field", c, dx, dy, got)
				}
			}
		}
	}
}

func TestGridStep(t *testing.T) {
	g := NewGrid(640, 480, 20)
	head := Cell{320, 240}

	tests := []struct {
		dir  Direction
		n    int
		want Cell
	}{
		{DirRight, 1, Cell{340, 240}},
		{DirLeft, 1, Cell{300, 240}},
		{DirUp, 1, Cell{320, 220}},
		{DirDown, 1, Cell{320, 260}},
		{DirRight, 5, Cell{420, 240}},
		{DirUp, 13, Cell{320, 460}},
	}

	for _, tt := range tests {
		if got := g.Step(head, tt.dir, tt.n); got != tt.want {
			t.Errorf("Step(%v, %v, %d) = %v, expected %v", head, tt.dir, tt.n, got, tt.want)
		}
	}
}

func TestGridContains(t *testing.T) {
	g := NewGrid(640, 480, 20)

	tests := []struct {
		cell Cell
		want bool
	}{
		{Cell{0, 0}, true},
		{Cell{620, 460}, true},
		{Cell{640, 0}, false},
		{Cell{0, -20}, false},
		{Cell{10, 0}, false},
	}

	for _, tt := range tests {
		if got := g.Contains(tt.cell); got != tt.want {
			t.Errorf("Contains(%v) = %v, expected %v", tt.cell, got, tt.want)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		dir, want Direction
	}{
		{DirUp, DirDown},
		{DirDown, DirUp},
		{DirLeft, DirRight},
		{DirRight, DirLeft},
	}

	for _, tt := range tests {
		if got := tt.dir.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, expected %v", tt.dir, got, tt.want)
		}
		dx, dy := tt.dir.Delta()
		ox, oy := tt.want.Delta()
		if dx != -ox || dy != -oy {
			t.Errorf("%v.Delta() = (%d,%d) is not the reverse of %v", tt.dir, dx, dy, tt.want)
		}
	}
}
