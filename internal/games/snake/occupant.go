package snake

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrExhaustedSpace is returned when every cell is occupied and an
// occupant cannot be placed.
var ErrExhaustedSpace = errors.New("snake: no free cell to place occupant")

// Kind tags what happens when the snake eats an occupant.
type Kind int

const (
	KindApple  Kind = iota // Grows the snake
	KindPoison             // Shrinks the snake
)

func (k Kind) String() string {
	switch k {
	case KindApple:
		return "apple"
	case KindPoison:
		return "poison"
	default:
		return "unknown"
	}
}

// Occupant is a single-cell item on the field.
type Occupant struct {
	kind    Kind
	color   core.Color
	pos     Cell
	prev    Cell
	hasPrev bool
	placed  bool
}

// NewOccupant creates an unplaced occupant. Call Relocate to put it on the field.
func NewOccupant(kind Kind, color core.Color) *Occupant {
	return &Occupant{kind: kind, color: color}
}

// Kind returns the occupant's type tag.
func (o *Occupant) Kind() Kind {
	return o.kind
}

// Color returns the draw color.
func (o *Occupant) Color() core.Color {
	return o.color
}

// Position returns the current cell.
func (o *Occupant) Position() Cell {
	return o.pos
}

// Placed reports whether the occupant is on the field. An occupant that
// never found a free cell is not.
func (o *Occupant) Placed() bool {
	return o.placed
}

// At reports whether the occupant is placed on c.
func (o *Occupant) At(c Cell) bool {
	return o.placed && o.pos == c
}

// Previous returns the cell the occupant last moved away from.
func (o *Occupant) Previous() (Cell, bool) {
	return o.prev, o.hasPrev
}

// Relocate moves the occupant to a uniformly random cell not in occupied.
// The occupant is left untouched when no such cell exists.
func (o *Occupant) Relocate(rng *rand.Rand, g Grid, occupied map[Cell]bool) error {
	all := g.AllCells()
	free := make([]Cell, 0, len(all))
	for _, c := range all {
		if !occupied[c] {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		return ErrExhaustedSpace
	}
	o.moveTo(free[rng.Intn(len(free))])
	return nil
}

// RelocateTowardHeading places the occupant offsetCells ahead of head in
// direction dir, wrapping at the edges. It does not check for collisions.
func (o *Occupant) RelocateTowardHeading(g Grid, head Cell, dir Direction, offsetCells int) {
	o.moveTo(g.Step(head, dir, offsetCells))
}

func (o *Occupant) moveTo(c Cell) {
	if o.placed {
		o.prev = o.pos
		o.hasPrev = true
	}
	o.pos = c
	o.placed = true
}
