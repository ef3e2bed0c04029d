package snake

import (
	"github.com/gammazero/deque"
)

// Snake is the player's body: an ordered run of cells, head first.
// The body lives in a deque because every move pushes a head and pops a tail.
type Snake struct {
	grid      Grid
	body      deque.Deque[Cell]
	direction Direction
	pending   Direction

	last    Cell // Tail cell vacated by the latest Move
	hasLast bool

	vacated []Cell // Cells left since the last TakeVacated
}

// NewSnake creates a length-1 snake at the centre of the grid heading right.
func NewSnake(g Grid) *Snake {
	s := &Snake{grid: g}
	s.Reset()
	return s
}

// Reset collapses the snake to a single cell at the centre heading right.
func (s *Snake) Reset() {
	for i := 0; i < s.body.Len(); i++ {
		s.vacated = append(s.vacated, s.body.At(i))
	}
	s.body.Clear()
	s.body.PushFront(s.grid.Center())
	s.direction = DirRight
	s.pending = DirRight
	s.hasLast = false
}

// SetPendingDirection queues d for the next move.
// A reversal of the current direction is ignored.
func (s *Snake) SetPendingDirection(d Direction) {
	if d == s.direction.Opposite() {
		return
	}
	s.pending = d
}

// ApplyPendingDirection makes the queued direction current.
func (s *Snake) ApplyPendingDirection() {
	s.direction = s.pending
}

// Move advances the head one cell. If the new head would land on the body
// (the tail about to be vacated excluded) the snake resets instead and
// Move reports the collision.
func (s *Snake) Move() (collided bool) {
	next := s.grid.Step(s.Head(), s.direction, 1)

	for i := 0; i < s.body.Len()-1; i++ {
		if s.body.At(i) == next {
			s.Reset()
			return true
		}
	}

	s.body.PushFront(next)
	s.last = s.body.PopBack()
	s.hasLast = true
	s.vacated = append(s.vacated, s.last)
	return false
}

// Grow appends a copy of the head as the new tail.
func (s *Snake) Grow() {
	s.body.PushBack(s.Head())
}

// Shrink drops the tail unless the snake is a single cell.
func (s *Snake) Shrink() (removed Cell, ok bool) {
	if s.body.Len() <= 1 {
		return Cell{}, false
	}
	removed = s.body.PopBack()
	s.vacated = append(s.vacated, removed)
	return removed, true
}

// Head returns the head cell.
func (s *Snake) Head() Cell {
	return s.body.Front()
}

// Len returns the number of body cells.
func (s *Snake) Len() int {
	return s.body.Len()
}

// Direction returns the current heading.
func (s *Snake) Direction() Direction {
	return s.direction
}

// Pending returns the direction queued for the next move.
func (s *Snake) Pending() Direction {
	return s.pending
}

// Cells returns a copy of the body, head first.
func (s *Snake) Cells() []Cell {
	out := make([]Cell, s.body.Len())
	for i := range out {
		out[i] = s.body.At(i)
	}
	return out
}

// Contains reports whether any body cell equals c.
func (s *Snake) Contains(c Cell) bool {
	for i := 0; i < s.body.Len(); i++ {
		if s.body.At(i) == c {
			return true
		}
	}
	return false
}

// Last returns the tail cell vacated by the most recent Move.
func (s *Snake) Last() (Cell, bool) {
	return s.last, s.hasLast
}

// TakeVacated returns and forgets every cell the snake has left since the
// previous call. The renderer erases these.
func (s *Snake) TakeVacated() []Cell {
	out := s.vacated
	s.vacated = nil
	return out
}
