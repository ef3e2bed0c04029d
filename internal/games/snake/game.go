package snake

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Variant selects which occupants are on the field.
type Variant string

const (
	VariantClassic Variant = "classic" // Apple only
	VariantPoison  Variant = "poison"  // Apple and a shrinking, wandering poison
)

// Game implements the Snake game.
type Game struct {
	variant Variant
	cfg     config.SnakeConfig
	palette config.Palette
	grid    Grid
	rng     *rand.Rand
	clock   core.Clock
	tick    uint64

	snake          *Snake
	apple          *Occupant
	poison         *Occupant // nil in the classic variant
	poisonDeadline time.Time

	// Cells an occupant moved away from since the last draw
	vacated    []Cell
	fullRedraw bool

	applesEaten  int
	poisonsEaten int
	resets       int
	bestLength   int
	skipped      int // Relocations skipped for lack of space

	paused   bool
	pausedAt time.Time

	// Screen dimensions
	screenW int
	screenH int
}

// Package-level configuration shared by every game the registry creates.
var activeConfig = config.DefaultSnakeConfig()

// Configure sets the configuration used by games created afterwards.
// The config should already be validated.
func Configure(cfg config.SnakeConfig) {
	activeConfig = cfg
}

// New creates a classic Snake game.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewPoison creates a Snake game with the poison occupant.
func NewPoison() *Game {
	return &Game{variant: VariantPoison}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
	registry.Register("snake_poison", func() registry.Game {
		return NewPoison()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == VariantPoison {
		return "snake_poison"
	}
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantPoison {
		return "Snake (Poison)"
	}
	return "Snake"
}

// Variant returns the game variant.
func (g *Game) Variant() Variant {
	return g.variant
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = activeConfig
	palette, err := g.cfg.Colors.Resolve()
	if err != nil {
		palette, _ = config.DefaultSnakeConfig().Colors.Resolve()
	}
	g.palette = palette
	g.grid = NewGrid(g.cfg.Field.Width, g.cfg.Field.Height, g.cfg.Field.CellSize)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.clock = cfg.ClockOrSystem()
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.applesEaten = 0
	g.poisonsEaten = 0
	g.resets = 0
	g.skipped = 0
	g.paused = false
	g.vacated = nil
	g.fullRedraw = true

	g.snake = NewSnake(g.grid)
	g.bestLength = g.snake.Len()

	g.apple = NewOccupant(KindApple, g.palette.Apple)
	g.relocate(g.apple, g.occupiedBy(g.snake.Cells()))

	g.poison = nil
	if g.variant == VariantPoison {
		g.poison = NewOccupant(KindPoison, g.palette.Poison)
		g.relocate(g.poison, g.occupiedBy(g.snake.Cells(), g.otherThan(g.poison)...))
		g.poisonDeadline = g.clock.Now().Add(g.cfg.ChangeInterval())
	}

	log.Debug("game reset", "game", g.ID(), "seed", cfg.Seed,
		"cols", g.grid.Cols(), "rows", g.grid.Rows())
}

// Resize records new screen dimensions without touching game state.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.fullRedraw = true
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionPause) {
		g.togglePause()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.steer(input)
	g.snake.ApplyPendingDirection()
	if g.snake.Move() {
		g.resets++
		log.Debug("self-collision, snake reset", "tick", g.tick, "resets", g.resets)
	}

	// An eat event this tick pre-empts the timed poison jump.
	head := g.snake.Head()
	switch {
	case g.apple.At(head):
		g.eatApple()
	case g.poison != nil && g.poison.At(head):
		g.eatPoison()
	case g.poison != nil && !g.clock.Now().Before(g.poisonDeadline):
		g.jumpPoison()
	}

	if n := g.snake.Len(); n > g.bestLength {
		g.bestLength = n
	}

	return core.StepResult{State: g.State()}
}

// steer applies every directional press of the tick in arrival order.
// A reversal is rejected on its own without discarding the presses after it.
func (g *Game) steer(input core.InputFrame) {
	for _, a := range input.Steer {
		switch a {
		case core.ActionUp:
			g.snake.SetPendingDirection(DirUp)
		case core.ActionDown:
			g.snake.SetPendingDirection(DirDown)
		case core.ActionLeft:
			g.snake.SetPendingDirection(DirLeft)
		case core.ActionRight:
			g.snake.SetPendingDirection(DirRight)
		}
	}
}

// togglePause pauses or resumes. Time spent paused does not count toward
// the poison timer.
func (g *Game) togglePause() {
	now := g.clock.Now()
	if g.paused {
		g.poisonDeadline = g.poisonDeadline.Add(now.Sub(g.pausedAt))
		g.paused = false
		return
	}
	g.paused = true
	g.pausedAt = now
}

func (g *Game) eatApple() {
	g.snake.Grow()
	g.applesEaten++

	// Prefer a fresh cell away from the tail that just moved off, falling
	// back to the bare body when the board is nearly full.
	var extra []Cell
	if last, ok := g.snake.Last(); ok {
		extra = append(extra, last)
	}
	extra = append(extra, g.apple.Position())
	extra = append(extra, g.otherThan(g.apple)...)
	strict := g.occupiedBy(g.snake.Cells(), extra...)
	if !g.tryRelocate(g.apple, strict) {
		g.relocate(g.apple, g.occupiedBy(g.snake.Cells(), g.otherThan(g.apple)...))
	}

	log.Debug("apple eaten", "tick", g.tick, "length", g.snake.Len(), "apple", g.apple.Position())
}

func (g *Game) eatPoison() {
	g.snake.Shrink()
	g.poisonsEaten++

	strict := g.occupiedBy(g.snake.Cells(), g.apple.Position(), g.poison.Position())
	if !g.tryRelocate(g.poison, strict) {
		g.relocate(g.poison, g.occupiedBy(g.snake.Cells(), g.otherThan(g.poison)...))
	}
	g.poisonDeadline = g.clock.Now().Add(g.cfg.ChangeInterval())

	log.Debug("poison eaten", "tick", g.tick, "length", g.snake.Len(), "poison", g.poison.Position())
}

func (g *Game) jumpPoison() {
	old := g.poison.Position()
	g.poison.RelocateTowardHeading(g.grid, g.snake.Head(), g.snake.Direction(), g.cfg.Poison.ProjectionCells)
	g.vacated = append(g.vacated, old)
	g.poisonDeadline = g.clock.Now().Add(g.cfg.ChangeInterval())

	log.Debug("poison moved ahead of snake", "tick", g.tick, "poison", g.poison.Position())
}

// tryRelocate relocates o and reports whether a free cell was found.
func (g *Game) tryRelocate(o *Occupant, occupied map[Cell]bool) bool {
	old := o.Position()
	wasPlaced := o.placed
	if err := o.Relocate(g.rng, g.grid, occupied); err != nil {
		return false
	}
	if wasPlaced {
		g.vacated = append(g.vacated, old)
	}
	return true
}

// relocate relocates o, skipping the move when the board is full.
func (g *Game) relocate(o *Occupant, occupied map[Cell]bool) {
	if g.tryRelocate(o, occupied) {
		return
	}
	g.skipped++
	log.Debug("relocation skipped", "kind", o.Kind(), "error", ErrExhaustedSpace)
}

// otherThan returns the positions of occupants other than o.
func (g *Game) otherThan(o *Occupant) []Cell {
	var out []Cell
	for _, other := range []*Occupant{g.apple, g.poison} {
		if other != nil && other != o && other.placed {
			out = append(out, other.Position())
		}
	}
	return out
}

// occupiedBy builds an occupancy set.
func (g *Game) occupiedBy(cells []Cell, extra ...Cell) map[Cell]bool {
	set := make(map[Cell]bool, len(cells)+len(extra))
	for _, c := range cells {
		set[c] = true
	}
	for _, c := range extra {
		set[c] = true
	}
	return set
}

// State reports the snake's length as the score.
// The snake never dies: a collision resets it in place.
func (g *Game) State() core.GameState {
	st := core.GameState{Best: g.bestLength, Paused: g.paused}
	if g.snake != nil {
		st.Score = g.snake.Len()
	}
	return st
}

// Grid returns the playing field.
func (g *Game) Grid() Grid {
	return g.grid
}
