package snake

// Snapshot captures the game state for determinism testing and replay verification.
type Snapshot struct {
	Tick         uint64
	Variant      Variant
	Length       int
	Head         Cell
	Dir          Direction
	Apple        Cell
	ApplePlaced  bool
	Poison       Cell // Zero in the classic variant
	PoisonPlaced bool
	ApplesEaten  int
	PoisonsEaten int
	Resets       int
	Skipped      int // Relocations skipped because the board was full
	Paused       bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:         g.tick,
		Variant:      g.variant,
		Length:       g.snake.Len(),
		Head:         g.snake.Head(),
		Dir:          g.snake.Direction(),
		ApplePlaced:  g.apple.Placed(),
		ApplesEaten:  g.applesEaten,
		PoisonsEaten: g.poisonsEaten,
		Resets:       g.resets,
		Skipped:      g.skipped,
		Paused:       g.paused,
	}
	if g.apple.Placed() {
		snap.Apple = g.apple.Position()
	}
	if g.poison != nil && g.poison.Placed() {
		snap.Poison = g.poison.Position()
		snap.PoisonPlaced = true
	}
	return snap
}
