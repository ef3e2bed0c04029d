package snake

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestGame(variant Variant, seed int64) (*Game, *core.ManualClock) {
	clk := core.NewManualClock(epoch)
	g := &Game{variant: variant}
	g.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 10,
		Seed:     seed,
		Clock:    clk,
	})
	return g, clk
}

func smallConfig(width, height int) config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Field.Width = width
	cfg.Field.Height = height
	return cfg
}

func inputOf(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegisteredVariants(t *testing.T) {
	tests := []struct {
		id      string
		variant Variant
	}{
		{"snake", VariantClassic},
		{"snake_poison", VariantPoison},
	}

	for _, tt := range tests {
		g, err := registry.Create(tt.id)
		if err != nil {
			t.Fatalf("registry.Create(%q) error = %v", tt.id, err)
		}
		sg, ok := g.(*Game)
		if !ok {
			t.Fatalf("registry.Create(%q) returned %T, expected *Game", tt.id, g)
		}
		if sg.Variant() != tt.variant {
			t.Errorf("Variant() = %v, expected %v", sg.Variant(), tt.variant)
		}
		if sg.ID() != tt.id {
			t.Errorf("ID() = %q, expected %q", sg.ID(), tt.id)
		}
		if _, ok := g.(registry.Drawer); !ok {
			t.Errorf("%q does not implement registry.Drawer", tt.id)
		}
	}
}

func TestResetPlacesOccupants(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		g, _ := newTestGame(VariantPoison, seed)

		if g.snake.Len() != 1 || g.snake.Head() != (Cell{320, 240}) {
			t.Fatalf("seed %d: snake = %v, expected [(320,240)]", seed, g.snake.Cells())
		}
		if g.snake.Contains(g.apple.Position()) {
			t.Errorf("seed %d: apple %v placed on the snake", seed, g.apple.Position())
		}
		if g.snake.Contains(g.poison.Position()) || g.poison.Position() == g.apple.Position() {
			t.Errorf("seed %d: poison %v overlaps snake or apple %v", seed, g.poison.Position(), g.apple.Position())
		}
		if !g.grid.Contains(g.apple.Position()) || !g.grid.Contains(g.poison.Position()) {
			t.Errorf("seed %d: occupant outside the field", seed)
		}
	}
}

func TestClassicHasNoPoison(t *testing.T) {
	g, clk := newTestGame(VariantClassic, 1)
	g.apple.pos = Cell{0, 0}

	clk.Advance(time.Minute)
	g.Step(core.NewInputFrame())

	if g.poison != nil {
		t.Fatal("classic variant has a poison occupant")
	}
	if snap := g.Snapshot(); snap.Poison != (Cell{}) || snap.PoisonsEaten != 0 {
		t.Errorf("Snapshot() = %+v, expected no poison", snap)
	}
	if strings.Contains(g.HUD(), "Poison") {
		t.Errorf("HUD() = %q, expected no poison counter", g.HUD())
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g, _ := newTestGame(VariantClassic, 42)
	setBody(g.snake, DirRight, Cell{320, 240}, Cell{300, 240})
	g.apple.pos = Cell{0, 0}

	g.Step(inputOf(core.ActionLeft))

	if g.snake.Direction() != DirRight {
		t.Errorf("Direction() = %v, expected right", g.snake.Direction())
	}
	if g.snake.Head() != (Cell{340, 240}) {
		t.Errorf("Head() = %v, expected (340,240)", g.snake.Head())
	}

	g.Step(inputOf(core.ActionUp))
	if g.snake.Head() != (Cell{340, 220}) {
		t.Errorf("Head() after up = %v, expected (340,220)", g.snake.Head())
	}
}

func TestSteerAppliesPressesInOrder(t *testing.T) {
	tests := []struct {
		name    string
		presses []core.Action
		want    Direction
	}{
		{"reversal first, turn second", []core.Action{core.ActionDown, core.ActionLeft}, DirLeft},
		{"turn first, reversal second", []core.Action{core.ActionLeft, core.ActionDown}, DirLeft},
		{"last legal turn wins", []core.Action{core.ActionLeft, core.ActionRight}, DirRight},
		{"repeat after another turn", []core.Action{core.ActionRight, core.ActionLeft, core.ActionRight}, DirRight},
		{"only a reversal", []core.Action{core.ActionDown}, DirUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(VariantClassic, 1)
			setBody(g.snake, DirUp, Cell{320, 240}, Cell{320, 260})
			g.apple.pos = Cell{0, 0}

			g.Step(inputOf(tt.presses...))

			if got := g.snake.Direction(); got != tt.want {
				t.Errorf("Direction() after %v while heading up = %v, expected %v", tt.presses, got, tt.want)
			}
		})
	}
}

func TestAppleEaten(t *testing.T) {
	// Snake at [(100,100)] heading right, apple at (120,100)
	for seed := int64(0); seed < 20; seed++ {
		g, _ := newTestGame(VariantClassic, seed)
		setBody(g.snake, DirRight, Cell{100, 100})
		g.apple.pos = Cell{120, 100}

		g.Step(core.NewInputFrame())

		if g.snake.Head() != (Cell{120, 100}) {
			t.Fatalf("seed %d: Head() = %v, expected (120,100)", seed, g.snake.Head())
		}
		if g.snake.Len() != 2 {
			t.Errorf("seed %d: Len() = %d, expected 2", seed, g.snake.Len())
		}
		apple := g.apple.Position()
		if apple == (Cell{100, 100}) || apple == (Cell{120, 100}) {
			t.Errorf("seed %d: apple relocated to %v, expected a new cell", seed, apple)
		}
		if g.applesEaten != 1 {
			t.Errorf("seed %d: applesEaten = %d, expected 1", seed, g.applesEaten)
		}
	}
}

func TestPoisonEaten(t *testing.T) {
	// Length-3 snake whose next head lands on the poison
	for seed := int64(0); seed < 20; seed++ {
		g, clk := newTestGame(VariantPoison, seed)
		setBody(g.snake, DirRight, Cell{140, 100}, Cell{120, 100}, Cell{100, 100})
		g.apple.pos = Cell{400, 400}
		g.poison.pos = Cell{160, 100}
		clk.Advance(2 * time.Second)

		g.Step(core.NewInputFrame())

		if g.snake.Len() != 2 {
			t.Fatalf("seed %d: Len() = %d, expected 2", seed, g.snake.Len())
		}
		expected := []Cell{{160, 100}, {140, 100}}
		for i, c := range g.snake.Cells() {
			if c != expected[i] {
				t.Errorf("seed %d: Cells()[%d] = %v, expected %v", seed, i, c, expected[i])
			}
		}
		poison := g.poison.Position()
		if g.snake.Contains(poison) || poison == g.apple.Position() {
			t.Errorf("seed %d: poison relocated to %v, overlapping snake or apple", seed, poison)
		}
		if g.apple.Position() != (Cell{400, 400}) {
			t.Errorf("seed %d: apple moved to %v", seed, g.apple.Position())
		}
		if want := clk.Now().Add(5 * time.Second); !g.poisonDeadline.Equal(want) {
			t.Errorf("seed %d: poisonDeadline = %v, expected %v", seed, g.poisonDeadline, want)
		}
	}
}

func TestPoisonAtLengthOne(t *testing.T) {
	g, _ := newTestGame(VariantPoison, 5)
	setBody(g.snake, DirRight, Cell{100, 100})
	g.apple.pos = Cell{400, 400}
	g.poison.pos = Cell{120, 100}

	g.Step(core.NewInputFrame())

	if g.snake.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", g.snake.Len())
	}
	if g.poisonsEaten != 1 {
		t.Errorf("poisonsEaten = %d, expected 1", g.poisonsEaten)
	}
	if g.poison.Position() == (Cell{120, 100}) {
		t.Error("poison did not relocate")
	}
}

func TestPoisonTimedJump(t *testing.T) {
	g, clk := newTestGame(VariantPoison, 9)
	g.apple.pos = Cell{600, 0}
	g.poison.pos = Cell{0, 0}

	// Not yet due
	clk.Advance(4900 * time.Millisecond)
	g.Step(core.NewInputFrame())
	if g.poison.Position() != (Cell{0, 0}) {
		t.Fatalf("poison moved early to %v", g.poison.Position())
	}

	clk.Advance(100 * time.Millisecond)
	g.Step(core.NewInputFrame())

	head := g.snake.Head()
	if want := g.grid.Wrap(head, 100, 0); g.poison.Position() != want {
		t.Errorf("poison = %v, expected %v", g.poison.Position(), want)
	}
	if want := clk.Now().Add(5 * time.Second); !g.poisonDeadline.Equal(want) {
		t.Errorf("poisonDeadline = %v, expected %v", g.poisonDeadline, want)
	}
}

func TestPoisonTimedJumpIgnoresOccupancy(t *testing.T) {
	g, clk := newTestGame(VariantPoison, 9)
	setBody(g.snake, DirDown, Cell{320, 240})
	g.apple.pos = Cell{320, 360} // Where the jump lands
	g.poison.pos = Cell{0, 0}

	clk.Advance(5 * time.Second)
	g.Step(core.NewInputFrame())

	if g.poison.Position() != (Cell{320, 360}) {
		t.Errorf("poison = %v, expected (320,360)", g.poison.Position())
	}
	if g.apple.Position() != (Cell{320, 360}) {
		t.Errorf("apple = %v, expected (320,360)", g.apple.Position())
	}
}

func TestEatBeatsTimer(t *testing.T) {
	g, clk := newTestGame(VariantPoison, 3)
	setBody(g.snake, DirRight, Cell{320, 240})
	g.apple.pos = Cell{340, 240}
	g.poison.pos = Cell{0, 0}
	deadline := g.poisonDeadline

	clk.Advance(6 * time.Second)
	g.Step(core.NewInputFrame())

	if g.applesEaten != 1 {
		t.Fatalf("applesEaten = %d, expected 1", g.applesEaten)
	}
	if g.poison.Position() != (Cell{0, 0}) {
		t.Errorf("poison jumped to %v on an eat tick", g.poison.Position())
	}
	if !g.poisonDeadline.Equal(deadline) {
		t.Errorf("poisonDeadline = %v, expected %v", g.poisonDeadline, deadline)
	}

	// The overdue jump happens on the next quiet tick
	g.apple.pos = Cell{0, 460}
	g.Step(core.NewInputFrame())

	if want := g.grid.Wrap(g.snake.Head(), 100, 0); g.poison.Position() != want {
		t.Errorf("poison = %v, expected %v", g.poison.Position(), want)
	}
}

func TestSelfCollisionInGame(t *testing.T) {
	g, _ := newTestGame(VariantClassic, 11)
	setBody(g.snake, DirRight,
		Cell{100, 100}, Cell{80, 100}, Cell{80, 120}, Cell{100, 120}, Cell{120, 120})
	g.apple.pos = Cell{600, 0}
	g.bestLength = 5

	g.Step(inputOf(core.ActionDown))

	if g.snake.Len() != 1 || g.snake.Head() != (Cell{320, 240}) {
		t.Errorf("snake = %v, expected [(320,240)]", g.snake.Cells())
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
	if g.bestLength != 5 {
		t.Errorf("bestLength = %d, expected 5", g.bestLength)
	}
	if st := g.State(); st.Score != 1 || st.Best != 5 {
		t.Errorf("State() = %+v, expected score 1 and best 5", st)
	}
}

func TestPauseFreezesGameAndTimer(t *testing.T) {
	g, clk := newTestGame(VariantPoison, 4)
	g.apple.pos = Cell{600, 0}
	g.poison.pos = Cell{0, 0}
	deadline := g.poisonDeadline

	clk.Advance(time.Second)
	g.Step(inputOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("State().Paused = false after pause")
	}
	head := g.snake.Head()

	clk.Advance(10 * time.Second)
	g.Step(core.NewInputFrame())
	if g.snake.Head() != head {
		t.Errorf("snake moved while paused: %v -> %v", head, g.snake.Head())
	}
	if g.poison.Position() != (Cell{0, 0}) {
		t.Errorf("poison jumped while paused to %v", g.poison.Position())
	}

	g.Step(inputOf(core.ActionPause))
	if g.State().Paused {
		t.Fatal("State().Paused = true after resume")
	}
	if want := deadline.Add(10 * time.Second); !g.poisonDeadline.Equal(want) {
		t.Errorf("poisonDeadline = %v, expected %v", g.poisonDeadline, want)
	}
	if g.poison.Position() != (Cell{0, 0}) {
		t.Errorf("poison jumped on resume to %v", g.poison.Position())
	}
}

func TestFullBoardSkipsRelocation(t *testing.T) {
	// A 3x1 field the snake covers completely once it grows
	Configure(smallConfig(60, 20))
	t.Cleanup(func() { Configure(config.DefaultSnakeConfig()) })

	g, _ := newTestGame(VariantClassic, 1)
	setBody(g.snake, DirRight, Cell{20, 0}, Cell{0, 0}, Cell{40, 0})
	g.apple.pos = Cell{40, 0}

	g.Step(core.NewInputFrame())

	if g.snake.Len() != 4 {
		t.Fatalf("Len() = %d, expected 4", g.snake.Len())
	}
	if g.skipped != 1 {
		t.Errorf("skipped = %d, expected 1", g.skipped)
	}
	if g.apple.Position() != (Cell{40, 0}) {
		t.Errorf("apple = %v, expected to stay at (40,0)", g.apple.Position())
	}
}

func TestUnplacedPoisonIsInert(t *testing.T) {
	// A 2x1 field holds the snake and the apple, leaving no cell for poison
	Configure(smallConfig(40, 20))
	t.Cleanup(func() { Configure(config.DefaultSnakeConfig()) })

	g, _ := newTestGame(VariantPoison, 1)

	if g.poison.Placed() {
		t.Fatalf("poison placed at %v on a full board", g.poison.Position())
	}
	if g.skipped != 1 {
		t.Errorf("skipped = %d, expected 1", g.skipped)
	}
	snap := g.Snapshot()
	if snap.PoisonPlaced || !snap.ApplePlaced {
		t.Errorf("Snapshot() = %+v, expected a placed apple and no poison", snap)
	}

	s := newRecordingSurface()
	g.DrawAll(s)
	for cell, c := range s.cells {
		if c == g.palette.Poison {
			t.Errorf("cell %v drawn in poison color", cell)
		}
	}
}

func TestUnplacedPoisonIsNotEaten(t *testing.T) {
	Configure(smallConfig(60, 20))
	t.Cleanup(func() { Configure(config.DefaultSnakeConfig()) })

	g, _ := newTestGame(VariantPoison, 1)
	g.poison = NewOccupant(KindPoison, g.palette.Poison)
	setBody(g.snake, DirLeft, Cell{20, 0})
	g.apple.pos = Cell{40, 0}

	g.Step(core.NewInputFrame())

	if g.snake.Head() != (Cell{0, 0}) {
		t.Fatalf("Head() = %v, expected (0,0)", g.snake.Head())
	}
	if g.poisonsEaten != 0 || g.applesEaten != 0 {
		t.Errorf("eaten = %d apples, %d poisons, expected none", g.applesEaten, g.poisonsEaten)
	}
	if g.snake.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", g.snake.Len())
	}
}

func TestDeterminism(t *testing.T) {
	g1, c1 := newTestGame(VariantPoison, 12345)
	g2, c2 := newTestGame(VariantPoison, 12345)

	for i := 0; i < 400; i++ {
		var in core.InputFrame
		switch i % 37 {
		case 5:
			in = inputOf(core.ActionDown)
		case 13:
			in = inputOf(core.ActionLeft)
		case 21:
			in = inputOf(core.ActionUp)
		case 29:
			in = inputOf(core.ActionRight)
		default:
			in = core.NewInputFrame()
		}

		c1.Advance(100 * time.Millisecond)
		c2.Advance(100 * time.Millisecond)
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1 != s2 {
		t.Errorf("Snapshot mismatch:\n%+v\n%+v", s1, s2)
	}
	if s1.Tick != 400 {
		t.Errorf("Tick = %d, expected 400", s1.Tick)
	}
}

func TestSameSeedSamePlacement(t *testing.T) {
	g1, _ := newTestGame(VariantPoison, 77)
	g2, _ := newTestGame(VariantPoison, 77)

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("same seed produced %+v and %+v", g1.Snapshot(), g2.Snapshot())
	}
}
