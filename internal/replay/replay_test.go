package replay_test

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/replay"
)

func TestRecorderKeepsSteeringOrder(t *testing.T) {
	src := core.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	r := replay.NewRecorder("snake", 1, 10, nil, src)

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	in.Set(core.ActionPause)
	in.Set(core.ActionLeft)
	in.Set(core.ActionRight)
	r.Record(in)

	f := r.Recording().Frames[0]
	expected := []core.Action{core.ActionPause, core.ActionRight, core.ActionLeft, core.ActionRight}
	if len(f.Actions) != len(expected) {
		t.Fatalf("Actions = %v, expected %v", f.Actions, expected)
	}
	for i := range expected {
		if f.Actions[i] != expected[i] {
			t.Fatalf("Actions = %v, expected %v", f.Actions, expected)
		}
	}

	rebuilt := f.Input()
	if got := rebuilt.Steer; len(got) != 3 || got[0] != core.ActionRight || got[1] != core.ActionLeft || got[2] != core.ActionRight {
		t.Errorf("Input().Steer = %v, expected [Right Left Right]", got)
	}
	if !rebuilt.Has(core.ActionPause) {
		t.Error("Input() lost the pause")
	}
}

func TestRecorderLatchesClock(t *testing.T) {
	src := core.NewManualClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	r := replay.NewRecorder("snake", 1, 10, nil, src)
	start := r.Now()

	src.Advance(time.Second)
	if !r.Now().Equal(start) {
		t.Errorf("Now() = %v before Record, expected %v", r.Now(), start)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionUp)
	in.Set(core.ActionPause)
	r.Record(in)

	if !r.Now().Equal(start.Add(time.Second)) {
		t.Errorf("Now() = %v after Record, expected %v", r.Now(), start.Add(time.Second))
	}

	rec := r.Recording()
	if len(rec.Frames) != 1 {
		t.Fatalf("len(Frames) = %d, expected 1", len(rec.Frames))
	}
	f := rec.Frames[0]
	if f.Tick != 1 || f.Elapsed != time.Second {
		t.Errorf("Frame = %+v, expected tick 1 at 1s", f)
	}
	if len(f.Actions) != 2 || f.Actions[0] != core.ActionPause || f.Actions[1] != core.ActionUp {
		t.Errorf("Actions = %v, expected [Pause Up]", f.Actions)
	}
	if rec.Duration() != time.Second {
		t.Errorf("Duration() = %v, expected 1s", rec.Duration())
	}
}

func TestPlayerSetsClock(t *testing.T) {
	rec := replay.Recording{
		Seed:     5,
		TickRate: 10,
		Frames: []replay.Frame{
			{Tick: 1, Elapsed: 100 * time.Millisecond},
			{Tick: 2, Elapsed: 250 * time.Millisecond, Actions: []core.Action{core.ActionDown}},
		},
	}
	p := replay.NewPlayer(rec)
	cfg := p.RuntimeConfig(80, 24)
	start := cfg.Clock.Now()

	if cfg.Seed != 5 || cfg.TickRate != 10 {
		t.Errorf("RuntimeConfig() = %+v, expected seed 5 and tick rate 10", cfg)
	}

	in, ok := p.Next()
	if !ok || !in.Empty() {
		t.Fatalf("Next() = %v, %v, expected an empty frame", in, ok)
	}
	if got := cfg.Clock.Now().Sub(start); got != 100*time.Millisecond {
		t.Errorf("clock offset = %v, expected 100ms", got)
	}

	in, ok = p.Next()
	if !ok || !in.Has(core.ActionDown) {
		t.Fatalf("Next() = %v, %v, expected Down", in, ok)
	}
	if got := cfg.Clock.Now().Sub(start); got != 250*time.Millisecond {
		t.Errorf("clock offset = %v, expected 250ms", got)
	}

	if _, ok := p.Next(); ok {
		t.Error("Next() past the end = true, expected false")
	}
	if !p.Done() {
		t.Error("Done() = false, expected true")
	}
	if played, total := p.Progress(); played != 2 || total != 2 {
		t.Errorf("Progress() = %d/%d, expected 2/2", played, total)
	}
}

func TestReplayReproducesSession(t *testing.T) {
	src := core.NewManualClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	r := replay.NewRecorder("snake_poison", 2024, 10, nil, src)

	live := snake.NewPoison()
	live.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 10, Seed: 2024, Clock: r})

	steer := []core.Action{core.ActionDown, core.ActionLeft, core.ActionUp, core.ActionRight}
	for i := 0; i < 600; i++ {
		in := core.NewInputFrame()
		if i%17 == 3 {
			in.Set(steer[(i/17)%len(steer)])
		}
		if i == 250 || i == 280 {
			in.Set(core.ActionPause)
		}
		// Uneven tick spacing, as on a real terminal
		src.Advance(time.Duration(90+i%25) * time.Millisecond)
		r.Record(in)
		live.Step(in)
	}

	replayed := snake.NewPoison()
	replay.Run(replayed, r.Recording())

	if got, want := replayed.Snapshot(), live.Snapshot(); got != want {
		t.Errorf("replayed snapshot = %+v, expected %+v", got, want)
	}
}
