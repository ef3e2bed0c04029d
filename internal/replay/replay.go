// Package replay records the inputs of a game session and plays them back.
//
// A recording holds the seed, the configuration and, for every tick, the
// actions pressed and the clock offset the game observed. Replaying those
// against a fresh game reproduces the session exactly.
package replay

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Frame is the input of one tick.
type Frame struct {
	Tick    uint64
	Elapsed time.Duration // Clock offset from the start of the session
	Actions []core.Action
}

// Input rebuilds the frame's input, keeping the order of directional presses.
func (f Frame) Input() core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range f.Actions {
		in.Set(a)
	}
	return in
}

// Recording is a complete session.
type Recording struct {
	ID        int64
	GameID    string
	Seed      int64
	TickRate  int
	Config    []byte // YAML the session ran with
	Frames    []Frame
	CreatedAt time.Time
}

// Duration returns the clock offset of the last frame.
func (r Recording) Duration() time.Duration {
	if len(r.Frames) == 0 {
		return 0
	}
	return r.Frames[len(r.Frames)-1].Elapsed
}

// Recorder captures frames during live play.
//
// It is also the clock the game reads: the time is latched once per tick
// in Record, so the game and the recording see the same instant.
type Recorder struct {
	source core.Clock
	start  time.Time
	now    time.Time
	rec    Recording
}

// NewRecorder starts a recording. Pass the recorder as RuntimeConfig.Clock.
func NewRecorder(gameID string, seed int64, tickRate int, cfg []byte, source core.Clock) *Recorder {
	if source == nil {
		source = core.SystemClock{}
	}
	start := source.Now()
	return &Recorder{
		source: source,
		start:  start,
		now:    start,
		rec: Recording{
			GameID:   gameID,
			Seed:     seed,
			TickRate: tickRate,
			Config:   cfg,
		},
	}
}

// Now returns the time latched by the latest Record.
func (r *Recorder) Now() time.Time {
	return r.now
}

// Record latches the clock and appends the input for the coming tick.
// Call it right before Game.Step.
func (r *Recorder) Record(in core.InputFrame) {
	r.now = r.source.Now()
	r.rec.Frames = append(r.rec.Frames, Frame{
		Tick:    uint64(len(r.rec.Frames)) + 1,
		Elapsed: r.now.Sub(r.start),
		Actions: in.Sequence(),
	})
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Recording returns the frames captured so far.
func (r *Recorder) Recording() Recording {
	out := r.rec
	out.Frames = append([]Frame(nil), r.rec.Frames...)
	return out
}

// epoch anchors replayed clocks. Games only compare times, so any fixed
// instant will do.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Player feeds a recording back one tick at a time.
type Player struct {
	rec   Recording
	clock *core.ManualClock
	next  int
}

// NewPlayer creates a player positioned before the first frame.
func NewPlayer(rec Recording) *Player {
	return &Player{rec: rec, clock: core.NewManualClock(epoch)}
}

// Recording returns the recording being played.
func (p *Player) Recording() Recording {
	return p.rec
}

// RuntimeConfig returns the configuration to Reset the game with.
func (p *Player) RuntimeConfig(screenW, screenH int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  screenW,
		ScreenH:  screenH,
		TickRate: p.rec.TickRate,
		Seed:     p.rec.Seed,
		Clock:    p.clock,
	}
}

// Next sets the clock for the next frame and returns its input.
// It returns false once every frame has been played.
func (p *Player) Next() (core.InputFrame, bool) {
	if p.next >= len(p.rec.Frames) {
		return core.InputFrame{}, false
	}
	f := p.rec.Frames[p.next]
	p.next++
	p.clock.Set(epoch.Add(f.Elapsed))
	return f.Input(), true
}

// Done reports whether every frame has been played.
func (p *Player) Done() bool {
	return p.next >= len(p.rec.Frames)
}

// Progress returns how many frames have been played out of the total.
func (p *Player) Progress() (played, total int) {
	return p.next, len(p.rec.Frames)
}

// Run resets g and plays the whole recording against it without rendering.
func Run(g registry.Game, rec Recording) {
	p := NewPlayer(rec)
	g.Reset(p.RuntimeConfig(0, 0))
	for {
		in, ok := p.Next()
		if !ok {
			return
		}
		g.Step(in)
	}
}
