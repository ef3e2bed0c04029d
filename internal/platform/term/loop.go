package term

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
)

// hudHeight is the number of rows above the field box.
const hudHeight = 2

// Options configures a tcell session.
type Options struct {
	// Recorder, when set, must also be the RuntimeConfig clock.
	// Every tick's input is recorded before Step.
	Recorder *replay.Recorder
}

// NewScreen creates and initializes the terminal screen.
// The caller must Fini it.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: cannot initialize screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	return screen, nil
}

// loop owns the game for the duration of Run.
type loop struct {
	game    registry.Game
	drawer  registry.Drawer
	screen  tcell.Screen
	opts    Options
	surface *Surface // Nil while the window is too small
	frame   core.InputFrame
}

// Run plays game on screen until the user quits or ctx is cancelled.
// Quitting returns nil. The screen must already be initialized.
func Run(ctx context.Context, game registry.Game, screen tcell.Screen, cfg core.RuntimeConfig, opts Options) error {
	drawer, ok := game.(registry.Drawer)
	if !ok {
		return fmt.Errorf("term: game %q cannot draw on a cell surface", game.ID())
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	w, h := screen.Size()
	cfg.ScreenW, cfg.ScreenH = w, h
	game.Reset(cfg)

	l := &loop{
		game:   game,
		drawer: drawer,
		screen: screen,
		opts:   opts,
		frame:  core.NewInputFrame(),
	}
	l.layout()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// PollEvent blocks, so it gets its own goroutine
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if l.handleEvent(ev) {
				log.Debug("quit requested", "game", game.ID())
				return nil
			}

		case <-ticker.C:
			l.tick()
		}
	}
}

// handleEvent processes one terminal event and reports a quit request.
func (l *loop) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action, quit := core.MapKeyName(KeyName(ev))
		if quit {
			return true
		}
		if action != core.ActionNone {
			l.frame.Set(action)
		}

	case *tcell.EventResize:
		l.screen.Sync()
		w, h := l.screen.Size()
		if r, ok := l.game.(registry.Resizer); ok {
			r.Resize(w, h)
		}
		l.layout()
	}
	return false
}

// tick advances the game one step and repaints what changed.
func (l *loop) tick() {
	if l.opts.Recorder != nil {
		l.opts.Recorder.Record(l.frame)
	}
	l.game.Step(l.frame)
	l.frame.Clear()

	l.drawHUD()
	if l.surface != nil {
		l.drawer.Draw(l.surface)
	} else {
		l.screen.Show()
	}
}

// layout clears the screen and draws the frame, the HUD and the whole field.
func (l *loop) layout() {
	l.screen.Clear()
	w, h := l.screen.Size()
	cols, rows := l.drawer.FieldSize()

	box := core.FrameRect(w, hudHeight, cols, rows)
	if !box.Fits(w, h) {
		l.surface = nil
		msg := fmt.Sprintf("Window too small: need %dx%d, have %dx%d", box.W, box.Bottom(), w, h)
		drawText(l.screen, max(0, (w-len(msg))/2), h/2, msg, tcell.StyleDefault)
		l.screen.Show()
		return
	}

	drawBox(l.screen, box, Style(l.drawer.BorderColor()))
	inner := box.Inset(1)
	l.surface = NewSurface(l.screen, inner.X, inner.Y, cols, rows)
	l.drawHUD()
	l.drawer.DrawAll(l.surface)
}

// drawHUD redraws the status line and the rule below it.
func (l *loop) drawHUD() {
	w, _ := l.screen.Size()
	clearLine(l.screen, 0)
	drawText(l.screen, 0, 0, l.drawer.HUD(), tcell.StyleDefault)
	for x := 0; x < w; x++ {
		l.screen.SetContent(x, 1, '─', nil, tcell.StyleDefault)
	}
}

// KeyName converts a tcell key event to a Bubble Tea style key name.
func KeyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyRune:
		return string(ev.Rune())
	}
	return ev.Name()
}
