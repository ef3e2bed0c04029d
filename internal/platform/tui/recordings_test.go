package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveSample(t *testing.T, store *storage.Store, gameID string) int64 {
	t.Helper()
	id, err := store.SaveRecording(replay.Recording{
		GameID:   gameID,
		Seed:     1,
		TickRate: 10,
		Frames: []replay.Frame{
			{Tick: 1, Elapsed: 100 * time.Millisecond},
			{Tick: 2, Elapsed: 200 * time.Millisecond, Actions: []core.Action{core.ActionUp}},
		},
	})
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	return id
}

func TestRecordingsBrowserEmpty(t *testing.T) {
	m := NewRecordingsModel(openTestStore(t), 100, 30)

	if !strings.Contains(m.View(), "No recordings yet") {
		t.Errorf("View() = %q, expected the empty message", m.View())
	}
}

func TestRecordingsBrowserReplay(t *testing.T) {
	store := openTestStore(t)
	saveSample(t, store, "snake")
	newest := saveSample(t, store, "snake_poison")

	m := NewRecordingsModel(store, 100, 30)
	if len(m.recordings) != 2 {
		t.Fatalf("loaded %d recordings, expected 2", len(m.recordings))
	}
	if !strings.Contains(m.View(), "Snake (Poison)") {
		t.Errorf("View() does not show the variant title:\n%s", m.View())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := next.(RecordingsModel).ReplayID(); got != newest {
		t.Errorf("ReplayID() = %d, expected %d", got, newest)
	}
}

func TestRecordingsBrowserDelete(t *testing.T) {
	store := openTestStore(t)
	saveSample(t, store, "snake")

	m := NewRecordingsModel(store, 100, 30)
	next, _ := m.Update(runeKey("x"))
	m = next.(RecordingsModel)

	if len(m.recordings) != 0 {
		t.Errorf("%d recordings left after delete", len(m.recordings))
	}
	list, err := store.ListRecordings(10)
	if err != nil {
		t.Fatalf("ListRecordings() failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("store still has %d recordings", len(list))
	}
}

func TestRecordingsBrowserBack(t *testing.T) {
	m := NewRecordingsModel(openTestStore(t), 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if !next.(RecordingsModel).IsGoingBack() {
		t.Error("IsGoingBack() = false after esc")
	}
}

func TestReplayModelPlaysToEnd(t *testing.T) {
	g := snake.New()
	rec := replay.Recording{
		ID:       3,
		GameID:   "snake",
		Seed:     11,
		TickRate: 10,
		Frames: []replay.Frame{
			{Tick: 1, Elapsed: 100 * time.Millisecond},
			{Tick: 2, Elapsed: 200 * time.Millisecond, Actions: []core.Action{core.ActionUp}},
			{Tick: 3, Elapsed: 300 * time.Millisecond},
		},
	}

	rm := NewReplayModel(g, rec, 80, 31)
	var model tea.Model = rm
	model.Init()
	for i := 0; i < 5; i++ {
		model, _ = model.Update(tickOf(rm.loop))
	}

	if snap := g.Snapshot(); snap.Tick != 3 || snap.Dir != snake.DirUp {
		t.Errorf("Snapshot() = %+v, expected 3 ticks heading up", snap)
	}
	if view := model.View(); !strings.Contains(view, "[finished]") || !strings.Contains(view, "Replay #3") {
		t.Errorf("View() status line missing, got:\n%s", view)
	}
}

func TestReplayModelPauseAndSpeed(t *testing.T) {
	g := snake.New()
	rec := replay.Recording{GameID: "snake", Seed: 1, TickRate: 10, Frames: []replay.Frame{{Tick: 1}}}

	rm := NewReplayModel(g, rec, 80, 31)
	var model tea.Model = rm
	model.Init()
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeySpace})
	model, _ = model.Update(tickOf(rm.loop))

	if g.Snapshot().Tick != 0 {
		t.Error("replay advanced while paused")
	}

	model, _ = model.Update(runeKey("+"))
	model, _ = model.Update(runeKey("+"))
	if rm := model.(ReplayModel); rm.speed != 4 {
		t.Errorf("speed = %d, expected 4", rm.speed)
	}
	model, _ = model.Update(runeKey("-"))
	if rm := model.(ReplayModel); rm.speed != 2 {
		t.Errorf("speed = %d, expected 2", rm.speed)
	}
}
