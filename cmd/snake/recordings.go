package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagVerify bool

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "Browse recorded sessions",
	Long: `Shows recorded sessions from the database. Select one to replay it.

Record a session with 'snake play <variant> --record'.

Controls:
  Up/Down/j/k  - Navigate
  Enter        - Replay
  X/Delete     - Delete recording
  Esc/Q        - Quit`,
	RunE: runRecordings,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a recorded session",
	Long: `Plays back a recorded session with the seed, configuration and
per-tick input it was recorded with.

With --verify the session is replayed without rendering and the final
game state is printed.

Examples:
  snake replay 3
  snake replay 3 --verify`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Replay without rendering and print the final state")
}

func runRecordings(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open recordings database: %w", err)
	}
	defer store.Close()

	cfg := runtimeConfig()
	_, err = browseRecordings(store, cfg.ScreenW, cfg.ScreenH)
	return err
}

// browseRecordings shows the browser until the user goes back or quits,
// replaying each selected recording. quit reports whether the user quit.
func browseRecordings(store *storage.Store, width, height int) (quit bool, err error) {
	for {
		result, err := tui.RunRecordings(store, width, height)
		if err != nil {
			return false, fmt.Errorf("recordings error: %w", err)
		}
		if result.ReplayID == 0 {
			return !result.Back, nil
		}

		rec, err := store.Recording(result.ReplayID)
		if err != nil {
			return false, err
		}
		game, err := gameFor(rec)
		if err != nil {
			return false, err
		}
		err = tui.RunReplay(game, rec, width, height)
		snake.Configure(snakeCfg)
		if err != nil {
			return false, fmt.Errorf("replay error: %w", err)
		}
	}
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid recording id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open recordings database: %w", err)
	}
	defer store.Close()

	rec, err := store.Recording(id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("recording #%d not found, run 'snake recordings' to list them", id)
	}
	if err != nil {
		return err
	}

	game, err := gameFor(rec)
	if err != nil {
		return err
	}
	defer snake.Configure(snakeCfg)

	if flagVerify {
		replay.Run(game, rec)
		printSnapshot(game, rec)
		return nil
	}

	cfg := runtimeConfig()
	return tui.RunReplay(game, rec, cfg.ScreenW, cfg.ScreenH)
}

// gameFor configures the snake package from the recording and creates its game.
func gameFor(rec replay.Recording) (registry.Game, error) {
	if len(rec.Config) > 0 {
		cfg, err := config.Parse(rec.Config)
		if err != nil {
			return nil, fmt.Errorf("recording #%d: %w", rec.ID, err)
		}
		snake.Configure(cfg)
	}
	game, err := registry.Create(rec.GameID)
	if err != nil {
		return nil, fmt.Errorf("recording #%d: %w", rec.ID, err)
	}
	return game, nil
}

func printSnapshot(game registry.Game, rec replay.Recording) {
	fmt.Printf("Recording #%d (%s, seed %d, %d ticks, %s)\n",
		rec.ID, rec.GameID, rec.Seed, len(rec.Frames), rec.Duration().Round(time.Millisecond))

	g, ok := game.(*snake.Game)
	if !ok {
		st := game.State()
		fmt.Printf("  Final score: %d (best %d)\n", st.Score, st.Best)
		return
	}
	s := g.Snapshot()
	fmt.Printf("  Tick:          %d\n", s.Tick)
	fmt.Printf("  Length:        %d\n", s.Length)
	fmt.Printf("  Head:          (%d,%d) heading %s\n", s.Head.X, s.Head.Y, s.Dir)
	fmt.Printf("  Apple:         (%d,%d)\n", s.Apple.X, s.Apple.Y)
	if s.Variant == snake.VariantPoison {
		fmt.Printf("  Poison:        (%d,%d)\n", s.Poison.X, s.Poison.Y)
		fmt.Printf("  Poisons eaten: %d\n", s.PoisonsEaten)
	}
	fmt.Printf("  Apples eaten:  %d\n", s.ApplesEaten)
	fmt.Printf("  Resets:        %d\n", s.Resets)
	if s.Skipped > 0 {
		fmt.Printf("  Skipped:       %d\n", s.Skipped)
	}
}
