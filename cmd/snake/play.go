package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/term"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagBackend string
	flagRecord  bool
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant",
	Long: `Start playing the specified variant.

Controls:
  W/A/S/D, Arrows  - Steer
  P/Esc/Space      - Pause
  B                - Back (while paused)
  Ctrl+S           - Save screenshot (tui backend)
  Q/Ctrl+C         - Quit

Backends:
  tui    - Bubble Tea, full frame render (default)
  tcell  - Retained cell surface, only changed cells are redrawn

Examples:
  snake play snake
  snake play snake_poison --fps 15
  snake play snake_poison --backend tcell
  snake play snake --record --seed 42
  snake play snake --config ./my-snake.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", "tui", "Render backend: tui or tcell")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the session for replay")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'snake list' to see available variants", gameID)
	}
	if flagBackend != "tui" && flagBackend != "tcell" {
		return fmt.Errorf("unknown backend %q, expected tui or tcell", flagBackend)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	cfg := runtimeConfig()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var (
		store   *storage.Store
		cfgYAML []byte
	)
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("cannot open recordings database: %w", err)
		}
		defer store.Close()

		cfgYAML, err = config.Marshal(snakeCfg)
		if err != nil {
			return err
		}
	}

	if flagBackend == "tcell" {
		return playTcell(game, cfg, store, cfgYAML)
	}

	result, err := tui.Run(game, cfg, tui.RunOptions{
		Store:      store,
		Record:     flagRecord,
		ConfigYAML: cfgYAML,
	})
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	if result.RecordingID != 0 {
		fmt.Printf("Saved recording #%d (replay with 'snake replay %d')\n", result.RecordingID, result.RecordingID)
	}
	return nil
}

// playTcell runs the game on the tcell backend and saves the recording, if any.
func playTcell(game registry.Game, cfg core.RuntimeConfig, store *storage.Store, cfgYAML []byte) error {
	var opts term.Options
	if store != nil {
		opts.Recorder = replay.NewRecorder(game.ID(), cfg.Seed, cfg.TickRate, cfgYAML, cfg.ClockOrSystem())
		cfg.Clock = opts.Recorder
	}

	screen, err := term.NewScreen()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := term.Run(ctx, game, screen, cfg, opts)
	screen.Fini()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("error running game: %w", runErr)
	}

	if opts.Recorder == nil || opts.Recorder.Len() == 0 {
		return nil
	}
	rec := opts.Recorder.Recording()
	id, err := store.SaveRecording(rec)
	if err != nil {
		return err
	}
	log.Info("recording saved", "id", id, "game", rec.GameID, "ticks", len(rec.Frames))
	fmt.Printf("Saved recording #%d (replay with 'snake replay %d')\n", id, id)
	return nil
}
