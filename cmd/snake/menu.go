package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
Pause a game and press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Browse recordings
  Q            - Quit

Examples:
  snake menu
  snake menu --fps 15
  snake menu --record --db ./recordings.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagRecord, "record", false, "Record every game for replay")
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open recordings database: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfgYAML, err := config.Marshal(snakeCfg)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	for {
		choice, err := tui.RunMenu(cfg, store != nil)
		if err != nil {
			return fmt.Errorf("menu error: %w", err)
		}
		if choice.Quit {
			return nil
		}
		cfg = choice.Config

		if choice.WantsRecordings {
			quit, err := browseRecordings(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			continue
		}

		game, err := registry.Create(choice.GameID)
		if err != nil {
			return fmt.Errorf("cannot create game: %w", err)
		}

		result, err := tui.Run(game, cfg, tui.RunOptions{
			Store:      store,
			Record:     flagRecord && store != nil,
			ConfigYAML: cfgYAML,
		})
		if err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
		if !result.BackToMenu {
			return nil
		}
	}
}
