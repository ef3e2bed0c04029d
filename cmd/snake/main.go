// snake is a terminal Snake game with a classic and a poison variant.
//
// Usage:
//
//	snake list                 - List available variants
//	snake play <variant>       - Play a variant
//	snake menu                 - Pick a variant interactively
//	snake serve                - Start SSH server for remote play
//	snake recordings           - Browse and replay recorded sessions
//	snake replay <id>          - Replay one recorded session
//
// Global flags:
//
//	--fps <rate>       - Override tick rate (default: config timing.tick_rate)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set recordings database path (default: ~/.snake/recordings.db)
//	--config <path>    - Use a custom snake.yaml
//	--log-file <path>  - Write debug logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string

	// Loaded in PersistentPreRunE
	snakeCfg config.SnakeConfig
	logFile  *os.File
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - classic and poison variants in your terminal",
	Long: `Snake is a terminal game on a wrapping field.

Variants:
  snake         - Classic: eat apples to grow
  snake_poison  - Poison: the poison shrinks you and jumps ahead of you every few seconds

Available commands:
  list        - Show all variants
  play        - Play a variant directly
  menu        - Interactive variant picker
  serve       - Start SSH server for remote play
  recordings  - Browse recorded sessions
  replay      - Replay a recorded session

Examples:
  snake list
  snake play snake_poison
  snake play snake --backend tcell --record
  snake menu
  snake serve --ssh :2222
  snake replay 3 --verify`,
	SilenceErrors:      true,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/recordings.db", "Path to recordings database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordingsCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup configures logging and loads the game configuration.
func setup(cmd *cobra.Command, _ []string) error {
	if err := setupLogging(cmd.Name()); err != nil {
		return err
	}

	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	snakeCfg = cfg
	snake.Configure(cfg)
	log.Debug("config loaded",
		"field", fmt.Sprintf("%dx%d", cfg.Field.Width, cfg.Field.Height),
		"cell", cfg.Field.CellSize,
		"tick_rate", tickRate())
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}

// setupLogging points the default logger at the log file, stderr for the
// SSH server, or nowhere while a TUI owns the terminal.
func setupLogging(command string) error {
	if flagLogFile != "" {
		f, err := os.OpenFile(expandHome(flagLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		log.SetOutput(f)
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		return nil
	}

	if command == "serve" {
		log.SetOutput(os.Stderr)
		log.SetReportTimestamp(true)
		log.SetPrefix("snake")
		return nil
	}

	log.SetOutput(io.Discard)
	return nil
}

// tickRate returns the --fps override or the configured rate.
func tickRate() int {
	if flagFPS > 0 {
		return flagFPS
	}
	return snakeCfg.Timing.TickRate
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = tickRate()
	cfg.Seed = flagSeed
	return cfg
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
