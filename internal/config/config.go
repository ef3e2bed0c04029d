// Package config provides YAML-based game configuration loading for the
// snake platform.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Field  FieldConfig  `yaml:"field"`
	Timing TimingConfig `yaml:"timing"`
	Poison PoisonConfig `yaml:"poison"`
	Colors ColorConfig  `yaml:"colors"`
}

// FieldConfig defines the playing field in pixels.
type FieldConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// TimingConfig defines the simulation rate.
type TimingConfig struct {
	TickRate int `yaml:"tick_rate"` // Ticks per second
}

// PoisonConfig defines the timed poison jump.
type PoisonConfig struct {
	ChangeIntervalSecs float64 `yaml:"change_interval_secs"`
	ProjectionCells    int     `yaml:"projection_cells"` // Cells ahead of the snake's heading
}

// ColorConfig names the colors of game elements (see core.ParseColor).
type ColorConfig struct {
	Snake  string `yaml:"snake"`
	Apple  string `yaml:"apple"`
	Poison string `yaml:"poison"`
	Border string `yaml:"border"`
}

// Palette is a ColorConfig resolved to core colors.
type Palette struct {
	Snake  core.Color
	Apple  core.Color
	Poison core.Color
	Border core.Color
}

// ChangeInterval returns the poison relocation interval as a duration.
func (c SnakeConfig) ChangeInterval() time.Duration {
	return time.Duration(c.Poison.ChangeIntervalSecs * float64(time.Second))
}

// Validate checks that the configuration describes a playable field.
func (c SnakeConfig) Validate() error {
	f := c.Field
	var errs []error
	if f.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("field.cell_size must be positive, got %d", f.CellSize))
	}
	if f.Width <= 0 || f.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %dx%d", f.Width, f.Height))
	}
	if f.CellSize > 0 && (f.Width%f.CellSize != 0 || f.Height%f.CellSize != 0) {
		errs = append(errs, fmt.Errorf("field size %dx%d is not a multiple of cell_size %d", f.Width, f.Height, f.CellSize))
	}
	if c.Timing.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_rate must be positive, got %d", c.Timing.TickRate))
	}
	if c.Poison.ChangeIntervalSecs <= 0 {
		errs = append(errs, fmt.Errorf("poison.change_interval_secs must be positive, got %v", c.Poison.ChangeIntervalSecs))
	}
	if c.Poison.ProjectionCells < 0 {
		errs = append(errs, fmt.Errorf("poison.projection_cells must not be negative, got %d", c.Poison.ProjectionCells))
	}
	if _, err := c.Colors.Resolve(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid snake config: %w", errors.Join(errs...))
	}
	return nil
}

// Resolve converts color names to core colors.
func (c ColorConfig) Resolve() (Palette, error) {
	var p Palette
	var err error
	if p.Snake, err = core.ParseColor(c.Snake); err != nil {
		return p, fmt.Errorf("colors.snake: %w", err)
	}
	if p.Apple, err = core.ParseColor(c.Apple); err != nil {
		return p, fmt.Errorf("colors.apple: %w", err)
	}
	if p.Poison, err = core.ParseColor(c.Poison); err != nil {
		return p, fmt.Errorf("colors.poison: %w", err)
	}
	if p.Border, err = core.ParseColor(c.Border); err != nil {
		return p, fmt.Errorf("colors.border: %w", err)
	}
	return p, nil
}
