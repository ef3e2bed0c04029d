package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Field: FieldConfig{
			Width:    640,
			Height:   480,
			CellSize: 20,
		},
		Timing: TimingConfig{
			TickRate: 10,
		},
		Poison: PoisonConfig{
			ChangeIntervalSecs: 5,
			ProjectionCells:    5,
		},
		Colors: ColorConfig{
			Snake:  "blue",
			Apple:  "green",
			Poison: "red",
			Border: "cyan",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
