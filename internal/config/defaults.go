package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-snake/internal/input"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

//go:embed defaults/snake.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Size:          snake.DefaultGridSize,
			InitialLength: snake.DefaultInitialLength,
		},
		Timing: TimingConfig{
			TickInterval: 120 * time.Millisecond,
		},
		Input: InputConfig{
			SwipeThreshold:  input.DefaultSwipeThreshold,
			CellWidthUnits:  8,
			CellHeightUnits: 16,
		},
		Layout: LayoutConfig{
			MinTile: 1,
			ShowPad: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
