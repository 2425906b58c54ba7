// Package config provides YAML-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/layout"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config contains all tunables for a game session.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Timing TimingConfig `yaml:"timing"`
	Input  InputConfig  `yaml:"input"`
	Layout LayoutConfig `yaml:"layout"`
}

// GridConfig defines the board.
type GridConfig struct {
	Size          int `yaml:"size"`
	InitialLength int `yaml:"initial_length"`
}

// TimingConfig defines the scheduler.
type TimingConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// InputConfig defines gesture handling.
type InputConfig struct {
	SwipeThreshold  int `yaml:"swipe_threshold"`   // units along the dominant axis
	CellWidthUnits  int `yaml:"cell_width_units"`  // units per terminal column
	CellHeightUnits int `yaml:"cell_height_units"` // units per terminal row
}

// LayoutConfig defines board sizing.
type LayoutConfig struct {
	MinTile int  `yaml:"min_tile"`
	ShowPad bool `yaml:"show_pad"`
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("%w: grid: %w", ErrInvalid, err)
	}
	if c.Timing.TickInterval < 10*time.Millisecond {
		return fmt.Errorf("%w: timing.tick_interval %s below 10ms", ErrInvalid, c.Timing.TickInterval)
	}
	if c.Input.SwipeThreshold < 0 {
		return fmt.Errorf("%w: input.swipe_threshold must not be negative", ErrInvalid)
	}
	if c.Input.CellWidthUnits <= 0 || c.Input.CellHeightUnits <= 0 {
		return fmt.Errorf("%w: input cell units must be positive", ErrInvalid)
	}
	if c.Layout.MinTile < 1 {
		return fmt.Errorf("%w: layout.min_tile must be at least 1", ErrInvalid)
	}
	return nil
}

// Engine converts the grid section to engine parameters.
func (c Config) Engine() snake.Config {
	return snake.Config{
		GridSize:      c.Grid.Size,
		InitialLength: c.Grid.InitialLength,
	}
}

// LayoutOptions converts the layout section to sizing options.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		MinTile: c.Layout.MinTile,
		ShowPad: c.Layout.ShowPad,
	}
}
