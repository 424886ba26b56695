// Package config provides YAML-based game configuration loading and
// difficulty management for the snake game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Snake      SnakeSettings    `yaml:"snake"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Records    RecordsConfig    `yaml:"records"`
}

// BoardConfig defines the playfield size in board units.
type BoardConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// SnakeSettings defines where the snake spawns and how it turns.
type SnakeSettings struct {
	StartX          int  `yaml:"start_x"`
	StartY          int  `yaml:"start_y"`
	PreventReversal bool `yaml:"prevent_reversal"`
}

// DifficultyConfig selects the level and its tick rates.
type DifficultyConfig struct {
	Level     Difficulty `yaml:"level"`
	TickRates []int      `yaml:"tick_rates"`
}

// RecordsConfig defines high-score persistence and milestones.
type RecordsConfig struct {
	AppleThreshold int    `yaml:"apple_threshold"`
	Path           string `yaml:"path"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Geometry returns the playfield geometry.
func (c SnakeConfig) Geometry() core.Board {
	return core.Board{
		Width:    c.Board.Width,
		Height:   c.Board.Height,
		CellSize: c.Board.CellSize,
	}
}

// Origin returns the cell the snake spawns on.
func (c SnakeConfig) Origin() core.Cell {
	return core.Cell{X: c.Snake.StartX, Y: c.Snake.StartY}
}

// TickRate returns ticks per second for the given level.
// Levels outside the table fall back to the middle entry.
func (c SnakeConfig) TickRate(d Difficulty) int {
	if d.Valid() && int(d) <= len(c.Difficulty.TickRates) {
		return c.Difficulty.TickRates[d-1]
	}
	return DefaultTickRates[DifficultyNormal-1]
}

// Validate checks the configuration for programmer errors.
// It is called once at the boundary so the simulation never sees bad input.
func (c SnakeConfig) Validate() error {
	b := c.Board
	switch {
	case b.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive, got %d", ErrInvalidConfig, b.CellSize)
	case b.Width < b.CellSize || b.Height < b.CellSize:
		return fmt.Errorf("%w: board %dx%d is smaller than one %d-unit cell",
			ErrInvalidConfig, b.Width, b.Height, b.CellSize)
	}

	if !c.Geometry().InBounds(c.Origin()) {
		return fmt.Errorf("%w: start (%d, %d) is outside the %dx%d board",
			ErrInvalidConfig, c.Snake.StartX, c.Snake.StartY, b.Width, b.Height)
	}
	if !c.Geometry().Aligned(c.Origin()) {
		return fmt.Errorf("%w: start (%d, %d) is not a multiple of cell_size %d",
			ErrInvalidConfig, c.Snake.StartX, c.Snake.StartY, b.CellSize)
	}

	if !c.Difficulty.Level.Valid() {
		return fmt.Errorf("%w: difficulty level must be %d-%d, got %d",
			ErrInvalidConfig, DifficultyEasy, DifficultyHard, c.Difficulty.Level)
	}
	if len(c.Difficulty.TickRates) != len(Difficulties()) {
		return fmt.Errorf("%w: tick_rates needs %d entries, got %d",
			ErrInvalidConfig, len(Difficulties()), len(c.Difficulty.TickRates))
	}
	for i, rate := range c.Difficulty.TickRates {
		if rate <= 0 {
			return fmt.Errorf("%w: tick rate for level %d must be positive, got %d", ErrInvalidConfig, i+1, rate)
		}
	}

	if c.Records.AppleThreshold <= 0 {
		return fmt.Errorf("%w: apple_threshold must be positive, got %d", ErrInvalidConfig, c.Records.AppleThreshold)
	}
	return nil
}
