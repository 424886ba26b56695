package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultAppleThreshold is how many apples at one level trigger a record
// milestone.
const DefaultAppleThreshold = 18

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Width:    400,
			Height:   400,
			CellSize: 20,
		},
		Snake: SnakeSettings{
			StartX: 100,
			StartY: 100,
		},
		Difficulty: DifficultyConfig{
			Level:     DifficultyNormal,
			TickRates: append([]int(nil), DefaultTickRates[:]...),
		},
		Records: RecordsConfig{
			AppleThreshold: DefaultAppleThreshold,
			Path:           "~/.snake/high_scores.json",
		},
	}
}
