package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is a level from 1 to 3. It selects the tick rate and keys the
// high-score and apple-counter tables.
type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyNormal Difficulty = 2
	DifficultyHard   Difficulty = 3
)

// DefaultTickRates are the ticks per second for levels 1, 2 and 3.
var DefaultTickRates = [...]int{10, 15, 20}

// Difficulties returns every level in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// Valid reports whether d is a known level.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return "level " + strconv.Itoa(int(d))
	}
}

// ParseDifficulty accepts a preset name (easy, normal, hard) or a level
// number (1, 2, 3).
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "1":
		return DifficultyEasy, nil
	case "normal", "2", "":
		return DifficultyNormal, nil
	case "hard", "3":
		return DifficultyHard, nil
	}
	return 0, fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or 1-3)", ErrInvalidConfig, s)
}

// ApplyDifficultyPreset sets the level from a CLI preset. An empty preset
// keeps the configured level.
func ApplyDifficultyPreset(cfg *SnakeConfig, preset string) error {
	if strings.TrimSpace(preset) == "" {
		return nil
	}
	d, err := ParseDifficulty(preset)
	if err != nil {
		return err
	}
	cfg.Difficulty.Level = d
	return nil
}
