package snake

import (
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// EventKind names an event for logging and wire formats.
type EventKind string

const (
	KindScoreChanged      EventKind = "score_changed"
	KindFoodEaten         EventKind = "food_eaten"
	KindRecordBroken      EventKind = "record_broken"
	KindGameOver          EventKind = "game_over"
	KindGameReset         EventKind = "game_reset"
	KindDifficultyChanged EventKind = "difficulty_changed"
	KindHighScoreSet      EventKind = "high_score_set"
	KindPersistenceFailed EventKind = "persistence_failed"
)

// Event is something the game tells its observers about.
// Payloads are values; observers never get access to game state.
type Event interface {
	Kind() EventKind
}

// Observer receives events in the order they were emitted.
type Observer func(Event)

// ScoreChanged carries the new score.
type ScoreChanged struct {
	Score int
}

// FoodEaten is emitted when the head reaches food.
type FoodEaten struct {
	Cell core.Cell
}

// RecordBroken is the apple milestone for a level.
type RecordBroken struct {
	Difficulty config.Difficulty
	Message    string
}

// GameOver carries the final score and what ended the game.
type GameOver struct {
	Score int
	Cause Collision
}

// GameReset is emitted when a new game begins.
type GameReset struct{}

// DifficultyChanged tells the scheduler to re-arm its timer.
type DifficultyChanged struct {
	Level    config.Difficulty
	TickRate int
}

// HighScoreSet is emitted when a finished game stored a new best.
type HighScoreSet struct {
	Difficulty config.Difficulty
	Score      int
}

// PersistenceFailed reports a store error. The game keeps running.
type PersistenceFailed struct {
	Err error
}

func (ScoreChanged) Kind() EventKind { return KindScoreChanged }
func (FoodEaten) Kind() EventKind { return KindFoodEaten }
func (RecordBroken) Kind() EventKind { return KindRecordBroken }
func (GameOver) Kind() EventKind { return KindGameOver }
func (GameReset) Kind() EventKind { return KindGameReset }
func (DifficultyChanged) Kind() EventKind { return KindDifficultyChanged }
func (HighScoreSet) Kind() EventKind { return KindHighScoreSet }
func (PersistenceFailed) Kind() EventKind { return KindPersistenceFailed }

// StepResult is returned by Tick.
type StepResult struct {
	State  State
	Events []Event
}
