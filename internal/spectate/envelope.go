package spectate

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Envelope is the JSON frame sent to spectators.
type Envelope struct {
	Type    string    `json:"type"`
	Session string    `json:"session"`
	Level   int       `json:"level,omitempty"`
	Score   int       `json:"score"`
	Message string    `json:"message,omitempty"`
	Time    time.Time `json:"time"`
}

// Envelope types not tied to a game event.
const (
	TypeWelcome      = "welcome"
	TypeSessionStart = "session_start"
	TypeSessionEnd   = "session_end"
)

// Welcome is the first frame a spectator receives; Session carries its own ID.
func Welcome(id string) Envelope {
	return Envelope{Type: TypeWelcome, Session: id, Time: time.Now()}
}

// FromEvent converts a game event into an envelope for session at level.
// score is the session's running score, used by events that carry none.
func FromEvent(session string, level config.Difficulty, score int, e snake.Event) Envelope {
	env := Envelope{
		Type:    string(e.Kind()),
		Session: session,
		Level:   int(level),
		Score:   score,
		Time:    time.Now(),
	}

	switch ev := e.(type) {
	case snake.ScoreChanged:
		env.Score = ev.Score
	case snake.GameOver:
		env.Score = ev.Score
		env.Message = ev.Cause.String()
	case snake.RecordBroken:
		env.Level = int(ev.Difficulty)
		env.Message = ev.Message
	case snake.HighScoreSet:
		env.Level = int(ev.Difficulty)
		env.Score = ev.Score
	case snake.DifficultyChanged:
		env.Level = int(ev.Level)
	case snake.PersistenceFailed:
		if ev.Err != nil {
			env.Message = ev.Err.Error()
		}
	}
	return env
}
