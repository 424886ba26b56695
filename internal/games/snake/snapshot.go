package snake

import (
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot is a read-only copy of the session for renderers and tests.
type Snapshot struct {
	Tick       uint64
	State      State
	Difficulty config.Difficulty
	TickRate   int
	Score      int
	HighScore  int
	Apples     int // toward the next record milestone
	Threshold  int
	Body       []core.Cell // head first
	Dir        core.Direction
	Food       core.Cell
	Board      core.Board
}

// Head returns the first body cell.
func (s Snapshot) Head() core.Cell {
	if len(s.Body) == 0 {
		return core.Cell{}
	}
	return s.Body[0]
}

// Snapshot returns the current state. The body slice is a copy.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:       g.tick,
		State:      g.state,
		Difficulty: g.difficulty,
		TickRate:   g.TickRate(),
		Score:      g.score,
		HighScore:  g.tracker.HighScore(g.difficulty),
		Apples:     g.tracker.Apples(g.difficulty),
		Threshold:  g.tracker.Threshold(),
		Body:       g.body.Cells(),
		Dir:        g.dir,
		Food:       g.food,
		Board:      g.board,
	}
}
