package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Spawner places food on random board cells. It does not avoid the snake:
// food can appear under the body and is eaten when the head reaches it.
type Spawner struct {
	rng   *rand.Rand
	board core.Board
}

// NewSpawner returns a spawner drawing from rng.
func NewSpawner(rng *rand.Rand, board core.Board) *Spawner {
	return &Spawner{rng: rng, board: board}
}

// Spawn returns a new food cell inside the board.
func (s *Spawner) Spawn() core.Cell {
	return core.RandomCell(s.rng, s.board)
}
