package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Collision is the single outcome acted on after a move.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionSelf
	CollisionWall
	CollisionFood
)

func (c Collision) String() string {
	switch c {
	case CollisionSelf:
		return "self"
	case CollisionWall:
		return "wall"
	case CollisionFood:
		return "food"
	default:
		return "none"
	}
}

// Fatal reports whether the collision ends the game.
func (c Collision) Fatal() bool {
	return c == CollisionSelf || c == CollisionWall
}

// Detect checks the moved body in order: self, wall, then food.
// The first match wins.
func Detect(body *Body, board core.Board, food core.Cell) Collision {
	switch {
	case body.HasDuplicate():
		return CollisionSelf
	case !board.InBounds(body.Head()):
		return CollisionWall
	case body.Head() == food:
		return CollisionFood
	default:
		return CollisionNone
	}
}
