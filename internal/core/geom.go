// Package core provides fundamental types and utilities for the snake game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math/rand"

// Cell is a grid-aligned position. Coordinates are multiples of the board's
// cell size, so a cell at column 3 on a board with 20-unit cells is X=60.
type Cell struct {
	X, Y int
}

// Add returns the cell translated by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Direction is a unit movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Vector returns the unit vector for the direction.
// Screen coordinates are used: Y grows downward, so Up is (0, -1).
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// DirectionToward picks the direction from one point toward another along the
// dominant axis. Ties on the X axis go vertical, matching pointer-driven input
// where a tap straight above or below the head turns the snake.
func DirectionToward(from, to Cell) Direction {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if Abs(dx) > Abs(dy) {
		if dx > 0 {
			return DirRight
		}
		return DirLeft
	}
	if dy > 0 {
		return DirDown
	}
	return DirUp
}

// Board describes the playfield: a Width x Height area divided into square
// cells of CellSize units.
type Board struct {
	Width    int
	Height   int
	CellSize int
}

// InBounds returns true if the cell lies inside [0, Width) x [0, Height).
func (b Board) InBounds(c Cell) bool {
	return b.Rect().Contains(c.X, c.Y)
}

// Rect returns the board area as a rectangle anchored at the origin.
func (b Board) Rect() Rect {
	return NewRect(0, 0, b.Width, b.Height)
}

// Cols returns how many whole cells fit horizontally.
func (b Board) Cols() int {
	if b.CellSize <= 0 {
		return 0
	}
	return b.Width / b.CellSize
}

// Rows returns how many whole cells fit vertically.
func (b Board) Rows() int {
	if b.CellSize <= 0 {
		return 0
	}
	return b.Height / b.CellSize
}

// ToGrid converts a cell position to its column and row index.
func (b Board) ToGrid(c Cell) (col, row int) {
	if b.CellSize <= 0 {
		return 0, 0
	}
	return floorDiv(c.X, b.CellSize), floorDiv(c.Y, b.CellSize)
}

// FromGrid converts a column and row index to a cell position.
func (b Board) FromGrid(col, row int) Cell {
	return Cell{X: col * b.CellSize, Y: row * b.CellSize}
}

// Aligned reports whether the cell sits on the cell-size lattice.
func (b Board) Aligned(c Cell) bool {
	if b.CellSize <= 0 {
		return false
	}
	return c.X%b.CellSize == 0 && c.Y%b.CellSize == 0
}

// RandomCell returns a uniformly random cell whose coordinates are multiples
// of the cell size and lie within the board. The board must be at least one
// cell wide and tall.
func RandomCell(rng *rand.Rand, b Board) Cell {
	maxCol := (b.Width - b.CellSize) / b.CellSize
	maxRow := (b.Height - b.CellSize) / b.CellSize
	return Cell{
		X: rng.Intn(maxCol+1) * b.CellSize,
		Y: rng.Intn(maxRow+1) * b.CellSize,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Rect represents an axis-aligned bounding box.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
