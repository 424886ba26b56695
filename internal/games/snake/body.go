package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Body is the ordered list of cells the snake occupies, head first.
// It is never empty.
type Body struct {
	cells []core.Cell
}

// NewBody creates a body from the head and any trailing segments.
func NewBody(head core.Cell, rest ...core.Cell) Body {
	cells := make([]core.Cell, 0, 1+len(rest))
	cells = append(cells, head)
	cells = append(cells, rest...)
	return Body{cells: cells}
}

// Head returns the first segment.
func (b *Body) Head() core.Cell {
	return b.cells[0]
}

// Tail returns the last segment.
func (b *Body) Tail() core.Cell {
	return b.cells[len(b.cells)-1]
}

// Len returns the number of segments, duplicates included.
func (b *Body) Len() int {
	return len(b.cells)
}

// Cells returns a copy of the segments, head first.
func (b *Body) Cells() []core.Cell {
	out := make([]core.Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Contains reports whether any segment is on c.
func (b *Body) Contains(c core.Cell) bool {
	for _, seg := range b.cells {
		if seg == c {
			return true
		}
	}
	return false
}

// Advance moves the head one cell in dir and drops the tail,
// so the length stays the same.
func (b *Body) Advance(dir core.Direction, cellSize int) {
	dx, dy := dir.Vector()
	head := b.cells[0].Add(dx*cellSize, dy*cellSize)

	copy(b.cells[1:], b.cells[:len(b.cells)-1])
	b.cells[0] = head
}

// Grow appends a copy of the tail. The copy sits on the same cell until the
// next Advance pulls the body forward, so the visible length grows one tick
// after the food was eaten.
func (b *Body) Grow() {
	b.cells = append(b.cells, b.Tail())
}

// HasDuplicate reports whether two segments share a cell.
// It is checked right after Advance, which has already absorbed any
// grown tail copy.
func (b *Body) HasDuplicate() bool {
	seen := make(map[core.Cell]struct{}, len(b.cells))
	for _, c := range b.cells {
		if _, ok := seen[c]; ok {
			return true
		}
		seen[c] = struct{}{}
	}
	return false
}
