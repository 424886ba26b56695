package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	hudHeight  = 2
	cellWidth  = 2 // terminal cells are about twice as tall as wide
	headRune   = '█'
	bodyRune   = '▓'
	foodRune   = '●'
	emptyRune  = ' '
	minOverlay = 20
)

// Layout maps board cells onto a terminal screen.
type Layout struct {
	Field core.Rect // playfield interior, excluding the border
	Board core.Board
	Fits  bool
}

// NewLayout centers the board on a screen of the given size.
func NewLayout(board core.Board, screenW, screenH int) Layout {
	w := board.Cols() * cellWidth
	h := board.Rows()
	l := Layout{Board: board}
	l.Fits = w+2 <= screenW && h+2+hudHeight <= screenH
	l.Field = core.NewRect((screenW-w)/2, hudHeight+1, w, h)
	return l
}

// ScreenPos returns the top-left screen position of a board cell.
func (l Layout) ScreenPos(c core.Cell) (x, y int) {
	col, row := l.Board.ToGrid(c)
	return l.Field.X + col*cellWidth, l.Field.Y + row
}

// CellAt converts a screen position back to a board cell, for pointer input.
func (l Layout) CellAt(x, y int) (core.Cell, bool) {
	if !l.Fits || !l.Field.Contains(x, y) {
		return core.Cell{}, false
	}
	col := (x - l.Field.X) / cellWidth
	row := y - l.Field.Y
	return l.Board.FromGrid(col, row), true
}

// Render draws the snapshot onto dst: HUD, border, food and snake.
// Overlays for idle and game over are drawn on top.
func Render(s Snapshot, dst *core.Screen) Layout {
	dst.Clear()
	l := NewLayout(s.Board, dst.Width(), dst.Height())

	renderHUD(s, dst)
	if !l.Fits {
		DrawOverlay(dst, "Window too small", "Resize to continue")
		return l
	}

	dst.DrawBox(core.NewRect(l.Field.X-1, l.Field.Y-1, l.Field.W+2, l.Field.H+2), core.ColorGray)

	if s.State != StateIdle && s.Board.InBounds(s.Food) {
		x, y := l.ScreenPos(s.Food)
		dst.SetColored(x, y, foodRune, core.ColorRed)
	}

	// Tail first so the head is drawn on top when segments overlap.
	for i := len(s.Body) - 1; i >= 0; i-- {
		seg := s.Body[i]
		if !s.Board.InBounds(seg) {
			continue
		}
		r, c := bodyRune, core.ColorGreen
		if i == 0 {
			r, c = headRune, core.ColorBrightGreen
		}
		x, y := l.ScreenPos(seg)
		for dx := range cellWidth {
			dst.SetColored(x+dx, y, r, c)
		}
	}

	switch s.State {
	case StateIdle:
		DrawOverlay(dst, "SNAKE", "Press Enter to start")
	case StateGameOver:
		DrawOverlay(dst, fmt.Sprintf("Game Over  Score: %d", s.Score), "R restart  Q quit")
	}
	return l
}

func renderHUD(s Snapshot, dst *core.Screen) {
	hud := fmt.Sprintf(" Snake  Score: %d  Best: %d  Level: %s (%d/s)",
		s.Score, s.HighScore, s.Difficulty, s.TickRate)
	dst.DrawTextColored(0, 0, hud, core.ColorYellow)

	apples := fmt.Sprintf(" Apples: %d/%d", s.Apples, s.Threshold)
	dst.DrawTextColored(0, 1, apples, core.ColorGray)
}

// DrawOverlay draws a centered two-line message box.
func DrawOverlay(dst *core.Screen, line1, line2 string) {
	inner := max(len([]rune(line1)), len([]rune(line2)), minOverlay)
	boxW := inner + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, emptyRune)
	dst.DrawBox(box, core.ColorCyan)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
