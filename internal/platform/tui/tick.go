// Package tui provides the Bubble Tea front end for the snake game.
// It drives the simulation clock, maps keys to game intents and renders
// snapshots; it never owns game state.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// timer that produced it so ticks from a replaced timer can be dropped.
type TickMsg struct {
	Gen int
	At  time.Time
}

// bannerExpiredMsg clears the record banner if it is still the same one.
type bannerExpiredMsg struct {
	id int
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}

func bannerCmd(d time.Duration, id int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return bannerExpiredMsg{id: id}
	})
}
