package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/records"
)

// MenuChoice is what the player picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// MenuItem represents a selectable menu entry.
type MenuItem struct {
	Title  string
	Choice MenuChoice
}

var menuItems = []MenuItem{
	{Title: "Play", Choice: ChoicePlay},
	{Title: "High Scores", Choice: ChoiceScores},
	{Title: "Quit", Choice: ChoiceQuit},
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	difficulty config.Difficulty
	tracker    *records.Tracker
	width      int
	height     int
	quitting   bool
	choice     MenuChoice
}

// NewMenuModel creates a new menu model. tracker may be nil, in which case
// no best scores are shown.
func NewMenuModel(tracker *records.Tracker, d config.Difficulty, width, height int) MenuModel {
	if !d.Valid() {
		d = config.DifficultyNormal
	}
	return MenuModel{
		items:      menuItems,
		difficulty: d,
		tracker:    tracker,
		width:      width,
		height:     height,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "2", "3":
		m.difficulty = config.Difficulty(msg.String()[0] - '0')
		return m, nil
	}

	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.difficulty > config.DifficultyEasy {
			m.difficulty--
		}

	case MenuActionRight:
		if m.difficulty < config.DifficultyHard {
			m.difficulty++
		}

	case MenuActionSelect:
		m.choice = m.items[m.cursor].Choice
		if m.choice == ChoiceQuit {
			m.quitting = true
		}
		return m, tea.Quit // Exit menu to start the next screen

	case MenuActionScoreboard:
		m.choice = ChoiceScores
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  S N A K E  "), m.width))
	b.WriteString("\n\n")

	levels := make([]string, 0, 3)
	for _, d := range config.Difficulties() {
		name := d.String()
		if d == m.difficulty {
			name = "[" + name + "]"
		} else {
			name = " " + name + " "
		}
		levels = append(levels, name)
	}
	b.WriteString(centerText("Level: "+strings.Join(levels, " "), m.width))
	b.WriteString("\n")

	if m.tracker != nil {
		best := fmt.Sprintf("Best: %d", m.tracker.HighScore(m.difficulty))
		b.WriteString(centerText(best, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right, 1-3: Level  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the player picked, ChoiceNone while still browsing.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Difficulty returns the selected difficulty level.
func (m MenuModel) Difficulty() config.Difficulty {
	return m.difficulty
}
