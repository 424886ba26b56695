package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game or scores -> menu.
// It is the top-level model for both local play and SSH sessions. One game
// lives for the whole session so the level sticks across restarts.
type SessionModel struct {
	game       *snake.Game
	history    HistorySource
	screen     sessionScreen
	menu       MenuModel
	gameModel  Model
	scoreboard ScoreboardModel
	width      int
	height     int
	quitting   bool
}

// NewSessionModel creates a session around g. history may be nil.
func NewSessionModel(g *snake.Game, history HistorySource, width, height int) SessionModel {
	return SessionModel{
		game:      g,
		history:   history,
		menu:      NewMenuModel(g.Tracker(), g.Difficulty(), width, height),
		gameModel: NewModel(g, width, height),
		width:     width,
		height:    height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Every screen keeps its size so switching does not need a resize.
		m.menu = m.updateMenuModel(msg)
		m.gameModel = m.updateGameModel(msg)
		if m.screen == screenScores {
			m.scoreboard = m.updateScoreboardModel(msg)
		}
		return m, nil

	case TickMsg, bannerExpiredMsg:
		// Game timers keep arriving while another screen is shown.
		if m.screen != screenGame {
			return m, nil
		}
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		m.screen = screenGame
		var start tea.Cmd
		m.gameModel, start = m.gameModel.Enter(m.menu.Difficulty())
		return m, start

	case ChoiceScores:
		m.screen = screenScores
		m.scoreboard = NewScoreboardModel(m.game.Tracker(), m.history, m.menu.Difficulty(), m.width, m.height)
		return m, m.scoreboard.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(Model); ok {
		m.gameModel = gm
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.openMenu()
		return m, cmd
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.openMenu()
		return m, nil
	}

	return m, cmd
}

// openMenu returns to a fresh menu on the game's current level.
func (m *SessionModel) openMenu() {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.game.Tracker(), m.game.Difficulty(), m.width, m.height)
}

func (m SessionModel) updateMenuModel(msg tea.Msg) MenuModel {
	next, _ := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		return menu
	}
	return m.menu
}

func (m SessionModel) updateGameModel(msg tea.Msg) Model {
	next, _ := m.gameModel.Update(msg)
	if gm, ok := next.(Model); ok {
		return gm
	}
	return m.gameModel
}

func (m SessionModel) updateScoreboardModel(msg tea.Msg) ScoreboardModel {
	next, _ := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		return sb
	}
	return m.scoreboard
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// Screen reports which screen is active, for tests.
func (m SessionModel) Screen() string {
	switch m.screen {
	case screenGame:
		return "game"
	case screenScores:
		return "scores"
	default:
		return "menu"
	}
}

// RunSession runs a full interactive session in the local terminal.
func RunSession(g *snake.Game, history HistorySource, width, height int) error {
	model := NewSessionModel(g, history, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
