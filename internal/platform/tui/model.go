package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const bannerDuration = 3 * time.Second

// inbox collects game events between Bubble Tea updates. It is shared by
// every copy of the value-receiver Model.
type inbox struct {
	events []snake.Event
}

func (b *inbox) observe(e snake.Event) {
	b.events = append(b.events, e)
}

func (b *inbox) drain() []snake.Event {
	out := b.events
	b.events = nil
	return out
}

// Model is the Bubble Tea model for one snake game screen.
type Model struct {
	game   *snake.Game
	screen *core.Screen
	inbox  *inbox
	keys   GameKeyMap
	help   help.Model

	width    int
	height   int
	gen      int // current tick timer; older TickMsgs are dropped
	paused   bool
	showHelp bool

	banner   string
	bannerID int
	warning  string
	newBest  bool

	quitting   bool
	backToMenu bool
}

// NewModel creates a game screen for g. The game may be in any state; an
// idle game waits for the start key.
func NewModel(g *snake.Game, width, height int) Model {
	box := &inbox{}
	g.Subscribe(box.observe)

	return Model{
		game:   g,
		screen: core.NewScreen(width, height),
		inbox:  box,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.game.TickInterval(), m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, m.boardHeight())
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case bannerExpiredMsg:
		if msg.id == m.bannerID {
			m.banner = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.leave()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.leave()
		m.backToMenu = true
		return m, m.handleEvents()

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.screen.Resize(m.width, m.boardHeight())
		return m, nil
	}

	if d, ok := m.keys.Difficulty(msg); ok {
		//nolint:errcheck // bound keys only produce valid levels
		m.game.SetDifficulty(d)
		return m, m.handleEvents()
	}

	switch m.game.State() {
	case snake.StateIdle:
		if key.Matches(msg, m.keys.Start) {
			return m, m.start()
		}

	case snake.StateGameOver:
		if key.Matches(msg, m.keys.Restart, m.keys.Start) {
			return m, m.start()
		}

	case snake.StateRunning:
		if key.Matches(msg, m.keys.Pause) {
			m.paused = !m.paused
			return m, nil
		}
		if dir, ok := m.keys.Direction(msg); ok && !m.paused {
			m.game.SetDirection(dir)
		}
	}

	return m, nil
}

// handleMouse turns the snake toward a clicked board cell.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.game.State() != snake.StateRunning || m.paused {
		return m, nil
	}
	l := snake.NewLayout(m.game.Board(), m.width, m.boardHeight())
	if target, ok := l.CellAt(msg.X, msg.Y); ok {
		m.game.PointToward(target)
	}
	return m, nil
}

// start begins or restarts the game and clears per-game notices.
func (m *Model) start() tea.Cmd {
	var err error
	if m.game.State() == snake.StateGameOver {
		err = m.game.Restart()
	} else {
		err = m.game.Start()
	}
	if err != nil && !errors.Is(err, snake.ErrInvalidTransition) {
		m.warning = err.Error()
	}
	m.paused = false
	m.newBest = false
	return m.handleEvents()
}

// Enter switches the game to level d, starts it and arms a fresh tick
// timer. It is used when the screen is (re)opened from the menu.
func (m Model) Enter(d config.Difficulty) (Model, tea.Cmd) {
	m.backToMenu = false
	if err := m.game.SetDifficulty(d); err != nil {
		m.warning = err.Error()
	}
	cmd := m.start()

	m.gen++
	return m, tea.Batch(cmd, tickCmd(m.game.TickInterval(), m.gen))
}

// leave scores a running game before the screen closes.
func (m *Model) leave() {
	if m.game.State() == snake.StateIdle {
		return
	}
	//nolint:errcheck // only fails from Idle, checked above
	m.game.Abandon()
}

// handleTick processes simulation ticks.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.quitting || m.backToMenu {
		return m, nil
	}

	if !m.paused {
		if _, err := m.game.Tick(m.game.TickInterval()); err != nil {
			m.warning = err.Error()
		}
	}

	cmd := m.handleEvents()
	return m, tea.Batch(cmd, tickCmd(m.game.TickInterval(), m.gen))
}

// handleEvents reacts to everything the game emitted since the last call.
func (m *Model) handleEvents() tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range m.inbox.drain() {
		switch ev := e.(type) {
		case snake.DifficultyChanged:
			// Replace the running timer with one at the new rate.
			m.gen++
			cmds = append(cmds, tickCmd(time.Second/time.Duration(ev.TickRate), m.gen))
		case snake.RecordBroken:
			m.bannerID++
			m.banner = ev.Message
			cmds = append(cmds, bannerCmd(bannerDuration, m.bannerID))
		case snake.HighScoreSet:
			m.newBest = true
		case snake.PersistenceFailed:
			m.warning = "scores not saved"
		case snake.GameReset:
			m.warning = ""
		}
	}
	return tea.Batch(cmds...)
}

// boardHeight is the screen height left for the board after the help line.
func (m Model) boardHeight() int {
	if m.showHelp {
		return max(m.height-1, 0)
	}
	return m.height
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	snake.Render(m.game.Snapshot(), m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("snake_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.game.Snapshot()
	snake.Render(snap, m.screen)

	if m.paused && snap.State == snake.StateRunning {
		snake.DrawOverlay(m.screen, "Paused", "Press P to continue")
	}
	m.drawNotices(snap)

	out := RenderScreen(m.screen)
	if m.showHelp {
		helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		out += "\n" + helpStyle.Render(m.help.View(m.keys))
	}
	return out
}

// drawNotices writes the banner and warnings on the second HUD row.
func (m Model) drawNotices(snap snake.Snapshot) {
	x := 20
	switch {
	case m.banner != "":
		m.screen.DrawTextColored(x, 1, m.banner, core.ColorBrightYellow)
	case m.warning != "":
		m.screen.DrawTextColored(x, 1, m.warning, core.ColorRed)
	case m.newBest && snap.State == snake.StateGameOver:
		m.screen.DrawTextColored(x, 1, "New best score!", core.ColorBrightGreen)
	default:
		m.screen.DrawTextColored(x, 1, "? help", core.ColorGray)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays g in a full-screen Bubble Tea program without a menu.
func Run(g *snake.Game, width, height int) error {
	model := NewModel(g, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
