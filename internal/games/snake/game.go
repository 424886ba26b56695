// Package snake implements the snake simulation: movement, growth, food,
// collisions, scoring and the session state machine. It has no UI code;
// collaborators drive it with Tick and SetDirection and watch its events.
package snake

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/records"
)

// State is the session state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidTransition is returned when an operation is not allowed in
	// the current state.
	ErrInvalidTransition = errors.New("snake: invalid state transition")
	// ErrReentrantTick is returned when Tick is called while a tick is
	// still running, for example from an observer.
	ErrReentrantTick = errors.New("snake: tick already in progress")
	// ErrInvalidDifficulty is returned by SetDifficulty for unknown levels.
	ErrInvalidDifficulty = errors.New("snake: invalid difficulty")
)

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithSeed seeds the food spawner. Without it the seed is time based.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// intent is a direction request waiting for the next tick.
type intent struct {
	set    bool
	dir    core.Direction
	toward bool
	target core.Cell
}

// Game is one snake session. Tick, Start, Restart, Abandon and
// SetDifficulty must be called from a single goroutine; SetDirection and
// PointToward may be called from anywhere.
type Game struct {
	cfg     config.SnakeConfig
	board   core.Board
	tracker *records.Tracker
	log     *log.Logger
	rng     *rand.Rand
	spawner *Spawner

	state      State
	difficulty config.Difficulty
	body       Body
	dir        core.Direction
	food       core.Cell
	score      int
	apples     int // eaten this game, for history
	tick       uint64
	elapsed    time.Duration

	ticking atomic.Bool

	intentMu sync.Mutex
	pending  intent

	observers []Observer
}

// New creates an idle game. The config is validated here so the simulation
// never runs on bad geometry. A nil tracker keeps high scores in memory.
func New(cfg config.SnakeConfig, tracker *records.Tracker, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("snake: %w", err)
	}
	if tracker == nil {
		// A nil store never fails to load.
		tracker, _ = records.NewTracker(nil, cfg.Records.AppleThreshold)
	}

	g := &Game{
		cfg:        cfg,
		board:      cfg.Geometry(),
		tracker:    tracker,
		log:        log.New(io.Discard),
		difficulty: cfg.Difficulty.Level,
		body:       NewBody(cfg.Origin()),
		dir:        core.DirRight,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.spawner = NewSpawner(g.rng, g.board)
	return g, nil
}

// Subscribe registers an observer. Observers run synchronously inside the
// call that produced the event.
func (g *Game) Subscribe(o Observer) {
	g.observers = append(g.observers, o)
}

// Start begins the first game. Only valid from Idle.
func (g *Game) Start() error {
	if g.state != StateIdle {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, g.state)
	}
	g.emit(g.reset())
	return nil
}

// Restart begins a new game after game over and clears the apple counter
// for the current level.
func (g *Game) Restart() error {
	if g.state != StateGameOver {
		return fmt.Errorf("%w: restart from %s", ErrInvalidTransition, g.state)
	}
	g.tracker.ResetApples(g.difficulty)
	g.emit(g.reset())
	return nil
}

// Abandon leaves the session and returns to Idle. A running game is scored
// as if it had ended.
func (g *Game) Abandon() error {
	var events []Event
	switch g.state {
	case StateRunning:
		events = g.recordResult(nil)
	case StateGameOver:
	default:
		return fmt.Errorf("%w: abandon from %s", ErrInvalidTransition, g.state)
	}
	g.state = StateIdle
	g.log.Debug("game abandoned", "score", g.score, "level", g.difficulty)
	g.emit(events)
	return nil
}

func (g *Game) reset() []Event {
	g.body = NewBody(g.cfg.Origin())
	g.dir = core.DirRight
	g.food = g.spawner.Spawn()
	g.score = 0
	g.apples = 0
	g.tick = 0
	g.elapsed = 0
	g.state = StateRunning

	g.intentMu.Lock()
	g.pending = intent{}
	g.intentMu.Unlock()

	g.log.Debug("game started", "level", g.difficulty, "food", g.food)
	return []Event{GameReset{}, ScoreChanged{Score: 0}}
}

// SetDirection buffers a turn for the next tick. The last request before a
// tick wins. Unknown directions are ignored.
func (g *Game) SetDirection(dir core.Direction) {
	if !dir.Valid() {
		return
	}
	g.intentMu.Lock()
	g.pending = intent{set: true, dir: dir}
	g.intentMu.Unlock()
}

// PointToward buffers a turn toward target along the dominant axis,
// measured from the head at the start of the next tick.
func (g *Game) PointToward(target core.Cell) {
	g.intentMu.Lock()
	g.pending = intent{set: true, toward: true, target: target}
	g.intentMu.Unlock()
}

func (g *Game) applyIntent() {
	g.intentMu.Lock()
	in := g.pending
	g.pending = intent{}
	g.intentMu.Unlock()

	if !in.set {
		return
	}
	dir := in.dir
	if in.toward {
		dir = core.DirectionToward(g.body.Head(), in.target)
	}
	if g.cfg.Snake.PreventReversal && g.body.Len() > 1 && dir == g.dir.Opposite() {
		return
	}
	g.dir = dir
}

// Tick advances the simulation one step. Outside Running it does nothing.
func (g *Game) Tick(dt time.Duration) (StepResult, error) {
	if !g.ticking.CompareAndSwap(false, true) {
		return StepResult{State: g.state}, ErrReentrantTick
	}
	defer g.ticking.Store(false)

	if g.state != StateRunning {
		return StepResult{State: g.state}, nil
	}

	g.tick++
	g.elapsed += dt
	g.applyIntent()
	g.body.Advance(g.dir, g.board.CellSize)

	var events []Event
	switch c := Detect(&g.body, g.board, g.food); c {
	case CollisionSelf, CollisionWall:
		events = g.finish(c)
	case CollisionFood:
		events = g.eat()
	}

	g.emit(events)
	return StepResult{State: g.state, Events: events}, nil
}

func (g *Game) eat() []Event {
	eaten := g.food
	g.food = g.spawner.Spawn()
	g.body.Grow()
	g.score++
	g.apples++

	events := []Event{FoodEaten{Cell: eaten}, ScoreChanged{Score: g.score}}
	if broke, msg := g.tracker.AppleEaten(g.difficulty); broke {
		g.log.Info("record broken", "level", g.difficulty, "score", g.score)
		events = append(events, RecordBroken{Difficulty: g.difficulty, Message: msg})
	}
	return events
}

func (g *Game) finish(cause Collision) []Event {
	g.state = StateGameOver
	g.log.Debug("game over", "cause", cause, "score", g.score, "ticks", g.tick)

	events := g.recordResult(nil)
	return append(events, GameOver{Score: g.score, Cause: cause})
}

// recordResult stores the high score and the history entry. Store errors
// are logged and reported as events; they never stop the game.
func (g *Game) recordResult(events []Event) []Event {
	changed, err := g.tracker.RecordIfHighScore(g.difficulty, g.score)
	if err != nil {
		g.log.Warn("cannot save high score", "level", g.difficulty, "err", err)
		events = append(events, PersistenceFailed{Err: err})
	}
	if changed {
		events = append(events, HighScoreSet{Difficulty: g.difficulty, Score: g.score})
	}

	err = g.tracker.RecordGame(records.GameRecord{
		Difficulty: g.difficulty,
		Score:      g.score,
		Apples:     g.apples,
		Duration:   g.elapsed,
	})
	if err != nil {
		g.log.Warn("cannot save game history", "err", err)
		events = append(events, PersistenceFailed{Err: err})
	}
	return events
}

// SetDifficulty switches the level in any state without resetting the game.
// Observers get DifficultyChanged so the scheduler can re-arm at the new rate.
func (g *Game) SetDifficulty(d config.Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDifficulty, d)
	}
	if d == g.difficulty {
		return nil
	}
	g.difficulty = d
	g.log.Debug("difficulty changed", "level", d, "rate", g.TickRate())
	g.emit([]Event{DifficultyChanged{Level: d, TickRate: g.TickRate()}})
	return nil
}

// Difficulty returns the current level.
func (g *Game) Difficulty() config.Difficulty {
	return g.difficulty
}

// TickRate returns ticks per second for the current level.
func (g *Game) TickRate() int {
	return g.cfg.TickRate(g.difficulty)
}

// TickInterval returns the time between ticks for the current level.
func (g *Game) TickInterval() time.Duration {
	return time.Second / time.Duration(g.TickRate())
}

// State returns the session state.
func (g *Game) State() State {
	return g.state
}

// Score returns the running score.
func (g *Game) Score() int {
	return g.score
}

// Tracker returns the record tracker the game reports to.
func (g *Game) Tracker() *records.Tracker {
	return g.tracker
}

// Board returns the playfield geometry.
func (g *Game) Board() core.Board {
	return g.board
}

func (g *Game) emit(events []Event) {
	for _, e := range events {
		for _, o := range g.observers {
			o(e)
		}
	}
}
