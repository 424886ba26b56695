// Package records tracks per-difficulty high scores and apple milestones.
// High scores are durable through a Store; apple counters live for the
// process only.
package records

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// Table maps each difficulty level to its best score.
type Table map[config.Difficulty]int

// DefaultTable returns a table with every level at zero.
func DefaultTable() Table {
	t := make(Table, len(config.Difficulties()))
	for _, d := range config.Difficulties() {
		t[d] = 0
	}
	return t
}

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	c := make(Table, len(t))
	for d, s := range t {
		c[d] = s
	}
	return c
}

// Validate checks that the table only holds known levels and non-negative scores.
func (t Table) Validate() error {
	for d, s := range t {
		if !d.Valid() {
			return fmt.Errorf("%w: unknown difficulty %d", ErrMalformed, d)
		}
		if s < 0 {
			return fmt.Errorf("%w: negative score %d for difficulty %d", ErrMalformed, s, d)
		}
	}
	return nil
}

// GameRecord is one finished game, kept by stores that support history.
type GameRecord struct {
	Difficulty config.Difficulty
	Score      int
	Apples     int
	Duration   time.Duration
	PlayedAt   time.Time
}

// Store persists the high-score table. LoadHighScores returns an error
// wrapping fs.ErrNotExist when nothing has been stored yet.
type Store interface {
	LoadHighScores() (Table, error)
	SaveHighScores(Table) error
}

// HistoryStore is implemented by stores that also keep finished games.
type HistoryStore interface {
	SaveGame(GameRecord) error
}

// ErrMalformed is wrapped when persisted data cannot be understood.
var ErrMalformed = errors.New("records: malformed high-score data")

// PersistenceError reports a failed load or save. It is never fatal:
// the tracker keeps working from memory.
type PersistenceError struct {
	Op  string // "load", "save" or "history"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("records: cannot %s high scores: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// RecordMessage is the milestone text shown when the apple threshold is hit.
func RecordMessage(d config.Difficulty) string {
	return fmt.Sprintf("Congratulations! You broke record %d!", int(d))
}

// Tracker owns the high-score table and the apple counters.
// It is safe for concurrent use so several games can share one tracker.
type Tracker struct {
	mu        sync.Mutex
	store     Store
	threshold int
	high      Table
	apples    map[config.Difficulty]int
}

// NewTracker loads the high-score table from store. A missing table yields
// the defaults silently; unreadable or malformed data yields the defaults and
// a *PersistenceError. The returned tracker is always usable. A nil store
// keeps everything in memory.
func NewTracker(store Store, threshold int) (*Tracker, error) {
	if threshold <= 0 {
		threshold = config.DefaultAppleThreshold
	}
	t := &Tracker{
		store:     store,
		threshold: threshold,
		high:      DefaultTable(),
		apples:    make(map[config.Difficulty]int),
	}
	if store == nil {
		return t, nil
	}

	loaded, err := store.LoadHighScores()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return t, nil
		}
		return t, &PersistenceError{Op: "load", Err: err}
	}
	if err := loaded.Validate(); err != nil {
		return t, &PersistenceError{Op: "load", Err: err}
	}
	for d, s := range loaded {
		t.high[d] = s
	}
	return t, nil
}

// Threshold returns how many apples trigger a record milestone.
func (t *Tracker) Threshold() int {
	return t.threshold
}

// HighScore returns the best score for a level.
func (t *Tracker) HighScore(d config.Difficulty) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.high[d]
}

// Table returns a copy of the high-score table.
func (t *Tracker) Table() Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.high.Clone()
}

// RecordIfHighScore stores score as the new best for d when it beats the
// current one, then persists the whole table. It reports whether the table
// changed. A save failure returns a *PersistenceError but the in-memory
// record is kept.
func (t *Tracker) RecordIfHighScore(d config.Difficulty, score int) (bool, error) {
	t.mu.Lock()
	if score <= t.high[d] {
		t.mu.Unlock()
		return false, nil
	}
	t.high[d] = score
	snapshot := t.high.Clone()
	t.mu.Unlock()

	if t.store == nil {
		return true, nil
	}
	if err := t.store.SaveHighScores(snapshot); err != nil {
		return true, &PersistenceError{Op: "save", Err: err}
	}
	return true, nil
}

// AppleEaten counts one apple at level d. When the counter reaches the
// threshold it resets to zero and the milestone message is returned.
func (t *Tracker) AppleEaten(d config.Difficulty) (broke bool, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.apples[d]++
	if t.apples[d] < t.threshold {
		return false, ""
	}
	t.apples[d] = 0
	return true, RecordMessage(d)
}

// Apples returns the apples eaten at d since the last milestone or reset.
func (t *Tracker) Apples(d config.Difficulty) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.apples[d]
}

// ResetApples zeroes the apple counter for d.
func (t *Tracker) ResetApples(d config.Difficulty) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.apples[d] = 0
}

// RecordGame appends a finished game to the store's history when supported.
func (t *Tracker) RecordGame(rec GameRecord) error {
	hs, ok := t.store.(HistoryStore)
	if !ok {
		return nil
	}
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now()
	}
	if err := hs.SaveGame(rec); err != nil {
		return &PersistenceError{Op: "history", Err: err}
	}
	return nil
}

// ClearHighScores resets every level to zero and persists the empty table.
func (t *Tracker) ClearHighScores() error {
	t.mu.Lock()
	t.high = DefaultTable()
	snapshot := t.high.Clone()
	t.mu.Unlock()

	if t.store == nil {
		return nil
	}
	if err := t.store.SaveHighScores(snapshot); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}
