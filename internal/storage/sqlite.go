package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/records"
)

// SQLiteStore keeps the high-score table and a history of finished games.
type SQLiteStore struct {
	db *sql.DB
}

// GameEntry is one finished game read back from history.
type GameEntry struct {
	ID         int64
	Difficulty config.Difficulty
	Score      int
	Apples     int
	Duration   time.Duration
	PlayedAt   time.Time
}

// GameStats contains aggregated statistics for one difficulty.
type GameStats struct {
	Difficulty config.Difficulty
	GamesCount int
	BestScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// OpenSQLite opens (or creates) the database at dbPath and runs migrations.
// The parent directory must already exist; Open takes care of that.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			difficulty INTEGER PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty INTEGER NOT NULL,
			score INTEGER NOT NULL,
			apples INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			played_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(difficulty, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadHighScores reads the whole high-score table. An empty table is not an
// error; the tracker fills in missing levels.
func (s *SQLiteStore) LoadHighScores() (records.Table, error) {
	rows, err := s.db.Query("SELECT difficulty, score FROM high_scores")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	table := make(records.Table)
	for rows.Next() {
		var d, score int
		if err := rows.Scan(&d, &score); err != nil {
			return nil, fmt.Errorf("storage: %w: cannot scan row: %v", records.ErrMalformed, err)
		}
		table[config.Difficulty(d)] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return table, nil
}

// SaveHighScores replaces the stored table in one transaction.
func (s *SQLiteStore) SaveHighScores(table records.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}

	for d, score := range table {
		_, err := tx.Exec(
			`INSERT INTO high_scores (difficulty, score) VALUES (?, ?)
			 ON CONFLICT(difficulty) DO UPDATE SET score = excluded.score`,
			int(d), score,
		)
		if err != nil {
			tx.Rollback() //nolint:errcheck // the exec error is the one worth reporting
			return fmt.Errorf("storage: cannot save high score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit high scores: %w", err)
	}
	return nil
}

// SaveGame records a finished game.
func (s *SQLiteStore) SaveGame(rec records.GameRecord) error {
	playedAt := rec.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}

	_, err := s.db.Exec(
		"INSERT INTO games (difficulty, score, apples, duration_ms, played_at) VALUES (?, ?, ?, ?, ?)",
		int(rec.Difficulty), rec.Score, rec.Apples, rec.Duration.Milliseconds(), playedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// TopGames retrieves the best games at one difficulty, highest score first.
func (s *SQLiteStore) TopGames(d config.Difficulty, limit int) ([]GameEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, difficulty, score, apples, duration_ms, played_at
		 FROM games
		 WHERE difficulty = ?
		 ORDER BY score DESC, played_at ASC
		 LIMIT ?`,
		int(d), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var entries []GameEntry
	for rows.Next() {
		var e GameEntry
		var d, durationMS int64
		var playedAt int64
		if err := rows.Scan(&e.ID, &d, &e.Score, &e.Apples, &durationMS, &playedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Difficulty = config.Difficulty(d)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.PlayedAt = time.UnixMilli(playedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats retrieves aggregated statistics for one difficulty.
func (s *SQLiteStore) Stats(d config.Difficulty) (*GameStats, error) {
	stats := &GameStats{Difficulty: d}

	var lastPlayed sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(played_at)
		 FROM games WHERE difficulty = ?`,
		int(d),
	).Scan(&stats.GamesCount, &stats.BestScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	if lastPlayed.Valid {
		stats.LastPlayed = time.UnixMilli(lastPlayed.Int64)
	}

	return stats, nil
}

// ClearGames deletes the play history for one difficulty.
func (s *SQLiteStore) ClearGames(d config.Difficulty) error {
	_, err := s.db.Exec("DELETE FROM games WHERE difficulty = ?", int(d))
	if err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

var (
	_ records.Store        = (*SQLiteStore)(nil)
	_ records.HistoryStore = (*SQLiteStore)(nil)
)
