package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/records"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*SQLiteStore); !ok {
		t.Errorf("Open(%q) returned %T, expected *SQLiteStore", dbPath, store)
	}

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSQLiteEmptyTable(t *testing.T) {
	store := openTestDB(t)

	table, err := store.LoadHighScores()
	if err != nil {
		t.Fatalf("LoadHighScores() failed: %v", err)
	}
	if len(table) != 0 {
		t.Errorf("LoadHighScores() = %v, expected empty table", table)
	}
}

func TestSQLiteHighScoresRoundTrip(t *testing.T) {
	store := openTestDB(t)

	first := records.Table{config.DifficultyEasy: 3, config.DifficultyNormal: 0, config.DifficultyHard: 8}
	if err := store.SaveHighScores(first); err != nil {
		t.Fatalf("SaveHighScores() failed: %v", err)
	}

	// A second save overwrites instead of duplicating rows.
	second := first.Clone()
	second[config.DifficultyNormal] = 5
	if err := store.SaveHighScores(second); err != nil {
		t.Fatalf("SaveHighScores() failed: %v", err)
	}

	got, err := store.LoadHighScores()
	if err != nil {
		t.Fatalf("LoadHighScores() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("LoadHighScores() returned %d rows, expected 3", len(got))
	}
	for d, want := range second {
		if got[d] != want {
			t.Errorf("LoadHighScores()[%d] = %d, expected %d", d, got[d], want)
		}
	}
}

func TestSQLiteGamesTopAndStats(t *testing.T) {
	store := openTestDB(t)

	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	games := []records.GameRecord{
		{Difficulty: config.DifficultyNormal, Score: 4, Apples: 4, Duration: 30 * time.Second, PlayedAt: base},
		{Difficulty: config.DifficultyNormal, Score: 9, Apples: 9, Duration: time.Minute, PlayedAt: base.Add(time.Hour)},
		{Difficulty: config.DifficultyNormal, Score: 2, Apples: 2, PlayedAt: base.Add(2 * time.Hour)},
		{Difficulty: config.DifficultyHard, Score: 50, Apples: 50, PlayedAt: base},
	}
	for _, g := range games {
		if err := store.SaveGame(g); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	top, err := store.TopGames(config.DifficultyNormal, 10)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopGames() returned %d entries, expected 3", len(top))
	}

	// Should be sorted descending
	wantScores := []int{9, 4, 2}
	for i, want := range wantScores {
		if top[i].Score != want {
			t.Errorf("TopGames()[%d].Score = %d, expected %d", i, top[i].Score, want)
		}
	}
	if top[0].Duration != time.Minute {
		t.Errorf("TopGames()[0].Duration = %v, expected %v", top[0].Duration, time.Minute)
	}
	if !top[0].PlayedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("TopGames()[0].PlayedAt = %v, expected %v", top[0].PlayedAt, base.Add(time.Hour))
	}

	limited, err := store.TopGames(config.DifficultyNormal, 1)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("TopGames(limit 1) returned %d entries", len(limited))
	}

	stats, err := store.Stats(config.DifficultyNormal)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 3 {
		t.Errorf("GamesCount = %d, expected 3", stats.GamesCount)
	}
	if stats.BestScore != 9 {
		t.Errorf("BestScore = %d, expected 9", stats.BestScore)
	}
	if stats.AvgScore != 5 {
		t.Errorf("AvgScore = %v, expected 5", stats.AvgScore)
	}
	if !stats.LastPlayed.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("LastPlayed = %v, expected %v", stats.LastPlayed, base.Add(2*time.Hour))
	}
}

func TestSQLiteStatsEmpty(t *testing.T) {
	store := openTestDB(t)

	stats, err := store.Stats(config.DifficultyEasy)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.BestScore != 0 {
		t.Errorf("Stats() = %+v, expected zero values", stats)
	}
	if !stats.LastPlayed.IsZero() {
		t.Errorf("LastPlayed = %v, expected zero time", stats.LastPlayed)
	}
}

func TestSQLiteClearGames(t *testing.T) {
	store := openTestDB(t)

	for _, d := range config.Difficulties() {
		if err := store.SaveGame(records.GameRecord{Difficulty: d, Score: int(d)}); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	if err := store.ClearGames(config.DifficultyEasy); err != nil {
		t.Fatalf("ClearGames() failed: %v", err)
	}

	easy, _ := store.TopGames(config.DifficultyEasy, 10)
	if len(easy) != 0 {
		t.Errorf("Expected no easy games after clear, got %d", len(easy))
	}
	hard, _ := store.TopGames(config.DifficultyHard, 10)
	if len(hard) != 1 {
		t.Errorf("Expected hard games untouched, got %d", len(hard))
	}
}

func TestSQLiteTrackerIntegration(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	tr, err := records.NewTracker(store, 18)
	if err != nil {
		t.Fatalf("NewTracker() failed: %v", err)
	}
	if _, err := tr.RecordIfHighScore(config.DifficultyHard, 11); err != nil {
		t.Fatalf("RecordIfHighScore() failed: %v", err)
	}
	if err := tr.RecordGame(records.GameRecord{Difficulty: config.DifficultyHard, Score: 11}); err != nil {
		t.Fatalf("RecordGame() failed: %v", err)
	}
	store.Close()

	// Reopen and check persistence
	store, err = OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	tr, err = records.NewTracker(store, 18)
	if err != nil {
		t.Fatalf("NewTracker() failed: %v", err)
	}
	if got := tr.HighScore(config.DifficultyHard); got != 11 {
		t.Errorf("HighScore(hard) = %d, expected 11", got)
	}
	games, _ := store.TopGames(config.DifficultyHard, 10)
	if len(games) != 1 {
		t.Errorf("Expected 1 game in history, got %d", len(games))
	}
}
