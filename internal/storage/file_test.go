package storage

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/records"
)

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "high_scores.json"))

	_, err := store.LoadHighScores()
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "high_scores.json")
	store := NewFileStore(path)

	table := records.Table{config.DifficultyEasy: 1, config.DifficultyNormal: 22, config.DifficultyHard: 0}
	require.NoError(t, store.SaveHighScores(table))

	got, err := store.LoadHighScores()
	require.NoError(t, err)
	assert.Equal(t, table, got)

	// Keys are the level numbers as strings.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]int
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]int{"1": 1, "2": 22, "3": 0}, raw)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestFileStoreReadsLegacyFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"1": 4, "2": 0, "3": 17}`), 0o644))

	got, err := NewFileStore(path).LoadHighScores()
	require.NoError(t, err)
	assert.Equal(t, 4, got[config.DifficultyEasy])
	assert.Equal(t, 17, got[config.DifficultyHard])
}

func TestFileStoreMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "high scores"},
		{"wrong shape", `[1, 2, 3]`},
		{"non-numeric key", `{"easy": 1}`},
		{"null", `null`},
		{"empty", ``},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "high_scores.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			_, err := NewFileStore(path).LoadHighScores()
			require.Error(t, err)
			assert.ErrorIs(t, err, records.ErrMalformed)
		})
	}
}

func TestFileStoreTrackerFallsBackOnGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o644))

	tr, err := records.NewTracker(NewFileStore(path), 18)
	require.Error(t, err)
	assert.Equal(t, records.DefaultTable(), tr.Table())

	// The next increase overwrites the corrupt file with a valid table.
	changed, err := tr.RecordIfHighScore(config.DifficultyNormal, 3)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := NewFileStore(path).LoadHighScores()
	require.NoError(t, err)
	assert.Equal(t, 3, got[config.DifficultyNormal])
}

func TestOpenPicksBackendByExtension(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		file   string
		sqlite bool
	}{
		{"json", "scores.json", false},
		{"no extension", "scores", false},
		{"db", "scores.db", true},
		{"sqlite", "scores.sqlite", true},
		{"upper case", "SCORES.DB", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Open(filepath.Join(dir, tc.name, tc.file))
			require.NoError(t, err)
			defer b.Close()

			_, isSQLite := b.(*SQLiteStore)
			assert.Equal(t, tc.sqlite, isSQLite)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.snake/high_scores.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".snake", "high_scores.json"), got)

	got, err = ExpandPath("/tmp/x.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.json", got)

	_, err = ExpandPath("")
	assert.Error(t, err)
}
