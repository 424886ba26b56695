// Package storage provides persistence for snake high scores.
// A JSON file holds the plain high-score table; a SQLite database (pure-Go
// modernc.org/sqlite driver, no CGO) holds the table plus play history.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/records"
)

// Backend is a high-score store that owns a resource.
type Backend interface {
	records.Store
	Close() error
}

// Open returns the backend for path, picked by extension: .db, .sqlite and
// .sqlite3 open SQLite, anything else is a JSON file. A leading ~ is
// expanded and parent directories are created.
func Open(path string) (Backend, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path)
	default:
		return NewFileStore(path), nil
	}
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("storage: empty path")
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
