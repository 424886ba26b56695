package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-snake/internal/records"
)

// FileStore keeps the high-score table in a JSON file shaped like
// {"1": 0, "2": 0, "3": 0}. The whole file is rewritten on every save.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the JSON file at path.
// The file is not touched until the first load or save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadHighScores reads the table. A missing file returns an error wrapping
// fs.ErrNotExist; undecodable content wraps records.ErrMalformed.
func (f *FileStore) LoadHighScores() (records.Table, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("storage: no high scores at %s: %w", f.path, err)
		}
		return nil, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}

	var table records.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("storage: %w: %s: %v", records.ErrMalformed, f.path, err)
	}
	if table == nil {
		return nil, fmt.Errorf("storage: %w: %s holds no table", records.ErrMalformed, f.path)
	}
	return table, nil
}

// SaveHighScores writes the table through a temp file and rename so a crash
// never leaves a half-written file behind.
func (f *FileStore) SaveHighScores(table records.Table) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: cannot encode high scores: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".high_scores-*.json")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write high scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write high scores: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op; it lets FileStore satisfy Backend.
func (f *FileStore) Close() error {
	return nil
}

var _ records.Store = (*FileStore)(nil)
