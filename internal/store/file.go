package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mehdi559/poe/internal/model"
)

// FileStore persists the ledger as a single JSON document. Writes go through
// a temp file then rename, so a crash mid-save never leaves a torn file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed persister at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the ledger from disk. A missing file returns (nil, nil) so the
// caller can seed the default state.
func (f *FileStore) Load(ctx context.Context) (*model.Ledger, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading ledger file: %w", err)
	}

	var ledger model.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("decoding ledger file: %w", err)
	}
	return &ledger, nil
}

// Save writes the full ledger atomically.
func (f *FileStore) Save(ctx context.Context, ledger model.Ledger) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "ledger-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing ledger file: %w", err)
	}
	return nil
}
