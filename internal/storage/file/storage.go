package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/anoveskey1/evbpmusic-backend/internal/storage"
)

// Storage keeps each document as <dir>/<name>.json on the local filesystem
type Storage struct {
	dir string
}

// New creates a file-backed storage rooted at dir, creating the directory if needed
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Storage{dir: dir}, nil
}

// Ensure Storage implements the interface
var _ storage.RecordStore = (*Storage)(nil)

// Path returns the file backing the named document
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Storage) Load(ctx context.Context, name string, dst any) error {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read document %q: %w", name, err)
	}
	return storage.Decode(name, data, dst)
}

// Save writes to a temp file in the same directory and renames it into place,
// so a concurrent Load sees either the old or the new document.
func (s *Storage) Save(ctx context.Context, name string, doc any) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(s.Path(name), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write document %q: %w", name, err)
	}
	return nil
}
