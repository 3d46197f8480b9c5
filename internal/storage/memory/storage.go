package memory

import (
	"context"
	"sync"

	"github.com/anoveskey1/evbpmusic-backend/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Documents are kept as encoded JSON so loads never alias saved values.
type Storage struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		docs: make(map[string][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.RecordStore = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context, name string, dst any) error {
	s.mu.RLock()
	data, ok := s.docs[name]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return storage.Decode(name, data, dst)
}

func (s *Storage) Save(ctx context.Context, name string, doc any) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = data
	return nil
}

// Raw returns the stored bytes of a document, for inspection in tests
func (s *Storage) Raw(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[name]
	return data, ok
}

// SetRaw stores bytes verbatim under name, bypassing encoding
func (s *Storage) SetRaw(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = data
}
