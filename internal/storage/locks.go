package storage

import "sync"

// DocumentLocks hands out one mutex per document name so that
// load-modify-save cycles on the same document never interleave.
type DocumentLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDocumentLocks creates an empty lock set
func NewDocumentLocks() *DocumentLocks {
	return &DocumentLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the named document's mutex and returns its release func
func (l *DocumentLocks) Lock(name string) func() {
	l.mu.Lock()
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
