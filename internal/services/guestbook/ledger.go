package guestbook

import (
	"context"
	"log/slog"

	"github.com/anoveskey1/evbpmusic-backend/internal/model"
	"github.com/anoveskey1/evbpmusic-backend/internal/storage"
)

// Ledger owns the append-only list of published guestbook entries
type Ledger struct {
	store  storage.RecordStore
	locks  *storage.DocumentLocks
	logger *slog.Logger
}

// New creates a new Ledger
func New(store storage.RecordStore, locks *storage.DocumentLocks, logger *slog.Logger) *Ledger {
	return &Ledger{
		store:  store,
		locks:  locks,
		logger: logger,
	}
}

// List returns every entry, oldest first.
// An empty ledger is reported as model.ErrNoEntriesFound.
func (l *Ledger) List(ctx context.Context) ([]model.GuestbookEntry, error) {
	entries, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, model.ErrNoEntriesFound
	}
	return entries, nil
}

// Append adds entry to the end of the ledger. Content is not validated.
func (l *Ledger) Append(ctx context.Context, entry model.GuestbookEntry) error {
	unlock := l.locks.Lock(storage.EntriesDocument)
	defer unlock()

	entries, err := l.load(ctx)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if err := l.store.Save(ctx, storage.EntriesDocument, entries); err != nil {
		return err
	}

	l.logger.InfoContext(ctx, "guestbook signed",
		slog.String("username", entry.Username),
		slog.Int("entries", len(entries)),
	)
	return nil
}

func (l *Ledger) load(ctx context.Context) ([]model.GuestbookEntry, error) {
	entries := []model.GuestbookEntry{}
	if err := l.store.Load(ctx, storage.EntriesDocument, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
