package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Document names owned by the guestbook services
const (
	EntriesDocument = "guestbook_entries"
	UsersDocument   = "guestbook_users"
)

// ErrCorruptData is returned when a stored document is not valid JSON
var ErrCorruptData = errors.New("corrupt data")

// RecordStore persists whole JSON documents by name.
//
// Every call goes to the backing store; there is no caching. A document that
// does not exist or holds only whitespace loads as the caller's empty value.
type RecordStore interface {
	// Load decodes the named document into dst
	Load(ctx context.Context, name string, dst any) error
	// Save replaces the named document with doc
	Save(ctx context.Context, name string, doc any) error
}

// Decode unmarshals raw document content into dst.
// Empty or whitespace-only content leaves dst untouched.
func Decode(name string, data []byte, dst any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("document %q: %w: %v", name, ErrCorruptData, err)
	}
	return nil
}

// Encode renders doc the way every backend persists it: two-space indented JSON
func Encode(doc any) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
