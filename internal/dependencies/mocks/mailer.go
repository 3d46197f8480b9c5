package mocks

import (
	"context"
	"sync"

	"github.com/anoveskey1/evbpmusic-backend/internal/mail"
)

// MockSender records outgoing mail instead of delivering it
type MockSender struct {
	mu   sync.Mutex
	sent []mail.Message

	// Err, when set, is returned from every Send
	Err error
}

// Ensure MockSender implements Sender
var _ mail.Sender = (*MockSender)(nil)

// NewMockSender creates a MockSender that accepts every message
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send records msg and returns Err
func (m *MockSender) Send(ctx context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.Err
}

// Sent returns a copy of every message passed to Send, including failed ones
func (m *MockSender) Sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.Message, len(m.sent))
	copy(out, m.sent)
	return out
}
