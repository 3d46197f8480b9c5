// Package mail defines the outbound email capability the guestbook depends on.
package mail

import (
	"context"
	"log/slog"
)

// Message is a plain-text email
type Message struct {
	To      string
	Subject string
	Body    string
	// ReplyTo is optional
	ReplyTo string
}

// Sender delivers a message or reports why it could not
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of sending them.
// It is the default in development where no mail API credentials exist.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs msg and always succeeds
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "email not sent (log transport)",
		slog.String("to", msg.To),
		slog.String("reply_to", msg.ReplyTo),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}
