package signing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anoveskey1/evbpmusic-backend/internal/mail"
	"github.com/anoveskey1/evbpmusic-backend/internal/model"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/guestbook"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/validation"
)

// Config holds configuration for the signing workflow
type Config struct {
	// Policy decides whether SubmitEntry requires a pending code
	Policy model.RedemptionPolicy
	// ContactRecipient receives messages sent through the contact form
	ContactRecipient string
}

// Workflow orchestrates issuing codes, mailing them, redeeming them and
// appending guestbook entries.
type Workflow struct {
	registry *validation.Registry
	ledger   *guestbook.Ledger
	sender   mail.Sender
	logger   *slog.Logger

	policy           model.RedemptionPolicy
	contactRecipient string
}

// New creates a new Workflow
func New(
	registry *validation.Registry,
	ledger *guestbook.Ledger,
	sender mail.Sender,
	cfg Config,
	logger *slog.Logger,
) *Workflow {
	if !cfg.Policy.Valid() {
		cfg.Policy = model.RedemptionNone
	}
	return &Workflow{
		registry:         registry,
		ledger:           ledger,
		sender:           sender,
		logger:           logger,
		policy:           cfg.Policy,
		contactRecipient: cfg.ContactRecipient,
	}
}

// Policy returns the redemption policy in force
func (w *Workflow) Policy() model.RedemptionPolicy {
	return w.policy
}

// ValidationMessage renders the email carrying a freshly issued code
func ValidationMessage(username, email string, code model.ValidationCode) mail.Message {
	return mail.Message{
		To:      email,
		Subject: "Validation Code for " + username,
		Body: fmt.Sprintf("Hello %s,\n\nYour validation code is: %s\n\n"+
			"Please copy and paste it into the validation code field on the guestbook page to continue signing the guestbook!",
			username, code),
	}
}

// RequestValidation issues a code for the signer and mails it to them.
// If delivery fails the issued code stays pending.
func (w *Workflow) RequestValidation(ctx context.Context, username, email string) error {
	if username == "" || email == "" {
		return model.ErrMissingFields
	}

	code, err := w.registry.Issue(ctx, username, email)
	if err != nil {
		return err
	}

	if err := w.sender.Send(ctx, ValidationMessage(username, email, code)); err != nil {
		w.logger.ErrorContext(ctx, "failed to send validation code",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %w", model.ErrDeliveryFailed, err)
	}

	return nil
}

// RedeemCode reports the signer a code was issued for
func (w *Workflow) RedeemCode(ctx context.Context, code model.ValidationCode) (model.PendingValidation, error) {
	return w.registry.Redeem(ctx, code)
}

// SubmitEntry appends an entry to the guestbook, checking code according to
// the configured policy. Under a gated policy the entry is published under the
// username the code was issued for; a different non-empty username is rejected.
//
// With RedemptionOnce the code is consumed before the append, so a failed
// append still spends the code.
func (w *Workflow) SubmitEntry(ctx context.Context, username, message string, code model.ValidationCode) (model.GuestbookEntry, error) {
	entry := model.GuestbookEntry{Username: username, Message: message}

	var (
		signer model.PendingValidation
		err    error
	)
	switch w.policy {
	case model.RedemptionRequire:
		signer, err = w.registry.Redeem(ctx, code)
		if err == nil && username != "" && username != signer.Username {
			err = model.ErrUserEntryNotFound
		}
	case model.RedemptionOnce:
		signer, err = w.registry.Consume(ctx, code, username)
	default:
		if err := w.ledger.Append(ctx, entry); err != nil {
			return model.GuestbookEntry{}, err
		}
		return entry, nil
	}
	if err != nil {
		return model.GuestbookEntry{}, err
	}
	entry.Username = signer.Username

	if err := w.ledger.Append(ctx, entry); err != nil {
		return model.GuestbookEntry{}, err
	}
	return entry, nil
}

// SendContactEmail forwards a visitor's message to the site owner with
// reply-to set to the visitor's address.
func (w *Workflow) SendContactEmail(ctx context.Context, replyTo, subject, message string) error {
	if replyTo == "" || subject == "" || message == "" {
		return model.ErrMissingFields
	}

	err := w.sender.Send(ctx, mail.Message{
		To:      w.contactRecipient,
		Subject: subject,
		Body:    message,
		ReplyTo: replyTo,
	})
	if err != nil {
		w.logger.ErrorContext(ctx, "failed to send contact email", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", model.ErrDeliveryFailed, err)
	}
	return nil
}
