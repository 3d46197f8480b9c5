package validation

import (
	"context"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/anoveskey1/evbpmusic-backend/internal/dependencies/clock"
	"github.com/anoveskey1/evbpmusic-backend/internal/dependencies/random"
	"github.com/anoveskey1/evbpmusic-backend/internal/model"
	"github.com/anoveskey1/evbpmusic-backend/internal/storage"
)

// Config holds configuration for the validation registry
type Config struct {
	// CodeTTL bounds how long an issued code stays redeemable. Zero means forever.
	CodeTTL time.Duration
}

// Registry owns the pending-validation document: the mapping from issued
// code to the signer it was issued for.
type Registry struct {
	store  storage.RecordStore
	locks  *storage.DocumentLocks
	clock  clock.Clock
	random random.Random
	logger *slog.Logger

	codeTTL time.Duration
}

// New creates a new Registry
func New(
	store storage.RecordStore,
	locks *storage.DocumentLocks,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		store:   store,
		locks:   locks,
		clock:   clock,
		random:  random,
		logger:  logger,
		codeTTL: cfg.CodeTTL,
	}
}

// Issue records a new pending signer and returns the code issued for it.
// A username or email already held by any live pending record is rejected.
func (r *Registry) Issue(ctx context.Context, username, email string) (model.ValidationCode, error) {
	if username == "" || email == "" {
		return "", model.ErrMissingFields
	}

	unlock := r.locks.Lock(storage.UsersDocument)
	defer unlock()

	pending, err := r.load(ctx)
	if err != nil {
		return "", err
	}

	now := r.clock.Now()
	pruned := r.pruneExpired(pending, now)

	for _, p := range pending {
		if p.Conflicts(username, email) {
			return "", model.ErrUserAlreadyExists
		}
	}

	// Generate a code not already pending
	var code model.ValidationCode
	for {
		code = r.generateCode()
		if _, exists := pending[code]; !exists {
			break
		}
	}

	rec := model.PendingValidation{Username: username, Email: email}
	if r.codeTTL > 0 {
		rec.IssuedAt = &now
	}
	pending[code] = rec

	if err := r.store.Save(ctx, storage.UsersDocument, pending); err != nil {
		return "", err
	}

	r.logger.InfoContext(ctx, "validation code issued",
		slog.String("username", username),
		slog.Int("expired_pruned", pruned),
	)

	return code, nil
}

// Redeem returns the signer a pending code was issued for.
// The record is left in place, so a code may be redeemed repeatedly.
func (r *Registry) Redeem(ctx context.Context, code model.ValidationCode) (model.PendingValidation, error) {
	pending, err := r.load(ctx)
	if err != nil {
		return model.PendingValidation{}, err
	}

	p, ok := pending[code]
	if !ok || p.ExpiredAt(r.clock.Now(), r.codeTTL) {
		return model.PendingValidation{}, model.ErrUserEntryNotFound
	}
	return p, nil
}

// Consume redeems a code and removes it in the same locked cycle,
// so at most one caller can consume any given code. When username is
// non-empty the code must have been issued to that username; a mismatch
// leaves the code pending.
func (r *Registry) Consume(ctx context.Context, code model.ValidationCode, username string) (model.PendingValidation, error) {
	unlock := r.locks.Lock(storage.UsersDocument)
	defer unlock()

	pending, err := r.load(ctx)
	if err != nil {
		return model.PendingValidation{}, err
	}

	p, ok := pending[code]
	if !ok || p.ExpiredAt(r.clock.Now(), r.codeTTL) {
		return model.PendingValidation{}, model.ErrUserEntryNotFound
	}
	if username != "" && p.Username != username {
		return model.PendingValidation{}, model.ErrUserEntryNotFound
	}

	delete(pending, code)
	if err := r.store.Save(ctx, storage.UsersDocument, pending); err != nil {
		return model.PendingValidation{}, err
	}

	r.logger.InfoContext(ctx, "validation code consumed", slog.String("username", p.Username))
	return p, nil
}

func (r *Registry) load(ctx context.Context) (model.PendingValidations, error) {
	pending := model.PendingValidations{}
	if err := r.store.Load(ctx, storage.UsersDocument, &pending); err != nil {
		return nil, err
	}
	// A document holding JSON null decodes to a nil map
	if pending == nil {
		pending = model.PendingValidations{}
	}
	return pending, nil
}

// pruneExpired drops records older than the TTL and returns how many went
func (r *Registry) pruneExpired(pending model.PendingValidations, now time.Time) int {
	if r.codeTTL <= 0 {
		return 0
	}
	n := 0
	for code, p := range pending {
		if p.ExpiredAt(now, r.codeTTL) {
			delete(pending, code)
			n++
		}
	}
	return n
}

// generateCode hex-encodes fresh random bytes into a code of ValidationCodeLength characters
func (r *Registry) generateCode() model.ValidationCode {
	encoded := hex.EncodeToString(r.random.Bytes(model.ValidationCodeBytes))
	return model.ValidationCode(encoded[:model.ValidationCodeLength])
}
