package model

import "time"

const (
	// ValidationCodeLength is the length of an issued code in hex characters
	ValidationCodeLength = 42
	// ValidationCodeBytes is the number of random bytes a code is derived from
	ValidationCodeBytes = (ValidationCodeLength + 1) / 2
)

// ValidationCode is an opaque one-time token mailed to a prospective signer
type ValidationCode string

// PendingValidation is the signer identity a code was issued for
type PendingValidation struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	IssuedAt *time.Time `json:"issued_at,omitempty"`
}

// Conflicts reports whether another signer already holds either the username or the email
func (p PendingValidation) Conflicts(username, email string) bool {
	return p.Username == username || p.Email == email
}

// ExpiredAt reports whether the record has outlived ttl at the given time.
// A zero ttl or a record without an issue time never expires.
func (p PendingValidation) ExpiredAt(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 || p.IssuedAt == nil {
		return false
	}
	return now.After(p.IssuedAt.Add(ttl))
}

// PendingValidations is the persisted code -> signer mapping
type PendingValidations map[ValidationCode]PendingValidation

// RedemptionPolicy controls whether signing the guestbook requires a redeemed code
type RedemptionPolicy string

const (
	// RedemptionNone accepts entries without checking any code
	RedemptionNone RedemptionPolicy = "none"
	// RedemptionRequire requires a pending code but leaves it redeemable
	RedemptionRequire RedemptionPolicy = "require"
	// RedemptionOnce requires a pending code and consumes it on success
	RedemptionOnce RedemptionPolicy = "once"
)

// Valid reports whether p is a known policy
func (p RedemptionPolicy) Valid() bool {
	switch p {
	case RedemptionNone, RedemptionRequire, RedemptionOnce:
		return true
	}
	return false
}
