package model

import "errors"

// Common errors used across the application
var (
	// Input errors
	ErrMissingFields = errors.New("missing required fields")

	// Validation registry errors
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserEntryNotFound = errors.New("user entry not found")

	// Ledger errors
	ErrNoEntriesFound = errors.New("no guestbook entries found")

	// Mail errors
	ErrDeliveryFailed = errors.New("email delivery failed")
)
