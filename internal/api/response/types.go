package response

import (
	"github.com/anoveskey1/evbpmusic-backend/internal/model"
)

// Response messages
const (
	MessageRoot      = "There is nothing to see here. Perhaps you meant to visit the frontend?"
	MessageCodeSent  = "A validation code has been sent to the email address you provided. Please enter it into the validation code input field to continue."
	MessageSigned    = "Thanks for signing my guestbook. You rock!"
	MessageValidated = "User validation successful. You can now sign the guestbook!"
	MessageEmailSent = "Email sent successfully"
)

// Message is a response carrying only a human-readable message
type Message struct {
	Message string `json:"message"`
}

// GuestbookEntry represents a guestbook entry in API responses
type GuestbookEntry struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// GuestbookEntriesFromModel converts ledger entries for the response
func GuestbookEntriesFromModel(entries []model.GuestbookEntry) []GuestbookEntry {
	result := make([]GuestbookEntry, len(entries))
	for i, e := range entries {
		result[i] = GuestbookEntry{Username: e.Username, Message: e.Message}
	}
	return result
}

// User is the signer a validation code was issued for
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ValidateUserResponse is the response for a redeemed validation code
type ValidateUserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// ValidateUserResponseFromModel creates a ValidateUserResponse from a pending validation
func ValidateUserResponseFromModel(p model.PendingValidation) ValidateUserResponse {
	return ValidateUserResponse{
		Message: MessageValidated,
		User:    User{Username: p.Username, Email: p.Email},
	}
}

// VisitorCount is the response for the visitor counter
type VisitorCount struct {
	Count int64 `json:"count"`
}

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}
