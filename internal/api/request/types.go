package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// SendValidationCodeRequest is the request body for requesting a validation code
type SendValidationCodeRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// SignGuestbookRequest is the request body for signing the guestbook
type SignGuestbookRequest struct {
	Username       string `json:"username"`
	Message        string `json:"message"`
	ValidationCode string `json:"validationCode,omitempty"`
}

// ValidateUserRequest is the request body for redeeming a validation code
type ValidateUserRequest struct {
	ValidationCode string `json:"validationCode"`
}

// SendEmailRequest is the request body for the contact form
type SendEmailRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
	Subject string `json:"subject"`
}

// Decode reads a JSON body into dst. An empty body leaves dst untouched.
func Decode(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
