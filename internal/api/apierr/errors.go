package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anoveskey1/evbpmusic-backend/internal/model"
)

// APIError is the coded error body: {"code": ..., "message": ...}
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PlainError is the uncoded error body: {"error": ...}
type PlainError struct {
	Error string `json:"error"`
}

// Error codes
const (
	CodeDataUnavailable   = "DATA_UNAVAILABLE"
	CodeUserAlreadyExists = "USER_ALREADY_EXISTS"
	CodeUserEntryNotFound = "USER_ENTRY_NOT_FOUND"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeOriginNotAllowed  = "ORIGIN_NOT_ALLOWED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Fixed messages
const (
	MessageMissingFields     = "Missing required fields."
	MessageUserAlreadyExists = "Everybody gets one. If you feel you have reached this message in error, please contact us - include your email and username - and we'll see what we can do to help!"
	MessageUserEntryNotFound = "User entry not found. Please contact the site admin."
	MessageNoEntriesFound    = "No guestbook entries found."
	MessageSendFailed        = "Failed to send email"
	MessageInternalError     = "Internal server error"
)

// httpError combines an HTTP status code with the body written for it
type httpError struct {
	status int
	body   any
	msg    string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.msg
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.body)
}

func coded(status int, code, message string) *httpError {
	return &httpError{status, APIError{code, message}, message}
}

func plain(status int, message string) *httpError {
	return &httpError{status, PlainError{message}, message}
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrMissingFields):
		return plain(http.StatusBadRequest, MessageMissingFields)
	case errors.Is(err, model.ErrUserAlreadyExists):
		return coded(http.StatusBadRequest, CodeUserAlreadyExists, MessageUserAlreadyExists)
	case errors.Is(err, model.ErrUserEntryNotFound):
		return coded(http.StatusUnauthorized, CodeUserEntryNotFound, MessageUserEntryNotFound)
	case errors.Is(err, model.ErrNoEntriesFound):
		return coded(http.StatusNotFound, CodeDataUnavailable, MessageNoEntriesFound)
	case errors.Is(err, model.ErrDeliveryFailed):
		return plain(http.StatusInternalServerError, MessageSendFailed)
	default:
		return coded(http.StatusInternalServerError, CodeInternalError, MessageInternalError)
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return coded(http.StatusBadRequest, CodeInvalidRequest, message)
}

// NewOriginNotAllowedError rejects a cross-origin request from an unlisted origin
func NewOriginNotAllowedError() error {
	return coded(http.StatusForbidden, CodeOriginNotAllowed, "Not allowed by CORS")
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return coded(http.StatusInternalServerError, CodeInternalError, MessageInternalError)
}
