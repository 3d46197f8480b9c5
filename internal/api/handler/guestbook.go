package handler

import (
	"net/http"

	"github.com/anoveskey1/evbpmusic-backend/internal/api/request"
	"github.com/anoveskey1/evbpmusic-backend/internal/api/response"
	"github.com/anoveskey1/evbpmusic-backend/internal/model"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/guestbook"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/signing"
)

// GuestbookHandler handles the guestbook read and sign endpoints
type GuestbookHandler struct {
	ledger   *guestbook.Ledger
	workflow *signing.Workflow
}

// NewGuestbookHandler creates a new guestbook handler
func NewGuestbookHandler(ledger *guestbook.Ledger, workflow *signing.Workflow) *GuestbookHandler {
	return &GuestbookHandler{
		ledger:   ledger,
		workflow: workflow,
	}
}

// List handles GET /api/guestbook-entries
func (h *GuestbookHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledger.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuestbookEntriesFromModel(entries))
}

// Sign handles POST /api/sign-guestbook
func (h *GuestbookHandler) Sign(w http.ResponseWriter, r *http.Request) {
	var req request.SignGuestbookRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	_, err := h.workflow.SubmitEntry(r.Context(), req.Username, req.Message, model.ValidationCode(req.ValidationCode))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Message{Message: response.MessageSigned})
}
