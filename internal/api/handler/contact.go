package handler

import (
	"net/http"

	"github.com/anoveskey1/evbpmusic-backend/internal/api/request"
	"github.com/anoveskey1/evbpmusic-backend/internal/api/response"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/signing"
)

// ContactHandler handles the contact form
type ContactHandler struct {
	workflow *signing.Workflow
}

// NewContactHandler creates a new contact handler
func NewContactHandler(workflow *signing.Workflow) *ContactHandler {
	return &ContactHandler{
		workflow: workflow,
	}
}

// Send handles POST /api/send-email
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req request.SendEmailRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.workflow.SendContactEmail(r.Context(), req.Email, req.Subject, req.Message); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: response.MessageEmailSent})
}
