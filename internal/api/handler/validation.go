package handler

import (
	"net/http"

	"github.com/anoveskey1/evbpmusic-backend/internal/api/request"
	"github.com/anoveskey1/evbpmusic-backend/internal/api/response"
	"github.com/anoveskey1/evbpmusic-backend/internal/model"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/signing"
)

// ValidationHandler handles issuing and redeeming validation codes
type ValidationHandler struct {
	workflow *signing.Workflow
}

// NewValidationHandler creates a new validation handler
func NewValidationHandler(workflow *signing.Workflow) *ValidationHandler {
	return &ValidationHandler{
		workflow: workflow,
	}
}

// SendCode handles POST /api/send-validation-code-to-email
func (h *ValidationHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req request.SendValidationCodeRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.workflow.RequestValidation(r.Context(), req.Username, req.Email); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: response.MessageCodeSent})
}

// Validate handles POST /api/validate-user
func (h *ValidationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateUserRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	signer, err := h.workflow.RedeemCode(r.Context(), model.ValidationCode(req.ValidationCode))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ValidateUserResponseFromModel(signer))
}
