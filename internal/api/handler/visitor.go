package handler

import (
	"net/http"

	"github.com/anoveskey1/evbpmusic-backend/internal/api/response"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/visitor"
)

// VisitorHandler handles the visitor counter
type VisitorHandler struct {
	counter *visitor.Counter
}

// NewVisitorHandler creates a new visitor handler
func NewVisitorHandler(counter *visitor.Counter) *VisitorHandler {
	return &VisitorHandler{
		counter: counter,
	}
}

// Count handles GET /api/visitor-count. Every call counts as a visit.
func (h *VisitorHandler) Count(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.VisitorCount{Count: h.counter.Increment()})
}
