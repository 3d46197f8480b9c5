package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/anoveskey1/evbpmusic-backend/internal/api/handler"
	apimiddleware "github.com/anoveskey1/evbpmusic-backend/internal/api/middleware"
	"github.com/anoveskey1/evbpmusic-backend/internal/api/response"
	"github.com/anoveskey1/evbpmusic-backend/internal/middleware"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/guestbook"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/signing"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/visitor"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Ledger         *guestbook.Ledger
	Workflow       *signing.Workflow
	Counter        *visitor.Counter
	AllowedOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	guestbookHandler := handler.NewGuestbookHandler(cfg.Ledger, cfg.Workflow)
	validationHandler := handler.NewValidationHandler(cfg.Workflow)
	contactHandler := handler.NewContactHandler(cfg.Workflow)
	visitorHandler := handler.NewVisitorHandler(cfg.Counter)

	r.HandleFunc("/", rootHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/visitor-count", visitorHandler.Count).Methods(http.MethodGet)

	// Guestbook routes
	api.HandleFunc("/guestbook-entries", guestbookHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/sign-guestbook", guestbookHandler.Sign).Methods(http.MethodPost)

	// Validation code routes
	api.HandleFunc("/send-validation-code-to-email", validationHandler.SendCode).Methods(http.MethodPost)
	api.HandleFunc("/validate-user", validationHandler.Validate).Methods(http.MethodPost)

	api.HandleFunc("/send-email", contactHandler.Send).Methods(http.MethodPost)

	// Middleware wraps the whole router so CORS sees preflight requests
	// that match no route method.
	var h http.Handler = r
	h = apimiddleware.CORS(cfg.AllowedOrigins)(h)
	h = middleware.Logging(cfg.Logger)(h)
	h = apimiddleware.Recovery(cfg.Logger)(h)
	h = middleware.RequestID()(h)
	return h
}

func rootHandler(w http.ResponseWriter, _ *http.Request) {
	response.Text(w, http.StatusOK, response.MessageRoot)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
