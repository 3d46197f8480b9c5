package middleware

import (
	"net/http"
	"slices"

	"github.com/anoveskey1/evbpmusic-backend/internal/api/apierr"
)

const defaultAllowedMethods = "GET,HEAD,PUT,PATCH,POST,DELETE"

// CORS admits requests without an Origin header and requests from one of
// allowedOrigins; any other origin is rejected with 403.
// Preflight requests from an allowed origin are answered with 204.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !slices.Contains(allowedOrigins, origin) {
				apierr.WriteError(w, apierr.NewOriginNotAllowedError())
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", defaultAllowedMethods)
				if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
					h.Set("Access-Control-Allow-Headers", reqHeaders)
					h.Add("Vary", "Access-Control-Request-Headers")
				}
				h.Set("Content-Length", "0")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
