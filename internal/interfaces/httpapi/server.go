// Package httpapi exposes the insight, stats, and admin operations over
// HTTP with a Google JSON style response envelope.
package httpapi

import (
	"net/http"

	"github.com/matchscreener/matchscreener/internal/platform/logging"
)

// NewRouter wires the public and admin routes behind the shared middleware
// chain. Admin routes are additionally guarded by a static bearer token.
func NewRouter(h *Handler, adminToken string, allowedOrigins []string, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Healthz)

	mux.HandleFunc("GET /v1/insights", h.GetMatchInsights)
	mux.HandleFunc("GET /v1/teams/{team}/stats", h.GetTeamStats)
	mux.HandleFunc("GET /v1/h2h", h.GetHeadToHead)
	mux.HandleFunc("GET /v1/leagues/{code}/overview", h.GetLeagueOverview)

	mux.Handle("GET /v1/admin/export", RequireAdminToken(adminToken, http.HandlerFunc(h.ExportDataset)))
	mux.Handle("POST /v1/admin/refresh", RequireAdminToken(adminToken, http.HandlerFunc(h.RefreshDataset)))

	var root http.Handler = mux
	root = recoverPanic(logger, root)
	root = CORS(allowedOrigins, root)
	root = RequestLogging(logger, root)
	root = RequestTracing(root)
	return root
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
				)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
