package http

import (
	"log/slog"
	"net/http"

	"devevents/internal/delivery/http/controllers"
	"devevents/internal/delivery/http/middleware"
	"devevents/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes.
// When verifier is nil the mutating routes are public.
func NewRouter(devEvents *controllers.DevEventController, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	protect := func(next http.HandlerFunc) http.HandlerFunc { return next }
	if verifier != nil {
		protect = middleware.RequireAuth(verifier, logger)
	}

	// Dev events
	mux.HandleFunc("GET /api/dev-events", devEvents.List)
	mux.HandleFunc("GET /api/dev-events/{id}", devEvents.GetByID)
	mux.HandleFunc("POST /api/dev-events", protect(devEvents.Create))
	mux.HandleFunc("PUT /api/dev-events/{id}", protect(devEvents.Update))
	mux.HandleFunc("DELETE /api/dev-events/{id}", protect(devEvents.Delete))

	// Speakers
	mux.HandleFunc("POST /api/dev-events/{id}/speakers", protect(devEvents.AddSpeaker))
	mux.HandleFunc("GET /api/dev-events/{id}/speakers", devEvents.ListSpeakers)

	mux.HandleFunc("GET /health", Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /health [get]
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
