package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health
	r.Get("/healthz", h.handleHealth)

	// WebSocket
	r.Get("/ws", h.Hub.ServeWs)

	// Name catalog
	r.Get("/api/names", h.handleListNames)
	r.Post("/api/names", h.handleCreateName)
	r.Put("/api/names/{id}/active", h.handleSetNameActive)
	r.Put("/api/names/{name}/hidden", h.handleSetNameHidden)

	// Tournaments
	r.Post("/api/tournaments", h.handleStartTournament)
	r.Get("/api/tournaments/{fingerprint}", h.handleGetTournament)
	r.Post("/api/tournaments/{fingerprint}/vote", h.handleVote)
	r.Post("/api/tournaments/{fingerprint}/undo", h.handleUndo)
	r.Get("/api/tournaments/{fingerprint}/standings", h.handleStandings)
	r.Get("/api/tournaments/{fingerprint}/qr", h.handleTournamentQR)

	// Results & stats
	r.Get("/api/results/{user}", h.handleUserResults)
	r.Get("/api/results/{user}/history/{name}", h.handleRatingHistory)
	r.Get("/api/stats/names", h.handleCatalogStats)

	// User preferences
	r.Get("/api/users/{user}/preferences", h.handleGetPreferences)
	r.Put("/api/users/{user}/preferences", h.handleSavePreferences)

	return r
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, map[string]string{"status": "ok"})
}
