package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleUserResults returns a user's ranked names across all completed
// tournaments.
func (h *Handlers) handleUserResults(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "user")

	results, err := h.Results.GetUserResults(r.Context(), userName)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, results)
}

// handleRatingHistory returns the rating-over-time samples for one of
// a user's names.
func (h *Handlers) handleRatingHistory(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "user")
	name := chi.URLParam(r, "name")

	history, err := h.Results.GetRatingHistory(r.Context(), userName, name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, history)
}

// handleCatalogStats returns catalog-wide aggregates for every name
func (h *Handlers) handleCatalogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Results.GetCatalogStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}

// handleGetPreferences returns a user's stored preferences, falling
// back to defaults for unknown users.
func (h *Handlers) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "user")

	prefs, err := h.Prefs.GetPreferences(r.Context(), userName)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(prefs)
}

// handleSavePreferences replaces a user's stored preferences
func (h *Handlers) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "user")

	var req PreferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Prefs.SavePreferences(r.Context(), userName, req.Preferences); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Preferences saved")
}
