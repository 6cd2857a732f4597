package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleListNames returns the name catalog. With a user query parameter
// it returns only the names available to that user (active, not hidden).
func (h *Handlers) handleListNames(w http.ResponseWriter, r *http.Request) {
	if user := r.URL.Query().Get("user"); user != "" {
		names, err := h.Names.ListAvailableNames(r.Context(), user)
		if err != nil {
			respondError(w, err)
			return
		}
		respondOK(w, names)
		return
	}

	names, err := h.Names.ListNames(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, names)
}

// handleCreateName adds a name to the catalog
func (h *Handlers) handleCreateName(w http.ResponseWriter, r *http.Request) {
	var req NameCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	opt, err := h.Names.CreateName(r.Context(), req.Name, req.Description, req.Categories)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, opt)
}

// handleSetNameActive toggles a name's catalog-wide availability
func (h *Handlers) handleSetNameActive(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req NameActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Names.SetActive(r.Context(), id, req.Active); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Name updated")
}

// handleSetNameHidden hides or unhides a name for one user
func (h *Handlers) handleSetNameHidden(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respondError(w, BadRequest("Missing name parameter"))
		return
	}

	var req NameHiddenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Names.SetHidden(r.Context(), req.UserName, name, req.Hidden); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Name updated")
}
