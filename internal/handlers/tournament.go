package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

// handleStartTournament starts or resumes a tournament session
func (h *Handlers) handleStartTournament(w http.ResponseWriter, r *http.Request) {
	var req TournamentStartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	session, err := h.Tournament.StartSession(r.Context(), req.UserName, req.NameIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, session)
}

// handleGetTournament returns the current state of a session
func (h *Handlers) handleGetTournament(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")

	session, err := h.Tournament.GetSession(fingerprint)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, session)
}

// handleVote resolves the current match of a session
func (h *Handlers) handleVote(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")

	var req VoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Tournament.Vote(r.Context(), fingerprint, req.Outcome)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleUndo retracts the most recent vote of a session
func (h *Handlers) handleUndo(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")

	result, err := h.Tournament.Undo(r.Context(), fingerprint)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleStandings returns the live standings of a session
func (h *Handlers) handleStandings(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")

	standings, err := h.Tournament.Standings(fingerprint)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, standings)
}

// handleTournamentQR returns a PNG QR code encoding the session's
// resume link, so a session started on one device can continue on
// another.
func (h *Handlers) handleTournamentQR(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")

	// Only issue QR codes for sessions that exist
	if _, err := h.Tournament.GetSession(fingerprint); err != nil {
		respondError(w, err)
		return
	}

	resumeURL := h.baseURL + "/api/tournaments/" + fingerprint
	png, err := qrcode.Encode(resumeURL, qrcode.Medium, 256)
	if err != nil {
		respondError(w, InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
