package handlers

import (
	"github.com/guitarbeat/my-cat-folio-sub002/internal/services"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/websocket"
)

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Names      services.NameServicer
	Tournament services.TournamentServicer
	Results    services.ResultsServicer
	Prefs      services.PrefsServicer
	Hub        *websocket.Hub
	Log        HTTPLogger

	// baseURL is the externally visible address used in session
	// resume links embedded in QR codes.
	baseURL string
}

// New creates a new Handlers instance with all dependencies
func New(
	names services.NameServicer,
	tournament services.TournamentServicer,
	results services.ResultsServicer,
	prefs services.PrefsServicer,
	hub *websocket.Hub,
	log HTTPLogger,
	baseURL string,
) *Handlers {
	return &Handlers{
		Names:      names,
		Tournament: tournament,
		Results:    results,
		Prefs:      prefs,
		Hub:        hub,
		Log:        log,
		baseURL:    baseURL,
	}
}
