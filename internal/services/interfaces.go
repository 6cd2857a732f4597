package services

import (
	"context"
	"encoding/json"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/models"
)

// NameServicer defines the interface for name catalog operations
type NameServicer interface {
	ListNames(ctx context.Context) ([]models.NameOption, error)
	ListAvailableNames(ctx context.Context, userName string) ([]models.NameOption, error)
	CreateName(ctx context.Context, name, description string, categories []string) (*models.NameOption, error)
	SetActive(ctx context.Context, id int, active bool) error
	SetHidden(ctx context.Context, userName, name string, hidden bool) error
}

// TournamentServicer defines the interface for tournament operations
type TournamentServicer interface {
	StartSession(ctx context.Context, userName string, nameIDs []int) (*SessionView, error)
	GetSession(fingerprint string) (*SessionView, error)
	Vote(ctx context.Context, fingerprint, outcome string) (*VoteResult, error)
	Undo(ctx context.Context, fingerprint string) (*VoteResult, error)
	Standings(fingerprint string) ([]models.FinalResult, error)
	SetBroadcaster(b Broadcaster)
}

// ResultsServicer defines the interface for ranking and statistics reads
type ResultsServicer interface {
	GetUserResults(ctx context.Context, userName string) (*UserResults, error)
	GetRatingHistory(ctx context.Context, userName, name string) ([]models.RatingSample, error)
	GetCatalogStats(ctx context.Context) ([]models.NameOption, error)
}

// PrefsServicer defines the interface for user preference storage
type PrefsServicer interface {
	GetPreferences(ctx context.Context, userName string) (json.RawMessage, error)
	SavePreferences(ctx context.Context, userName string, prefs json.RawMessage) error
}

// Ensure concrete types implement interfaces
var (
	_ NameServicer       = (*NameService)(nil)
	_ TournamentServicer = (*TournamentService)(nil)
	_ ResultsServicer    = (*ResultsService)(nil)
	_ PrefsServicer      = (*PrefsService)(nil)
)
