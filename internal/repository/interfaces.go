package repository

import (
	"context"
	"encoding/json"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/models"
)

// NameRepository defines name-catalog data operations
type NameRepository interface {
	ListNameOptions(ctx context.Context) ([]models.NameOption, error)
	ListActiveNameOptions(ctx context.Context) ([]models.NameOption, error)
	GetNameOption(ctx context.Context, id int) (*models.NameOption, error)
	GetNameOptionByName(ctx context.Context, name string) (*models.NameOption, error)
	CreateNameOption(ctx context.Context, name, description string, categories []string) (int64, error)
	SetNameActive(ctx context.Context, id int, active bool) error
	UpdateNameStats(ctx context.Context, name string, popularityDelta, tournamentsDelta int) error
}

// RatingRepository defines per-user rating data operations
type RatingRepository interface {
	GetUserRatings(ctx context.Context, userName string) (map[string]models.Rating, error)
	GetUserRating(ctx context.Context, userName, name string) (*models.Rating, error)
	SaveUserRating(ctx context.Context, userName, name string, r models.Rating) error
	AppendRatingHistory(ctx context.Context, userName, name string, sample models.RatingSample) error
	GetRatingHistory(ctx context.Context, userName, name string) ([]models.RatingSample, error)
	SetNameHidden(ctx context.Context, userName, name string, hidden bool) error
	ListHiddenNames(ctx context.Context, userName string) ([]string, error)
}

// SessionRepository defines tournament session snapshot operations.
// LoadSession returns ErrNotFound when no snapshot exists for the
// fingerprint.
type SessionRepository interface {
	LoadSession(ctx context.Context, fingerprint string) (*models.SessionState, error)
	SaveSession(ctx context.Context, fingerprint string, state *models.SessionState) error
	DeleteSession(ctx context.Context, fingerprint string) error
}

// UserRepository defines user preference operations. Preferences are an
// opaque JSON blob owned by the UI; the server stores and serves them
// verbatim.
type UserRepository interface {
	GetPreferences(ctx context.Context, userName string) (json.RawMessage, error)
	SavePreferences(ctx context.Context, userName string, prefs json.RawMessage) error
}

// FullRepository combines all repository interfaces.
// Use this when a service needs access to multiple domains.
type FullRepository interface {
	NameRepository
	RatingRepository
	SessionRepository
	UserRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
