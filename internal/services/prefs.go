package services

import (
	"context"
	"encoding/json"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/logger"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/repository"
)

// defaultPreferences matches what a brand-new user gets before they
// change anything. The server stores the blob verbatim; only the UI
// interprets it.
var defaultPreferences = json.RawMessage(`{
	"sound_enabled": true,
	"theme_preference": "dark",
	"preferred_categories": [],
	"rating_display_preference": "elo",
	"tournament_size_preference": 8
}`)

// PrefsService handles user preference storage
type PrefsService struct {
	log  logger.Logger
	repo repository.UserRepository
}

// NewPrefsService creates a new PrefsService
func NewPrefsService(log logger.Logger, repo repository.UserRepository) *PrefsService {
	return &PrefsService{log: log, repo: repo}
}

// GetPreferences returns a user's preference blob, or the defaults when
// the user has never saved any.
func (s *PrefsService) GetPreferences(ctx context.Context, userName string) (json.RawMessage, error) {
	if userName == "" {
		return nil, ErrUserRequired
	}
	prefs, err := s.repo.GetPreferences(ctx, userName)
	if err == repository.ErrNotFound {
		return defaultPreferences, nil
	}
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

// SavePreferences stores a user's preference blob verbatim.
func (s *PrefsService) SavePreferences(ctx context.Context, userName string, prefs json.RawMessage) error {
	if userName == "" {
		return ErrUserRequired
	}
	return s.repo.SavePreferences(ctx, userName, prefs)
}
