package mock

import (
	"context"
	"encoding/json"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/models"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database
// manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.SaveSessionError = errors.New("database error")
//	svc := services.NewTournamentService(log, mockRepo)
//	// session saves will now fail with the injected error
type Repository struct {
	repository.FullRepository

	// ===== Name Errors =====
	ListNameOptionsError       error
	ListActiveNameOptionsError error
	GetNameOptionError         error
	GetNameOptionByNameError   error
	CreateNameOptionError      error
	SetNameActiveError         error
	UpdateNameStatsError       error

	// ===== Rating Errors =====
	GetUserRatingsError      error
	GetUserRatingError       error
	SaveUserRatingError      error
	AppendRatingHistoryError error
	GetRatingHistoryError    error
	SetNameHiddenError       error
	ListHiddenNamesError     error

	// ===== Session Errors =====
	LoadSessionError   error
	SaveSessionError   error
	DeleteSessionError error

	// ===== Preference Errors =====
	GetPreferencesError  error
	SavePreferencesError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{FullRepository: real}
}

func (m *Repository) ListNameOptions(ctx context.Context) ([]models.NameOption, error) {
	if m.ListNameOptionsError != nil {
		return nil, m.ListNameOptionsError
	}
	return m.FullRepository.ListNameOptions(ctx)
}

func (m *Repository) ListActiveNameOptions(ctx context.Context) ([]models.NameOption, error) {
	if m.ListActiveNameOptionsError != nil {
		return nil, m.ListActiveNameOptionsError
	}
	return m.FullRepository.ListActiveNameOptions(ctx)
}

func (m *Repository) GetNameOption(ctx context.Context, id int) (*models.NameOption, error) {
	if m.GetNameOptionError != nil {
		return nil, m.GetNameOptionError
	}
	return m.FullRepository.GetNameOption(ctx, id)
}

func (m *Repository) GetNameOptionByName(ctx context.Context, name string) (*models.NameOption, error) {
	if m.GetNameOptionByNameError != nil {
		return nil, m.GetNameOptionByNameError
	}
	return m.FullRepository.GetNameOptionByName(ctx, name)
}

func (m *Repository) CreateNameOption(ctx context.Context, name, description string, categories []string) (int64, error) {
	if m.CreateNameOptionError != nil {
		return 0, m.CreateNameOptionError
	}
	return m.FullRepository.CreateNameOption(ctx, name, description, categories)
}

func (m *Repository) SetNameActive(ctx context.Context, id int, active bool) error {
	if m.SetNameActiveError != nil {
		return m.SetNameActiveError
	}
	return m.FullRepository.SetNameActive(ctx, id, active)
}

func (m *Repository) UpdateNameStats(ctx context.Context, name string, popularityDelta, tournamentsDelta int) error {
	if m.UpdateNameStatsError != nil {
		return m.UpdateNameStatsError
	}
	return m.FullRepository.UpdateNameStats(ctx, name, popularityDelta, tournamentsDelta)
}

func (m *Repository) GetUserRatings(ctx context.Context, userName string) (map[string]models.Rating, error) {
	if m.GetUserRatingsError != nil {
		return nil, m.GetUserRatingsError
	}
	return m.FullRepository.GetUserRatings(ctx, userName)
}

func (m *Repository) GetUserRating(ctx context.Context, userName, name string) (*models.Rating, error) {
	if m.GetUserRatingError != nil {
		return nil, m.GetUserRatingError
	}
	return m.FullRepository.GetUserRating(ctx, userName, name)
}

func (m *Repository) SaveUserRating(ctx context.Context, userName, name string, r models.Rating) error {
	if m.SaveUserRatingError != nil {
		return m.SaveUserRatingError
	}
	return m.FullRepository.SaveUserRating(ctx, userName, name, r)
}

func (m *Repository) AppendRatingHistory(ctx context.Context, userName, name string, sample models.RatingSample) error {
	if m.AppendRatingHistoryError != nil {
		return m.AppendRatingHistoryError
	}
	return m.FullRepository.AppendRatingHistory(ctx, userName, name, sample)
}

func (m *Repository) GetRatingHistory(ctx context.Context, userName, name string) ([]models.RatingSample, error) {
	if m.GetRatingHistoryError != nil {
		return nil, m.GetRatingHistoryError
	}
	return m.FullRepository.GetRatingHistory(ctx, userName, name)
}

func (m *Repository) SetNameHidden(ctx context.Context, userName, name string, hidden bool) error {
	if m.SetNameHiddenError != nil {
		return m.SetNameHiddenError
	}
	return m.FullRepository.SetNameHidden(ctx, userName, name, hidden)
}

func (m *Repository) ListHiddenNames(ctx context.Context, userName string) ([]string, error) {
	if m.ListHiddenNamesError != nil {
		return nil, m.ListHiddenNamesError
	}
	return m.FullRepository.ListHiddenNames(ctx, userName)
}

func (m *Repository) LoadSession(ctx context.Context, fingerprint string) (*models.SessionState, error) {
	if m.LoadSessionError != nil {
		return nil, m.LoadSessionError
	}
	return m.FullRepository.LoadSession(ctx, fingerprint)
}

func (m *Repository) SaveSession(ctx context.Context, fingerprint string, state *models.SessionState) error {
	if m.SaveSessionError != nil {
		return m.SaveSessionError
	}
	return m.FullRepository.SaveSession(ctx, fingerprint, state)
}

func (m *Repository) DeleteSession(ctx context.Context, fingerprint string) error {
	if m.DeleteSessionError != nil {
		return m.DeleteSessionError
	}
	return m.FullRepository.DeleteSession(ctx, fingerprint)
}

func (m *Repository) GetPreferences(ctx context.Context, userName string) (json.RawMessage, error) {
	if m.GetPreferencesError != nil {
		return nil, m.GetPreferencesError
	}
	return m.FullRepository.GetPreferences(ctx, userName)
}

func (m *Repository) SavePreferences(ctx context.Context, userName string, prefs json.RawMessage) error {
	if m.SavePreferencesError != nil {
		return m.SavePreferencesError
	}
	return m.FullRepository.SavePreferences(ctx, userName, prefs)
}
