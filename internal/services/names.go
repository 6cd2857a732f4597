package services

import (
	"context"
	"strings"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/logger"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/models"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/repository"
)

// NameServiceRepository defines the repository methods needed by NameService
type NameServiceRepository interface {
	repository.NameRepository
	repository.RatingRepository
}

// NameService handles the candidate name catalog: listing, creation,
// activation, and per-user hiding.
type NameService struct {
	log  logger.Logger
	repo NameServiceRepository
}

// NewNameService creates a new NameService
func NewNameService(log logger.Logger, repo NameServiceRepository) *NameService {
	return &NameService{log: log, repo: repo}
}

// ListNames returns the full catalog, including inactive names.
func (s *NameService) ListNames(ctx context.Context) ([]models.NameOption, error) {
	return s.repo.ListNameOptions(ctx)
}

// ListAvailableNames returns the names a user can run a tournament over:
// active catalog entries minus the ones the user has hidden.
func (s *NameService) ListAvailableNames(ctx context.Context, userName string) ([]models.NameOption, error) {
	if userName == "" {
		return nil, ErrUserRequired
	}

	active, err := s.repo.ListActiveNameOptions(ctx)
	if err != nil {
		return nil, err
	}
	hiddenList, err := s.repo.ListHiddenNames(ctx, userName)
	if err != nil {
		return nil, err
	}

	hidden := make(map[string]bool, len(hiddenList))
	for _, name := range hiddenList {
		hidden[name] = true
	}
	var available []models.NameOption
	for _, opt := range active {
		if !hidden[opt.Name] {
			available = append(available, opt)
		}
	}
	return available, nil
}

// CreateName adds a new name to the catalog.
func (s *NameService) CreateName(ctx context.Context, name, description string, categories []string) (*models.NameOption, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.repo.GetNameOptionByName(ctx, name); err == nil {
		return nil, ErrNameExists
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	id, err := s.repo.CreateNameOption(ctx, name, description, categories)
	if err != nil {
		return nil, err
	}
	s.log.Info("Name created", "name", name, "id", id)
	return s.repo.GetNameOption(ctx, int(id))
}

// SetActive toggles a name's catalog-wide availability.
func (s *NameService) SetActive(ctx context.Context, id int, active bool) error {
	if err := s.repo.SetNameActive(ctx, id, active); err != nil {
		if err == repository.ErrNotFound {
			return ErrNameNotFound
		}
		return err
	}
	s.log.Info("Name availability changed", "id", id, "active", active)
	return nil
}

// SetHidden hides or unhides a name from one user's future tournaments.
// The name must exist in the catalog.
func (s *NameService) SetHidden(ctx context.Context, userName, name string, hidden bool) error {
	if userName == "" {
		return ErrUserRequired
	}
	if _, err := s.repo.GetNameOptionByName(ctx, name); err != nil {
		if err == repository.ErrNotFound {
			return ErrNameNotFound
		}
		return err
	}
	return s.repo.SetNameHidden(ctx, userName, name, hidden)
}
