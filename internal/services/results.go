package services

import (
	"context"
	"sort"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/errors"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/logger"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/models"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/rating"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/repository"
)

// ResultsServiceRepository defines the repository methods needed by
// ResultsService
type ResultsServiceRepository interface {
	repository.NameRepository
	repository.RatingRepository
}

// ResultsService handles ranking and statistics reads
type ResultsService struct {
	log  logger.Logger
	repo ResultsServiceRepository
}

// NewResultsService creates a new ResultsService
func NewResultsService(log logger.Logger, repo ResultsServiceRepository) *ResultsService {
	return &ResultsService{log: log, repo: repo}
}

// RankedName is one entry of a user's personal ranking.
type RankedName struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// UserResults is a user's full ranking across every name they have rated.
type UserResults struct {
	UserName string       `json:"user_name"`
	Names    []RankedName `json:"names"`
}

// GetUserResults returns a user's names ordered by rating, best first.
// Ties break alphabetically for stable output.
func (s *ResultsService) GetUserResults(ctx context.Context, userName string) (*UserResults, error) {
	if userName == "" {
		return nil, ErrUserRequired
	}

	ratings, err := s.repo.GetUserRatings(ctx, userName)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedName, 0, len(ratings))
	for name, rec := range ratings {
		ranked = append(ranked, RankedName{
			Name:   name,
			Rating: rating.Clamp(rec.Rating),
			Wins:   rec.Wins,
			Losses: rec.Losses,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].Name < ranked[j].Name
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return &UserResults{UserName: userName, Names: ranked}, nil
}

// GetRatingHistory returns the timestamped rating samples recorded for
// one user/name pair at tournament completions.
func (s *ResultsService) GetRatingHistory(ctx context.Context, userName, name string) ([]models.RatingSample, error) {
	if userName == "" {
		return nil, ErrUserRequired
	}
	if _, err := s.repo.GetNameOptionByName(ctx, name); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("name %q not in catalog", name)
		}
		return nil, err
	}
	return s.repo.GetRatingHistory(ctx, userName, name)
}

// GetCatalogStats returns the catalog with aggregate ratings and
// popularity, most popular first.
func (s *ResultsService) GetCatalogStats(ctx context.Context) ([]models.NameOption, error) {
	options, err := s.repo.ListNameOptions(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].PopularityScore != options[j].PopularityScore {
			return options[i].PopularityScore > options[j].PopularityScore
		}
		if options[i].AvgRating != options[j].AvgRating {
			return options[i].AvgRating > options[j].AvgRating
		}
		return options[i].Name < options[j].Name
	})
	return options, nil
}
