package services_test

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/guitarbeat/my-cat-folio-sub002/internal/errors"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/logger"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/models"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/repository/mock"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/services"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/testutil"
)

func TestResultsService_UserRanking(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewResultsService(logger.New(), repo)
	ctx := context.Background()

	repo.SaveUserRating(ctx, "alice", "Luna", models.Rating{Rating: 1700, Wins: 5, Losses: 1})
	repo.SaveUserRating(ctx, "alice", "Shadow", models.Rating{Rating: 1400, Wins: 1, Losses: 5})
	repo.SaveUserRating(ctx, "alice", "Misty", models.Rating{Rating: 1550, Wins: 3, Losses: 3})

	results, err := svc.GetUserResults(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserResults failed: %v", err)
	}
	if len(results.Names) != 3 {
		t.Fatalf("expected 3 ranked names, got %d", len(results.Names))
	}

	want := []string{"Luna", "Misty", "Shadow"}
	for i, name := range want {
		if results.Names[i].Name != name {
			t.Errorf("rank %d = %s, want %s", i+1, results.Names[i].Name, name)
		}
		if results.Names[i].Rank != i+1 {
			t.Errorf("rank field = %d, want %d", results.Names[i].Rank, i+1)
		}
	}
}

func TestResultsService_TiesBreakAlphabetically(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewResultsService(logger.New(), repo)
	ctx := context.Background()

	repo.SaveUserRating(ctx, "alice", "Ziggy", models.Rating{Rating: 1500})
	repo.SaveUserRating(ctx, "alice", "Albert", models.Rating{Rating: 1500})

	results, err := svc.GetUserResults(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if results.Names[0].Name != "Albert" || results.Names[1].Name != "Ziggy" {
		t.Errorf("tie order wrong: %v", results.Names)
	}
}

func TestResultsService_ClampsStoredRatings(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewResultsService(logger.New(), repo)
	ctx := context.Background()

	repo.SaveUserRating(ctx, "alice", "Luna", models.Rating{Rating: 2300})

	results, err := svc.GetUserResults(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if results.Names[0].Rating != 2000 {
		t.Errorf("rating = %d, want clamped to 2000", results.Names[0].Rating)
	}
}

func TestResultsService_UserRequired(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewResultsService(logger.New(), repo)

	if _, err := svc.GetUserResults(context.Background(), ""); err != services.ErrUserRequired {
		t.Errorf("expected ErrUserRequired, got %v", err)
	}
	if _, err := svc.GetRatingHistory(context.Background(), "", "Luna"); err != services.ErrUserRequired {
		t.Errorf("expected ErrUserRequired, got %v", err)
	}
}

func TestResultsService_CatalogStatsOrdering(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewResultsService(logger.New(), repo)
	ctx := context.Background()

	repo.CreateNameOption(ctx, "Luna", "", nil)
	repo.CreateNameOption(ctx, "Shadow", "", nil)
	repo.CreateNameOption(ctx, "Misty", "", nil)
	repo.UpdateNameStats(ctx, "Shadow", 3, 3)
	repo.UpdateNameStats(ctx, "Misty", 1, 1)

	stats, err := svc.GetCatalogStats(ctx)
	if err != nil {
		t.Fatalf("GetCatalogStats failed: %v", err)
	}
	want := []string{"Shadow", "Misty", "Luna"}
	for i, name := range want {
		if stats[i].Name != name {
			t.Errorf("position %d = %s, want %s", i, stats[i].Name, name)
		}
	}
}

func TestResultsService_HistoryUnknownName(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewResultsService(logger.New(), repo)

	_, err := svc.GetRatingHistory(context.Background(), "alice", "Nobody")
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.ErrNotFound {
		t.Errorf("expected not-found error for unknown name, got %v", err)
	}
}

func TestResultsService_PropagatesRepositoryError(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	mockRepo := mock.NewRepository(repo)
	mockRepo.GetUserRatingsError = errors.New("database error")
	svc := services.NewResultsService(logger.New(), mockRepo)

	if _, err := svc.GetUserResults(context.Background(), "alice"); err == nil {
		t.Error("expected error from failing repository, got nil")
	}
}
