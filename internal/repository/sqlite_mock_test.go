package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/models"
)

// TestListNameOptions_QueryError tests database failure propagation
func TestListNameOptions_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM name_options").WillReturnError(errors.New("db gone"))

	if _, err := repo.ListNameOptions(ctx); err == nil {
		t.Error("expected error from failed query, got nil")
	}
}

// TestListNameOptions_ScanError tests row scanning error
func TestListNameOptions_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	// id should be int, not string
	rows := sqlmock.NewRows([]string{"id", "name", "description", "avg_rating", "popularity_score", "total_tournaments", "is_active", "categories"}).
		AddRow("bad-id", "Luna", nil, 1500, 0, 0, true, nil)

	mock.ExpectQuery("SELECT (.+) FROM name_options").WillReturnRows(rows)

	if _, err := repo.ListNameOptions(ctx); err == nil {
		t.Error("expected error from scan failure, got nil")
	}
}

// TestGetNameOption_CorruptCategories tests malformed categories JSON
func TestGetNameOption_CorruptCategories(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "avg_rating", "popularity_score", "total_tournaments", "is_active", "categories"}).
		AddRow(1, "Luna", nil, 1500, 0, 0, true, "{not json")

	mock.ExpectQuery("SELECT (.+) FROM name_options WHERE id").WillReturnRows(rows)

	if _, err := repo.GetNameOption(ctx, 1); err == nil {
		t.Error("expected error from corrupt categories JSON, got nil")
	}
}

// TestGetUserRatings_QueryError tests database failure propagation
func TestGetUserRatings_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM name_ratings").WillReturnError(errors.New("db gone"))

	if _, err := repo.GetUserRatings(ctx, "alice"); err == nil {
		t.Error("expected error from failed query, got nil")
	}
}

// TestGetRatingHistory_CorruptJSON tests malformed stored history
func TestGetRatingHistory_CorruptJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"rating_history"}).AddRow("[{broken")
	mock.ExpectQuery("SELECT rating_history FROM name_ratings").WillReturnRows(rows)

	if _, err := repo.GetRatingHistory(ctx, "alice", "Luna"); err == nil {
		t.Error("expected error from corrupt history JSON, got nil")
	}
}

// TestLoadSession_CorruptState tests malformed stored session state
func TestLoadSession_CorruptState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"state"}).AddRow("{truncated")
	mock.ExpectQuery("SELECT state FROM tournament_sessions").WillReturnRows(rows)

	if _, err := repo.LoadSession(ctx, "abc123"); err == nil {
		t.Error("expected error from corrupt session state, got nil")
	}
}

// TestSaveUserRating_ExecError tests write failure propagation
func TestSaveUserRating_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO name_ratings").WillReturnError(errors.New("disk full"))

	if err := repo.SaveUserRating(ctx, "alice", "Luna", models.Rating{Rating: 1500}); err == nil {
		t.Error("expected error from failed exec, got nil")
	}
}
