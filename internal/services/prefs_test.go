package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/logger"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/repository"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/services"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/testutil"
)

func TestPrefsService_DefaultsForNewUser(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewPrefsService(logger.New(), repo)

	prefs, err := svc.GetPreferences(context.Background(), "newcomer")
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(prefs, &decoded); err != nil {
		t.Fatalf("defaults are not valid JSON: %v", err)
	}
	if decoded["theme_preference"] != "dark" {
		t.Errorf("default theme = %v, want dark", decoded["theme_preference"])
	}
	if decoded["sound_enabled"] != true {
		t.Errorf("default sound = %v, want true", decoded["sound_enabled"])
	}
}

func TestPrefsService_RoundTrip(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewPrefsService(logger.New(), repo)
	ctx := context.Background()

	saved := json.RawMessage(`{"theme_preference":"light","sound_enabled":false}`)
	if err := svc.SavePreferences(ctx, "alice", saved); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	got, err := svc.GetPreferences(ctx, "alice")
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if string(got) != string(saved) {
		t.Errorf("preferences = %s, want %s", got, saved)
	}
}

func TestPrefsService_UserRequired(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewPrefsService(logger.New(), repo)

	if _, err := svc.GetPreferences(context.Background(), ""); err != services.ErrUserRequired {
		t.Errorf("expected ErrUserRequired, got %v", err)
	}
	if err := svc.SavePreferences(context.Background(), "", nil); err != services.ErrUserRequired {
		t.Errorf("expected ErrUserRequired, got %v", err)
	}
}

func TestPrefsService_RejectsInvalidJSON(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewPrefsService(logger.New(), repo)

	err := svc.SavePreferences(context.Background(), "alice", json.RawMessage(`{broken`))
	if err != repository.ErrInvalidPreferences {
		t.Errorf("expected ErrInvalidPreferences, got %v", err)
	}
}
