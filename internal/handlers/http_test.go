package handlers

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/errors"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/services"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/tournament"
)

func TestToAPIError_KindMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app not found", errors.NotFound("gone"), http.StatusNotFound, ErrCodeNotFound},
		{"app validation", errors.Validation("bad"), http.StatusBadRequest, ErrCodeValidation},
		{"app conflict", errors.Conflict("dup"), http.StatusConflict, ErrCodeConflict},
		{"app internal", errors.Internal(stderrors.New("boom")), http.StatusInternalServerError, ErrCodeInternalServer},
		{"candidate set", tournament.ErrInvalidCandidateSet, http.StatusBadRequest, ErrCodeValidation},
		{"session failed", tournament.ErrSessionFailed, http.StatusConflict, ErrCodeSessionFailed},
		{"session not found", services.ErrSessionNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"name not found", services.ErrNameNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"name exists", services.ErrNameExists, http.StatusConflict, ErrCodeConflict},
		{"user required", services.ErrUserRequired, http.StatusBadRequest, ErrCodeBadRequest},
		{"invalid outcome", services.ErrInvalidOutcome, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown error", stderrors.New("mystery"), http.StatusInternalServerError, ErrCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := ToAPIError(tt.err)
			if apiErr.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", apiErr.Code, tt.wantCode)
			}
		})
	}
}

func TestToAPIError_WrappedAppError(t *testing.T) {
	wrapped := errors.Wrap(stderrors.New("row missing"), errors.ErrNotFound, "name not found")
	apiErr := ToAPIError(wrapped)
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.Status)
	}
}

func TestAPIError_ErrorString(t *testing.T) {
	err := BadRequest("nope")
	if err.Error() != "nope" {
		t.Errorf("Error() = %q, want %q", err.Error(), "nope")
	}
}
