package errors

import (
	"errors"
	"testing"
)

func TestConstructors_SetKinds(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
		msg  string
	}{
		{"not found", NotFound("missing"), ErrNotFound, "missing"},
		{"not foundf", NotFoundf("name %q missing", "Luna"), ErrNotFound, `name "Luna" missing`},
		{"validation", Validation("bad input"), ErrValidation, "bad input"},
		{"validationf", Validationf("field %s required", "user"), ErrValidation, "field user required"},
		{"conflict", Conflict("already there"), ErrConflict, "already there"},
		{"invalid input", InvalidInput("nope"), ErrInvalidInput, "nope"},
		{"invalid inputf", InvalidInputf("bad %s", "outcome"), ErrInvalidInput, "bad outcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %d, want %d", tt.err.Kind, tt.kind)
			}
			if tt.err.Message != tt.msg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.msg)
			}
			if tt.err.Err != nil {
				t.Errorf("Err = %v, want nil", tt.err.Err)
			}
		})
	}
}

func TestInternal_WrapsUnderlying(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Internal(cause)

	if err.Kind != ErrInternal {
		t.Errorf("Kind = %d, want ErrInternal", err.Kind)
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the underlying cause")
	}
}

func TestWrap_PreservesKindAndCause(t *testing.T) {
	cause := errors.New("row missing")
	err := Wrap(cause, ErrNotFound, "name not found")

	if err.Kind != ErrNotFound {
		t.Errorf("Kind = %d, want ErrNotFound", err.Kind)
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap did not return the cause")
	}
	want := "name not found: row missing"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestError_WithoutCause(t *testing.T) {
	err := NotFound("missing")
	if err.Error() != "missing" {
		t.Errorf("Error() = %q, want %q", err.Error(), "missing")
	}
	if errors.Unwrap(err) != nil {
		t.Error("expected no wrapped cause")
	}
}

func TestErrorsAs_FindsTypedError(t *testing.T) {
	var appErr *Error
	err := error(Validation("bad"))

	if !errors.As(err, &appErr) {
		t.Fatal("errors.As failed to match *Error")
	}
	if appErr.Kind != ErrValidation {
		t.Errorf("Kind = %d, want ErrValidation", appErr.Kind)
	}
}
