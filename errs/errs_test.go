package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewValidationErrorKeepsEveryField(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "email", Message: "email must be a valid email"},
		{Field: "message", Message: "message must be at least 10 characters"},
	})

	if err.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", err.StatusCode)
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
	if err.Field != "" {
		t.Fatalf("expected no single field for multi-field error, got %q", err.Field)
	}
	if !IsValidationError(err) {
		t.Fatalf("expected IsValidationError to match")
	}
}

func TestNewDatabaseErrorClassifiesSQLiteMessages(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
	}{
		{"unique", errors.New("UNIQUE constraint failed: users.username"), http.StatusConflict},
		{"locked", errors.New("database is locked"), http.StatusServiceUnavailable},
		{"other", errors.New("no such column: foo"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "user", tt.cause)
			if err.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, err.StatusCode)
			}
			if !errors.Is(err.Cause, tt.cause) {
				t.Fatalf("cause not preserved")
			}
		})
	}
}

func TestNewDatabaseErrorPassesThroughApiErr(t *testing.T) {
	inner := NewAlreadyExists("user")
	got := NewDatabaseError("create", "user", fmt.Errorf("wrapped: %w", inner))
	if got != inner {
		t.Fatalf("expected classified error to pass through")
	}
}

func TestSentinelsMatch(t *testing.T) {
	if !errors.Is(NewNotFound("website project"), ErrNotFound) {
		t.Fatalf("NewNotFound should match ErrNotFound")
	}
	if !errors.Is(NewNotFoundError("project not found"), ErrNotFound) {
		t.Fatalf("NewNotFoundError should match ErrNotFound")
	}
	if !IsAlreadyExists(NewUniqueConstraintViolationError("user", "username", nil)) {
		t.Fatalf("unique violation should match ErrAlreadyExists")
	}
	if !errors.Is(NewInsufficientRoleError("admin"), ErrForbidden) {
		t.Fatalf("insufficient role should match ErrForbidden")
	}
	if !IsUnauthorized(Unauthorized) {
		t.Fatalf("Unauthorized should match ErrUnauthorized")
	}
	for _, err := range []error{NewMissingTokenError(), NewInvalidTokenError(), NewExpiredSessionError()} {
		if !IsUnauthorized(err) {
			t.Fatalf("%v should match ErrUnauthorized", err)
		}
	}
	if IsUnauthorized(NewDatabaseError("get", "session", errors.New("sql: database is closed"))) {
		t.Fatalf("storage failures must not look like token rejections")
	}
	if NewAuthenticationError().Error() != "invalid username or password" {
		t.Fatalf("authentication error message must stay generic")
	}
}
