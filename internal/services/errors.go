package services

import (
	"errors"
	"fmt"

	"github.com/courtsys/judiciary-backend/internal/dto"
)

// Sentinel errors shared across services. Handlers map these onto HTTP
// statuses; anything else is treated as an internal error.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")

	ErrAccessDenied = errors.New("access denied")

	ErrUserNotFound  = errors.New("user not found")
	ErrCourtNotFound = errors.New("court not found")
	ErrStaffNotFound = errors.New("staff record not found")

	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	// ErrInactiveParent rejects writes that reference a missing or trashed
	// parent court.
	ErrInactiveParent = errors.New("referenced court is inactive or missing")

	ErrSelfDelete = errors.New("cannot delete your own account")
)

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Fields []dto.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed on %d fields", len(e.Fields))
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: []dto.FieldError{{Field: field, Message: message}}}
}

type fieldErrors []dto.FieldError

func (f *fieldErrors) require(value, field string) {
	if value == "" {
		*f = append(*f, dto.FieldError{Field: field, Message: "is required"})
	}
}

func (f *fieldErrors) err() error {
	if len(*f) == 0 {
		return nil
	}
	return &ValidationError{Fields: *f}
}
