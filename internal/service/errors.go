package service

import (
	"errors"
	"strings"

	"github.com/forgo/clubs/api/internal/model"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingFields      = errors.New("email, password and name are required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrNameTooLong        = errors.New("name must be 100 characters or less")
)

// ===== Token Errors =====
var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ===== Authorization Errors =====
var (
	ErrOwnerRequired = errors.New("owner access required")
)

// ===== Club Errors =====
var (
	ErrClubNotFound = errors.New("club not found")
)

// ===== Application Errors =====
var (
	ErrApplicationNotFound   = errors.New("application not found")
	ErrNoApplication         = errors.New("no application found for this club")
	ErrApplicationNotPending = errors.New("only pending applications can be withdrawn")
	ErrInvalidStatus         = errors.New("invalid status")
)

// ===== Event Errors =====
var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotClubMember = errors.New("not a member of this club")
)

// ValidationError carries per-field validation failures.
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// validationErr returns nil for an empty field list.
func validationErr(fields []model.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
