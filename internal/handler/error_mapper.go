package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/forgo/clubs/api/internal/middleware"
	"github.com/forgo/clubs/api/internal/model"
	"github.com/forgo/clubs/api/internal/service"
)

// notFoundWording rewords 404s for a family of routes. Owner routes do not
// reveal whether a club exists but belongs to someone else.
type notFoundWording map[error]string

var (
	ownerClubWording  = notFoundWording{service.ErrClubNotFound: "Club not found or not owned by you"}
	rosterClubWording = notFoundWording{service.ErrClubNotFound: "Club not found or unauthorized"}
)

// MapServiceError converts a service error to an error response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ErrorResponse {
	if err == nil {
		return nil
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return model.NewValidationError(verr.Fields)
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError("Invalid credentials")
	case errors.Is(err, service.ErrInvalidToken):
		return model.NewUnauthorizedError("Invalid or expired token")

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrOwnerRequired):
		return model.NewForbiddenError("Owner access required")
	case errors.Is(err, service.ErrNotClubMember):
		return model.NewForbiddenError("Not a member of this club")

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("User not found")
	case errors.Is(err, service.ErrClubNotFound):
		return model.NewNotFoundError("Club not found")
	case errors.Is(err, service.ErrApplicationNotFound):
		return model.NewNotFoundError("Application not found or unauthorized")
	case errors.Is(err, service.ErrNoApplication):
		return model.NewNotFoundError("No application found for this club")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("Event not found")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError("Email already registered")

	// ===== State Errors → 400 =====
	case errors.Is(err, service.ErrApplicationNotPending):
		return model.NewInvalidStateError("Only pending applications can be withdrawn")

	// ===== Input Errors → 400 =====
	case errors.Is(err, service.ErrMissingFields):
		return model.NewBadRequestError("Missing fields")
	case errors.Is(err, service.ErrInvalidStatus):
		return model.NewBadRequestError("Invalid status")
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: "Invalid email format"}})
	case errors.Is(err, service.ErrPasswordTooShort):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: "Password must be at least 8 characters"}})
	case errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: "Password must be at most 128 characters"}})
	case errors.Is(err, service.ErrNameTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: "Name must be 100 characters or less"}})
	}

	return model.NewInternalError("")
}

// writeServiceError maps err and writes it. Unmapped errors are logged with
// the request id before answering 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, wording ...notFoundWording) {
	for _, words := range wording {
		for target, msg := range words {
			if errors.Is(err, target) {
				WriteError(w, model.NewNotFoundError(msg))
				return
			}
		}
	}

	resp := MapServiceError(err)
	if resp.Status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
	}
	WriteError(w, resp)
}
