package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/activity"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/auth"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/employee"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/settings"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already registered")

	// Activity domain errors
	case errors.Is(err, activity.ErrIdleLogNotFound):
		NotFound(w, "Idle log not found")
	case errors.Is(err, activity.ErrIdleLogAlreadyClosed):
		Conflict(w, "Idle log already has an end time")
	case errors.Is(err, activity.ErrUnknownUser):
		ValidationError(w, map[string]string{"user": "user is not on the employee roster"})

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Settings not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
