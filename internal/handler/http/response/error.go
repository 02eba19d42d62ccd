package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var balanceErr *leave.BalanceError
	if errors.As(err, &balanceErr) {
		BadRequest(w, balanceErr.Error(), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrIncorrectPassword):
		BadRequest(w, "Current password is incorrect", nil)
	case errors.Is(err, auth.ErrRegistrationDisabled):
		Forbidden(w, "Self registration is disabled")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, user.ErrAccountInactive):
		Unauthorized(w, "Account is deactivated")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already inactive")
	case errors.Is(err, employee.ErrCannotDeactivateSelf):
		BadRequest(w, "You cannot deactivate your own account", nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrRecordNotFound):
		NotFound(w, "Timesheet record not found")
	case errors.Is(err, timesheet.ErrAlreadyClockedIn),
		errors.Is(err, timesheet.ErrAlreadyClockedOut),
		errors.Is(err, timesheet.ErrAlreadyOnBreak),
		errors.Is(err, timesheet.ErrBreakInProgress):
		Conflict(w, capitalize(err))
	case errors.Is(err, timesheet.ErrNotClockedIn),
		errors.Is(err, timesheet.ErrNoActiveSession),
		errors.Is(err, timesheet.ErrNotOnBreak):
		BadRequest(w, capitalize(err), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave not found")
	case errors.Is(err, leave.ErrAlreadyReviewed):
		Conflict(w, "Leave has already been reviewed")
	case errors.Is(err, leave.ErrCannotCancelApproved):
		Conflict(w, "Cannot cancel an approved leave")
	case errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrNoWorkingDays),
		errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, capitalize(err), nil)

	// Report errors
	case errors.Is(err, report.ErrExportFailed):
		slog.Error("report export failed", "error", err)
		InternalServerError(w, "Failed to generate report")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func capitalize(err error) string {
	msg := err.Error()
	if msg == "" || msg[0] < 'a' || msg[0] > 'z' {
		return msg
	}
	return string(msg[0]-'a'+'A') + msg[1:]
}
