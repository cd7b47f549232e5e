package response

import (
	"errors"
	"net/http"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/attendance"
	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/auth"
	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/ledger"
	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/validator"
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
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance state-machine errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "An open work session already exists")
	case errors.Is(err, attendance.ErrNoOpenSession):
		Conflict(w, "No open work session")
	case errors.Is(err, attendance.ErrBreakAlreadyOpen):
		Conflict(w, "A break is already open")
	case errors.Is(err, attendance.ErrNoBreakOpen):
		Conflict(w, "No open break")
	case errors.Is(err, attendance.ErrDayOff):
		Forbidden(w, "Assigned day off, check-in not allowed")
	case errors.Is(err, attendance.ErrOutsideShiftWindow):
		Forbidden(w, "Outside any eligible shift window")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, shift.ErrPositionNotFound):
		NotFound(w, "Employee position not found")

	// Ledger domain errors
	case errors.Is(err, ledger.ErrLedgerNotFound):
		NotFound(w, "No ledger entry for that day")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
