package shift

import (
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/validator"
)

type ShiftResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Position  string `json:"position"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

type ListShiftsResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
}

// SetAssignmentRequest is the admin override: bind an employee to a shift
// or to a day off on one work date.
type SetAssignmentRequest struct {
	EmployeeID string  `json:"employee_id"`
	WorkDate   string  `json:"work_date"` // YYYY-MM-DD
	ShiftID    *string `json:"shift_id,omitempty"`
	IsDayOff   bool    `json:"is_day_off"`
}

func (r *SetAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.WorkDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	}

	if r.IsDayOff && r.ShiftID != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be empty when is_day_off is true",
		})
	}

	if !r.IsDayOff && (r.ShiftID == nil || validator.IsEmpty(*r.ShiftID)) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required unless is_day_off is true",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MapShiftToResponse converts a Shift entity to its API shape.
func MapShiftToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:        s.ID,
		Name:      s.Name,
		Kind:      string(s.Kind),
		Position:  s.Position,
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		IsActive:  s.IsActive,
	}
}
