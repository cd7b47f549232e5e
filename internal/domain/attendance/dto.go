package attendance

import (
	"time"

	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type RecordResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	WorkDate           string  `json:"work_date"`
	ShiftID            *string `json:"shift_id,omitempty"`
	ShiftName          *string `json:"shift_name,omitempty"`
	CheckInTime        string  `json:"check_in_time"`
	CheckOutTime       *string `json:"check_out_time,omitempty"`
	TotalBreakMinutes  int     `json:"total_break_minutes"`
	IsOnBreak          bool    `json:"is_on_break"`
	CurrentBreakReason string  `json:"current_break_reason,omitempty"`
	LateMinutes        int     `json:"late_minutes"`
}

type BreakResponse struct {
	ID              string  `json:"id"`
	RecordID        string  `json:"record_id"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	Reason          string  `json:"reason"`
	DurationMinutes int     `json:"duration_minutes"`
}

type StartBreakRequest struct {
	Reason string `json:"reason"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "break reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StatusResponse struct {
	HasOpenSession bool            `json:"has_open_session"`
	IsOnBreak      bool            `json:"is_on_break"`
	CanCheckIn     bool            `json:"can_check_in"`
	CanCheckOut    bool            `json:"can_check_out"`
	OpenSession    *RecordResponse `json:"open_session,omitempty"`
}

// RecalculateRequest re-runs the engine over [start_date, end_date].
type RecalculateRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
}

func (r *RecalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	start, validStart := validator.IsValidDate(r.StartDate)
	if !validStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, validEnd := validator.IsValidDate(r.EndDate)
	if !validEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if validStart && validEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RecalculateReport lists the per-record outcome of a recalculation run.
// Partial success is expected: a bad record is reported, not fatal.
type RecalculateReport struct {
	Recalculated int                 `json:"recalculated"`
	Failed       []RecalculateFailed `json:"failed,omitempty"`
}

type RecalculateFailed struct {
	WorkDate string `json:"work_date"`
	Reason   string `json:"reason"`
}

// MapRecordToResponse converts a Record entity to its API shape.
func MapRecordToResponse(rec Record, lateMinutes int) RecordResponse {
	resp := RecordResponse{
		ID:                 rec.ID,
		EmployeeID:         rec.EmployeeID,
		WorkDate:           rec.WorkDate.Format("2006-01-02"),
		ShiftID:            rec.ShiftID,
		CheckInTime:        rec.CheckInTime.Format(time.RFC3339),
		TotalBreakMinutes:  rec.TotalBreakMinutes(),
		IsOnBreak:          rec.IsOnBreak(),
		CurrentBreakReason: rec.CurrentBreakReason(),
		LateMinutes:        lateMinutes,
	}
	if rec.CheckOutTime != nil {
		out := rec.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &out
	}
	return resp
}

// MapBreakToResponse converts a BreakSession entity to its API shape.
func MapBreakToResponse(b BreakSession) BreakResponse {
	resp := BreakResponse{
		ID:              b.ID,
		RecordID:        b.RecordID,
		StartTime:       b.StartTime.Format(time.RFC3339),
		Reason:          b.Reason,
		DurationMinutes: int(b.Duration().Round(time.Minute) / time.Minute),
	}
	if b.EndTime != nil {
		end := b.EndTime.Format(time.RFC3339)
		resp.EndTime = &end
	}
	return resp
}
