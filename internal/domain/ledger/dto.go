package ledger

import (
	"time"

	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/validator"
)

type DailyLedgerRequest struct {
	EmployeeID string `json:"employee_id"`
	WorkDate   string `json:"work_date"` // YYYY-MM-DD
}

func (r *DailyLedgerRequest) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MonthlySummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"` // YYYY-MM
}

func (r *MonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidMonth(r.Month); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyResponse struct {
	EmployeeID                string  `json:"employee_id"`
	WorkDate                  string  `json:"work_date"`
	ShiftID                   *string `json:"shift_id,omitempty"`
	CheckInTime               *string `json:"check_in_time,omitempty"`
	CheckOutTime              *string `json:"check_out_time,omitempty"`
	RegularHours              float64 `json:"regular_hours"`
	OvertimeHours             float64 `json:"overtime_hours"`
	DelayMinutes              int     `json:"delay_minutes"`
	EarlyCheckoutPenaltyHours float64 `json:"early_checkout_penalty_hours"`
	IsDayOff                  bool    `json:"is_day_off"`
	NeedsReview               bool    `json:"needs_review"`
}

type SummaryResponse struct {
	EmployeeID         string  `json:"employee_id"`
	PeriodStart        string  `json:"period_start"`
	PeriodEnd          string  `json:"period_end"`
	RegularHours       float64 `json:"regular_hours"`
	NetOvertimeHours   float64 `json:"net_overtime_hours"`
	NetDelayHours      float64 `json:"net_delay_hours"`
	WorkingDays        int     `json:"working_days"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
}

// MapRowToResponse converts a MonthlyShift row to its API shape.
func MapRowToResponse(row MonthlyShift) DailyResponse {
	resp := DailyResponse{
		EmployeeID:                row.EmployeeID,
		WorkDate:                  row.WorkDate.Format("2006-01-02"),
		ShiftID:                   row.ShiftID,
		RegularHours:              row.RegularHours,
		OvertimeHours:             row.OvertimeHours,
		DelayMinutes:              row.DelayMinutes,
		EarlyCheckoutPenaltyHours: row.EarlyCheckoutPenaltyHours,
		IsDayOff:                  row.IsDayOff,
		NeedsReview:               row.NeedsReview,
	}
	if row.CheckInTime != nil {
		in := row.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &in
	}
	if row.CheckOutTime != nil {
		out := row.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &out
	}
	return resp
}
