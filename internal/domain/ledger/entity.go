package ledger

import "time"

// MonthlyShift is the durable daily ledger row: the output of the delay
// and overtime computation for one employee on one work date. Created at
// check-in, updated at checkout and by idempotent recalculation. One row
// per (employee, work date), upsert semantics.
type MonthlyShift struct {
	ID           string
	EmployeeID   string
	CompanyID    string
	WorkDate     time.Time
	ShiftID      *string
	CheckInTime  *time.Time
	CheckOutTime *time.Time

	RegularHours              float64
	OvertimeHours             float64
	DelayMinutes              int
	EarlyCheckoutPenaltyHours float64
	IsDayOff                  bool

	// NeedsReview marks rows produced in degraded ("basic") mode, when
	// shift resolution failed at checkout and the delay/overtime split
	// was skipped.
	NeedsReview bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is the monthly read-model over MonthlyShift rows, with the
// aggregate smart offsetting already applied: at most one of
// NetOvertimeHours / NetDelayHours is non-zero.
type Summary struct {
	EmployeeID         string
	PeriodStart        time.Time
	PeriodEnd          time.Time
	RegularHours       float64
	NetOvertimeHours   float64
	NetDelayHours      float64
	WorkingDays        int
	AverageHoursPerDay float64
}
