package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access for shift templates.
// All methods include companyID to prevent cross-company data access.
type ShiftRepository interface {
	// GetByID retrieves a shift template by ID
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)

	// ListActiveByPosition retrieves active shift templates for a position,
	// used for time-based shift inference
	ListActiveByPosition(ctx context.Context, position string, companyID string) ([]Shift, error)

	// ListActive retrieves all active shift templates for a company
	ListActive(ctx context.Context, companyID string) ([]Shift, error)
}

// AssignmentRepository defines data access for explicit shift overrides.
type AssignmentRepository interface {
	// GetByEmployeeAndDate retrieves the override for (employee, work date),
	// returning ErrAssignmentNotFound when none exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time, companyID string) (Assignment, error)

	// Upsert creates or replaces the override for (employee, work date)
	Upsert(ctx context.Context, assignment Assignment) (Assignment, error)
}

// Directory is the engine's view of the external user/position directory:
// it only needs to know which position an employee holds.
type Directory interface {
	GetPositionByEmployeeID(ctx context.Context, employeeID string, companyID string) (string, error)
}

// Resolver determines which shift (if any) applies to an employee on a
// work date. Consulted at check-in to gate eligibility; the resolved
// shift is captured on the attendance record and reused at checkout so
// both ends of the session agree on the schedule.
type Resolver interface {
	Resolve(ctx context.Context, employeeID string, workDate time.Time, instant time.Time, companyID string) (Resolution, error)
}
