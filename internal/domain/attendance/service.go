package attendance

import (
	"context"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/ledger"
	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
)

// Service governs the check-in -> (break cycles) -> check-out lifecycle
// for the authenticated employee and exposes the administrative
// operations that re-run the time computation.
type Service interface {
	// CheckIn opens a work session for the authenticated employee and
	// records the check-in lateness on the daily ledger
	CheckIn(ctx context.Context) (RecordResponse, error)

	// CheckOut closes the open session, auto-closing any dangling break,
	// and runs the full delay/overtime computation
	CheckOut(ctx context.Context) (ledger.DailyResponse, error)

	// StartBreak opens a break inside the open session
	StartBreak(ctx context.Context, req StartBreakRequest) (BreakResponse, error)

	// StopBreak closes the open break
	StopBreak(ctx context.Context) (BreakResponse, error)

	// GetStatus reports what the employee can currently do
	GetStatus(ctx context.Context) (StatusResponse, error)

	// SetAssignment is the admin override; it also recalculates the
	// affected day's ledger row
	SetAssignment(ctx context.Context, req shift.SetAssignmentRequest) error

	// Recalculate re-runs the computation over existing records in the
	// date range without mutating raw check-in/out timestamps. Failures
	// are reported per record; one bad record does not block the rest.
	Recalculate(ctx context.Context, req RecalculateRequest) (RecalculateReport, error)

	// AutoCloseStaleSessions closes sessions left open for more than
	// cutoffDays, at the scheduled shift end where one is known, and
	// flags the resulting ledger rows for review. Run from the scheduler.
	AutoCloseStaleSessions(ctx context.Context, cutoffDays int) (int, error)
}
