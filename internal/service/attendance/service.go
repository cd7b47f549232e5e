package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/attendance"
	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/ledger"
	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/notification"
	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/database"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/workday"
	"github.com/timekeep-hq/timekeep-backend-go/internal/repository/postgresql"
	"github.com/timekeep-hq/timekeep-backend-go/internal/service/timesheet"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.Repository
	ledgerRepo     ledger.Repository
	shiftRepo      shift.ShiftRepository
	assignmentRepo shift.AssignmentRepository
	resolver       shift.Resolver
	workday        *workday.Resolver
	calc           *timesheet.Calculator
	notifier       notification.Service

	checkInTolerance time.Duration

	now   func() time.Time
	runTx func(ctx context.Context, fn func(context.Context) error) error
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.Repository,
	ledgerRepo ledger.Repository,
	shiftRepo shift.ShiftRepository,
	assignmentRepo shift.AssignmentRepository,
	resolver shift.Resolver,
	workdayResolver *workday.Resolver,
	calc *timesheet.Calculator,
	checkInTolerance time.Duration,
	notifier notification.Service,
) attendance.Service {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		ledgerRepo:     ledgerRepo,
		shiftRepo:      shiftRepo,
		assignmentRepo: assignmentRepo,
		resolver:       resolver,
		workday:        workdayResolver,
		calc:           calc,
		notifier:       notifier,

		checkInTolerance: checkInTolerance,

		now: time.Now,
		runTx: func(ctx context.Context, fn func(context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(context.WithValue(ctx, "tx", tx))
			})
		},
	}
}

// CheckIn implements attendance.Service. Eligibility is gated by shift
// resolution and the shift's check-in window; the winning record of a
// check-in race is decided by the storage layer's single-open-session
// index, not by an in-process lock.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.RecordResponse, error) {
	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	boundary := s.workday.Current(now)

	// Checkout is terminal for the work day. A closed record must block a
	// second session: its provisional ledger upsert would wipe the day's
	// computed figures.
	prior, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, boundary.WorkDate, companyID)
	switch {
	case err == nil && prior.CheckOutTime != nil:
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	case err != nil && !errors.Is(err, attendance.ErrRecordNotFound):
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up prior session: %w", err)
	}

	resolution, err := s.resolver.Resolve(ctx, employeeID, boundary.WorkDate, now, companyID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to resolve shift at check-in: %w", err)
	}

	if resolution.Outcome == shift.OutcomeDayOff {
		return attendance.RecordResponse{}, attendance.ErrDayOff
	}

	// A resolved shift gates check-in to its eligibility window. No shift
	// at all does not gate: the session is recorded and later computed in
	// basic mode.
	if resolution.Shift != nil && !s.inCheckInWindow(now, resolution.Shift, boundary.WorkDate) {
		return attendance.RecordResponse{}, attendance.ErrOutsideShiftWindow
	}

	record := attendance.Record{
		ID:          uuid.NewString(),
		EmployeeID:  employeeID,
		CompanyID:   companyID,
		WorkDate:    boundary.WorkDate,
		CheckInTime: now,
	}
	if resolution.Shift != nil {
		record.ShiftID = &resolution.Shift.ID
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	lateMinutes := s.calc.ComputeCheckIn(now, resolution.Shift, boundary.WorkDate)

	// Provisional ledger row: lateness only, final figures land at
	// checkout.
	row := ledger.MonthlyShift{
		EmployeeID:   employeeID,
		CompanyID:    companyID,
		WorkDate:     boundary.WorkDate,
		ShiftID:      created.ShiftID,
		CheckInTime:  &now,
		DelayMinutes: lateMinutes,
	}
	if _, err := s.ledgerRepo.Upsert(ctx, row); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to record check-in on ledger: %w", err)
	}

	if lateMinutes > 0 {
		s.queueNotification(ctx, notification.CreateNotificationRequest{
			CompanyID:   companyID,
			RecipientID: employeeID,
			Type:        notification.TypeLatenessReported,
			Title:       "Late check-in",
			Message:     fmt.Sprintf("Checked in %d minutes after the scheduled start", lateMinutes),
			Data: map[string]interface{}{
				"work_date":    boundary.WorkDate.Format("2006-01-02"),
				"late_minutes": lateMinutes,
			},
		})
	}

	return attendance.MapRecordToResponse(created, lateMinutes), nil
}

// CheckOut implements attendance.Service. The shift captured at check-in
// is reused; if it cannot be loaded the computation degrades to basic
// mode and the ledger row is flagged for review instead of failing the
// checkout.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (ledger.DailyResponse, error) {
	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return ledger.DailyResponse{}, err
	}

	record, err := s.attendanceRepo.GetOpenSession(ctx, employeeID, companyID)
	if err != nil {
		return ledger.DailyResponse{}, err
	}

	now := s.now()

	var saved ledger.MonthlyShift
	var result timesheet.Result
	err = s.runTx(ctx, func(txCtx context.Context) error {
		if open := record.OpenBreak(); open != nil {
			closed, err := s.attendanceRepo.StopBreak(txCtx, record.ID, now)
			if err != nil {
				return fmt.Errorf("failed to auto-close open break: %w", err)
			}
			slog.Warn("auto-closed dangling break at checkout",
				"record_id", record.ID,
				"break_id", closed.ID,
				"employee_id", employeeID)
			for i := range record.Breaks {
				if record.Breaks[i].ID == closed.ID {
					record.Breaks[i] = closed
				}
			}
		}

		if err := s.attendanceRepo.Close(txCtx, record.ID, now, companyID); err != nil {
			return err
		}
		record.CheckOutTime = &now

		sh := s.loadShift(txCtx, record.ShiftID, companyID)
		result = s.calc.Compute(record.CheckInTime, now, sh, record.WorkDate, record.TotalBreak())

		row := s.ledgerRow(record, result)
		if saved, err = s.ledgerRepo.Upsert(txCtx, row); err != nil {
			return fmt.Errorf("failed to persist ledger row at checkout: %w", err)
		}
		return nil
	})
	if err != nil {
		return ledger.DailyResponse{}, err
	}

	s.queueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   companyID,
		RecipientID: employeeID,
		Type:        notification.TypeCheckoutSummary,
		Title:       "Work day closed",
		Message:     fmt.Sprintf("%.2f regular hours, %.2f overtime hours", result.RegularHours, result.OvertimeHours),
		Data: map[string]interface{}{
			"work_date":     record.WorkDate.Format("2006-01-02"),
			"delay_minutes": result.DelayMinutes,
		},
	})

	return ledger.MapRowToResponse(saved), nil
}

// StartBreak implements attendance.Service. Concurrent starts on the
// same record are serialized by the storage layer: one wins, the other
// gets ErrBreakAlreadyOpen.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context, req attendance.StartBreakRequest) (attendance.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}

	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	record, err := s.attendanceRepo.GetOpenSession(ctx, employeeID, companyID)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	session := attendance.BreakSession{
		ID:        uuid.NewString(),
		RecordID:  record.ID,
		StartTime: s.now(),
		Reason:    req.Reason,
	}
	created, err := s.attendanceRepo.StartBreak(ctx, session)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	return attendance.MapBreakToResponse(created), nil
}

// StopBreak implements attendance.Service.
func (s *AttendanceServiceImpl) StopBreak(ctx context.Context) (attendance.BreakResponse, error) {
	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	record, err := s.attendanceRepo.GetOpenSession(ctx, employeeID, companyID)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	closed, err := s.attendanceRepo.StopBreak(ctx, record.ID, s.now())
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	return attendance.MapBreakToResponse(closed), nil
}

// GetStatus implements attendance.Service.
func (s *AttendanceServiceImpl) GetStatus(ctx context.Context) (attendance.StatusResponse, error) {
	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	record, err := s.attendanceRepo.GetOpenSession(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenSession) {
			return attendance.StatusResponse{CanCheckIn: true}, nil
		}
		return attendance.StatusResponse{}, err
	}

	lateMinutes := 0
	if sh := s.loadShift(ctx, record.ShiftID, companyID); sh != nil {
		lateMinutes = s.calc.ComputeCheckIn(record.CheckInTime, sh, record.WorkDate)
	}
	response := attendance.MapRecordToResponse(record, lateMinutes)

	return attendance.StatusResponse{
		HasOpenSession: true,
		IsOnBreak:      record.IsOnBreak(),
		CanCheckOut:    true,
		OpenSession:    &response,
	}, nil
}

// SetAssignment implements attendance.Service. The override takes effect
// immediately: an already-computed ledger row for that day is re-run
// against the new assignment.
func (s *AttendanceServiceImpl) SetAssignment(ctx context.Context, req shift.SetAssignmentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	adminID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	workDate, _ := time.Parse("2006-01-02", req.WorkDate)
	assignment := shift.Assignment{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		WorkDate:   workDate,
		ShiftID:    req.ShiftID,
		IsDayOff:   req.IsDayOff,
		AssignedBy: adminID,
	}

	return s.runTx(ctx, func(txCtx context.Context) error {
		if _, err := s.assignmentRepo.Upsert(txCtx, assignment); err != nil {
			return fmt.Errorf("failed to upsert shift assignment: %w", err)
		}

		record, err := s.attendanceRepo.GetByEmployeeAndDate(txCtx, req.EmployeeID, workDate, companyID)
		switch {
		case err == nil:
			if record.CheckOutTime == nil {
				// Still open; the final figures land at checkout against
				// the new assignment.
				return nil
			}
			row, err := s.recalcRecord(txCtx, record, companyID)
			if err != nil {
				return err
			}
			if _, err := s.ledgerRepo.Upsert(txCtx, row); err != nil {
				return fmt.Errorf("failed to persist recalculated ledger row: %w", err)
			}
			return nil

		case errors.Is(err, attendance.ErrRecordNotFound):
			if !req.IsDayOff {
				return nil
			}
			// No attendance that day: materialize the day off on the
			// ledger so the monthly aggregation can skip it.
			row := ledger.MonthlyShift{
				EmployeeID: req.EmployeeID,
				CompanyID:  companyID,
				WorkDate:   workDate,
				IsDayOff:   true,
			}
			if _, err := s.ledgerRepo.Upsert(txCtx, row); err != nil {
				return fmt.Errorf("failed to persist day-off ledger row: %w", err)
			}
			return nil

		default:
			return err
		}
	})
}

// Recalculate implements attendance.Service.
func (s *AttendanceServiceImpl) Recalculate(ctx context.Context, req attendance.RecalculateRequest) (attendance.RecalculateReport, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecalculateReport{}, err
	}

	_, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecalculateReport{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	records, err := s.attendanceRepo.ListByDateRange(ctx, req.EmployeeID, startDate, endDate, companyID)
	if err != nil {
		return attendance.RecalculateReport{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	var report attendance.RecalculateReport
	for _, record := range records {
		workDate := record.WorkDate.Format("2006-01-02")
		if record.CheckOutTime == nil {
			report.Failed = append(report.Failed, attendance.RecalculateFailed{
				WorkDate: workDate,
				Reason:   "session still open",
			})
			continue
		}

		row, err := s.recalcRecord(ctx, record, companyID)
		if err != nil {
			report.Failed = append(report.Failed, attendance.RecalculateFailed{
				WorkDate: workDate,
				Reason:   err.Error(),
			})
			continue
		}
		if _, err := s.ledgerRepo.Upsert(ctx, row); err != nil {
			report.Failed = append(report.Failed, attendance.RecalculateFailed{
				WorkDate: workDate,
				Reason:   err.Error(),
			})
			continue
		}
		report.Recalculated++
	}

	return report, nil
}

// AutoCloseStaleSessions implements attendance.Service. Unlike checkout,
// the figures here are estimates; every produced row is flagged for
// review.
func (s *AttendanceServiceImpl) AutoCloseStaleSessions(ctx context.Context, cutoffDays int) (int, error) {
	records, err := s.attendanceRepo.GetStaleOpenSessions(ctx, cutoffDays)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale open sessions: %w", err)
	}

	closed := 0
	for _, record := range records {
		closeAt := s.staleCloseTime(ctx, record)

		if open := record.OpenBreak(); open != nil {
			closedBreak, err := s.attendanceRepo.StopBreak(ctx, record.ID, closeAt)
			if err != nil {
				slog.Error("failed to close break on stale session", "record_id", record.ID, "error", err)
				continue
			}
			for i := range record.Breaks {
				if record.Breaks[i].ID == closedBreak.ID {
					record.Breaks[i] = closedBreak
				}
			}
		}
		if err := s.attendanceRepo.Close(ctx, record.ID, closeAt, record.CompanyID); err != nil {
			slog.Error("failed to close stale session", "record_id", record.ID, "error", err)
			continue
		}

		result := s.calc.Compute(record.CheckInTime, closeAt, nil, record.WorkDate, record.TotalBreak())
		record.CheckOutTime = &closeAt
		row := s.ledgerRow(record, result)
		row.NeedsReview = true
		if _, err := s.ledgerRepo.Upsert(ctx, row); err != nil {
			slog.Error("failed to persist ledger row for stale session", "record_id", record.ID, "error", err)
			continue
		}

		s.queueNotification(ctx, notification.CreateNotificationRequest{
			CompanyID:   record.CompanyID,
			RecipientID: record.EmployeeID,
			Type:        notification.TypeSessionAutoClosed,
			Title:       "Session closed automatically",
			Message:     "An open work session was closed by the system and flagged for review",
			Data: map[string]interface{}{
				"work_date": record.WorkDate.Format("2006-01-02"),
			},
		})
		closed++
	}

	return closed, nil
}

// inCheckInWindow reports whether the instant falls inside the shift's
// eligible check-in window, from tolerance before the scheduled start
// through the scheduled end.
func (s *AttendanceServiceImpl) inCheckInWindow(instant time.Time, sh *shift.Shift, workDate time.Time) bool {
	start := sh.ScheduledStart(workDate, s.workday.Location()).Add(-s.checkInTolerance)
	end := sh.ScheduledEnd(workDate, s.workday.Location())
	return !instant.Before(start) && !instant.After(end)
}

// staleCloseTime picks the checkout instant for an abandoned session:
// the scheduled shift end when the shift is known, otherwise the default
// expected hours past check-in.
func (s *AttendanceServiceImpl) staleCloseTime(ctx context.Context, record attendance.Record) time.Time {
	if sh := s.loadShift(ctx, record.ShiftID, record.CompanyID); sh != nil {
		end := sh.ScheduledEnd(record.WorkDate, s.workday.Location())
		if end.After(record.CheckInTime) {
			return end
		}
	}
	return record.CheckInTime.Add(8 * time.Hour)
}

// recalcRecord re-runs the engine for one closed record. A current
// explicit assignment outranks the shift captured at check-in, which is
// what makes admin overrides retroactive.
func (s *AttendanceServiceImpl) recalcRecord(ctx context.Context, record attendance.Record, companyID string) (ledger.MonthlyShift, error) {
	var sh *shift.Shift
	isDayOff := false

	assignment, err := s.assignmentRepo.GetByEmployeeAndDate(ctx, record.EmployeeID, record.WorkDate, companyID)
	switch {
	case err == nil && assignment.IsDayOff:
		isDayOff = true
	case err == nil && assignment.ShiftID != nil:
		sh = s.loadShift(ctx, assignment.ShiftID, companyID)
	case err == nil || errors.Is(err, shift.ErrAssignmentNotFound):
		sh = s.loadShift(ctx, record.ShiftID, companyID)
	default:
		return ledger.MonthlyShift{}, fmt.Errorf("failed to look up assignment: %w", err)
	}

	var result timesheet.Result
	if isDayOff {
		// Worked on a declared day off: keep basic figures and leave the
		// row for manual review.
		result = s.calc.Compute(record.CheckInTime, *record.CheckOutTime, nil, record.WorkDate, record.TotalBreak())
	} else {
		result = s.calc.Compute(record.CheckInTime, *record.CheckOutTime, sh, record.WorkDate, record.TotalBreak())
	}

	row := s.ledgerRow(record, result)
	row.IsDayOff = isDayOff
	if isDayOff {
		row.NeedsReview = true
	}
	return row, nil
}

func (s *AttendanceServiceImpl) ledgerRow(record attendance.Record, result timesheet.Result) ledger.MonthlyShift {
	checkIn := record.CheckInTime
	return ledger.MonthlyShift{
		EmployeeID:                record.EmployeeID,
		CompanyID:                 record.CompanyID,
		WorkDate:                  record.WorkDate,
		ShiftID:                   record.ShiftID,
		CheckInTime:               &checkIn,
		CheckOutTime:              record.CheckOutTime,
		RegularHours:              result.RegularHours,
		OvertimeHours:             result.OvertimeHours,
		DelayMinutes:              result.DelayMinutes,
		EarlyCheckoutPenaltyHours: result.EarlyCheckoutPenaltyHours,
		NeedsReview:               result.Basic,
	}
}

// loadShift fetches a shift for computation, degrading to nil (basic
// mode) instead of failing the operation.
func (s *AttendanceServiceImpl) loadShift(ctx context.Context, shiftID *string, companyID string) *shift.Shift {
	if shiftID == nil {
		return nil
	}
	sh, err := s.shiftRepo.GetByID(ctx, *shiftID, companyID)
	if err != nil {
		slog.Warn("failed to load shift, computing in basic mode", "shift_id", *shiftID, "error", err)
		return nil
	}
	return &sh
}

func (s *AttendanceServiceImpl) queueNotification(ctx context.Context, req notification.CreateNotificationRequest) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.QueueNotification(ctx, req); err != nil {
		slog.Error("failed to queue notification", "type", req.Type, "error", err)
	}
}

func claimsFromContext(ctx context.Context) (employeeID, companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	companyID, ok = claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return employeeID, companyID, nil
}
