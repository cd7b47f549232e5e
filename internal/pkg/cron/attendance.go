package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/attendance"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/workday"
)

// AttendanceJobs owns the background maintenance of the attendance
// engine: closing abandoned sessions and keeping the cached work-day
// boundary warm across day transitions.
type AttendanceJobs struct {
	attendanceService attendance.Service
	workdayResolver   *workday.Resolver
	staleCutoffDays   int
}

func NewAttendanceJobs(
	attendanceService attendance.Service,
	workdayResolver *workday.Resolver,
	staleCutoffDays int,
) *AttendanceJobs {
	if staleCutoffDays <= 0 {
		staleCutoffDays = 2
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		workdayResolver:   workdayResolver,
		staleCutoffDays:   staleCutoffDays,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
	scheduler.AddJob("refresh_workday_boundary", 5*time.Minute, j.RefreshWorkDayBoundary)
}

// AutoCloseStaleSessions closes sessions whose work date is more than
// the cutoff behind. Only runs during the midnight hour so the close
// never races a legitimate late checkout.
func (j *AttendanceJobs) AutoCloseStaleSessions(ctx context.Context) error {
	if time.Now().In(j.workdayResolver.Location()).Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting auto-close stale sessions job")

	closed, err := j.attendanceService.AutoCloseStaleSessions(ctx, j.staleCutoffDays)
	if err != nil {
		return err
	}

	if closed == 0 {
		slog.Info("Cron: No stale sessions found")
	} else {
		slog.Info("Cron: Auto-closed stale sessions", "count", closed)
	}
	return nil
}

// RefreshWorkDayBoundary recomputes the cached boundary so the hot
// check-in path always reads a current window.
func (j *AttendanceJobs) RefreshWorkDayBoundary(_ context.Context) error {
	boundary := j.workdayResolver.Refresh(time.Now())
	slog.Debug("Cron: Work-day boundary refreshed",
		"work_date", boundary.WorkDate.Format("2006-01-02"),
		"start", boundary.WorkDayStart,
		"end", boundary.WorkDayEnd)
	return nil
}
