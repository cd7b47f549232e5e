package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
)

const minutesPerDay = 24 * 60

type resolverImpl struct {
	shiftRepo      shift.ShiftRepository
	assignmentRepo shift.AssignmentRepository
	directory      shift.Directory
	tolerance      time.Duration
	loc            *time.Location
}

// NewResolver builds the shift resolver. tolerance is how early before
// the scheduled start a check-in still counts toward that shift.
func NewResolver(
	shiftRepo shift.ShiftRepository,
	assignmentRepo shift.AssignmentRepository,
	directory shift.Directory,
	tolerance time.Duration,
	loc *time.Location,
) shift.Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &resolverImpl{
		shiftRepo:      shiftRepo,
		assignmentRepo: assignmentRepo,
		directory:      directory,
		tolerance:      tolerance,
		loc:            loc,
	}
}

// Resolve implements shift.Resolver. An explicit assignment (including a
// day off) always wins; otherwise the employee's position is matched
// against the wall clock across that position's active shifts.
func (r *resolverImpl) Resolve(ctx context.Context, employeeID string, workDate time.Time, instant time.Time, companyID string) (shift.Resolution, error) {
	assignment, err := r.assignmentRepo.GetByEmployeeAndDate(ctx, employeeID, workDate, companyID)
	switch {
	case err == nil:
		return r.resolveAssignment(ctx, assignment, companyID)
	case !errors.Is(err, shift.ErrAssignmentNotFound):
		return shift.Resolution{}, fmt.Errorf("failed to look up shift assignment: %w", err)
	}

	position, err := r.directory.GetPositionByEmployeeID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, shift.ErrPositionNotFound) {
			return shift.Resolution{Outcome: shift.OutcomeUnassigned}, nil
		}
		return shift.Resolution{}, fmt.Errorf("failed to look up employee position: %w", err)
	}

	shifts, err := r.shiftRepo.ListActiveByPosition(ctx, position, companyID)
	if err != nil {
		return shift.Resolution{}, fmt.Errorf("failed to list shifts for position: %w", err)
	}

	matched := r.matchByClock(shifts, instant)
	if len(matched) == 0 {
		return shift.Resolution{Outcome: shift.OutcomeUnassigned}, nil
	}
	if len(matched) > 1 {
		slog.Warn("multiple shift windows match, picking nearest start",
			"error", shift.ErrResolutionAmbiguous,
			"employee_id", employeeID,
			"position", position,
			"candidates", len(matched))
	}

	chosen := r.nearestStart(matched, instant)
	return shift.Resolution{Outcome: shift.OutcomeAssigned, Shift: &chosen}, nil
}

func (r *resolverImpl) resolveAssignment(ctx context.Context, assignment shift.Assignment, companyID string) (shift.Resolution, error) {
	if assignment.IsDayOff {
		return shift.Resolution{Outcome: shift.OutcomeDayOff, Explicit: true}, nil
	}
	if assignment.ShiftID == nil {
		return shift.Resolution{Outcome: shift.OutcomeUnassigned, Explicit: true}, nil
	}

	sh, err := r.shiftRepo.GetByID(ctx, *assignment.ShiftID, companyID)
	if err != nil {
		return shift.Resolution{}, fmt.Errorf("failed to load assigned shift %s: %w", *assignment.ShiftID, err)
	}
	return shift.Resolution{Outcome: shift.OutcomeAssigned, Shift: &sh, Explicit: true}, nil
}

// matchByClock keeps the shifts whose eligibility window contains the
// instant. The window runs from tolerance minutes before the scheduled
// start through the scheduled end, in modular minute-of-day arithmetic
// so overnight windows work.
func (r *resolverImpl) matchByClock(shifts []shift.Shift, instant time.Time) []shift.Shift {
	local := instant.In(r.loc)
	minute := local.Hour()*60 + local.Minute()

	var matched []shift.Shift
	for _, sh := range shifts {
		if !sh.IsActive {
			continue
		}
		start := mod(sh.StartTime.MinuteOfDay()-int(r.tolerance.Minutes()), minutesPerDay)
		end := sh.EndTime.MinuteOfDay()
		if inWindow(minute, start, end) {
			matched = append(matched, sh)
		}
	}
	return matched
}

// nearestStart breaks ties between overlapping windows in favor of the
// shift whose start is closest to the instant.
func (r *resolverImpl) nearestStart(shifts []shift.Shift, instant time.Time) shift.Shift {
	local := instant.In(r.loc)
	minute := local.Hour()*60 + local.Minute()

	best := shifts[0]
	bestDist := minutesPerDay
	for _, sh := range shifts {
		d := mod(minute-sh.StartTime.MinuteOfDay(), minutesPerDay)
		if d > minutesPerDay/2 {
			d = minutesPerDay - d
		}
		if d < bestDist {
			best = sh
			bestDist = d
		}
	}
	return best
}

func inWindow(minute, start, end int) bool {
	if start <= end {
		return minute >= start && minute <= end
	}
	// window crosses midnight
	return minute >= start || minute <= end
}

func mod(v, m int) int {
	return ((v % m) + m) % m
}
