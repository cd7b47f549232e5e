package timesheet

import (
	"math"
	"time"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
)

// Result carries the figures persisted on the daily ledger for one
// employee/work-date. DelayMinutes is the final "delay to finish" figure
// after smart reconciliation; RawLatenessMinutes and the early-checkout
// penalty are kept separately for audit.
type Result struct {
	RegularHours              float64
	OvertimeHours             float64
	DelayMinutes              int
	RawLatenessMinutes        int
	EarlyCheckoutPenaltyHours float64
	ExpectedHours             float64

	// Basic marks a degraded computation: no shift was resolvable, so
	// only raw elapsed time was recorded and the delay/overtime split
	// was skipped. The ledger row is flagged for manual review.
	Basic bool
}

// Calculator derives regular hours, overtime, lateness and the final
// delay figure from check-in/out instants, a shift schedule and break
// time. It is a pure function of its inputs: re-running it against the
// same persisted record reproduces the same ledger figures, which is
// what makes administrative recalculation safe.
type Calculator struct {
	dayExpectedHours     float64
	nightExpectedHours   float64
	defaultExpectedHours float64
	loc                  *time.Location
}

func NewCalculator(dayExpectedHours, nightExpectedHours, defaultExpectedHours float64, loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{
		dayExpectedHours:     dayExpectedHours,
		nightExpectedHours:   nightExpectedHours,
		defaultExpectedHours: defaultExpectedHours,
		loc:                  loc,
	}
}

// ComputeCheckIn is the partial "check-in" mode: only the raw lateness
// is known before the session ends. Lateness is measured against the
// wall-clock scheduled start, not the early-entry-tolerant window.
func (c *Calculator) ComputeCheckIn(checkIn time.Time, sh *shift.Shift, workDate time.Time) int {
	if sh == nil {
		return 0
	}
	return lateMinutes(checkIn, sh.ScheduledStart(workDate, c.loc))
}

// Compute is the full "check-out" mode. A nil shift degrades to basic
// mode rather than failing: availability of the attendance function
// outranks analytic precision.
func (c *Calculator) Compute(checkIn, checkOut time.Time, sh *shift.Shift, workDate time.Time, totalBreak time.Duration) Result {
	effective := checkOut.Sub(checkIn) - totalBreak
	if effective < 0 {
		effective = 0
	}

	if sh == nil {
		return Result{
			RegularHours: round2(effective.Hours()),
			Basic:        true,
		}
	}

	schedStart := sh.ScheduledStart(workDate, c.loc)
	schedEnd := sh.ScheduledEnd(workDate, c.loc)
	rawLate := lateMinutes(checkIn, schedStart)

	var regular, overtime time.Duration

	switch sh.Kind {
	case shift.KindAllTimeOvertime:
		// Every minute worked counts as overtime, no delay is ever
		// charged. Used for special on-call shifts.
		return Result{
			OvertimeHours: round2(effective.Hours()),
		}

	case shift.KindDay, shift.KindNight:
		// Windowed rule: time worked before the shift's own start or
		// after its own end is overtime, time inside the window is
		// regular. Breaks are subtracted from the in-window portion
		// first.
		var outside time.Duration
		if before := schedStart.Sub(checkIn); before > 0 {
			outside += before
		}
		if after := checkOut.Sub(schedEnd); after > 0 {
			outside += after
		}
		if outside > effective {
			outside = effective
		}
		overtime = outside
		regular = effective - outside

	default:
		// Custom shift: regular is capped at the scheduled duration,
		// the remainder is overtime.
		capDur := sh.ScheduledDuration()
		if capDur <= 0 {
			capDur = time.Duration(c.defaultExpectedHours * float64(time.Hour))
		}
		regular = effective
		if regular > capDur {
			regular = capDur
		}
		overtime = effective - regular
	}

	expected := c.expectedHours(sh)
	total := regular.Hours() + overtime.Hours()

	// Smart delay reconciliation. A shortfall against the expected hours
	// replaces raw check-in lateness entirely: arriving late but staying
	// to make up the time incurs no delay, while leaving early does.
	// With the expectation met, overtime already earned offsets whatever
	// raw lateness remains.
	var delay int
	var penalty float64
	if total < expected {
		delay = int(math.Round((expected - total) * 60))
		penalty = expected - total
	} else {
		delay = rawLate - int(math.Round(overtime.Hours()*60))
		if delay < 0 {
			delay = 0
		}
	}

	return Result{
		RegularHours:              round2(regular.Hours()),
		OvertimeHours:             round2(overtime.Hours()),
		DelayMinutes:              delay,
		RawLatenessMinutes:        rawLate,
		EarlyCheckoutPenaltyHours: round2(penalty),
		ExpectedHours:             expected,
	}
}

// Offset nets overtime against delay across a period: overtime cancels
// outstanding delay first, and at most one of the two figures survives.
func Offset(totalOvertimeHours, totalDelayHours float64) (netOvertime, netDelay float64) {
	netOvertime = round2(totalOvertimeHours - totalDelayHours)
	netDelay = round2(totalDelayHours - totalOvertimeHours)
	if netOvertime < 0 {
		netOvertime = 0
	}
	if netDelay < 0 {
		netDelay = 0
	}
	return netOvertime, netDelay
}

func (c *Calculator) expectedHours(sh *shift.Shift) float64 {
	switch sh.Kind {
	case shift.KindDay:
		return c.dayExpectedHours
	case shift.KindNight:
		return c.nightExpectedHours
	default:
		if dur := sh.ScheduledDuration(); dur > 0 {
			return dur.Hours()
		}
		return c.defaultExpectedHours
	}
}

func lateMinutes(checkIn, scheduledStart time.Time) int {
	if !checkIn.After(scheduledStart) {
		return 0
	}
	return int(checkIn.Sub(scheduledStart).Minutes())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
