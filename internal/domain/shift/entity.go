package shift

import (
	"fmt"
	"strings"
	"time"
)

// ShiftKind classifies how a shift's worked time is split into regular
// and overtime hours. Legacy data classified shifts by substring-matching
// their names; the kind is now explicit on the entity and the name is
// only consulted once, at import time, via KindFromName.
type ShiftKind string

const (
	KindDay             ShiftKind = "day"
	KindNight           ShiftKind = "night"
	KindCustom          ShiftKind = "custom"
	KindAllTimeOvertime ShiftKind = "all_time_overtime"
)

var ShiftKindValues = []string{
	string(KindDay),
	string(KindNight),
	string(KindCustom),
	string(KindAllTimeOvertime),
}

// KindFromName classifies a legacy shift by its name. Only used when
// backfilling rows that predate the explicit kind column.
func KindFromName(name string, allTimeOvertime bool) ShiftKind {
	if allTimeOvertime {
		return KindAllTimeOvertime
	}
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "day"):
		return KindDay
	case strings.Contains(lower, "night"):
		return KindNight
	default:
		return KindCustom
	}
}

// ClockTime is a wall-clock time of day (HH:MM). Shift schedules are
// wall-clock templates, not instants; a shift whose end is earlier than
// its start wraps past midnight.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM".
func ParseClock(s string) (ClockTime, error) {
	var c ClockTime
	if _, err := fmt.Sscanf(s, "%d:%d", &c.Hour, &c.Minute); err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return c, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MinuteOfDay returns minutes since midnight, in [0, 1440).
func (c ClockTime) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

// At anchors the wall-clock time on a calendar date in the given location.
func (c ClockTime) At(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, loc)
}

// Shift is a named schedule template. Once an attendance record
// references a shift, the row is treated as immutable; edits create a new
// row and deactivate the old one.
type Shift struct {
	ID        string
	CompanyID string
	Name      string
	Kind      ShiftKind
	Position  string
	StartTime ClockTime
	EndTime   ClockTime
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WrapsMidnight reports whether the shift's schedule crosses midnight.
func (s *Shift) WrapsMidnight() bool {
	return s.EndTime.MinuteOfDay() <= s.StartTime.MinuteOfDay()
}

// ScheduledDuration is the nominal length of the shift, handling
// overnight wraparound. Zero when start and end coincide.
func (s *Shift) ScheduledDuration() time.Duration {
	start := s.StartTime.MinuteOfDay()
	end := s.EndTime.MinuteOfDay()
	if end == start {
		return 0
	}
	minutes := end - start
	if minutes < 0 {
		minutes += 24 * 60
	}
	return time.Duration(minutes) * time.Minute
}

// ScheduledStart anchors the shift start on a work date.
func (s *Shift) ScheduledStart(workDate time.Time, loc *time.Location) time.Time {
	return s.StartTime.At(workDate, loc)
}

// ScheduledEnd anchors the shift end on a work date, rolling to the next
// calendar day for overnight shifts.
func (s *Shift) ScheduledEnd(workDate time.Time, loc *time.Location) time.Time {
	end := s.EndTime.At(workDate, loc)
	if s.WrapsMidnight() {
		end = end.Add(24 * time.Hour)
	}
	return end
}

// Assignment is an explicit manager override binding one employee to one
// shift (or to a day off) on one calendar date. It takes precedence over
// time-based shift inference.
type Assignment struct {
	ID         string
	CompanyID  string
	EmployeeID string
	WorkDate   time.Time
	ShiftID    *string
	IsDayOff   bool
	AssignedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ResolutionOutcome is how a (employee, work date) pair resolved.
type ResolutionOutcome string

const (
	OutcomeAssigned   ResolutionOutcome = "assigned"
	OutcomeDayOff     ResolutionOutcome = "day_off"
	OutcomeUnassigned ResolutionOutcome = "unassigned"
)

// Resolution is the result of shift resolution for one employee on one
// work date. Shift is non-nil only for OutcomeAssigned. Explicit reports
// whether the resolution came from a manager assignment rather than
// time-based inference.
type Resolution struct {
	Outcome  ResolutionOutcome
	Shift    *Shift
	Explicit bool
}
