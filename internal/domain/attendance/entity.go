package attendance

import (
	"time"
)

// Record is one check-in-to-check-out work session for one employee on
// one work day. At most one record per employee may be open
// (CheckOutTime == nil) at any instant; the storage layer enforces this
// with a partial unique index.
type Record struct {
	ID           string
	EmployeeID   string
	CompanyID    string
	WorkDate     time.Time
	ShiftID      *string
	CheckInTime  time.Time
	CheckOutTime *time.Time
	Breaks       []BreakSession
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BreakSession is one break interval inside an open attendance record.
// At most one break per record may be open at a time.
type BreakSession struct {
	ID        string
	RecordID  string
	StartTime time.Time
	EndTime   *time.Time
	Reason    string
	CreatedAt time.Time
}

// Duration returns the elapsed break time. An open session contributes
// zero until it is closed; fractions of a minute are preserved and only
// rounded at the display boundary.
func (b *BreakSession) Duration() time.Duration {
	if b.EndTime == nil {
		return 0
	}
	return b.EndTime.Sub(b.StartTime)
}

// IsOpen reports whether the break has not been stopped yet.
func (b *BreakSession) IsOpen() bool {
	return b.EndTime == nil
}

// OpenBreak returns the currently open break session, if any.
func (r *Record) OpenBreak() *BreakSession {
	for i := range r.Breaks {
		if r.Breaks[i].IsOpen() {
			return &r.Breaks[i]
		}
	}
	return nil
}

// IsOnBreak reports whether a break session is currently open.
func (r *Record) IsOnBreak() bool {
	return r.OpenBreak() != nil
}

// CurrentBreakReason returns the reason of the open break, or "".
func (r *Record) CurrentBreakReason() string {
	if b := r.OpenBreak(); b != nil {
		return b.Reason
	}
	return ""
}

// TotalBreak sums the durations of all closed break sessions.
func (r *Record) TotalBreak() time.Duration {
	var total time.Duration
	for i := range r.Breaks {
		total += r.Breaks[i].Duration()
	}
	return total
}

// TotalBreakMinutes is TotalBreak rounded to whole minutes for display
// and persistence of the cached column.
func (r *Record) TotalBreakMinutes() int {
	return int(r.TotalBreak().Round(time.Minute) / time.Minute)
}

// IsOpen reports whether the session has not been checked out yet.
func (r *Record) IsOpen() bool {
	return r.CheckOutTime == nil
}
