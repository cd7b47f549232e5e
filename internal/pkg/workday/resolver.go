package workday

import (
	"log/slog"
	"sync"
	"time"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
)

// Boundary is the logical 24h attribution window for attendance. It is a
// computed value, always derivable from "now" and configuration, never
// authoritative state.
type Boundary struct {
	WorkDate     time.Time // midnight-anchored date the window belongs to
	WorkDayStart time.Time
	WorkDayEnd   time.Time
}

// Resolver computes work-day boundaries. By default the logical day runs
// midnight to midnight; when the organization's night-shift window
// crosses midnight, the boundary is shifted forward to the window's end
// so an overnight session keeps the date it began on.
//
// The resolver keeps a short-TTL cached boundary so the hot check-in and
// check-out paths do not recompute it per request; a background job
// refreshes it around day transitions.
type Resolver struct {
	loc        *time.Location
	nightStart shift.ClockTime
	nightEnd   shift.ClockTime
	shifted    bool

	ttl    time.Duration
	mu     sync.RWMutex
	cached Boundary
	stamp  time.Time
}

// NewResolver builds a resolver for the given timezone and night window.
// Unparseable configuration degrades to literal midnight boundaries: a
// misconfigured window must never block a check-in.
func NewResolver(timezone string, nightWindowStart, nightWindowEnd string, ttl time.Duration) *Resolver {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		slog.Error("Invalid timezone, falling back to UTC", "timezone", timezone, "error", err)
		loc = time.UTC
	}

	r := &Resolver{loc: loc, ttl: ttl}

	start, errStart := shift.ParseClock(nightWindowStart)
	end, errEnd := shift.ParseClock(nightWindowEnd)
	if errStart != nil || errEnd != nil {
		slog.Error("Invalid night window, falling back to midnight boundaries",
			"start", nightWindowStart, "end", nightWindowEnd)
		return r
	}

	r.nightStart = start
	r.nightEnd = end
	// Only a window that wraps midnight moves the boundary.
	r.shifted = end.MinuteOfDay() < start.MinuteOfDay()
	return r
}

// Resolve computes the boundary containing now. Deterministic for a
// given now and configuration.
func (r *Resolver) Resolve(now time.Time) Boundary {
	local := now.In(r.loc)

	offset := time.Duration(0)
	if r.shifted {
		offset = time.Duration(r.nightEnd.MinuteOfDay()) * time.Minute
	}

	// The logical day covers [date 00:00 + offset, date+1 00:00 + offset).
	// Subtracting the offset aligns the after-midnight tail of a night
	// shift with the previous calendar day.
	adjusted := local.Add(-offset)
	date := time.Date(adjusted.Year(), adjusted.Month(), adjusted.Day(), 0, 0, 0, 0, r.loc)

	return Boundary{
		WorkDate:     date,
		WorkDayStart: date.Add(offset),
		WorkDayEnd:   date.Add(offset).Add(24 * time.Hour),
	}
}

// Current returns the cached boundary, recomputing when stale. Cheap
// enough for every check-in/check-out; staleness is bounded by the TTL.
func (r *Resolver) Current(now time.Time) Boundary {
	r.mu.RLock()
	if !r.stamp.IsZero() && now.Sub(r.stamp) < r.ttl && !now.After(r.cached.WorkDayEnd) && !now.Before(r.cached.WorkDayStart) {
		b := r.cached
		r.mu.RUnlock()
		return b
	}
	r.mu.RUnlock()

	return r.Refresh(now)
}

// Refresh recomputes and caches the boundary for now.
func (r *Resolver) Refresh(now time.Time) Boundary {
	b := r.Resolve(now)

	r.mu.Lock()
	r.cached = b
	r.stamp = now
	r.mu.Unlock()

	return b
}

// Location returns the resolver's timezone, shared with the computation
// engine so scheduled instants are anchored consistently.
func (r *Resolver) Location() *time.Location {
	return r.loc
}
