package workday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return ts
}

func TestResolve_MidnightDefault(t *testing.T) {
	// Day window 09:00-17:00 does not wrap, so boundaries stay at midnight.
	r := NewResolver("UTC", "09:00", "17:00", 5*time.Minute)

	b := r.Resolve(mustTime(t, "2025-03-10T15:30:00Z"))

	assert.Equal(t, "2025-03-10", b.WorkDate.Format("2006-01-02"))
	assert.Equal(t, "2025-03-10T00:00:00Z", b.WorkDayStart.Format(time.RFC3339))
	assert.Equal(t, "2025-03-11T00:00:00Z", b.WorkDayEnd.Format(time.RFC3339))
}

func TestResolve_NightWindowKeepsOvernightSessionOnOneDate(t *testing.T) {
	r := NewResolver("UTC", "22:00", "06:00", 5*time.Minute)

	before := r.Resolve(mustTime(t, "2025-03-10T23:45:00Z"))
	after := r.Resolve(mustTime(t, "2025-03-11T05:30:00Z"))

	assert.Equal(t, "2025-03-10", before.WorkDate.Format("2006-01-02"))
	assert.Equal(t, "2025-03-10", after.WorkDate.Format("2006-01-02"))
	assert.Equal(t, before.WorkDayStart, after.WorkDayStart)
}

func TestResolve_NightWindowNewDayStartsAtWindowEnd(t *testing.T) {
	r := NewResolver("UTC", "22:00", "06:00", 5*time.Minute)

	b := r.Resolve(mustTime(t, "2025-03-11T06:00:00Z"))

	assert.Equal(t, "2025-03-11", b.WorkDate.Format("2006-01-02"))
	assert.Equal(t, "2025-03-11T06:00:00Z", b.WorkDayStart.Format(time.RFC3339))
}

func TestResolve_InvalidWindowFallsBackToMidnight(t *testing.T) {
	r := NewResolver("UTC", "not-a-clock", "06:00", 5*time.Minute)

	b := r.Resolve(mustTime(t, "2025-03-11T02:00:00Z"))

	// Fallback: literal midnight attribution, never an error.
	assert.Equal(t, "2025-03-11", b.WorkDate.Format("2006-01-02"))
	assert.Equal(t, "2025-03-11T00:00:00Z", b.WorkDayStart.Format(time.RFC3339))
}

func TestCurrent_CachesWithinTTL(t *testing.T) {
	r := NewResolver("UTC", "09:00", "17:00", 5*time.Minute)

	first := r.Current(mustTime(t, "2025-03-10T10:00:00Z"))
	second := r.Current(mustTime(t, "2025-03-10T10:02:00Z"))

	assert.Equal(t, first, second)
}

func TestCurrent_RecomputesAcrossDayBoundary(t *testing.T) {
	r := NewResolver("UTC", "09:00", "17:00", 5*time.Minute)

	r.Current(mustTime(t, "2025-03-10T23:59:00Z"))
	next := r.Current(mustTime(t, "2025-03-11T00:01:00Z"))

	// Even inside the TTL, a now outside the cached window forces a refresh.
	assert.Equal(t, "2025-03-11", next.WorkDate.Format("2006-01-02"))
}
