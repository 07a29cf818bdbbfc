// Package biztime holds the business timezone used to draw day boundaries.
// Storage and transport stay in UTC; the business timezone is only consulted
// when a value must be bucketed into a calendar day.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "UTC"

	// DayLayout is the storage format of a business day key.
	DayLayout = "2006-01-02"
)

var (
	bizLocation *time.Location
	locationMu  sync.RWMutex
)

// Init sets the business timezone. An empty tz selects UTC.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load business timezone %q: %w", tz, err)
	}
	locationMu.Lock()
	bizLocation = loc
	locationMu.Unlock()
	return nil
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(err)
	}
}

// Location returns the business timezone, UTC when Init was never called.
func Location() *time.Location {
	locationMu.RLock()
	defer locationMu.RUnlock()
	if bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns midnight of t's business day, expressed in UTC.
func StartOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	startOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 0, 0, 0, 0, Location())
	return startOfDay.UTC()
}

// DayKey returns the business day containing t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.In(Location()).Format(DayLayout)
}

// Today returns the current business day key.
func Today() string {
	return DayKey(time.Now())
}

// ParseDate parses a YYYY-MM-DD string as a calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", s, err)
	}
	return t, nil
}
