package dateutil

import (
	"fmt"
	"time"
)

// CivilDate is a calendar date with no time-of-day and no timezone.
// Keeping dates separate from instants avoids the off-by-one-day class
// of bugs that comes from parsing "YYYY-MM-DD" as a UTC instant and then
// reading it back in a negative-offset zone.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseCivilDate parses a "YYYY-MM-DD" string.
func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return CivilDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// CivilDateOf extracts the calendar date of t in t's own location.
func CivilDateOf(t time.Time) CivilDate {
	return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// String returns the ISO "YYYY-MM-DD" form.
func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// At combines the date with a clock time in the given location,
// producing an absolute instant. This is the only place a CivilDate
// becomes a time.Time.
func (d CivilDate) At(hour, minute int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, loc)
}

// Weekday returns the day of week for the date. The weekday of a civil
// date is timezone-independent.
func (d CivilDate) Weekday() time.Weekday {
	return d.At(12, 0, time.UTC).Weekday()
}

// AddDays returns the date n days later (or earlier for negative n),
// normalizing month/year boundaries.
func (d CivilDate) AddDays(n int) CivilDate {
	return CivilDateOf(d.At(12, 0, time.UTC).AddDate(0, 0, n))
}

// DaysUntil returns the number of calendar days from d to other.
// Negative when other is before d.
func (d CivilDate) DaysUntil(other CivilDate) int {
	a := d.At(12, 0, time.UTC)
	b := other.At(12, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Before reports whether d is strictly earlier than other.
func (d CivilDate) Before(other CivilDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d CivilDate) After(other CivilDate) bool {
	return other.Before(d)
}

// SameDay reports whether two instants fall on the same calendar day
// when both are viewed in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	return CivilDateOf(a.In(loc)) == CivilDateOf(b.In(loc))
}

// ParseClock parses an "HH:MM" clock value.
func ParseClock(s string) (hour, minute int, err error) {
	if _, err = fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", s)
	}
	return hour, minute, nil
}

// MinutesSinceMidnight returns t's clock position in minutes, in t's
// own location.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
