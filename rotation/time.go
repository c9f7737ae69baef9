package rotation

import (
	"fmt"
	"time"
)

// =============================================================================
// TIME POINT - Day-granularity calendar date
// =============================================================================

// TimePoint is a calendar date. The rotation engine never cares about
// anything finer than a day, so TimePoint normalizes to midnight UTC.
type TimePoint struct {
	Time time.Time
}

// NewTimePoint constructs a TimePoint for the given calendar day.
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() TimePoint {
	now := time.Now()
	return NewTimePoint(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (TimePoint, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return TimePoint{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return TimePoint{Time: t.UTC()}, nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.normalize().Before(other.normalize()) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.normalize().Equal(other.normalize()) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.normalize().After(other.normalize()) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return tp.Before(other) || tp.Equal(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return tp.After(other) || tp.Equal(other) }

func (tp TimePoint) normalize() time.Time {
	return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint  { return TimePoint{Time: tp.normalize().AddDate(0, 0, n)} }
func (tp TimePoint) AddWeeks(n int) TimePoint { return tp.AddDays(7 * n) }

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }
func (tp TimePoint) IsWeekend() bool {
	wd := tp.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (tp TimePoint) IsMonday() bool { return tp.Weekday() == time.Monday }
func (tp TimePoint) IsZero() bool   { return tp.Time.IsZero() }

func (tp TimePoint) String() string { return tp.normalize().Format("2006-01-02") }

// WeekStart returns the Monday of the week containing tp.
// Weeks are anchored to Monday everywhere in the rotation engine.
func (tp TimePoint) WeekStart() TimePoint {
	wd := int(tp.Weekday())
	if wd == 0 { // Sunday
		wd = 7
	}
	return tp.AddDays(-(wd - 1))
}

// DaysBetween returns the number of whole days from one date to another.
func DaysBetween(from, to TimePoint) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// WeeksBetween returns the number of whole weeks between two Mondays.
func WeeksBetween(from, to TimePoint) int {
	return DaysBetween(from, to) / 7
}

func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }

func EndOfMonth(year int, month time.Month) TimePoint {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return TimePoint{Time: t}
}

// =============================================================================
// WEEKDAY - Numeric weekday codes used by the rotation
// =============================================================================

// Weekday is the numeric weekday code used throughout the schedule domain:
// 1=Monday .. 5=Friday for working days, 6=Saturday, 7=Sunday.
// Off-days are always in the 1..5 range.
type Weekday int

const (
	Monday    Weekday = 1
	Tuesday   Weekday = 2
	Wednesday Weekday = 3
	Thursday  Weekday = 4
	Friday    Weekday = 5
	Saturday  Weekday = 6
	Sunday    Weekday = 7
)

// IsWorkWeekday reports whether the code is a valid off-day candidate (Mon-Fri).
func (w Weekday) IsWorkWeekday() bool { return w >= Monday && w <= Friday }

var weekdayNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func (w Weekday) String() string {
	if name, ok := weekdayNames[w]; ok {
		return name
	}
	return fmt.Sprintf("Weekday(%d)", int(w))
}

// WeekdayOf converts a date to its numeric weekday code.
func WeekdayOf(tp TimePoint) Weekday {
	wd := int(tp.Weekday())
	if wd == 0 { // time.Sunday
		return Sunday
	}
	return Weekday(wd)
}
