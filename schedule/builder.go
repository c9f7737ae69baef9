/*
Package schedule assembles the day-by-day month view.

PURPOSE:
  Composes the cycle calculator, the holiday registry, approved half-day
  leaves, and approved one-week swaps into a schedule for a requested month.

DERIVED, NEVER STORED:
  Schedule entries are recomputed on every query from config + holidays +
  approved-request history. Corrections to holidays or late approvals
  retroactively fix displayed history with no migration; two builds over
  identical inputs are byte-for-byte identical.

OFF-DAY RULE:
  An approved change overrides the off-day for its week only. A holiday
  elsewhere in the week sets an advisory flag at the month level; it never
  alters the off-day computation itself.

SEE ALSO:
  - rotation/cycle.go: The off-day arithmetic
  - holiday/registry.go: Holiday lookups
*/
package schedule

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/rotation-engine/leave"
	"github.com/warp/rotation-engine/rotation"
	"github.com/warp/rotation-engine/swap"
)

// =============================================================================
// SCHEDULE VIEW TYPES
// =============================================================================

// DayEntry is one calendar day of the schedule view. Derived on every read,
// never persisted.
type DayEntry struct {
	Date      rotation.TimePoint
	DayOfWeek rotation.Weekday

	// OffDay is the week's mandated off-day after any approved swap.
	OffDay rotation.Weekday

	IsOffDay    bool
	IsHoliday   bool
	HolidayName string

	HasHalfDay  bool
	HalfDayType leave.Type
}

// MonthSchedule is a full month plus its aggregates.
type MonthSchedule struct {
	EmployeeID string
	Year       int
	Month      time.Month
	Entries    []DayEntry

	// WorkDaysCount counts days with any work, half-days included.
	WorkDaysCount int

	// TotalHours is 8h per full work day plus 4h per half-leave day.
	// Off-days, holidays and weekends contribute 0.
	TotalHours decimal.Decimal

	// WeeksWithHoliday flags weeks containing a holiday on a non-off
	// weekday. Advisory only; the off-day computation ignores it.
	WeeksWithHoliday []rotation.TimePoint
}

// HolidayLookup is the slice of the holiday registry the builder needs.
type HolidayLookup interface {
	IsHoliday(ctx context.Context, date rotation.TimePoint) (bool, string, error)
}

var (
	fullDayHours = decimal.NewFromInt(8)
	halfDayHours = decimal.NewFromInt(4)
)

// =============================================================================
// BUILDER
// =============================================================================

// Builder composes schedule views. Read-only; safe for arbitrary
// parallelism against committed data.
type Builder struct {
	holidays HolidayLookup
}

func NewBuilder(holidays HolidayLookup) *Builder {
	return &Builder{holidays: holidays}
}

// BuildMonth computes the schedule for one calendar month. It returns a
// full month or an error; it never partially fails. Months containing a
// week before the rotation anchor fail with ErrInvalidConfig.
func (b *Builder) BuildMonth(ctx context.Context, cfg rotation.EmployeeWorkConfig,
	year int, month time.Month,
	approvedLeaves []leave.Request, approvedChanges []swap.Request) (*MonthSchedule, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	overrides := make(map[string]rotation.Weekday, len(approvedChanges))
	for _, c := range approvedChanges {
		if c.Status == rotation.StatusApproved {
			overrides[c.WeekStart.String()] = c.TemporaryOffDay
		}
	}

	halfDays := make(map[string]leave.Type, len(approvedLeaves))
	for _, l := range approvedLeaves {
		if l.Status == rotation.StatusApproved {
			halfDays[l.Date.String()] = l.Type
		}
	}

	first := rotation.StartOfMonth(year, month)
	last := rotation.EndOfMonth(year, month)

	sched := &MonthSchedule{
		EmployeeID: cfg.EmployeeID,
		Year:       year,
		Month:      month,
		TotalHours: decimal.Zero,
	}
	holidayWeeks := make(map[string]bool)

	for day := first; day.BeforeOrEqual(last); day = day.AddDays(1) {
		weekStart := day.WeekStart()

		offDay, err := rotation.OffDayForWeek(cfg, weekStart)
		if err != nil {
			return nil, err
		}
		if override, ok := overrides[weekStart.String()]; ok {
			offDay = override
		}

		isHoliday, holidayName, err := b.holidays.IsHoliday(ctx, day)
		if err != nil {
			return nil, err
		}

		dow := rotation.WeekdayOf(day)
		entry := DayEntry{
			Date:        day,
			DayOfWeek:   dow,
			OffDay:      offDay,
			IsOffDay:    dow == offDay,
			IsHoliday:   isHoliday,
			HolidayName: holidayName,
		}

		if t, ok := halfDays[day.String()]; ok {
			entry.HasHalfDay = true
			entry.HalfDayType = t
		}

		if isHoliday && dow.IsWorkWeekday() && dow != offDay {
			holidayWeeks[weekStart.String()] = true
		}

		if working := dow.IsWorkWeekday() && !entry.IsOffDay && !isHoliday; working {
			sched.WorkDaysCount++
			if entry.HasHalfDay {
				sched.TotalHours = sched.TotalHours.Add(halfDayHours)
			} else {
				sched.TotalHours = sched.TotalHours.Add(fullDayHours)
			}
		}

		sched.Entries = append(sched.Entries, entry)
	}

	// Advisory flags in week order.
	for week := first.WeekStart(); week.BeforeOrEqual(last); week = week.AddWeeks(1) {
		if holidayWeeks[week.String()] {
			sched.WeeksWithHoliday = append(sched.WeeksWithHoliday, week)
		}
	}

	return sched, nil
}
