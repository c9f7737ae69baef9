/*
cycle.go - The rotating off-day calculation

PURPOSE:
  Pure functions mapping (employee config, week) to that week's mandated
  off-day. The whole scheduling system hangs off this arithmetic, so it
  lives alone here with no dependencies.

THE ROTATION:
  cycleNumber = floor((weekStart - cycleStart) / 7 days)
  offDay      = ((baseOffDay - 1 + cycleNumber) mod 5) + 1

  Over any 5 consecutive weeks every weekday Mon-Fri is the off-day exactly
  once before the pattern repeats. That completeness is the fairness property
  the rotating 4-day week exists to provide.

EDGE CASES:
  Weeks before the cycle anchor have no defined cycle number; asking about
  one fails with ErrInvalidConfig rather than extrapolating backwards.

SEE ALSO:
  - config.go: EmployeeWorkConfig and its invariants
  - schedule/builder.go: Composes this with holidays and approved requests
*/
package rotation

// CycleNumber returns how many whole weeks weekStart lies after the
// config's anchor Monday. Weeks before the anchor are undefined.
func CycleNumber(cfg EmployeeWorkConfig, weekStart TimePoint) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	monday := weekStart.WeekStart()
	if monday.Before(cfg.CycleStart) {
		return 0, &CycleRangeError{EmployeeID: cfg.EmployeeID, WeekStart: monday, Anchor: cfg.CycleStart}
	}
	return WeeksBetween(cfg.CycleStart, monday), nil
}

// OffDayForWeek returns the mandated off-day (1=Mon..5=Fri) for the week
// containing weekStart.
func OffDayForWeek(cfg EmployeeWorkConfig, weekStart TimePoint) (Weekday, error) {
	cycle, err := CycleNumber(cfg, weekStart)
	if err != nil {
		return 0, err
	}
	return Weekday((int(cfg.BaseOffDay)-1+cycle)%5 + 1), nil
}

// OffDayDate returns the calendar date of the off-day in the week
// containing weekStart.
func OffDayDate(cfg EmployeeWorkConfig, weekStart TimePoint) (TimePoint, error) {
	offDay, err := OffDayForWeek(cfg, weekStart)
	if err != nil {
		return TimePoint{}, err
	}
	return weekStart.WeekStart().AddDays(int(offDay) - 1), nil
}

// NextCycle returns the start of the week after weekStart together with its
// computed off-day. Used by forward-looking summaries ("your next off-days").
func NextCycle(cfg EmployeeWorkConfig, weekStart TimePoint) (TimePoint, Weekday, error) {
	next := weekStart.WeekStart().AddWeeks(1)
	offDay, err := OffDayForWeek(cfg, next)
	if err != nil {
		return TimePoint{}, 0, err
	}
	return next, offDay, nil
}

// CyclePreview is one week of a forward rotation preview.
type CyclePreview struct {
	WeekStart TimePoint
	OffDay    Weekday
	OffDate   TimePoint
}

// RotationPreview walks forward week by week from the week containing
// `from` and returns the computed off-day for each of the next `weeks`
// weeks. Pure and side-effect free.
func RotationPreview(cfg EmployeeWorkConfig, from TimePoint, weeks int) ([]CyclePreview, error) {
	if weeks <= 0 {
		weeks = 4
	}
	preview := make([]CyclePreview, 0, weeks)
	weekStart := from.WeekStart()
	for i := 0; i < weeks; i++ {
		offDay, err := OffDayForWeek(cfg, weekStart)
		if err != nil {
			return nil, err
		}
		preview = append(preview, CyclePreview{
			WeekStart: weekStart,
			OffDay:    offDay,
			OffDate:   weekStart.AddDays(int(offDay) - 1),
		})
		weekStart = weekStart.AddWeeks(1)
	}
	return preview, nil
}

// CycleRangeError reports a week asked about before the rotation anchor.
type CycleRangeError struct {
	EmployeeID string
	WeekStart  TimePoint
	Anchor     TimePoint
}

func (e *CycleRangeError) Error() string {
	return "week " + e.WeekStart.String() + " precedes cycle anchor " + e.Anchor.String() +
		" for employee " + e.EmployeeID
}

func (e *CycleRangeError) Unwrap() error { return ErrInvalidConfig }
