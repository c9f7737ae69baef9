/*
Package holiday is the authoritative calendar of public and substitute
holidays layered onto the work-schedule rotation.

PURPOSE:
  Supplies holiday lookups to the schedule builder and owns the two
  calendar-maintenance rules:
  - Substitute generation: a holiday on a weekend earns a substitute on the
    next weekday that is neither a weekend nor an existing holiday.
  - Soft deactivation: holidays are never physically deleted, only marked
    inactive, so historical schedules stay reproducible.

IDEMPOTENCY:
  Holidays are upserted by date. Regenerating substitutes for a year never
  duplicates a substitute that already exists for the same source holiday.

SEE ALSO:
  - defaults.go: Seeding a year from the public federal calendar
  - schedule/builder.go: The main consumer of IsHoliday
*/
package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/warp/rotation-engine/rotation"
)

// =============================================================================
// HOLIDAY RECORD
// =============================================================================

// Holiday is one calendar entry. Substitute holidays carry the date of the
// weekend holiday they replace in SubstituteFor.
type Holiday struct {
	ID            string
	Date          rotation.TimePoint
	Name          string
	Year          int
	Active        bool
	Substitute    bool
	SubstituteFor string // YYYY-MM-DD of the source holiday; empty otherwise
	CreatedAt     time.Time
}

// Store persists holidays. Upsert is keyed by date.
type Store interface {
	// UpsertHoliday inserts or updates the holiday on its date.
	UpsertHoliday(ctx context.Context, h Holiday) error

	// GetHolidayByDate returns the holiday on a date regardless of active
	// state, or nil if none exists.
	GetHolidayByDate(ctx context.Context, date rotation.TimePoint) (*Holiday, error)

	// ListHolidays returns all holidays of a year, inactive included,
	// ordered by date.
	ListHolidays(ctx context.Context, year int) ([]Holiday, error)

	// DeactivateHoliday soft-deletes a holiday by id. ErrNotFound if missing.
	DeactivateHoliday(ctx context.Context, id string) error
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry answers holiday lookups and maintains the calendar.
type Registry struct {
	store Store
	log   *logrus.Logger
}

func NewRegistry(store Store, log *logrus.Logger) *Registry {
	if log == nil {
		log = logrus.New()
	}
	return &Registry{store: store, log: log}
}

// IsHoliday reports whether date is an active holiday, and its name.
func (r *Registry) IsHoliday(ctx context.Context, date rotation.TimePoint) (bool, string, error) {
	h, err := r.store.GetHolidayByDate(ctx, date)
	if err != nil {
		return false, "", err
	}
	if h == nil || !h.Active {
		return false, "", nil
	}
	return true, h.Name, nil
}

// Upsert records a holiday on its date. Re-upserting the same date updates
// the name in place; it never spawns a second record.
func (r *Registry) Upsert(ctx context.Context, date rotation.TimePoint, name string) (*Holiday, error) {
	if name == "" {
		return nil, fmt.Errorf("holiday on %s: empty name", date)
	}

	existing, err := r.store.GetHolidayByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	h := Holiday{
		ID:        uuid.NewString(),
		Date:      date,
		Name:      name,
		Year:      date.Year(),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if existing != nil {
		h.ID = existing.ID
		h.Substitute = existing.Substitute
		h.SubstituteFor = existing.SubstituteFor
		h.CreatedAt = existing.CreatedAt
	}

	if err := r.store.UpsertHoliday(ctx, h); err != nil {
		return nil, err
	}

	r.log.WithFields(logrus.Fields{
		"date": date.String(),
		"name": name,
	}).Info("holiday upserted")

	return &h, nil
}

// Deactivate soft-deletes a holiday. The record stays on disk so past
// schedule reads keep seeing the calendar they were built against.
func (r *Registry) Deactivate(ctx context.Context, id string) error {
	return r.store.DeactivateHoliday(ctx, id)
}

// List returns a year's holidays, inactive included.
func (r *Registry) List(ctx context.Context, year int) ([]Holiday, error) {
	return r.store.ListHolidays(ctx, year)
}

// =============================================================================
// SUBSTITUTE GENERATION
// =============================================================================

// GenerateSubstitutes creates a substitute holiday for each active holiday
// of the year that falls on a weekend, placed on the next day that is
// neither a weekend nor an existing active holiday. Calling it twice for
// the same year is a no-op the second time.
func (r *Registry) GenerateSubstitutes(ctx context.Context, year int) ([]Holiday, error) {
	all, err := r.store.ListHolidays(ctx, year)
	if err != nil {
		return nil, err
	}

	// Active holiday dates block substitute placement; substitutes already
	// generated (keyed by source date) must not be generated again.
	occupied := make(map[string]bool)
	substituted := make(map[string]bool)
	for _, h := range all {
		if !h.Active {
			continue
		}
		occupied[h.Date.String()] = true
		if h.Substitute && h.SubstituteFor != "" {
			substituted[h.SubstituteFor] = true
		}
	}

	var created []Holiday
	for _, h := range all {
		if !h.Active || h.Substitute || !h.Date.IsWeekend() {
			continue
		}
		if substituted[h.Date.String()] {
			continue
		}

		sub := Holiday{
			ID:            uuid.NewString(),
			Date:          nextOpenWeekday(h.Date, occupied),
			Name:          h.Name + " (substitute)",
			Active:        true,
			Substitute:    true,
			SubstituteFor: h.Date.String(),
			CreatedAt:     time.Now().UTC(),
		}
		sub.Year = sub.Date.Year()

		if err := r.store.UpsertHoliday(ctx, sub); err != nil {
			return nil, fmt.Errorf("substitute for %s: %w", h.Date, err)
		}
		occupied[sub.Date.String()] = true
		created = append(created, sub)

		r.log.WithFields(logrus.Fields{
			"source":     h.Date.String(),
			"substitute": sub.Date.String(),
			"name":       h.Name,
		}).Info("substitute holiday generated")
	}

	return created, nil
}

// nextOpenWeekday walks forward from the day after `from` until it finds a
// weekday not already occupied by a holiday.
func nextOpenWeekday(from rotation.TimePoint, occupied map[string]bool) rotation.TimePoint {
	d := from.AddDays(1)
	for d.IsWeekend() || occupied[d.String()] {
		d = d.AddDays(1)
	}
	return d
}

// =============================================================================
// VALIDATION REPORT
// =============================================================================

// Report lists calendar problems found by Validate. Errors are data defects;
// warnings are informational overlaps with employee off-days.
type Report struct {
	Year     int
	Errors   []string
	Warnings []string
}

func (rep *Report) OK() bool { return len(rep.Errors) == 0 }

// Validate flags duplicate dates, empty names, and weekday holidays that
// coincide with an employee's rotating off-day. Off-day overlaps are
// informational only; the rotation itself is never altered by them.
func (r *Registry) Validate(ctx context.Context, year int, configs []rotation.EmployeeWorkConfig) (*Report, error) {
	all, err := r.store.ListHolidays(ctx, year)
	if err != nil {
		return nil, err
	}

	rep := &Report{Year: year}
	seen := make(map[string]string)

	for _, h := range all {
		if !h.Active {
			continue
		}
		if h.Name == "" {
			rep.Errors = append(rep.Errors, fmt.Sprintf("holiday on %s has an empty name", h.Date))
		}
		if prev, dup := seen[h.Date.String()]; dup {
			rep.Errors = append(rep.Errors,
				fmt.Sprintf("duplicate holiday date %s (%q and %q)", h.Date, prev, h.Name))
		}
		seen[h.Date.String()] = h.Name

		if h.Date.IsWeekend() {
			continue
		}
		for _, cfg := range configs {
			offDay, err := rotation.OffDayForWeek(cfg, h.Date.WeekStart())
			if err != nil {
				continue // weeks before the employee's anchor carry no off-day
			}
			if offDay == rotation.WeekdayOf(h.Date) {
				rep.Warnings = append(rep.Warnings,
					fmt.Sprintf("holiday %q on %s coincides with off-day of employee %s",
						h.Name, h.Date, cfg.EmployeeID))
			}
		}
	}

	return rep, nil
}
