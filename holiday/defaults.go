package holiday

import (
	"context"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"

	"github.com/warp/rotation-engine/rotation"
)

// defaultCalendar is the federal holiday set used to pre-populate a year.
// Admins adjust from there; nothing forces a deployment to keep these.
var defaultCalendar = []*cal.Holiday{
	us.NewYear,
	us.MlkDay,
	us.MemorialDay,
	us.Juneteenth,
	us.IndependenceDay,
	us.LaborDay,
	us.ThanksgivingDay,
	us.ChristmasDay,
}

// SeedDefaults upserts the default public holidays for a year. Existing
// entries on the same dates are updated, not duplicated. Returns the
// holidays as stored.
func (r *Registry) SeedDefaults(ctx context.Context, year int) ([]Holiday, error) {
	var seeded []Holiday
	for _, def := range defaultCalendar {
		actual, _ := def.Calc(year)
		date := rotation.NewTimePoint(actual.Year(), actual.Month(), actual.Day())
		h, err := r.Upsert(ctx, date, def.Name)
		if err != nil {
			return nil, err
		}
		seeded = append(seeded, *h)
	}
	return seeded, nil
}
