package holiday_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rotation-engine/holiday"
	"github.com/warp/rotation-engine/rotation"
	"github.com/warp/rotation-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestRegistry(t *testing.T) (*holiday.Registry, *memory.Store) {
	t.Helper()
	store := memory.New()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return holiday.NewRegistry(store, log), store
}

func date(y int, m time.Month, d int) rotation.TimePoint {
	return rotation.NewTimePoint(y, m, d)
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestUpsert_SameDateUpdatesInPlace(t *testing.T) {
	// GIVEN: A holiday already on 2024-06-19
	reg, _ := newTestRegistry(t)
	ctx := context.Background()
	first, err := reg.Upsert(ctx, date(2024, time.June, 19), "Juneteenth")
	require.NoError(t, err)

	// WHEN: Upserting the same date with a new name
	second, err := reg.Upsert(ctx, date(2024, time.June, 19), "Juneteenth (observed)")
	require.NoError(t, err)

	// THEN: The record is updated, not duplicated
	assert.Equal(t, first.ID, second.ID)
	all, err := reg.List(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Juneteenth (observed)", all[0].Name)
}

func TestIsHoliday_IgnoresDeactivated(t *testing.T) {
	// GIVEN: A deactivated holiday
	reg, _ := newTestRegistry(t)
	ctx := context.Background()
	h, err := reg.Upsert(ctx, date(2024, time.July, 4), "Independence Day")
	require.NoError(t, err)
	require.NoError(t, reg.Deactivate(ctx, h.ID))

	// WHEN: Checking the date
	isHoliday, _, err := reg.IsHoliday(ctx, date(2024, time.July, 4))

	// THEN: It no longer counts, but the record survives in listings
	require.NoError(t, err)
	assert.False(t, isHoliday)
	all, err := reg.List(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)
}

// =============================================================================
// SUBSTITUTE GENERATION TESTS
// =============================================================================

func TestGenerateSubstitutes_SaturdayMovesToMonday(t *testing.T) {
	// GIVEN: A holiday on Saturday 2024-06-08
	reg, _ := newTestRegistry(t)
	ctx := context.Background()
	_, err := reg.Upsert(ctx, date(2024, time.June, 8), "Founders' Day")
	require.NoError(t, err)

	// WHEN: Generating substitutes for the year
	created, err := reg.GenerateSubstitutes(ctx, 2024)

	// THEN: One substitute appears on Monday 2024-06-10
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "2024-06-10", created[0].Date.String())
	assert.Equal(t, "Founders' Day (substitute)", created[0].Name)
	assert.True(t, created[0].Substitute)
	assert.Equal(t, "2024-06-08", created[0].SubstituteFor)
}

func TestGenerateSubstitutes_SkipsOccupiedDays(t *testing.T) {
	// GIVEN: A Sunday holiday whose following Monday is itself a holiday
	reg, _ := newTestRegistry(t)
	ctx := context.Background()
	_, err := reg.Upsert(ctx, date(2024, time.June, 9), "Heritage Day")
	require.NoError(t, err)
	_, err = reg.Upsert(ctx, date(2024, time.June, 10), "Another Day")
	require.NoError(t, err)

	// WHEN: Generating substitutes
	created, err := reg.GenerateSubstitutes(ctx, 2024)

	// THEN: The substitute skips past the occupied Monday to Tuesday
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "2024-06-11", created[0].Date.String())
}

func TestGenerateSubstitutes_Idempotent(t *testing.T) {
	// GIVEN: Substitutes already generated for the year
	reg, _ := newTestRegistry(t)
	ctx := context.Background()
	_, err := reg.Upsert(ctx, date(2024, time.June, 8), "Founders' Day")
	require.NoError(t, err)
	first, err := reg.GenerateSubstitutes(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// WHEN: Running generation again
	second, err := reg.GenerateSubstitutes(ctx, 2024)

	// THEN: Nothing new is created
	require.NoError(t, err)
	assert.Empty(t, second)
	all, err := reg.List(ctx, 2024)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGenerateSubstitutes_WeekdayHolidayUntouched(t *testing.T) {
	// GIVEN: A Wednesday holiday
	reg, _ := newTestRegistry(t)
	ctx := context.Background()
	_, err := reg.Upsert(ctx, date(2024, time.June, 19), "Juneteenth")
	require.NoError(t, err)

	// WHEN: Generating substitutes
	created, err := reg.GenerateSubstitutes(ctx, 2024)

	// THEN: Weekday holidays produce nothing
	require.NoError(t, err)
	assert.Empty(t, created)
}

// =============================================================================
// DEFAULT CALENDAR TESTS
// =============================================================================

func TestSeedDefaults_LoadsFederalCalendar(t *testing.T) {
	// GIVEN: An empty calendar
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	// WHEN: Seeding the defaults for 2024
	seeded, err := reg.SeedDefaults(ctx, 2024)

	// THEN: The well-known fixed dates are present
	require.NoError(t, err)
	require.NotEmpty(t, seeded)

	byDate := make(map[string]string)
	for _, h := range seeded {
		byDate[h.Date.String()] = h.Name
	}
	assert.Contains(t, byDate, "2024-01-01") // New Year's Day
	assert.Contains(t, byDate, "2024-07-04") // Independence Day
	assert.Contains(t, byDate, "2024-12-25") // Christmas
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate_FlagsOffDayCoincidence(t *testing.T) {
	// GIVEN: A Wednesday holiday in the anchor week of an employee whose
	// off-day that week is Wednesday
	reg, _ := newTestRegistry(t)
	ctx := context.Background()
	_, err := reg.Upsert(ctx, date(2024, time.January, 3), "Winter Break")
	require.NoError(t, err)

	cfg := rotation.EmployeeWorkConfig{
		EmployeeID: "alice",
		BaseOffDay: rotation.Wednesday,
		CycleStart: date(2024, time.January, 1),
	}

	// WHEN: Validating the calendar
	report, err := reg.Validate(ctx, 2024, []rotation.EmployeeWorkConfig{cfg})

	// THEN: A warning names the coincidence; it is not an error
	require.NoError(t, err)
	assert.True(t, report.OK())
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "alice")
}

func TestValidate_CleanCalendarIsOK(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()
	_, err := reg.Upsert(ctx, date(2024, time.July, 4), "Independence Day")
	require.NoError(t, err)

	report, err := reg.Validate(ctx, 2024, nil)

	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Empty(t, report.Warnings)
}
