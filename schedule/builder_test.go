package schedule_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rotation-engine/holiday"
	"github.com/warp/rotation-engine/leave"
	"github.com/warp/rotation-engine/rotation"
	"github.com/warp/rotation-engine/schedule"
	"github.com/warp/rotation-engine/store/memory"
	"github.com/warp/rotation-engine/swap"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// aliceMay: base off-day Wednesday anchored Monday 2024-01-01. In May 2024
// the rotation runs Friday 05-03, Monday 05-06, Tuesday 05-14,
// Wednesday 05-22, Thursday 05-30.
func aliceConfig() rotation.EmployeeWorkConfig {
	return rotation.EmployeeWorkConfig{
		EmployeeID: "alice",
		BaseOffDay: rotation.Wednesday,
		CycleStart: rotation.NewTimePoint(2024, time.January, 1),
	}
}

func newTestBuilder(t *testing.T) (*schedule.Builder, *holiday.Registry) {
	t.Helper()
	store := memory.New()
	log := logrus.New()
	log.SetOutput(io.Discard)
	reg := holiday.NewRegistry(store, log)
	return schedule.NewBuilder(reg), reg
}

func entryOn(t *testing.T, s *schedule.MonthSchedule, date string) schedule.DayEntry {
	t.Helper()
	for _, e := range s.Entries {
		if e.Date.String() == date {
			return e
		}
	}
	t.Fatalf("no entry for %s", date)
	return schedule.DayEntry{}
}

// =============================================================================
// MONTH VIEW TESTS
// =============================================================================

func TestBuildMonth_MarksRotatingOffDays(t *testing.T) {
	// GIVEN: Alice's rotation over May 2024
	builder, _ := newTestBuilder(t)

	// WHEN: Building the month
	s, err := builder.BuildMonth(context.Background(), aliceConfig(), 2024, time.May, nil, nil)
	require.NoError(t, err)
	require.Len(t, s.Entries, 31)

	// THEN: Exactly the rotation's off-dates are flagged
	wantOff := map[string]bool{
		"2024-05-03": true, "2024-05-06": true, "2024-05-14": true,
		"2024-05-22": true, "2024-05-30": true,
	}
	for _, e := range s.Entries {
		assert.Equal(t, wantOff[e.Date.String()], e.IsOffDay, "day %s", e.Date)
	}
}

func TestBuildMonth_Aggregates(t *testing.T) {
	// GIVEN: May 2024 has 23 weekdays, 5 of them off-days
	builder, _ := newTestBuilder(t)

	// WHEN: Building with no leaves or changes
	s, err := builder.BuildMonth(context.Background(), aliceConfig(), 2024, time.May, nil, nil)

	// THEN: 18 full work days at 8 hours each
	require.NoError(t, err)
	assert.Equal(t, 18, s.WorkDaysCount)
	assert.Equal(t, "144", s.TotalHours.String())
}

func TestBuildMonth_ApprovedChangeMovesOneWeekOnly(t *testing.T) {
	// GIVEN: An approved change for the week of 2024-05-06, Monday -> Friday
	builder, _ := newTestBuilder(t)
	change := swap.Request{
		ID:              "chg-1",
		EmployeeID:      "alice",
		WeekStart:       rotation.NewTimePoint(2024, time.May, 6),
		OriginalOffDay:  rotation.Monday,
		TemporaryOffDay: rotation.Friday,
		Status:          rotation.StatusApproved,
	}

	// WHEN: Building the month
	s, err := builder.BuildMonth(context.Background(), aliceConfig(), 2024, time.May,
		nil, []swap.Request{change})
	require.NoError(t, err)

	// THEN: That week's off-day moved; the next week still rotates normally
	assert.False(t, entryOn(t, s, "2024-05-06").IsOffDay)
	assert.True(t, entryOn(t, s, "2024-05-10").IsOffDay)
	assert.True(t, entryOn(t, s, "2024-05-14").IsOffDay)
	assert.Equal(t, 18, s.WorkDaysCount)
}

func TestBuildMonth_PendingChangeIgnored(t *testing.T) {
	// GIVEN: A change that was never approved
	builder, _ := newTestBuilder(t)
	change := swap.Request{
		ID:              "chg-1",
		EmployeeID:      "alice",
		WeekStart:       rotation.NewTimePoint(2024, time.May, 6),
		OriginalOffDay:  rotation.Monday,
		TemporaryOffDay: rotation.Friday,
		Status:          rotation.StatusPending,
	}

	// WHEN/THEN: The schedule shows the unchanged rotation
	s, err := builder.BuildMonth(context.Background(), aliceConfig(), 2024, time.May,
		nil, []swap.Request{change})
	require.NoError(t, err)
	assert.True(t, entryOn(t, s, "2024-05-06").IsOffDay)
	assert.False(t, entryOn(t, s, "2024-05-10").IsOffDay)
}

func TestBuildMonth_ApprovedHalfDayCountsFourHours(t *testing.T) {
	// GIVEN: An approved half morning off on Thursday 2024-05-16
	builder, _ := newTestBuilder(t)
	halfDay := leave.Request{
		ID:         "req-1",
		EmployeeID: "alice",
		Date:       rotation.NewTimePoint(2024, time.May, 16),
		Type:       leave.HalfAM,
		Status:     rotation.StatusApproved,
	}

	// WHEN: Building the month
	s, err := builder.BuildMonth(context.Background(), aliceConfig(), 2024, time.May,
		[]leave.Request{halfDay}, nil)
	require.NoError(t, err)

	// THEN: The day still counts as worked but only contributes 4 hours
	e := entryOn(t, s, "2024-05-16")
	assert.True(t, e.HasHalfDay)
	assert.Equal(t, leave.HalfAM, e.HalfDayType)
	assert.Equal(t, 18, s.WorkDaysCount)
	assert.Equal(t, "140", s.TotalHours.String())
}

func TestBuildMonth_HolidayZeroesTheDayAndFlagsTheWeek(t *testing.T) {
	// GIVEN: A Monday holiday on 2024-05-27, a week whose off-day is Thursday
	builder, reg := newTestBuilder(t)
	ctx := context.Background()
	_, err := reg.Upsert(ctx, rotation.NewTimePoint(2024, time.May, 27), "Memorial Day")
	require.NoError(t, err)

	// WHEN: Building the month
	s, err := builder.BuildMonth(ctx, aliceConfig(), 2024, time.May, nil, nil)
	require.NoError(t, err)

	// THEN: The day is a holiday and contributes no hours
	e := entryOn(t, s, "2024-05-27")
	assert.True(t, e.IsHoliday)
	assert.Equal(t, "Memorial Day", e.HolidayName)
	assert.Equal(t, 17, s.WorkDaysCount)
	assert.Equal(t, "136", s.TotalHours.String())

	// AND: The week is flagged, advisory only; the off-day stays Thursday
	require.Len(t, s.WeeksWithHoliday, 1)
	assert.Equal(t, "2024-05-27", s.WeeksWithHoliday[0].String())
	assert.True(t, entryOn(t, s, "2024-05-30").IsOffDay)
}

func TestBuildMonth_HolidayOnOffDayDoesNotFlagTheWeek(t *testing.T) {
	// GIVEN: A holiday landing exactly on the week's off-day
	builder, reg := newTestBuilder(t)
	ctx := context.Background()
	_, err := reg.Upsert(ctx, rotation.NewTimePoint(2024, time.May, 22), "Founders' Day")
	require.NoError(t, err)

	// WHEN/THEN: No advisory flag; the day was off anyway
	s, err := builder.BuildMonth(ctx, aliceConfig(), 2024, time.May, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, s.WeeksWithHoliday)
}

func TestBuildMonth_Pure(t *testing.T) {
	// GIVEN: The same inputs
	builder, reg := newTestBuilder(t)
	ctx := context.Background()
	_, err := reg.Upsert(ctx, rotation.NewTimePoint(2024, time.May, 27), "Memorial Day")
	require.NoError(t, err)

	// WHEN: Building twice
	first, err := builder.BuildMonth(ctx, aliceConfig(), 2024, time.May, nil, nil)
	require.NoError(t, err)
	second, err := builder.BuildMonth(ctx, aliceConfig(), 2024, time.May, nil, nil)
	require.NoError(t, err)

	// THEN: The outputs are identical
	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, first.WorkDaysCount, second.WorkDaysCount)
	assert.True(t, first.TotalHours.Equal(second.TotalHours))
}

func TestBuildMonth_MonthBeforeAnchorFails(t *testing.T) {
	// GIVEN: A month wholly before the rotation anchor
	builder, _ := newTestBuilder(t)

	// WHEN: Building it
	_, err := builder.BuildMonth(context.Background(), aliceConfig(), 2023, time.December, nil, nil)

	// THEN: The whole month fails; no partial schedule
	assert.ErrorIs(t, err, rotation.ErrInvalidConfig)
}
