package leave_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rotation-engine/leave"
	"github.com/warp/rotation-engine/rotation"
	"github.com/warp/rotation-engine/store/memory"
	"github.com/warp/rotation-engine/swap"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// Monday 2024-01-01.
var anchor = rotation.NewTimePoint(2024, time.January, 1)

func newTestManager(t *testing.T) (*leave.Manager, *swap.Manager, *memory.Store) {
	t.Helper()
	store := memory.New()
	log := logrus.New()
	log.SetOutput(io.Discard)

	swaps := swap.NewManager(store.Swaps(), store, log)
	leaves := leave.NewManager(store.Leaves(), store, swaps, log)
	return leaves, swaps, store
}

func seedEmployee(t *testing.T, store *memory.Store, id string, base rotation.Weekday, probation bool) {
	t.Helper()
	err := store.SaveConfig(context.Background(), rotation.EmployeeWorkConfig{
		EmployeeID:  id,
		BaseOffDay:  base,
		CycleStart:  anchor,
		IsProbation: probation,
	})
	require.NoError(t, err)
}

// =============================================================================
// APPLY TESTS
// =============================================================================

func TestApply_CreatesPendingRequest(t *testing.T) {
	// GIVEN: A configured employee
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)

	// WHEN: Applying for a half morning off
	req, err := leaves.Apply(context.Background(), "alice",
		rotation.NewTimePoint(2024, time.May, 14), leave.HalfAM, "dentist", nil)

	// THEN: The request is created PENDING
	require.NoError(t, err)
	assert.Equal(t, rotation.StatusPending, req.Status)
	assert.Equal(t, leave.HalfAM, req.Type)
	assert.NotEmpty(t, req.ID)
}

func TestApply_ProbationRefused(t *testing.T) {
	// GIVEN: An employee still on probation
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "dave", rotation.Tuesday, true)

	// WHEN: They apply for half-day leave
	_, err := leaves.Apply(context.Background(), "dave",
		rotation.NewTimePoint(2024, time.May, 14), leave.HalfAM, "", nil)

	// THEN: The application is refused outright
	assert.ErrorIs(t, err, rotation.ErrProbationRestricted)
}

func TestApply_UnknownEmployeeFails(t *testing.T) {
	leaves, _, _ := newTestManager(t)

	_, err := leaves.Apply(context.Background(), "ghost",
		rotation.NewTimePoint(2024, time.May, 14), leave.HalfAM, "", nil)

	assert.ErrorIs(t, err, rotation.ErrNotFound)
}

func TestApply_DuplicateDateRefused(t *testing.T) {
	// GIVEN: A pending request on 2024-05-14
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)
	ctx := context.Background()
	date := rotation.NewTimePoint(2024, time.May, 14)

	first, err := leaves.Apply(ctx, "alice", date, leave.HalfAM, "", nil)
	require.NoError(t, err)

	// WHEN: Applying again for the same date, even the other half
	_, err = leaves.Apply(ctx, "alice", date, leave.HalfPM, "", nil)

	// THEN: The duplicate is refused and names the existing request
	require.Error(t, err)
	assert.ErrorIs(t, err, rotation.ErrDuplicateRequest)
	var dup *rotation.DuplicateRequestError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.ID, dup.ExistingID)
}

func TestApply_RejectedDateFreesTheSlot(t *testing.T) {
	// GIVEN: A rejected request on 2024-05-14
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)
	ctx := context.Background()
	date := rotation.NewTimePoint(2024, time.May, 14)

	first, err := leaves.Apply(ctx, "alice", date, leave.HalfAM, "", nil)
	require.NoError(t, err)
	_, err = leaves.Decide(ctx, first.ID, rotation.ActionReject, "manager-1", "busy day")
	require.NoError(t, err)

	// WHEN: Applying again for the same date
	again, err := leaves.Apply(ctx, "alice", date, leave.HalfPM, "second try", nil)

	// THEN: Rejection freed the slot
	require.NoError(t, err)
	assert.Equal(t, rotation.StatusPending, again.Status)
}

func TestApply_InvalidLeaveTypeRefused(t *testing.T) {
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)

	_, err := leaves.Apply(context.Background(), "alice",
		rotation.NewTimePoint(2024, time.May, 14), leave.Type("FULL_DAY"), "", nil)

	assert.ErrorIs(t, err, rotation.ErrInvalidLeaveType)
}

// =============================================================================
// COMPENSATION DATE TESTS
// =============================================================================

func TestApply_CompensationOnOffDayAccepted(t *testing.T) {
	// GIVEN: Base Wednesday; the week of 2024-05-20 is cycle 20, whose
	// off-day is Wednesday 2024-05-22
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)
	comp := rotation.NewTimePoint(2024, time.May, 22)

	// WHEN: Applying with that compensation date
	req, err := leaves.Apply(context.Background(), "alice",
		rotation.NewTimePoint(2024, time.May, 14), leave.HalfAM, "", &comp)

	// THEN: Accepted and stored
	require.NoError(t, err)
	require.NotNil(t, req.CompensationDate)
	assert.Equal(t, "2024-05-22", req.CompensationDate.String())
}

func TestApply_CompensationOffWrongWeekdayRefused(t *testing.T) {
	// GIVEN: A compensation candidate that is not that week's off-day
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)
	comp := rotation.NewTimePoint(2024, time.May, 23) // Thursday, off-day is Wednesday

	// WHEN: Applying with it
	_, err := leaves.Apply(context.Background(), "alice",
		rotation.NewTimePoint(2024, time.May, 14), leave.HalfAM, "", &comp)

	// THEN: Refused with the detailed mismatch
	require.Error(t, err)
	assert.ErrorIs(t, err, rotation.ErrInvalidCompensationDate)
	var detail *rotation.InvalidCompensationDateError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, rotation.Wednesday, detail.Expected)
	assert.Equal(t, rotation.Thursday, detail.Got)
}

func TestApply_CompensationNotAfterLeaveDateRefused(t *testing.T) {
	// GIVEN: A compensation date on the leave date itself
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)
	date := rotation.NewTimePoint(2024, time.May, 14)

	// WHEN/THEN: Refused; compensation must be strictly later
	_, err := leaves.Apply(context.Background(), "alice", date, leave.HalfAM, "", &date)
	assert.ErrorIs(t, err, rotation.ErrInvalidCompensationDate)
}

// =============================================================================
// SUGGESTION TESTS
// =============================================================================

func TestSuggest_ReturnsUpcomingOffDays(t *testing.T) {
	// GIVEN: Base Wednesday, asking from Tuesday 2024-05-14 (cycle 19)
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)

	// WHEN: Requesting three weeks of candidates
	suggestions, err := leaves.SuggestCompensationDates(context.Background(), "alice",
		rotation.NewTimePoint(2024, time.May, 14), 3)

	// THEN: Each candidate is the following weeks' rotating off-day
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	assert.Equal(t, "2024-05-22", suggestions[0].Date.String()) // Wednesday
	assert.Equal(t, "2024-05-30", suggestions[1].Date.String()) // Thursday
	assert.Equal(t, "2024-06-07", suggestions[2].Date.String()) // Friday
	assert.Equal(t, 1, suggestions[0].WeeksAhead)
}

func TestSuggest_SkipsWeeksWithApprovedChange(t *testing.T) {
	// GIVEN: An approved off-day change for the week of 2024-05-20
	leaves, swaps, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)
	ctx := context.Background()

	change, err := swaps.Propose(ctx, "alice",
		rotation.NewTimePoint(2024, time.May, 20), rotation.Friday, "coverage", "")
	require.NoError(t, err)
	_, err = swaps.Decide(ctx, change.ID, rotation.ActionApprove, "manager-1", "")
	require.NoError(t, err)

	// WHEN: Suggesting from 2024-05-14
	suggestions, err := leaves.SuggestCompensationDates(ctx, "alice",
		rotation.NewTimePoint(2024, time.May, 14), 3)

	// THEN: The changed week contributes no candidate
	require.NoError(t, err)
	for _, s := range suggestions {
		assert.NotEqual(t, "2024-05-20", s.Date.WeekStart().String())
	}
}

// =============================================================================
// DECISION TESTS
// =============================================================================

func TestDecide_ApproveRecordsAttribution(t *testing.T) {
	// GIVEN: A pending request
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)
	ctx := context.Background()
	req, err := leaves.Apply(ctx, "alice",
		rotation.NewTimePoint(2024, time.May, 14), leave.HalfAM, "", nil)
	require.NoError(t, err)

	// WHEN: A manager approves it
	updated, err := leaves.Decide(ctx, req.ID, rotation.ActionApprove, "manager-1", "")

	// THEN: Status, decider and timestamp are all recorded
	require.NoError(t, err)
	assert.Equal(t, rotation.StatusApproved, updated.Status)
	assert.Equal(t, "manager-1", updated.DecidedBy)
	require.NotNil(t, updated.DecidedAt)
}

func TestDecide_SecondDecisionRefused(t *testing.T) {
	// GIVEN: An approved request
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)
	ctx := context.Background()
	req, err := leaves.Apply(ctx, "alice",
		rotation.NewTimePoint(2024, time.May, 14), leave.HalfAM, "", nil)
	require.NoError(t, err)
	_, err = leaves.Decide(ctx, req.ID, rotation.ActionApprove, "manager-1", "")
	require.NoError(t, err)

	// WHEN: Another manager tries to reject it
	_, err = leaves.Decide(ctx, req.ID, rotation.ActionReject, "manager-2", "too late")

	// THEN: Decisions are final
	assert.ErrorIs(t, err, rotation.ErrAlreadyDecided)
}

func TestDecide_RejectWithoutReasonRefused(t *testing.T) {
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)
	ctx := context.Background()
	req, err := leaves.Apply(ctx, "alice",
		rotation.NewTimePoint(2024, time.May, 14), leave.HalfAM, "", nil)
	require.NoError(t, err)

	_, err = leaves.Decide(ctx, req.ID, rotation.ActionReject, "manager-1", "")

	assert.ErrorIs(t, err, rotation.ErrReasonRequired)
	// The request stays pending and decidable.
	pending, err := leaves.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestPending_ListsOnlyUndecided(t *testing.T) {
	// GIVEN: One pending and one approved request
	leaves, _, store := newTestManager(t)
	seedEmployee(t, store, "alice", rotation.Wednesday, false)
	ctx := context.Background()

	first, err := leaves.Apply(ctx, "alice",
		rotation.NewTimePoint(2024, time.May, 14), leave.HalfAM, "", nil)
	require.NoError(t, err)
	_, err = leaves.Decide(ctx, first.ID, rotation.ActionApprove, "manager-1", "")
	require.NoError(t, err)

	second, err := leaves.Apply(ctx, "alice",
		rotation.NewTimePoint(2024, time.May, 21), leave.HalfPM, "", nil)
	require.NoError(t, err)

	// WHEN: Listing the approval queue
	pending, err := leaves.Pending(ctx)

	// THEN: Only the undecided request shows
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}
