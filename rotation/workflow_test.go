package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRequest is a minimal Decidable for workflow tests.
type fakeRequest struct {
	id     string
	status Status
}

func (f *fakeRequest) RequestID() string     { return f.id }
func (f *fakeRequest) RequestStatus() Status { return f.status }

func fixedClock() time.Time {
	return time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
}

func TestWorkflow_ApprovePending(t *testing.T) {
	// GIVEN: A pending request
	w := &Workflow{Clock: fixedClock}
	req := &fakeRequest{id: "req-1", status: StatusPending}

	// WHEN: A manager approves it
	d, err := w.Decide(req, ActionApprove, "manager-1", "")

	// THEN: The decision moves it to APPROVED with attribution and time
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, d.Status)
	assert.Equal(t, "manager-1", d.ManagerID)
	assert.Equal(t, fixedClock(), d.DecidedAt)
	assert.Empty(t, d.Reason)
}

func TestWorkflow_RejectRequiresReason(t *testing.T) {
	// GIVEN: A pending request
	w := &Workflow{Clock: fixedClock}
	req := &fakeRequest{id: "req-1", status: StatusPending}

	// WHEN: A manager rejects it without a reason (whitespace only)
	_, err := w.Decide(req, ActionReject, "manager-1", "   ")

	// THEN: The rejection is refused
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestWorkflow_RejectWithReason(t *testing.T) {
	w := &Workflow{Clock: fixedClock}
	req := &fakeRequest{id: "req-1", status: StatusPending}

	d, err := w.Decide(req, ActionReject, "manager-1", "short-staffed")

	require.NoError(t, err)
	assert.Equal(t, StatusRejected, d.Status)
	assert.Equal(t, "short-staffed", d.Reason)
}

func TestWorkflow_DecidedStatesAreTerminal(t *testing.T) {
	// GIVEN: Requests already approved or rejected
	w := &Workflow{Clock: fixedClock}

	for _, status := range []Status{StatusApproved, StatusRejected} {
		req := &fakeRequest{id: "req-1", status: status}

		// WHEN: Any further action arrives
		_, approveErr := w.Decide(req, ActionApprove, "manager-2", "")
		_, rejectErr := w.Decide(req, ActionReject, "manager-2", "changed my mind")

		// THEN: Both are refused; there is no un-approve or re-reject
		assert.ErrorIs(t, approveErr, ErrAlreadyDecided, "approve on %s", status)
		assert.ErrorIs(t, rejectErr, ErrAlreadyDecided, "reject on %s", status)
	}
}

func TestWorkflow_UnknownActionRefused(t *testing.T) {
	w := &Workflow{Clock: fixedClock}
	req := &fakeRequest{id: "req-1", status: StatusPending}

	_, err := w.Decide(req, Action("escalate"), "manager-1", "")

	assert.Error(t, err)
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
}
