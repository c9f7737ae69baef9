/*
workflow.go - Shared approval state machine

PURPOSE:
  Both request kinds (half-day leave and temporary off-day swaps) go through
  the same lifecycle: PENDING -> APPROVED | REJECTED, exactly once. This file
  holds that state machine once so the two managers cannot drift apart.

STATE MACHINE:

     submit            approve
  ──────────▶ PENDING ──────────▶ APPROVED (terminal)
                 │
                 │      reject
                 └──────────────▶ REJECTED (terminal)

  No other transitions exist. Acting on a non-PENDING request fails with
  ErrAlreadyDecided and leaves the record untouched.

CONCURRENCY:
  Decide here is pure; it validates and produces a Decision value. The store
  applies it with a conditional update (status='PENDING' guard) so that when
  two managers race, exactly one wins and the loser gets ErrAlreadyDecided.

SIDE EFFECTS:
  Approval has none beyond the status flip. The schedule builder picks up
  APPROVED records on its next read; there is no separate "apply" step.

SEE ALSO:
  - leave/manager.go, swap/manager.go: The two consumers
  - store/sqlite: Conditional-update implementation
*/
package rotation

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// STATUS & ACTION
// =============================================================================

// Status is the lifecycle state of a request.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// Action is a manager's decision verb.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// =============================================================================
// DECISION
// =============================================================================

// Decision is the outcome of a manager acting on a pending request. It is
// also the event an external notifier consumes: who, when, outcome.
type Decision struct {
	Action    Action
	Status    Status // resulting status
	ManagerID string
	Reason    string // rejection reason; empty on approval
	DecidedAt time.Time
}

// Decidable is any record the workflow can act on. Both request kinds
// satisfy it; the workflow never needs to know which one it has.
type Decidable interface {
	RequestID() string
	RequestStatus() Status
}

// =============================================================================
// WORKFLOW
// =============================================================================

// Workflow validates decisions against the state machine.
// Clock is injectable for tests; nil means time.Now.
type Workflow struct {
	Clock func() time.Time
}

// Decide validates an action against the request's current status and
// returns the Decision to apply. It does not persist anything.
func (w *Workflow) Decide(req Decidable, action Action, managerID, reason string) (Decision, error) {
	if req.RequestStatus() != StatusPending {
		return Decision{}, fmt.Errorf("request %s is %s: %w",
			req.RequestID(), req.RequestStatus(), ErrAlreadyDecided)
	}

	now := time.Now
	if w.Clock != nil {
		now = w.Clock
	}

	switch action {
	case ActionApprove:
		// No reason required or stored on approval.
		return Decision{
			Action:    ActionApprove,
			Status:    StatusApproved,
			ManagerID: managerID,
			DecidedAt: now(),
		}, nil
	case ActionReject:
		if strings.TrimSpace(reason) == "" {
			return Decision{}, fmt.Errorf("rejecting request %s: %w", req.RequestID(), ErrReasonRequired)
		}
		return Decision{
			Action:    ActionReject,
			Status:    StatusRejected,
			ManagerID: managerID,
			Reason:    reason,
			DecidedAt: now(),
		}, nil
	default:
		return Decision{}, fmt.Errorf("unknown action %q: want %q or %q", action, ActionApprove, ActionReject)
	}
}
