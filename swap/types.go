// Package swap implements one-week temporary off-day change requests.
// An approved swap overrides the rotation for exactly one week; the cycle
// anchor is untouched and later weeks resume the unmodified rotation.
package swap

import (
	"context"
	"time"

	"github.com/warp/rotation-engine/rotation"
)

// Request is a proposal to move one week's off-day. OriginalOffDay is
// computed from the rotation at proposal time and stored immutably so that
// later cycle-anchor edits cannot retroactively corrupt history.
type Request struct {
	ID         string
	EmployeeID string

	// WeekStart is the Monday of the affected week.
	WeekStart rotation.TimePoint

	OriginalOffDay  rotation.Weekday
	TemporaryOffDay rotation.Weekday

	Reason string

	// SubstituteEmployee is a free-text reference with no enforced
	// behavior; coverage hand-off happens outside this system.
	SubstituteEmployee string

	Status      rotation.Status
	RequestedAt time.Time

	DecidedBy       string
	DecidedAt       *time.Time
	RejectionReason string
}

func (r *Request) RequestID() string              { return r.ID }
func (r *Request) RequestStatus() rotation.Status { return r.Status }

var _ rotation.Decidable = (*Request)(nil)

// Store persists change requests. Implementations enforce the
// one-non-rejected-request-per-(employee, week) invariant at the storage
// layer, surfacing violations as rotation.ErrDuplicateRequest.
type Store interface {
	CreateRequest(ctx context.Context, r Request) error

	GetRequest(ctx context.Context, id string) (*Request, error)

	// FindActive returns the non-rejected request for (employee, weekStart), if any.
	FindActive(ctx context.Context, employeeID string, weekStart rotation.TimePoint) (*Request, error)

	ListByStatus(ctx context.Context, status rotation.Status) ([]Request, error)

	// ListApproved returns approved changes whose week starts fall in
	// [from, to], ordered by week start.
	ListApproved(ctx context.Context, employeeID string, from, to rotation.TimePoint) ([]Request, error)

	// ApplyDecision flips a PENDING request via conditional update.
	ApplyDecision(ctx context.Context, id string, d rotation.Decision) (*Request, error)
}
