// Package leave implements half-day leave applications and the
// compensation-date suggestions offered alongside them.
package leave

import (
	"context"
	"time"

	"github.com/warp/rotation-engine/rotation"
)

// =============================================================================
// HALF-DAY LEAVE REQUEST
// =============================================================================

// Type is the half of the day being taken off.
type Type string

const (
	HalfAM Type = "HALF_AM"
	HalfPM Type = "HALF_PM"
)

func (t Type) Valid() bool { return t == HalfAM || t == HalfPM }

// Request is a half-day leave application. Once decided it is immutable
// history; only the status fields ever change, and only once.
type Request struct {
	ID         string
	EmployeeID string
	Date       rotation.TimePoint
	Type       Type

	// CompensationDate is an optional future date aligned with the
	// employee's off-day weekday for its own week.
	CompensationDate *rotation.TimePoint

	Reason      string
	Status      rotation.Status
	RequestedAt time.Time

	// Decision fields, set exactly once by the approval workflow.
	DecidedBy       string
	DecidedAt       *time.Time
	RejectionReason string
}

// RequestID and RequestStatus satisfy rotation.Decidable.
func (r *Request) RequestID() string              { return r.ID }
func (r *Request) RequestStatus() rotation.Status { return r.Status }

// =============================================================================
// STORE
// =============================================================================

// Store persists half-day leave requests. Implementations must enforce the
// one-non-rejected-request-per-(employee, date) invariant at the storage
// layer and surface violations as rotation.ErrDuplicateRequest.
type Store interface {
	// CreateRequest inserts a new request.
	CreateRequest(ctx context.Context, r Request) error

	// GetRequest returns a request by id, or rotation.ErrNotFound.
	GetRequest(ctx context.Context, id string) (*Request, error)

	// FindActive returns the non-rejected request on (employee, date), if any.
	FindActive(ctx context.Context, employeeID string, date rotation.TimePoint) (*Request, error)

	// ListByStatus returns requests in a given status, oldest first.
	ListByStatus(ctx context.Context, status rotation.Status) ([]Request, error)

	// ListApproved returns approved requests for an employee with dates in
	// [from, to], ordered by date. The schedule builder's read path.
	ListApproved(ctx context.Context, employeeID string, from, to rotation.TimePoint) ([]Request, error)

	// ApplyDecision flips a PENDING request to the decision's status with a
	// conditional update. Returns rotation.ErrAlreadyDecided if another
	// decision won, rotation.ErrNotFound if the id is unknown.
	ApplyDecision(ctx context.Context, id string, d rotation.Decision) (*Request, error)
}

// Suggestion is one compensation-date candidate returned to the UI.
type Suggestion struct {
	Date       rotation.TimePoint
	Weekday    rotation.Weekday
	WeeksAhead int
}
