/*
errors.go - Centralized error types for the rotation engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages (leave, swap, holiday, schedule) wrap these errors
  with additional context rather than inventing their own.

ERROR CATEGORIES:
  1. Config errors     - Malformed or missing employee work configuration
  2. Validation errors - Business rule violations on request submission
  3. Decision errors   - Approval state machine violations

PROPAGATION POLICY:
  Validation failures are returned to the caller as typed errors, never
  coerced. Persistence-layer race losses (unique-index violations, failed
  conditional updates) are translated by the stores into the same
  ErrDuplicateRequest / ErrAlreadyDecided so the engine presents one
  consistent error surface regardless of where the race was caught.

USAGE:
    if errors.Is(err, rotation.ErrDuplicateRequest) { ... }

SEE ALSO:
  - workflow.go: Decision errors
  - store/sqlite: Translates database errors to these sentinels
*/
package rotation

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidConfig is returned when an employee work config is malformed
	// or when a cycle computation is asked about a week before its anchor.
	ErrInvalidConfig = errors.New("invalid work configuration")

	// ErrProbationRestricted is returned when a probationary employee
	// attempts to apply for half-day leave.
	ErrProbationRestricted = errors.New("half-day leave restricted during probation")

	// ErrDuplicateRequest is returned when a non-rejected request already
	// exists for the same employee and date (or week).
	ErrDuplicateRequest = errors.New("duplicate request")

	// ErrInvalidLeaveType is returned for leave types other than HALF_AM/HALF_PM.
	ErrInvalidLeaveType = errors.New("invalid leave type")

	// ErrInvalidCompensationDate is returned when a compensation date is not
	// strictly after the leave date or does not fall on its week's off-day.
	ErrInvalidCompensationDate = errors.New("invalid compensation date")

	// ErrNotWeekStart is returned when a date that must be a Monday isn't.
	ErrNotWeekStart = errors.New("date is not a week start (Monday)")

	// ErrInvalidOffDay is returned when an off-day code is outside 1..5 or a
	// temporary off-day equals the computed original.
	ErrInvalidOffDay = errors.New("invalid off-day")

	// ErrAlreadyDecided is returned when acting on a non-PENDING request.
	ErrAlreadyDecided = errors.New("request already decided")

	// ErrReasonRequired is returned when a rejection carries no reason.
	ErrReasonRequired = errors.New("rejection reason required")

	// ErrNotFound is returned when a referenced record doesn't exist.
	ErrNotFound = errors.New("not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DuplicateRequestError reports which existing request blocked a submission.
type DuplicateRequestError struct {
	EmployeeID string
	Date       TimePoint
	ExistingID string
}

func (e *DuplicateRequestError) Error() string {
	return fmt.Sprintf("duplicate request for employee %s on %s (existing: %s)",
		e.EmployeeID, e.Date, e.ExistingID)
}

func (e *DuplicateRequestError) Unwrap() error { return ErrDuplicateRequest }

// InvalidCompensationDateError explains why a compensation date was refused.
type InvalidCompensationDateError struct {
	Date     TimePoint
	Expected Weekday
	Got      Weekday
	Reason   string
}

func (e *InvalidCompensationDateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid compensation date %s: %s", e.Date, e.Reason)
	}
	return fmt.Sprintf("invalid compensation date %s: falls on %s, week's off-day is %s",
		e.Date, e.Got, e.Expected)
}

func (e *InvalidCompensationDateError) Unwrap() error { return ErrInvalidCompensationDate }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrProbationRestricted) ||
		errors.Is(err, ErrInvalidLeaveType) ||
		errors.Is(err, ErrInvalidCompensationDate) ||
		errors.Is(err, ErrNotWeekStart) ||
		errors.Is(err, ErrInvalidOffDay) ||
		errors.Is(err, ErrReasonRequired)
}

// IsConflict returns true for races and duplicates that map to HTTP 409.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateRequest) ||
		errors.Is(err, ErrAlreadyDecided)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
