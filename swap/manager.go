/*
manager.go - One-week off-day swap lifecycle

PURPOSE:
  Validates and stores temporary off-day change proposals. The original
  off-day is computed here, never user-supplied; decisions go through the
  shared approval workflow.

VALIDATION:
  1. weekStartDate must be a Monday            -> ErrNotWeekStart
  2. original off-day computed from the cycle  -> ErrInvalidConfig if unanchored
  3. temporary != original, both in 1..5       -> ErrInvalidOffDay
  4. one non-rejected request per week         -> ErrDuplicateRequest

SEE ALSO:
  - leave/manager.go: The sibling manager sharing the approval workflow
  - schedule/builder.go: Applies approved swaps as one-week overrides
*/
package swap

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/warp/rotation-engine/rotation"
)

// Manager validates and stores off-day change requests.
type Manager struct {
	store    Store
	configs  rotation.ConfigStore
	workflow *rotation.Workflow
	log      *logrus.Logger
	clock    func() time.Time
}

func NewManager(store Store, configs rotation.ConfigStore, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.New()
	}
	return &Manager{
		store:    store,
		configs:  configs,
		workflow: &rotation.Workflow{},
		log:      log,
		clock:    time.Now,
	}
}

// Propose submits a temporary off-day change for one week. On success the
// request is created PENDING with the rotation's off-day frozen into it.
func (m *Manager) Propose(ctx context.Context, employeeID string, weekStart rotation.TimePoint,
	temporaryOffDay rotation.Weekday, reason, substituteEmployee string) (*Request, error) {

	if !weekStart.IsMonday() {
		return nil, fmt.Errorf("week start %s: %w", weekStart, rotation.ErrNotWeekStart)
	}

	cfg, err := m.configs.GetConfig(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("loading work config for %s: %w", employeeID, err)
	}

	original, err := rotation.OffDayForWeek(*cfg, weekStart)
	if err != nil {
		return nil, err
	}

	if !temporaryOffDay.IsWorkWeekday() {
		return nil, fmt.Errorf("temporary off-day %d outside 1..5: %w",
			int(temporaryOffDay), rotation.ErrInvalidOffDay)
	}
	if temporaryOffDay == original {
		return nil, fmt.Errorf("temporary off-day equals the scheduled off-day (%s): %w",
			original, rotation.ErrInvalidOffDay)
	}

	if existing, err := m.store.FindActive(ctx, employeeID, weekStart); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &rotation.DuplicateRequestError{
			EmployeeID: employeeID,
			Date:       weekStart,
			ExistingID: existing.ID,
		}
	}

	req := Request{
		ID:                 uuid.NewString(),
		EmployeeID:         employeeID,
		WeekStart:          weekStart,
		OriginalOffDay:     original,
		TemporaryOffDay:    temporaryOffDay,
		Reason:             reason,
		SubstituteEmployee: substituteEmployee,
		Status:             rotation.StatusPending,
		RequestedAt:        m.clock(),
	}

	if err := m.store.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	m.log.WithFields(logrus.Fields{
		"request_id": req.ID,
		"employee":   employeeID,
		"week_start": weekStart.String(),
		"original":   original.String(),
		"temporary":  temporaryOffDay.String(),
	}).Info("off-day change proposed")

	return &req, nil
}

// Decide applies a manager decision to a pending change request.
func (m *Manager) Decide(ctx context.Context, id string, action rotation.Action,
	managerID, rejectionReason string) (*Request, error) {

	req, err := m.store.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	decision, err := m.workflow.Decide(req, action, managerID, rejectionReason)
	if err != nil {
		return nil, err
	}

	updated, err := m.store.ApplyDecision(ctx, id, decision)
	if err != nil {
		return nil, err
	}

	m.log.WithFields(logrus.Fields{
		"request_id": id,
		"action":     string(action),
		"manager":    managerID,
		"status":     string(updated.Status),
	}).Info("off-day change decided")

	return updated, nil
}

// Pending returns change requests awaiting decision, oldest first.
func (m *Manager) Pending(ctx context.Context) ([]Request, error) {
	return m.store.ListByStatus(ctx, rotation.StatusPending)
}

// ApprovedInRange returns approved changes for the schedule builder.
func (m *Manager) ApprovedInRange(ctx context.Context, employeeID string,
	from, to rotation.TimePoint) ([]Request, error) {
	return m.store.ListApproved(ctx, employeeID, from, to)
}

// Get returns a single request by id.
func (m *Manager) Get(ctx context.Context, id string) (*Request, error) {
	return m.store.GetRequest(ctx, id)
}

// HasApprovedChange reports whether an approved change already consumes the
// given week. Satisfies leave.ChangeReader for compensation suggestions.
func (m *Manager) HasApprovedChange(ctx context.Context, employeeID string,
	weekStart rotation.TimePoint) (bool, error) {
	existing, err := m.store.FindActive(ctx, employeeID, weekStart)
	if err != nil {
		return false, err
	}
	return existing != nil && existing.Status == rotation.StatusApproved, nil
}
