/*
manager.go - Half-day leave application lifecycle

PURPOSE:
  Validates and stores half-day leave applications and proposes
  compensation dates. Decisions go through the shared approval workflow.

VALIDATION ORDER (fail fast):
  1. probation          -> ErrProbationRestricted
  2. duplicate          -> ErrDuplicateRequest
  3. leave type         -> ErrInvalidLeaveType
  4. compensation date  -> ErrInvalidCompensationDate

  The duplicate check here is a fast-fail courtesy; the real guarantee is
  the partial unique index at the persistence layer, which closes the race
  between two concurrent Apply calls.

SEE ALSO:
  - rotation/workflow.go: Shared PENDING -> APPROVED/REJECTED machine
  - swap/manager.go: The sibling manager for off-day swaps
*/
package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/warp/rotation-engine/rotation"
)

// ChangeReader is the slice of the swap store the suggestion walk needs:
// whether a week is already consumed by an approved off-day change.
type ChangeReader interface {
	HasApprovedChange(ctx context.Context, employeeID string, weekStart rotation.TimePoint) (bool, error)
}

// Manager validates and stores half-day leave requests.
type Manager struct {
	store    Store
	configs  rotation.ConfigStore
	changes  ChangeReader
	workflow *rotation.Workflow
	log      *logrus.Logger
	clock    func() time.Time
}

func NewManager(store Store, configs rotation.ConfigStore, changes ChangeReader, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.New()
	}
	return &Manager{
		store:    store,
		configs:  configs,
		changes:  changes,
		workflow: &rotation.Workflow{},
		log:      log,
		clock:    time.Now,
	}
}

// =============================================================================
// APPLY
// =============================================================================

// Apply submits a half-day leave application. On success the request is
// created PENDING and awaits a manager decision.
func (m *Manager) Apply(ctx context.Context, employeeID string, date rotation.TimePoint,
	leaveType Type, reason string, compensationDate *rotation.TimePoint) (*Request, error) {

	cfg, err := m.configs.GetConfig(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("loading work config for %s: %w", employeeID, err)
	}

	if cfg.IsProbation {
		return nil, fmt.Errorf("employee %s: %w", employeeID, rotation.ErrProbationRestricted)
	}

	if existing, err := m.store.FindActive(ctx, employeeID, date); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &rotation.DuplicateRequestError{
			EmployeeID: employeeID,
			Date:       date,
			ExistingID: existing.ID,
		}
	}

	if !leaveType.Valid() {
		return nil, fmt.Errorf("leave type %q: %w", leaveType, rotation.ErrInvalidLeaveType)
	}

	if compensationDate != nil {
		if err := m.validateCompensationDate(*cfg, date, *compensationDate); err != nil {
			return nil, err
		}
	}

	req := Request{
		ID:               uuid.NewString(),
		EmployeeID:       employeeID,
		Date:             date,
		Type:             leaveType,
		CompensationDate: compensationDate,
		Reason:           reason,
		Status:           rotation.StatusPending,
		RequestedAt:      m.clock(),
	}

	if err := m.store.CreateRequest(ctx, req); err != nil {
		// A concurrent Apply may have won the unique index between our
		// FindActive and here; same error either way.
		return nil, err
	}

	m.log.WithFields(logrus.Fields{
		"request_id": req.ID,
		"employee":   employeeID,
		"date":       date.String(),
		"type":       string(leaveType),
	}).Info("half-day leave applied")

	return &req, nil
}

// validateCompensationDate checks the candidate is strictly after the leave
// date and lands on the off-day weekday governing its own week.
func (m *Manager) validateCompensationDate(cfg rotation.EmployeeWorkConfig,
	leaveDate, comp rotation.TimePoint) error {

	if !comp.After(leaveDate) {
		return &rotation.InvalidCompensationDateError{
			Date:   comp,
			Reason: "must be strictly after the leave date",
		}
	}
	offDay, err := rotation.OffDayForWeek(cfg, comp.WeekStart())
	if err != nil {
		return err
	}
	if got := rotation.WeekdayOf(comp); got != offDay {
		return &rotation.InvalidCompensationDateError{Date: comp, Expected: offDay, Got: got}
	}
	return nil
}

// =============================================================================
// COMPENSATION DATE SUGGESTIONS
// =============================================================================

// SuggestCompensationDates walks forward week by week from fromDate and
// returns each week's off-day date as a candidate, skipping weeks already
// consumed by an approved change or an approved leave on that date.
// Pure hint: Apply never requires the caller to pick one of these.
func (m *Manager) SuggestCompensationDates(ctx context.Context, employeeID string,
	fromDate rotation.TimePoint, weeks int) ([]Suggestion, error) {

	if weeks <= 0 {
		weeks = 4
	}

	cfg, err := m.configs.GetConfig(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	var out []Suggestion
	for i := 1; i <= weeks; i++ {
		weekStart := fromDate.WeekStart().AddWeeks(i)

		offDay, err := rotation.OffDayForWeek(*cfg, weekStart)
		if err != nil {
			return nil, err
		}
		candidate := weekStart.AddDays(int(offDay) - 1)

		if m.changes != nil {
			taken, err := m.changes.HasApprovedChange(ctx, employeeID, weekStart)
			if err != nil {
				return nil, err
			}
			if taken {
				continue
			}
		}
		if existing, err := m.store.FindActive(ctx, employeeID, candidate); err != nil {
			return nil, err
		} else if existing != nil && existing.Status == rotation.StatusApproved {
			continue
		}

		out = append(out, Suggestion{Date: candidate, Weekday: offDay, WeeksAhead: i})
	}
	return out, nil
}

// =============================================================================
// DECISIONS & VIEWS
// =============================================================================

// Decide applies a manager decision to a pending request.
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
	}).Info("half-day leave decided")

	return updated, nil
}

// Pending returns requests awaiting decision, oldest first.
func (m *Manager) Pending(ctx context.Context) ([]Request, error) {
	return m.store.ListByStatus(ctx, rotation.StatusPending)
}

// ApprovedInRange returns approved leaves for the schedule builder.
func (m *Manager) ApprovedInRange(ctx context.Context, employeeID string,
	from, to rotation.TimePoint) ([]Request, error) {
	return m.store.ListApproved(ctx, employeeID, from, to)
}

// Get returns a single request by id.
func (m *Manager) Get(ctx context.Context, id string) (*Request, error) {
	return m.store.GetRequest(ctx, id)
}

var _ rotation.Decidable = (*Request)(nil)
