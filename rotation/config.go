package rotation

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// EMPLOYEE WORK CONFIG
// =============================================================================

// EmployeeWorkConfig anchors an employee's 4-day-week rotation.
// Created once via the explicit set-work-days action and then left alone
// until explicitly reset; every cycle computation derives from it.
type EmployeeWorkConfig struct {
	EmployeeID string

	// BaseOffDay is the off-day in the anchor week (1=Mon..5=Fri).
	BaseOffDay Weekday

	// CycleStart is the Monday the rotation is anchored to.
	CycleStart TimePoint

	// IsProbation disables half-day leave for this employee.
	IsProbation bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the config invariants: a Mon-Fri base off-day and a
// Monday anchor. Cycle math is undefined otherwise.
func (c EmployeeWorkConfig) Validate() error {
	if c.EmployeeID == "" {
		return fmt.Errorf("%w: missing employee id", ErrInvalidConfig)
	}
	if !c.BaseOffDay.IsWorkWeekday() {
		return fmt.Errorf("%w: base off-day %d outside 1..5", ErrInvalidConfig, int(c.BaseOffDay))
	}
	if c.CycleStart.IsZero() {
		return fmt.Errorf("%w: missing cycle start date", ErrInvalidConfig)
	}
	if !c.CycleStart.IsMonday() {
		return fmt.Errorf("%w: cycle start %s", ErrNotWeekStart, c.CycleStart)
	}
	return nil
}

// ConfigStore persists employee work configs.
type ConfigStore interface {
	// SaveConfig upserts a config. Saving over an existing config is the
	// explicit "reset work days" action.
	SaveConfig(ctx context.Context, cfg EmployeeWorkConfig) error

	// GetConfig returns the config for an employee, or ErrNotFound.
	GetConfig(ctx context.Context, employeeID string) (*EmployeeWorkConfig, error)

	// ListConfigs returns all configs, ordered by employee id.
	ListConfigs(ctx context.Context) ([]EmployeeWorkConfig, error)
}
