/*
scenarios.go - Demo scenario seeding

PURPOSE:
  Seeds the store with pre-built situations so the API can be explored
  without hand-crafting data. Each scenario resets the store and then
  drives the real managers, so seeded state obeys every domain rule.

SCENARIOS:
  rotation-basics:  Three employees on staggered rotations
  half-day-flow:    Applications in every workflow state
  holiday-weekend:  A weekend holiday plus its generated substitute
  off-day-change:   An approved one-week change visible in the schedule

WARNING:
  Loading a scenario WIPES the store. Dev/demo use only.

SEE ALSO:
  - handlers.go: ListScenarios / LoadScenario endpoints
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/rotation-engine/leave"
	"github.com/warp/rotation-engine/rotation"
)

// scenario is a named seeding routine.
type scenario struct {
	ID          string
	Name        string
	Description string
	Load        func(ctx context.Context, h *Handler) error
}

var scenarios = []scenario{
	{
		ID:          "rotation-basics",
		Name:        "Rotation basics",
		Description: "Three employees with staggered base off-days on the same anchor week",
		Load:        loadRotationBasics,
	},
	{
		ID:          "half-day-flow",
		Name:        "Half-day approval flow",
		Description: "Half-day applications left pending, approved, and rejected",
		Load:        loadHalfDayFlow,
	},
	{
		ID:          "holiday-weekend",
		Name:        "Weekend holiday substitution",
		Description: "A Saturday holiday and its generated substitute work-week day",
		Load:        loadHolidayWeekend,
	},
	{
		ID:          "off-day-change",
		Name:        "One-week off-day change",
		Description: "An approved change shifting one week's off-day without touching the rotation",
		Load:        loadOffDayChange,
	},
}

// ListScenarios returns the loadable demo scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = ScenarioDTO{ID: s.ID, Name: s.Name, Description: s.Description}
	}
	writeData(w, http.StatusOK, dtos)
}

// LoadScenario wipes the store and seeds the named scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var selected *scenario
	for i := range scenarios {
		if scenarios[i].ID == req.ID {
			selected = &scenarios[i]
			break
		}
	}
	if selected == nil {
		writeMessage(w, http.StatusNotFound, fmt.Sprintf("unknown scenario %q", req.ID))
		return
	}

	if h.reset != nil {
		if err := h.reset(); err != nil {
			writeMessage(w, http.StatusInternalServerError, "failed to reset store")
			return
		}
	}
	if err := selected.Load(r.Context(), h); err != nil {
		h.Log.WithError(err).WithField("scenario", selected.ID).Error("scenario load failed")
		writeMessage(w, http.StatusInternalServerError, "failed to load scenario")
		return
	}

	h.Log.WithField("scenario", selected.ID).Info("scenario loaded")
	writeData(w, http.StatusOK, map[string]string{"loaded": selected.ID})
}

// =============================================================================
// SEEDING ROUTINES
// =============================================================================

// anchorMonday is the shared rotation anchor for all demo employees.
var anchorMonday = rotation.NewTimePoint(2024, 1, 1)

func seedEmployees(ctx context.Context, h *Handler, configs ...rotation.EmployeeWorkConfig) error {
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := h.Configs.SaveConfig(ctx, cfg); err != nil {
			return err
		}
	}
	return nil
}

func loadRotationBasics(ctx context.Context, h *Handler) error {
	return seedEmployees(ctx, h,
		rotation.EmployeeWorkConfig{EmployeeID: "alice", BaseOffDay: rotation.Monday, CycleStart: anchorMonday},
		rotation.EmployeeWorkConfig{EmployeeID: "bob", BaseOffDay: rotation.Wednesday, CycleStart: anchorMonday},
		rotation.EmployeeWorkConfig{EmployeeID: "carol", BaseOffDay: rotation.Friday, CycleStart: anchorMonday},
	)
}

func loadHalfDayFlow(ctx context.Context, h *Handler) error {
	err := seedEmployees(ctx, h,
		rotation.EmployeeWorkConfig{EmployeeID: "alice", BaseOffDay: rotation.Wednesday, CycleStart: anchorMonday},
		rotation.EmployeeWorkConfig{EmployeeID: "dave", BaseOffDay: rotation.Tuesday, CycleStart: anchorMonday, IsProbation: true},
	)
	if err != nil {
		return err
	}

	// Pending: nobody has looked at it yet.
	if _, err := h.Leaves.Apply(ctx, "alice",
		rotation.NewTimePoint(2024, 5, 14), leave.HalfAM, "dentist appointment", nil); err != nil {
		return err
	}

	// Approved.
	morning, err := h.Leaves.Apply(ctx, "alice",
		rotation.NewTimePoint(2024, 5, 21), leave.HalfPM, "school pickup", nil)
	if err != nil {
		return err
	}
	if _, err := h.Leaves.Decide(ctx, morning.ID, rotation.ActionApprove, "manager-1", ""); err != nil {
		return err
	}

	// Rejected, with the mandatory reason.
	late, err := h.Leaves.Apply(ctx, "alice",
		rotation.NewTimePoint(2024, 5, 28), leave.HalfAM, "", nil)
	if err != nil {
		return err
	}
	_, err = h.Leaves.Decide(ctx, late.ID, rotation.ActionReject, "manager-1", "short-staffed that morning")
	return err
}

func loadHolidayWeekend(ctx context.Context, h *Handler) error {
	err := seedEmployees(ctx, h,
		rotation.EmployeeWorkConfig{EmployeeID: "alice", BaseOffDay: rotation.Wednesday, CycleStart: anchorMonday},
	)
	if err != nil {
		return err
	}

	// Saturday holiday; the substitute lands on the following Monday.
	if _, err := h.Holidays.Upsert(ctx, rotation.NewTimePoint(2024, 6, 8), "Founders' Day"); err != nil {
		return err
	}
	if _, err := h.Holidays.Upsert(ctx, rotation.NewTimePoint(2024, 6, 19), "Juneteenth"); err != nil {
		return err
	}
	_, err = h.Holidays.GenerateSubstitutes(ctx, 2024)
	return err
}

func loadOffDayChange(ctx context.Context, h *Handler) error {
	err := seedEmployees(ctx, h,
		rotation.EmployeeWorkConfig{EmployeeID: "alice", BaseOffDay: rotation.Wednesday, CycleStart: anchorMonday},
	)
	if err != nil {
		return err
	}

	weekStart := rotation.NewTimePoint(2024, 5, 6) // a Monday
	req, err := h.Swaps.Propose(ctx, "alice", weekStart, rotation.Friday,
		"covering a teammate's shift", "bob")
	if err != nil {
		return err
	}
	_, err = h.Swaps.Decide(ctx, req.ID, rotation.ActionApprove, "manager-1", "")
	return err
}
