/*
handlers.go - HTTP handler implementations

PURPOSE:
  Implements all HTTP handlers. Handlers are thin: they parse requests,
  call the managers, and serialize responses. All business rules live in
  the rotation, leave, swap, holiday and schedule packages.

HANDLER PATTERN:
  1. Parse path/query/body
  2. Call domain logic
  3. Wrap the result in the response envelope
  4. Map domain errors to HTTP status codes

ERROR HANDLING:
  Domain errors carry their HTTP class:
  - rotation.IsClientError  -> 400
  - rotation.IsConflict     -> 409 (duplicates, already-decided races)
  - rotation.IsNotFound     -> 404
  - anything else           -> 500

SECURITY NOTE:
  Currently NO authentication or authorization. The manager identity for
  decisions arrives via the X-Manager-Id header (or body field), supplied
  by an external identity layer.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/warp/rotation-engine/holiday"
	"github.com/warp/rotation-engine/leave"
	"github.com/warp/rotation-engine/rotation"
	"github.com/warp/rotation-engine/schedule"
	"github.com/warp/rotation-engine/swap"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Configs  rotation.ConfigStore
	Holidays *holiday.Registry
	Leaves   *leave.Manager
	Swaps    *swap.Manager
	Builder  *schedule.Builder
	Log      *logrus.Logger

	// reset clears the backing store before a scenario loads.
	reset func() error
}

// NewHandler wires the handlers to their managers.
func NewHandler(configs rotation.ConfigStore, holidays *holiday.Registry,
	leaves *leave.Manager, swaps *swap.Manager, builder *schedule.Builder,
	log *logrus.Logger, reset func() error) *Handler {

	return &Handler{
		Configs:  configs,
		Holidays: holidays,
		Leaves:   leaves,
		Swaps:    swaps,
		Builder:  builder,
		Log:      log,
		reset:    reset,
	}
}

// =============================================================================
// WORK CONFIG HANDLERS
// =============================================================================

// SetWorkDays configures or resets an employee's rotation.
// POST /api/employees/{id}/work-days
func (h *Handler) SetWorkDays(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var req SetWorkDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cycleStart, err := rotation.ParseDate(req.CycleStart)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid cycle_start format (use YYYY-MM-DD)")
		return
	}

	cfg := rotation.EmployeeWorkConfig{
		EmployeeID:  employeeID,
		BaseOffDay:  rotation.Weekday(req.BaseOffDay),
		CycleStart:  cycleStart,
		IsProbation: req.IsProbation,
	}
	if err := cfg.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.Configs.SaveConfig(r.Context(), cfg); err != nil {
		writeDomainError(w, err)
		return
	}

	h.Log.WithFields(logrus.Fields{
		"employee":     employeeID,
		"base_off_day": cfg.BaseOffDay.String(),
		"cycle_start":  cfg.CycleStart.String(),
	}).Info("work config saved")

	writeData(w, http.StatusOK, toWorkConfigDTO(cfg))
}

// GetWorkDays returns an employee's rotation configuration.
// GET /api/employees/{id}/work-days
func (h *Handler) GetWorkDays(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Configs.GetConfig(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, toWorkConfigDTO(*cfg))
}

// NextOffDays previews the rotation for the coming weeks.
// GET /api/employees/{id}/next-off-days?from=YYYY-MM-DD&weeks=N
func (h *Handler) NextOffDays(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Configs.GetConfig(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	from := rotation.Today()
	if v := r.URL.Query().Get("from"); v != "" {
		from, err = rotation.ParseDate(v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid from date (use YYYY-MM-DD)")
			return
		}
	}
	weeks := 4
	if v := r.URL.Query().Get("weeks"); v != "" {
		weeks, err = strconv.Atoi(v)
		if err != nil || weeks < 1 || weeks > 52 {
			writeMessage(w, http.StatusBadRequest, "weeks must be an integer between 1 and 52")
			return
		}
	}

	preview, err := rotation.RotationPreview(*cfg, from, weeks)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, toOffDayDTOs(preview))
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// GetSchedule returns an employee's month view with off-days, holidays and
// approved half-days folded in.
// GET /api/employees/{id}/schedule?year=YYYY&month=M
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	ctx := r.Context()

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	var err error
	if v := r.URL.Query().Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid year")
			return
		}
	}
	if v := r.URL.Query().Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil || month < 1 || month > 12 {
			writeMessage(w, http.StatusBadRequest, "month must be between 1 and 12")
			return
		}
	}

	cfg, err := h.Configs.GetConfig(ctx, employeeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	first := rotation.StartOfMonth(year, time.Month(month))
	last := rotation.EndOfMonth(year, time.Month(month))

	// Changes are keyed by week start; a week straddling the month edge
	// still shapes days inside the month.
	leaves, err := h.Leaves.ApprovedInRange(ctx, employeeID, first, last)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	changes, err := h.Swaps.ApprovedInRange(ctx, employeeID, first.WeekStart(), last)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	sched, err := h.Builder.BuildMonth(ctx, *cfg, year, time.Month(month), leaves, changes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, toMonthScheduleDTO(sched))
}

// =============================================================================
// HALF-DAY LEAVE HANDLERS
// =============================================================================

// ApplyHalfDay submits a half-day leave application.
// POST /api/employees/{id}/half-days
func (h *Handler) ApplyHalfDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var req ApplyHalfDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := rotation.ParseDate(req.Date)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid date format (use YYYY-MM-DD)")
		return
	}
	var comp *rotation.TimePoint
	if req.CompensationDate != nil {
		c, err := rotation.ParseDate(*req.CompensationDate)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid compensation_date format (use YYYY-MM-DD)")
			return
		}
		comp = &c
	}

	created, err := h.Leaves.Apply(r.Context(), employeeID, date,
		leave.Type(req.LeaveType), req.Reason, comp)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, toHalfDayDTO(*created))
}

// SuggestCompensationDates proposes compensation-date candidates.
// GET /api/employees/{id}/half-days/suggestions?from=YYYY-MM-DD&weeks=N
func (h *Handler) SuggestCompensationDates(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	from := rotation.Today()
	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		from, err = rotation.ParseDate(v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid from date (use YYYY-MM-DD)")
			return
		}
	}
	weeks := 4
	if v := r.URL.Query().Get("weeks"); v != "" {
		weeks, err = strconv.Atoi(v)
		if err != nil || weeks < 1 || weeks > 52 {
			writeMessage(w, http.StatusBadRequest, "weeks must be an integer between 1 and 52")
			return
		}
	}

	suggestions, err := h.Leaves.SuggestCompensationDates(r.Context(), employeeID, from, weeks)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, toSuggestionDTOs(suggestions))
}

// PendingHalfDays lists half-day requests awaiting decision.
// GET /api/requests/half-days/pending
func (h *Handler) PendingHalfDays(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Leaves.Pending(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, toHalfDayDTOs(pending))
}

// DecideHalfDay applies a manager decision to a half-day request.
// POST /api/requests/half-days/{id}/decision
func (h *Handler) DecideHalfDay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	action, managerID, reason, ok := h.parseDecision(w, r)
	if !ok {
		return
	}

	updated, err := h.Leaves.Decide(r.Context(), id, action, managerID, reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, toHalfDayDTO(*updated))
}

// =============================================================================
// CHANGE REQUEST HANDLERS
// =============================================================================

// ProposeChange submits a one-week off-day change.
// POST /api/employees/{id}/changes
func (h *Handler) ProposeChange(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var req ProposeChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	weekStart, err := rotation.ParseDate(req.WeekStart)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid week_start format (use YYYY-MM-DD)")
		return
	}

	created, err := h.Swaps.Propose(r.Context(), employeeID, weekStart,
		rotation.Weekday(req.TemporaryOffDay), req.Reason, req.SubstituteEmployee)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, toChangeDTO(*created))
}

// PendingChanges lists change requests awaiting decision.
// GET /api/requests/changes/pending
func (h *Handler) PendingChanges(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Swaps.Pending(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, toChangeDTOs(pending))
}

// DecideChange applies a manager decision to a change request.
// POST /api/requests/changes/{id}/decision
func (h *Handler) DecideChange(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	action, managerID, reason, ok := h.parseDecision(w, r)
	if !ok {
		return
	}

	updated, err := h.Swaps.Decide(r.Context(), id, action, managerID, reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, toChangeDTO(*updated))
}

// parseDecision extracts the action, manager id and rejection reason from
// a decision request. Returns ok=false after writing the error response.
func (h *Handler) parseDecision(w http.ResponseWriter, r *http.Request) (rotation.Action, string, string, bool) {
	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return "", "", "", false
	}

	managerID := r.Header.Get("X-Manager-Id")
	if managerID == "" {
		managerID = req.ManagerID
	}
	if managerID == "" {
		writeMessage(w, http.StatusBadRequest, "manager id required (X-Manager-Id header or manager_id field)")
		return "", "", "", false
	}

	action := rotation.Action(req.Action)
	if action != rotation.ActionApprove && action != rotation.ActionReject {
		writeMessage(w, http.StatusBadRequest, "action must be approve or reject")
		return "", "", "", false
	}
	return action, managerID, req.RejectionReason, true
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns a year's calendar, inactive entries included.
// GET /api/holidays?year=YYYY
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, ok := h.parseYear(w, r.URL.Query().Get("year"))
	if !ok {
		return
	}
	holidays, err := h.Holidays.List(r.Context(), year)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, toHolidayDTOs(holidays))
}

// CreateHoliday declares (or renames) a public holiday.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := rotation.ParseDate(req.Date)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid date format (use YYYY-MM-DD)")
		return
	}
	if req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := h.Holidays.Upsert(r.Context(), date, req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, toHolidayDTO(*created))
}

// DeactivateHoliday soft-deletes a holiday.
// DELETE /api/holidays/{id}
func (h *Handler) DeactivateHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Holidays.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// GenerateSubstitutes creates substitute days for weekend holidays.
// POST /api/holidays/substitutes
func (h *Handler) GenerateSubstitutes(w http.ResponseWriter, r *http.Request) {
	year, ok := h.parseYearBody(w, r)
	if !ok {
		return
	}
	created, err := h.Holidays.GenerateSubstitutes(r.Context(), year)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, toHolidayDTOs(created))
}

// SeedDefaultHolidays loads the default federal calendar for a year.
// POST /api/holidays/defaults
func (h *Handler) SeedDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	year, ok := h.parseYearBody(w, r)
	if !ok {
		return
	}
	seeded, err := h.Holidays.SeedDefaults(r.Context(), year)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, toHolidayDTOs(seeded))
}

// ValidateHolidays runs the calendar health check for a year.
// GET /api/holidays/validate?year=YYYY
func (h *Handler) ValidateHolidays(w http.ResponseWriter, r *http.Request) {
	year, ok := h.parseYear(w, r.URL.Query().Get("year"))
	if !ok {
		return
	}
	configs, err := h.Configs.ListConfigs(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	report, err := h.Holidays.Validate(r.Context(), year, configs)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, ValidationReportDTO{
		Year:     report.Year,
		OK:       report.OK(),
		Errors:   append([]string{}, report.Errors...),
		Warnings: append([]string{}, report.Warnings...),
	})
}

func (h *Handler) parseYear(w http.ResponseWriter, v string) (int, bool) {
	if v == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 2000 || year > 2200 {
		writeMessage(w, http.StatusBadRequest, "invalid year")
		return 0, false
	}
	return year, true
}

func (h *Handler) parseYearBody(w http.ResponseWriter, r *http.Request) (int, bool) {
	var req YearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return 0, false
	}
	if req.Year < 2000 || req.Year > 2200 {
		writeMessage(w, http.StatusBadRequest, "invalid year")
		return 0, false
	}
	return req.Year, true
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

// writeDomainError maps domain errors to HTTP status codes. Conflicts take
// priority over the broader client-error class.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case rotation.IsConflict(err):
		writeMessage(w, http.StatusConflict, err.Error())
	case rotation.IsNotFound(err):
		writeMessage(w, http.StatusNotFound, err.Error())
	case rotation.IsClientError(err):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}
