/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

ENVELOPE:
  Every response is wrapped: {"success": true, "data": ...} or
  {"success": false, "message": "..."}. Clients branch on success alone.

VALIDATION:
  Validation is done in handlers and managers, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - server.go: Route definitions
*/
package api

import (
	"time"

	"github.com/warp/rotation-engine/holiday"
	"github.com/warp/rotation-engine/leave"
	"github.com/warp/rotation-engine/rotation"
	"github.com/warp/rotation-engine/schedule"
	"github.com/warp/rotation-engine/swap"
)

// =============================================================================
// ENVELOPE
// =============================================================================

// Envelope is the uniform response wrapper.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// SetWorkDaysRequest configures (or resets) an employee's rotation.
type SetWorkDaysRequest struct {
	BaseOffDay  int    `json:"base_off_day"` // 1=Monday .. 5=Friday
	CycleStart  string `json:"cycle_start"`  // YYYY-MM-DD, must be a Monday
	IsProbation bool   `json:"is_probation"`
}

// ApplyHalfDayRequest submits a half-day leave application.
type ApplyHalfDayRequest struct {
	Date             string  `json:"date"`       // YYYY-MM-DD
	LeaveType        string  `json:"leave_type"` // HALF_AM or HALF_PM
	Reason           string  `json:"reason,omitempty"`
	CompensationDate *string `json:"compensation_date,omitempty"`
}

// ProposeChangeRequest submits a one-week off-day change.
type ProposeChangeRequest struct {
	WeekStart          string `json:"week_start"`        // Monday, YYYY-MM-DD
	TemporaryOffDay    int    `json:"temporary_off_day"` // 1..5
	Reason             string `json:"reason,omitempty"`
	SubstituteEmployee string `json:"substitute_employee,omitempty"`
}

// DecisionRequest carries a manager's verdict on a pending request.
// The manager id comes from the X-Manager-Id header or this body field.
type DecisionRequest struct {
	Action          string `json:"action"` // approve or reject
	ManagerID       string `json:"manager_id,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// CreateHolidayRequest declares a public holiday.
type CreateHolidayRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

// YearRequest scopes an operation to a calendar year.
type YearRequest struct {
	Year int `json:"year"`
}

// LoadScenarioRequest selects a demo scenario to seed.
type LoadScenarioRequest struct {
	ID string `json:"id"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// WorkConfigDTO is an employee's rotation configuration.
type WorkConfigDTO struct {
	EmployeeID  string `json:"employee_id"`
	BaseOffDay  int    `json:"base_off_day"`
	BaseOffName string `json:"base_off_name"`
	CycleStart  string `json:"cycle_start"`
	IsProbation bool   `json:"is_probation"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// OffDayDTO is one week of a rotation preview.
type OffDayDTO struct {
	WeekStart string `json:"week_start"`
	OffDay    int    `json:"off_day"`
	OffName   string `json:"off_name"`
	OffDate   string `json:"off_date"`
}

// HalfDayRequestDTO is a half-day leave request with its decision state.
type HalfDayRequestDTO struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	Date             string  `json:"date"`
	LeaveType        string  `json:"leave_type"`
	CompensationDate *string `json:"compensation_date,omitempty"`
	Reason           string  `json:"reason,omitempty"`
	Status           string  `json:"status"`
	RequestedAt      string  `json:"requested_at"`
	DecidedBy        string  `json:"decided_by,omitempty"`
	DecidedAt        *string `json:"decided_at,omitempty"`
	RejectionReason  string  `json:"rejection_reason,omitempty"`
}

// ChangeRequestDTO is an off-day change request with its decision state.
type ChangeRequestDTO struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	WeekStart          string  `json:"week_start"`
	OriginalOffDay     int     `json:"original_off_day"`
	TemporaryOffDay    int     `json:"temporary_off_day"`
	Reason             string  `json:"reason,omitempty"`
	SubstituteEmployee string  `json:"substitute_employee,omitempty"`
	Status             string  `json:"status"`
	RequestedAt        string  `json:"requested_at"`
	DecidedBy          string  `json:"decided_by,omitempty"`
	DecidedAt          *string `json:"decided_at,omitempty"`
	RejectionReason    string  `json:"rejection_reason,omitempty"`
}

// SuggestionDTO is one compensation-date candidate.
type SuggestionDTO struct {
	Date        string `json:"date"`
	Weekday     int    `json:"weekday"`
	WeekdayName string `json:"weekday_name"`
	WeeksAhead  int    `json:"weeks_ahead"`
}

// HolidayDTO is one calendar entry.
type HolidayDTO struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Name          string `json:"name"`
	Year          int    `json:"year"`
	Active        bool   `json:"active"`
	Substitute    bool   `json:"substitute"`
	SubstituteFor string `json:"substitute_for,omitempty"`
}

// ValidationReportDTO is the holiday calendar health check.
type ValidationReportDTO struct {
	Year     int      `json:"year"`
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// DayEntryDTO is one calendar day of a month schedule.
type DayEntryDTO struct {
	Date        string `json:"date"`
	DayOfWeek   int    `json:"day_of_week"`
	OffDay      int    `json:"off_day,omitempty"`
	IsOffDay    bool   `json:"is_off_day"`
	IsHoliday   bool   `json:"is_holiday"`
	HolidayName string `json:"holiday_name,omitempty"`
	HasHalfDay  bool   `json:"has_half_day"`
	HalfDayType string `json:"half_day_type,omitempty"`
}

// MonthScheduleDTO is a month view plus aggregates.
type MonthScheduleDTO struct {
	EmployeeID       string        `json:"employee_id"`
	Year             int           `json:"year"`
	Month            int           `json:"month"`
	Entries          []DayEntryDTO `json:"entries"`
	WorkDaysCount    int           `json:"work_days_count"`
	TotalHours       string        `json:"total_hours"`
	WeeksWithHoliday []string      `json:"weeks_with_holiday,omitempty"`
}

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toWorkConfigDTO(cfg rotation.EmployeeWorkConfig) WorkConfigDTO {
	return WorkConfigDTO{
		EmployeeID:  cfg.EmployeeID,
		BaseOffDay:  int(cfg.BaseOffDay),
		BaseOffName: cfg.BaseOffDay.String(),
		CycleStart:  cfg.CycleStart.String(),
		IsProbation: cfg.IsProbation,
		UpdatedAt:   cfg.UpdatedAt.Format(time.RFC3339),
	}
}

func toOffDayDTOs(preview []rotation.CyclePreview) []OffDayDTO {
	dtos := make([]OffDayDTO, len(preview))
	for i, p := range preview {
		dtos[i] = OffDayDTO{
			WeekStart: p.WeekStart.String(),
			OffDay:    int(p.OffDay),
			OffName:   p.OffDay.String(),
			OffDate:   p.OffDate.String(),
		}
	}
	return dtos
}

func toHalfDayDTO(r leave.Request) HalfDayRequestDTO {
	dto := HalfDayRequestDTO{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		Date:            r.Date.String(),
		LeaveType:       string(r.Type),
		Reason:          r.Reason,
		Status:          string(r.Status),
		RequestedAt:     r.RequestedAt.Format(time.RFC3339),
		DecidedBy:       r.DecidedBy,
		RejectionReason: r.RejectionReason,
	}
	if r.CompensationDate != nil {
		s := r.CompensationDate.String()
		dto.CompensationDate = &s
	}
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		dto.DecidedAt = &s
	}
	return dto
}

func toHalfDayDTOs(reqs []leave.Request) []HalfDayRequestDTO {
	dtos := make([]HalfDayRequestDTO, len(reqs))
	for i, r := range reqs {
		dtos[i] = toHalfDayDTO(r)
	}
	return dtos
}

func toChangeDTO(r swap.Request) ChangeRequestDTO {
	dto := ChangeRequestDTO{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		WeekStart:          r.WeekStart.String(),
		OriginalOffDay:     int(r.OriginalOffDay),
		TemporaryOffDay:    int(r.TemporaryOffDay),
		Reason:             r.Reason,
		SubstituteEmployee: r.SubstituteEmployee,
		Status:             string(r.Status),
		RequestedAt:        r.RequestedAt.Format(time.RFC3339),
		DecidedBy:          r.DecidedBy,
		RejectionReason:    r.RejectionReason,
	}
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		dto.DecidedAt = &s
	}
	return dto
}

func toChangeDTOs(reqs []swap.Request) []ChangeRequestDTO {
	dtos := make([]ChangeRequestDTO, len(reqs))
	for i, r := range reqs {
		dtos[i] = toChangeDTO(r)
	}
	return dtos
}

func toSuggestionDTOs(suggestions []leave.Suggestion) []SuggestionDTO {
	dtos := make([]SuggestionDTO, len(suggestions))
	for i, s := range suggestions {
		dtos[i] = SuggestionDTO{
			Date:        s.Date.String(),
			Weekday:     int(s.Weekday),
			WeekdayName: s.Weekday.String(),
			WeeksAhead:  s.WeeksAhead,
		}
	}
	return dtos
}

func toHolidayDTO(h holiday.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:            h.ID,
		Date:          h.Date.String(),
		Name:          h.Name,
		Year:          h.Year,
		Active:        h.Active,
		Substitute:    h.Substitute,
		SubstituteFor: h.SubstituteFor,
	}
}

func toHolidayDTOs(holidays []holiday.Holiday) []HolidayDTO {
	dtos := make([]HolidayDTO, len(holidays))
	for i, h := range holidays {
		dtos[i] = toHolidayDTO(h)
	}
	return dtos
}

func toMonthScheduleDTO(s *schedule.MonthSchedule) MonthScheduleDTO {
	entries := make([]DayEntryDTO, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = DayEntryDTO{
			Date:        e.Date.String(),
			DayOfWeek:   int(e.DayOfWeek),
			OffDay:      int(e.OffDay),
			IsOffDay:    e.IsOffDay,
			IsHoliday:   e.IsHoliday,
			HolidayName: e.HolidayName,
			HasHalfDay:  e.HasHalfDay,
			HalfDayType: string(e.HalfDayType),
		}
	}
	weeks := make([]string, len(s.WeeksWithHoliday))
	for i, w := range s.WeeksWithHoliday {
		weeks[i] = w.String()
	}
	return MonthScheduleDTO{
		EmployeeID:       s.EmployeeID,
		Year:             s.Year,
		Month:            int(s.Month),
		Entries:          entries,
		WorkDaysCount:    s.WorkDaysCount,
		TotalHours:       s.TotalHours.String(),
		WeeksWithHoliday: weeks,
	}
}
