// Package memory provides in-memory store implementations for tests and dev.
// It enforces the same invariants as the SQLite store: duplicate active
// requests are rejected and decisions are compare-and-swap on PENDING.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/rotation-engine/holiday"
	"github.com/warp/rotation-engine/leave"
	"github.com/warp/rotation-engine/rotation"
	"github.com/warp/rotation-engine/swap"
)

// Store holds everything behind one mutex; contention is irrelevant at
// test scale and the locking mirrors the SQLite store's atomicity.
// The two request stores hang off it as typed views (leave.Store and
// swap.Store share method names, so one struct cannot satisfy both).
type Store struct {
	mu       sync.RWMutex
	configs  map[string]rotation.EmployeeWorkConfig
	holidays map[string]holiday.Holiday // keyed by date string
	leaves   map[string]leave.Request   // keyed by id
	swaps    map[string]swap.Request    // keyed by id
}

func New() *Store {
	return &Store{
		configs:  make(map[string]rotation.EmployeeWorkConfig),
		holidays: make(map[string]holiday.Holiday),
		leaves:   make(map[string]leave.Request),
		swaps:    make(map[string]swap.Request),
	}
}

// Leaves returns the half-day leave request view.
func (s *Store) Leaves() *LeaveStore { return &LeaveStore{s} }

// Swaps returns the change request view.
func (s *Store) Swaps() *SwapStore { return &SwapStore{s} }

var (
	_ rotation.ConfigStore = (*Store)(nil)
	_ holiday.Store        = (*Store)(nil)
	_ leave.Store          = (*LeaveStore)(nil)
	_ swap.Store           = (*SwapStore)(nil)
)

// =============================================================================
// CONFIG STORE
// =============================================================================

func (s *Store) SaveConfig(_ context.Context, cfg rotation.EmployeeWorkConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[cfg.EmployeeID] = cfg
	return nil
}

func (s *Store) GetConfig(_ context.Context, employeeID string) (*rotation.EmployeeWorkConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[employeeID]
	if !ok {
		return nil, rotation.ErrNotFound
	}
	return &cfg, nil
}

func (s *Store) ListConfigs(_ context.Context) ([]rotation.EmployeeWorkConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]rotation.EmployeeWorkConfig, 0, len(s.configs))
	for _, cfg := range s.configs {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

// =============================================================================
// HOLIDAY STORE
// =============================================================================

func (s *Store) UpsertHoliday(_ context.Context, h holiday.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holidays[h.Date.String()] = h
	return nil
}

func (s *Store) GetHolidayByDate(_ context.Context, date rotation.TimePoint) (*holiday.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.holidays[date.String()]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (s *Store) ListHolidays(_ context.Context, year int) ([]holiday.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []holiday.Holiday
	for _, h := range s.holidays {
		if h.Year == year {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) DeactivateHoliday(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, h := range s.holidays {
		if h.ID == id {
			h.Active = false
			s.holidays[key] = h
			return nil
		}
	}
	return rotation.ErrNotFound
}

// =============================================================================
// HALF-DAY LEAVE STORE
// =============================================================================

type LeaveStore struct{ s *Store }

func (ls *LeaveStore) CreateRequest(_ context.Context, r leave.Request) error {
	ls.s.mu.Lock()
	defer ls.s.mu.Unlock()
	for _, existing := range ls.s.leaves {
		if existing.EmployeeID == r.EmployeeID && existing.Date.Equal(r.Date) &&
			existing.Status != rotation.StatusRejected {
			return &rotation.DuplicateRequestError{
				EmployeeID: r.EmployeeID,
				Date:       r.Date,
				ExistingID: existing.ID,
			}
		}
	}
	ls.s.leaves[r.ID] = r
	return nil
}

func (ls *LeaveStore) GetRequest(_ context.Context, id string) (*leave.Request, error) {
	ls.s.mu.RLock()
	defer ls.s.mu.RUnlock()
	r, ok := ls.s.leaves[id]
	if !ok {
		return nil, rotation.ErrNotFound
	}
	return &r, nil
}

func (ls *LeaveStore) FindActive(_ context.Context, employeeID string, date rotation.TimePoint) (*leave.Request, error) {
	ls.s.mu.RLock()
	defer ls.s.mu.RUnlock()
	for _, r := range ls.s.leaves {
		if r.EmployeeID == employeeID && r.Date.Equal(date) && r.Status != rotation.StatusRejected {
			req := r
			return &req, nil
		}
	}
	return nil, nil
}

func (ls *LeaveStore) ListByStatus(_ context.Context, status rotation.Status) ([]leave.Request, error) {
	ls.s.mu.RLock()
	defer ls.s.mu.RUnlock()
	var out []leave.Request
	for _, r := range ls.s.leaves {
		if r.Status == status {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.Before(out[j].RequestedAt) })
	return out, nil
}

func (ls *LeaveStore) ListApproved(_ context.Context, employeeID string, from, to rotation.TimePoint) ([]leave.Request, error) {
	ls.s.mu.RLock()
	defer ls.s.mu.RUnlock()
	var out []leave.Request
	for _, r := range ls.s.leaves {
		if r.EmployeeID == employeeID && r.Status == rotation.StatusApproved &&
			r.Date.AfterOrEqual(from) && r.Date.BeforeOrEqual(to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (ls *LeaveStore) ApplyDecision(_ context.Context, id string, d rotation.Decision) (*leave.Request, error) {
	ls.s.mu.Lock()
	defer ls.s.mu.Unlock()
	r, ok := ls.s.leaves[id]
	if !ok {
		return nil, rotation.ErrNotFound
	}
	if r.Status != rotation.StatusPending {
		return nil, rotation.ErrAlreadyDecided
	}
	r.Status = d.Status
	r.DecidedBy = d.ManagerID
	at := d.DecidedAt
	r.DecidedAt = &at
	r.RejectionReason = d.Reason
	ls.s.leaves[id] = r
	return &r, nil
}

// =============================================================================
// CHANGE REQUEST STORE
// =============================================================================

type SwapStore struct{ s *Store }

func (ss *SwapStore) CreateRequest(_ context.Context, r swap.Request) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	for _, existing := range ss.s.swaps {
		if existing.EmployeeID == r.EmployeeID && existing.WeekStart.Equal(r.WeekStart) &&
			existing.Status != rotation.StatusRejected {
			return &rotation.DuplicateRequestError{
				EmployeeID: r.EmployeeID,
				Date:       r.WeekStart,
				ExistingID: existing.ID,
			}
		}
	}
	ss.s.swaps[r.ID] = r
	return nil
}

func (ss *SwapStore) GetRequest(_ context.Context, id string) (*swap.Request, error) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()
	r, ok := ss.s.swaps[id]
	if !ok {
		return nil, rotation.ErrNotFound
	}
	return &r, nil
}

func (ss *SwapStore) FindActive(_ context.Context, employeeID string, weekStart rotation.TimePoint) (*swap.Request, error) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()
	for _, r := range ss.s.swaps {
		if r.EmployeeID == employeeID && r.WeekStart.Equal(weekStart) &&
			r.Status != rotation.StatusRejected {
			req := r
			return &req, nil
		}
	}
	return nil, nil
}

func (ss *SwapStore) ListByStatus(_ context.Context, status rotation.Status) ([]swap.Request, error) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()
	var out []swap.Request
	for _, r := range ss.s.swaps {
		if r.Status == status {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.Before(out[j].RequestedAt) })
	return out, nil
}

func (ss *SwapStore) ListApproved(_ context.Context, employeeID string, from, to rotation.TimePoint) ([]swap.Request, error) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()
	var out []swap.Request
	for _, r := range ss.s.swaps {
		if r.EmployeeID == employeeID && r.Status == rotation.StatusApproved &&
			r.WeekStart.AfterOrEqual(from) && r.WeekStart.BeforeOrEqual(to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	return out, nil
}

func (ss *SwapStore) ApplyDecision(_ context.Context, id string, d rotation.Decision) (*swap.Request, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	r, ok := ss.s.swaps[id]
	if !ok {
		return nil, rotation.ErrNotFound
	}
	if r.Status != rotation.StatusPending {
		return nil, rotation.ErrAlreadyDecided
	}
	r.Status = d.Status
	r.DecidedBy = d.ManagerID
	at := d.DecidedAt
	r.DecidedAt = &at
	r.RejectionReason = d.Reason
	ss.s.swaps[id] = r
	return &r, nil
}
