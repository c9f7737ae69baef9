/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Persists work configs, holidays, and both request kinds. In production the
  same patterns apply to PostgreSQL - only minor SQL dialect differences.

INVARIANTS ENFORCED HERE, NOT IN APPLICATION CODE:
  - At most one non-rejected request per (employee, date) and per
    (employee, week): partial unique indexes scoped to status != 'REJECTED'.
    Two concurrent submissions race to the index; the loser gets
    ErrDuplicateRequest.
  - Decisions are conditional updates guarded by status = 'PENDING'. Two
    managers racing to decide the same request see exactly one winner; the
    loser gets ErrAlreadyDecided.

KEY TABLES:
  work_configs:      Rotation anchors, one row per employee
  holidays:          Calendar entries, soft-deactivated, unique per date
  half_day_requests: Half-day leave applications and their decisions
  change_requests:   One-week off-day changes and their decisions

WAL MODE:
  SQLite is opened with WAL so schedule reads never block request writes.

MIGRATION:
  Schema is auto-migrated on New(). For production use a proper migration
  tool with versioned migrations.

SEE ALSO:
  - store/memory: In-memory implementation with the same semantics
  - rotation/errors.go: The sentinels database failures translate to
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/rotation-engine/holiday"
	"github.com/warp/rotation-engine/leave"
	"github.com/warp/rotation-engine/rotation"
	"github.com/warp/rotation-engine/swap"
)

// Store implements the storage interfaces using SQLite.
// leave.Store and swap.Store share method names, so the request stores are
// exposed as typed views over the same database handle.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite store. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

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

func (s *Store) migrate() error {
	schema := `
	-- Rotation anchors, one per employee
	CREATE TABLE IF NOT EXISTS work_configs (
		employee_id TEXT PRIMARY KEY,
		base_off_day INTEGER NOT NULL,
		cycle_start TEXT NOT NULL,
		is_probation BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Holidays: soft-deactivated, never deleted, one per date
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		year INTEGER NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		substitute BOOLEAN NOT NULL DEFAULT FALSE,
		substitute_for TEXT,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_date ON holidays(date);
	CREATE INDEX IF NOT EXISTS idx_holidays_year ON holidays(year);

	-- Half-day leave requests
	CREATE TABLE IF NOT EXISTS half_day_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		compensation_date TEXT,
		reason TEXT,
		status TEXT NOT NULL DEFAULT 'PENDING',
		requested_at TEXT NOT NULL,
		decided_by TEXT,
		decided_at TEXT,
		rejection_reason TEXT
	);

	-- CRITICAL: at most one non-rejected request per (employee, date).
	-- This closes the race between two concurrent submissions.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_half_day_active
		ON half_day_requests(employee_id, date)
		WHERE status != 'REJECTED';

	CREATE INDEX IF NOT EXISTS idx_half_day_status ON half_day_requests(status);
	CREATE INDEX IF NOT EXISTS idx_half_day_employee_date
		ON half_day_requests(employee_id, date);

	-- Temporary off-day change requests
	CREATE TABLE IF NOT EXISTS change_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		week_start TEXT NOT NULL,
		original_off_day INTEGER NOT NULL,
		temporary_off_day INTEGER NOT NULL,
		reason TEXT,
		substitute_employee TEXT,
		status TEXT NOT NULL DEFAULT 'PENDING',
		requested_at TEXT NOT NULL,
		decided_by TEXT,
		decided_at TEXT,
		rejection_reason TEXT
	);

	-- CRITICAL: at most one non-rejected request per (employee, week).
	CREATE UNIQUE INDEX IF NOT EXISTS idx_change_active
		ON change_requests(employee_id, week_start)
		WHERE status != 'REJECTED';

	CREATE INDEX IF NOT EXISTS idx_change_status ON change_requests(status);
	CREATE INDEX IF NOT EXISTS idx_change_employee_week
		ON change_requests(employee_id, week_start);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CONFIG STORE (rotation.ConfigStore interface)
// =============================================================================

// SaveConfig upserts a work config. Saving over an existing row is the
// explicit reset action.
func (s *Store) SaveConfig(ctx context.Context, cfg rotation.EmployeeWorkConfig) error {
	query := `
		INSERT INTO work_configs (employee_id, base_off_day, cycle_start, is_probation, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id) DO UPDATE SET
			base_off_day = excluded.base_off_day,
			cycle_start = excluded.cycle_start,
			is_probation = excluded.is_probation,
			updated_at = excluded.updated_at
	`
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		cfg.EmployeeID, int(cfg.BaseOffDay), cfg.CycleStart.String(), cfg.IsProbation, now, now)
	return err
}

// GetConfig returns the work config for an employee, or ErrNotFound.
func (s *Store) GetConfig(ctx context.Context, employeeID string) (*rotation.EmployeeWorkConfig, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT employee_id, base_off_day, cycle_start, is_probation, created_at, updated_at
		 FROM work_configs WHERE employee_id = ?`, employeeID)

	cfg, err := scanConfig(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("work config for %s: %w", employeeID, rotation.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ListConfigs returns all work configs ordered by employee id.
func (s *Store) ListConfigs(ctx context.Context) ([]rotation.EmployeeWorkConfig, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT employee_id, base_off_day, cycle_start, is_probation, created_at, updated_at
		 FROM work_configs ORDER BY employee_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []rotation.EmployeeWorkConfig
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, *cfg)
	}
	return configs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConfig(row rowScanner) (*rotation.EmployeeWorkConfig, error) {
	var (
		cfg        rotation.EmployeeWorkConfig
		baseOffDay int
		cycleStart string
		createdAt  string
		updatedAt  string
	)
	if err := row.Scan(&cfg.EmployeeID, &baseOffDay, &cycleStart, &cfg.IsProbation,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	cfg.BaseOffDay = rotation.Weekday(baseOffDay)
	start, err := rotation.ParseDate(cycleStart)
	if err != nil {
		return nil, fmt.Errorf("corrupt cycle_start: %w", err)
	}
	cfg.CycleStart = start
	cfg.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	cfg.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &cfg, nil
}

// =============================================================================
// HOLIDAY STORE (holiday.Store interface)
// =============================================================================

// UpsertHoliday inserts or replaces the holiday on its date.
func (s *Store) UpsertHoliday(ctx context.Context, h holiday.Holiday) error {
	query := `
		INSERT INTO holidays (id, date, name, year, active, substitute, substitute_for, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			name = excluded.name,
			active = excluded.active,
			substitute = excluded.substitute,
			substitute_for = excluded.substitute_for
	`
	_, err := s.db.ExecContext(ctx, query,
		h.ID, h.Date.String(), h.Name, h.Year, h.Active, h.Substitute,
		nullString(h.SubstituteFor),
		h.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

// GetHolidayByDate returns the holiday on a date, active or not.
// Returns nil without error when the date has no holiday.
func (s *Store) GetHolidayByDate(ctx context.Context, date rotation.TimePoint) (*holiday.Holiday, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, date, name, year, active, substitute, substitute_for, created_at
		 FROM holidays WHERE date = ?`, date.String())

	h, err := scanHoliday(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

// ListHolidays returns a year's holidays ordered by date, inactive included.
func (s *Store) ListHolidays(ctx context.Context, year int) ([]holiday.Holiday, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, name, year, active, substitute, substitute_for, created_at
		 FROM holidays WHERE year = ? ORDER BY date ASC`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, *h)
	}
	return holidays, rows.Err()
}

// DeactivateHoliday soft-deletes a holiday; the row stays for history.
func (s *Store) DeactivateHoliday(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE holidays SET active = FALSE WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("holiday %s: %w", id, rotation.ErrNotFound)
	}
	return nil
}

func scanHoliday(row rowScanner) (*holiday.Holiday, error) {
	var (
		h             holiday.Holiday
		dateStr       string
		substituteFor sql.NullString
		createdAt     string
	)
	if err := row.Scan(&h.ID, &dateStr, &h.Name, &h.Year, &h.Active, &h.Substitute,
		&substituteFor, &createdAt); err != nil {
		return nil, err
	}
	date, err := rotation.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt holiday date: %w", err)
	}
	h.Date = date
	h.SubstituteFor = substituteFor.String
	h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &h, nil
}

// =============================================================================
// HALF-DAY LEAVE STORE (leave.Store interface)
// =============================================================================

// LeaveStore is the half-day leave view over the shared database handle.
type LeaveStore struct{ s *Store }

// CreateRequest inserts a new request. Losing the race to the partial
// unique index surfaces as ErrDuplicateRequest, same as the app-level check.
func (ls *LeaveStore) CreateRequest(ctx context.Context, r leave.Request) error {
	query := `
		INSERT INTO half_day_requests
		(id, employee_id, date, leave_type, compensation_date, reason, status, requested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	var comp sql.NullString
	if r.CompensationDate != nil {
		comp = sql.NullString{String: r.CompensationDate.String(), Valid: true}
	}
	_, err := ls.s.db.ExecContext(ctx, query,
		r.ID, r.EmployeeID, r.Date.String(), string(r.Type), comp,
		r.Reason, string(r.Status), r.RequestedAt.UTC().Format(time.RFC3339))
	if err != nil {
		if isUniqueConstraintError(err) {
			return &rotation.DuplicateRequestError{EmployeeID: r.EmployeeID, Date: r.Date}
		}
		return fmt.Errorf("failed to create half-day request: %w", err)
	}
	return nil
}

// GetRequest returns a request by id, or ErrNotFound.
func (ls *LeaveStore) GetRequest(ctx context.Context, id string) (*leave.Request, error) {
	row := ls.s.db.QueryRowContext(ctx, leaveSelect+` WHERE id = ?`, id)
	r, err := scanLeave(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("half-day request %s: %w", id, rotation.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FindActive returns the non-rejected request on (employee, date), if any.
func (ls *LeaveStore) FindActive(ctx context.Context, employeeID string, date rotation.TimePoint) (*leave.Request, error) {
	row := ls.s.db.QueryRowContext(ctx,
		leaveSelect+` WHERE employee_id = ? AND date = ? AND status != 'REJECTED'`,
		employeeID, date.String())
	r, err := scanLeave(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListByStatus returns requests in a status, oldest first.
func (ls *LeaveStore) ListByStatus(ctx context.Context, status rotation.Status) ([]leave.Request, error) {
	return ls.query(ctx,
		leaveSelect+` WHERE status = ? ORDER BY requested_at ASC, id ASC`, string(status))
}

// ListApproved returns approved leaves with dates in [from, to].
func (ls *LeaveStore) ListApproved(ctx context.Context, employeeID string, from, to rotation.TimePoint) ([]leave.Request, error) {
	return ls.query(ctx,
		leaveSelect+` WHERE employee_id = ? AND status = 'APPROVED' AND date >= ? AND date <= ?
		 ORDER BY date ASC`,
		employeeID, from.String(), to.String())
}

// ApplyDecision flips a PENDING request with a conditional update. If zero
// rows match, a re-read distinguishes a missing id from a lost race.
func (ls *LeaveStore) ApplyDecision(ctx context.Context, id string, d rotation.Decision) (*leave.Request, error) {
	res, err := ls.s.db.ExecContext(ctx,
		`UPDATE half_day_requests
		 SET status = ?, decided_by = ?, decided_at = ?, rejection_reason = ?
		 WHERE id = ? AND status = 'PENDING'`,
		string(d.Status), d.ManagerID, d.DecidedAt.UTC().Format(time.RFC3339),
		nullString(d.Reason), id)
	if err != nil {
		return nil, fmt.Errorf("failed to apply decision: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		existing, err := ls.GetRequest(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("half-day request %s is %s: %w",
			id, existing.Status, rotation.ErrAlreadyDecided)
	}
	return ls.GetRequest(ctx, id)
}

func (ls *LeaveStore) query(ctx context.Context, query string, args ...any) ([]leave.Request, error) {
	rows, err := ls.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		r, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *r)
	}
	return requests, rows.Err()
}

const leaveSelect = `
	SELECT id, employee_id, date, leave_type, compensation_date, reason, status,
	       requested_at, decided_by, decided_at, rejection_reason
	FROM half_day_requests`

func scanLeave(row rowScanner) (*leave.Request, error) {
	var (
		r               leave.Request
		dateStr         string
		leaveType       string
		comp            sql.NullString
		reason          sql.NullString
		status          string
		requestedAt     string
		decidedBy       sql.NullString
		decidedAt       sql.NullString
		rejectionReason sql.NullString
	)
	if err := row.Scan(&r.ID, &r.EmployeeID, &dateStr, &leaveType, &comp, &reason,
		&status, &requestedAt, &decidedBy, &decidedAt, &rejectionReason); err != nil {
		return nil, err
	}

	date, err := rotation.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt request date: %w", err)
	}
	r.Date = date
	r.Type = leave.Type(leaveType)
	if comp.Valid {
		c, err := rotation.ParseDate(comp.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt compensation date: %w", err)
		}
		r.CompensationDate = &c
	}
	r.Reason = reason.String
	r.Status = rotation.Status(status)
	r.RequestedAt, _ = time.Parse(time.RFC3339, requestedAt)
	r.DecidedBy = decidedBy.String
	if decidedAt.Valid {
		t, _ := time.Parse(time.RFC3339, decidedAt.String)
		r.DecidedAt = &t
	}
	r.RejectionReason = rejectionReason.String
	return &r, nil
}

// =============================================================================
// CHANGE REQUEST STORE (swap.Store interface)
// =============================================================================

// SwapStore is the change request view over the shared database handle.
type SwapStore struct{ s *Store }

// CreateRequest inserts a new change request; unique-index losses surface
// as ErrDuplicateRequest.
func (ss *SwapStore) CreateRequest(ctx context.Context, r swap.Request) error {
	query := `
		INSERT INTO change_requests
		(id, employee_id, week_start, original_off_day, temporary_off_day,
		 reason, substitute_employee, status, requested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := ss.s.db.ExecContext(ctx, query,
		r.ID, r.EmployeeID, r.WeekStart.String(),
		int(r.OriginalOffDay), int(r.TemporaryOffDay),
		r.Reason, nullString(r.SubstituteEmployee),
		string(r.Status), r.RequestedAt.UTC().Format(time.RFC3339))
	if err != nil {
		if isUniqueConstraintError(err) {
			return &rotation.DuplicateRequestError{EmployeeID: r.EmployeeID, Date: r.WeekStart}
		}
		return fmt.Errorf("failed to create change request: %w", err)
	}
	return nil
}

// GetRequest returns a request by id, or ErrNotFound.
func (ss *SwapStore) GetRequest(ctx context.Context, id string) (*swap.Request, error) {
	row := ss.s.db.QueryRowContext(ctx, swapSelect+` WHERE id = ?`, id)
	r, err := scanSwap(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("change request %s: %w", id, rotation.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FindActive returns the non-rejected request for (employee, weekStart), if any.
func (ss *SwapStore) FindActive(ctx context.Context, employeeID string, weekStart rotation.TimePoint) (*swap.Request, error) {
	row := ss.s.db.QueryRowContext(ctx,
		swapSelect+` WHERE employee_id = ? AND week_start = ? AND status != 'REJECTED'`,
		employeeID, weekStart.String())
	r, err := scanSwap(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListByStatus returns requests in a status, oldest first.
func (ss *SwapStore) ListByStatus(ctx context.Context, status rotation.Status) ([]swap.Request, error) {
	return ss.query(ctx,
		swapSelect+` WHERE status = ? ORDER BY requested_at ASC, id ASC`, string(status))
}

// ListApproved returns approved changes with week starts in [from, to].
func (ss *SwapStore) ListApproved(ctx context.Context, employeeID string, from, to rotation.TimePoint) ([]swap.Request, error) {
	return ss.query(ctx,
		swapSelect+` WHERE employee_id = ? AND status = 'APPROVED' AND week_start >= ? AND week_start <= ?
		 ORDER BY week_start ASC`,
		employeeID, from.String(), to.String())
}

// ApplyDecision flips a PENDING request with a conditional update.
func (ss *SwapStore) ApplyDecision(ctx context.Context, id string, d rotation.Decision) (*swap.Request, error) {
	res, err := ss.s.db.ExecContext(ctx,
		`UPDATE change_requests
		 SET status = ?, decided_by = ?, decided_at = ?, rejection_reason = ?
		 WHERE id = ? AND status = 'PENDING'`,
		string(d.Status), d.ManagerID, d.DecidedAt.UTC().Format(time.RFC3339),
		nullString(d.Reason), id)
	if err != nil {
		return nil, fmt.Errorf("failed to apply decision: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		existing, err := ss.GetRequest(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("change request %s is %s: %w",
			id, existing.Status, rotation.ErrAlreadyDecided)
	}
	return ss.GetRequest(ctx, id)
}

func (ss *SwapStore) query(ctx context.Context, query string, args ...any) ([]swap.Request, error) {
	rows, err := ss.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []swap.Request
	for rows.Next() {
		r, err := scanSwap(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *r)
	}
	return requests, rows.Err()
}

const swapSelect = `
	SELECT id, employee_id, week_start, original_off_day, temporary_off_day,
	       reason, substitute_employee, status, requested_at,
	       decided_by, decided_at, rejection_reason
	FROM change_requests`

func scanSwap(row rowScanner) (*swap.Request, error) {
	var (
		r               swap.Request
		weekStart       string
		original        int
		temporary       int
		reason          sql.NullString
		substitute      sql.NullString
		status          string
		requestedAt     string
		decidedBy       sql.NullString
		decidedAt       sql.NullString
		rejectionReason sql.NullString
	)
	if err := row.Scan(&r.ID, &r.EmployeeID, &weekStart, &original, &temporary,
		&reason, &substitute, &status, &requestedAt,
		&decidedBy, &decidedAt, &rejectionReason); err != nil {
		return nil, err
	}

	ws, err := rotation.ParseDate(weekStart)
	if err != nil {
		return nil, fmt.Errorf("corrupt week start: %w", err)
	}
	r.WeekStart = ws
	r.OriginalOffDay = rotation.Weekday(original)
	r.TemporaryOffDay = rotation.Weekday(temporary)
	r.Reason = reason.String
	r.SubstituteEmployee = substitute.String
	r.Status = rotation.Status(status)
	r.RequestedAt, _ = time.Parse(time.RFC3339, requestedAt)
	r.DecidedBy = decidedBy.String
	if decidedAt.Valid {
		t, _ := time.Parse(time.RFC3339, decidedAt.String)
		r.DecidedAt = &t
	}
	r.RejectionReason = rejectionReason.String
	return &r, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data. Intended for tests and demo seeding.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"half_day_requests", "change_requests", "holidays", "work_configs"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
