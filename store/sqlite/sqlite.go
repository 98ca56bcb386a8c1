/*
Package sqlite provides SQLite-backed persistence for calculation history.

PURPOSE:
  Stores input/result pairs and timesheet entries keyed by an opaque user
  identifier. Persistence is a collaborator of the engine, never an input
  to it: every calculation remains a pure function of (input, rule set),
  and nothing stored here influences computation.

KEY TABLES:
  calculations:       One row per saved calculation (inputs + results JSON)
  timesheet_entries:  Raw punch-clock entries a user keeps between visits

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

USAGE:
  store, err := sqlite.New("./data/payroll.db")   // ":memory:" for tests
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - api/handlers.go: The only caller; persistence is opt-in per request
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists calculation history and timesheet entries.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
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
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Saved calculations (inputs and results as JSON documents)
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		inputs_json TEXT NOT NULL,
		results_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_user_created
		ON calculations(user_id, created_at DESC);

	-- Raw punch-clock entries a user keeps between sessions
	CREATE TABLE IF NOT EXISTS timesheet_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		check_in TEXT NOT NULL,
		check_out TEXT NOT NULL,
		unpaid_break_minutes INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_timesheet_entries_user_date
		ON timesheet_entries(user_id, date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CALCULATION HISTORY
// =============================================================================

// CalculationRecord is one saved calculation. Inputs and results are kept
// as the JSON documents the API exchanged, so history replays exactly what
// the user saw.
type CalculationRecord struct {
	ID          string
	UserID      string
	Mode        string // "hourly", "salary", "timesheet"
	InputsJSON  string
	ResultsJSON string
	CreatedAt   time.Time
}

// SaveCalculation inserts a calculation record.
func (s *Store) SaveCalculation(ctx context.Context, rec CalculationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (id, user_id, mode, inputs_json, results_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Mode, rec.InputsJSON, rec.ResultsJSON,
		rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save calculation: %w", err)
	}
	return nil
}

// ListCalculations returns a user's saved calculations, newest first.
func (s *Store) ListCalculations(ctx context.Context, userID string, limit int) ([]CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, mode, inputs_json, results_json, created_at
		FROM calculations
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	var records []CalculationRecord
	for rows.Next() {
		var rec CalculationRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Mode, &rec.InputsJSON, &rec.ResultsJSON, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// =============================================================================
// TIMESHEET ENTRIES
// =============================================================================

// TimesheetRecord is one stored punch-clock entry.
type TimesheetRecord struct {
	ID                 string
	UserID             string
	Date               string // YYYY-MM-DD
	CheckIn            string // HH:MM
	CheckOut           string // HH:MM
	UnpaidBreakMinutes int
	Notes              string
	CreatedAt          time.Time
}

// SaveTimesheetEntry inserts one punch-clock entry.
func (s *Store) SaveTimesheetEntry(ctx context.Context, rec TimesheetRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO timesheet_entries (id, user_id, date, check_in, check_out, unpaid_break_minutes, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Date, rec.CheckIn, rec.CheckOut,
		rec.UnpaidBreakMinutes, rec.Notes, rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save timesheet entry: %w", err)
	}
	return nil
}

// ListTimesheetEntries returns a user's entries ordered by date.
func (s *Store) ListTimesheetEntries(ctx context.Context, userID string) ([]TimesheetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, date, check_in, check_out, unpaid_break_minutes, notes, created_at
		FROM timesheet_entries
		WHERE user_id = ?
		ORDER BY date, check_in`, userID)
	if err != nil {
		return nil, fmt.Errorf("list timesheet entries: %w", err)
	}
	defer rows.Close()

	var records []TimesheetRecord
	for rows.Next() {
		var rec TimesheetRecord
		var notes sql.NullString
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
			&rec.UnpaidBreakMinutes, &notes, &createdAt); err != nil {
			return nil, err
		}
		rec.Notes = notes.String
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteTimesheetEntry removes one entry. The user scope prevents deleting
// another user's rows with a guessed ID.
func (s *Store) DeleteTimesheetEntry(ctx context.Context, userID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM timesheet_entries WHERE id = ? AND user_id = ?`, entryID, userID)
	if err != nil {
		return fmt.Errorf("delete timesheet entry: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
