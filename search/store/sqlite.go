package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a SQLite implementation of Store.
//
// It keeps reports in a single-file database and needs no cgo. Designed for
// local benchmarking of strategies and for the searchctl tool.
//
// Schema:
//   - search_reports: one row per run, keyed by run_id
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	path   string
}

// NewSQLiteStore opens (creating if needed) the database at path.
//
// The path parameter specifies the database file location:
//   - "./reports.db" - file in current directory
//   - ":memory:" - in-memory database (data lost on close)
//
// Example:
//
//	st, err := store.NewSQLiteStore("./reports.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite supports one writer at a time
	db.SetMaxIdleConns(1) // Keep the connection (and any :memory: database) alive
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) createTables(ctx context.Context) error {
	reportsTable := `
		CREATE TABLE IF NOT EXISTS search_reports (
			run_id TEXT NOT NULL PRIMARY KEY,
			strategy TEXT NOT NULL,
			solved INTEGER NOT NULL,
			path TEXT NOT NULL,
			end_state TEXT NOT NULL,
			generated INTEGER NOT NULL,
			expanded INTEGER NOT NULL,
			duplicates INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, reportsTable); err != nil {
		return fmt.Errorf("failed to create search_reports table: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_reports_started ON search_reports(started_at)"); err != nil {
		return fmt.Errorf("failed to create idx_reports_started: %w", err)
	}

	return nil
}

func (s *SQLiteStore) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// SaveReport implements Store.
func (s *SQLiteStore) SaveReport(ctx context.Context, report Report) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	args, err := reportArgs(report)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO search_reports (` + reportColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			strategy = excluded.strategy,
			solved = excluded.solved,
			path = excluded.path,
			end_state = excluded.end_state,
			generated = excluded.generated,
			expanded = excluded.expanded,
			duplicates = excluded.duplicates,
			started_at = excluded.started_at,
			elapsed_ns = excluded.elapsed_ns
	`
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// LoadReport implements Store.
func (s *SQLiteStore) LoadReport(ctx context.Context, runID string) (Report, error) {
	if err := s.checkOpen(); err != nil {
		return Report{}, err
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+reportColumns+" FROM search_reports WHERE run_id = ?", runID)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrNotFound
	}
	if err != nil {
		return Report{}, fmt.Errorf("failed to load report: %w", err)
	}
	return r, nil
}

// ListReports implements Store.
func (s *SQLiteStore) ListReports(ctx context.Context, limit int) ([]Report, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+reportColumns+" FROM search_reports ORDER BY started_at DESC, run_id ASC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}

// Path returns the database location the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
