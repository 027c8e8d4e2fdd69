package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a MySQL/MariaDB implementation of Store.
//
// Designed for collecting reports from many machines running searches
// against the same problems.
//
// Schema:
//   - search_reports: one row per run, keyed by run_id
type MySQLStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewMySQLStore connects to dsn and creates the schema if needed.
//
// The DSN (Data Source Name) format is:
//
//	[username[:password]@][protocol[(address)]]/dbname[?param1=value1&...&paramN=valueN]
//
// Security Warning:
//
//	NEVER hardcode credentials in your source code. Use environment variables:
//	    st, err := store.NewMySQLStore(os.Getenv("MYSQL_DSN"))
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	m := &MySQLStore{db: db}
	if err := m.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return m, nil
}

func (m *MySQLStore) createTables(ctx context.Context) error {
	reportsTable := `
		CREATE TABLE IF NOT EXISTS search_reports (
			run_id VARCHAR(255) NOT NULL PRIMARY KEY,
			strategy VARCHAR(32) NOT NULL,
			solved TINYINT NOT NULL,
			path LONGTEXT NOT NULL,
			end_state TEXT NOT NULL,
			generated BIGINT NOT NULL,
			expanded BIGINT NOT NULL,
			duplicates BIGINT NOT NULL,
			started_at BIGINT NOT NULL,
			elapsed_ns BIGINT NOT NULL,
			INDEX idx_reports_started (started_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
	if _, err := m.db.ExecContext(ctx, reportsTable); err != nil {
		return fmt.Errorf("failed to create search_reports table: %w", err)
	}
	return nil
}

func (m *MySQLStore) checkOpen() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// SaveReport implements Store.
func (m *MySQLStore) SaveReport(ctx context.Context, report Report) error {
	if err := m.checkOpen(); err != nil {
		return err
	}

	args, err := reportArgs(report)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO search_reports (` + reportColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			strategy = VALUES(strategy),
			solved = VALUES(solved),
			path = VALUES(path),
			end_state = VALUES(end_state),
			generated = VALUES(generated),
			expanded = VALUES(expanded),
			duplicates = VALUES(duplicates),
			started_at = VALUES(started_at),
			elapsed_ns = VALUES(elapsed_ns)
	`
	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// LoadReport implements Store.
func (m *MySQLStore) LoadReport(ctx context.Context, runID string) (Report, error) {
	if err := m.checkOpen(); err != nil {
		return Report{}, err
	}

	row := m.db.QueryRowContext(ctx, "SELECT "+reportColumns+" FROM search_reports WHERE run_id = ?", runID)
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
func (m *MySQLStore) ListReports(ctx context.Context, limit int) ([]Report, error) {
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	query := "SELECT " + reportColumns + " FROM search_reports ORDER BY started_at DESC, run_id ASC"
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
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

// Close implements Store.
func (m *MySQLStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	return m.db.Close()
}
