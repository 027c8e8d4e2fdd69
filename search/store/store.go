// Package store persists reports of finished searches.
//
// Only the outcome of a search is stored: its counters, timing and a printable
// rendering of the path and end state. Frontier and duplicate-cache contents
// are never persisted.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested run ID does not exist.
var ErrNotFound = errors.New("not found")

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Store persists search reports.
//
// Implementations:
//   - MemStore: in-process maps, for tests and one-shot tools
//   - SQLiteStore: single-file database (modernc.org/sqlite, no cgo)
//   - MySQLStore: shared MySQL/MariaDB database
type Store interface {
	// SaveReport inserts report, replacing any report with the same RunID.
	SaveReport(ctx context.Context, report Report) error

	// LoadReport returns the report for runID, or ErrNotFound.
	LoadReport(ctx context.Context, runID string) (Report, error)

	// ListReports returns up to limit reports, most recently started first.
	// A limit <= 0 returns every report.
	ListReports(ctx context.Context, limit int) ([]Report, error)

	// Close releases the store's resources.
	Close() error
}

// Report is the persisted summary of one search run.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`

	// Strategy is the short strategy name ("dfs", "bfs", "pdfs").
	Strategy string `json:"strategy"`

	// Solved is false when the frontier was exhausted.
	Solved bool `json:"solved"`

	// Path holds each action rendered with %v. Nil when unsolved.
	Path []string `json:"path,omitempty"`

	// EndState is the goal state rendered with %v. Empty when unsolved.
	EndState string `json:"end_state,omitempty"`

	// Generated, Expanded and Duplicates are the search counters at the end of the run.
	Generated  int `json:"generated"`
	Expanded   int `json:"expanded"`
	Duplicates int `json:"duplicates"`

	// StartedAt is when the search began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the search wall-clock duration.
	Elapsed time.Duration `json:"elapsed"`
}

// PathLen returns the number of actions in the solution path.
func (r Report) PathLen() int {
	return len(r.Path)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReport reads the columns selected by reportColumns.
func scanReport(row rowScanner) (Report, error) {
	var (
		r         Report
		solved    int
		pathJSON  string
		startedAt int64
		elapsed   int64
	)
	if err := row.Scan(&r.RunID, &r.Strategy, &solved, &pathJSON, &r.EndState,
		&r.Generated, &r.Expanded, &r.Duplicates, &startedAt, &elapsed); err != nil {
		return Report{}, err
	}
	r.Solved = solved != 0
	if err := json.Unmarshal([]byte(pathJSON), &r.Path); err != nil {
		return Report{}, fmt.Errorf("failed to unmarshal path: %w", err)
	}
	r.StartedAt = time.Unix(0, startedAt).UTC()
	r.Elapsed = time.Duration(elapsed)
	return r, nil
}

const reportColumns = "run_id, strategy, solved, path, end_state, generated, expanded, duplicates, started_at, elapsed_ns"

// reportArgs returns the values for reportColumns, in order.
func reportArgs(r Report) ([]interface{}, error) {
	path := r.Path
	if path == nil {
		path = []string{}
	}
	pathJSON, err := json.Marshal(path)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal path: %w", err)
	}
	solved := 0
	if r.Solved {
		solved = 1
	}
	return []interface{}{
		r.RunID, r.Strategy, solved, string(pathJSON), r.EndState,
		r.Generated, r.Expanded, r.Duplicates, r.StartedAt.UnixNano(), int64(r.Elapsed),
	}, nil
}
