package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/statesearch/search/store"
)

// TestStoreContract runs the same behavioral checks against every Store
// implementation. MySQL joins only when TEST_MYSQL_DSN is set.
func TestStoreContract(t *testing.T) {
	backends := map[string]func(t *testing.T) store.Store{
		"memory": func(t *testing.T) store.Store {
			return store.NewMemStore()
		},
		"sqlite-memory": func(t *testing.T) store.Store {
			st, err := store.NewSQLiteStore(":memory:")
			if err != nil {
				t.Fatalf("NewSQLiteStore failed: %v", err)
			}
			return st
		},
		"sqlite-file": func(t *testing.T) store.Store {
			st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "reports.db"))
			if err != nil {
				t.Fatalf("NewSQLiteStore failed: %v", err)
			}
			return st
		},
	}
	if dsn := os.Getenv("TEST_MYSQL_DSN"); dsn != "" {
		backends["mysql"] = func(t *testing.T) store.Store {
			st, err := store.NewMySQLStore(dsn)
			if err != nil {
				t.Fatalf("NewMySQLStore failed: %v", err)
			}
			return st
		}
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			testStoreContract(t, newStore)
		})
	}
}

func testStoreContract(t *testing.T, newStore func(t *testing.T) store.Store) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("150405.000000") + "-"
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	solved := store.Report{
		RunID:      prefix + "solved",
		Strategy:   "bfs",
		Solved:     true,
		Path:       []string{"Right"},
		EndState:   "123/456/780",
		Generated:  3,
		Expanded:   1,
		Duplicates: 0,
		StartedAt:  base.Add(2 * time.Second),
		Elapsed:    1500 * time.Microsecond,
	}
	unsolved := store.Report{
		RunID:      prefix + "unsolved",
		Strategy:   "dfs",
		Generated:  40,
		Expanded:   21,
		Duplicates: 19,
		StartedAt:  base.Add(1 * time.Second),
		Elapsed:    3 * time.Millisecond,
	}

	t.Run("save and load round trip", func(t *testing.T) {
		st := newStore(t)
		defer st.Close()

		if err := st.SaveReport(ctx, solved); err != nil {
			t.Fatalf("SaveReport failed: %v", err)
		}

		got, err := st.LoadReport(ctx, solved.RunID)
		if err != nil {
			t.Fatalf("LoadReport failed: %v", err)
		}
		if got.RunID != solved.RunID || got.Strategy != solved.Strategy || !got.Solved {
			t.Errorf("LoadReport = %+v, want %+v", got, solved)
		}
		if got.PathLen() != 1 || got.Path[0] != "Right" {
			t.Errorf("Path = %v, want [Right]", got.Path)
		}
		if got.EndState != solved.EndState {
			t.Errorf("EndState = %q, want %q", got.EndState, solved.EndState)
		}
		if got.Generated != 3 || got.Expanded != 1 || got.Duplicates != 0 {
			t.Errorf("counters = %d/%d/%d, want 3/1/0", got.Generated, got.Expanded, got.Duplicates)
		}
		if !got.StartedAt.Equal(solved.StartedAt) {
			t.Errorf("StartedAt = %v, want %v", got.StartedAt, solved.StartedAt)
		}
		if got.Elapsed != solved.Elapsed {
			t.Errorf("Elapsed = %v, want %v", got.Elapsed, solved.Elapsed)
		}
	})

	t.Run("unsolved report has no path", func(t *testing.T) {
		st := newStore(t)
		defer st.Close()

		if err := st.SaveReport(ctx, unsolved); err != nil {
			t.Fatalf("SaveReport failed: %v", err)
		}
		got, err := st.LoadReport(ctx, unsolved.RunID)
		if err != nil {
			t.Fatalf("LoadReport failed: %v", err)
		}
		if got.Solved {
			t.Error("Solved = true, want false")
		}
		if got.PathLen() != 0 {
			t.Errorf("PathLen() = %d, want 0", got.PathLen())
		}
	})

	t.Run("missing run returns ErrNotFound", func(t *testing.T) {
		st := newStore(t)
		defer st.Close()

		_, err := st.LoadReport(ctx, prefix+"missing")
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("LoadReport error = %v, want ErrNotFound", err)
		}
	})

	t.Run("save replaces existing run", func(t *testing.T) {
		st := newStore(t)
		defer st.Close()

		if err := st.SaveReport(ctx, unsolved); err != nil {
			t.Fatalf("SaveReport failed: %v", err)
		}
		updated := unsolved
		updated.Generated = 99
		if err := st.SaveReport(ctx, updated); err != nil {
			t.Fatalf("second SaveReport failed: %v", err)
		}

		got, err := st.LoadReport(ctx, unsolved.RunID)
		if err != nil {
			t.Fatalf("LoadReport failed: %v", err)
		}
		if got.Generated != 99 {
			t.Errorf("Generated = %d, want 99", got.Generated)
		}
	})

	t.Run("list is newest first and honors limit", func(t *testing.T) {
		st := newStore(t)
		defer st.Close()

		older := unsolved
		older.RunID = prefix + "older"
		older.StartedAt = base
		for _, r := range []store.Report{older, solved, unsolved} {
			if err := st.SaveReport(ctx, r); err != nil {
				t.Fatalf("SaveReport(%s) failed: %v", r.RunID, err)
			}
		}

		all, err := st.ListReports(ctx, 0)
		if err != nil {
			t.Fatalf("ListReports failed: %v", err)
		}
		var ours []string
		for _, r := range all {
			if r.RunID == older.RunID || r.RunID == solved.RunID || r.RunID == unsolved.RunID {
				ours = append(ours, r.RunID)
			}
		}
		want := []string{solved.RunID, unsolved.RunID, older.RunID}
		if len(ours) != len(want) {
			t.Fatalf("ListReports returned %d of our reports, want %d", len(ours), len(want))
		}
		for i := range want {
			if ours[i] != want[i] {
				t.Errorf("ListReports[%d] = %s, want %s", i, ours[i], want[i])
			}
		}

		limited, err := st.ListReports(ctx, 2)
		if err != nil {
			t.Fatalf("ListReports(2) failed: %v", err)
		}
		if len(limited) != 2 {
			t.Errorf("len(ListReports(2)) = %d, want 2", len(limited))
		}
	})

	t.Run("closed store rejects operations", func(t *testing.T) {
		st := newStore(t)
		if err := st.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		if err := st.SaveReport(ctx, solved); !errors.Is(err, store.ErrClosed) {
			t.Errorf("SaveReport after Close = %v, want ErrClosed", err)
		}
		if _, err := st.LoadReport(ctx, solved.RunID); !errors.Is(err, store.ErrClosed) {
			t.Errorf("LoadReport after Close = %v, want ErrClosed", err)
		}
		if _, err := st.ListReports(ctx, 0); !errors.Is(err, store.ErrClosed) {
			t.Errorf("ListReports after Close = %v, want ErrClosed", err)
		}
	})
}
