package store

import (
	"context"
	"sort"
	"sync"
)

// MemStore is an in-memory implementation of Store.
//
// Reports are lost when the process exits. MemStore is safe for concurrent use.
type MemStore struct {
	mu      sync.RWMutex
	reports map[string]Report
	closed  bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{reports: make(map[string]Report)}
}

// SaveReport implements Store.
func (m *MemStore) SaveReport(_ context.Context, report Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	report.Path = append([]string(nil), report.Path...)
	m.reports[report.RunID] = report
	return nil
}

// LoadReport implements Store.
func (m *MemStore) LoadReport(_ context.Context, runID string) (Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Report{}, ErrClosed
	}
	r, ok := m.reports[runID]
	if !ok {
		return Report{}, ErrNotFound
	}
	return r, nil
}

// ListReports implements Store.
func (m *MemStore) ListReports(_ context.Context, limit int) ([]Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	out := make([]Report, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].RunID < out[j].RunID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close implements Store. Further calls return ErrClosed.
func (m *MemStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
