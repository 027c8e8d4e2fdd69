package emit

import "sync"

// BufferedEmitter implements Emitter by storing events in memory, grouped by
// run ID.
//
// Warning: a search emits one event per expansion, so history grows with the
// size of the explored space. Use it for tests, debugging and small problems.
//
// Example usage:
//
//	emitter := emit.NewBufferedEmitter()
//	engine, _ := search.New(space, search.WithEmitter(emitter), search.WithRunID("run-001"))
//	engine.Run(ctx)
//
//	expansions := emitter.GetHistoryWithFilter("run-001", emit.HistoryFilter{Msg: emit.MsgNodeExpanded})
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event // runID -> events
}

// HistoryFilter specifies criteria for filtering execution history.
//
// All fields are optional; set fields are combined with AND logic.
type HistoryFilter struct {
	Msg      string // Filter by message (empty = no filter)
	MinDepth *int   // Minimum node depth (nil = no filter)
	MaxDepth *int   // Maximum node depth (nil = no filter)
}

// NewBufferedEmitter creates an empty BufferedEmitter.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{
		events: make(map[string][]Event),
	}
}

// Emit stores the event under its run ID.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events[event.RunID] = append(b.events[event.RunID], event)
}

// GetHistory returns a copy of all events for runID in emission order.
// Returns an empty slice if no events exist for runID.
func (b *BufferedEmitter) GetHistory(runID string) []Event {
	return b.GetHistoryWithFilter(runID, HistoryFilter{})
}

// GetHistoryWithFilter returns a copy of the events for runID matching filter.
// Returns an empty slice if nothing matches.
func (b *BufferedEmitter) GetHistoryWithFilter(runID string, filter HistoryFilter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := []Event{}
	for _, event := range b.events[runID] {
		if matchesFilter(event, filter) {
			result = append(result, event)
		}
	}
	return result
}

// RunIDs returns the run IDs with stored events, in no particular order.
func (b *BufferedEmitter) RunIDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := make([]string, 0, len(b.events))
	for id := range b.events {
		ids = append(ids, id)
	}
	return ids
}

func matchesFilter(event Event, filter HistoryFilter) bool {
	if filter.Msg != "" && event.Msg != filter.Msg {
		return false
	}
	if filter.MinDepth != nil && event.Depth < *filter.MinDepth {
		return false
	}
	if filter.MaxDepth != nil && event.Depth > *filter.MaxDepth {
		return false
	}
	return true
}

// Clear removes stored events for runID, or for all runs if runID is empty.
func (b *BufferedEmitter) Clear(runID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if runID == "" {
		b.events = make(map[string][]Event)
	} else {
		delete(b.events, runID)
	}
}
