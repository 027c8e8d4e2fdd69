// Package emit provides event emission for search runs.
package emit

// Emitter receives observability events from a running search.
//
// The engine calls Emit from its coordinating goroutine only, once per
// lifecycle step (start, expansion, discarded duplicate, goal, exhaustion).
// Implementations should not block and should not panic.
type Emitter interface {
	// Emit sends an event to the configured backend.
	Emit(event Event)
}

// MultiEmitter fans every event out to a list of emitters in order.
type MultiEmitter []Emitter

// NewMultiEmitter returns an emitter that forwards to each non-nil emitter.
func NewMultiEmitter(emitters ...Emitter) MultiEmitter {
	out := make(MultiEmitter, 0, len(emitters))
	for _, e := range emitters {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Emit implements Emitter.
func (m MultiEmitter) Emit(event Event) {
	for _, e := range m {
		e.Emit(event)
	}
}
