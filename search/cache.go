package search

// StateCache records the states a search has expanded.
//
// Only expanded states belong here, not states merely sitting in the
// frontier: the same state may be pushed many times along different paths and
// is discarded when popped after it has been expanded once. The cache never
// evicts and lives for one search call.
type StateCache[S comparable] struct {
	seen map[S]struct{}
}

// NewStateCache returns an empty cache.
func NewStateCache[S comparable]() *StateCache[S] {
	return &StateCache[S]{seen: make(map[S]struct{})}
}

// Contains reports whether state has been expanded.
func (c *StateCache[S]) Contains(state S) bool {
	_, ok := c.seen[state]
	return ok
}

// Insert marks state as expanded. Inserting a present state is a no-op.
func (c *StateCache[S]) Insert(state S) {
	c.seen[state] = struct{}{}
}

// Len returns the number of distinct expanded states.
func (c *StateCache[S]) Len() int {
	return len(c.seen)
}
