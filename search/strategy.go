package search

import "strings"

// Strategy selects the frontier ordering and the expansion mode.
type Strategy int

const (
	// DepthFirst seeds a StackFrontier. Exploration follows the most recently
	// generated child; the first goal found need not be the shallowest.
	DepthFirst Strategy = iota

	// BreadthFirst seeds a QueueFrontier. The first goal found is reached by a
	// path with the fewest actions.
	BreadthFirst

	// ParallelDepthFirst is DepthFirst with child production fanned out to a
	// fixed worker pool. It reports the same path as DepthFirst.
	ParallelDepthFirst
)

// String returns the short name used in flags, metrics labels and reports.
func (s Strategy) String() string {
	switch s {
	case DepthFirst:
		return "dfs"
	case BreadthFirst:
		return "bfs"
	case ParallelDepthFirst:
		return "pdfs"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a name such as "dfs", "bfs" or "pdfs" to a Strategy.
// Long forms ("depth-first", "breadth-first", "parallel-dfs") are accepted.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dfs", "depth-first", "depthfirst":
		return DepthFirst, nil
	case "bfs", "breadth-first", "breadthfirst":
		return BreadthFirst, nil
	case "pdfs", "parallel-dfs", "parallel":
		return ParallelDepthFirst, nil
	}
	return 0, &SearchError{
		Message: "unknown strategy name: " + name,
		Code:    "UNKNOWN_STRATEGY",
		Cause:   ErrUnknownStrategy,
	}
}

func (s Strategy) valid() bool {
	return s >= DepthFirst && s <= ParallelDepthFirst
}

// newFrontier seeds the frontier that implements s.
func newFrontier[S State[S, A], A any](s Strategy, root *Node[S, A]) Frontier[S, A] {
	if s == BreadthFirst {
		return NewQueueFrontier(root)
	}
	return NewStackFrontier(root)
}
