package search

import (
	"fmt"
	"time"
)

// Result is the outcome of a successful search.
//
// A search that exhausts its frontier returns a nil *Result; there is no
// failed Result value.
type Result[S State[S, A], A any] struct {
	// RunID identifies the search run. Empty for the package-level entry points.
	RunID string

	// Strategy is the frontier ordering that produced the result.
	Strategy Strategy

	// EndState is the state that satisfied the goal predicate.
	EndState S

	// Path is the ordered sequence of actions from the initial state to EndState.
	Path []A

	// Generated counts every child node produced, duplicates included.
	Generated int

	// Expanded is the number of distinct states expanded when the goal was found.
	Expanded int

	// Duplicates counts nodes discarded because their state was already expanded.
	// For ParallelDepthFirst it includes children filtered out before being pushed.
	Duplicates int

	// Elapsed is the wall-clock duration of the search.
	Elapsed time.Duration
}

// ResultFromNode builds a Result for node with zero counters.
func ResultFromNode[S State[S, A], A any](node *Node[S, A]) *Result[S, A] {
	return newResult(node, 0, 0)
}

func newResult[S State[S, A], A any](node *Node[S, A], generated, expanded int) *Result[S, A] {
	return &Result[S, A]{
		EndState:  node.State(),
		Path:      node.Path(),
		Generated: generated,
		Expanded:  expanded,
	}
}

// Depth returns the number of actions in the solution path.
func (r *Result[S, A]) Depth() int {
	return len(r.Path)
}

// Verify replays Path from initial and checks that it reproduces EndState.
func (r *Result[S, A]) Verify(initial S) error {
	if got := Replay(initial, r.Path); got != r.EndState {
		return &SearchError{
			Message: fmt.Sprintf("replayed path of length %d does not reach the reported end state", len(r.Path)),
			Code:    "REPLAY_MISMATCH",
			Cause:   ErrReplayMismatch,
		}
	}
	return nil
}

// String summarizes the counters, e.g. "bfs: depth=1 generated=3 expanded=1".
func (r *Result[S, A]) String() string {
	return fmt.Sprintf("%s: depth=%d generated=%d expanded=%d", r.Strategy, len(r.Path), r.Generated, r.Expanded)
}
