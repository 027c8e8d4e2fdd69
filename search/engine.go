package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/statesearch/search/emit"
	"github.com/dshills/statesearch/search/store"
)

// Engine runs one search strategy over a Space.
//
// The Engine owns no search state between runs: every Run seeds a new
// frontier and duplicate cache. Run is safe to call from several goroutines
// at once as long as the configured emitter, metrics and store are.
//
// Type parameters S and A are the client state and action types; they cannot
// be inferred from the Space argument and must be given explicitly.
//
// Example:
//
//	engine, err := search.New[tiles.Board, tiles.Move](space,
//	    search.WithStrategy(search.BreadthFirst),
//	    search.WithStore(reports),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := engine.Run(ctx)
type Engine[S State[S, A], A any] struct {
	space Space[S, A]
	opts  Options
}

// New validates options and returns an Engine for space.
//
// Returns a *SearchError wrapping:
//   - ErrNilSpace if space is nil
//   - ErrUnknownStrategy for an undefined Strategy
//   - ErrInvalidOption for a negative worker count
func New[S State[S, A], A any](space Space[S, A], options ...Option) (*Engine[S, A], error) {
	if space == nil {
		return nil, &SearchError{
			Message: "space is required",
			Code:    "MISSING_SPACE",
			Cause:   ErrNilSpace,
		}
	}

	cfg := &engineConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Engine[S, A]{space: space, opts: cfg.opts}, nil
}

// Options returns the engine's effective configuration, defaults filled in.
func (e *Engine[S, A]) Options() Options {
	return e.opts
}

// Run searches the space until a goal is popped or the frontier is empty.
//
// A nil result with a nil error means no solution exists in the reachable
// space. The search itself runs to completion: ctx is handed to the report
// store and does not interrupt exploration.
//
// If a store is configured and saving the report fails, Run returns the
// result together with a *SearchError wrapping ErrStore.
//
// A panic raised by the client's State or Space (an illegal action, a
// malformed state) aborts the search and propagates to the caller, including
// panics raised inside ParallelDepthFirst workers.
func (e *Engine[S, A]) Run(ctx context.Context) (*Result[S, A], error) {
	runID := e.opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	result, stats := e.search(runID)

	if e.opts.Store != nil {
		if err := e.opts.Store.SaveReport(ctx, e.report(runID, result, stats)); err != nil {
			return result, &SearchError{
				Message: "failed to save report for run " + runID + ": " + err.Error(),
				Code:    "STORE_ERROR",
				Cause:   fmt.Errorf("%w: %w", ErrStore, err),
			}
		}
	}
	return result, nil
}

// DFS runs a depth-first search over space and returns nil if no goal is
// reachable. It panics with a *SearchError if space is nil.
func DFS[S State[S, A], A any](space Space[S, A]) *Result[S, A] {
	return mustSearch(space, WithStrategy(DepthFirst))
}

// BFS runs a breadth-first search over space and returns nil if no goal is
// reachable. The returned path has the fewest actions of any solution.
// It panics with a *SearchError if space is nil.
func BFS[S State[S, A], A any](space Space[S, A]) *Result[S, A] {
	return mustSearch(space, WithStrategy(BreadthFirst))
}

// ParallelDFS runs a depth-first search whose expansions are computed by a
// pool of workers goroutines (0 selects GOMAXPROCS). It returns the same path
// as DFS. It panics with a *SearchError if space is nil or workers is negative.
func ParallelDFS[S State[S, A], A any](space Space[S, A], workers int) *Result[S, A] {
	return mustSearch(space, WithStrategy(ParallelDepthFirst), WithWorkers(workers))
}

func mustSearch[S State[S, A], A any](space Space[S, A], options ...Option) *Result[S, A] {
	e, err := New(space, options...)
	if err != nil {
		panic(err)
	}
	result, _ := e.search("")
	return result
}

// runStats holds the counters of one run, solved or not.
type runStats struct {
	startedAt  time.Time
	elapsed    time.Duration
	generated  int
	expanded   int
	duplicates int
}

// search is the single loop behind every strategy. Only the seeded frontier
// and, for ParallelDepthFirst, the expansion step differ.
func (e *Engine[S, A]) search(runID string) (*Result[S, A], runStats) {
	strategy := e.opts.Strategy
	metrics := e.opts.Metrics
	stats := runStats{startedAt: time.Now()}

	root := NewNode[S, A](e.space.InitialState())
	frontier := newFrontier(strategy, root)
	cache := NewStateCache[S]()

	var pool *expander[S, A]
	if strategy == ParallelDepthFirst {
		pool = newExpander[S, A](e.opts.Workers, metrics)
		defer pool.close()
	}

	e.emit(emit.Event{
		RunID:    runID,
		Strategy: strategy.String(),
		Msg:      emit.MsgSearchStart,
	})

	for {
		node, ok := frontier.Pop()
		if !ok {
			stats.expanded = cache.Len()
			stats.elapsed = time.Since(stats.startedAt)
			metrics.RecordSearch(strategy, false, stats.elapsed)
			e.emitFinal(runID, emit.MsgSearchExhausted, 0, stats, nil)
			return nil, stats
		}

		state := node.State()

		// The goal test precedes the duplicate check: the first node in pop
		// order that satisfies the goal wins.
		if e.space.IsGoal(state) {
			stats.expanded = cache.Len()
			stats.elapsed = time.Since(stats.startedAt)

			result := newResult(node, stats.generated, stats.expanded)
			result.RunID = runID
			result.Strategy = strategy
			result.Duplicates = stats.duplicates
			result.Elapsed = stats.elapsed

			metrics.RecordSearch(strategy, true, stats.elapsed)
			e.emitFinal(runID, emit.MsgGoalFound, node.Depth(), stats, state)
			return result, stats
		}

		if cache.Contains(state) {
			stats.duplicates++
			metrics.RecordDuplicates(strategy, 1)
			e.emit(emit.Event{
				RunID:    runID,
				Strategy: strategy.String(),
				Step:     cache.Len(),
				Depth:    node.Depth(),
				Msg:      emit.MsgDuplicateDiscarded,
			})
			continue
		}
		cache.Insert(state)

		var children int
		if pool != nil {
			children = e.expandParallel(pool, node, frontier, cache, &stats)
		} else {
			for _, a := range state.Actions() {
				frontier.Push(node.Apply(a))
				children++
			}
		}
		stats.generated += children

		metrics.RecordExpansion(strategy, children)
		metrics.UpdateFrontierDepth(frontier.Len())

		if e.opts.Emitter != nil {
			e.opts.Emitter.Emit(emit.Event{
				RunID:    runID,
				Strategy: strategy.String(),
				Step:     cache.Len(),
				Depth:    node.Depth(),
				Msg:      emit.MsgNodeExpanded,
				Meta: map[string]interface{}{
					"state":    state,
					"children": children,
					"frontier": frontier.Len(),
				},
			})
		}
	}
}

// expandParallel builds node's children on the pool, drops those whose state
// is already expanded, and pushes the rest in action order. It returns the
// number of children produced.
//
// The filter only sees states expanded before this batch: two children of the
// same parent leading to one uncached state are both pushed, and the second
// is discarded when popped.
func (e *Engine[S, A]) expandParallel(pool *expander[S, A], node *Node[S, A], frontier Frontier[S, A], cache *StateCache[S], stats *runStats) int {
	children := pool.expand(node, node.State().Actions())
	e.opts.Metrics.RecordBatch(ParallelDepthFirst, len(children))

	filtered := 0
	for _, child := range children {
		if cache.Contains(child.State()) {
			filtered++
			continue
		}
		frontier.Push(child)
	}

	stats.duplicates += filtered
	e.opts.Metrics.RecordDuplicates(ParallelDepthFirst, filtered)
	return len(children)
}

func (e *Engine[S, A]) emit(event emit.Event) {
	if e.opts.Emitter != nil {
		e.opts.Emitter.Emit(event)
	}
}

// emitFinal reports goal_found or search_exhausted with the run counters.
func (e *Engine[S, A]) emitFinal(runID, msg string, depth int, stats runStats, state interface{}) {
	if e.opts.Emitter == nil {
		return
	}
	meta := map[string]interface{}{
		"generated":  stats.generated,
		"expanded":   stats.expanded,
		"duplicates": stats.duplicates,
		"elapsed_ms": stats.elapsed.Milliseconds(),
	}
	if state != nil {
		meta["state"] = state
	}
	e.opts.Emitter.Emit(emit.Event{
		RunID:    runID,
		Strategy: e.opts.Strategy.String(),
		Step:     stats.expanded,
		Depth:    depth,
		Msg:      msg,
		Meta:     meta,
	})
}

// report converts a finished run into its persisted form.
func (e *Engine[S, A]) report(runID string, result *Result[S, A], stats runStats) store.Report {
	r := store.Report{
		RunID:      runID,
		Strategy:   e.opts.Strategy.String(),
		Generated:  stats.generated,
		Expanded:   stats.expanded,
		Duplicates: stats.duplicates,
		StartedAt:  stats.startedAt.UTC(),
		Elapsed:    stats.elapsed,
	}
	if result != nil {
		r.Solved = true
		r.EndState = fmt.Sprintf("%v", result.EndState)
		r.Path = make([]string, len(result.Path))
		for i, a := range result.Path {
			r.Path[i] = fmt.Sprintf("%v", a)
		}
	}
	return r
}
