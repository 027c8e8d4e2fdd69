// Package search provides a generic state-space search engine.
//
// A client describes a problem through three types: an action type A, a state
// type S that enumerates and applies actions, and a Space that supplies the
// initial state and the goal predicate. The engine explores reachable states
// depth-first or breadth-first, carries the action path with every node, and
// never expands the same state twice.
//
// Example:
//
//	space := tiles.NewSpace(tiles.MustBoard("123/456/708"))
//	result := search.BFS[tiles.Board, tiles.Move](space)
//	if result == nil {
//	    fmt.Println("no solution")
//	    return
//	}
//	fmt.Println(result.Path, result.Generated, result.Expanded)
package search

// CostAction is an action that carries a numeric cost.
//
// Actions are otherwise opaque to the engine: any copyable value works, it is
// stored in node paths and handed back to State.Apply.
//
// The cost is summed by Node.Cost and used by PriorityFrontier. No search
// algorithm in this package consumes it yet.
type CostAction interface {
	Cost() int
}

// State is the constraint a client state type must satisfy.
//
// States are values: they must be comparable so they can key the duplicate
// cache, and Apply must return a new state rather than mutate the receiver.
// Apply is expected to panic when given an action that Actions did not offer;
// the engine treats that as a programming error and does not recover it.
//
// Type parameter S is the implementing type itself, A is its action type.
type State[S any, A any] interface {
	comparable

	// Actions lists the actions legal from this state. Order determines
	// exploration order but not correctness.
	Actions() []A

	// Apply returns the successor reached by taking action a.
	// It must be pure: equal states and actions yield equal successors.
	Apply(a A) S
}

// Space binds a problem instance to its initial state and goal predicate.
type Space[S State[S, A], A any] interface {
	// InitialState returns the root of the search.
	InitialState() S

	// IsGoal reports whether state solves the problem. It must be a pure
	// predicate, stable across calls on equal states.
	IsGoal(state S) bool
}

// SpaceFunc adapts a pair of functions to the Space interface.
//
// Example:
//
//	space := search.SpaceFunc[Cell, Step]{
//	    Initial: func() Cell { return Cell{0, 0} },
//	    Goal:    func(c Cell) bool { return c == (Cell{3, 3}) },
//	}
type SpaceFunc[S State[S, A], A any] struct {
	Initial func() S
	Goal    func(state S) bool
}

// InitialState implements Space.
func (f SpaceFunc[S, A]) InitialState() S {
	return f.Initial()
}

// IsGoal implements Space.
func (f SpaceFunc[S, A]) IsGoal(state S) bool {
	return f.Goal(state)
}

// Replay applies path to initial in order and returns the final state.
// It panics if any action is illegal at the point it is applied.
func Replay[S State[S, A], A any](initial S, path []A) S {
	state := initial
	for _, a := range path {
		state = state.Apply(a)
	}
	return state
}
