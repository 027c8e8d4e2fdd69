package search

// Node wraps a state together with the actions taken from the initial state
// to reach it.
//
// Nodes are immutable. Apply builds a child that points back at its parent, so
// extending a path is O(1) and siblings share their common prefix. Path
// materializes the chain in chronological order on demand.
//
// Type parameters S and A are the client state and action types.
type Node[S State[S, A], A any] struct {
	state  S
	parent *Node[S, A]
	action A
	depth  int
}

// NewNode returns the root node for state. Its path is empty.
func NewNode[S State[S, A], A any](state S) *Node[S, A] {
	return &Node[S, A]{state: state}
}

// Apply returns the child reached by taking action a from n.
// The child's path is n's path followed by a; n is not modified.
// A panic from the client's State.Apply propagates unchanged.
func (n *Node[S, A]) Apply(a A) *Node[S, A] {
	return &Node[S, A]{
		state:  n.state.Apply(a),
		parent: n,
		action: a,
		depth:  n.depth + 1,
	}
}

// State returns the wrapped state.
func (n *Node[S, A]) State() S {
	return n.state
}

// Depth returns the number of actions between the root and n.
func (n *Node[S, A]) Depth() int {
	return n.depth
}

// Parent returns the node n was applied from, or nil for the root.
func (n *Node[S, A]) Parent() *Node[S, A] {
	return n.parent
}

// Path returns a fresh slice of the actions from the root to n.
func (n *Node[S, A]) Path() []A {
	path := make([]A, n.depth)
	for cur := n; cur.parent != nil; cur = cur.parent {
		path[cur.depth-1] = cur.action
	}
	return path
}

// Cost sums the cost of every action on the path that implements CostAction.
// Actions without a cost contribute zero.
func (n *Node[S, A]) Cost() int {
	total := 0
	for cur := n; cur.parent != nil; cur = cur.parent {
		if c, ok := any(cur.action).(CostAction); ok {
			total += c.Cost()
		}
	}
	return total
}
