package search

import (
	"container/heap"
	"iter"
)

// Frontier orders the nodes waiting to be expanded.
//
// The engine loop is written once against this interface; the strategy only
// decides which implementation is seeded. A Frontier is owned by a single
// search and is not safe for concurrent use.
type Frontier[S State[S, A], A any] interface {
	// Push adds a node.
	Push(node *Node[S, A])

	// Pop removes and returns the next node to process.
	// It returns false when the frontier is empty.
	Pop() (*Node[S, A], bool)

	// Len returns the number of nodes waiting.
	Len() int
}

// Drain returns an iterator that pops f until it is empty.
//
// Example:
//
//	for node := range search.Drain(frontier) {
//	    fmt.Println(node.Depth())
//	}
func Drain[S State[S, A], A any](f Frontier[S, A]) iter.Seq[*Node[S, A]] {
	return func(yield func(*Node[S, A]) bool) {
		for {
			node, ok := f.Pop()
			if !ok || !yield(node) {
				return
			}
		}
	}
}

// StackFrontier pops the most recently pushed node (LIFO).
// Seeding the engine with it produces depth-first order.
type StackFrontier[S State[S, A], A any] struct {
	items []*Node[S, A]
}

// NewStackFrontier returns a stack holding only root.
func NewStackFrontier[S State[S, A], A any](root *Node[S, A]) *StackFrontier[S, A] {
	return &StackFrontier[S, A]{items: []*Node[S, A]{root}}
}

// Push implements Frontier.
func (f *StackFrontier[S, A]) Push(node *Node[S, A]) {
	f.items = append(f.items, node)
}

// Pop implements Frontier.
func (f *StackFrontier[S, A]) Pop() (*Node[S, A], bool) {
	n := len(f.items)
	if n == 0 {
		return nil, false
	}
	node := f.items[n-1]
	f.items[n-1] = nil
	f.items = f.items[:n-1]
	return node, true
}

// Len implements Frontier.
func (f *StackFrontier[S, A]) Len() int {
	return len(f.items)
}

// QueueFrontier pops the earliest pushed node still present (FIFO).
// Seeding the engine with it produces breadth-first order: every node at
// depth d is popped before any node at depth d+1.
type QueueFrontier[S State[S, A], A any] struct {
	items []*Node[S, A]
	head  int
}

// NewQueueFrontier returns a queue holding only root.
func NewQueueFrontier[S State[S, A], A any](root *Node[S, A]) *QueueFrontier[S, A] {
	return &QueueFrontier[S, A]{items: []*Node[S, A]{root}}
}

// Push implements Frontier.
func (f *QueueFrontier[S, A]) Push(node *Node[S, A]) {
	f.items = append(f.items, node)
}

// Pop implements Frontier.
func (f *QueueFrontier[S, A]) Pop() (*Node[S, A], bool) {
	if f.head == len(f.items) {
		return nil, false
	}
	node := f.items[f.head]
	f.items[f.head] = nil
	f.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head > 64 && f.head*2 > len(f.items) {
		n := copy(f.items, f.items[f.head:])
		clear(f.items[n:])
		f.items = f.items[:n]
		f.head = 0
	}
	return node, true
}

// Len implements Frontier.
func (f *QueueFrontier[S, A]) Len() int {
	return len(f.items) - f.head
}

// PriorityFrontier pops the node that sorts first under its ordering
// function, breaking ties by insertion order.
//
// It is the extension point for cost-aware search; no strategy in this
// package seeds it. ByCost is the natural ordering for actions implementing
// CostAction.
type PriorityFrontier[S State[S, A], A any] struct {
	heap nodeHeap[S, A]
	seq  uint64
}

// NewPriorityFrontier returns a priority frontier holding only root.
// less reports whether a should be popped before b.
func NewPriorityFrontier[S State[S, A], A any](root *Node[S, A], less func(a, b *Node[S, A]) bool) *PriorityFrontier[S, A] {
	f := &PriorityFrontier[S, A]{heap: nodeHeap[S, A]{less: less}}
	f.Push(root)
	return f
}

// ByCost orders nodes by ascending Node.Cost.
func ByCost[S State[S, A], A any](a, b *Node[S, A]) bool {
	return a.Cost() < b.Cost()
}

// Push implements Frontier.
func (f *PriorityFrontier[S, A]) Push(node *Node[S, A]) {
	heap.Push(&f.heap, prioritized[S, A]{node: node, seq: f.seq})
	f.seq++
}

// Pop implements Frontier.
func (f *PriorityFrontier[S, A]) Pop() (*Node[S, A], bool) {
	if f.heap.Len() == 0 {
		return nil, false
	}
	item := heap.Pop(&f.heap).(prioritized[S, A])
	return item.node, true
}

// Len implements Frontier.
func (f *PriorityFrontier[S, A]) Len() int {
	return f.heap.Len()
}

type prioritized[S State[S, A], A any] struct {
	node *Node[S, A]
	seq  uint64
}

// nodeHeap implements heap.Interface for PriorityFrontier.
type nodeHeap[S State[S, A], A any] struct {
	items []prioritized[S, A]
	less  func(a, b *Node[S, A]) bool
}

func (h nodeHeap[S, A]) Len() int { return len(h.items) }

func (h nodeHeap[S, A]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if h.less(a.node, b.node) {
		return true
	}
	if h.less(b.node, a.node) {
		return false
	}
	return a.seq < b.seq
}

func (h nodeHeap[S, A]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *nodeHeap[S, A]) Push(x interface{}) {
	h.items = append(h.items, x.(prioritized[S, A]))
}

func (h *nodeHeap[S, A]) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	old[n-1] = prioritized[S, A]{}
	h.items = old[:n-1]
	return item
}
