package search

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// expander is the fixed worker pool behind ParallelDepthFirst.
//
// The pool lives for one search. The coordinator submits one batch per
// expanded node, a job per action, and blocks until every child of the batch
// is built. Children are written by index, so batch output keeps action order
// no matter which worker finishes first.
type expander[S State[S, A], A any] struct {
	jobs    chan expandJob[S, A]
	group   *errgroup.Group
	metrics *PrometheusMetrics
}

type expandJob[S State[S, A], A any] struct {
	parent *Node[S, A]
	action A
	index  int
	out    []*Node[S, A]
	batch  *batch
}

// batch tracks the outstanding jobs of one expansion and the first panic
// raised while running them.
type batch struct {
	wg sync.WaitGroup

	mu       sync.Mutex
	failed   bool
	panicVal interface{}
}

func (b *batch) fail(v interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.failed {
		b.failed = true
		b.panicVal = v
	}
}

func newExpander[S State[S, A], A any](workers int, metrics *PrometheusMetrics) *expander[S, A] {
	if workers < 1 {
		workers = 1
	}
	x := &expander[S, A]{
		jobs:    make(chan expandJob[S, A], workers),
		group:   new(errgroup.Group),
		metrics: metrics,
	}
	for i := 0; i < workers; i++ {
		x.group.Go(func() error {
			for job := range x.jobs {
				x.run(job)
			}
			return nil
		})
	}
	return x
}

func (x *expander[S, A]) run(job expandJob[S, A]) {
	defer job.batch.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			job.batch.fail(r)
		}
	}()

	x.metrics.WorkerStarted()
	defer x.metrics.WorkerFinished()

	job.out[job.index] = job.parent.Apply(job.action)
}

// expand builds the child of parent for every action and returns them in
// action order. A panic raised by State.Apply in a worker is re-raised here,
// on the coordinator goroutine, once the whole batch has settled.
func (x *expander[S, A]) expand(parent *Node[S, A], actions []A) []*Node[S, A] {
	if len(actions) == 0 {
		return nil
	}

	b := &batch{}
	out := make([]*Node[S, A], len(actions))
	b.wg.Add(len(actions))
	for i, a := range actions {
		x.jobs <- expandJob[S, A]{
			parent: parent,
			action: a,
			index:  i,
			out:    out,
			batch:  b,
		}
	}
	b.wg.Wait()

	if b.failed {
		panic(b.panicVal)
	}
	return out
}

// close stops the workers and waits for them to exit.
func (x *expander[S, A]) close() {
	close(x.jobs)
	_ = x.group.Wait()
}
