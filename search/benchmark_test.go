package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/dshills/statesearch/search/emit"
)

// BenchmarkStrategies compares the strategies on a grid with no reachable
// goal, so every run expands all size*size cells.
func BenchmarkStrategies(b *testing.B) {
	space := gridSpace(40, -1, -1)

	b.Run("dfs", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			DFS[cell, step](space)
		}
	})
	b.Run("bfs", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			BFS[cell, step](space)
		}
	})
	for _, workers := range []int{1, 4, 8} {
		b.Run(fmt.Sprintf("pdfs-%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ParallelDFS[cell, step](space, workers)
			}
		})
	}
}

// BenchmarkEmitterOverhead measures the cost of building per-expansion events.
func BenchmarkEmitterOverhead(b *testing.B) {
	space := gridSpace(40, -1, -1)
	engine, err := New[cell, step](space, WithRunID("bench"), WithEmitter(emit.NewNullEmitter()))
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Run(context.Background()); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

// BenchmarkNodePath measures materializing a deep path.
func BenchmarkNodePath(b *testing.B) {
	n := NewNode[counter, weight](0)
	for i := 0; i < 10000; i++ {
		n = n.Apply(1)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.Path()
	}
}
