package search

import (
	"fmt"
	"runtime"

	"github.com/dshills/statesearch/search/emit"
	"github.com/dshills/statesearch/search/store"
)

// Options configures an Engine.
//
// Zero values are valid: depth-first order, GOMAXPROCS workers for
// ParallelDepthFirst, a fresh UUID run ID per Run, and no emitter, metrics or
// store.
type Options struct {
	// Strategy selects the frontier ordering.
	Strategy Strategy

	// Workers is the pool size for ParallelDepthFirst. Ignored otherwise.
	// If 0, runtime.GOMAXPROCS(0) is used.
	Workers int

	// RunID labels events and the stored report. If empty, every Run draws a
	// new UUID.
	RunID string

	// Emitter receives lifecycle events. Optional.
	Emitter emit.Emitter

	// Metrics records Prometheus metrics. Optional.
	Metrics *PrometheusMetrics

	// Store receives a report after every Run. Optional.
	Store store.Store
}

// Option is a functional option for configuring an Engine.
//
// Example:
//
//	engine, err := search.New[tiles.Board, tiles.Move](space,
//	    search.WithStrategy(search.ParallelDepthFirst),
//	    search.WithWorkers(8),
//	    search.WithEmitter(emit.NewLogEmitter(os.Stderr, true)),
//	)
type Option func(*engineConfig) error

// engineConfig collects options before they are validated and copied into
// an Engine.
type engineConfig struct {
	opts Options
}

// WithOptions replaces the whole configuration. Options given after it still
// apply on top.
func WithOptions(opts Options) Option {
	return func(cfg *engineConfig) error {
		cfg.opts = opts
		return nil
	}
}

// WithStrategy selects DepthFirst, BreadthFirst or ParallelDepthFirst.
func WithStrategy(s Strategy) Option {
	return func(cfg *engineConfig) error {
		if !s.valid() {
			return &SearchError{
				Message: fmt.Sprintf("strategy %d is not defined", int(s)),
				Code:    "UNKNOWN_STRATEGY",
				Cause:   ErrUnknownStrategy,
			}
		}
		cfg.opts.Strategy = s
		return nil
	}
}

// WithWorkers sets the ParallelDepthFirst pool size.
//
//	n > 0: exactly n workers
//	n == 0: runtime.GOMAXPROCS(0)
//	n < 0: invalid option -> ErrInvalidOption
func WithWorkers(n int) Option {
	return func(cfg *engineConfig) error {
		if n < 0 {
			return &SearchError{
				Message: fmt.Sprintf("workers cannot be negative (%d)", n),
				Code:    "INVALID_WORKERS",
				Cause:   ErrInvalidOption,
			}
		}
		cfg.opts.Workers = n
		return nil
	}
}

// WithRunID fixes the run ID used for events and reports.
func WithRunID(id string) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.RunID = id
		return nil
	}
}

// WithEmitter sets the event emitter.
func WithEmitter(e emit.Emitter) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.Emitter = e
		return nil
	}
}

// WithMetrics enables Prometheus metrics collection.
//
// Example:
//
//	registry := prometheus.NewRegistry()
//	engine, err := search.New(space, search.WithMetrics(search.NewPrometheusMetrics(registry)))
func WithMetrics(m *PrometheusMetrics) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.Metrics = m
		return nil
	}
}

// WithStore records a report of every Run in st.
func WithStore(st store.Store) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.Store = st
		return nil
	}
}

// validate fills defaults and rejects values an Option could not catch
// because they arrived through WithOptions.
func (cfg *engineConfig) validate() error {
	if !cfg.opts.Strategy.valid() {
		return &SearchError{
			Message: fmt.Sprintf("strategy %d is not defined", int(cfg.opts.Strategy)),
			Code:    "UNKNOWN_STRATEGY",
			Cause:   ErrUnknownStrategy,
		}
	}
	if cfg.opts.Workers < 0 {
		return &SearchError{
			Message: fmt.Sprintf("workers cannot be negative (%d)", cfg.opts.Workers),
			Code:    "INVALID_WORKERS",
			Cause:   ErrInvalidOption,
		}
	}
	if cfg.opts.Workers == 0 {
		cfg.opts.Workers = runtime.GOMAXPROCS(0)
	}
	return nil
}
