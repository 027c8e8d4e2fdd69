package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/dshills/statesearch/problems/sudoku"
	"github.com/dshills/statesearch/problems/tiles"
	"github.com/dshills/statesearch/search"
	"github.com/dshills/statesearch/search/emit"
	"github.com/dshills/statesearch/search/store"
)

// maxPrintedActions caps how much of a solution path is printed.
const maxPrintedActions = 40

// solveOptions holds options for the solve command.
type solveOptions struct {
	problemPath string
	tiles       string
	sudoku      string
	strategy    string
	workers     int
	runID       string
	events      string
	trace       bool
	dbPath      string
	mysqlDSN    string
	metrics     bool
}

func (a *App) newSolveCmd() *cobra.Command {
	opts := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Search for a solution to a puzzle",
		Long: `Solve a puzzle given inline or in a YAML problem file.

Examples:
  # Breadth-first search on an 8-puzzle
  searchctl solve --tiles 123/456/708 --strategy bfs

  # Parallel depth-first search on a sudoku file, recording the run
  searchctl solve -p puzzle.yaml --strategy pdfs --workers 8 --db reports.db

  # Log every search event as JSON and dump Prometheus metrics afterwards
  searchctl solve --tiles 123/405/786 --events json --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.solve(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.problemPath, "problem", "p", "", "Path to a YAML problem file")
	cmd.Flags().StringVar(&opts.tiles, "tiles", "", `8-puzzle board, e.g. "123/456/708"`)
	cmd.Flags().StringVar(&opts.sudoku, "sudoku", "", "Sudoku board as 81 characters, '.' for empty cells")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "Search strategy: dfs, bfs or pdfs (default dfs)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Worker goroutines for pdfs (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&opts.runID, "run-id", "", "Run ID for events and reports (default: random UUID)")
	cmd.Flags().StringVar(&opts.events, "events", "none", "Event log on stderr: none, text or json")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Print an OpenTelemetry span per search event on stderr")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "Record the run in this SQLite database")
	cmd.Flags().StringVar(&opts.mysqlDSN, "mysql", "", "Record the run in this MySQL database (DSN)")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Print Prometheus metrics after the search")

	cmd.MarkFlagsMutuallyExclusive("problem", "tiles", "sudoku")
	cmd.MarkFlagsOneRequired("problem", "tiles", "sudoku")
	cmd.MarkFlagsMutuallyExclusive("db", "mysql")

	return cmd
}

// problem returns the problem named by the flags. Flags override values from
// a problem file.
func (o *solveOptions) problem(cmd *cobra.Command) (*ProblemFile, error) {
	var p *ProblemFile
	switch {
	case o.problemPath != "":
		loaded, err := LoadProblemFile(o.problemPath)
		if err != nil {
			return nil, err
		}
		p = loaded
	case o.tiles != "":
		p = &ProblemFile{Kind: KindTiles, Board: o.tiles}
	default:
		p = &ProblemFile{Kind: KindSudoku, Board: o.sudoku}
	}

	if o.strategy != "" {
		p.Strategy = o.strategy
	}
	if cmd.Flags().Changed("workers") {
		p.Workers = o.workers
	}
	if o.runID != "" {
		p.RunID = o.runID
	}
	if p.Strategy == "" {
		p.Strategy = search.DepthFirst.String()
	}
	if p.RunID == "" {
		p.RunID = uuid.NewString()
	}
	return p, p.Validate()
}

func (a *App) solve(ctx context.Context, cmd *cobra.Command, opts *solveOptions) error {
	problem, err := opts.problem(cmd)
	if err != nil {
		return err
	}
	strategy, err := search.ParseStrategy(problem.Strategy)
	if err != nil {
		return err
	}

	st, err := openStore(opts.dbPath, opts.mysqlDSN)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	var emitters []emit.Emitter
	switch strings.ToLower(opts.events) {
	case "", "none":
	case "text":
		emitters = append(emitters, emit.NewLogEmitter(a.stderr, false))
	case "json":
		emitters = append(emitters, emit.NewLogEmitter(a.stderr, true))
	default:
		return fmt.Errorf("unknown --events mode %q (want none, text or json)", opts.events)
	}

	if opts.trace {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(a.stderr))
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		defer func() { _ = tp.Shutdown(context.WithoutCancel(ctx)) }()
		emitters = append(emitters, emit.NewOTelEmitter(tp.Tracer("searchctl")))
	}

	var registry *prometheus.Registry
	var metrics *search.PrometheusMetrics
	if opts.metrics {
		registry = prometheus.NewRegistry()
		metrics = search.NewPrometheusMetrics(registry)
	}

	engineOpts := []search.Option{
		search.WithStrategy(strategy),
		search.WithWorkers(problem.Workers),
		search.WithRunID(problem.RunID),
		search.WithStore(st),
		search.WithMetrics(metrics),
	}
	if len(emitters) > 0 {
		engineOpts = append(engineOpts, search.WithEmitter(emit.NewMultiEmitter(emitters...)))
	}

	_, _ = fmt.Fprintf(a.stdout, "Run %s: %s search on %s\n", problem.RunID, strategy, problem.Kind)

	switch problem.Kind {
	case KindTiles:
		board, err := tiles.ParseBoard(problem.Board)
		if err != nil {
			return err
		}
		if !board.Solvable() {
			_, _ = fmt.Fprintln(a.stderr, "warning: board parity is odd, the search will exhaust its reachable states")
		}
		err = runSearch[tiles.Board, tiles.Move](ctx, a.stdout, tiles.NewSpace(board), engineOpts, tiles.Board.Grid)
		if err != nil {
			return err
		}
	case KindSudoku:
		board, err := sudoku.Parse(problem.Board)
		if err != nil {
			return err
		}
		err = runSearch[sudoku.Board, sudoku.Set](ctx, a.stdout, sudoku.NewSpace(board), engineOpts, sudoku.Board.Grid)
		if err != nil {
			return err
		}
	}

	if registry != nil {
		return writeMetrics(a.stdout, registry)
	}
	return nil
}

// runSearch runs one engine over space and prints the outcome.
func runSearch[S search.State[S, A], A any](ctx context.Context, w io.Writer, space search.Space[S, A], opts []search.Option, render func(S) string) error {
	engine, err := search.New(space, opts...)
	if err != nil {
		return err
	}

	result, err := engine.Run(ctx)
	if result == nil {
		_, _ = fmt.Fprintln(w, "No solution: the reachable space was exhausted.")
		return err
	}

	_, _ = fmt.Fprintf(w, "Solved at depth %d\n", result.Depth())
	_, _ = fmt.Fprintf(w, "  Generated:  %d\n", result.Generated)
	_, _ = fmt.Fprintf(w, "  Expanded:   %d\n", result.Expanded)
	_, _ = fmt.Fprintf(w, "  Duplicates: %d\n", result.Duplicates)
	_, _ = fmt.Fprintf(w, "  Elapsed:    %s\n", result.Elapsed)
	_, _ = fmt.Fprintf(w, "  Path:       %s\n", formatPath(result.Path))
	_, _ = fmt.Fprintf(w, "\n%s", render(result.EndState))
	return err
}

func formatPath[A any](path []A) string {
	if len(path) == 0 {
		return "(empty)"
	}
	n := len(path)
	if n > maxPrintedActions {
		n = maxPrintedActions
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprint(path[i])
	}
	out := strings.Join(parts, " ")
	if len(path) > n {
		out += fmt.Sprintf(" ... (%d more)", len(path)-n)
	}
	return out
}

// openStore opens the report store selected by the flags, or returns nil
// when neither is set.
func openStore(dbPath, mysqlDSN string) (store.Store, error) {
	switch {
	case dbPath != "":
		st, err := store.NewSQLiteStore(dbPath)
		if err != nil {
			return nil, err
		}
		return st, nil
	case mysqlDSN != "":
		st, err := store.NewMySQLStore(mysqlDSN)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	return nil, nil
}

// requireStore is openStore for commands that cannot work without one.
func requireStore(dbPath, mysqlDSN string) (store.Store, error) {
	st, err := openStore(dbPath, mysqlDSN)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.New("a report store is required: set --db or --mysql")
	}
	return st, nil
}

// writeMetrics prints every gathered metric family in the Prometheus text
// exposition format.
func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	_, _ = fmt.Fprintln(w)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
