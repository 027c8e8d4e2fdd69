package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/statesearch/search/store"
)

// reportsOptions holds options shared by the reports subcommands.
type reportsOptions struct {
	dbPath     string
	mysqlDSN   string
	limit      int
	jsonOutput bool
}

func (a *App) newReportsCmd() *cobra.Command {
	opts := &reportsOptions{}

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Inspect recorded search runs",
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database holding the reports")
	cmd.PersistentFlags().StringVar(&opts.mysqlDSN, "mysql", "", "MySQL DSN of the database holding the reports")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	cmd.MarkFlagsMutuallyExclusive("db", "mysql")

	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(opts.dbPath, opts.mysqlDSN)
			if err != nil {
				return err
			}
			defer st.Close()

			reports, err := st.ListReports(cmd.Context(), opts.limit)
			if err != nil {
				return fmt.Errorf("failed to list reports: %w", err)
			}
			if opts.jsonOutput {
				return a.writeJSON(reports)
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "RUN ID\tSTRATEGY\tSOLVED\tDEPTH\tGENERATED\tEXPANDED\tELAPSED\tSTARTED")
			for _, r := range reports {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%d\t%d\t%s\t%s\n",
					r.RunID, r.Strategy, r.Solved, r.PathLen(), r.Generated, r.Expanded,
					r.Elapsed.Round(time.Microsecond), r.StartedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
	list.Flags().IntVarP(&opts.limit, "limit", "n", 20, "Maximum number of runs to list (0 = all)")

	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(opts.dbPath, opts.mysqlDSN)
			if err != nil {
				return err
			}
			defer st.Close()

			r, err := st.LoadReport(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no report for run %s", args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to load report: %w", err)
			}
			if opts.jsonOutput {
				return a.writeJSON(r)
			}

			_, _ = fmt.Fprintf(a.stdout, "Run:        %s\n", r.RunID)
			_, _ = fmt.Fprintf(a.stdout, "Strategy:   %s\n", r.Strategy)
			_, _ = fmt.Fprintf(a.stdout, "Solved:     %t\n", r.Solved)
			_, _ = fmt.Fprintf(a.stdout, "Started:    %s\n", r.StartedAt.Format(time.RFC3339Nano))
			_, _ = fmt.Fprintf(a.stdout, "Elapsed:    %s\n", r.Elapsed)
			_, _ = fmt.Fprintf(a.stdout, "Generated:  %d\n", r.Generated)
			_, _ = fmt.Fprintf(a.stdout, "Expanded:   %d\n", r.Expanded)
			_, _ = fmt.Fprintf(a.stdout, "Duplicates: %d\n", r.Duplicates)
			if r.Solved {
				_, _ = fmt.Fprintf(a.stdout, "Depth:      %d\n", r.PathLen())
				_, _ = fmt.Fprintf(a.stdout, "Path:       %s\n", formatPath(r.Path))
				_, _ = fmt.Fprintf(a.stdout, "End state:  %s\n", r.EndState)
			}
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func (a *App) writeJSON(v interface{}) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
