package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/termfixture/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Ledger string
	Limit  int
}

// HistoryResult is the output of history.
type HistoryResult struct {
	Runs []store.Run `json:"runs"`
}

func (r HistoryResult) String() string {
	if len(r.Runs) == 0 {
		return "No runs recorded"
	}
	var b strings.Builder
	for i, run := range r.Runs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "#%-4d %s  %s  %d cases  %s",
			run.Seq, run.ID, run.GeneratedAt.Format(time.RFC3339), run.Cases, run.SourceVersion)
	}
	return b.String()
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generation runs, newest first",
		Long: `List the runs recorded in a ledger by generate --ledger.

Example:
  termfixture history --ledger runs.db --limit 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts.RootOptions, cmd)
			st, err := openLedger(opts.Ledger)
			if err != nil {
				return f.Fail(ExitCommandError, "history", err)
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), opts.Limit)
			if err != nil {
				return f.Fail(ExitCommandError, "history", err)
			}
			return f.Success(HistoryResult{Runs: runs})
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "path to the SQLite run ledger (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs (0 for all)")
	_ = cmd.MarkFlagRequired("ledger")

	return cmd
}

// openLedger opens an existing ledger. Unlike store.Open it refuses to
// create a new file.
func openLedger(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("ledger not found: %w", err)
	}
	return store.Open(path)
}
