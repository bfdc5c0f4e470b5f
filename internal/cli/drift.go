package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/termfixture/internal/store"
)

// DriftOptions holds flags for the drift command.
type DriftOptions struct {
	*RootOptions
	Ledger string
}

// DriftResult is the output of drift.
type DriftResult struct {
	From    string        `json:"from"`
	To      string        `json:"to"`
	Changes []store.Drift `json:"changes"`
}

func (r DriftResult) String() string {
	if len(r.Changes) == 0 {
		return fmt.Sprintf("\u2713 No drift between %s and %s", r.From, r.To)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\u2717 %d scenario(s) drifted between %s and %s:", len(r.Changes), r.From, r.To)
	for _, d := range r.Changes {
		fmt.Fprintf(&b, "\n  %-8s %s", d.Change, d.ScenarioID)
	}
	return b.String()
}

// NewDriftCommand creates the drift command.
func NewDriftCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DriftOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "drift [from-run] [to-run]",
		Short: "Show scenarios whose inputs or output changed between runs",
		Long: `Compare the per-case digests of two recorded runs. Without arguments the
two most recent runs are compared. Run ids may be abbreviated to a unique
prefix. Exits 1 if any scenario drifted.

Example:
  termfixture drift --ledger runs.db
  termfixture drift --ledger runs.db 0192f3 0192f4`,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts.RootOptions, cmd)
			if len(args) == 1 {
				return f.Fail(ExitCommandError, "drift", errors.New("give both run ids or neither"))
			}

			st, err := openLedger(opts.Ledger)
			if err != nil {
				return f.Fail(ExitCommandError, "drift", err)
			}
			defer st.Close()

			ctx := cmd.Context()
			var from, to store.Run
			if len(args) == 2 {
				if from, err = st.GetRun(ctx, args[0]); err != nil {
					return f.Fail(ExitCommandError, "drift", err)
				}
				if to, err = st.GetRun(ctx, args[1]); err != nil {
					return f.Fail(ExitCommandError, "drift", err)
				}
			} else {
				runs, err := st.ListRuns(ctx, 2)
				if err != nil {
					return f.Fail(ExitCommandError, "drift", err)
				}
				if len(runs) < 2 {
					return f.Fail(ExitCommandError, "drift", fmt.Errorf("need two recorded runs, have %d", len(runs)))
				}
				from, to = runs[1], runs[0]
			}

			changes, err := st.Drift(ctx, from.ID, to.ID)
			if err != nil {
				return f.Fail(ExitCommandError, "drift", err)
			}
			if err := f.Success(DriftResult{From: from.ID, To: to.ID, Changes: changes}); err != nil {
				return err
			}
			if len(changes) > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) drifted", len(changes)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "path to the SQLite run ledger (required)")
	_ = cmd.MarkFlagRequired("ledger")

	return cmd
}
