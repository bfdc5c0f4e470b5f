package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/termfixture/internal/harness"
	"github.com/roach88/termfixture/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	CatalogOptions
	Output        string
	SourceVersion string
	Ledger        string

	// Clock overrides the generated_at clock (for testing).
	// If nil, wall-clock time is used.
	Clock harness.Clock

	// LedgerOptions are passed to store.Open (for testing).
	LedgerOptions []store.Option

	// outputSet records whether --output was given explicitly.
	outputSet bool
}

// GenerateResult is the output of a successful generate run.
type GenerateResult struct {
	Path          string `json:"path"`
	Cases         int    `json:"cases"`
	SourceVersion string `json:"source_version"`
	RunID         string `json:"run_id,omitempty"`
}

func (r GenerateResult) String() string {
	s := fmt.Sprintf("\u2713 Wrote %d cases to %s (%s)", r.Cases, r.Path, r.SourceVersion)
	if r.RunID != "" {
		s += fmt.Sprintf("\n  recorded run %s", r.RunID)
	}
	return s
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render every scenario and write the fixture document",
		Long: `Render every scenario of the catalog into a fresh recording console and
write the normalized captures to one fixture document.

The run is all-or-nothing: if any scenario fails to build or render, no
document is written.

Example:
  termfixture generate
  termfixture generate -o fixtures.json --ledger runs.db
  termfixture generate --filter 'markdown/*' -o /tmp/markdown.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.outputSet = cmd.Flags().Changed("output")
			f := newFormatter(opts.RootOptions, cmd)
			result, err := runGenerate(cmd.Context(), opts, f.Logger())
			if err != nil {
				return f.Fail(ExitCommandError, "generate", err)
			}
			return f.Success(result)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", DefaultOutput, "fixture document path")
	cmd.Flags().StringVar(&opts.SourceVersion, "source-version", "", "version recorded as source_version (default: the console version)")
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "SQLite run ledger to record the run in")

	return cmd
}

// runGenerate loads the catalog, generates, writes and optionally records
// the run.
func runGenerate(ctx context.Context, opts *GenerateOptions, logger *slog.Logger) (*GenerateResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Filter != "" && !opts.outputSet && opts.Output == DefaultOutput {
		return nil, errors.New("a filtered run needs an explicit --output")
	}

	cat, err := opts.load()
	if err != nil {
		return nil, err
	}

	doc, err := harness.Generate(ctx, cat, harness.Options{
		SourceVersion: opts.SourceVersion,
		Clock:         opts.Clock,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	if err := harness.WriteDocument(opts.Output, doc); err != nil {
		return nil, err
	}
	logger.Info("fixture written",
		"path", opts.Output,
		"cases", len(doc.Cases),
		"source_version", doc.SourceVersion,
	)

	result := &GenerateResult{Path: opts.Output, Cases: len(doc.Cases), SourceVersion: doc.SourceVersion}
	if opts.Ledger == "" {
		return result, nil
	}

	st, err := store.Open(opts.Ledger, opts.LedgerOptions...)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer st.Close()

	run, err := st.RecordRun(ctx, doc)
	if err != nil {
		return nil, err
	}
	logger.Debug("run recorded", "ledger", opts.Ledger, "run_id", run.ID, "seq", run.Seq)
	result.RunID = run.ID
	return result, nil
}
