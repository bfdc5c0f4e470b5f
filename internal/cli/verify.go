package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/termfixture/internal/harness"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	CatalogOptions
	SourceVersion string
}

// VerifyResult is the output of verify.
type VerifyResult struct {
	Path       string             `json:"path"`
	Cases      int                `json:"cases"`
	Mismatches []harness.Mismatch `json:"mismatches,omitempty"`
}

func (r VerifyResult) String() string {
	if len(r.Mismatches) == 0 {
		return fmt.Sprintf("\u2713 %s is up to date (%d cases)", r.Path, r.Cases)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\u2717 %s differs in %d place(s):", r.Path, len(r.Mismatches))
	for _, m := range r.Mismatches {
		fmt.Fprintf(&b, "\n  %s", m)
	}
	return b.String()
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify [fixture]",
		Short: "Check that a fixture document matches a fresh generation",
		Long: `Regenerate the catalog in memory and compare it with an existing fixture
document. generated_at is ignored. Exits 1 if anything differs.

Example:
  termfixture verify
  termfixture verify testdata/fixtures/reference.json --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultOutput
			if len(args) == 1 {
				path = args[0]
			}
			f := newFormatter(opts.RootOptions, cmd)

			want, err := harness.ReadDocument(path)
			if err != nil {
				return f.Fail(ExitCommandError, "verify", err)
			}
			cat, err := opts.load()
			if err != nil {
				return f.Fail(ExitCommandError, "verify", err)
			}
			got, err := harness.Generate(cmd.Context(), cat, harness.Options{
				SourceVersion: opts.SourceVersion,
				Logger:        f.Logger(),
			})
			if err != nil {
				return f.Fail(ExitCommandError, "verify", err)
			}

			result := VerifyResult{Path: path, Cases: len(got.Cases), Mismatches: harness.Compare(want, got)}
			if err := f.Success(result); err != nil {
				return err
			}
			if len(result.Mismatches) > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%s is out of date", path))
			}
			return nil
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.SourceVersion, "source-version", "", "expected source_version (default: the console version)")

	return cmd
}
