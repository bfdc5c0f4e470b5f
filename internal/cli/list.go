package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ListEntry is one scenario in list output.
type ListEntry struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	CompareANSI bool   `json:"compare_ansi"`
}

// ListResult is the output of list.
type ListResult struct {
	Scenarios []ListEntry `json:"scenarios"`
}

func (r ListResult) String() string {
	width := 0
	for _, e := range r.Scenarios {
		width = max(width, len(e.ID))
	}
	var b strings.Builder
	for i, e := range r.Scenarios {
		if i > 0 {
			b.WriteByte('\n')
		}
		mark := ""
		if !e.CompareANSI {
			mark = "  (plain only)"
		}
		fmt.Fprintf(&b, "%-*s  %s%s", width, e.ID, e.Kind, mark)
	}
	fmt.Fprintf(&b, "\n%d scenario(s)", len(r.Scenarios))
	return b.String()
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog scenarios in order",
		Long: `List the scenarios of the catalog in document order.

Example:
  termfixture list --filter 'terminal/*'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			cat, err := opts.load()
			if err != nil {
				return f.Fail(ExitCommandError, "list", err)
			}
			result := ListResult{Scenarios: make([]ListEntry, len(cat.Scenarios))}
			for i, d := range cat.Scenarios {
				result.Scenarios[i] = ListEntry{ID: d.ID, Kind: string(d.Kind), CompareANSI: d.CompareANSI}
			}
			return f.Success(result)
		},
	}

	opts.addFlags(cmd)
	return cmd
}
