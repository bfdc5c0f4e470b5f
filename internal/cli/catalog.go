package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/termfixture/internal/scenario"
)

// DefaultOutput is where generate writes and verify reads by default.
const DefaultOutput = "testdata/fixtures/reference.json"

// CatalogOptions are the flags of commands that read the scenario catalog.
type CatalogOptions struct {
	Catalog string
	Filter  string
}

func (o *CatalogOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Catalog, "catalog", "", "YAML catalog replacing the built-in one")
	cmd.Flags().StringVar(&o.Filter, "filter", "", "only scenarios whose id matches this glob")
}

// load reads the selected catalog and applies the filter.
func (o *CatalogOptions) load() (*scenario.Catalog, error) {
	var (
		cat *scenario.Catalog
		err error
	)
	if o.Catalog != "" {
		cat, err = scenario.LoadFile(o.Catalog)
	} else {
		cat, err = scenario.Default()
	}
	if err != nil {
		return nil, err
	}
	if o.Filter == "" {
		return cat, nil
	}
	return cat.Filter(o.Filter)
}
