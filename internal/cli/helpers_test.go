package cli

import (
	"github.com/roach88/termfixture/internal/store"
	"github.com/roach88/termfixture/internal/testutil"
)

func ledgerIDs() store.Option {
	return store.WithIDGenerator(testutil.NewSequentialIDs("run"))
}
