package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialIDs_Format(t *testing.T) {
	ids := NewSequentialIDs("ledger")
	assert.Equal(t, "ledger-000001", ids.Generate())
	assert.Equal(t, "ledger-000002", ids.Generate())
}

func TestSequentialIDs_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "run-000001", NewSequentialIDs("").Generate())
}

func TestSequentialIDs_Unique(t *testing.T) {
	ids := NewSequentialIDs("")
	seen := sync.Map{}

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_, dup := seen.LoadOrStore(ids.Generate(), true)
				assert.False(t, dup)
			}
		}()
	}
	wg.Wait()
}
