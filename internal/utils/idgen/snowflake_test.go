package idgen_test

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/ledger_books/internal/utils/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsWorkerOutOfRange(t *testing.T) {
	_, err := idgen.New(-1)
	assert.Error(t, err)
	_, err = idgen.New(idgen.MaxWorkerID + 1)
	assert.Error(t, err)
}

func TestMustNew(t *testing.T) {
	assert.NotNil(t, idgen.MustNew(1))
	assert.Panics(t, func() { idgen.MustNew(-1) })
}

func TestNext_FormatAndUniqueness(t *testing.T) {
	g, err := idgen.New(3)
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^RCP-\d+$`)
	seen := make(map[string]struct{})
	var mu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				id := g.Next("RCP")
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 8000)
	for id := range seen {
		assert.Regexp(t, pattern, id)
		break
	}
}

func TestNextID_FrozenClockStaysMonotonic(t *testing.T) {
	frozen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g, err := idgen.New(1)
	require.NoError(t, err)
	g.WithClock(func() time.Time { return frozen })

	prev := g.NextID()
	for i := 0; i < 10000; i++ {
		next := g.NextID()
		require.Greater(t, next, prev)
		prev = next
	}
}
