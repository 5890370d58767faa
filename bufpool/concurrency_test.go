package bufpool_test

import (
	"sync"
	"testing"

	"github.com/katalvlaran/densemat/bufpool"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAcquireRelease hammers a few keys from many goroutines and
// checks that no block is ever handed to two owners at once.
func TestConcurrentAcquireRelease(t *testing.T) {
	const (
		workers = 32
		rounds  = 200
		bound   = 8
	)
	p := bufpool.New(bufpool.WithCapacity(bound))
	keys := []bufpool.Key{
		{Rows: 4, Cols: 4, Kind: bufpool.Float64},
		{Rows: 1, Cols: 16, Kind: bufpool.Float64},
		{Rows: 8, Cols: 2, Kind: bufpool.Float64},
	}

	var (
		mu    sync.Mutex
		owned = make(map[*bufpool.Block]bool)
		wg    sync.WaitGroup
	)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				k := keys[(id+r)%len(keys)]
				b, err := p.Acquire(k)
				require.NoError(t, err)

				mu.Lock()
				require.False(t, owned[b], "block handed out twice")
				owned[b] = true
				mu.Unlock()

				b.Float64s()[0] = float64(id)

				mu.Lock()
				delete(owned, b)
				mu.Unlock()
				require.NoError(t, p.Release(b))
			}
		}(w)
	}
	wg.Wait()

	for _, k := range keys {
		require.LessOrEqual(t, p.Len(k), bound)
	}
	st := p.Stats()
	require.Equal(t, uint64(workers*rounds), st.Hits+st.Misses)
	require.Equal(t, uint64(0), st.Corruptions)
}

// TestConcurrentClear runs Clear against ongoing traffic; it must not race.
func TestConcurrentClear(t *testing.T) {
	p := bufpool.New()
	k := bufpool.Key{Rows: 16, Cols: 16, Kind: bufpool.Float64}

	var wg sync.WaitGroup
	wg.Add(9)
	for w := 0; w < 8; w++ {
		go func() {
			defer wg.Done()
			for r := 0; r < 100; r++ {
				b, err := p.Acquire(k)
				require.NoError(t, err)
				require.NoError(t, p.Release(b))
			}
		}()
	}
	go func() {
		defer wg.Done()
		for r := 0; r < 5; r++ {
			p.Clear()
		}
	}()
	wg.Wait()

	require.Equal(t, uint64(0), p.Stats().Corruptions)
}
