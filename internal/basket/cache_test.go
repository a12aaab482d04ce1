package basket

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedMiner_MatchesMine(t *testing.T) {
	cache := NewCachedMiner(time.Minute)
	defer cache.Close()

	rng := rand.New(rand.NewSource(5))
	m := randomMatrix(rng, 25, 6, 0.5)

	want, err := Mine(m, 0.2)
	require.NoError(t, err)

	first, err := cache.Mine(m, 0.2)
	require.NoError(t, err)
	second, err := cache.Mine(m, 0.2)
	require.NoError(t, err)

	assert.Equal(t, want, first)
	assert.Equal(t, want, second)

	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
	assert.Equal(t, 1, cache.Len())
}

func TestCachedMiner_KeyIncludesParameters(t *testing.T) {
	cache := NewCachedMiner(time.Minute)
	defer cache.Close()

	m := scenarioMatrix(t)

	_, err := cache.Mine(m, 0.5)
	require.NoError(t, err)
	_, err = cache.Mine(m, 0.25)
	require.NoError(t, err)
	_, err = cache.Mine(m, 0.25, WithMaxLen(1))
	require.NoError(t, err)

	assert.Equal(t, 3, cache.Len())

	other, err := NewMatrix([][]string{{"A", "B"}, {"A", "B", "C"}, {"A"}, {"C"}})
	require.NoError(t, err)
	_, err = cache.Mine(other, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 4, cache.Len())
}

func TestCachedMiner_ReturnsCopies(t *testing.T) {
	cache := NewCachedMiner(time.Minute)
	defer cache.Close()

	m := scenarioMatrix(t)
	first, err := cache.Mine(m, 0.5)
	require.NoError(t, err)
	first[0].Items[0] = "mutated"

	second, err := cache.Mine(m, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "A", second[0].Items[0])
}

func TestCachedMiner_ErrorsAreNotCached(t *testing.T) {
	cache := NewCachedMiner(time.Minute)
	defer cache.Close()

	_, err := cache.Mine(scenarioMatrix(t), 1.1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, 0, cache.Len())
}

func TestCachedMiner_Expiry(t *testing.T) {
	cache := NewCachedMiner(time.Minute)
	defer cache.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	m := scenarioMatrix(t)
	_, err := cache.Mine(m, 0.5)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	cache.evictExpired()
	assert.Equal(t, 0, cache.Len())

	_, err = cache.Mine(m, 0.5)
	require.NoError(t, err)
	_, misses := cache.Stats()
	assert.Equal(t, 2, misses)
}

func TestCachedMiner_Clear(t *testing.T) {
	cache := NewCachedMiner(0)
	defer cache.Close()

	_, err := cache.Mine(scenarioMatrix(t), 0.5)
	require.NoError(t, err)
	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestCachedMiner_Concurrent(t *testing.T) {
	cache := NewCachedMiner(time.Minute)
	defer cache.Close()

	m := scenarioMatrix(t)
	want, err := Mine(m, 0.5)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := cache.Mine(m, 0.5)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
