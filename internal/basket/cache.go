package basket

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
)

// cacheEntry represents a memoised mining result.
type cacheEntry struct {
	expiry   time.Time
	itemsets []model.Itemset
}

// CachedMiner memoises Mine results keyed by matrix contents, min support and
// max length. It is safe for concurrent use and returns copies, so callers
// never share result slices. Errors are not cached.
type CachedMiner struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	now     func() time.Time
	ttl     time.Duration
	mu      sync.RWMutex
	hits    int
	misses  int
}

// NewCachedMiner creates a cache with the specified TTL.
func NewCachedMiner(ttl time.Duration) *CachedMiner {
	if ttl == 0 {
		ttl = 15 * time.Minute // Default TTL
	}

	c := &CachedMiner{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// Mine behaves like the package level Mine but serves repeated requests from memory.
func (c *CachedMiner) Mine(m *model.Matrix, minSupport float64, opts ...MineOption) ([]model.Itemset, error) {
	cfg := mineConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	key := cacheKey(m, minSupport, cfg.maxLen)
	if sets, ok := c.get(key); ok {
		return sets, nil
	}

	sets, err := Mine(m, minSupport, opts...)
	if err != nil {
		return nil, err
	}

	c.set(key, sets)
	return copyItemsets(sets), nil
}

// Stats returns the number of cache hits and misses so far.
func (c *CachedMiner) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Len returns the number of cached results.
func (c *CachedMiner) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *CachedMiner) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Close stops the cleanup goroutine.
func (c *CachedMiner) Close() {
	close(c.stopCh)
}

func (c *CachedMiner) get(key string) ([]model.Itemset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists || c.now().After(entry.expiry) {
		c.misses++
		return nil, false
	}

	c.hits++
	return copyItemsets(entry.itemsets), true
}

func (c *CachedMiner) set(key string, sets []model.Itemset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		itemsets: copyItemsets(sets),
		expiry:   c.now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *CachedMiner) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *CachedMiner) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiry) {
			delete(c.entries, key)
		}
	}
}

// cacheKey fingerprints the matrix labels and cells together with the parameters.
func cacheKey(m *model.Matrix, minSupport float64, maxLen int) string {
	h := sha256.New()
	var buf [8]byte

	if m != nil {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(m.Rows)))
		h.Write(buf[:])
		for _, r := range m.Rows {
			h.Write([]byte(r))
			h.Write([]byte{0})
		}
		binary.LittleEndian.PutUint64(buf[:], uint64(len(m.Columns)))
		h.Write(buf[:])
		for _, col := range m.Columns {
			h.Write([]byte(col))
			h.Write([]byte{0})
		}
		for _, row := range m.Cells {
			bits := make([]byte, (len(row)+7)/8+1)
			for j, present := range row {
				if present {
					bits[j/8] |= 1 << uint(j%8)
				}
			}
			h.Write(bits)
		}
	}

	return fmt.Sprintf("%x:%016x:%d", h.Sum(nil), math.Float64bits(minSupport), maxLen)
}

func copyItemsets(sets []model.Itemset) []model.Itemset {
	out := make([]model.Itemset, len(sets))
	for i, s := range sets {
		out[i] = model.Itemset{
			Items:   append([]string(nil), s.Items...),
			Support: s.Support,
			Count:   s.Count,
		}
	}
	return out
}
