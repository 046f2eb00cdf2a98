package linode

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
)

type cacheEntry struct {
	triplet  Triplet
	initial  Initial
	opts     Options
	solution *Solution
}

// Cache memoizes built solutions. It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]cacheEntry
	hits    int
	misses  int
}

func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]cacheEntry)}
}

// Solve returns the cached solution for the inputs, building it on a miss.
// Failed builds are not cached.
func (c *Cache) Solve(tr Triplet, ic Initial, opts Options) (*Solution, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	key := cacheKey(tr, ic, opts)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.triplet == tr && e.initial == ic && e.opts == opts {
		c.hits++
		c.mu.Unlock()
		return e.solution, nil
	}
	c.misses++
	c.mu.Unlock()

	sol, err := Build(tr, ic, opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{triplet: tr, initial: ic, opts: opts, solution: sol}
	c.mu.Unlock()
	return sol, nil
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]cacheEntry)
	c.hits, c.misses = 0, 0
}

func cacheKey(tr Triplet, ic Initial, opts Options) uint64 {
	var buf [8 * 8]byte
	vals := [...]float64{tr.A, tr.B, tr.C, tr.K, ic.X0, ic.V0, opts.Tolerance, float64(opts.Mode)}
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return xxhash.Sum64(buf[:])
}
