// Package cache provides the sharded, concurrent, never-evicting map the
// engine uses for its two process-wide caches (by_string and by_tokens).
// It is adapted from the teacher's ConcurrentCache (internal/cache.go in
// wayneeseguin/graft), stripped of TTL expiry and LRU eviction: spec
// requires monotonic growth with entries that are "never invalidated",
// so there is nothing for a TTL or an eviction policy to do here.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// shard is one partition of a Cache, guarded by its own RWMutex so
// unrelated keys don't contend on the same lock.
type shard struct {
	mu    sync.RWMutex
	items map[string]interface{}
}

// Cache is a thread-safe, sharded, monotonically-growing map from string
// keys to arbitrary values. Reads take a shard read-lock; writes take a
// shard write-lock; different shards never block each other.
type Cache struct {
	shards    []*shard
	shardMask uint32

	hits   atomic.Uint64
	misses atomic.Uint64
	sets   atomic.Uint64
}

// New creates a Cache with the given number of shards, rounded up to the
// next power of two (minimum 1). A shard count of 0 defaults to 16,
// matching the teacher's default.
func New(shards int) *Cache {
	if shards <= 0 {
		shards = 16
	}
	n := 1
	for n < shards {
		n <<= 1
	}
	c := &Cache{
		shards:    make([]*shard, n),
		shardMask: uint32(n - 1),
	}
	for i := range c.shards {
		c.shards[i] = &shard{items: make(map[string]interface{})}
	}
	return c
}

func (c *Cache) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return c.shards[h.Sum32()&c.shardMask]
}

// Get returns the value stored under key, if any.
func (c *Cache) Get(key string) (interface{}, bool) {
	sh := c.shardFor(key)
	sh.mu.RLock()
	v, ok := sh.items[key]
	sh.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// GetOrCompute returns the cached value for key, computing and storing it
// via compute if absent. compute may run more than once under
// concurrent first-use races; the cache converges on whichever result
// won the shard's write lock first, which is safe here because Expression
// construction is a pure function of its inputs.
func (c *Cache) GetOrCompute(key string, compute func() interface{}) interface{} {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute()
	sh := c.shardFor(key)
	sh.mu.Lock()
	if existing, ok := sh.items[key]; ok {
		sh.mu.Unlock()
		return existing
	}
	sh.items[key] = v
	sh.mu.Unlock()
	c.sets.Add(1)
	return v
}

// Set stores value under key, overwriting any existing entry.
func (c *Cache) Set(key string, value interface{}) {
	sh := c.shardFor(key)
	sh.mu.Lock()
	sh.items[key] = value
	sh.mu.Unlock()
	c.sets.Add(1)
}

// Len returns the total number of entries across all shards.
func (c *Cache) Len() int {
	total := 0
	for _, sh := range c.shards {
		sh.mu.RLock()
		total += len(sh.items)
		sh.mu.RUnlock()
	}
	return total
}

// Metrics reports cumulative hit/miss/set counters.
type Metrics struct {
	Hits   uint64
	Misses uint64
	Sets   uint64
}

// Metrics returns a snapshot of the cache's cumulative counters.
func (c *Cache) Metrics() Metrics {
	return Metrics{Hits: c.hits.Load(), Misses: c.misses.Load(), Sets: c.sets.Load()}
}
