package cache

import (
	"sync"
	"sync/atomic"
)

// ShardCount is the number of shards of a Sharded cache.
// Must be a power of 2 for fast modulo via bitwise AND.
const ShardCount = 16

const shardMask = ShardCount - 1

// DefaultShardCapacity is the default maximum entries per shard.
const DefaultShardCapacity = 16

// Hasher computes the hash used for shard selection.
type Hasher[K any] func(K) uint64

// Sharded is a thread-safe, sharded LRU cache. Scaled fonts keep their
// per glyph measurements in one.
//
// Sharded must not be copied after creation (has mutex).
type Sharded[K comparable, V any] struct {
	shards   [ShardCount]shard[K, V]
	hasher   Hasher[K]
	capacity int // per shard

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*lruNode[K, V]
	lru     lruList[K, V]
}

// NewSharded creates a sharded cache holding up to capacity entries per
// shard. If capacity <= 0, DefaultShardCapacity is used.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultShardCapacity
	}
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i].entries = make(map[K]*lruNode[K, V])
	}
	return c
}

func (c *Sharded[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

// GetOrCreate returns the cached value for key or stores the result of
// create. create runs under the shard lock, so concurrent callers for one
// key compute it once. Keep it fast.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() V) V {
	s := c.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if node, ok := s.entries[key]; ok {
		s.lru.MoveToFront(node)
		c.hits.Add(1)
		return node.value
	}
	c.misses.Add(1)

	value := create()
	for s.lru.Len() >= c.capacity {
		oldest := s.lru.RemoveOldest()
		if oldest == nil {
			break
		}
		delete(s.entries, oldest.key)
		c.evictions.Add(1)
	}
	s.entries[key] = s.lru.PushFront(key, value)
	return value
}

// Clear removes all entries.
func (c *Sharded[K, V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		s.entries = make(map[K]*lruNode[K, V])
		s.lru = lruList[K, V]{}
		s.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		total += s.lru.Len()
		s.mu.Unlock()
	}
	return total
}

// Stats returns current statistics. Capacity is the total over all shards.
func (c *Sharded[K, V]) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()
	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity * ShardCount,
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Evictions: c.evictions.Load(),
	}
}
