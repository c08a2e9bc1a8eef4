package cache

import "sync"

// DefaultHoldovers is the number of released objects kept for resurrection.
const DefaultHoldovers = 256

// Holdovers keeps recently released objects alive so that an identical
// request can resurrect them instead of building a new one.
//
// Entries are evicted in least recently released order once the capacity is
// exceeded. The evict callback runs for every entry that leaves the set
// without being taken, after the internal lock has been released.
//
// Holdovers is safe for concurrent use.
// Holdovers must not be copied after creation (has mutex).
type Holdovers[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*lruNode[K, V]
	lru      lruList[K, V]
	capacity int
	evict    func(V)

	hits      uint64
	misses    uint64
	evictions uint64
}

// NewHoldovers creates a holdover set with the given capacity.
// If capacity <= 0, DefaultHoldovers is used. evict may be nil.
func NewHoldovers[K comparable, V any](capacity int, evict func(V)) *Holdovers[K, V] {
	if capacity <= 0 {
		capacity = DefaultHoldovers
	}
	return &Holdovers[K, V]{
		entries:  make(map[K]*lruNode[K, V]),
		capacity: capacity,
		evict:    evict,
	}
}

// Put parks value under key. An entry already parked under the same key is
// evicted first. When the set is full the oldest entry is evicted.
func (h *Holdovers[K, V]) Put(key K, value V) {
	var evicted []V

	h.mu.Lock()
	if old, ok := h.entries[key]; ok {
		h.lru.Remove(old)
		delete(h.entries, key)
		evicted = append(evicted, old.value)
	}
	for h.lru.Len() >= h.capacity {
		oldest := h.lru.RemoveOldest()
		if oldest == nil {
			break
		}
		delete(h.entries, oldest.key)
		evicted = append(evicted, oldest.value)
	}
	h.entries[key] = h.lru.PushFront(key, value)
	h.evictions += uint64(len(evicted))
	h.mu.Unlock()

	h.runEvict(evicted)
}

// Take removes the entry parked under key and returns it.
// Returns (zero, false) if nothing is parked there.
func (h *Holdovers[K, V]) Take(key K) (V, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	node, ok := h.entries[key]
	if !ok {
		h.misses++
		var zero V
		return zero, false
	}
	h.lru.Remove(node)
	delete(h.entries, key)
	h.hits++
	return node.value, true
}

// Drain evicts every parked entry.
func (h *Holdovers[K, V]) Drain() {
	h.mu.Lock()
	evicted := make([]V, 0, h.lru.Len())
	for node := h.lru.RemoveOldest(); node != nil; node = h.lru.RemoveOldest() {
		evicted = append(evicted, node.value)
	}
	h.entries = make(map[K]*lruNode[K, V])
	h.evictions += uint64(len(evicted))
	h.mu.Unlock()

	h.runEvict(evicted)
}

// Len returns the number of parked entries.
func (h *Holdovers[K, V]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lru.Len()
}

// Capacity returns the maximum number of parked entries.
func (h *Holdovers[K, V]) Capacity() int {
	return h.capacity
}

// Stats returns current statistics.
func (h *Holdovers[K, V]) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	var hitRate float64
	if total := h.hits + h.misses; total > 0 {
		hitRate = float64(h.hits) / float64(total)
	}
	return Stats{
		Len:       h.lru.Len(),
		Capacity:  h.capacity,
		Hits:      h.hits,
		Misses:    h.misses,
		HitRate:   hitRate,
		Evictions: h.evictions,
	}
}

func (h *Holdovers[K, V]) runEvict(values []V) {
	if h.evict == nil {
		return
	}
	for _, v := range values {
		h.evict(v)
	}
}

// Stats contains holdover statistics.
type Stats struct {
	// Len is the current number of parked entries.
	Len int
	// Capacity is the maximum number of parked entries.
	Capacity int
	// Hits is the number of successful Take calls.
	Hits uint64
	// Misses is the number of Take calls that found nothing.
	Misses uint64
	// HitRate is Hits / (Hits + Misses).
	HitRate float64
	// Evictions is the number of entries that left without being taken.
	Evictions uint64
}
