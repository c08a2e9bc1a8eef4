// Package cache provides the caches behind scaled fonts.
//
// # Holdovers[K, V]
//
// A bounded LRU of released objects. Releasing an object parks it; an
// identical request resurrects it with Take; overflow evicts the least
// recently released entry through a callback that finalizes it.
//
//	h := cache.NewHoldovers[key, *font](256, finalize)
//	h.Put(k, f)
//	f, ok := h.Take(k)
//
// # Sharded[K, V]
//
// A 16 shard LRU for per glyph data. GetOrCreate computes a missing value
// once under the shard lock.
//
//	glyphs := cache.NewSharded[uint16, bounds](0, hash)
//	b := glyphs.GetOrCreate(gid, measure)
//
// # Thread Safety
//
// Both types are safe for concurrent use and must not be copied after
// creation (they contain mutexes).
package cache
