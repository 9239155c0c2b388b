// Package querycache caches repeated nearest-neighbor query results so a
// caller re-querying the same coordinate against an unchanged reference
// index does not pay for a fresh tree walk. The LRU mechanism (a
// sync.RWMutex-guarded map plus a container/list freshness order, with
// TTL expiry and hit/miss stats) is adapted from the teacher's generic
// query cache in pkg/search/cache.go; unlike the teacher's cache, which
// stores interface{} values behind a runtime type assertion so one cache
// type could back vector, text, and hybrid search results, this cache is
// parameterized on its value type so a hit can never come back as the
// wrong shape.
package querycache

import (
	"container/list"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/point"
)

// CacheKey uniquely identifies a cached query.
type CacheKey string

// LRUCache is a thread-safe LRU (Least Recently Used) cache with optional
// per-entry expiration, generic over the value type it stores.
type LRUCache[V any] struct {
	capacity int
	ttl      time.Duration

	mu    sync.RWMutex
	cache map[CacheKey]*list.Element
	lru   *list.List

	hits   int64
	misses int64
}

type cacheEntry[V any] struct {
	key       CacheKey
	value     V
	expiresAt time.Time
}

// NewLRUCache creates a new LRU cache. ttl == 0 means entries never expire.
func NewLRUCache[V any](capacity int, ttl time.Duration) *LRUCache[V] {
	return &LRUCache[V]{
		capacity: capacity,
		ttl:      ttl,
		cache:    make(map[CacheKey]*list.Element, capacity),
		lru:      list.New(),
	}
}

// Get retrieves a value from the cache.
func (c *LRUCache[V]) Get(key CacheKey) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, exists := c.cache[key]
	if !exists {
		c.misses++
		return zero, false
	}

	entry := elem.Value.(*cacheEntry[V])
	if c.ttl > 0 && time.Now().After(entry.expiresAt) {
		c.removeElement(elem)
		c.misses++
		return zero, false
	}

	c.lru.MoveToFront(elem)
	c.hits++
	return entry.value, true
}

// Put adds or updates a value in the cache, evicting the least recently
// used entry if the cache is over capacity.
func (c *LRUCache[V]) Put(key CacheKey, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.cache[key]; exists {
		entry := elem.Value.(*cacheEntry[V])
		entry.value = value
		if c.ttl > 0 {
			entry.expiresAt = time.Now().Add(c.ttl)
		}
		c.lru.MoveToFront(elem)
		return
	}

	entry := &cacheEntry[V]{key: key, value: value}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}

	elem := c.lru.PushFront(entry)
	c.cache[key] = elem

	if c.lru.Len() > c.capacity {
		c.evictOldest()
	}
}

// Invalidate removes a specific key from the cache.
func (c *LRUCache[V]) Invalidate(key CacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.cache[key]; exists {
		c.removeElement(elem)
	}
}

// Clear removes all entries and resets statistics.
func (c *LRUCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[CacheKey]*list.Element, c.capacity)
	c.lru.Init()
	c.hits = 0
	c.misses = 0
}

// Size returns the current number of entries.
func (c *LRUCache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}

// Stats returns cache performance statistics.
func (c *LRUCache[V]) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return CacheStats{
		Hits:    c.hits,
		Misses:  c.misses,
		Size:    c.lru.Len(),
		HitRate: hitRate,
	}
}

func (c *LRUCache[V]) evictOldest() {
	if elem := c.lru.Back(); elem != nil {
		c.removeElement(elem)
	}
}

func (c *LRUCache[V]) removeElement(elem *list.Element) {
	c.lru.Remove(elem)
	entry := elem.Value.(*cacheEntry[V])
	delete(c.cache, entry.key)
}

// CacheStats holds cache performance statistics.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Size    int
	HitRate float64
}

// add combines another CacheStats into a running total; used by
// NearestCache.Stats to merge its two underlying caches into one report.
func (s CacheStats) add(other CacheStats) CacheStats {
	hits := s.Hits + other.Hits
	misses := s.Misses + other.Misses
	total := hits + misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return CacheStats{Hits: hits, Misses: misses, Size: s.Size + other.Size, HitRate: hitRate}
}

// NearestCache caches repeated nearest/k-nearest queries against a
// single, unchanged reference index, as two independently-typed LRU
// caches (Nearest results never collide with KNearest result slices,
// since each is stored in its own LRUCache[V] rather than sharing one
// interface{}-valued cache keyed by query alone). Callers must Clear it
// (or build a new one) whenever the underlying reference frame changes;
// nothing here detects staleness on its own.
type NearestCache struct {
	nearest  *LRUCache[point.Point]
	kNearest *LRUCache[[]point.Point]
}

// NewNearestCache creates a nearest-neighbor query cache with the given
// capacity and entry lifetime (ttl == 0 disables expiration). Capacity
// applies to each of the two underlying caches independently.
func NewNearestCache(capacity int, ttl time.Duration) *NearestCache {
	return &NearestCache{
		nearest:  NewLRUCache[point.Point](capacity, ttl),
		kNearest: NewLRUCache[[]point.Point](capacity, ttl),
	}
}

// QueryKey builds a cache key from a query coordinate and k, quantizing
// each axis to a fixed grid so that floating-point jitter from repeated
// queries at "the same" location still hits the cache.
func QueryKey(q point.Coord, k int) CacheKey {
	const grid = 1e-4

	h := fnv.New64a()
	for _, v := range [3]float32{q.X, q.Y, q.Z} {
		quantized := int64(float64(v) / grid)
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(quantized))
		h.Write(buf[:])
	}
	var kbuf [4]byte
	binary.LittleEndian.PutUint32(kbuf[:], uint32(k))
	h.Write(kbuf[:])

	return CacheKey(fmt.Sprintf("knn:%x", h.Sum64()))
}

// GetNearest retrieves a cached single-nearest result.
func (nc *NearestCache) GetNearest(key CacheKey) (point.Point, bool) {
	return nc.nearest.Get(key)
}

// PutNearest stores a single-nearest result.
func (nc *NearestCache) PutNearest(key CacheKey, p point.Point) {
	nc.nearest.Put(key, p)
}

// GetKNearest retrieves a cached k-nearest result slice.
func (nc *NearestCache) GetKNearest(key CacheKey) ([]point.Point, bool) {
	return nc.kNearest.Get(key)
}

// PutKNearest stores a k-nearest result slice.
func (nc *NearestCache) PutKNearest(key CacheKey, pts []point.Point) {
	nc.kNearest.Put(key, pts)
}

// Clear removes all cached results from both underlying caches.
func (nc *NearestCache) Clear() {
	nc.nearest.Clear()
	nc.kNearest.Clear()
}

// Stats returns combined performance statistics across both the Nearest
// and KNearest caches.
func (nc *NearestCache) Stats() CacheStats {
	return nc.nearest.Stats().add(nc.kNearest.Stats())
}

// Size returns the number of cached entries across both underlying caches.
func (nc *NearestCache) Size() int {
	return nc.nearest.Size() + nc.kNearest.Size()
}
