package keepalive

import (
	"math"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// ResizableCache is an LRU map whose bound can change at runtime.
// Whenever the bound is exceeded the least recently used keys are removed
// and reported to the eviction callback in a single batch.
// Concurrent access must be guarded by the caller.
type ResizableCache[Key comparable, Value any] struct {
	lru      *simplelru.LRU[Key, Value]
	capacity int
	onEvict  func([]Key)
}

// NewResizableCache creates a cache holding at most capacity keys.
// A capacity <= 0 means unbounded.
func NewResizableCache[Key comparable, Value any](capacity int) *ResizableCache[Key, Value] {
	// The underlying list is never bounded by itself; checkCapacity does it.
	lru, err := simplelru.NewLRU[Key, Value](math.MaxInt, nil)
	if err != nil {
		panic(err)
	}
	return &ResizableCache[Key, Value]{lru: lru, capacity: capacity}
}

// SetOnEvict replaces the eviction callback. Only the latest one is called.
func (c *ResizableCache[Key, Value]) SetOnEvict(fn func(keys []Key)) {
	c.onEvict = fn
}

// Set inserts or updates key, marks it most recently used,
// then enforces the capacity.
func (c *ResizableCache[Key, Value]) Set(key Key, value Value) {
	c.lru.Add(key, value)
	c.checkCapacity()
}

// Get returns the value for key and marks it most recently used.
func (c *ResizableCache[Key, Value]) Get(key Key) (Value, bool) {
	return c.lru.Get(key)
}

// Contains reports whether key is resident without touching its recency.
func (c *ResizableCache[Key, Value]) Contains(key Key) bool {
	return c.lru.Contains(key)
}

// Remove deletes key without invoking the eviction callback.
func (c *ResizableCache[Key, Value]) Remove(key Key) bool {
	return c.lru.Remove(key)
}

// Resize changes the bound and immediately enforces it.
func (c *ResizableCache[Key, Value]) Resize(capacity int) {
	c.capacity = capacity
	c.checkCapacity()
}

// Capacity returns the current bound.
func (c *ResizableCache[Key, Value]) Capacity() int {
	return c.capacity
}

// Len returns the number of resident keys.
func (c *ResizableCache[Key, Value]) Len() int {
	return c.lru.Len()
}

// Keys returns resident keys from least to most recently used.
func (c *ResizableCache[Key, Value]) Keys() []Key {
	return c.lru.Keys()
}

func (c *ResizableCache[Key, Value]) checkCapacity() {
	if c.capacity <= 0 {
		return
	}
	var evicted []Key
	for c.lru.Len() > c.capacity {
		key, _, ok := c.lru.RemoveOldest()
		if !ok {
			break
		}
		evicted = append(evicted, key)
	}
	if len(evicted) > 0 && c.onEvict != nil {
		c.onEvict(evicted)
	}
}
