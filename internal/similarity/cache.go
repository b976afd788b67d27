package similarity

import (
	"container/list"
	"sync"
)

// boundedCache is a thread-safe map with insertion-order eviction: when the
// capacity is reached the oldest entry is dropped. Writes are idempotent
// overwrites, so a duplicate upstream fetch for the same key never corrupts
// cached state.
type boundedCache[V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List
}

type cachePair[V any] struct {
	key   string
	value V
}

func newBoundedCache[V any](capacity int) *boundedCache[V] {
	if capacity <= 0 {
		capacity = 100
	}
	return &boundedCache[V]{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

func (c *boundedCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		return elem.Value.(cachePair[V]).value, true
	}
	var zero V
	return zero, false
}

func (c *boundedCache[V]) set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value = cachePair[V]{key: key, value: value}
		return
	}

	c.entries[key] = c.order.PushBack(cachePair[V]{key: key, value: value})

	if c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(cachePair[V]).key)
	}
}

func (c *boundedCache[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *boundedCache[V]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}
