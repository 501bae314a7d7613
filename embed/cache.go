package embed

import (
	"slices"
	"sync"
)

// Cache is a session-lifetime vector cache keyed by exact input text.
// Entries are never evicted; correctness assumes the backing model identity
// is stable for the session. Safe for concurrent use. Both Get and Put
// clone the vector so callers can never alias cache-internal storage.
type Cache struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

// NewCache creates an empty vector cache.
func NewCache() *Cache {
	return &Cache{vectors: make(map[string][]float32)}
}

// Get returns a copy of the cached vector for text, if present.
func (c *Cache) Get(text string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	vector, ok := c.vectors[text]
	if !ok {
		return nil, false
	}
	return slices.Clone(vector), true
}

// Put stores a copy of vector under text. An existing entry is preserved;
// the first vector produced for a text wins for the session.
func (c *Cache) Put(text string, vector []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.vectors[text]; ok {
		return
	}
	c.vectors[text] = slices.Clone(vector)
}

// Len returns the number of cached vectors.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}
