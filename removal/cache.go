package removal

import "sync"

// MemoryCache is an in-process Cache. Entries are write-once per key in
// practice (the key is a content hash), so a plain RWMutex map is enough.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string][]byte)}
}

// Get returns the cached image for key, or nil, nil on a miss.
func (c *MemoryCache) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	img, ok := c.data[key]
	if !ok {
		return nil, nil
	}
	return img, nil
}

// Set stores the image under key.
func (c *MemoryCache) Set(key string, image []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = image
	return nil
}

// Len reports the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.data)
}
