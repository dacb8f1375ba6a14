package cache

import "time"

// LayeredCache fronts the disk cache with a memory cache. Reads try
// memory first; disk hits are promoted back into memory so a warm key
// pays the file read once per process.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache wires the two standard layers together. The memory
// sweep interval is tied to its TTL rather than configured separately.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	cleanup := memoryTTL
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, cleanup),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get checks memory, then disk, promoting disk hits.
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	val, found := c.disk.Get(key)
	if !found {
		return nil, false
	}

	// Promote with the memory default TTL; the disk entry keeps its own
	// deadline.
	_ = c.memory.Set(key, val, 0)
	return val, true
}

// Set writes through to both layers.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete removes the entry from both layers.
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	_ = c.disk.Delete(key)
	return nil
}

// Clear empties both layers.
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	_ = c.disk.Clear()
	return nil
}
