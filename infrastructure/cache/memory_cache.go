// Package cache provides ImageCache implementations and a small in-process
// TTL store for service-level memoization.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"decorlens/domain/services"
)

// Memory is an in-process TTL store
type Memory struct {
	store *gocache.Cache
}

func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *Memory) Get(key string) (interface{}, bool) {
	return m.store.Get(key)
}

// Set stores value; a zero ttl uses the default expiration
func (m *Memory) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, value, ttl)
}

func (m *Memory) Len() int {
	return m.store.ItemCount()
}

// MemoryImageCache keeps proxied images in process memory
type MemoryImageCache struct {
	mem *Memory
}

func NewMemoryImageCache(defaultTTL time.Duration) *MemoryImageCache {
	return &MemoryImageCache{mem: NewMemory(defaultTTL, 2*defaultTTL)}
}

func (c *MemoryImageCache) Get(ctx context.Context, key string) (*services.CachedImage, bool) {
	v, ok := c.mem.Get(imageKey(key))
	if !ok {
		return nil, false
	}
	img, ok := v.(*services.CachedImage)
	return img, ok
}

func (c *MemoryImageCache) Set(ctx context.Context, key string, img *services.CachedImage, ttl time.Duration) {
	c.mem.Set(imageKey(key), img, ttl)
}
