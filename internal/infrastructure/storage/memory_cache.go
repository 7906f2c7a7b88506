package storage

import (
	"context"
	"sync"
	"time"

	"sportsNewsMCP/internal/domain/entity"
	"sportsNewsMCP/internal/domain/repository"
)

type memoryCache struct {
	mu      sync.RWMutex
	entries map[entity.CacheKey]*entity.CacheEntry
}

func NewMemoryCacheRepository() repository.NewsCacheRepository {
	return &memoryCache{
		entries: make(map[entity.CacheKey]*entity.CacheEntry),
	}
}

func (c *memoryCache) Get(ctx context.Context, key entity.CacheKey) (*entity.CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return entry, nil
}

func (c *memoryCache) Set(ctx context.Context, entry *entity.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[entry.Key] = entry
	return nil
}

func (c *memoryCache) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var deleted int64
	for key, entry := range c.entries {
		if entry.IsExpired(now) {
			delete(c.entries, key)
			deleted++
		}
	}
	return deleted, nil
}
