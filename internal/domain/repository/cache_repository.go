package repository

import (
	"context"
	"time"

	"sportsNewsMCP/internal/domain/entity"
)

// NewsCacheRepository stores fetched pages keyed by (category, page).
// Get returns (nil, nil) when no entry exists; expired entries are
// returned as-is and the caller decides with CacheEntry.IsExpired.
type NewsCacheRepository interface {
	Get(ctx context.Context, key entity.CacheKey) (*entity.CacheEntry, error)
	Set(ctx context.Context, entry *entity.CacheEntry) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
