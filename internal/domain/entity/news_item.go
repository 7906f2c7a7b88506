package entity

import (
	"fmt"
	"time"
)

// NewsItem is one article as returned by the provider.
type NewsItem struct {
	ID           string
	Title        string
	Summary      string
	CreatedAt    time.Time
	Publisher    string
	ThumbnailURL string
}

func NewNewsItem(id, title, summary string, createdAt time.Time, publisher, thumbnailURL string) *NewsItem {
	return &NewsItem{
		ID:           id,
		Title:        title,
		Summary:      summary,
		CreatedAt:    createdAt,
		Publisher:    publisher,
		ThumbnailURL: thumbnailURL,
	}
}

// NewsBatch is what the fetcher hands back for one (category, page).
// Degraded is set when the live fetch failed and Items is empty because of it.
type NewsBatch struct {
	Category CategoryInfo
	Page     int
	Items    []*NewsItem
	Degraded bool
}

type CacheKey struct {
	Category Category
	Page     int
}

func (k CacheKey) String() string {
	return fmt.Sprintf("daum_%s_%d", k.Category, k.Page)
}

// CacheEntry is a point-in-time snapshot for one key.
type CacheEntry struct {
	Key       CacheKey
	Items     []*NewsItem
	ExpiresAt time.Time
}

func NewCacheEntry(key CacheKey, items []*NewsItem, fetchedAt time.Time, ttl time.Duration) *CacheEntry {
	return &CacheEntry{
		Key:       key,
		Items:     items,
		ExpiresAt: fetchedAt.Add(ttl),
	}
}

func (e *CacheEntry) IsExpired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
