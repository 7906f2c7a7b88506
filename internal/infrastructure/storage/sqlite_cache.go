package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sportsNewsMCP/internal/domain/entity"
	"sportsNewsMCP/internal/domain/repository"

	_ "modernc.org/sqlite"
)

// DefaultSQLiteDSN keeps the database in process memory; entries do not
// survive a restart.
const DefaultSQLiteDSN = "file::memory:?cache=shared"

type sqliteCache struct {
	db *sql.DB
}

type cachedItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Summary      string `json:"summary"`
	CreatedAt    int64  `json:"createdAt"`
	Publisher    string `json:"publisher"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

func NewSQLiteCacheRepository(dsn string) (repository.NewsCacheRepository, error) {
	if dsn == "" {
		dsn = DefaultSQLiteDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// an in-memory database lives as long as its last connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	cache := &sqliteCache{db: db}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := cache.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return cache, nil
}

func (c *sqliteCache) initSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS news_cache (
			category TEXT NOT NULL,
			page INTEGER NOT NULL,
			items TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			PRIMARY KEY (category, page)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_news_cache_expires_at ON news_cache(expires_at)`,
	}

	for _, query := range queries {
		if _, err := c.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}

	return nil
}

func (c *sqliteCache) Get(ctx context.Context, key entity.CacheKey) (*entity.CacheEntry, error) {
	var (
		payload   string
		expiresAt int64
	)
	err := c.db.QueryRowContext(
		ctx,
		"SELECT items, expires_at FROM news_cache WHERE category = ? AND page = ?",
		string(key.Category),
		key.Page,
	).Scan(&payload, &expiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache entry [%s]: %w", key, err)
	}

	var stored []cachedItem
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry [%s]: %w", key, err)
	}

	items := make([]*entity.NewsItem, 0, len(stored))
	for _, s := range stored {
		items = append(items, entity.NewNewsItem(
			s.ID,
			s.Title,
			s.Summary,
			time.UnixMilli(s.CreatedAt),
			s.Publisher,
			s.ThumbnailURL,
		))
	}

	return &entity.CacheEntry{
		Key:       key,
		Items:     items,
		ExpiresAt: time.UnixMilli(expiresAt),
	}, nil
}

func (c *sqliteCache) Set(ctx context.Context, entry *entity.CacheEntry) error {
	stored := make([]cachedItem, 0, len(entry.Items))
	for _, item := range entry.Items {
		stored = append(stored, cachedItem{
			ID:           item.ID,
			Title:        item.Title,
			Summary:      item.Summary,
			CreatedAt:    item.CreatedAt.UnixMilli(),
			Publisher:    item.Publisher,
			ThumbnailURL: item.ThumbnailURL,
		})
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry [%s]: %w", entry.Key, err)
	}

	_, err = c.db.ExecContext(
		ctx,
		`INSERT INTO news_cache (category, page, items, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(category, page) DO UPDATE SET items = excluded.items, expires_at = excluded.expires_at`,
		string(entry.Key.Category),
		entry.Key.Page,
		string(payload),
		entry.ExpiresAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save cache entry [%s]: %w", entry.Key, err)
	}

	return nil
}

func (c *sqliteCache) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := c.db.ExecContext(
		ctx,
		"DELETE FROM news_cache WHERE expires_at <= ?",
		now.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired entries: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

func (c *sqliteCache) Close() error {
	return c.db.Close()
}
