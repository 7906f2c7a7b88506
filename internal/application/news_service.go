package application

import (
	"context"
	"log/slog"
	"time"

	"sportsNewsMCP/internal/domain/entity"
	"sportsNewsMCP/internal/domain/repository"
)

const DefaultCacheTTL = 5 * time.Minute

// NewsMetrics receives cache and upstream events from NewsService.
type NewsMetrics interface {
	CacheHit(category entity.Category)
	CacheMiss(category entity.Category, expired bool)
	UpstreamFailure(category entity.Category)
}

type noopMetrics struct{}

func (noopMetrics) CacheHit(entity.Category)        {}
func (noopMetrics) CacheMiss(entity.Category, bool) {}
func (noopMetrics) UpstreamFailure(entity.Category) {}

// NewsService is the cached fetcher. It is the only owner of the cache.
type NewsService struct {
	newsRepo  repository.NewsRepository
	cacheRepo repository.NewsCacheRepository
	metrics   NewsMetrics
	logger    *slog.Logger
	ttl       time.Duration
	now       func() time.Time
}

type NewsServiceOption func(*NewsService)

func WithCacheTTL(ttl time.Duration) NewsServiceOption {
	return func(s *NewsService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) NewsServiceOption {
	return func(s *NewsService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithMetrics(m NewsMetrics) NewsServiceOption {
	return func(s *NewsService) {
		if m != nil {
			s.metrics = m
		}
	}
}

func WithLogger(logger *slog.Logger) NewsServiceOption {
	return func(s *NewsService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewNewsService(
	newsRepo repository.NewsRepository,
	cacheRepo repository.NewsCacheRepository,
	opts ...NewsServiceOption,
) *NewsService {
	s := &NewsService{
		newsRepo:  newsRepo,
		cacheRepo: cacheRepo,
		metrics:   noopMetrics{},
		logger:    slog.Default(),
		ttl:       DefaultCacheTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetNews returns the page for category, from cache while the entry is
// live. A failed fetch is logged and yields an empty, uncached, degraded
// batch; it is never returned as an error.
func (s *NewsService) GetNews(ctx context.Context, category entity.CategoryInfo, page int) *entity.NewsBatch {
	if page < 0 {
		page = 0
	}
	key := entity.CacheKey{Category: category.ID, Page: page}
	batch := &entity.NewsBatch{Category: category, Page: page, Items: []*entity.NewsItem{}}

	entry, err := s.cacheRepo.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "cache read failed, fetching live", "key", key.String(), "error", err)
		entry = nil
	}

	if entry != nil && !entry.IsExpired(s.now()) {
		s.metrics.CacheHit(category.ID)
		batch.Items = entry.Items
		return batch
	}
	s.metrics.CacheMiss(category.ID, entry != nil)

	items, err := s.newsRepo.Fetch(ctx, category, page)
	if err != nil {
		s.metrics.UpstreamFailure(category.ID)
		s.logger.ErrorContext(ctx, "failed to fetch news",
			"category", category.ID,
			"page", page,
			"error", err)
		batch.Degraded = true
		return batch
	}
	if items == nil {
		items = []*entity.NewsItem{}
	}

	if err := s.cacheRepo.Set(ctx, entity.NewCacheEntry(key, items, s.now(), s.ttl)); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key.String(), "error", err)
	}

	s.logger.InfoContext(ctx, "fetched news", "category", category.ID, "page", page, "count", len(items))
	batch.Items = items
	return batch
}

// CleanupExpired drops expired entries from the cache.
func (s *NewsService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.cacheRepo.DeleteExpired(ctx, s.now())
}
