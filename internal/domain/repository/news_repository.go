package repository

import (
	"context"

	"sportsNewsMCP/internal/domain/entity"
)

// NewsRepository fetches one page of articles for a category from the upstream provider.
type NewsRepository interface {
	Fetch(ctx context.Context, category entity.CategoryInfo, page int) ([]*entity.NewsItem, error)
}
