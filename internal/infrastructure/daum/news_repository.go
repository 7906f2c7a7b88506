package daum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sportsNewsMCP/internal/domain/entity"
	"sportsNewsMCP/internal/domain/repository"
	"sportsNewsMCP/internal/infrastructure/html"
)

const (
	DefaultBaseURL  = "https://sports.daum.net/media-api/harmony/contents.json"
	DefaultPageSize = 20
)

var ErrSchemaMismatch = errors.New("unexpected provider response")

type Config struct {
	BaseURL  string
	PageSize int
	Timeout  time.Duration
	Location *time.Location
	Logger   *slog.Logger
	// Now is used for the same-day createDt filter. Defaults to time.Now.
	Now func() time.Time
}

type newsRepository struct {
	baseURL  string
	pageSize int
	client   *http.Client
	location *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

func NewNewsRepository(cfg Config) repository.NewsRepository {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	location := cfg.Location
	if location == nil {
		location = time.Local
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &newsRepository{
		baseURL:  baseURL,
		pageSize: pageSize,
		client:   &http.Client{Timeout: timeout},
		location: location,
		logger:   logger,
		now:      now,
	}
}

type apiResponse struct {
	Success bool       `json:"success"`
	Result  *apiResult `json:"result"`
}

type apiResult struct {
	Contents []apiContent `json:"contents"`
	Total    int          `json:"total"`
	HasNext  bool         `json:"hasNext"`
}

type apiContent struct {
	ContentID    string `json:"contentId"`
	Title        string `json:"title"`
	Summary      string `json:"summary"`
	CreateDt     int64  `json:"createDt"`
	ThumbnailURL string `json:"thumbnailUrl"`
	CP           struct {
		CPName string `json:"cpName"`
	} `json:"cp"`
}

func (r *newsRepository) Fetch(ctx context.Context, category entity.CategoryInfo, page int) ([]*entity.NewsItem, error) {
	reqURL, err := BuildURL(r.baseURL, category.ProviderID, page, r.pageSize, r.now().In(r.location))
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "fetching news", "category", category.ID, "page", page, "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrSchemaMismatch, err)
	}

	if err := apiResp.validate(); err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "provider page metadata",
		"category", category.ID,
		"total", apiResp.Result.Total,
		"has_next", apiResp.Result.HasNext)

	items := make([]*entity.NewsItem, 0, len(apiResp.Result.Contents))
	for _, c := range apiResp.Result.Contents {
		items = append(items, entity.NewNewsItem(
			c.ContentID,
			html.PlainText(c.Title),
			html.PlainText(c.Summary),
			time.UnixMilli(c.CreateDt),
			c.CP.CPName,
			c.ThumbnailURL,
		))
	}

	return items, nil
}

func (r *apiResponse) validate() error {
	if !r.Success {
		return fmt.Errorf("provider reported success=false")
	}
	if r.Result == nil {
		return fmt.Errorf("%w: missing result", ErrSchemaMismatch)
	}
	if r.Result.Contents == nil {
		return fmt.Errorf("%w: missing result.contents", ErrSchemaMismatch)
	}
	for i, c := range r.Result.Contents {
		if c.ContentID == "" || c.Title == "" {
			return fmt.Errorf("%w: contents[%d] lacks contentId or title", ErrSchemaMismatch, i)
		}
	}
	return nil
}

type discoveryTag struct {
	Group string `json:"group"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BuildURL assembles the contents query for one category page.
// The discoveryTag filter is percent-encoded twice; the provider rejects
// a single encoding.
func BuildURL(baseURL, providerID string, page, size int, today time.Time) (string, error) {
	tag, err := json.Marshal(discoveryTag{
		Group: "media",
		Key:   "defaultCategoryId3",
		Value: providerID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode discovery tag: %w", err)
	}

	date := today.Format("20060102")
	encodedTag := encodeURIComponent(encodeURIComponent(string(tag)))

	return fmt.Sprintf("%s?page=%d&consumerType=HARMONY&status=SERVICE&createDt=%s000000~%s235959&discoveryTag%%5B0%%5D=%s&size=%d",
		baseURL, page, date, date, encodedTag, size), nil
}

// encodeURIComponent matches the ECMAScript function of the same name:
// space is %20 and the marks !'()* stay literal.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	return componentReplacer.Replace(escaped)
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
