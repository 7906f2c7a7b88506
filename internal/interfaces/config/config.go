package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"sportsNewsMCP/internal/domain/entity"
)

type Config struct {
	Port string `envconfig:"PORT" default:"3000"`

	DaumBaseURL     string `envconfig:"DAUM_BASE_URL" default:"https://sports.daum.net/media-api/harmony/contents.json"`
	PageSize        int    `envconfig:"PAGE_SIZE" default:"20"`
	UpstreamTimeout int    `envconfig:"UPSTREAM_TIMEOUT" default:"30"`

	CacheTTL             int    `envconfig:"CACHE_TTL" default:"300"`
	CacheDriver          string `envconfig:"CACHE_DRIVER" default:"memory"`
	CacheDSN             string `envconfig:"CACHE_DSN" default:"file::memory:?cache=shared"`
	CacheCleanupInterval int    `envconfig:"CACHE_CLEANUP_INTERVAL" default:"60"`

	Timezone   string `envconfig:"TIMEZONE" default:"Asia/Seoul"`
	DateLayout string `envconfig:"DATE_LAYOUT" default:"2006. 1. 2."`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// 0 disables the limiter
	RateLimitRPS float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`

	// extra keywords per category, keyed by category id
	ExtraKeywords map[entity.Category][]string `ignored:"true"`
}

// keywordEnv maps each category to the variable holding its extra keywords.
var keywordEnv = map[entity.Category]string{
	entity.CategoryWorldSoccer: "KEYWORDS_WORLD_SOCCER",
	entity.CategoryGolf:        "KEYWORDS_GOLF",
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	switch cfg.CacheDriver {
	case "memory", "sqlite":
	default:
		return nil, fmt.Errorf("unknown CACHE_DRIVER %q (valid: memory, sqlite)", cfg.CacheDriver)
	}

	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}

	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %d", cfg.UpstreamTimeout)
	}

	if cfg.CacheTTL <= 0 || cfg.CacheCleanupInterval <= 0 {
		return nil, fmt.Errorf("CACHE_TTL and CACHE_CLEANUP_INTERVAL must be positive")
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	cfg.ExtraKeywords = loadExtraKeywords()

	return &cfg, nil
}

func loadExtraKeywords() map[entity.Category][]string {
	extra := make(map[entity.Category][]string)
	for category, key := range keywordEnv {
		if keywords := parseKeywords(os.Getenv(key)); len(keywords) > 0 {
			extra[category] = keywords
		}
	}
	return extra
}

func parseKeywords(val string) []string {
	if val == "" {
		return nil
	}

	var keywords []string
	for _, kw := range strings.Split(val, ",") {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// Categories returns the built-in table with configured keywords appended.
func (c *Config) Categories() []entity.CategoryInfo {
	table := entity.DefaultCategories()
	for i, info := range table {
		table[i] = info.WithExtraKeywords(c.ExtraKeywords[info.ID])
	}
	return table
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) GetUpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeout) * time.Second
}

func (c *Config) GetCacheTTL() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

func (c *Config) GetCacheCleanupInterval() time.Duration {
	return time.Duration(c.CacheCleanupInterval) * time.Second
}

func (c *Config) IsSQLiteCache() bool {
	return c.CacheDriver == "sqlite"
}

func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
