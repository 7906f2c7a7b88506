package config

import (
	"log/slog"
	"testing"
	"time"

	"sportsNewsMCP/internal/domain/entity"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.PageSize != 20 {
		t.Errorf("expected page size 20, got %d", cfg.PageSize)
	}
	if cfg.GetCacheTTL() != 5*time.Minute {
		t.Errorf("expected cache TTL 5m, got %v", cfg.GetCacheTTL())
	}
	if cfg.IsSQLiteCache() {
		t.Errorf("expected memory cache by default")
	}
	if cfg.Location().String() != "Asia/Seoul" {
		t.Errorf("expected Asia/Seoul, got %s", cfg.Location())
	}
	if len(cfg.ExtraKeywords) != 0 {
		t.Errorf("expected no extra keywords, got %v", cfg.ExtraKeywords)
	}
}

func TestLoadConfig_Port(t *testing.T) {
	t.Setenv("PORT", "8080")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
}

func TestLoadConfig_InvalidCacheDriver(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "redis")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for unknown cache driver, got nil")
	}
}

func TestLoadConfig_InvalidTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for invalid timezone, got nil")
	}
}

func TestLoadConfig_InvalidPageSize(t *testing.T) {
	t.Setenv("PAGE_SIZE", "0")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for zero page size, got nil")
	}
}

func TestLoadConfig_NonPositiveDurations(t *testing.T) {
	for _, key := range []string{"UPSTREAM_TIMEOUT", "CACHE_TTL", "CACHE_CLEANUP_INTERVAL"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "0")

			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected error for %s=0, got nil", key)
			}
		})
	}
}

func TestLoadConfig_ExtraKeywords(t *testing.T) {
	t.Setenv("KEYWORDS_GOLF", " 우즈 , Scheffler , ")
	t.Setenv("KEYWORDS_WORLD_SOCCER", "토트넘")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	golf := cfg.ExtraKeywords[entity.CategoryGolf]
	if len(golf) != 2 || golf[0] != "우즈" || golf[1] != "Scheffler" {
		t.Errorf("expected [우즈 Scheffler], got %v", golf)
	}

	table := cfg.Categories()
	if err := entity.ValidateCategories(table); err != nil {
		t.Fatalf("expected valid table, got %v", err)
	}
	last := table[1].Keywords[len(table[1].Keywords)-1]
	if last != "scheffler" {
		t.Errorf("expected extra keyword appended lower-cased, got %q", last)
	}
	found := false
	for _, kw := range table[0].Keywords {
		if kw == "토트넘" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 토트넘 in soccer keywords, got %v", table[0].Keywords)
	}
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected int
	}{
		{"empty", "", 0},
		{"blanks only", " , ,", 0},
		{"two", "a,b", 2},
		{"trimmed", " a , b , ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseKeywords(tt.in); len(got) != tt.expected {
				t.Errorf("expected %d keywords, got %v", tt.expected, got)
			}
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := &Config{UpstreamTimeout: 10, CacheTTL: 60, CacheCleanupInterval: 30}

	if cfg.GetUpstreamTimeout() != 10*time.Second {
		t.Errorf("expected 10s, got %v", cfg.GetUpstreamTimeout())
	}
	if cfg.GetCacheTTL() != time.Minute {
		t.Errorf("expected 1m, got %v", cfg.GetCacheTTL())
	}
	if cfg.GetCacheCleanupInterval() != 30*time.Second {
		t.Errorf("expected 30s, got %v", cfg.GetCacheCleanupInterval())
	}
}

func TestConfig_GetLogLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.in}
			if got := cfg.GetLogLevel(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
