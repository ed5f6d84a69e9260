package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("expected default cache TTL 10m, got %v", cfg.CacheTTL)
	}
	if cfg.Recommender.PeerLimit != 10 {
		t.Errorf("expected default peer limit 10, got %d", cfg.Recommender.PeerLimit)
	}
	if cfg.Recommender.Weights.Content != 0.5 {
		t.Errorf("expected default content weight 0.5, got %v", cfg.Recommender.Weights.Content)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected addr :8080, got %s", cfg.Addr())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RECSVC_PORT", "9090")
	t.Setenv("RECSVC_LOG_LEVEL", "debug")
	t.Setenv("RECSVC_RECOMMENDER__PEER_LIMIT", "15")
	t.Setenv("RECSVC_RECOMMENDER__WEIGHTS__DIVERSITY", "0.15")
	t.Setenv("RECSVC_RECOMMENDER__WEIGHTS__CONTENT", "0.4")
	t.Setenv("RECSVC_RECOMMENDER__WEIGHTS__POPULARITY", "0.2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.Recommender.PeerLimit != 15 {
		t.Errorf("expected peer limit 15, got %d", cfg.Recommender.PeerLimit)
	}
	if cfg.Recommender.Weights.Diversity != 0.15 {
		t.Errorf("expected diversity weight 0.15, got %v", cfg.Recommender.Weights.Diversity)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
port: 9000
recommender:
  trending_window_days: 14
  weights:
    content: 0.3
    collaborative: 0.3
    popularity: 0.2
    diversity: 0.1
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("RECSVC_CONFIG", path)
	// Env still wins over the file.
	t.Setenv("RECSVC_PORT", "9001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 9001 {
		t.Errorf("expected env to override file, got port %d", cfg.Port)
	}
	if cfg.Recommender.TrendingWindowDays != 14 {
		t.Errorf("expected trending window 14, got %d", cfg.Recommender.TrendingWindowDays)
	}
	if cfg.Recommender.Weights.Content != 0.3 {
		t.Errorf("expected content weight 0.3, got %v", cfg.Recommender.Weights.Content)
	}
}

func TestLoadRejectsInvalidWeights(t *testing.T) {
	t.Setenv("RECSVC_RECOMMENDER__WEIGHTS__CONTENT", "0.9")
	t.Setenv("RECSVC_RECOMMENDER__WEIGHTS__COLLABORATIVE", "0.5")

	if _, err := Load(); err == nil {
		t.Fatal("expected weights summing above 1.0 to be rejected")
	}
}
