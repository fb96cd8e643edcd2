package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "ENVIRONMENT", "LOG_LEVEL", "DATABASE_PATH", "KEYWORDS_FILE",
		"WEBHOOK_URL", "WEBHOOK_TIMEOUT_MS", "WEBHOOK_MAX_RETRY_MS", "DATASET_PATH"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.Environment != "local" {
		t.Errorf("expected local environment, got %s", cfg.Environment)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
	if cfg.DatabasePath != "" || cfg.WebhookURL != "" || cfg.KeywordsFile != "" {
		t.Errorf("expected optional adapters disabled by default, got %+v", cfg)
	}
	if cfg.WebhookTimeout != 10*time.Second {
		t.Errorf("expected 10s webhook timeout, got %v", cfg.WebhookTimeout)
	}
	if cfg.WebhookMaxRetry != 30*time.Second {
		t.Errorf("expected 30s retry window, got %v", cfg.WebhookMaxRetry)
	}
}

func TestFromEnv_CustomValues(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/scores.db")
	t.Setenv("WEBHOOK_URL", "http://hooks.local/scores")
	t.Setenv("WEBHOOK_TIMEOUT_MS", "2500")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := FromEnv()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.DatabasePath != "/tmp/scores.db" {
		t.Errorf("expected custom database path, got %s", cfg.DatabasePath)
	}
	if cfg.WebhookURL != "http://hooks.local/scores" {
		t.Errorf("expected custom webhook url, got %s", cfg.WebhookURL)
	}
	if cfg.WebhookTimeout != 2500*time.Millisecond {
		t.Errorf("expected 2.5s webhook timeout, got %v", cfg.WebhookTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestFromEnv_InvalidInt(t *testing.T) {
	t.Setenv("PORT", "notanumber")

	if cfg := FromEnv(); cfg.Port != 8080 {
		t.Errorf("expected default port on invalid value, got %d", cfg.Port)
	}
}
