package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	Environment     string
	LogLevel        string
	DatabasePath    string
	KeywordsFile    string
	WebhookURL      string
	WebhookTimeout  time.Duration
	WebhookMaxRetry time.Duration
	DatasetPath     string
}

// Load reads an optional .env file, then the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() Config {
	return Config{
		Port:            envInt("PORT", 8080),
		Environment:     envStr("ENVIRONMENT", "local"),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		DatabasePath:    envStr("DATABASE_PATH", ""),
		KeywordsFile:    envStr("KEYWORDS_FILE", ""),
		WebhookURL:      envStr("WEBHOOK_URL", ""),
		WebhookTimeout:  time.Duration(envInt("WEBHOOK_TIMEOUT_MS", 10000)) * time.Millisecond,
		WebhookMaxRetry: time.Duration(envInt("WEBHOOK_MAX_RETRY_MS", 30000)) * time.Millisecond,
		DatasetPath:     envStr("DATASET_PATH", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
