// Package config loads the pipeline configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// API credentials
	GeminiAPIKey     string
	NotionAPIKey     string
	NotionDatabaseID string
	OpenAIAPIKey     string // optional, digest is skipped without it

	// Collection settings
	SourcesConfigPath string
	LedgerPath        string
	RecencyWindow     time.Duration

	// Podcast settings
	DocsDir        string
	PodcastBaseURL string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		SourcesConfigPath: getEnvOrDefault("SOURCES_CONFIG_PATH", "configs/sources.yaml"),
		LedgerPath:        getEnvOrDefault("LEDGER_PATH", "seen_ids.json"),
		DocsDir:           getEnvOrDefault("DOCS_DIR", "docs"),
		PodcastBaseURL:    getEnvOrDefault("PODCAST_BASE_URL", "https://daigo823.github.io/ai-news-collector"),
		RequestTimeout:    30 * time.Second,
		RecencyWindow:     72 * time.Hour,
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.NotionAPIKey = os.Getenv("NOTION_API_KEY")
	cfg.NotionDatabaseID = os.Getenv("NOTION_DATABASE_ID")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	if v := getEnvIntOrDefault("RECENCY_WINDOW_HOURS", 0); v > 0 {
		cfg.RecencyWindow = time.Duration(v) * time.Hour
	}
	if v := getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.NotionAPIKey == "" {
		return fmt.Errorf("NOTION_API_KEY is required")
	}
	if c.NotionDatabaseID == "" {
		return fmt.Errorf("NOTION_DATABASE_ID is required")
	}
	return nil
}
