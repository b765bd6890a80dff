package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/daigo823/ai-news-collector/internal/config"
	"github.com/daigo823/ai-news-collector/internal/gemini"
	"github.com/daigo823/ai-news-collector/internal/ledger"
	"github.com/daigo823/ai-news-collector/internal/logger"
	"github.com/daigo823/ai-news-collector/internal/notion"
	"github.com/daigo823/ai-news-collector/internal/source"
	"github.com/daigo823/ai-news-collector/internal/speech"
)

// Run loads configuration, wires every component and executes one pipeline
// pass. The binary is meant to run from a scheduler, one pass per invocation.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sources, err := source.LoadSources(cfg.SourcesConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}

	seen, err := ledger.Load(cfg.LedgerPath)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	logger.Info("ledger loaded", "path", cfg.LedgerPath, "entries", seen.Len())

	summarizer, err := gemini.NewClient(cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create summarizer: %w", err)
	}
	defer summarizer.Close()

	opts := source.FetchOptions{
		Client:        &http.Client{Timeout: cfg.RequestTimeout},
		RecencyWindow: cfg.RecencyWindow,
	}
	fetchers := make([]source.Fetcher, 0, len(sources))
	for _, s := range sources {
		fetchers = append(fetchers, source.New(s, opts))
	}

	p := &Pipeline{
		Fetchers:       fetchers,
		Summarizer:     summarizer,
		Publisher:      notion.NewClient(cfg.NotionAPIKey, cfg.NotionDatabaseID),
		Ledger:         seen,
		DocsDir:        cfg.DocsDir,
		PodcastBaseURL: cfg.PodcastBaseURL,
	}
	if cfg.OpenAIAPIKey != "" {
		p.Synthesizer = speech.NewClient(cfg.OpenAIAPIKey)
	} else {
		logger.Warn("OPENAI_API_KEY not set, audio digest disabled")
	}

	return p.Run(context.Background())
}
