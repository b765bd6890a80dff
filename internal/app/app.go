// Package app wires the collection pipeline together and runs one pass:
// fetch, summarize, publish, checkpoint, then the daily audio digest.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/daigo823/ai-news-collector/internal/ledger"
	"github.com/daigo823/ai-news-collector/internal/logger"
	"github.com/daigo823/ai-news-collector/internal/metrics"
	"github.com/daigo823/ai-news-collector/internal/news"
	"github.com/daigo823/ai-news-collector/internal/podcast"
	"github.com/daigo823/ai-news-collector/internal/source"
)

// Summarizer generates article summaries and the digest narration.
type Summarizer interface {
	SummarizeArticle(ctx context.Context, title, url, excerpt string) (string, error)
	ComposeDigestScript(ctx context.Context, articles []news.Article) (string, error)
}

// Publisher creates pages for articles and the daily digest.
type Publisher interface {
	CreateArticlePage(article news.Article) error
	CreateDigestPage(script, date, episodeURL string) error
}

// Synthesizer renders the digest script as MP3 audio.
type Synthesizer interface {
	Synthesize(script string) ([]byte, error)
}

type Pipeline struct {
	Fetchers    []source.Fetcher
	Summarizer  Summarizer
	Publisher   Publisher
	Synthesizer Synthesizer // nil disables the digest stage
	Ledger      *ledger.Ledger

	DocsDir        string
	PodcastBaseURL string

	// Now is replaceable in tests; zero value means time.Now.
	Now func() time.Time
}

// Run executes one full pipeline pass. One article failing, or one whole
// source failing, never stops the rest; an article only enters the ledger
// after its page was actually created, so failed items come back next run.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()

	collected := p.collect()
	processed := p.process(ctx, collected)

	if err := p.Ledger.Save(); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	logger.Info("ledger saved", "total_seen", p.Ledger.Len())

	p.runDigest(ctx, processed)

	metrics.Global.RecordRunDuration(time.Since(start))
	metrics.Global.SetLastRun()
	logger.Info("run complete",
		"collected", len(collected),
		"published", len(processed),
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func (p *Pipeline) collect() []news.Article {
	var collected []news.Article
	for _, f := range p.Fetchers {
		articles, err := f.Fetch(p.Ledger)
		if err != nil {
			logger.Error("source fetch failed", "source", f.Name(), "error", err)
			metrics.Global.IncrementSourcesFailed()
			continue
		}
		logger.Info("source fetched", "source", f.Name(), "new_articles", len(articles))
		collected = append(collected, articles...)
	}
	metrics.Global.AddArticlesCollected(len(collected))
	return collected
}

func (p *Pipeline) process(ctx context.Context, collected []news.Article) []news.Article {
	var processed []news.Article
	for _, article := range collected {
		summary, err := p.Summarizer.SummarizeArticle(ctx, article.Title, article.URL, article.RawExcerpt)
		if err != nil {
			// The article is still worth a page; publish it with a marker
			// instead of losing it.
			logger.Error("summary failed", "title", article.Title, "error", err)
			metrics.Global.IncrementSummariesFailed()
			summary = "Summary generation failed: " + err.Error()
		}
		article.Summary = summary

		if err := p.Publisher.CreateArticlePage(article); err != nil {
			logger.Error("publish failed", "title", article.Title, "error", err)
			metrics.Global.IncrementPublishesFailed()
			continue
		}

		p.Ledger.Add(article.ID)
		processed = append(processed, article)
		metrics.Global.IncrementArticlesPublished()
		logger.Info("article published", "source", article.Source, "title", article.Title)
	}
	return processed
}

// runDigest produces the day's audio episode from the articles published in
// this run. Every failure here is logged and swallowed: the digest is an
// extra on top of an already-checkpointed run.
func (p *Pipeline) runDigest(ctx context.Context, processed []news.Article) {
	if p.Synthesizer == nil {
		logger.Debug("digest disabled, no synthesizer configured")
		return
	}
	if len(processed) == 0 {
		logger.Info("no new articles, skipping digest")
		return
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	date := now().Format("2006-01-02")

	script, err := p.Summarizer.ComposeDigestScript(ctx, processed)
	if err != nil {
		logger.Error("digest script failed", "error", err)
		return
	}

	audio, err := p.Synthesizer.Synthesize(script)
	if err != nil {
		logger.Error("digest synthesis failed", "error", err)
		return
	}

	name, err := podcast.SaveEpisode(p.DocsDir, date, audio)
	if err != nil {
		logger.Error("episode save failed", "error", err)
		return
	}
	logger.Info("episode saved", "file", name, "bytes", len(audio))

	episodeURL := p.PodcastBaseURL + "/" + name
	if err := p.Publisher.CreateDigestPage(script, date, episodeURL); err != nil {
		logger.Error("digest page failed", "error", err)
	}

	if err := podcast.RegenerateFeed(p.DocsDir, p.PodcastBaseURL); err != nil {
		logger.Error("feed regeneration failed", "error", err)
		return
	}
	metrics.Global.IncrementDigestsGenerated()
	logger.Info("digest published", "date", date)
}
