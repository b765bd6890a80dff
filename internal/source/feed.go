package source

import (
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"

	"github.com/daigo823/ai-news-collector/internal/ledger"
	"github.com/daigo823/ai-news-collector/internal/news"
)

// Fetcher produces the not-yet-seen articles for one configured source.
// Implementations consult the ledger read-only and never mutate it.
type Fetcher interface {
	Name() string
	Fetch(seen *ledger.Ledger) ([]news.Article, error)
}

// FeedFetcher pulls a syndication feed and normalizes its entries.
type FeedFetcher struct {
	cfg  Config
	opts FetchOptions
}

func (f *FeedFetcher) Name() string { return f.cfg.Name }

// Fetch downloads and parses the feed, then applies, in order: link
// presence, ledger dedup, the recency gate and the relevance filter.
// Excerpts are capped before the articles are returned.
func (f *FeedFetcher) Fetch(seen *ledger.Ledger) ([]news.Article, error) {
	feed, err := f.fetchFeed()
	if err != nil {
		return nil, err
	}

	var articles []news.Article
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		id := news.ArticleID(item.Link)
		if seen.Contains(id) {
			continue
		}

		if !IsRecent(item.PublishedParsed, item.UpdatedParsed, f.opts.RecencyWindow, f.opts.Now()) {
			continue
		}

		title := item.Title
		if title == "" {
			title = "(no title)"
		}
		body := item.Description
		if item.Content != "" {
			body = item.Content
		}

		if !MatchesKeywords(title+" "+body, f.cfg.FilterKeywords) {
			continue
		}

		articles = append(articles, news.Article{
			ID:         id,
			Source:     f.cfg.Name,
			Tag:        f.cfg.Tag,
			Title:      title,
			URL:        item.Link,
			RawExcerpt: news.TruncateExcerpt(body),
			Published:  item.Published,
		})
	}
	return articles, nil
}

func (f *FeedFetcher) fetchFeed() (*gofeed.Feed, error) {
	req, err := http.NewRequest(http.MethodGet, f.cfg.FeedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := f.opts.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed fetch returned status %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed, nil
}
