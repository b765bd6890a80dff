package source

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/daigo823/ai-news-collector/internal/news"
)

func serveListing(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newScrapeFetcher(srv *httptest.Server, keywords []string) Fetcher {
	return New(
		Config{Name: "Test Site", Tag: "Test", ScrapeURL: srv.URL + "/news/", FilterKeywords: keywords},
		FetchOptions{Client: srv.Client()},
	)
}

func TestScrapeFetcherExtractsArticleLinks(t *testing.T) {
	srv := serveListing(t, `<html><body>
		<a href="/posts/enterprise-ai-wave">The enterprise AI wave arrives</a>
		<a href="/posts/foundation-models-2026">Foundation models in 2026 review</a>
	</body></html>`)
	f := newScrapeFetcher(srv, nil)

	articles, err := f.Fetch(emptyLedger(t))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d: %+v", len(articles), articles)
	}
	if articles[0].Title != "The enterprise AI wave arrives" {
		t.Errorf("anchor text not used as title: %q", articles[0].Title)
	}
	if articles[0].Published != "" {
		t.Errorf("scraped article must have no published date, got %q", articles[0].Published)
	}
	if articles[0].RawExcerpt == "" {
		t.Error("scraped article must carry a provenance excerpt")
	}
}

func TestScrapeFetcherExcludesNavigationLinks(t *testing.T) {
	srv := serveListing(t, `<html><body>
		<a href="#top">Back to top anchor link</a>
		<a href="/news/?page=2">Next page of the archive</a>
		<a href="/podcast/episode-1">A podcast episode link here</a>
		<a href="/video/launch-event">A video recording link here</a>
		<a href="/category/ai">The AI category listing page</a>
		<a href="https://other.example.com/post">Offsite syndicated article</a>
		<a href="/posts/real-article-here">A real article to keep here</a>
	</body></html>`)
	f := newScrapeFetcher(srv, nil)

	articles, err := f.Fetch(emptyLedger(t))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected only the real article, got %d: %+v", len(articles), articles)
	}
	if !strings.HasSuffix(articles[0].URL, "/posts/real-article-here") {
		t.Errorf("wrong article survived: %s", articles[0].URL)
	}
}

func TestScrapeFetcherTitleFallbackFromPath(t *testing.T) {
	// Anchor text too short to be a usable title.
	srv := serveListing(t, `<html><body>
		<a href="/posts/why-agents-win/">Read</a>
	</body></html>`)
	f := newScrapeFetcher(srv, nil)

	articles, err := f.Fetch(emptyLedger(t))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Title != "Why Agents Win" {
		t.Errorf("expected humanized slug title, got %q", articles[0].Title)
	}
}

func TestScrapeFetcherDeduplicatesWithinPage(t *testing.T) {
	srv := serveListing(t, `<html><body>
		<a href="/posts/one-big-story">The one big story of today</a>
		<a href="/posts/one-big-story">The one big story of today</a>
	</body></html>`)
	f := newScrapeFetcher(srv, nil)

	articles, err := f.Fetch(emptyLedger(t))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("expected in-page dedup to 1 article, got %d", len(articles))
	}
}

func TestScrapeFetcherSkipsSeenLinks(t *testing.T) {
	srv := serveListing(t, `<html><body>
		<a href="/posts/already-processed">Already processed article link</a>
		<a href="/posts/brand-new-post">Brand new article posted today</a>
	</body></html>`)
	f := newScrapeFetcher(srv, nil)

	seen := emptyLedger(t)
	seen.Add(news.ArticleID(srv.URL + "/posts/already-processed"))

	articles, err := f.Fetch(seen)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 new article, got %d", len(articles))
	}
	if !strings.HasSuffix(articles[0].URL, "/posts/brand-new-post") {
		t.Errorf("wrong article survived: %s", articles[0].URL)
	}
}

func TestScrapeFetcherCapsPerRun(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, `<a href="/posts/story-%02d">Listing page story number %02d</a>`, i, i)
	}
	b.WriteString("</body></html>")

	srv := serveListing(t, b.String())
	f := newScrapeFetcher(srv, nil)

	articles, err := f.Fetch(emptyLedger(t))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != maxScrapeArticles {
		t.Errorf("expected cap of %d articles, got %d", maxScrapeArticles, len(articles))
	}
}

func TestScrapeFetcherKeywordFilterOnTitle(t *testing.T) {
	srv := serveListing(t, `<html><body>
		<a href="/posts/ai-agents-everywhere">AI agents are now everywhere</a>
		<a href="/posts/crypto-markets-today">Crypto markets wrapped up today</a>
	</body></html>`)
	f := newScrapeFetcher(srv, []string{"AI", "agent"})

	articles, err := f.Fetch(emptyLedger(t))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 matching article, got %d", len(articles))
	}
	if !strings.HasSuffix(articles[0].URL, "/posts/ai-agents-everywhere") {
		t.Errorf("wrong article matched: %s", articles[0].URL)
	}
}
