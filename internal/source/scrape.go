package source

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/daigo823/ai-news-collector/internal/ledger"
	"github.com/daigo823/ai-news-collector/internal/news"
)

// maxScrapeArticles caps how many links one scrape run yields. Listing pages
// carry the full archive; anything below the fold is old content we would
// only re-discover, and the recency gate cannot help because scraped pages
// have no timestamps.
const maxScrapeArticles = 10

// excludedPathParts marks links on a listing page that are navigation or
// non-article content rather than posts.
var excludedPathParts = []string{
	"#",
	"?page=",
	"/podcast",
	"/video",
	"/category",
}

// ScrapeFetcher extracts article links from an HTML listing page for sources
// that publish no feed. Only the listing page is fetched; article bodies are
// not, so the excerpt is a provenance line and the relevance filter runs on
// the title alone.
type ScrapeFetcher struct {
	cfg  Config
	opts FetchOptions
}

func (s *ScrapeFetcher) Name() string { return s.cfg.Name }

func (s *ScrapeFetcher) Fetch(seen *ledger.Ledger) ([]news.Article, error) {
	base, err := url.Parse(s.cfg.ScrapeURL)
	if err != nil {
		return nil, fmt.Errorf("invalid scrape url: %w", err)
	}

	doc, err := s.fetchDocument()
	if err != nil {
		return nil, err
	}

	var articles []news.Article
	inPage := make(map[string]struct{})

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		link := resolveArticleLink(base, href)
		if link == "" {
			return true
		}
		if _, dup := inPage[link]; dup {
			return true
		}
		inPage[link] = struct{}{}

		id := news.ArticleID(link)
		if seen.Contains(id) {
			return true
		}

		title := strings.TrimSpace(sel.Text())
		if len(title) < 10 || len(title) > 120 {
			title = titleFromPath(link)
		}
		if title == "" {
			return true
		}

		if !MatchesKeywords(title, s.cfg.FilterKeywords) {
			return true
		}

		articles = append(articles, news.Article{
			ID:         id,
			Source:     s.cfg.Name,
			Tag:        s.cfg.Tag,
			Title:      news.TruncateTitle(title),
			URL:        link,
			RawExcerpt: fmt.Sprintf("Article from %s: %s", s.cfg.Name, title),
		})
		return len(articles) < maxScrapeArticles
	})

	return articles, nil
}

func (s *ScrapeFetcher) fetchDocument() (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, s.cfg.ScrapeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build scrape request: %w", err)
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)

	resp, err := s.opts.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}
	return doc, nil
}

// resolveArticleLink normalizes href against the listing page and returns the
// absolute link, or "" when the href does not point at an article on the same
// site.
func resolveArticleLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	for _, part := range excludedPathParts {
		if strings.Contains(href, part) {
			return ""
		}
	}

	u, err := base.Parse(href)
	if err != nil {
		return ""
	}
	if u.Host != base.Host {
		return ""
	}
	link := u.String()
	if link == base.String() || strings.TrimSuffix(link, "/") == strings.TrimSuffix(base.String(), "/") {
		return ""
	}
	if u.Path == "" || u.Path == "/" {
		return ""
	}
	return link
}

// titleFromPath falls back to humanizing the last meaningful path segment of
// the article link, e.g. /posts/why-agents-win/ becomes "Why Agents Win".
func titleFromPath(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	slug := segments[len(segments)-1]
	if slug == "" && len(segments) > 1 {
		slug = segments[len(segments)-2]
	}
	if slug == "" {
		return ""
	}

	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.TrimSpace(strings.Join(words, " "))
}
