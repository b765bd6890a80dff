// Package source turns configured news sources into uniform article records.
//
// A source is either a syndication feed or a scrape target; both variants
// produce the same Article shape and consult the ledger read-only so a run
// only ever sees items it has not processed before.
package source

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the static, read-only description of one source.
// FeedURL selects the feed variant; a source without a FeedURL must set
// ScrapeURL and is handled by the scrape variant.
type Config struct {
	Name           string   `yaml:"name"`
	Tag            string   `yaml:"tag"`
	FeedURL        string   `yaml:"feed_url"`
	ScrapeURL      string   `yaml:"scrape_url"`
	FilterKeywords []string `yaml:"filter_keywords"`
}

type sourcesFile struct {
	Sources []Config `yaml:"sources"`
}

// LoadSources reads the source list from a YAML file. When the file does not
// exist the built-in default list is used, so the binary works without any
// config checked out next to it.
func LoadSources(path string) ([]Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return DefaultSources(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open sources config: %w", err)
	}
	defer f.Close()

	var cfg sourcesFile
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sources config: %w", err)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("sources config %s lists no sources", path)
	}
	for _, s := range cfg.Sources {
		if s.FeedURL == "" && s.ScrapeURL == "" {
			return nil, fmt.Errorf("source %q has neither feed_url nor scrape_url", s.Name)
		}
	}
	return cfg.Sources, nil
}

// DefaultSources is the fixed list the pipeline was built around: AI vendor
// blogs and enterprise-AI media, filtered to enterprise/product coverage.
func DefaultSources() []Config {
	return []Config{
		{
			Name: "Anthropic Blog",
			// The official RSS was retired; a community-maintained mirror
			// feed is used instead.
			FeedURL: "https://raw.githubusercontent.com/Olshansk/rss-feeds/refs/heads/main/feeds/feed_anthropic_news.xml",
			Tag:     "Anthropic",
			FilterKeywords: []string{
				"enterprise", "agent", "Claude", "API", "deployment", "business",
				"partner", "case study", "customers", "tools", "model",
			},
		},
		{
			Name:    "OpenAI Blog",
			FeedURL: "https://openai.com/blog/rss.xml",
			Tag:     "OpenAI",
			FilterKeywords: []string{
				"enterprise", "agent", "GPT", "API", "deployment", "business",
				"partner", "case study", "customers", "o1", "o3",
			},
		},
		{
			Name:    "Google DeepMind Blog",
			FeedURL: "https://deepmind.google/blog/rss.xml",
			Tag:     "Google",
			FilterKeywords: []string{
				"enterprise", "agent", "Gemini", "API", "deployment", "business",
				"partner", "Vertex", "application", "product",
			},
		},
		{
			Name: "a16z Newsletter",
			// No feed anymore, scraped from the news listing page.
			ScrapeURL: "https://a16z.com/news-content/",
			Tag:       "a16z",
			FilterKeywords: []string{
				"AI", "LLM", "machine learning", "foundation model",
				"artificial intelligence", "agent",
			},
		},
		{
			Name:    "Salesforce Engineering Blog",
			FeedURL: "https://engineering.salesforce.com/feed/",
			Tag:     "Salesforce",
			FilterKeywords: []string{
				"AI", "LLM", "Agentforce", "machine learning", "agent",
				"artificial intelligence",
			},
		},
		{
			Name:    "Salesforce Blog",
			FeedURL: "https://www.salesforce.com/blog/feed/",
			Tag:     "Salesforce",
			FilterKeywords: []string{
				"AI", "LLM", "Agentforce", "machine learning", "agent",
				"artificial intelligence",
			},
		},
		{
			Name:    "VentureBeat AI",
			FeedURL: "https://venturebeat.com/category/ai/feed/",
			Tag:     "VentureBeat",
			FilterKeywords: []string{
				"enterprise", "agent", "agentic", "deployment", "adoption",
				"case study", "ROI", "implementation", "CTO", "CEO", "strategy",
				"Salesforce", "Microsoft", "Google", "AWS", "SAP", "ServiceNow",
				"workflow", "automation",
			},
		},
	}
}

// FetchOptions carries the shared HTTP plumbing and policy knobs for all
// fetchers. Tests inject a client pointed at httptest servers.
type FetchOptions struct {
	Client        *http.Client
	UserAgent     string
	RecencyWindow time.Duration
	Now           func() time.Time
}

const defaultUserAgent = "Mozilla/5.0 (compatible; AI-News-Collector/1.0)"

// DefaultRecencyWindow is how far back feed entries are accepted.
const DefaultRecencyWindow = 72 * time.Hour

func (o FetchOptions) withDefaults() FetchOptions {
	if o.Client == nil {
		o.Client = &http.Client{Timeout: 20 * time.Second}
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.RecencyWindow <= 0 {
		o.RecencyWindow = DefaultRecencyWindow
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// New selects the fetch variant for cfg.
func New(cfg Config, opts FetchOptions) Fetcher {
	opts = opts.withDefaults()
	if cfg.FeedURL != "" {
		return &FeedFetcher{cfg: cfg, opts: opts}
	}
	return &ScrapeFetcher{cfg: cfg, opts: opts}
}
