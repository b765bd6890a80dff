// Package notion publishes article and digest pages into a Notion database
// via the public REST API.
package notion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/daigo823/ai-news-collector/internal/news"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"

	// The pages API rejects requests with more than 100 children blocks.
	maxBlocks = 100

	// Rich text content is limited to 2000 characters per block.
	maxBlockTextLen = 2000
)

type Client struct {
	apiKey     string
	databaseID string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, databaseID string) *Client {
	return &Client{
		apiKey:     apiKey,
		databaseID: databaseID,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type richText struct {
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
}

func text(content string) []richText {
	var rt richText
	rt.Text.Content = content
	return []richText{rt}
}

type block struct {
	Object   string        `json:"object"`
	Type     string        `json:"type"`
	Heading2 *blockContent `json:"heading_2,omitempty"`
	Bulleted *blockContent `json:"bulleted_list_item,omitempty"`
	Para     *blockContent `json:"paragraph,omitempty"`
}

type blockContent struct {
	RichText []richText `json:"rich_text"`
}

type createPageRequest struct {
	Parent struct {
		DatabaseID string `json:"database_id"`
	} `json:"parent"`
	Properties map[string]interface{} `json:"properties"`
	Children   []block                `json:"children,omitempty"`
}

// CreateArticlePage creates one database page for a summarized article. The
// summary markdown becomes the page body.
func (c *Client) CreateArticlePage(article news.Article) error {
	props := map[string]interface{}{
		"Name": map[string]interface{}{
			"title": text(news.TruncateTitle(article.Title)),
		},
		"Source": map[string]interface{}{
			"select": map[string]string{"name": article.Source},
		},
		"Tag": map[string]interface{}{
			"select": map[string]string{"name": article.Tag},
		},
		"URL": map[string]interface{}{
			"url": article.URL,
		},
	}
	if date := NormalizePublishedDate(article.Published); date != "" {
		props["Published"] = map[string]interface{}{
			"date": map[string]string{"start": date},
		}
	}

	return c.createPage(props, BuildBlocks(article.Summary))
}

// CreateDigestPage records the day's audio digest script as its own page, so
// the episode has a readable transcript next to the articles.
func (c *Client) CreateDigestPage(script, date, episodeURL string) error {
	props := map[string]interface{}{
		"Name": map[string]interface{}{
			"title": text("📻 " + date + " AI News Podcast"),
		},
		"Source": map[string]interface{}{
			"select": map[string]string{"name": "Podcast"},
		},
		"Tag": map[string]interface{}{
			"select": map[string]string{"name": "Podcast"},
		},
		"URL": map[string]interface{}{
			"url": episodeURL,
		},
		"Published": map[string]interface{}{
			"date": map[string]string{"start": date},
		},
	}

	var blocks []block
	for _, para := range splitForBlocks(script) {
		blocks = append(blocks, paragraphBlock(para))
	}
	if len(blocks) > maxBlocks {
		blocks = blocks[:maxBlocks]
	}

	return c.createPage(props, blocks)
}

func (c *Client) createPage(props map[string]interface{}, children []block) error {
	reqBody := createPageRequest{
		Properties: props,
		Children:   children,
	}
	reqBody.Parent.DatabaseID = c.databaseID

	data, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal page request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/pages", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notion API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// BuildBlocks converts summary markdown into page blocks. Only the markdown
// the summarizer is instructed to emit is recognized: "## " headings and
// "- " bullets, everything else is a paragraph.
func BuildBlocks(summary string) []block {
	var blocks []block
	for _, raw := range strings.Split(summary, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if len(blocks) == maxBlocks {
			break
		}

		switch {
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, block{
				Object:   "block",
				Type:     "heading_2",
				Heading2: &blockContent{RichText: text(capBlockText(strings.TrimPrefix(line, "## ")))},
			})
		case strings.HasPrefix(line, "- "):
			blocks = append(blocks, block{
				Object:   "block",
				Type:     "bulleted_list_item",
				Bulleted: &blockContent{RichText: text(capBlockText(strings.TrimPrefix(line, "- ")))},
			})
		default:
			blocks = append(blocks, paragraphBlock(capBlockText(line)))
		}
	}
	return blocks
}

func paragraphBlock(content string) block {
	return block{
		Object: "block",
		Type:   "paragraph",
		Para:   &blockContent{RichText: text(content)},
	}
}

func capBlockText(s string) string {
	if len(s) <= maxBlockTextLen {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxBlockTextLen {
		return s
	}
	return string(runes[:maxBlockTextLen])
}

// splitForBlocks chunks long prose at the per-block text limit, preferring
// paragraph breaks over mid-sentence cuts.
func splitForBlocks(s string) []string {
	var out []string
	for _, para := range strings.Split(s, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		runes := []rune(para)
		for len(runes) > maxBlockTextLen {
			out = append(out, string(runes[:maxBlockTextLen]))
			runes = runes[maxBlockTextLen:]
		}
		if len(runes) > 0 {
			out = append(out, string(runes))
		}
	}
	return out
}

// NormalizePublishedDate reduces the free-form feed date string to the
// YYYY-MM-DD form the database property expects. Unparseable input yields ""
// and the property is simply omitted.
func NormalizePublishedDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	layouts := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
