// Package gemini wraps the generative model used for article summaries and
// the daily digest script.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/daigo823/ai-news-collector/internal/news"
)

const modelName = "gemini-1.5-flash"

// maxPromptChars bounds how much article text goes into one prompt.
const maxPromptChars = 6000

type Client struct {
	client *genai.Client
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// SummarizeArticle produces the markdown summary that gets published for one
// article. Output sections are fixed so page rendering stays predictable.
func (c *Client) SummarizeArticle(ctx context.Context, title, articleURL, excerpt string) (string, error) {
	prompt := fmt.Sprintf(`You are an analyst covering enterprise AI for business readers.

ARTICLE:
Title: %s
URL: %s
Excerpt: %s

Write a briefing in markdown with exactly these sections:

## Summary
Two or three sentences on what happened.

## Business Implications
- Three to five bullet points on what this means for companies adopting AI.

## Importance
One sentence rating how significant this is and why.

Keep it factual, no hype, no preamble before the first heading.`,
		title, articleURL, sanitizePromptInput(excerpt))

	return c.generate(ctx, prompt)
}

// ComposeDigestScript turns the day's processed articles into a spoken-word
// script for the audio digest. The caller guarantees articles is non-empty.
func (c *Client) ComposeDigestScript(ctx context.Context, articles []news.Article) (string, error) {
	var b strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, a.Source, a.Title)
		if a.Summary != "" {
			b.WriteString(sanitizePromptInput(a.Summary))
			b.WriteString("\n")
		}
	}

	prompt := fmt.Sprintf(`You are the host of a short daily radio show about enterprise AI news.

Today's stories:
%s

Write the narration script for today's episode. Requirements:
- Plain spoken prose only. No markdown, no headings, no stage directions.
- Open with a one-line greeting, cover each story in a few sentences,
  close with a one-line sign-off.
- Around 500 words total.`, b.String())

	return c.generate(ctx, prompt)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(modelName)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}

// sanitizePromptInput collapses whitespace and bounds the input so a single
// oversized article cannot blow up the prompt.
func sanitizePromptInput(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) > maxPromptChars {
		runes := []rune(s)
		trimmed := string(runes[:maxPromptChars])
		if idx := strings.LastIndex(trimmed, ". "); idx > 1200 {
			trimmed = trimmed[:idx+1]
		}
		s = trimmed + " [TRUNCATED]"
	}
	return s
}
