// Package news defines the article model shared by the whole pipeline.
package news

import (
	"crypto/md5"
	"encoding/hex"
)

const (
	// MaxTitleLen is the display cap applied at the publishing boundary.
	// Identity is never computed from the truncated title.
	MaxTitleLen = 200

	// MaxExcerptLen bounds the text handed to the summarizer. Adapters must
	// apply it before an Article leaves them.
	MaxExcerptLen = 3000
)

// Article is one collected item. Immutable after creation except for Summary,
// which is attached once summarization succeeds.
type Article struct {
	ID         string
	Source     string
	Tag        string
	Title      string
	URL        string
	RawExcerpt string
	Published  string // freeform date string from the source; may be empty
	Summary    string
}

// ArticleID returns the stable identifier for a canonical URL. Same URL,
// same ID, regardless of which source produced it.
func ArticleID(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// TruncateTitle caps a title for display.
func TruncateTitle(title string) string {
	return truncate(title, MaxTitleLen)
}

// TruncateExcerpt caps excerpt text before it leaves a source adapter.
func TruncateExcerpt(text string) string {
	return truncate(text, MaxExcerptLen)
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	size := 0
	for i, r := range s {
		size += len(string(r))
		if size > max {
			return s[:i]
		}
	}
	return s
}
