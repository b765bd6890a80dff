package source

import (
	"strings"
	"time"
)

// MatchesKeywords reports whether text passes a source's relevance filter.
// An empty keyword list means no filter is configured and everything passes.
// Matching is case-insensitive raw substring search, not tokenized: a keyword
// can match inside an unrelated word. That is a known precision/recall
// tradeoff and must stay this way.
func MatchesKeywords(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	haystack := strings.ToLower(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// IsRecent applies the recency gate to a feed entry. The published timestamp
// is checked before updated; the first one present decides. Entries with no
// parseable timestamp at all are accepted, never silently dropped.
func IsRecent(published, updated *time.Time, window time.Duration, now time.Time) bool {
	for _, t := range []*time.Time{published, updated} {
		if t != nil {
			return now.Sub(*t) < window
		}
	}
	return true
}
