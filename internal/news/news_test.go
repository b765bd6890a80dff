package news

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestArticleIDDeterministic(t *testing.T) {
	a := ArticleID("https://example.com/post")
	b := ArticleID("https://example.com/post")
	if a != b {
		t.Errorf("same URL produced different ids: %s vs %s", a, b)
	}
	if len(a) != 32 {
		t.Errorf("expected 32 hex chars, got %d: %s", len(a), a)
	}
}

func TestArticleIDDistinct(t *testing.T) {
	a := ArticleID("https://example.com/post")
	b := ArticleID("https://example.com/post/")
	if a == b {
		t.Error("different URLs produced the same id")
	}
}

func TestTruncateTitle(t *testing.T) {
	short := "A short title"
	if got := TruncateTitle(short); got != short {
		t.Errorf("short title changed: %q", got)
	}

	long := strings.Repeat("x", MaxTitleLen+50)
	got := TruncateTitle(long)
	if len(got) != MaxTitleLen {
		t.Errorf("expected %d bytes, got %d", MaxTitleLen, len(got))
	}
}

func TestTruncateExcerptKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("日", MaxExcerptLen) // 3 bytes per rune
	got := TruncateExcerpt(long)
	if len(got) > MaxExcerptLen {
		t.Errorf("excerpt exceeds cap: %d bytes", len(got))
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a rune")
	}
}
