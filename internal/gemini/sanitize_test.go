package gemini

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizePromptInputCollapsesWhitespace(t *testing.T) {
	in := "line one\r\n\r\n   line\t\ttwo  "
	got := sanitizePromptInput(in)
	if got != "line one line two" {
		t.Errorf("whitespace not collapsed: %q", got)
	}
}

func TestSanitizePromptInputTruncatesLongInput(t *testing.T) {
	in := strings.Repeat("Some sentence here. ", 1000)
	got := sanitizePromptInput(in)

	if utf8.RuneCountInString(got) > maxPromptChars+len(" [TRUNCATED]") {
		t.Errorf("input not bounded: %d runes", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "[TRUNCATED]") {
		t.Error("truncated input must be marked")
	}
}

func TestSanitizePromptInputShortInputUntouched(t *testing.T) {
	in := "A short excerpt."
	if got := sanitizePromptInput(in); got != in {
		t.Errorf("short input changed: %q", got)
	}
}
