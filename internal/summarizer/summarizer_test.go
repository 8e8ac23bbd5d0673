package summarizer

import (
	"strings"
	"testing"
)

func TestSummarizeTakesLeadSentences(t *testing.T) {
	s := NewLeadSentences()
	text := "First sentence. Second sentence. Third sentence. Fourth sentence. Fifth sentence."

	got := s.Summarize(text)
	want := "First sentence. Second sentence. Third sentence."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSummarizeAppendsTrailingPeriod(t *testing.T) {
	s := NewLeadSentences()
	got := s.Summarize("a short fragment without punctuation")
	if !strings.HasSuffix(got, ".") {
		t.Errorf("expected trailing period, got %q", got)
	}
}

func TestSummarizeTruncatesLongText(t *testing.T) {
	s := NewLeadSentences()
	got := s.Summarize(strings.Repeat("x", 1000))
	if len(got) > 300 {
		t.Errorf("summary length %d exceeds 300", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis on truncated summary, got %q", got[len(got)-10:])
	}
}

func TestSummarizeEmptyTextFallsBack(t *testing.T) {
	s := NewLeadSentences()
	if got := s.Summarize("   "); got != fallbackText {
		t.Errorf("expected fallback text, got %q", got)
	}
}
