package summarizer

import "strings"

const (
	maxSentences = 3
	maxLength    = 300
	fallbackText = "Document content extracted successfully."
)

// Summarizer derives a short summary from document text. The lead-sentence
// heuristic below is deliberately cheap; swapping in a model-backed
// implementation only requires satisfying this interface.
type Summarizer interface {
	Summarize(text string) string
}

// LeadSentences extracts up to the first three sentences of the text,
// truncated to 300 characters.
type LeadSentences struct{}

func NewLeadSentences() *LeadSentences {
	return &LeadSentences{}
}

func (s *LeadSentences) Summarize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallbackText
	}

	sentences := strings.Split(text, ". ")
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}

	summary := strings.Join(sentences, ". ")
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	if len(summary) > maxLength {
		summary = summary[:maxLength-3] + "..."
	}
	if summary == "." {
		return fallbackText
	}
	return summary
}
