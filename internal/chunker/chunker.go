package chunker

import (
	"strings"

	"github.com/google/uuid"

	"docuchat/internal/model"
)

const (
	// DefaultChunkSize is the target window size in words.
	DefaultChunkSize = 600
	// DefaultOverlap is how many words consecutive windows share.
	DefaultOverlap = 100
)

// Chunker splits extracted text into overlapping word windows. It is a pure
// function over (text, documentID) except for the chunk IDs, which are fresh
// UUIDs on every call.
type Chunker struct {
	size    int
	overlap int
}

func New(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 6
	}
	return &Chunker{size: size, overlap: overlap}
}

// Chunk splits text on whitespace and emits windows of up to size words,
// each overlapping the previous one by overlap words. Offsets are byte
// positions into the whitespace-normalized original text. Empty text yields
// an empty slice; callers must treat that as an ingestion failure.
func (c *Chunker) Chunk(text, documentID string) []model.DocumentChunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []model.DocumentChunk
	start := 0
	index := 0
	for start < len(words) {
		end := start + c.size
		if end > len(words) {
			end = len(words)
		}
		content := strings.Join(words[start:end], " ")

		startChar := joinedLen(words[:start])
		if start > 0 {
			startChar++ // the space separating the prefix from this window
		}

		chunks = append(chunks, model.DocumentChunk{
			ID:         uuid.NewString(),
			DocumentID: documentID,
			Content:    content,
			ChunkIndex: index,
			StartChar:  startChar,
			EndChar:    startChar + len(content),
		})

		// The final window already covers the tail; advancing would only
		// emit a redundant duplicate.
		if end >= len(words) {
			break
		}
		start = end - c.overlap
		index++
	}
	return chunks
}

// joinedLen is len(strings.Join(words, " ")) without building the string.
func joinedLen(words []string) int {
	if len(words) == 0 {
		return 0
	}
	n := len(words) - 1
	for _, w := range words {
		n += len(w)
	}
	return n
}
