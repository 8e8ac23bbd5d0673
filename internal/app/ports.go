package app

import (
	"context"

	"docuchat/internal/model"
)

// The orchestrators depend on these narrow interfaces so the composition
// root decides the concrete wiring and tests can substitute fakes.

// TextExtractor yields the raw text of an uploaded file.
type TextExtractor interface {
	Extract(content []byte) (string, error)
}

// Chunker splits extracted text into the document's retrieval windows.
type Chunker interface {
	Chunk(text, documentID string) []model.DocumentChunk
}

// Summarizer derives the short document summary shown in listings.
type Summarizer interface {
	Summarize(text string) string
}

// VectorIndex is the derived similarity-search copy of the chunk data. Its
// operations degrade (false / empty) instead of erroring; it is never
// authoritative for which documents exist.
type VectorIndex interface {
	Add(ctx context.Context, doc *model.Document) bool
	Search(ctx context.Context, query string, limit int, documentIDs []string) []model.SourceInfo
	Delete(documentID string) bool
	CountDocuments() int
}

// MetadataStore owns the authoritative document records.
type MetadataStore interface {
	Create(doc *model.Document) error
	GetByID(id string) (*model.Document, error)
	List() ([]model.DocumentSummary, error)
	Delete(id string) error
	Count() (int64, error)
}

// FileStore persists and removes the raw uploaded bytes.
type FileStore interface {
	Save(originalFilename string, content []byte) (string, error)
	Delete(path string) bool
}

// AnswerGenerator produces a natural-language answer from ranked sources.
type AnswerGenerator interface {
	Generate(ctx context.Context, question string, sources []model.SourceInfo) (string, error)
}

// ExchangePublisher hands finished exchanges to the async persistence queue.
type ExchangePublisher interface {
	Publish(ctx context.Context, exchange model.ChatExchange) error
}

// StatsInvalidator drops cached listing/count values after a mutation.
type StatsInvalidator interface {
	Invalidate(ctx context.Context) error
}
