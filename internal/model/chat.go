package model

import "time"

// SourceInfo is the retrieval-time projection of a chunk plus its relevance
// score. Higher score means more relevant; the score is a clamped transform
// of cosine distance, not a probability.
type SourceInfo struct {
	DocumentID     string  `json:"document_id"`
	DocumentName   string  `json:"document_name"`
	ChunkContent   string  `json:"chunk_content"`
	RelevanceScore float64 `json:"relevance_score"`
}

// ChatResponse is the caller-facing result of a question: the answer plus
// the ranked sources it was grounded on.
type ChatResponse struct {
	Answer    string       `json:"answer"`
	Sources   []SourceInfo `json:"sources"`
	Timestamp time.Time    `json:"timestamp"`
}

// ChatExchange is one persisted question/answer record, written
// asynchronously by the persistence worker.
type ChatExchange struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Question    string    `gorm:"type:text;not null" json:"question"`
	Answer      string    `gorm:"type:text;not null" json:"answer"`
	SourceCount int       `json:"source_count"`
	CreatedAt   time.Time `json:"created_at"`
}
