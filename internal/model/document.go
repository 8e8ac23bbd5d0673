package model

import "time"

// Document is the unit of ingestion and deletion. The metadata store owns
// the authoritative set of these records; the vector index only holds a
// derived copy of the chunk data for similarity search.
type Document struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	Name      string          `gorm:"size:256;not null" json:"name"`
	FileType  string          `gorm:"size:16;not null" json:"file_type"`
	FilePath  string          `gorm:"size:512;not null" json:"file_path"`
	Summary   string          `gorm:"type:text" json:"summary"`
	Chunks    []DocumentChunk `gorm:"foreignKey:DocumentID" json:"chunks"`
	CreatedAt time.Time       `json:"created_at"`
	FileSize  int64           `json:"file_size"`
}

// DocumentSummary is the listing projection of a Document, without chunk
// contents.
type DocumentSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FileType   string    `json:"file_type"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
	FileSize   int64     `json:"file_size"`
	ChunkCount int       `json:"chunk_count"`
}

// Summarize projects the document into its listing form.
func (d *Document) Summarize() DocumentSummary {
	return DocumentSummary{
		ID:         d.ID,
		Name:       d.Name,
		FileType:   d.FileType,
		Summary:    d.Summary,
		CreatedAt:  d.CreatedAt,
		FileSize:   d.FileSize,
		ChunkCount: len(d.Chunks),
	}
}
