package model

// DocumentChunk is one overlapping word window of a document's extracted
// text, the unit of retrieval. StartChar and EndChar are offsets into the
// original extracted text, not into the chunk content.
type DocumentChunk struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	DocumentID string `gorm:"size:36;not null;index" json:"document_id"`
	Content    string `gorm:"type:text;not null" json:"content"`
	ChunkIndex int    `gorm:"not null" json:"chunk_index"`
	StartChar  int    `gorm:"not null" json:"start_char"`
	EndChar    int    `gorm:"not null" json:"end_char"`
}

// ChunkMeta is the fixed per-chunk metadata record stored alongside each
// vector index entry. Keeping it a struct instead of a loose map avoids
// silent key typos at the index boundary.
type ChunkMeta struct {
	DocumentID   string `json:"document_id"`
	DocumentName string `json:"document_name"`
	ChunkIndex   int    `json:"chunk_index"`
	StartChar    int    `json:"start_char"`
	EndChar      int    `json:"end_char"`
	FileType     string `json:"file_type"`
}
