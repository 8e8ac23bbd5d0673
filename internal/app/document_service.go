package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docuchat/internal/model"
)

// summaryChunkCount is how many leading chunks feed the summary heuristic.
const summaryChunkCount = 3

// DocumentService coordinates file storage, chunking, vector-index insertion
// and metadata persistence into one logical transaction with compensating
// rollback, and mirrors that on deletion.
type DocumentService struct {
	extractor  TextExtractor
	chunker    Chunker
	summarizer Summarizer
	index      VectorIndex
	store      MetadataStore
	files      FileStore
	stats      StatsInvalidator // optional
}

func NewDocumentService(
	extractor TextExtractor,
	chunker Chunker,
	summarizer Summarizer,
	index VectorIndex,
	store MetadataStore,
	files FileStore,
	stats StatsInvalidator,
) *DocumentService {
	return &DocumentService{
		extractor:  extractor,
		chunker:    chunker,
		summarizer: summarizer,
		index:      index,
		store:      store,
		files:      files,
		stats:      stats,
	}
}

// Ingest processes an uploaded file end to end. Any step failure undoes all
// prior steps in reverse order, so a failed ingestion leaves no trace in
// the file store, the vector index or the metadata store.
func (s *DocumentService) Ingest(ctx context.Context, content []byte, originalFilename string) (*model.Document, error) {
	if len(content) == 0 || strings.TrimSpace(originalFilename) == "" {
		return nil, ErrInvalidInput
	}

	var undo undoStack

	filePath, err := s.files.Save(originalFilename, content)
	if err != nil {
		return nil, fmt.Errorf("save uploaded file: %w", err)
	}
	undo.push("saved file", func() error {
		if !s.files.Delete(filePath) {
			return fmt.Errorf("file %s not removed", filePath)
		}
		return nil
	})

	text, err := s.extractor.Extract(content)
	if err != nil {
		undo.unwind()
		return nil, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		undo.unwind()
		return nil, ErrNoExtractableText
	}

	docID := uuid.NewString()
	chunks := s.chunker.Chunk(text, docID)
	if len(chunks) == 0 {
		undo.unwind()
		return nil, ErrNoExtractableText
	}

	doc := &model.Document{
		ID:        docID,
		Name:      originalFilename,
		FileType:  fileType(originalFilename),
		FilePath:  filePath,
		Summary:   s.summarizer.Summarize(leadText(chunks)),
		Chunks:    chunks,
		CreatedAt: time.Now(),
		FileSize:  int64(len(content)),
	}

	if !s.index.Add(ctx, doc) {
		undo.unwind()
		return nil, ErrIndexUnavailable
	}
	undo.push("index entries", func() error {
		if !s.index.Delete(docID) {
			return fmt.Errorf("index entries for %s not removed", docID)
		}
		return nil
	})

	if err := s.store.Create(doc); err != nil {
		undo.unwind()
		return nil, fmt.Errorf("persist document metadata: %w", err)
	}

	s.invalidateStats(ctx)
	log.Printf("ingested document %s (%s) with %d chunks", doc.ID, doc.Name, len(doc.Chunks))
	return doc, nil
}

// Delete removes all three representations of a document: vector entries,
// raw file, metadata record, in that order. Unlike ingestion the steps are
// best-effort; a failed step is logged and the rest still run, because a
// partially deleted document is better than a fully retained one.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.store.GetByID(id)
	if err != nil {
		return fmt.Errorf("look up document: %w", err)
	}
	if doc == nil {
		return ErrDocumentNotFound
	}

	if !s.index.Delete(id) {
		log.Printf("delete document %s: no vector entries removed", id)
	}
	if !s.files.Delete(doc.FilePath) {
		log.Printf("delete document %s: file %s not removed", id, doc.FilePath)
	}
	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("delete document metadata: %w", err)
	}

	s.invalidateStats(ctx)
	log.Printf("deleted document %s (%s)", id, doc.Name)
	return nil
}

// Get returns the document or ErrDocumentNotFound.
func (s *DocumentService) Get(id string) (*model.Document, error) {
	doc, err := s.store.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("look up document: %w", err)
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// List returns listing summaries for all documents, newest first.
func (s *DocumentService) List() ([]model.DocumentSummary, error) {
	return s.store.List()
}

// Count returns the authoritative number of documents.
func (s *DocumentService) Count() (int64, error) {
	return s.store.Count()
}

func (s *DocumentService) invalidateStats(ctx context.Context) {
	if s.stats == nil {
		return
	}
	if err := s.stats.Invalidate(ctx); err != nil {
		log.Printf("invalidate stats cache failed: %v", err)
	}
}

// leadText joins the first few chunks as summarizer input.
func leadText(chunks []model.DocumentChunk) string {
	n := summaryChunkCount
	if n > len(chunks) {
		n = len(chunks)
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = chunks[i].Content
	}
	return strings.Join(parts, " ")
}

func fileType(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return "pdf"
	}
	return ext
}
