package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat/internal/chunker"
	"docuchat/internal/model"
	"docuchat/internal/summarizer"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(_ []byte) (string, error) {
	return f.text, f.err
}

type fakeIndex struct {
	addFails bool
	docs     map[string]*model.Document
	results  []model.SourceInfo
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: make(map[string]*model.Document)}
}

func (f *fakeIndex) Add(_ context.Context, doc *model.Document) bool {
	if f.addFails {
		return false
	}
	f.docs[doc.ID] = doc
	return true
}

func (f *fakeIndex) Search(_ context.Context, _ string, limit int, _ []string) []model.SourceInfo {
	if limit < len(f.results) {
		return f.results[:limit]
	}
	return f.results
}

func (f *fakeIndex) Delete(documentID string) bool {
	if _, ok := f.docs[documentID]; !ok {
		return false
	}
	delete(f.docs, documentID)
	return true
}

func (f *fakeIndex) CountDocuments() int { return len(f.docs) }

type fakeStore struct {
	createErr error
	docs      map[string]*model.Document
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]*model.Document)}
}

func (f *fakeStore) Create(doc *model.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeStore) GetByID(id string) (*model.Document, error) {
	return f.docs[id], nil
}

func (f *fakeStore) List() ([]model.DocumentSummary, error) {
	var summaries []model.DocumentSummary
	for _, doc := range f.docs {
		summaries = append(summaries, doc.Summarize())
	}
	return summaries, nil
}

func (f *fakeStore) Delete(id string) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeStore) Count() (int64, error) {
	return int64(len(f.docs)), nil
}

type fakeFiles struct {
	saveErr error
	saved   map[string][]byte
	nextID  int
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{saved: make(map[string][]byte)}
}

func (f *fakeFiles) Save(_ string, content []byte) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.nextID++
	path := fmt.Sprintf("/sources/file-%d.pdf", f.nextID)
	f.saved[path] = content
	return path, nil
}

func (f *fakeFiles) Delete(path string) bool {
	if _, ok := f.saved[path]; !ok {
		return false
	}
	delete(f.saved, path)
	return true
}

type ingestFixture struct {
	service *DocumentService
	files   *fakeFiles
	index   *fakeIndex
	store   *fakeStore
}

func newIngestFixture(extractor *fakeExtractor) *ingestFixture {
	files := newFakeFiles()
	index := newFakeIndex()
	store := newFakeStore()
	service := NewDocumentService(
		extractor,
		chunker.New(chunker.DefaultChunkSize, chunker.DefaultOverlap),
		summarizer.NewLeadSentences(),
		index,
		store,
		files,
		nil,
	)
	return &ingestFixture{service: service, files: files, index: index, store: store}
}

func TestIngestSuccess(t *testing.T) {
	fx := newIngestFixture(&fakeExtractor{text: "alpha beta gamma delta epsilon"})

	doc, err := fx.service.Ingest(context.Background(), []byte("%PDF"), "report.pdf")
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "report.pdf", doc.Name)
	assert.Equal(t, "pdf", doc.FileType)
	assert.Equal(t, int64(4), doc.FileSize)
	assert.NotEmpty(t, doc.Summary)
	require.Len(t, doc.Chunks, 1)
	assert.Equal(t, 0, doc.Chunks[0].ChunkIndex)
	assert.Equal(t, 0, doc.Chunks[0].StartChar)
	assert.Equal(t, 30, doc.Chunks[0].EndChar)
	assert.Equal(t, doc.ID, doc.Chunks[0].DocumentID)

	assert.Len(t, fx.files.saved, 1, "raw file should be stored")
	assert.Contains(t, fx.store.docs, doc.ID, "metadata record should exist")
	assert.Contains(t, fx.index.docs, doc.ID, "vector entries should exist")
}

func TestIngestRejectsEmptyUpload(t *testing.T) {
	fx := newIngestFixture(&fakeExtractor{text: "whatever"})
	_, err := fx.service.Ingest(context.Background(), nil, "report.pdf")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIngestBlankTextIsContentError(t *testing.T) {
	fx := newIngestFixture(&fakeExtractor{text: "   \n  "})

	_, err := fx.service.Ingest(context.Background(), []byte("%PDF"), "scan.pdf")
	assert.ErrorIs(t, err, ErrNoExtractableText)

	assert.Empty(t, fx.files.saved, "saved file must be rolled back")
	assert.Empty(t, fx.store.docs)
	assert.Empty(t, fx.index.docs)
}

func TestIngestExtractorFailureRollsBackFile(t *testing.T) {
	fx := newIngestFixture(&fakeExtractor{err: errors.New("corrupt pdf")})

	_, err := fx.service.Ingest(context.Background(), []byte("%PDF"), "broken.pdf")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoExtractableText)

	assert.Empty(t, fx.files.saved)
}

func TestIngestIndexFailureRollsBackFile(t *testing.T) {
	fx := newIngestFixture(&fakeExtractor{text: "alpha beta gamma"})
	fx.index.addFails = true

	_, err := fx.service.Ingest(context.Background(), []byte("%PDF"), "report.pdf")
	assert.ErrorIs(t, err, ErrIndexUnavailable)

	assert.Empty(t, fx.files.saved, "raw file must no longer exist")
	assert.Empty(t, fx.store.docs, "no metadata record may be created")

	list, err := fx.service.List()
	require.NoError(t, err)
	assert.Empty(t, list, "listing must show no trace of the attempt")
}

func TestIngestMetadataFailureRollsBackIndexAndFile(t *testing.T) {
	fx := newIngestFixture(&fakeExtractor{text: "alpha beta gamma"})
	fx.store.createErr = errors.New("mysql down")

	_, err := fx.service.Ingest(context.Background(), []byte("%PDF"), "report.pdf")
	require.Error(t, err)

	assert.Empty(t, fx.index.docs, "vector entries must be compensated")
	assert.Empty(t, fx.files.saved, "raw file must be compensated")
	assert.Empty(t, fx.store.docs)
}

func TestDeleteRemovesAllRepresentations(t *testing.T) {
	fx := newIngestFixture(&fakeExtractor{text: "alpha beta gamma"})
	doc, err := fx.service.Ingest(context.Background(), []byte("%PDF"), "report.pdf")
	require.NoError(t, err)

	require.NoError(t, fx.service.Delete(context.Background(), doc.ID))

	assert.Empty(t, fx.files.saved)
	assert.Empty(t, fx.store.docs)
	assert.Empty(t, fx.index.docs)
}

func TestDeleteUnknownDocument(t *testing.T) {
	fx := newIngestFixture(&fakeExtractor{text: "alpha"})

	err := fx.service.Delete(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	// Deleting again is still not-found, and nothing changed anywhere.
	err = fx.service.Delete(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.Empty(t, fx.files.saved)
	assert.Empty(t, fx.store.docs)
	assert.Empty(t, fx.index.docs)
}

func TestDeleteContinuesPastMissingVectorEntries(t *testing.T) {
	fx := newIngestFixture(&fakeExtractor{text: "alpha beta gamma"})
	doc, err := fx.service.Ingest(context.Background(), []byte("%PDF"), "report.pdf")
	require.NoError(t, err)

	// Simulate an index that already lost this document.
	delete(fx.index.docs, doc.ID)

	require.NoError(t, fx.service.Delete(context.Background(), doc.ID))
	assert.Empty(t, fx.files.saved, "file cleanup must still run")
	assert.Empty(t, fx.store.docs, "metadata cleanup must still run")
}

func TestGetNotFound(t *testing.T) {
	fx := newIngestFixture(&fakeExtractor{text: "alpha"})
	_, err := fx.service.Get("missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}
