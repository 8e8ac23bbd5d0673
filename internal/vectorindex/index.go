package vectorindex

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"

	"go.etcd.io/bbolt"

	"docuchat/internal/ai"
	"docuchat/internal/model"
)

const (
	defaultSearchLimit = 5
	// Embedding providers commonly cap the batch size; 10 keeps requests
	// under the limits we have seen.
	embeddingBatchSize = 10
)

var (
	bucketChunks    = []byte("chunks")
	bucketDocChunks = []byte("doc_chunks")
)

// entry is the stored value per chunk id: the embedding, the chunk text and
// the fixed lookup metadata.
type entry struct {
	Embedding []float32       `json:"embedding"`
	Content   string          `json:"content"`
	Meta      model.ChunkMeta `json:"meta"`
}

// Index is a persistent nearest-neighbor index over chunk embeddings, backed
// by a single bbolt file. It owns all embedding-provider calls. Every
// operation converts dependency errors into a false/empty return so that an
// unavailable backend degrades retrieval instead of crashing it; the
// derived data here is never authoritative for which documents exist.
type Index struct {
	db       *bbolt.DB
	embedder ai.Embedder
}

// Open opens (or creates) the index file at path.
func Open(path string, embedder ai.Embedder) (*Index, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open vector index failed: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketChunks, bucketDocChunks} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s failed: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Index{db: db, embedder: embedder}, nil
}

func (ix *Index) Close() error {
	return ix.db.Close()
}

// Add embeds every chunk of the document and inserts the entries in one
// transaction. Returns false on any embedding or storage error; the caller
// must then treat the document as not searchable.
func (ix *Index) Add(ctx context.Context, doc *model.Document) bool {
	if len(doc.Chunks) == 0 {
		log.Printf("vector index: refusing to add document %s with no chunks", doc.ID)
		return false
	}

	texts := make([]string, len(doc.Chunks))
	for i, chunk := range doc.Chunks {
		texts[i] = chunk.Content
	}

	var embeddings [][]float32
	for i := 0; i < len(texts); i += embeddingBatchSize {
		end := i + embeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := ix.embedder.EmbedBatch(ctx, texts[i:end])
		if err != nil {
			log.Printf("vector index: embed chunks for document %s failed: %v", doc.ID, err)
			return false
		}
		embeddings = append(embeddings, batch...)
	}
	if len(embeddings) != len(doc.Chunks) {
		log.Printf("vector index: embedding count mismatch for document %s", doc.ID)
		return false
	}

	err := ix.db.Update(func(tx *bbolt.Tx) error {
		chunks := tx.Bucket(bucketChunks)
		chunkIDs := make([]string, len(doc.Chunks))
		for i, chunk := range doc.Chunks {
			data, err := json.Marshal(entry{
				Embedding: embeddings[i],
				Content:   chunk.Content,
				Meta: model.ChunkMeta{
					DocumentID:   doc.ID,
					DocumentName: doc.Name,
					ChunkIndex:   chunk.ChunkIndex,
					StartChar:    chunk.StartChar,
					EndChar:      chunk.EndChar,
					FileType:     doc.FileType,
				},
			})
			if err != nil {
				return err
			}
			if err := chunks.Put([]byte(chunk.ID), data); err != nil {
				return err
			}
			chunkIDs[i] = chunk.ID
		}
		ids, err := json.Marshal(chunkIDs)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketDocChunks).Put([]byte(doc.ID), ids)
	})
	if err != nil {
		log.Printf("vector index: add document %s failed: %v", doc.ID, err)
		return false
	}
	return true
}

// Search embeds the query and returns up to limit sources ordered by
// ascending cosine distance, optionally restricted to the given document
// ids. Errors and an empty index both yield an empty result.
func (ix *Index) Search(ctx context.Context, query string, limit int, documentIDs []string) []model.SourceInfo {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	queryVec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		log.Printf("vector index: embed query failed: %v", err)
		return nil
	}

	var filter map[string]struct{}
	if len(documentIDs) > 0 {
		filter = make(map[string]struct{}, len(documentIDs))
		for _, id := range documentIDs {
			filter[id] = struct{}{}
		}
	}

	type scored struct {
		entry    entry
		distance float64
	}
	var results []scored
	err = ix.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketChunks).ForEach(func(k, v []byte) error {
			var e entry
			if err := json.Unmarshal(v, &e); err != nil {
				log.Printf("vector index: skipping corrupt entry %s: %v", k, err)
				return nil
			}
			if filter != nil {
				if _, ok := filter[e.Meta.DocumentID]; !ok {
					return nil
				}
			}
			results = append(results, scored{entry: e, distance: cosineDistance(queryVec, e.Embedding)})
			return nil
		})
	})
	if err != nil {
		log.Printf("vector index: search failed: %v", err)
		return nil
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].distance < results[j].distance
	})
	if limit < len(results) {
		results = results[:limit]
	}

	sources := make([]model.SourceInfo, len(results))
	for i, r := range results {
		sources[i] = model.SourceInfo{
			DocumentID:     r.entry.Meta.DocumentID,
			DocumentName:   r.entry.Meta.DocumentName,
			ChunkContent:   r.entry.Content,
			RelevanceScore: math.Max(0, 1-r.distance),
		}
	}
	return sources
}

// Delete removes every entry belonging to the document. Returns false when
// the document had no indexed chunks; that is a no-op, not an error.
func (ix *Index) Delete(documentID string) bool {
	found := false
	err := ix.db.Update(func(tx *bbolt.Tx) error {
		docChunks := tx.Bucket(bucketDocChunks)
		data := docChunks.Get([]byte(documentID))
		if data == nil {
			return nil
		}
		var chunkIDs []string
		if err := json.Unmarshal(data, &chunkIDs); err != nil {
			return err
		}
		chunks := tx.Bucket(bucketChunks)
		for _, id := range chunkIDs {
			if err := chunks.Delete([]byte(id)); err != nil {
				return err
			}
		}
		found = len(chunkIDs) > 0
		return docChunks.Delete([]byte(documentID))
	})
	if err != nil {
		log.Printf("vector index: delete document %s failed: %v", documentID, err)
		return false
	}
	return found
}

// CountDocuments scans all entry metadata and counts distinct document ids.
// O(total chunks); callers needing it frequently should cache externally.
func (ix *Index) CountDocuments() int {
	seen := make(map[string]struct{})
	err := ix.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketChunks).ForEach(func(k, v []byte) error {
			var e entry
			if err := json.Unmarshal(v, &e); err != nil {
				return nil
			}
			seen[e.Meta.DocumentID] = struct{}{}
			return nil
		})
	})
	if err != nil {
		log.Printf("vector index: count documents failed: %v", err)
		return 0
	}
	return len(seen)
}

// CountChunks returns the total number of indexed chunks.
func (ix *Index) CountChunks() int {
	count := 0
	err := ix.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketChunks).Stats().KeyN
		return nil
	})
	if err != nil {
		log.Printf("vector index: count chunks failed: %v", err)
		return 0
	}
	return count
}

// cosineDistance is 1 - cosine similarity, in [0, 2]. Degenerate vectors
// (zero norm, mismatched length) get the neutral distance 1.
func cosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 1
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA <= 0 || normB <= 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
