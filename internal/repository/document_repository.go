package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docuchat/internal/model"
)

// DocumentRepository is the authoritative metadata store: a document exists
// iff it has a record here. The database serializes concurrent keyed writes,
// so no process-level guard is needed.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create persists the document and its chunk rows in one transaction.
func (r *DocumentRepository) Create(doc *model.Document) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("create document failed: %w", err)
	}
	return nil
}

// GetByID returns the document with its chunks ordered by chunk index, or
// (nil, nil) when no such document exists so callers can tell "nothing to
// do" from "something broke".
func (r *DocumentRepository) GetByID(id string) (*model.Document, error) {
	var doc model.Document
	err := r.db.Preload("Chunks", func(db *gorm.DB) *gorm.DB {
		return db.Order("chunk_index ASC")
	}).First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document failed: %w", err)
	}
	return &doc, nil
}

// List returns listing summaries for all documents, newest first.
func (r *DocumentRepository) List() ([]model.DocumentSummary, error) {
	var docs []model.Document
	if err := r.db.Preload("Chunks").Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	summaries := make([]model.DocumentSummary, len(docs))
	for i := range docs {
		summaries[i] = docs[i].Summarize()
	}
	return summaries, nil
}

// Delete removes the document record and its chunk rows.
func (r *DocumentRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&model.DocumentChunk{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Document{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("delete document failed: %w", err)
	}
	return nil
}

// Count returns the number of document records.
func (r *DocumentRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Document{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count documents failed: %w", err)
	}
	return count, nil
}
