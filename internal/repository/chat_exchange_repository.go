package repository

import (
	"fmt"

	"gorm.io/gorm"

	"docuchat/internal/model"
)

type ChatExchangeRepository struct {
	db *gorm.DB
}

func NewChatExchangeRepository(db *gorm.DB) *ChatExchangeRepository {
	return &ChatExchangeRepository{db: db}
}

func (r *ChatExchangeRepository) Create(exchange *model.ChatExchange) error {
	if err := r.db.Create(exchange).Error; err != nil {
		return fmt.Errorf("create chat exchange failed: %w", err)
	}
	return nil
}

// ListRecent returns the newest exchanges, most recent first.
func (r *ChatExchangeRepository) ListRecent(limit int) ([]model.ChatExchange, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []model.ChatExchange
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list chat exchanges failed: %w", err)
	}
	return list, nil
}
