package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"docuchat/internal/model"
)

const (
	keyDocumentList  = "documents:list"
	keyDocumentCount = "documents:count"
)

// StatsCache caches the document listing and the index-wide document count.
// Counting distinct documents in the vector index is a full scan, so health
// and listing endpoints read through this cache; ingest and delete
// invalidate it.
type StatsCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewStatsCache(client *redisv9.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &StatsCache{client: client, ttl: ttl}
}

func (c *StatsCache) GetDocumentList(ctx context.Context) ([]model.DocumentSummary, bool, error) {
	raw, err := c.client.Get(ctx, keyDocumentList).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get document list failed: %w", err)
	}

	var summaries []model.DocumentSummary
	if err := json.Unmarshal([]byte(raw), &summaries); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached document list failed: %w", err)
	}
	return summaries, true, nil
}

func (c *StatsCache) SetDocumentList(ctx context.Context, summaries []model.DocumentSummary) error {
	payload, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("marshal document list failed: %w", err)
	}
	if err := c.client.Set(ctx, keyDocumentList, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set document list failed: %w", err)
	}
	return nil
}

func (c *StatsCache) GetDocumentCount(ctx context.Context) (int, bool, error) {
	count, err := c.client.Get(ctx, keyDocumentCount).Int()
	if err == redisv9.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get document count failed: %w", err)
	}
	return count, true, nil
}

func (c *StatsCache) SetDocumentCount(ctx context.Context, count int) error {
	if err := c.client.Set(ctx, keyDocumentCount, count, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set document count failed: %w", err)
	}
	return nil
}

// Invalidate drops both cached values; called after every ingest or delete.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, keyDocumentList, keyDocumentCount).Err(); err != nil {
		return fmt.Errorf("redis invalidate stats failed: %w", err)
	}
	return nil
}
