package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopmetrics/pricecast/internal/config"
	"github.com/shopmetrics/pricecast/internal/domain"
)

const (
	summaryKeyPrefix     = "pricing:summary"
	summaryScanBatchSize = 100
)

// SummaryCache caches batch optimization summaries. Product writes
// invalidate the whole prefix, since any product may appear in any
// cached batch.
type SummaryCache interface {
	GetSummary(ctx context.Context, key string) (*domain.OptimizationSummary, bool, error)
	SetSummary(ctx context.Context, key string, summary *domain.OptimizationSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

func NewSummaryCache(cfg config.CacheConfig) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSummaryCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

// SummaryKey derives a stable cache key from the requested product set.
// Order of ids does not matter; an empty set means the whole catalog.
func SummaryKey(ids []uuid.UUID) string {
	if len(ids) == 0 {
		return summaryKeyPrefix + ":all"
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	sort.Strings(parts)

	sum := sha1.Sum([]byte(strings.Join(parts, ",")))
	return fmt.Sprintf("%s:%s", summaryKeyPrefix, hex.EncodeToString(sum[:]))
}

func (c *redisSummaryCache) GetSummary(ctx context.Context, key string) (*domain.OptimizationSummary, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.OptimizationSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode pricing summary cache: %w", err)
	}

	return &summary, true, nil
}

func (c *redisSummaryCache) SetSummary(ctx context.Context, key string, summary *domain.OptimizationSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode pricing summary cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSummaryCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, summaryKeyPrefix, summaryScanBatchSize)
}

func (n *noopSummaryCache) GetSummary(ctx context.Context, key string) (*domain.OptimizationSummary, bool, error) {
	return nil, false, nil
}

func (n *noopSummaryCache) SetSummary(ctx context.Context, key string, summary *domain.OptimizationSummary) error {
	return nil
}

func (n *noopSummaryCache) InvalidateAll(ctx context.Context) error {
	return nil
}
