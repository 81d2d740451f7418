package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aguaruta-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	summaryKeyPrefix = "resumen"
	generationKey    = "resumen:gen"
)

// Redis-backed cache for per-truck summaries.
//
// Keys embed a generation counter instead of being deleted individually:
// invalidation is a single INCR, which atomically orphans every cached range.
// Orphaned entries expire via TTL.
type RedisSummaryCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{Client: client, TTL: ttl}
}

func (c *RedisSummaryCache) key(ctx context.Context, desde, hasta time.Time) (string, error) {
	gen, err := c.Client.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		gen = "0"
	} else if err != nil {
		return "", fmt.Errorf("summary cache: read generation: %w", err)
	}

	return fmt.Sprintf("%s:%s:%s:%s",
		summaryKeyPrefix, gen,
		desde.Format(domain.DateLayout), hasta.Format(domain.DateLayout),
	), nil
}

// Get returns the cached summary for the range and whether it was present.
func (c *RedisSummaryCache) Get(ctx context.Context, desde, hasta time.Time) ([]domain.TruckSummary, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("summary cache: client is nil")
	}

	key, err := c.key(ctx, desde, hasta)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("summary cache: get %q: %w", key, err)
	}

	var summaries []domain.TruckSummary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		// A corrupt entry behaves like a miss; the caller recomputes.
		return nil, false, nil
	}

	return summaries, true, nil
}

// Put stores the summary for the range under the current generation.
func (c *RedisSummaryCache) Put(ctx context.Context, desde, hasta time.Time, s []domain.TruckSummary) error {
	if c.Client == nil {
		return errors.New("summary cache: client is nil")
	}

	key, err := c.key(ctx, desde, hasta)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("summary cache: marshal: %w", err)
	}

	if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("summary cache: set %q: %w", key, err)
	}

	return nil
}

// Invalidate bumps the generation, orphaning all cached ranges at once.
func (c *RedisSummaryCache) Invalidate(ctx context.Context) error {
	if c.Client == nil {
		return errors.New("summary cache: client is nil")
	}

	if err := c.Client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("summary cache: bump generation: %w", err)
	}

	return nil
}
