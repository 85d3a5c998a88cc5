package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/repayment_tracker/internal/apperrors"
	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/repayment_tracker/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "repayment_tracker"
	generationKey = keyPrefix + ":summary:gen"
)

// RedisSummaryCache stores summaries under a generation number.
// Invalidate bumps the generation, so older entries become unreachable and expire on their TTL.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryCache creates a summary cache with the given entry TTL.
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, ttl: ttl}
}

// Ensure RedisSummaryCache implements portsrepo.SummaryCache
var _ portsrepo.SummaryCache = (*RedisSummaryCache)(nil)

func (c *RedisSummaryCache) key(ctx context.Context, filterKey string) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", apperrors.NewAppError(500, "failed to read summary cache generation", err)
	}
	return fmt.Sprintf("%s:summary:%d:%s", keyPrefix, gen, filterKey), nil
}

// Get returns the cached summary for filterKey, if present.
func (c *RedisSummaryCache) Get(ctx context.Context, filterKey string) (*domain.Summary, bool, error) {
	key, err := c.key(ctx, filterKey)
	if err != nil {
		return nil, false, err
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, apperrors.NewAppError(500, "failed to read cached summary", err)
	}
	var s domain.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false, apperrors.NewAppError(500, "failed to decode cached summary", err)
	}
	return &s, true, nil
}

// Set stores summary under the current generation.
func (c *RedisSummaryCache) Set(ctx context.Context, filterKey string, summary domain.Summary) error {
	key, err := c.key(ctx, filterKey)
	if err != nil {
		return err
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode summary", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return apperrors.NewAppError(500, "failed to cache summary", err)
	}
	return nil
}

// Invalidate drops every cached summary.
func (c *RedisSummaryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return apperrors.NewAppError(500, "failed to invalidate summary cache", err)
	}
	return nil
}
