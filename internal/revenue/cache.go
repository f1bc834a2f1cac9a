package revenue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/propertyflow/propertyflow/internal/domain"
)

// DefaultTTL is the absolute expiry for cached revenue summaries.
const DefaultTTL = 300 * time.Second

// Calculator computes a fresh revenue summary on cache miss.
type Calculator interface {
	CalculateTotalRevenue(ctx context.Context, propertyID, tenantID string) (*domain.RevenueSummary, error)
}

// Cache memoizes revenue summaries in Redis, keyed by (tenant, property).
// The cache is a performance layer only: any transport failure degrades to
// direct aggregation, never to a failed request. Concurrent misses for the
// same key may each recompute; acceptable because aggregation is idempotent
// and read-only.
type Cache struct {
	client *redis.Client
	calc   Calculator
	ttl    time.Duration
}

// NewCache creates a revenue cache. ttl <= 0 selects DefaultTTL.
func NewCache(client *redis.Client, calc Calculator, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, calc: calc, ttl: ttl}
}

// Key builds the cache key for a (tenant, property) pair. Tenant comes first
// so tenant-scoped bulk invalidation can match on prefix. Components are
// percent-escaped so ids containing the separator cannot collide across
// tenants; for ordinary ids the escape is the identity and the persisted
// format stays revenue:{tenant_id}:{property_id}.
func Key(tenantID, propertyID string) string {
	return "revenue:" + url.QueryEscape(tenantID) + ":" + url.QueryEscape(propertyID)
}

// GetRevenueSummary returns the cached summary for the pair, computing and
// storing a fresh one on miss.
func (c *Cache) GetRevenueSummary(ctx context.Context, propertyID, tenantID string) (*domain.RevenueSummary, error) {
	key := Key(tenantID, propertyID)

	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var summary domain.RevenueSummary
		if uerr := json.Unmarshal(cached, &summary); uerr == nil {
			log.Debug().Str("key", key).Msg("revenue cache: hit")
			return &summary, nil
		}
		// Corrupt entry: treat as a miss and overwrite below.
		log.Warn().Str("key", key).Msg("revenue cache: undecodable entry, recomputing")
	case errors.Is(err, redis.Nil):
		log.Debug().Str("key", key).Msg("revenue cache: miss")
	default:
		// Cache backend unreachable: serve a fresh computation uncached.
		log.Warn().Err(err).Str("key", key).Msg("revenue cache: read failed, bypassing cache")
		return c.calc.CalculateTotalRevenue(ctx, propertyID, tenantID)
	}

	summary, err := c.calc.CalculateTotalRevenue(ctx, propertyID, tenantID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return summary, nil
	}

	if serr := c.client.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
		log.Warn().Err(serr).Str("key", key).Msg("revenue cache: write failed")
	}

	return summary, nil
}

// Invalidate removes the single cached entry for one tenant+property pair.
// Never a wildcard delete.
func (c *Cache) Invalidate(ctx context.Context, propertyID, tenantID string) error {
	key := Key(tenantID, propertyID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("revenue.Cache.Invalidate: %w", err)
	}
	log.Info().Str("key", key).Msg("revenue cache: invalidated")
	return nil
}
