// Package cache implements the statistics cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

const (
	keyPrefix = "stats"
	scanCount = 100
)

// statisticsCache implements the adapter.StatisticsCache interface.
type statisticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatisticsCache creates a Redis-backed statistics cache.
func NewStatisticsCache(client *redis.Client, ttl time.Duration) adapter.StatisticsCache {
	return &statisticsCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached statistics of the range, if any.
func (c *statisticsCache) Get(ctx context.Context, userID uuid.UUID, dateRange valueobject.DateRange) (*valueobject.PeriodStatistics, bool, error) {
	raw, err := c.client.Get(ctx, statisticsKey(userID, dateRange)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read statistics cache: %w", err)
	}

	var stats valueobject.PeriodStatistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached statistics: %w", err)
	}
	return &stats, true, nil
}

// Set stores statistics of the range with the configured TTL.
func (c *statisticsCache) Set(ctx context.Context, userID uuid.UUID, dateRange valueobject.DateRange, stats *valueobject.PeriodStatistics) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	if err := c.client.Set(ctx, statisticsKey(userID, dateRange), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write statistics cache: %w", err)
	}
	return nil
}

// InvalidateUser deletes every cached range of the user.
func (c *statisticsCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, userID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return fmt.Errorf("failed to scan statistics cache: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to invalidate statistics cache: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func statisticsKey(userID uuid.UUID, dateRange valueobject.DateRange) string {
	return fmt.Sprintf("%s:%s:%d:%d", keyPrefix, userID, dateRange.Start.Unix(), dateRange.End.Unix())
}

// noopCache never stores anything. It stands in when Redis is disabled.
type noopCache struct{}

// NewNoopStatisticsCache creates a cache that always misses.
func NewNoopStatisticsCache() adapter.StatisticsCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, uuid.UUID, valueobject.DateRange) (*valueobject.PeriodStatistics, bool, error) {
	return nil, false, nil
}

func (noopCache) Set(context.Context, uuid.UUID, valueobject.DateRange, *valueobject.PeriodStatistics) error {
	return nil
}

func (noopCache) InvalidateUser(context.Context, uuid.UUID) error {
	return nil
}
