package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
	"github.com/redis/go-redis/v9"
)

const (
	// statsCacheKeyPrefix is the prefix for channel stats keys in Redis.
	statsCacheKeyPrefix = "channel_stats:"
)

// statsJSON is the cached representation of ChannelStats.
// Using explicit struct avoids coupling to domain model's JSON tags.
type statsJSON struct {
	ChannelID        string `json:"channel_id"`
	TotalVideos      int64  `json:"total_videos"`
	TotalSubscribers int64  `json:"total_subscribers"`
	TotalViews       int64  `json:"total_views"`
	TotalLikes       int64  `json:"total_likes"`
}

// RedisStatsCache implements StatsCache using Redis as the backing store.
type RedisStatsCache struct {
	client *redis.Client
}

var _ StatsCache = (*RedisStatsCache)(nil)

// NewRedisStatsCache creates a new Redis-backed stats cache.
func NewRedisStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{
		client: client,
	}
}

// Get retrieves channel stats from Redis.
// Returns nil, nil on cache miss.
func (c *RedisStatsCache) Get(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error) {
	data, err := c.client.Get(ctx, c.buildKey(channelID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			record(metrics.CacheOpGet, metrics.CacheStatusMiss)
			return nil, nil // Cache miss
		}
		record(metrics.CacheOpGet, metrics.CacheStatusError)
		return nil, fmt.Errorf("redis get: %w", err)
	}

	stats, err := c.deserialize(data)
	if err != nil {
		record(metrics.CacheOpGet, metrics.CacheStatusError)
		return nil, fmt.Errorf("deserialize stats: %w", err)
	}

	record(metrics.CacheOpGet, metrics.CacheStatusHit)
	return stats, nil
}

// Set stores channel stats with the specified TTL.
func (c *RedisStatsCache) Set(ctx context.Context, stats *model.ChannelStats, ttl time.Duration) error {
	data, err := json.Marshal(statsJSON{
		ChannelID:        stats.ChannelID.String(),
		TotalVideos:      stats.TotalVideos,
		TotalSubscribers: stats.TotalSubscribers,
		TotalViews:       stats.TotalViews,
		TotalLikes:       stats.TotalLikes,
	})
	if err != nil {
		return fmt.Errorf("serialize stats: %w", err)
	}

	if err := c.client.Set(ctx, c.buildKey(stats.ChannelID), data, ttl).Err(); err != nil {
		record(metrics.CacheOpSet, metrics.CacheStatusError)
		return fmt.Errorf("redis set: %w", err)
	}

	record(metrics.CacheOpSet, metrics.CacheStatusSuccess)
	return nil
}

// Delete removes a channel's stats from Redis.
func (c *RedisStatsCache) Delete(ctx context.Context, channelID uuid.UUID) error {
	if err := c.client.Del(ctx, c.buildKey(channelID)).Err(); err != nil {
		record(metrics.CacheOpDelete, metrics.CacheStatusError)
		return fmt.Errorf("redis del: %w", err)
	}

	record(metrics.CacheOpDelete, metrics.CacheStatusSuccess)
	return nil
}

// Ping checks connectivity to Redis.
func (c *RedisStatsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisStatsCache) buildKey(channelID uuid.UUID) string {
	return statsCacheKeyPrefix + channelID.String()
}

func (c *RedisStatsCache) deserialize(data []byte) (*model.ChannelStats, error) {
	var s statsJSON
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	channelID, err := uuid.Parse(s.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("parse channel ID: %w", err)
	}

	return &model.ChannelStats{
		ChannelID:        channelID,
		TotalVideos:      s.TotalVideos,
		TotalSubscribers: s.TotalSubscribers,
		TotalViews:       s.TotalViews,
		TotalLikes:       s.TotalLikes,
	}, nil
}

func record(op, status string) {
	metrics.CacheOperationsTotal.WithLabelValues(op, status, metrics.CacheTypeRedis).Inc()
}
