package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/infrastructure/cache"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
	"golang.org/x/sync/singleflight"
)

// CachedStatsServiceConfig holds configuration for the cached stats decorator.
type CachedStatsServiceConfig struct {
	// CacheTTL bounds how stale a dashboard may be.
	CacheTTL time.Duration
}

// DefaultCachedStatsServiceConfig returns the default configuration.
func DefaultCachedStatsServiceConfig() CachedStatsServiceConfig {
	return CachedStatsServiceConfig{
		CacheTTL: time.Minute,
	}
}

// cachedStatsService wraps StatsService with a cache-aside layer.
// Cache failures are logged and fall through to the delegate.
type cachedStatsService struct {
	delegate StatsService
	cache    cache.StatsCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedStatsService creates a StatsService that caches the delegate's results.
func NewCachedStatsService(
	delegate StatsService,
	statsCache cache.StatsCache,
	cfg CachedStatsServiceConfig,
) StatsService {
	return &cachedStatsService{
		delegate: delegate,
		cache:    statsCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// ChannelStats coalesces concurrent misses for the same channel with singleflight.
func (s *cachedStatsService) ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error) {
	result, err, shared := s.sfGroup.Do(channelID.String(), func() (any, error) {
		return s.statsWithCache(ctx, channelID)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	// Copy so callers never share a cached value.
	stats := *result.(*model.ChannelStats)
	return &stats, nil
}

func (s *cachedStatsService) statsWithCache(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error) {
	stats, err := s.cache.Get(ctx, channelID)
	if err != nil {
		slog.Warn("cache get failed, falling back to database",
			"channel_id", channelID,
			"error", err,
		)
	}

	if stats != nil {
		return stats, nil // Cache hit
	}

	stats, err = s.delegate.ChannelStats(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, stats, s.cacheTTL); err != nil {
		slog.Warn("failed to cache channel stats",
			"channel_id", channelID,
			"error", err,
		)
	}

	return stats, nil
}
