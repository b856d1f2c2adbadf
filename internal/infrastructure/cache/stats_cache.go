package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// StatsCache caches channel dashboard aggregates.
type StatsCache interface {
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error)

	Set(ctx context.Context, stats *model.ChannelStats, ttl time.Duration) error

	// Delete returns nil if the channel was not cached.
	Delete(ctx context.Context, channelID uuid.UUID) error
}
