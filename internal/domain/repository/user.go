package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// UserRepository exposes the parts of the user store this service reads and writes.
// Accounts themselves are owned by the identity layer.
type UserRepository interface {
	// Exists reports whether a user with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// AddToWatchHistory records videoID in the user's watch history with set semantics.
	AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error
}

// StatsRepository computes channel dashboard aggregates.
type StatsRepository interface {
	ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error)
}
