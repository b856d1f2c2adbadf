package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

// UserRepository implements repository.UserRepository and repository.StatsRepository.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Exists reports whether the user row exists.
func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	recordQuery(metrics.DBQuerySelect, metrics.TableUsers)
	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// AddToWatchHistory records a view. Re-watching a video keeps the first entry.
func (r *UserRepository) AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	const query = `
		INSERT INTO watch_history (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO NOTHING
	`

	recordQuery(metrics.DBQueryInsert, metrics.TableWatchHistory)
	if _, err := r.db.Exec(ctx, query, userID, videoID); err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrVideoNotFound
		}
		return fmt.Errorf("failed to add to watch history: %w", err)
	}

	return nil
}

// ChannelStats aggregates a channel's totals in a single round trip.
// TotalLikes counts likes on the channel's videos.
func (r *UserRepository) ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM videos WHERE owner_id = $1),
			(SELECT COUNT(*) FROM relations WHERE target_type = 'channel' AND target_id = $1),
			(SELECT COALESCE(SUM(views), 0)::BIGINT FROM videos WHERE owner_id = $1),
			(SELECT COUNT(*) FROM relations r
				JOIN videos v ON v.id = r.target_id
				WHERE r.target_type = 'video' AND v.owner_id = $1)
	`

	recordQuery(metrics.DBQuerySelect, metrics.TableVideos)
	stats := model.ChannelStats{ChannelID: channelID}
	err := r.db.QueryRow(ctx, query, channelID).Scan(
		&stats.TotalVideos,
		&stats.TotalSubscribers,
		&stats.TotalViews,
		&stats.TotalLikes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute channel stats: %w", err)
	}

	return &stats, nil
}

// Compile-time verification that UserRepository implements the user and stats repositories.
var (
	_ repository.UserRepository  = (*UserRepository)(nil)
	_ repository.StatsRepository = (*UserRepository)(nil)
)
