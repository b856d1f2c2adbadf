package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// FeedRepository builds denormalized, paged read views.
// Each List method returns the requested page and the total count of the
// filtered and joined set. Items whose owner record is missing are dropped.
type FeedRepository interface {
	ListVideos(ctx context.Context, filter model.VideoFilter, sort model.VideoSort, page model.PageRequest) ([]model.VideoCard, int64, error)
	ListComments(ctx context.Context, videoID uuid.UUID, page model.PageRequest) ([]model.CommentView, int64, error)
	ListTweets(ctx context.Context, ownerID uuid.UUID, page model.PageRequest) ([]model.TweetView, int64, error)
	ListLikedVideos(ctx context.Context, actorID uuid.UUID, page model.PageRequest) ([]model.VideoCard, int64, error)
	ListWatchHistory(ctx context.Context, userID uuid.UUID, page model.PageRequest) ([]model.VideoCard, int64, error)
	ListPlaylists(ctx context.Context, ownerID uuid.UUID, page model.PageRequest) ([]model.PlaylistSummary, int64, error)
	ListSubscribers(ctx context.Context, channelID uuid.UUID, page model.PageRequest) ([]model.OwnerProfile, int64, error)
	ListSubscriptions(ctx context.Context, subscriberID uuid.UUID, page model.PageRequest) ([]model.OwnerProfile, int64, error)

	// GetPlaylistDetail joins the playlist owner and every member video with its
	// owner. Returns ErrPlaylistNotFound if the playlist is absent.
	GetPlaylistDetail(ctx context.Context, id uuid.UUID) (*model.PlaylistDetail, error)
}
