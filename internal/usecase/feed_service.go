package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// SearchVideosInput selects the public video catalog.
type SearchVideosInput struct {
	Query   string
	OwnerID uuid.UUID
	Sort    model.VideoSort
	Page    model.PageRequest
}

// FeedService serves paged, owner-joined read views.
// A page past the end is empty, never an error.
type FeedService interface {
	// SearchVideos lists published videos, optionally filtered by owner and text.
	SearchVideos(ctx context.Context, input SearchVideosInput) (*model.Page[model.VideoCard], error)

	// ChannelVideos lists every video of a channel, published or not.
	ChannelVideos(ctx context.Context, channelID uuid.UUID, sort model.VideoSort, page model.PageRequest) (*model.Page[model.VideoCard], error)

	VideoComments(ctx context.Context, videoID uuid.UUID, page model.PageRequest) (*model.Page[model.CommentView], error)
	UserTweets(ctx context.Context, userID uuid.UUID, page model.PageRequest) (*model.Page[model.TweetView], error)
	LikedVideos(ctx context.Context, actorID uuid.UUID, page model.PageRequest) (*model.Page[model.VideoCard], error)

	// WatchHistory lists the videos a user watched, most recently watched first.
	WatchHistory(ctx context.Context, userID uuid.UUID, page model.PageRequest) (*model.Page[model.VideoCard], error)

	UserPlaylists(ctx context.Context, userID uuid.UUID, page model.PageRequest) (*model.Page[model.PlaylistSummary], error)
	Subscribers(ctx context.Context, channelID uuid.UUID, page model.PageRequest) (*model.Page[model.OwnerProfile], error)
	SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, page model.PageRequest) (*model.Page[model.OwnerProfile], error)

	// PlaylistByID returns the playlist with its owner and member videos joined.
	PlaylistByID(ctx context.Context, playlistID uuid.UUID) (*model.PlaylistDetail, error)
}

type feedService struct {
	feeds  repository.FeedRepository
	videos repository.VideoRepository
	users  repository.UserRepository
}

// NewFeedService creates a new FeedService instance.
func NewFeedService(
	feeds repository.FeedRepository,
	videos repository.VideoRepository,
	users repository.UserRepository,
) FeedService {
	return &feedService{
		feeds:  feeds,
		videos: videos,
		users:  users,
	}
}

func (s *feedService) SearchVideos(ctx context.Context, in SearchVideosInput) (*model.Page[model.VideoCard], error) {
	sort := in.Sort
	if !sort.Field.IsValid() {
		sort = model.DefaultVideoSort()
	}
	page := in.Page.Normalize()

	filter := model.VideoFilter{
		OwnerID:       in.OwnerID,
		Query:         in.Query,
		PublishedOnly: true,
	}
	items, total, err := s.feeds.ListVideos(ctx, filter, sort, page)
	if err != nil {
		return nil, upstream("list videos", err)
	}
	return model.NewPage(items, page, total), nil
}

func (s *feedService) ChannelVideos(ctx context.Context, channelID uuid.UUID, sort model.VideoSort, page model.PageRequest) (*model.Page[model.VideoCard], error) {
	if !sort.Field.IsValid() {
		sort = model.DefaultVideoSort()
	}
	page = page.Normalize()

	items, total, err := s.feeds.ListVideos(ctx, model.VideoFilter{OwnerID: channelID}, sort, page)
	if err != nil {
		return nil, upstream("list channel videos", err)
	}
	return model.NewPage(items, page, total), nil
}

func (s *feedService) VideoComments(ctx context.Context, videoID uuid.UUID, page model.PageRequest) (*model.Page[model.CommentView], error) {
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, upstream("get video", err)
	}
	page = page.Normalize()

	items, total, err := s.feeds.ListComments(ctx, videoID, page)
	if err != nil {
		return nil, upstream("list comments", err)
	}
	return model.NewPage(items, page, total), nil
}

func (s *feedService) UserTweets(ctx context.Context, userID uuid.UUID, page model.PageRequest) (*model.Page[model.TweetView], error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	page = page.Normalize()

	items, total, err := s.feeds.ListTweets(ctx, userID, page)
	if err != nil {
		return nil, upstream("list tweets", err)
	}
	return model.NewPage(items, page, total), nil
}

func (s *feedService) LikedVideos(ctx context.Context, actorID uuid.UUID, page model.PageRequest) (*model.Page[model.VideoCard], error) {
	page = page.Normalize()

	items, total, err := s.feeds.ListLikedVideos(ctx, actorID, page)
	if err != nil {
		return nil, upstream("list liked videos", err)
	}
	return model.NewPage(items, page, total), nil
}

func (s *feedService) WatchHistory(ctx context.Context, userID uuid.UUID, page model.PageRequest) (*model.Page[model.VideoCard], error) {
	page = page.Normalize()

	items, total, err := s.feeds.ListWatchHistory(ctx, userID, page)
	if err != nil {
		return nil, upstream("list watch history", err)
	}
	return model.NewPage(items, page, total), nil
}

func (s *feedService) UserPlaylists(ctx context.Context, userID uuid.UUID, page model.PageRequest) (*model.Page[model.PlaylistSummary], error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	page = page.Normalize()

	items, total, err := s.feeds.ListPlaylists(ctx, userID, page)
	if err != nil {
		return nil, upstream("list playlists", err)
	}
	return model.NewPage(items, page, total), nil
}

func (s *feedService) Subscribers(ctx context.Context, channelID uuid.UUID, page model.PageRequest) (*model.Page[model.OwnerProfile], error) {
	if err := s.requireUser(ctx, channelID); err != nil {
		return nil, err
	}
	page = page.Normalize()

	items, total, err := s.feeds.ListSubscribers(ctx, channelID, page)
	if err != nil {
		return nil, upstream("list subscribers", err)
	}
	return model.NewPage(items, page, total), nil
}

func (s *feedService) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, page model.PageRequest) (*model.Page[model.OwnerProfile], error) {
	if err := s.requireUser(ctx, subscriberID); err != nil {
		return nil, err
	}
	page = page.Normalize()

	items, total, err := s.feeds.ListSubscriptions(ctx, subscriberID, page)
	if err != nil {
		return nil, upstream("list subscriptions", err)
	}
	return model.NewPage(items, page, total), nil
}

func (s *feedService) PlaylistByID(ctx context.Context, playlistID uuid.UUID) (*model.PlaylistDetail, error) {
	detail, err := s.feeds.GetPlaylistDetail(ctx, playlistID)
	if err != nil {
		return nil, upstream("get playlist", err)
	}
	if detail.Videos == nil {
		detail.Videos = []model.VideoCard{}
	}
	return detail, nil
}

func (s *feedService) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return upstream("find user", err)
	}
	if !exists {
		return repository.ErrUserNotFound
	}
	return nil
}
