package usecase

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	createFn         func(ctx context.Context, video *model.Video) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	updateDetailsFn  func(ctx context.Context, id, ownerID uuid.UUID, patch model.VideoPatch) (*model.Video, model.MediaAsset, error)
	togglePublishFn  func(ctx context.Context, id, ownerID uuid.UUID) (*model.Video, error)
	deleteOwnedFn    func(ctx context.Context, id, ownerID uuid.UUID) (*model.Video, error)
	incrementViewsFn func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) UpdateDetails(ctx context.Context, id, ownerID uuid.UUID, patch model.VideoPatch) (*model.Video, model.MediaAsset, error) {
	if m.updateDetailsFn != nil {
		return m.updateDetailsFn(ctx, id, ownerID, patch)
	}
	return nil, model.MediaAsset{}, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) TogglePublish(ctx context.Context, id, ownerID uuid.UUID) (*model.Video, error) {
	if m.togglePublishFn != nil {
		return m.togglePublishFn(ctx, id, ownerID)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Video, error) {
	if m.deleteOwnedFn != nil {
		return m.deleteOwnedFn(ctx, id, ownerID)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.incrementViewsFn != nil {
		return m.incrementViewsFn(ctx, id)
	}
	return 1, nil
}

// mockUserRepository provides a configurable mock for UserRepository and StatsRepository.
type mockUserRepository struct {
	existsFn            func(ctx context.Context, id uuid.UUID) (bool, error)
	addToWatchHistoryFn func(ctx context.Context, userID, videoID uuid.UUID) error
	channelStatsFn      func(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error)
}

func (m *mockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return true, nil
}

func (m *mockUserRepository) AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	if m.addToWatchHistoryFn != nil {
		return m.addToWatchHistoryFn(ctx, userID, videoID)
	}
	return nil
}

func (m *mockUserRepository) ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error) {
	if m.channelStatsFn != nil {
		return m.channelStatsFn(ctx, channelID)
	}
	return &model.ChannelStats{ChannelID: channelID}, nil
}

// mockBlobStorage records uploads and deletes.
type mockBlobStorage struct {
	mu       sync.Mutex
	uploadFn func(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (model.MediaAsset, error)
	deleteFn func(ctx context.Context, storageID string) error

	uploaded []string
	deleted  []string
}

func (m *mockBlobStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (model.MediaAsset, error) {
	if m.uploadFn != nil {
		asset, err := m.uploadFn(ctx, key, reader, size, contentType)
		if err == nil {
			m.mu.Lock()
			m.uploaded = append(m.uploaded, key)
			m.mu.Unlock()
		}
		return asset, err
	}
	m.mu.Lock()
	m.uploaded = append(m.uploaded, key)
	m.mu.Unlock()
	return model.MediaAsset{URL: "http://cdn.local/media/" + key, StorageID: key}, nil
}

func (m *mockBlobStorage) Delete(ctx context.Context, storageID string) error {
	m.mu.Lock()
	m.deleted = append(m.deleted, storageID)
	m.mu.Unlock()
	if m.deleteFn != nil {
		return m.deleteFn(ctx, storageID)
	}
	return nil
}

// mockCleanupQueue provides a configurable mock for CleanupQueue.
type mockCleanupQueue struct {
	publishFn func(ctx context.Context, task repository.BlobCleanupTask) error
	published []repository.BlobCleanupTask
}

func (m *mockCleanupQueue) PublishBlobCleanup(ctx context.Context, task repository.BlobCleanupTask) error {
	m.published = append(m.published, task)
	if m.publishFn != nil {
		return m.publishFn(ctx, task)
	}
	return nil
}

func (m *mockCleanupQueue) ConsumeBlobCleanup(ctx context.Context, handler func(task repository.BlobCleanupTask) error) error {
	return nil
}

func (m *mockCleanupQueue) Close() error {
	return nil
}

// mockProber returns a fixed duration.
type mockProber struct {
	durationFn func(ctx context.Context, path string) (float64, error)
}

func (m *mockProber) Duration(ctx context.Context, path string) (float64, error) {
	if m.durationFn != nil {
		return m.durationFn(ctx, path)
	}
	return 12.5, nil
}

// inlineSubmitter runs submitted work synchronously so tests can observe it.
type inlineSubmitter struct {
	reject bool
	names  []string
	errs   []error
}

func (s *inlineSubmitter) Submit(name string, fn func(ctx context.Context) error) bool {
	if s.reject {
		return false
	}
	s.names = append(s.names, name)
	if err := fn(context.Background()); err != nil {
		s.errs = append(s.errs, err)
	}
	return true
}

// mockRelationRepository keeps relation rows in memory.
type mockRelationRepository struct {
	rows     map[model.RelationKey]bool
	deleteFn func(ctx context.Context, key model.RelationKey) (bool, error)
	insertFn func(ctx context.Context, key model.RelationKey) error
}

func newMockRelationRepository() *mockRelationRepository {
	return &mockRelationRepository{rows: make(map[model.RelationKey]bool)}
}

func (m *mockRelationRepository) Delete(ctx context.Context, key model.RelationKey) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	existed := m.rows[key]
	delete(m.rows, key)
	return existed, nil
}

func (m *mockRelationRepository) Insert(ctx context.Context, key model.RelationKey) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, key)
	}
	m.rows[key] = true
	return nil
}

// mockCommentRepository provides a configurable mock for CommentRepository.
type mockCommentRepository struct {
	createFn        func(ctx context.Context, comment *model.Comment) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	updateContentFn func(ctx context.Context, id, ownerID uuid.UUID, content string) (*model.Comment, error)
	deleteOwnedFn   func(ctx context.Context, id, ownerID uuid.UUID) error
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrCommentNotFound
}

func (m *mockCommentRepository) UpdateContent(ctx context.Context, id, ownerID uuid.UUID, content string) (*model.Comment, error) {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, id, ownerID, content)
	}
	return nil, repository.ErrCommentNotFound
}

func (m *mockCommentRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	if m.deleteOwnedFn != nil {
		return m.deleteOwnedFn(ctx, id, ownerID)
	}
	return repository.ErrCommentNotFound
}

// mockTweetRepository provides a configurable mock for TweetRepository.
type mockTweetRepository struct {
	createFn        func(ctx context.Context, tweet *model.Tweet) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*model.Tweet, error)
	updateContentFn func(ctx context.Context, id, ownerID uuid.UUID, content string) (*model.Tweet, error)
	deleteOwnedFn   func(ctx context.Context, id, ownerID uuid.UUID) error
}

func (m *mockTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	if m.createFn != nil {
		return m.createFn(ctx, tweet)
	}
	return nil
}

func (m *mockTweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrTweetNotFound
}

func (m *mockTweetRepository) UpdateContent(ctx context.Context, id, ownerID uuid.UUID, content string) (*model.Tweet, error) {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, id, ownerID, content)
	}
	return nil, repository.ErrTweetNotFound
}

func (m *mockTweetRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	if m.deleteOwnedFn != nil {
		return m.deleteOwnedFn(ctx, id, ownerID)
	}
	return repository.ErrTweetNotFound
}

// mockPlaylistRepository provides a configurable mock for PlaylistRepository.
type mockPlaylistRepository struct {
	createFn      func(ctx context.Context, playlist *model.Playlist) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*model.Playlist, error)
	updateFn      func(ctx context.Context, id, ownerID uuid.UUID, name, description string) (*model.Playlist, error)
	deleteOwnedFn func(ctx context.Context, id, ownerID uuid.UUID) error
	addVideoFn    func(ctx context.Context, id, ownerID, videoID uuid.UUID) (*model.Playlist, error)
	removeVideoFn func(ctx context.Context, id, ownerID, videoID uuid.UUID) (bool, error)
}

func (m *mockPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	if m.createFn != nil {
		return m.createFn(ctx, playlist)
	}
	return nil
}

func (m *mockPlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrPlaylistNotFound
}

func (m *mockPlaylistRepository) Update(ctx context.Context, id, ownerID uuid.UUID, name, description string) (*model.Playlist, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, ownerID, name, description)
	}
	return &model.Playlist{ID: id, OwnerID: ownerID, Name: name, Description: description}, nil
}

func (m *mockPlaylistRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	if m.deleteOwnedFn != nil {
		return m.deleteOwnedFn(ctx, id, ownerID)
	}
	return nil
}

func (m *mockPlaylistRepository) AddVideo(ctx context.Context, id, ownerID, videoID uuid.UUID) (*model.Playlist, error) {
	if m.addVideoFn != nil {
		return m.addVideoFn(ctx, id, ownerID, videoID)
	}
	return &model.Playlist{ID: id, OwnerID: ownerID, VideoIDs: []uuid.UUID{videoID}}, nil
}

func (m *mockPlaylistRepository) RemoveVideo(ctx context.Context, id, ownerID, videoID uuid.UUID) (bool, error) {
	if m.removeVideoFn != nil {
		return m.removeVideoFn(ctx, id, ownerID, videoID)
	}
	return true, nil
}

// mockFeedRepository provides a configurable mock for FeedRepository.
type mockFeedRepository struct {
	listVideosFn        func(ctx context.Context, filter model.VideoFilter, sort model.VideoSort, page model.PageRequest) ([]model.VideoCard, int64, error)
	listCommentsFn      func(ctx context.Context, videoID uuid.UUID, page model.PageRequest) ([]model.CommentView, int64, error)
	listTweetsFn        func(ctx context.Context, ownerID uuid.UUID, page model.PageRequest) ([]model.TweetView, int64, error)
	listLikedVideosFn   func(ctx context.Context, actorID uuid.UUID, page model.PageRequest) ([]model.VideoCard, int64, error)
	listWatchHistoryFn  func(ctx context.Context, userID uuid.UUID, page model.PageRequest) ([]model.VideoCard, int64, error)
	listPlaylistsFn     func(ctx context.Context, ownerID uuid.UUID, page model.PageRequest) ([]model.PlaylistSummary, int64, error)
	listSubscribersFn   func(ctx context.Context, channelID uuid.UUID, page model.PageRequest) ([]model.OwnerProfile, int64, error)
	listSubscriptionsFn func(ctx context.Context, subscriberID uuid.UUID, page model.PageRequest) ([]model.OwnerProfile, int64, error)
	getPlaylistDetailFn func(ctx context.Context, id uuid.UUID) (*model.PlaylistDetail, error)
}

func (m *mockFeedRepository) ListVideos(ctx context.Context, filter model.VideoFilter, sort model.VideoSort, page model.PageRequest) ([]model.VideoCard, int64, error) {
	if m.listVideosFn != nil {
		return m.listVideosFn(ctx, filter, sort, page)
	}
	return nil, 0, nil
}

func (m *mockFeedRepository) ListComments(ctx context.Context, videoID uuid.UUID, page model.PageRequest) ([]model.CommentView, int64, error) {
	if m.listCommentsFn != nil {
		return m.listCommentsFn(ctx, videoID, page)
	}
	return nil, 0, nil
}

func (m *mockFeedRepository) ListTweets(ctx context.Context, ownerID uuid.UUID, page model.PageRequest) ([]model.TweetView, int64, error) {
	if m.listTweetsFn != nil {
		return m.listTweetsFn(ctx, ownerID, page)
	}
	return nil, 0, nil
}

func (m *mockFeedRepository) ListLikedVideos(ctx context.Context, actorID uuid.UUID, page model.PageRequest) ([]model.VideoCard, int64, error) {
	if m.listLikedVideosFn != nil {
		return m.listLikedVideosFn(ctx, actorID, page)
	}
	return nil, 0, nil
}

func (m *mockFeedRepository) ListWatchHistory(ctx context.Context, userID uuid.UUID, page model.PageRequest) ([]model.VideoCard, int64, error) {
	if m.listWatchHistoryFn != nil {
		return m.listWatchHistoryFn(ctx, userID, page)
	}
	return nil, 0, nil
}

func (m *mockFeedRepository) ListPlaylists(ctx context.Context, ownerID uuid.UUID, page model.PageRequest) ([]model.PlaylistSummary, int64, error) {
	if m.listPlaylistsFn != nil {
		return m.listPlaylistsFn(ctx, ownerID, page)
	}
	return nil, 0, nil
}

func (m *mockFeedRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID, page model.PageRequest) ([]model.OwnerProfile, int64, error) {
	if m.listSubscribersFn != nil {
		return m.listSubscribersFn(ctx, channelID, page)
	}
	return nil, 0, nil
}

func (m *mockFeedRepository) ListSubscriptions(ctx context.Context, subscriberID uuid.UUID, page model.PageRequest) ([]model.OwnerProfile, int64, error) {
	if m.listSubscriptionsFn != nil {
		return m.listSubscriptionsFn(ctx, subscriberID, page)
	}
	return nil, 0, nil
}

func (m *mockFeedRepository) GetPlaylistDetail(ctx context.Context, id uuid.UUID) (*model.PlaylistDetail, error) {
	if m.getPlaylistDetailFn != nil {
		return m.getPlaylistDetailFn(ctx, id)
	}
	return nil, repository.ErrPlaylistNotFound
}

// mockStatsCache is an in-memory StatsCache.
type mockStatsCache struct {
	mu      sync.Mutex
	data    map[uuid.UUID]*model.ChannelStats
	getErr  error
	setErr  error
	getHits int
}

func newMockStatsCache() *mockStatsCache {
	return &mockStatsCache{data: make(map[uuid.UUID]*model.ChannelStats)}
}

func (m *mockStatsCache) Get(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	stats, ok := m.data[channelID]
	if !ok {
		return nil, nil
	}
	m.getHits++
	copied := *stats
	return &copied, nil
}

func (m *mockStatsCache) Set(ctx context.Context, stats *model.ChannelStats, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	copied := *stats
	m.data[stats.ChannelID] = &copied
	return nil
}

func (m *mockStatsCache) Delete(ctx context.Context, channelID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, channelID)
	return nil
}

// spoolFile writes content to a temp file standing in for a spooled upload.
func spoolFile(t *testing.T, name, contentType string, content []byte) FileInput {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, content, 0o600); err != nil {
		t.Fatalf("failed to write spool file: %v", err)
	}
	return FileInput{
		Path:        p,
		FileName:    name,
		ContentType: contentType,
		Size:        int64(len(content)),
	}
}
