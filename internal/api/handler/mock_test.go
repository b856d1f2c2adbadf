package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/auth"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

type mockVideoService struct {
	publishFn       func(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error)
	updateDetailsFn func(ctx context.Context, principal, videoID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error)
	togglePublishFn func(ctx context.Context, principal, videoID uuid.UUID) (*model.Video, error)
	deleteFn        func(ctx context.Context, principal, videoID uuid.UUID) error
	getVideoFn      func(ctx context.Context, videoID, viewer uuid.UUID) (*model.Video, error)
}

func (m *mockVideoService) Publish(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error) {
	if m.publishFn != nil {
		return m.publishFn(ctx, input)
	}
	return nil, nil
}

func (m *mockVideoService) UpdateDetails(ctx context.Context, principal, videoID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error) {
	if m.updateDetailsFn != nil {
		return m.updateDetailsFn(ctx, principal, videoID, input)
	}
	return nil, nil
}

func (m *mockVideoService) UpdateThumbnail(ctx context.Context, principal, videoID uuid.UUID, thumbnail usecase.FileInput) (*model.Video, error) {
	return m.UpdateDetails(ctx, principal, videoID, usecase.UpdateVideoInput{Thumbnail: &thumbnail})
}

func (m *mockVideoService) TogglePublish(ctx context.Context, principal, videoID uuid.UUID) (*model.Video, error) {
	if m.togglePublishFn != nil {
		return m.togglePublishFn(ctx, principal, videoID)
	}
	return nil, nil
}

func (m *mockVideoService) Delete(ctx context.Context, principal, videoID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, principal, videoID)
	}
	return nil
}

func (m *mockVideoService) GetVideo(ctx context.Context, videoID, viewer uuid.UUID) (*model.Video, error) {
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, videoID, viewer)
	}
	return nil, nil
}

// mockFeedService embeds the interface so tests only stub what they use.
type mockFeedService struct {
	usecase.FeedService

	searchVideosFn  func(ctx context.Context, input usecase.SearchVideosInput) (*model.Page[model.VideoCard], error)
	channelVideosFn func(ctx context.Context, channelID uuid.UUID, sort model.VideoSort, page model.PageRequest) (*model.Page[model.VideoCard], error)
	videoCommentsFn func(ctx context.Context, videoID uuid.UUID, page model.PageRequest) (*model.Page[model.CommentView], error)
	playlistByIDFn  func(ctx context.Context, playlistID uuid.UUID) (*model.PlaylistDetail, error)
	watchHistoryFn  func(ctx context.Context, userID uuid.UUID, page model.PageRequest) (*model.Page[model.VideoCard], error)
}

func (m *mockFeedService) SearchVideos(ctx context.Context, input usecase.SearchVideosInput) (*model.Page[model.VideoCard], error) {
	return m.searchVideosFn(ctx, input)
}

func (m *mockFeedService) ChannelVideos(ctx context.Context, channelID uuid.UUID, sort model.VideoSort, page model.PageRequest) (*model.Page[model.VideoCard], error) {
	return m.channelVideosFn(ctx, channelID, sort, page)
}

func (m *mockFeedService) VideoComments(ctx context.Context, videoID uuid.UUID, page model.PageRequest) (*model.Page[model.CommentView], error) {
	return m.videoCommentsFn(ctx, videoID, page)
}

func (m *mockFeedService) WatchHistory(ctx context.Context, userID uuid.UUID, page model.PageRequest) (*model.Page[model.VideoCard], error) {
	return m.watchHistoryFn(ctx, userID, page)
}

func (m *mockFeedService) PlaylistByID(ctx context.Context, playlistID uuid.UUID) (*model.PlaylistDetail, error) {
	return m.playlistByIDFn(ctx, playlistID)
}

type mockToggleService struct {
	toggleLikeFn         func(ctx context.Context, actorID, targetID uuid.UUID, targetType model.TargetType) (model.ToggleResult, error)
	toggleSubscriptionFn func(ctx context.Context, subscriberID, channelID uuid.UUID) (model.ToggleResult, error)
}

func (m *mockToggleService) ToggleLike(ctx context.Context, actorID, targetID uuid.UUID, targetType model.TargetType) (model.ToggleResult, error) {
	return m.toggleLikeFn(ctx, actorID, targetID, targetType)
}

func (m *mockToggleService) ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (model.ToggleResult, error) {
	return m.toggleSubscriptionFn(ctx, subscriberID, channelID)
}

type mockCommentService struct {
	addCommentFn    func(ctx context.Context, principal, videoID uuid.UUID, content string) (*model.Comment, error)
	updateCommentFn func(ctx context.Context, principal, commentID uuid.UUID, content string) (*model.Comment, error)
	deleteCommentFn func(ctx context.Context, principal, commentID uuid.UUID) error
}

func (m *mockCommentService) AddComment(ctx context.Context, principal, videoID uuid.UUID, content string) (*model.Comment, error) {
	return m.addCommentFn(ctx, principal, videoID, content)
}

func (m *mockCommentService) UpdateComment(ctx context.Context, principal, commentID uuid.UUID, content string) (*model.Comment, error) {
	return m.updateCommentFn(ctx, principal, commentID, content)
}

func (m *mockCommentService) DeleteComment(ctx context.Context, principal, commentID uuid.UUID) error {
	return m.deleteCommentFn(ctx, principal, commentID)
}

type mockPlaylistService struct {
	usecase.PlaylistService

	addVideoFn    func(ctx context.Context, principal, playlistID, videoID uuid.UUID) (*model.Playlist, error)
	removeVideoFn func(ctx context.Context, principal, playlistID, videoID uuid.UUID) (*model.Playlist, error)
}

func (m *mockPlaylistService) AddVideo(ctx context.Context, principal, playlistID, videoID uuid.UUID) (*model.Playlist, error) {
	return m.addVideoFn(ctx, principal, playlistID, videoID)
}

func (m *mockPlaylistService) RemoveVideo(ctx context.Context, principal, playlistID, videoID uuid.UUID) (*model.Playlist, error) {
	return m.removeVideoFn(ctx, principal, playlistID, videoID)
}

type mockStatsService struct {
	channelStatsFn func(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error)
}

func (m *mockStatsService) ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error) {
	return m.channelStatsFn(ctx, channelID)
}

// newRequest builds a request with chi URL params and, unless principal is
// uuid.Nil, an authenticated principal.
func newRequest(method, target string, body io.Reader, principal uuid.UUID, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if principal != uuid.Nil {
		ctx = auth.WithPrincipal(ctx, principal)
	}
	return req.WithContext(ctx)
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	return bytes.NewReader(b)
}

type formFile struct {
	field, name, contentType string
	content                  []byte
}

// multipartBody encodes fields and files as multipart/form-data.
func multipartBody(t *testing.T, fields map[string]string, files ...formFile) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("failed to create part: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("failed to write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

// decodeData unwraps the {"data": ...} envelope into dest.
func decodeData(t *testing.T, body []byte, dest any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("failed to unmarshal envelope: %v", err)
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		t.Fatalf("failed to unmarshal data: %v", err)
	}
}

func decodeError(t *testing.T, body []byte) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to unmarshal error: %v", err)
	}
	return resp
}
