package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
)

const timeFormat = time.RFC3339

type MediaAssetResponse struct {
	URL       string `json:"url"`
	StorageID string `json:"storageId"`
}

type OwnerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar,omitempty"`
}

type VideoResponse struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"ownerId"`
	Owner       *OwnerResponse     `json:"owner,omitempty"`
	VideoFile   MediaAssetResponse `json:"videoFile"`
	Thumbnail   MediaAssetResponse `json:"thumbnail"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Duration    float64            `json:"duration"`
	Views       int64              `json:"views"`
	IsPublished bool               `json:"isPublished"`
	CreatedAt   string             `json:"createdAt"`
	UpdatedAt   string             `json:"updatedAt"`
}

type CommentResponse struct {
	ID        string         `json:"id"`
	VideoID   string         `json:"videoId"`
	OwnerID   string         `json:"ownerId"`
	Owner     *OwnerResponse `json:"owner,omitempty"`
	Content   string         `json:"content"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

type TweetResponse struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"ownerId"`
	Owner     *OwnerResponse `json:"owner,omitempty"`
	Content   string         `json:"content"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

type PlaylistResponse struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"ownerId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Videos      []string `json:"videos"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type PlaylistSummaryResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	TotalVideos int64               `json:"totalVideos"`
	Thumbnail   *MediaAssetResponse `json:"thumbnail"`
	CreatedAt   string              `json:"createdAt"`
	UpdatedAt   string              `json:"updatedAt"`
}

type PlaylistDetailResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Owner       OwnerResponse   `json:"owner"`
	Videos      []VideoResponse `json:"videos"`
	TotalVideos int64           `json:"totalVideos"`
	TotalViews  int64           `json:"totalViews"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

type ToggleResponse struct {
	Active bool `json:"active"`
}

type StatsResponse struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
}

// PageResponse is one page of a feed.
type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNextPage"`
	HasPrev    bool  `json:"hasPrevPage"`
}

func toPageResponse[In, Out any](p *model.Page[In], convert func(In) Out) PageResponse[Out] {
	items := make([]Out, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, convert(item))
	}
	return PageResponse[Out]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		HasNext:    p.Page < p.TotalPages,
		HasPrev:    p.Page > 1,
	}
}

func formatTime(t time.Time) string {
	return t.Format(timeFormat)
}

func toMediaAssetResponse(a model.MediaAsset) MediaAssetResponse {
	return MediaAssetResponse{URL: a.URL, StorageID: a.StorageID}
}

func toOwnerResponse(o model.OwnerProfile) OwnerResponse {
	return OwnerResponse{
		ID:       o.ID.String(),
		Username: o.Username,
		FullName: o.FullName,
		Avatar:   o.Avatar,
	}
}

func toVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID.String(),
		OwnerID:     v.OwnerID.String(),
		VideoFile:   toMediaAssetResponse(v.VideoFile),
		Thumbnail:   toMediaAssetResponse(v.Thumbnail),
		Title:       v.Title,
		Description: v.Description,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   formatTime(v.CreatedAt),
		UpdatedAt:   formatTime(v.UpdatedAt),
	}
}

func toVideoCardResponse(c model.VideoCard) VideoResponse {
	resp := toVideoResponse(&c.Video)
	owner := toOwnerResponse(c.Owner)
	resp.Owner = &owner
	return resp
}

func toCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		VideoID:   c.VideoID.String(),
		OwnerID:   c.OwnerID.String(),
		Content:   c.Content,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func toCommentViewResponse(c model.CommentView) CommentResponse {
	resp := toCommentResponse(&c.Comment)
	owner := toOwnerResponse(c.Owner)
	resp.Owner = &owner
	return resp
}

func toTweetResponse(t *model.Tweet) TweetResponse {
	return TweetResponse{
		ID:        t.ID.String(),
		OwnerID:   t.OwnerID.String(),
		Content:   t.Content,
		CreatedAt: formatTime(t.CreatedAt),
		UpdatedAt: formatTime(t.UpdatedAt),
	}
}

func toTweetViewResponse(t model.TweetView) TweetResponse {
	resp := toTweetResponse(&t.Tweet)
	owner := toOwnerResponse(t.Owner)
	resp.Owner = &owner
	return resp
}

func toPlaylistResponse(p *model.Playlist) PlaylistResponse {
	return PlaylistResponse{
		ID:          p.ID.String(),
		OwnerID:     p.OwnerID.String(),
		Name:        p.Name,
		Description: p.Description,
		Videos:      idStrings(p.VideoIDs),
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func toPlaylistSummaryResponse(p model.PlaylistSummary) PlaylistSummaryResponse {
	resp := PlaylistSummaryResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		TotalVideos: p.TotalVideos,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
	if p.Thumbnail != nil {
		thumb := toMediaAssetResponse(*p.Thumbnail)
		resp.Thumbnail = &thumb
	}
	return resp
}

func toPlaylistDetailResponse(p *model.PlaylistDetail) PlaylistDetailResponse {
	videos := make([]VideoResponse, 0, len(p.Videos))
	for _, v := range p.Videos {
		videos = append(videos, toVideoCardResponse(v))
	}
	return PlaylistDetailResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Owner:       toOwnerResponse(p.Owner),
		Videos:      videos,
		TotalVideos: p.TotalVideos,
		TotalViews:  p.TotalViews,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func toStatsResponse(s *model.ChannelStats) StatsResponse {
	return StatsResponse{
		TotalVideos:      s.TotalVideos,
		TotalSubscribers: s.TotalSubscribers,
		TotalViews:       s.TotalViews,
		TotalLikes:       s.TotalLikes,
	}
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
