package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

type PlaylistRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
}

// PlaylistHandler handles playlist endpoints.
type PlaylistHandler struct {
	svc  usecase.PlaylistService
	feed usecase.FeedService
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(svc usecase.PlaylistService, feed usecase.FeedService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc, feed: feed}
}

// Create handles POST /v1/playlists
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	var req PlaylistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ServiceError(w, r, err)
		return
	}

	playlist, err := h.svc.CreatePlaylist(r.Context(), principal, req.Name, req.Description)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusCreated, toPlaylistResponse(playlist))
}

// ListByUser handles GET /v1/playlists/user/{userId}
func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	result, err := h.feed.UserPlaylists(r.Context(), userID, page)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toPageResponse(result, toPlaylistSummaryResponse))
}

// Get handles GET /v1/playlists/{playlistId}
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathID(r, "playlistId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	detail, err := h.feed.PlaylistByID(r.Context(), playlistID)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toPlaylistDetailResponse(detail))
}

// Update handles PATCH /v1/playlists/{playlistId}
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	playlistID, err := pathID(r, "playlistId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	var req PlaylistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ServiceError(w, r, err)
		return
	}

	playlist, err := h.svc.UpdatePlaylist(r.Context(), principal, playlistID, req.Name, req.Description)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toPlaylistResponse(playlist))
}

// Delete handles DELETE /v1/playlists/{playlistId}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	playlistID, err := pathID(r, "playlistId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	if err := h.svc.DeletePlaylist(r.Context(), principal, playlistID); err != nil {
		ServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddVideo handles POST /v1/playlists/{playlistId}/{videoId}
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	h.changeMembership(w, r, h.svc.AddVideo)
}

// RemoveVideo handles DELETE /v1/playlists/{playlistId}/{videoId}
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	h.changeMembership(w, r, h.svc.RemoveVideo)
}

func (h *PlaylistHandler) changeMembership(
	w http.ResponseWriter,
	r *http.Request,
	change func(ctx context.Context, principal, playlistID, videoID uuid.UUID) (*model.Playlist, error),
) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	playlistID, err := pathID(r, "playlistId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	playlist, err := change(r.Context(), principal, playlistID, videoID)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toPlaylistResponse(playlist))
}
