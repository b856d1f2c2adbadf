package handler

import (
	"net/http"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

// LikeHandler handles like toggles and the liked-videos feed.
type LikeHandler struct {
	svc  usecase.ToggleService
	feed usecase.FeedService
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(svc usecase.ToggleService, feed usecase.FeedService) *LikeHandler {
	return &LikeHandler{svc: svc, feed: feed}
}

// Toggle returns the handler for POST /v1/likes/toggle/{v|c|t}/{param}.
func (h *LikeHandler) Toggle(targetType model.TargetType, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		targetID, err := pathID(r, param)
		if err != nil {
			ServiceError(w, r, err)
			return
		}

		result, err := h.svc.ToggleLike(r.Context(), principal, targetID, targetType)
		if err != nil {
			ServiceError(w, r, err)
			return
		}

		Data(w, http.StatusOK, ToggleResponse{Active: result.Active})
	}
}

// LikedVideos handles GET /v1/likes/videos
func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	result, err := h.feed.LikedVideos(r.Context(), principal, page)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toPageResponse(result, toVideoCardResponse))
}
