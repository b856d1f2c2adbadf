package handler

import (
	"net/http"

	"github.com/hszk-dev/vidshare/internal/usecase"
)

// UserHandler serves the authenticated user's own feeds.
type UserHandler struct {
	feed usecase.FeedService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(feed usecase.FeedService) *UserHandler {
	return &UserHandler{feed: feed}
}

// WatchHistory handles GET /v1/users/watch-history
func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	result, err := h.feed.WatchHistory(r.Context(), principal, page)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toPageResponse(result, toVideoCardResponse))
}
