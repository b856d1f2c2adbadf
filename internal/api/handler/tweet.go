package handler

import (
	"net/http"

	"github.com/hszk-dev/vidshare/internal/usecase"
)

// TweetHandler handles tweet endpoints.
type TweetHandler struct {
	svc  usecase.TweetService
	feed usecase.FeedService
}

// NewTweetHandler creates a new TweetHandler.
func NewTweetHandler(svc usecase.TweetService, feed usecase.FeedService) *TweetHandler {
	return &TweetHandler{svc: svc, feed: feed}
}

// Create handles POST /v1/tweets
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	var req ContentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ServiceError(w, r, err)
		return
	}

	tweet, err := h.svc.CreateTweet(r.Context(), principal, req.Content)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusCreated, toTweetResponse(tweet))
}

// ListByUser handles GET /v1/tweets/user/{userId}
func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.feed.UserTweets(r.Context(), userID, page)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toPageResponse(result, toTweetViewResponse))
}

// Update handles PATCH /v1/tweets/{tweetId}
func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	tweetID, err := pathID(r, "tweetId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	var req ContentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ServiceError(w, r, err)
		return
	}

	tweet, err := h.svc.UpdateTweet(r.Context(), principal, tweetID, req.Content)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toTweetResponse(tweet))
}

// Delete handles DELETE /v1/tweets/{tweetId}
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	tweetID, err := pathID(r, "tweetId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	if err := h.svc.DeleteTweet(r.Context(), principal, tweetID); err != nil {
		ServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
