package handler

import (
	"net/http"

	"github.com/hszk-dev/vidshare/internal/usecase"
)

// SubscriptionHandler handles channel subscriptions.
type SubscriptionHandler struct {
	svc  usecase.ToggleService
	feed usecase.FeedService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(svc usecase.ToggleService, feed usecase.FeedService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc, feed: feed}
}

// Toggle handles POST /v1/subscriptions/c/{channelId}
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	channelID, err := pathID(r, "channelId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	result, err := h.svc.ToggleSubscription(r.Context(), principal, channelID)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, ToggleResponse{Active: result.Active})
}

// Subscribers handles GET /v1/subscriptions/c/{channelId}
func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "channelId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	result, err := h.feed.Subscribers(r.Context(), channelID, page)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toPageResponse(result, toOwnerResponse))
}

// SubscribedChannels handles GET /v1/subscriptions/u/{subscriberId}
func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, err := pathID(r, "subscriberId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	result, err := h.feed.SubscribedChannels(r.Context(), subscriberID, page)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toPageResponse(result, toOwnerResponse))
}
