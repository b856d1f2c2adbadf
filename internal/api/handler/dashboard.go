package handler

import (
	"net/http"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

// DashboardHandler serves the principal's channel dashboard.
type DashboardHandler struct {
	stats usecase.StatsService
	feed  usecase.FeedService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(stats usecase.StatsService, feed usecase.FeedService) *DashboardHandler {
	return &DashboardHandler{stats: stats, feed: feed}
}

// Stats handles GET /v1/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	stats, err := h.stats.ChannelStats(r.Context(), principal)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toStatsResponse(stats))
}

// Videos handles GET /v1/dashboard/videos
func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	q := r.URL.Query()
	result, err := h.feed.ChannelVideos(r.Context(), principal, model.ParseVideoSort(q.Get("sortBy"), q.Get("sortType")), page)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toPageResponse(result, toVideoCardResponse))
}
