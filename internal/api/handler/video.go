package handler

import (
	"net/http"

	"github.com/hszk-dev/vidshare/internal/auth"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

// VideoHandler handles video-related HTTP requests.
type VideoHandler struct {
	svc    usecase.VideoService
	feed   usecase.FeedService
	upload UploadConfig
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService, feed usecase.FeedService, upload UploadConfig) *VideoHandler {
	return &VideoHandler{svc: svc, feed: feed, upload: upload}
}

// List handles GET /v1/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pageRequest(r)
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	ownerID, err := queryID(r, "userId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	q := r.URL.Query()
	result, err := h.feed.SearchVideos(r.Context(), usecase.SearchVideosInput{
		Query:   q.Get("query"),
		OwnerID: ownerID,
		Sort:    model.ParseVideoSort(q.Get("sortBy"), q.Get("sortType")),
		Page:    page,
	})
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toPageResponse(result, toVideoCardResponse))
}

// Publish handles POST /v1/videos
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	form, err := spoolMultipart(w, r, h.upload)
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	defer form.Cleanup()

	title, _ := form.value("title")
	description, _ := form.value("description")
	videoFile, ok := form.file("videoFile")
	if !ok {
		ServiceError(w, r, model.ErrMissingVideoFile)
		return
	}
	thumbnail, ok := form.file("thumbnail")
	if !ok {
		ServiceError(w, r, model.ErrMissingThumbnail)
		return
	}

	video, err := h.svc.Publish(r.Context(), usecase.PublishVideoInput{
		OwnerID:     principal,
		Title:       title,
		Description: description,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusCreated, toVideoResponse(video))
}

// Get handles GET /v1/videos/{videoId}. Authentication is optional.
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	viewer, _ := auth.PrincipalFrom(r.Context())
	video, err := h.svc.GetVideo(r.Context(), videoID, viewer)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toVideoResponse(video))
}

// Update handles PATCH /v1/videos/{videoId}
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	form, err := spoolMultipart(w, r, h.upload)
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	defer form.Cleanup()

	var input usecase.UpdateVideoInput
	if title, ok := form.value("title"); ok {
		input.Title = &title
	}
	if description, ok := form.value("description"); ok {
		input.Description = &description
	}
	if thumbnail, ok := form.file("thumbnail"); ok {
		input.Thumbnail = &thumbnail
	}

	video, err := h.svc.UpdateDetails(r.Context(), principal, videoID, input)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toVideoResponse(video))
}

// Delete handles DELETE /v1/videos/{videoId}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), principal, videoID); err != nil {
		ServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TogglePublish handles PATCH /v1/videos/toggle/publish/{videoId}
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	video, err := h.svc.TogglePublish(r.Context(), principal, videoID)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toVideoResponse(video))
}
