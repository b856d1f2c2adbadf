package handler

import (
	"net/http"

	"github.com/hszk-dev/vidshare/internal/usecase"
)

type ContentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	svc  usecase.CommentService
	feed usecase.FeedService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(svc usecase.CommentService, feed usecase.FeedService) *CommentHandler {
	return &CommentHandler{svc: svc, feed: feed}
}

// List handles GET /v1/comments/{videoId}
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	result, err := h.feed.VideoComments(r.Context(), videoID, page)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toPageResponse(result, toCommentViewResponse))
}

// Add handles POST /v1/comments/{videoId}
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	videoID, err := pathID(r, "videoId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	var req ContentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ServiceError(w, r, err)
		return
	}

	comment, err := h.svc.AddComment(r.Context(), principal, videoID, req.Content)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusCreated, toCommentResponse(comment))
}

// Update handles PATCH /v1/comments/c/{commentId}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}
	var req ContentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ServiceError(w, r, err)
		return
	}

	comment, err := h.svc.UpdateComment(r.Context(), principal, commentID, req.Content)
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	Data(w, http.StatusOK, toCommentResponse(comment))
}

// Delete handles DELETE /v1/comments/c/{commentId}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		ServiceError(w, r, err)
		return
	}

	if err := h.svc.DeleteComment(r.Context(), principal, commentID); err != nil {
		ServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
