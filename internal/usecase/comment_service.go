package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// CommentService manages comments on videos.
type CommentService interface {
	AddComment(ctx context.Context, principal, videoID uuid.UUID, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, principal, commentID uuid.UUID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, principal, commentID uuid.UUID) error
}

type commentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository) CommentService {
	return &commentService{
		comments: comments,
		videos:   videos,
	}
}

func (s *commentService) AddComment(ctx context.Context, principal, videoID uuid.UUID, content string) (*model.Comment, error) {
	comment, err := model.NewComment(principal, videoID, content)
	if err != nil {
		return nil, err
	}

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, upstream("get video", err)
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, upstream("create comment", err)
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, principal, commentID uuid.UUID, content string) (*model.Comment, error) {
	content, err := model.NormalizeContent(content)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.UpdateContent(ctx, commentID, principal, content)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, s.classify(ctx, principal, commentID, err)
		}
		return nil, upstream("update comment", err)
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, principal, commentID uuid.UUID) error {
	err := s.comments.DeleteOwned(ctx, commentID, principal)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return s.classify(ctx, principal, commentID, err)
		}
		return upstream("delete comment", err)
	}
	return nil
}

func (s *commentService) classify(ctx context.Context, principal, commentID uuid.UUID, miss error) error {
	return classifyMiss(ctx, principal, miss, func(ctx context.Context) (*model.Comment, error) {
		return s.comments.GetByID(ctx, commentID)
	})
}
