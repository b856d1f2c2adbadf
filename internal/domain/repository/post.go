package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// CommentRepository defines comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error

	// GetByID returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	// UpdateContent changes the content of the comment owned by ownerID.
	// Returns ErrCommentNotFound if no comment matched both id and owner.
	UpdateContent(ctx context.Context, id, ownerID uuid.UUID, content string) (*model.Comment, error)

	// DeleteOwned removes the comment owned by ownerID.
	// Returns ErrCommentNotFound if no comment matched both id and owner.
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}

// TweetRepository defines tweet persistence.
type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error

	// GetByID returns ErrTweetNotFound if the tweet does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error)

	// UpdateContent changes the content of the tweet owned by ownerID.
	// Returns ErrTweetNotFound if no tweet matched both id and owner.
	UpdateContent(ctx context.Context, id, ownerID uuid.UUID, content string) (*model.Tweet, error)

	// DeleteOwned removes the tweet owned by ownerID.
	// Returns ErrTweetNotFound if no tweet matched both id and owner.
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}
