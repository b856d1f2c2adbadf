package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// VideoRepository defines video metadata persistence.
// Every mutation is a single atomic statement; owner-gated mutations match on
// both id and owner so that "not found or not owned" is decided by the store.
type VideoRepository interface {
	// Create persists a new video. Returns ErrDuplicate if the ID already exists.
	Create(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video. Returns ErrVideoNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// UpdateDetails applies a normalized patch to the video owned by ownerID and
	// returns the updated row together with the thumbnail it held before the
	// update. Returns ErrVideoNotFound if nothing matched.
	UpdateDetails(ctx context.Context, id, ownerID uuid.UUID, patch model.VideoPatch) (*model.Video, model.MediaAsset, error)

	// TogglePublish flips is_published for the video owned by ownerID.
	TogglePublish(ctx context.Context, id, ownerID uuid.UUID) (*model.Video, error)

	// DeleteOwned removes the video owned by ownerID and returns the deleted row,
	// so callers can capture its asset handles atomically.
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Video, error)

	// IncrementViews adds one view and returns the new count.
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
}
