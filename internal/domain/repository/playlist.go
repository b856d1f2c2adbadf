package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// PlaylistRepository defines playlist persistence. Mutations match on id and owner.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error

	// GetByID returns the playlist with its ordered video IDs, or ErrPlaylistNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error)

	// Update replaces name and description.
	Update(ctx context.Context, id, ownerID uuid.UUID, name, description string) (*model.Playlist, error)

	// DeleteOwned removes the playlist and its memberships.
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error

	// AddVideo appends videoID unless it is already a member.
	AddVideo(ctx context.Context, id, ownerID, videoID uuid.UUID) (*model.Playlist, error)

	// RemoveVideo removes videoID and reports whether it was a member.
	RemoveVideo(ctx context.Context, id, ownerID, videoID uuid.UUID) (bool, error)
}
