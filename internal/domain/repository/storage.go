package repository

import (
	"context"
	"io"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// BlobStorage defines the object storage operations used for media assets.
// Implementations should be provided by the infrastructure layer (e.g., MinIO, S3).
type BlobStorage interface {
	// Upload stores the object under key and returns its handle.
	// size may be -1 when unknown.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (model.MediaAsset, error)

	// Delete removes an object by storage ID. Deleting an absent object is not an error.
	Delete(ctx context.Context, storageID string) error
}
