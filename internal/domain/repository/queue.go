package repository

import (
	"context"

	"github.com/google/uuid"
)

// BlobCleanupTask asks the worker to delete blobs that no metadata row references anymore.
type BlobCleanupTask struct {
	VideoID    uuid.UUID `json:"video_id"`
	StorageIDs []string  `json:"storage_ids"`
	Reason     string    `json:"reason"`
	RetryCount int       `json:"retry_count"`
}

// CleanupQueue defines the durable queue carrying blob cleanup work.
// Implementations should be provided by the infrastructure layer (e.g., RabbitMQ).
type CleanupQueue interface {
	// PublishBlobCleanup enqueues a cleanup task.
	PublishBlobCleanup(ctx context.Context, task BlobCleanupTask) error

	// ConsumeBlobCleanup calls handler for each received task until ctx is done.
	// Used by the worker service.
	ConsumeBlobCleanup(ctx context.Context, handler func(task BlobCleanupTask) error) error

	// Close gracefully closes the connection to the queue.
	Close() error
}
