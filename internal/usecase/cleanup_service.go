package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

const (
	// DefaultMaxRetries is the default number of redeliveries before a cleanup task is abandoned.
	DefaultMaxRetries = 3
)

// CleanupServiceConfig holds configuration for CleanupService.
type CleanupServiceConfig struct {
	// MaxRetries is the number of retries before the blobs are logged as leaked.
	MaxRetries int
}

// DefaultCleanupServiceConfig returns the default configuration.
func DefaultCleanupServiceConfig() CleanupServiceConfig {
	return CleanupServiceConfig{
		MaxRetries: DefaultMaxRetries,
	}
}

// CleanupService deletes blobs that no video references anymore.
type CleanupService interface {
	// ProcessTask handles a cleanup task from the message queue.
	// Returns nil on success or when retries are exhausted.
	// Returns an error for failures that should trigger a retry.
	ProcessTask(ctx context.Context, task repository.BlobCleanupTask) error
}

type cleanupService struct {
	storage    repository.BlobStorage
	logger     *slog.Logger
	maxRetries int
}

// NewCleanupService creates a new CleanupService instance.
func NewCleanupService(storage repository.BlobStorage, logger *slog.Logger, cfg CleanupServiceConfig) CleanupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &cleanupService{
		storage:    storage,
		logger:     logger,
		maxRetries: cfg.MaxRetries,
	}
}

func (s *cleanupService) ProcessTask(ctx context.Context, task repository.BlobCleanupTask) error {
	if task.RetryCount >= s.maxRetries {
		// Ack the message; the blobs stay orphaned for out-of-band cleanup.
		metrics.BlobCleanupTotal.WithLabelValues(metrics.ResultDropped).Add(float64(len(task.StorageIDs)))
		s.logger.Error("giving up on blob cleanup",
			"video_id", task.VideoID,
			"storage_ids", task.StorageIDs,
			"retry_count", task.RetryCount,
			"reason", task.Reason,
		)
		return nil
	}

	var errs []error
	for _, id := range task.StorageIDs {
		if err := s.storage.Delete(ctx, id); err != nil {
			metrics.BlobCleanupTotal.WithLabelValues(metrics.ResultError).Inc()
			errs = append(errs, fmt.Errorf("delete %s: %w", id, err))
			continue
		}
		metrics.BlobCleanupTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	}

	if len(errs) > 0 {
		s.logger.Warn("blob cleanup failed, will retry",
			"video_id", task.VideoID,
			"retry_count", task.RetryCount,
			"error", errors.Join(errs...),
		)
		return errors.Join(errs...)
	}

	s.logger.Info("blobs deleted",
		"video_id", task.VideoID,
		"count", len(task.StorageIDs),
	)
	return nil
}
