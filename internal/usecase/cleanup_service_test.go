package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

func TestCleanupService_ProcessTask(t *testing.T) {
	tests := []struct {
		name        string
		task        repository.BlobCleanupTask
		failing     map[string]bool
		wantErr     bool
		wantDeleted []string
	}{
		{
			name: "deletes every blob",
			task: repository.BlobCleanupTask{
				VideoID:    uuid.New(),
				StorageIDs: []string{"videos/a/clip.mp4", "thumbnails/a/cover.png"},
			},
			wantDeleted: []string{"videos/a/clip.mp4", "thumbnails/a/cover.png"},
		},
		{
			name: "partial failure asks for a retry",
			task: repository.BlobCleanupTask{
				VideoID:    uuid.New(),
				StorageIDs: []string{"videos/a/clip.mp4", "thumbnails/a/cover.png"},
			},
			failing:     map[string]bool{"thumbnails/a/cover.png": true},
			wantErr:     true,
			wantDeleted: []string{"videos/a/clip.mp4"},
		},
		{
			name: "exhausted retries are dropped",
			task: repository.BlobCleanupTask{
				VideoID:    uuid.New(),
				StorageIDs: []string{"videos/a/clip.mp4"},
				RetryCount: DefaultMaxRetries,
			},
			wantDeleted: nil,
		},
		{
			name: "last retry still attempts deletion",
			task: repository.BlobCleanupTask{
				VideoID:    uuid.New(),
				StorageIDs: []string{"videos/a/clip.mp4"},
				RetryCount: DefaultMaxRetries - 1,
			},
			wantDeleted: []string{"videos/a/clip.mp4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var deleted []string
			storage := &mockBlobStorage{
				deleteFn: func(ctx context.Context, storageID string) error {
					if tt.failing[storageID] {
						return errors.New("storage unavailable")
					}
					deleted = append(deleted, storageID)
					return nil
				},
			}
			svc := NewCleanupService(storage, nil, DefaultCleanupServiceConfig())

			err := svc.ProcessTask(context.Background(), tt.task)

			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if len(deleted) != len(tt.wantDeleted) {
				t.Fatalf("deleted = %v, want %v", deleted, tt.wantDeleted)
			}
			for i := range deleted {
				if deleted[i] != tt.wantDeleted[i] {
					t.Errorf("deleted[%d] = %q, want %q", i, deleted[i], tt.wantDeleted[i])
				}
			}
		})
	}
}
