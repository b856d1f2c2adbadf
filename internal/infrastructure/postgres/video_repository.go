package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

const videoColumns = `id, owner_id, video_url, video_storage_id, thumbnail_url, thumbnail_storage_id,
		title, description, duration, views, is_published, created_at, updated_at`

// VideoRepository implements repository.VideoRepository using PostgreSQL.
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create persists a new video entity.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	const query = `
		INSERT INTO videos (` + videoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	recordQuery(metrics.DBQueryInsert, metrics.TableVideos)
	_, err := r.db.Exec(ctx, query,
		video.ID,
		video.OwnerID,
		video.VideoFile.URL,
		video.VideoFile.StorageID,
		video.Thumbnail.URL,
		video.Thumbnail.StorageID,
		video.Title,
		video.Description,
		video.Duration,
		video.Views,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrUserNotFound
		}
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetByID retrieves a video by its unique identifier.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	const query = `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	recordQuery(metrics.DBQuerySelect, metrics.TableVideos)
	video, err := scanVideo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}

	return video, nil
}

// UpdateDetails applies the patch in one statement. Nil patch fields keep their
// column value. The row is locked before the update so the returned previous
// thumbnail is the one this statement replaced, even under concurrent updates.
func (r *VideoRepository) UpdateDetails(ctx context.Context, id, ownerID uuid.UUID, patch model.VideoPatch) (*model.Video, model.MediaAsset, error) {
	const query = `
		WITH prev AS (
			SELECT id AS prev_id,
			       thumbnail_url AS prev_thumbnail_url,
			       thumbnail_storage_id AS prev_thumbnail_storage_id
			FROM videos
			WHERE id = $1 AND owner_id = $2
			FOR UPDATE
		)
		UPDATE videos
		SET title = COALESCE($3, title),
		    description = COALESCE($4, description),
		    thumbnail_url = COALESCE($5, thumbnail_url),
		    thumbnail_storage_id = COALESCE($6, thumbnail_storage_id),
		    updated_at = $7
		FROM prev
		WHERE id = prev.prev_id
		RETURNING ` + videoColumns + `, prev.prev_thumbnail_url, prev.prev_thumbnail_storage_id`

	var thumbURL, thumbID *string
	if patch.Thumbnail != nil {
		thumbURL = &patch.Thumbnail.URL
		thumbID = &patch.Thumbnail.StorageID
	}

	recordQuery(metrics.DBQueryUpdate, metrics.TableVideos)
	var (
		video    model.Video
		previous model.MediaAsset
	)
	targets := append(videoScanTargets(&video), &previous.URL, &previous.StorageID)
	err := r.db.QueryRow(ctx, query,
		id, ownerID, patch.Title, patch.Description, thumbURL, thumbID, time.Now(),
	).Scan(targets...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.MediaAsset{}, repository.ErrVideoNotFound
		}
		return nil, model.MediaAsset{}, fmt.Errorf("failed to update video: %w", err)
	}

	return &video, previous, nil
}

// TogglePublish flips the publish flag of an owned video.
func (r *VideoRepository) TogglePublish(ctx context.Context, id, ownerID uuid.UUID) (*model.Video, error) {
	const query = `
		UPDATE videos
		SET is_published = NOT is_published, updated_at = $3
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + videoColumns

	recordQuery(metrics.DBQueryUpdate, metrics.TableVideos)
	video, err := scanVideo(r.db.QueryRow(ctx, query, id, ownerID, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to toggle publish status: %w", err)
	}

	return video, nil
}

// DeleteOwned removes an owned video and returns the row as it was deleted.
func (r *VideoRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Video, error) {
	const query = `
		DELETE FROM videos
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + videoColumns

	recordQuery(metrics.DBQueryDelete, metrics.TableVideos)
	video, err := scanVideo(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to delete video: %w", err)
	}

	return video, nil
}

// IncrementViews atomically adds one view.
func (r *VideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	const query = `UPDATE videos SET views = views + 1 WHERE id = $1 RETURNING views`

	recordQuery(metrics.DBQueryUpdate, metrics.TableVideos)
	var views int64
	if err := r.db.QueryRow(ctx, query, id).Scan(&views); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrVideoNotFound
		}
		return 0, fmt.Errorf("failed to increment views: %w", err)
	}

	return views, nil
}

// scanVideo scans a single row into a Video model. pgx.Rows satisfies pgx.Row,
// so it serves both QueryRow and row iteration.
func scanVideo(row pgx.Row) (*model.Video, error) {
	var video model.Video
	if err := row.Scan(videoScanTargets(&video)...); err != nil {
		return nil, err
	}
	return &video, nil
}

func videoScanTargets(v *model.Video) []any {
	return []any{
		&v.ID,
		&v.OwnerID,
		&v.VideoFile.URL,
		&v.VideoFile.StorageID,
		&v.Thumbnail.URL,
		&v.Thumbnail.StorageID,
		&v.Title,
		&v.Description,
		&v.Duration,
		&v.Views,
		&v.IsPublished,
		&v.CreatedAt,
		&v.UpdatedAt,
	}
}

// Compile-time verification that VideoRepository implements repository.VideoRepository.
var _ repository.VideoRepository = (*VideoRepository)(nil)
