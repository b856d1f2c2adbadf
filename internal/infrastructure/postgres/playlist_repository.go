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

const playlistColumns = `id, owner_id, name, description, created_at, updated_at`

// PlaylistRepository implements repository.PlaylistRepository using PostgreSQL.
// Membership lives in playlist_videos; its primary key suppresses duplicates and
// position preserves insertion order.
type PlaylistRepository struct {
	db DBTX
}

// NewPlaylistRepository creates a new PlaylistRepository instance.
func NewPlaylistRepository(db DBTX) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create persists a new, empty playlist.
func (r *PlaylistRepository) Create(ctx context.Context, p *model.Playlist) error {
	const query = `
		INSERT INTO playlists (` + playlistColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	recordQuery(metrics.DBQueryInsert, metrics.TablePlaylists)
	_, err := r.db.Exec(ctx, query, p.ID, p.OwnerID, p.Name, p.Description, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrUserNotFound
		}
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	return nil
}

// GetByID retrieves a playlist with its member video IDs in order.
func (r *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	const query = `SELECT ` + playlistColumns + ` FROM playlists WHERE id = $1`

	recordQuery(metrics.DBQuerySelect, metrics.TablePlaylists)
	p, err := scanPlaylist(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist by ID: %w", err)
	}

	return r.withVideoIDs(ctx, p)
}

// Update replaces name and description of an owned playlist.
func (r *PlaylistRepository) Update(ctx context.Context, id, ownerID uuid.UUID, name, description string) (*model.Playlist, error) {
	const query = `
		UPDATE playlists
		SET name = $3, description = $4, updated_at = $5
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + playlistColumns

	recordQuery(metrics.DBQueryUpdate, metrics.TablePlaylists)
	p, err := scanPlaylist(r.db.QueryRow(ctx, query, id, ownerID, name, description, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}

	return r.withVideoIDs(ctx, p)
}

// DeleteOwned removes an owned playlist. Memberships cascade.
func (r *PlaylistRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	const query = `DELETE FROM playlists WHERE id = $1 AND owner_id = $2`

	recordQuery(metrics.DBQueryDelete, metrics.TablePlaylists)
	tag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrPlaylistNotFound
	}

	return nil
}

// AddVideo appends videoID to an owned playlist. Adding a member twice is a no-op.
func (r *PlaylistRepository) AddVideo(ctx context.Context, id, ownerID, videoID uuid.UUID) (*model.Playlist, error) {
	const query = `
		INSERT INTO playlist_videos (playlist_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`

	p, err := r.touch(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	recordQuery(metrics.DBQueryInsert, metrics.TablePlaylistVideo)
	if _, err := r.db.Exec(ctx, query, id, videoID); err != nil {
		if isForeignKeyViolation(err) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to add video to playlist: %w", err)
	}

	return r.withVideoIDs(ctx, p)
}

// RemoveVideo drops videoID from an owned playlist.
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, id, ownerID, videoID uuid.UUID) (bool, error) {
	const query = `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`

	if _, err := r.touch(ctx, id, ownerID); err != nil {
		return false, err
	}

	recordQuery(metrics.DBQueryDelete, metrics.TablePlaylistVideo)
	tag, err := r.db.Exec(ctx, query, id, videoID)
	if err != nil {
		return false, fmt.Errorf("failed to remove video from playlist: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// touch bumps updated_at on an owned playlist and returns it without members.
func (r *PlaylistRepository) touch(ctx context.Context, id, ownerID uuid.UUID) (*model.Playlist, error) {
	const query = `
		UPDATE playlists
		SET updated_at = $3
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + playlistColumns

	recordQuery(metrics.DBQueryUpdate, metrics.TablePlaylists)
	p, err := scanPlaylist(r.db.QueryRow(ctx, query, id, ownerID, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return p, nil
}

func (r *PlaylistRepository) withVideoIDs(ctx context.Context, p *model.Playlist) (*model.Playlist, error) {
	const query = `
		SELECT video_id
		FROM playlist_videos
		WHERE playlist_id = $1
		ORDER BY position
	`

	recordQuery(metrics.DBQuerySelect, metrics.TablePlaylistVideo)
	rows, err := r.db.Query(ctx, query, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist videos: %w", err)
	}
	defer rows.Close()

	p.VideoIDs = []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan playlist video: %w", err)
		}
		p.VideoIDs = append(p.VideoIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating playlist videos: %w", err)
	}

	return p, nil
}

func scanPlaylist(row pgx.Row) (*model.Playlist, error) {
	var p model.Playlist
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Compile-time verification that PlaylistRepository implements repository.PlaylistRepository.
var _ repository.PlaylistRepository = (*PlaylistRepository)(nil)
