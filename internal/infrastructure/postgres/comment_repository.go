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

const commentColumns = `id, owner_id, video_id, content, created_at, updated_at`

// CommentRepository implements repository.CommentRepository using PostgreSQL.
type CommentRepository struct {
	db DBTX
}

// NewCommentRepository creates a new CommentRepository instance.
func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create persists a new comment. A missing video surfaces as ErrVideoNotFound.
func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	const query = `
		INSERT INTO comments (` + commentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	recordQuery(metrics.DBQueryInsert, metrics.TableComments)
	_, err := r.db.Exec(ctx, query, c.ID, c.OwnerID, c.VideoID, c.Content, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrVideoNotFound
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by its unique identifier.
func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	recordQuery(metrics.DBQuerySelect, metrics.TableComments)
	c, err := scanComment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment by ID: %w", err)
	}

	return c, nil
}

// UpdateContent rewrites an owned comment.
func (r *CommentRepository) UpdateContent(ctx context.Context, id, ownerID uuid.UUID, content string) (*model.Comment, error) {
	const query = `
		UPDATE comments
		SET content = $3, updated_at = $4
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + commentColumns

	recordQuery(metrics.DBQueryUpdate, metrics.TableComments)
	c, err := scanComment(r.db.QueryRow(ctx, query, id, ownerID, content, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return c, nil
}

// DeleteOwned removes an owned comment.
func (r *CommentRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	const query = `DELETE FROM comments WHERE id = $1 AND owner_id = $2`

	recordQuery(metrics.DBQueryDelete, metrics.TableComments)
	tag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

func scanComment(row pgx.Row) (*model.Comment, error) {
	var c model.Comment
	if err := row.Scan(&c.ID, &c.OwnerID, &c.VideoID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Compile-time verification that CommentRepository implements repository.CommentRepository.
var _ repository.CommentRepository = (*CommentRepository)(nil)
