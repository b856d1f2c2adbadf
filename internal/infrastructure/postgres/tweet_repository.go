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

const tweetColumns = `id, owner_id, content, created_at, updated_at`

// TweetRepository implements repository.TweetRepository using PostgreSQL.
type TweetRepository struct {
	db DBTX
}

// NewTweetRepository creates a new TweetRepository instance.
func NewTweetRepository(db DBTX) *TweetRepository {
	return &TweetRepository{db: db}
}

// Create persists a new tweet.
func (r *TweetRepository) Create(ctx context.Context, t *model.Tweet) error {
	const query = `
		INSERT INTO tweets (` + tweetColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`

	recordQuery(metrics.DBQueryInsert, metrics.TableTweets)
	_, err := r.db.Exec(ctx, query, t.ID, t.OwnerID, t.Content, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrUserNotFound
		}
		return fmt.Errorf("failed to create tweet: %w", err)
	}

	return nil
}

// GetByID retrieves a tweet by its unique identifier.
func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	const query = `SELECT ` + tweetColumns + ` FROM tweets WHERE id = $1`

	recordQuery(metrics.DBQuerySelect, metrics.TableTweets)
	t, err := scanTweet(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to get tweet by ID: %w", err)
	}

	return t, nil
}

// UpdateContent rewrites an owned tweet.
func (r *TweetRepository) UpdateContent(ctx context.Context, id, ownerID uuid.UUID, content string) (*model.Tweet, error) {
	const query = `
		UPDATE tweets
		SET content = $3, updated_at = $4
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + tweetColumns

	recordQuery(metrics.DBQueryUpdate, metrics.TableTweets)
	t, err := scanTweet(r.db.QueryRow(ctx, query, id, ownerID, content, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}

	return t, nil
}

// DeleteOwned removes an owned tweet.
func (r *TweetRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	const query = `DELETE FROM tweets WHERE id = $1 AND owner_id = $2`

	recordQuery(metrics.DBQueryDelete, metrics.TableTweets)
	tag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrTweetNotFound
	}

	return nil
}

func scanTweet(row pgx.Row) (*model.Tweet, error) {
	var t model.Tweet
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Compile-time verification that TweetRepository implements repository.TweetRepository.
var _ repository.TweetRepository = (*TweetRepository)(nil)
