package postgres

import (
	"context"
	"fmt"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

// RelationRepository implements repository.RelationRepository using PostgreSQL.
// The primary key (actor_id, target_id, target_type) enforces at most one row per key.
type RelationRepository struct {
	db DBTX
}

// NewRelationRepository creates a new RelationRepository instance.
func NewRelationRepository(db DBTX) *RelationRepository {
	return &RelationRepository{db: db}
}

// Delete removes the relation row and reports whether one existed.
func (r *RelationRepository) Delete(ctx context.Context, key model.RelationKey) (bool, error) {
	const query = `
		DELETE FROM relations
		WHERE actor_id = $1 AND target_id = $2 AND target_type = $3
	`

	recordQuery(metrics.DBQueryDelete, metrics.TableRelations)
	tag, err := r.db.Exec(ctx, query, key.ActorID, key.TargetID, key.TargetType.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete relation: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Insert creates the relation row. A concurrent insert of the same key is absorbed.
func (r *RelationRepository) Insert(ctx context.Context, key model.RelationKey) error {
	const query = `
		INSERT INTO relations (actor_id, target_id, target_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (actor_id, target_id, target_type) DO NOTHING
	`

	recordQuery(metrics.DBQueryInsert, metrics.TableRelations)
	_, err := r.db.Exec(ctx, query, key.ActorID, key.TargetID, key.TargetType.String())
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert relation: %w", err)
	}

	return nil
}

// Compile-time verification that RelationRepository implements repository.RelationRepository.
var _ repository.RelationRepository = (*RelationRepository)(nil)
