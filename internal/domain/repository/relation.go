package repository

import (
	"context"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// RelationRepository stores toggle relations (likes and subscriptions).
// Rows are only ever inserted or deleted, never updated.
type RelationRepository interface {
	// Delete removes the row for key and reports whether a row existed.
	Delete(ctx context.Context, key model.RelationKey) (bool, error)

	// Insert creates the row for key. Inserting an existing key is a no-op.
	Insert(ctx context.Context, key model.RelationKey) error
}
