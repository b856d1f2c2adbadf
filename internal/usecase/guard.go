package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// Owns reports whether principal is the immutable owner of resource.
func Owns(principal uuid.UUID, resource model.Owned) bool {
	return principal != uuid.Nil && resource.OwnedBy() == principal
}

// authorize returns ErrNotOwner unless principal owns resource.
func authorize(principal uuid.UUID, resource model.Owned) error {
	if !Owns(principal, resource) {
		return ErrNotOwner
	}
	return nil
}

// classifyMiss runs after an owner-conditioned statement matched no row and
// tells "absent" apart from "owned by someone else".
func classifyMiss[T model.Owned](ctx context.Context, principal uuid.UUID, miss error, lookup func(context.Context) (T, error)) error {
	res, err := lookup(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return upstream("lookup", err)
	}
	if !Owns(principal, res) {
		return ErrNotOwner
	}
	// Row exists and is owned: it changed between the two statements.
	return miss
}
