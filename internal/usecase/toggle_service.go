package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

// ToggleService flips like and subscription relations.
//
// A toggle is a delete followed, only when nothing was deleted, by an insert
// that ignores an existing row. Two concurrent toggles on one key may both
// report the same state; the key never ends up with two rows.
type ToggleService interface {
	// ToggleLike flips the principal's like on a video, comment or tweet.
	ToggleLike(ctx context.Context, actorID, targetID uuid.UUID, targetType model.TargetType) (model.ToggleResult, error)

	// ToggleSubscription flips the subscriber's subscription to a channel.
	ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (model.ToggleResult, error)
}

type toggleService struct {
	relations repository.RelationRepository
	users     repository.UserRepository
	lookups   map[model.TargetType]func(ctx context.Context, id uuid.UUID) error
}

// NewToggleService creates a new ToggleService instance.
func NewToggleService(
	relations repository.RelationRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	tweets repository.TweetRepository,
	users repository.UserRepository,
) ToggleService {
	return &toggleService{
		relations: relations,
		users:     users,
		lookups: map[model.TargetType]func(ctx context.Context, id uuid.UUID) error{
			model.TargetVideo: func(ctx context.Context, id uuid.UUID) error {
				_, err := videos.GetByID(ctx, id)
				return err
			},
			model.TargetComment: func(ctx context.Context, id uuid.UUID) error {
				_, err := comments.GetByID(ctx, id)
				return err
			},
			model.TargetTweet: func(ctx context.Context, id uuid.UUID) error {
				_, err := tweets.GetByID(ctx, id)
				return err
			},
		},
	}
}

func (s *toggleService) ToggleLike(ctx context.Context, actorID, targetID uuid.UUID, targetType model.TargetType) (model.ToggleResult, error) {
	if !targetType.IsLikeable() {
		return model.ToggleResult{}, model.ErrInvalidTargetType
	}

	if err := s.lookups[targetType](ctx, targetID); err != nil {
		return model.ToggleResult{}, upstream("find like target", err)
	}

	return s.toggle(ctx, model.RelationKey{
		ActorID:    actorID,
		TargetID:   targetID,
		TargetType: targetType,
	})
}

// ToggleSubscription rejects self-subscription before touching the store.
func (s *toggleService) ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (model.ToggleResult, error) {
	if subscriberID == channelID {
		return model.ToggleResult{}, ErrSelfSubscription
	}

	exists, err := s.users.Exists(ctx, channelID)
	if err != nil {
		return model.ToggleResult{}, upstream("find channel", err)
	}
	if !exists {
		return model.ToggleResult{}, repository.ErrUserNotFound
	}

	return s.toggle(ctx, model.RelationKey{
		ActorID:    subscriberID,
		TargetID:   channelID,
		TargetType: model.TargetChannel,
	})
}

func (s *toggleService) toggle(ctx context.Context, key model.RelationKey) (model.ToggleResult, error) {
	removed, err := s.relations.Delete(ctx, key)
	if err != nil {
		metrics.ToggleOperationsTotal.WithLabelValues(key.TargetType.String(), metrics.ResultError).Inc()
		return model.ToggleResult{}, upstream("remove relation", err)
	}
	if removed {
		metrics.ToggleOperationsTotal.WithLabelValues(key.TargetType.String(), metrics.ToggleRemoved).Inc()
		return model.ToggleResult{Active: false}, nil
	}

	if err := s.relations.Insert(ctx, key); err != nil {
		metrics.ToggleOperationsTotal.WithLabelValues(key.TargetType.String(), metrics.ResultError).Inc()
		return model.ToggleResult{}, upstream("add relation", err)
	}
	metrics.ToggleOperationsTotal.WithLabelValues(key.TargetType.String(), metrics.ToggleAdded).Inc()
	return model.ToggleResult{Active: true}, nil
}
