package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// TweetService manages short text posts on a user's channel.
type TweetService interface {
	CreateTweet(ctx context.Context, principal uuid.UUID, content string) (*model.Tweet, error)
	UpdateTweet(ctx context.Context, principal, tweetID uuid.UUID, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, principal, tweetID uuid.UUID) error
}

type tweetService struct {
	tweets repository.TweetRepository
}

// NewTweetService creates a new TweetService instance.
func NewTweetService(tweets repository.TweetRepository) TweetService {
	return &tweetService{tweets: tweets}
}

func (s *tweetService) CreateTweet(ctx context.Context, principal uuid.UUID, content string) (*model.Tweet, error) {
	tweet, err := model.NewTweet(principal, content)
	if err != nil {
		return nil, err
	}

	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, upstream("create tweet", err)
	}
	return tweet, nil
}

func (s *tweetService) UpdateTweet(ctx context.Context, principal, tweetID uuid.UUID, content string) (*model.Tweet, error) {
	content, err := model.NormalizeContent(content)
	if err != nil {
		return nil, err
	}

	tweet, err := s.tweets.UpdateContent(ctx, tweetID, principal, content)
	if err != nil {
		if errors.Is(err, repository.ErrTweetNotFound) {
			return nil, s.classify(ctx, principal, tweetID, err)
		}
		return nil, upstream("update tweet", err)
	}
	return tweet, nil
}

func (s *tweetService) DeleteTweet(ctx context.Context, principal, tweetID uuid.UUID) error {
	if err := s.tweets.DeleteOwned(ctx, tweetID, principal); err != nil {
		if errors.Is(err, repository.ErrTweetNotFound) {
			return s.classify(ctx, principal, tweetID, err)
		}
		return upstream("delete tweet", err)
	}
	return nil
}

func (s *tweetService) classify(ctx context.Context, principal, tweetID uuid.UUID, miss error) error {
	return classifyMiss(ctx, principal, miss, func(ctx context.Context) (*model.Tweet, error) {
		return s.tweets.GetByID(ctx, tweetID)
	})
}
