package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// StatsService computes channel dashboard aggregates.
type StatsService interface {
	ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error)
}

type statsService struct {
	repo repository.StatsRepository
}

// NewStatsService creates a new StatsService instance.
func NewStatsService(repo repository.StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error) {
	stats, err := s.repo.ChannelStats(ctx, channelID)
	if err != nil {
		return nil, upstream("channel stats", err)
	}
	return stats, nil
}
