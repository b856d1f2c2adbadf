package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// PlaylistService manages owner-curated playlists. Every mutation is owner-only.
type PlaylistService interface {
	CreatePlaylist(ctx context.Context, principal uuid.UUID, name, description string) (*model.Playlist, error)
	UpdatePlaylist(ctx context.Context, principal, playlistID uuid.UUID, name, description string) (*model.Playlist, error)
	DeletePlaylist(ctx context.Context, principal, playlistID uuid.UUID) error

	// AddVideo appends a video. Adding a member again is a no-op.
	AddVideo(ctx context.Context, principal, playlistID, videoID uuid.UUID) (*model.Playlist, error)

	// RemoveVideo returns ErrNotInPlaylist if the video is not a member.
	RemoveVideo(ctx context.Context, principal, playlistID, videoID uuid.UUID) (*model.Playlist, error)
}

type playlistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
}

// NewPlaylistService creates a new PlaylistService instance.
func NewPlaylistService(playlists repository.PlaylistRepository, videos repository.VideoRepository) PlaylistService {
	return &playlistService{
		playlists: playlists,
		videos:    videos,
	}
}

func (s *playlistService) CreatePlaylist(ctx context.Context, principal uuid.UUID, name, description string) (*model.Playlist, error) {
	playlist, err := model.NewPlaylist(principal, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, upstream("create playlist", err)
	}
	return playlist, nil
}

func (s *playlistService) UpdatePlaylist(ctx context.Context, principal, playlistID uuid.UUID, name, description string) (*model.Playlist, error) {
	name, err := model.NormalizePlaylistName(name)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedPlaylist(ctx, principal, playlistID); err != nil {
		return nil, err
	}

	playlist, err := s.playlists.Update(ctx, playlistID, principal, name, strings.TrimSpace(description))
	if err != nil {
		return nil, upstream("update playlist", err)
	}
	return playlist, nil
}

func (s *playlistService) DeletePlaylist(ctx context.Context, principal, playlistID uuid.UUID) error {
	if _, err := s.ownedPlaylist(ctx, principal, playlistID); err != nil {
		return err
	}

	if err := s.playlists.DeleteOwned(ctx, playlistID, principal); err != nil {
		return upstream("delete playlist", err)
	}
	return nil
}

func (s *playlistService) AddVideo(ctx context.Context, principal, playlistID, videoID uuid.UUID) (*model.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, principal, playlistID); err != nil {
		return nil, err
	}

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, upstream("get video", err)
	}

	playlist, err := s.playlists.AddVideo(ctx, playlistID, principal, videoID)
	if err != nil {
		return nil, upstream("add video to playlist", err)
	}
	return playlist, nil
}

func (s *playlistService) RemoveVideo(ctx context.Context, principal, playlistID, videoID uuid.UUID) (*model.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, principal, playlistID); err != nil {
		return nil, err
	}

	removed, err := s.playlists.RemoveVideo(ctx, playlistID, principal, videoID)
	if err != nil {
		return nil, upstream("remove video from playlist", err)
	}
	if !removed {
		return nil, ErrNotInPlaylist
	}

	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, upstream("get playlist", err)
	}
	return playlist, nil
}

func (s *playlistService) ownedPlaylist(ctx context.Context, principal, playlistID uuid.UUID) (*model.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, upstream("get playlist", err)
	}
	if err := authorize(principal, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}
