package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyPlaylistName = validationError("playlist name cannot be empty")

// Playlist is an owner-curated ordered set of videos.
type Playlist struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	VideoIDs    []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPlaylist creates an empty playlist.
func NewPlaylist(ownerID uuid.UUID, name, description string) (*Playlist, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	name, err := NormalizePlaylistName(name)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
		VideoIDs:    []uuid.UUID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NormalizePlaylistName trims the name and rejects blank names.
func NormalizePlaylistName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyPlaylistName
	}
	return name, nil
}

func (p *Playlist) OwnedBy() uuid.UUID { return p.OwnerID }

// Contains reports whether videoID is a member of the playlist.
func (p *Playlist) Contains(videoID uuid.UUID) bool {
	for _, id := range p.VideoIDs {
		if id == videoID {
			return true
		}
	}
	return false
}

// PlaylistSummary is the list view of a playlist.
// Thumbnail is the first member video's thumbnail, nil for an empty playlist.
type PlaylistSummary struct {
	ID          uuid.UUID
	Name        string
	Description string
	TotalVideos int64
	Thumbnail   *MediaAsset
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PlaylistDetail is a playlist with its owner and member videos joined in.
type PlaylistDetail struct {
	ID          uuid.UUID
	Name        string
	Description string
	Owner       OwnerProfile
	Videos      []VideoCard
	TotalVideos int64
	TotalViews  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
