package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaAsset is an immutable handle to one blob in object storage.
type MediaAsset struct {
	URL       string
	StorageID string
}

// IsZero reports whether the handle references no blob.
func (a MediaAsset) IsZero() bool {
	return a.URL == "" || a.StorageID == ""
}

// Video represents a published video entity in the domain.
// VideoFile and Thumbnail are always populated for a persisted video.
type Video struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	VideoFile   MediaAsset
	Thumbnail   MediaAsset
	Title       string
	Description string
	Duration    float64
	Views       int64
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	ErrEmptyTitle       = validationError("title cannot be empty")
	ErrTitleTooLong     = validationError("title exceeds maximum length of 255 characters")
	ErrInvalidOwnerID   = validationError("owner ID cannot be nil")
	ErrMissingVideoFile = validationError("video file is required")
	ErrMissingThumbnail = validationError("thumbnail is required")
	ErrNoUpdateFields   = validationError("at least one of title, description or thumbnail is required")
	ErrNegativeDuration = validationError("duration cannot be negative")
)

const maxTitleLength = 255

// NewVideo creates a published Video with zero views that references both uploaded assets.
func NewVideo(ownerID uuid.UUID, title, description string, videoFile, thumbnail MediaAsset, duration float64) (*Video, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	title, err := NormalizeTitle(title)
	if err != nil {
		return nil, err
	}
	if videoFile.IsZero() {
		return nil, ErrMissingVideoFile
	}
	if thumbnail.IsZero() {
		return nil, ErrMissingThumbnail
	}
	if duration < 0 {
		return nil, ErrNegativeDuration
	}

	now := time.Now()
	return &Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
		Title:       title,
		Description: strings.TrimSpace(description),
		Duration:    duration,
		Views:       0,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NormalizeTitle trims the title and checks its length.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

// OwnedBy returns the immutable owner of the video.
func (v *Video) OwnedBy() uuid.UUID {
	return v.OwnerID
}

// VideoPatch describes a partial update of a video's mutable fields.
// Nil fields are left unchanged.
type VideoPatch struct {
	Title       *string
	Description *string
	Thumbnail   *MediaAsset
}

// IsEmpty reports whether the patch changes nothing.
func (p VideoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Thumbnail == nil
}

// Normalize validates the patch and returns a copy with trimmed text fields.
func (p VideoPatch) Normalize() (VideoPatch, error) {
	if p.IsEmpty() {
		return p, ErrNoUpdateFields
	}
	if p.Title != nil {
		title, err := NormalizeTitle(*p.Title)
		if err != nil {
			return p, err
		}
		p.Title = &title
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		p.Description = &desc
	}
	if p.Thumbnail != nil && p.Thumbnail.IsZero() {
		return p, ErrMissingThumbnail
	}
	return p, nil
}

// VideoCard is a video joined with a snapshot of its owner's public profile.
type VideoCard struct {
	Video
	Owner OwnerProfile
}
