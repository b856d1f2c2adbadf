package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyContent = validationError("content cannot be empty")

// NormalizeContent trims user-authored text and rejects blank content.
func NormalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	return content, nil
}

// Comment is a user's comment on a video.
type Comment struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	VideoID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewComment creates a comment on videoID.
func NewComment(ownerID, videoID uuid.UUID, content string) (*Comment, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	content, err := NormalizeContent(content)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		VideoID:   videoID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *Comment) OwnedBy() uuid.UUID { return c.OwnerID }

// CommentView is a comment joined with its owner's profile.
type CommentView struct {
	Comment
	Owner OwnerProfile
}

// Tweet is a short text post on a user's channel.
type Tweet struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTweet creates a tweet owned by ownerID.
func NewTweet(ownerID uuid.UUID, content string) (*Tweet, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	content, err := NormalizeContent(content)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Tweet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (t *Tweet) OwnedBy() uuid.UUID { return t.OwnerID }

// TweetView is a tweet joined with its owner's profile.
type TweetView struct {
	Tweet
	Owner OwnerProfile
}
