package repository

import (
	"fmt"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

var (
	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = fmt.Errorf("video %w", model.ErrNotFound)

	// ErrCommentNotFound is returned when a comment cannot be found.
	ErrCommentNotFound = fmt.Errorf("comment %w", model.ErrNotFound)

	// ErrTweetNotFound is returned when a tweet cannot be found.
	ErrTweetNotFound = fmt.Errorf("tweet %w", model.ErrNotFound)

	// ErrPlaylistNotFound is returned when a playlist cannot be found.
	ErrPlaylistNotFound = fmt.Errorf("playlist %w", model.ErrNotFound)

	// ErrUserNotFound is returned when a user (channel) cannot be found.
	ErrUserNotFound = fmt.Errorf("user %w", model.ErrNotFound)

	// ErrDuplicate is returned when an insert violates a unique key.
	ErrDuplicate = fmt.Errorf("%w: record already exists", model.ErrConflict)

	// ErrBucketNotFound is returned when the configured storage bucket does not exist.
	ErrBucketNotFound = fmt.Errorf("storage bucket %w", model.ErrNotFound)
)
