package usecase

import (
	"fmt"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

var (
	// ErrNotOwner is returned when the resource exists but belongs to someone else.
	ErrNotOwner = fmt.Errorf("%w: caller does not own the resource", model.ErrForbidden)

	// ErrSelfSubscription is returned when a user tries to subscribe to their own channel.
	ErrSelfSubscription = fmt.Errorf("%w: cannot subscribe to your own channel", model.ErrConflict)

	// ErrNotInPlaylist is returned when removing a video that is not a playlist member.
	ErrNotInPlaylist = fmt.Errorf("%w: video is not in the playlist", model.ErrNotFound)

	ErrUnsupportedVideoType = fmt.Errorf("%w: video file must be a video/* upload", model.ErrValidation)
	ErrUnsupportedImageType = fmt.Errorf("%w: thumbnail must be a JPEG, PNG or WebP image", model.ErrValidation)
	ErrVideoTooLarge        = fmt.Errorf("%w: video file is too large", model.ErrValidation)
	ErrThumbnailTooLarge    = fmt.Errorf("%w: thumbnail is too large", model.ErrValidation)
	ErrUnreadableVideo      = fmt.Errorf("%w: unreadable video file", model.ErrValidation)

	// errNoRecord is returned when a store reports success without the written row.
	errNoRecord = fmt.Errorf("%w: store returned no record", model.ErrInternal)
)

// upstream tags a store or storage failure. Errors that already carry a kind
// (a not-found row, a duplicate key) keep it.
func upstream(op string, err error) error {
	if model.KindOf(err) != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, model.ErrUpstream, err)
}
