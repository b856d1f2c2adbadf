package model

import "github.com/google/uuid"

// TargetType identifies what a toggle relation points at.
type TargetType string

const (
	TargetVideo   TargetType = "video"
	TargetComment TargetType = "comment"
	TargetTweet   TargetType = "tweet"
	TargetChannel TargetType = "channel"
)

var ErrInvalidTargetType = validationError("invalid relation target type")

func (t TargetType) IsValid() bool {
	switch t {
	case TargetVideo, TargetComment, TargetTweet, TargetChannel:
		return true
	default:
		return false
	}
}

// IsLikeable reports whether a like can point at this target type.
func (t TargetType) IsLikeable() bool {
	return t == TargetVideo || t == TargetComment || t == TargetTweet
}

func (t TargetType) String() string {
	return string(t)
}

// RelationKey identifies a toggle relation row. The row's existence is the
// relation's only state: at most one row exists per key.
type RelationKey struct {
	ActorID    uuid.UUID
	TargetID   uuid.UUID
	TargetType TargetType
}

// ToggleResult reports the relation state after a toggle.
type ToggleResult struct {
	Active bool
}
