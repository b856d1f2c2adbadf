package model

import "github.com/google/uuid"

// Owned is implemented by every resource with an immutable owner.
type Owned interface {
	OwnedBy() uuid.UUID
}

// OwnerProfile is the denormalized public snapshot of a user embedded in read views.
type OwnerProfile struct {
	ID       uuid.UUID
	Username string
	FullName string
	Avatar   string
}

// ChannelStats aggregates a channel's totals for its dashboard.
type ChannelStats struct {
	ChannelID        uuid.UUID
	TotalVideos      int64
	TotalSubscribers int64
	TotalViews       int64
	TotalLikes       int64
}
