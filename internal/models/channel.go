package models

import "time"

// ChannelProfile is the denormalized public view of a user's channel.
// Counts and the subscription flag are computed at query time; password and
// refresh token are never part of this shape.
type ChannelProfile struct {
	ID                uint      `json:"id"`
	Username          string    `json:"username"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Avatar            string    `json:"avatar"`
	CoverImage        string    `json:"cover_image"`
	SubscriberCount   int64     `json:"subscriber_count"`
	SubscribedToCount int64     `json:"subscribed_to_count"`
	// IsSubscribed is true iff the requesting viewer subscribes to this channel.
	IsSubscribed bool      `json:"is_subscribed"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChannelStats aggregates a channel owner's totals for the dashboard.
// All values are zero, never null, for channels with no content.
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalLikes       int64 `json:"total_likes"`
	TotalSubscribers int64 `json:"total_subscribers"`
}
