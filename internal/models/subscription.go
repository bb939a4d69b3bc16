package models

import "time"

// Subscription records that a subscriber follows a channel. Both sides are
// users; the (subscriber, channel) pair is unique. Unsubscribing deletes
// the row outright, same as un-liking.
type Subscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubscriberID uint      `gorm:"not null;uniqueIndex:idx_subscriber_channel" json:"subscriber_id"`
	ChannelID    uint      `gorm:"not null;uniqueIndex:idx_subscriber_channel;index" json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`

	Subscriber User `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	Channel    User `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
}
