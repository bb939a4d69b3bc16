package models

import "time"

// WatchHistory records that a user watched a video. One row per
// (user, video) pair; re-watching bumps WatchedAt so the history stays
// ordered most-recent-first.
type WatchHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_video;index" json:"user_id"`
	VideoID   uint      `gorm:"not null;uniqueIndex:idx_user_video" json:"video_id"`
	WatchedAt time.Time `gorm:"not null;index" json:"watched_at"`

	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}
