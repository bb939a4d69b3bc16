// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a video.
type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"not null" json:"content"`
	VideoID uint   `gorm:"not null;index" json:"video_id"`
	Video   Video  `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	OwnerID uint   `gorm:"not null" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner"`
	// LikesCount is not persisted; computed at query time
	LikesCount int            `gorm:"->" json:"likes_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
