// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Video represents an uploaded video owned by a single user.
type Video struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	VideoFile   string `gorm:"not null" json:"video_file"`
	Thumbnail   string `json:"thumbnail"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// Duration in seconds. Set only from upload-provider metadata, never
	// from client input.
	Duration    float64 `json:"duration"`
	Views       int64   `gorm:"not null;default:0" json:"views"`
	IsPublished bool    `gorm:"not null;default:true" json:"is_published"`
	OwnerID     uint    `gorm:"not null;index" json:"owner_id"`
	Owner       User    `gorm:"foreignKey:OwnerID" json:"owner"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the requesting viewer liked this video (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
