// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Every user is also a channel that
// other users can subscribe to.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	FullName string `json:"full_name"`
	Password string `gorm:"not null" json:"-"`
	Avatar   string `json:"avatar"`
	// CoverImage is the channel banner shown on the profile page.
	CoverImage string `json:"cover_image"`
	// RefreshToken holds the currently valid refresh token. Rotated on every
	// refresh, cleared on logout.
	RefreshToken string         `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Videos []Video `gorm:"foreignKey:OwnerID" json:"videos,omitempty"`
	Tweets []Tweet `gorm:"foreignKey:OwnerID" json:"tweets,omitempty"`
}

// PublicColumns are the user columns safe to join into read models.
// Password and refresh_token must never appear here.
func PublicColumns() []string {
	return []string{"id", "username", "full_name", "avatar"}
}
