package models

import "time"

// LikeTargetKind identifies which entity kind a like points at.
type LikeTargetKind string

const (
	LikeTargetVideo   LikeTargetKind = "video"
	LikeTargetComment LikeTargetKind = "comment"
	LikeTargetTweet   LikeTargetKind = "tweet"
)

// Valid reports whether the kind is one of the known target kinds.
func (k LikeTargetKind) Valid() bool {
	switch k {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// LikeTarget is a tagged reference to exactly one likeable entity.
type LikeTarget struct {
	Kind LikeTargetKind
	ID   uint
}

// NewLikeTarget builds a LikeTarget, enforcing a known kind and non-zero id.
func NewLikeTarget(kind LikeTargetKind, id uint) (LikeTarget, error) {
	if !kind.Valid() {
		return LikeTarget{}, NewValidationError("Unknown like target kind")
	}
	if id == 0 {
		return LikeTarget{}, NewValidationError("Like target id is required")
	}
	return LikeTarget{Kind: kind, ID: id}, nil
}

// Like records that a user liked a single target. Its existence is the
// "liked" state; deleting it un-likes, so likes are hard-deleted rather
// than soft-deleted. The (user, kind, target) triple is unique so a user
// can like a given target at most once.
type Like struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;uniqueIndex:idx_user_target" json:"user_id"`
	TargetKind LikeTargetKind `gorm:"not null;uniqueIndex:idx_user_target" json:"target_kind"`
	TargetID   uint           `gorm:"not null;uniqueIndex:idx_user_target" json:"target_id"`
	CreatedAt  time.Time      `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// NewLike constructs a Like for the given liker and target.
func NewLike(userID uint, target LikeTarget) (*Like, error) {
	if userID == 0 {
		return nil, NewValidationError("Liker id is required")
	}
	if !target.Kind.Valid() || target.ID == 0 {
		return nil, NewValidationError("Like target is invalid")
	}
	return &Like{
		UserID:     userID,
		TargetKind: target.Kind,
		TargetID:   target.ID,
	}, nil
}
