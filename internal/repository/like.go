package repository

import (
	"context"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for likes across all
// likeable entity kinds.
type LikeRepository interface {
	// Toggle flips the like state for (userID, target) and reports the
	// resulting state: true when the like now exists.
	Toggle(ctx context.Context, userID uint, target models.LikeTarget) (bool, error)
	CountFor(ctx context.Context, target models.LikeTarget) (int64, error)
	ListLikedVideos(ctx context.Context, userID uint, page, limit int) ([]*models.Video, int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Toggle(ctx context.Context, userID uint, target models.LikeTarget) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		// An existing like was removed.
		return false, nil
	}

	like, err := models.NewLike(userID, target)
	if err != nil {
		return false, err
	}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		// A concurrent toggle can race us to the insert. The like exists
		// either way, which is the state the caller asked for.
		if isUniqueConstraintError(err) {
			return true, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (r *likeRepository) CountFor(ctx context.Context, target models.LikeTarget) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// ListLikedVideos resolves the viewer's liked videos, most recently liked
// first. Every row carries liked = true by construction.
func (r *likeRepository) ListLikedVideos(ctx context.Context, userID uint, page, limit int) ([]*models.Video, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Video{}).
		Joins("JOIN likes ON likes.target_kind = 'video' AND likes.target_id = videos.id").
		Where("likes.user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	videos := []*models.Video{}
	err := base.
		Select("videos.*, "+
			"(SELECT COUNT(*) FROM likes l WHERE l.target_kind = 'video' AND l.target_id = videos.id) as likes_count, "+
			"true as liked").
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select(models.PublicColumns())
		}).
		Order("likes.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return videos, total, nil
}
