package repository

import (
	"context"
	"errors"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for video comments.
type CommentRepository interface {
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Comment, error)
	ListByVideo(ctx context.Context, videoID uint, viewerID uint, page, limit int) ([]*models.Comment, int64, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func applyCommentDetails(query *gorm.DB, viewerID uint) *gorm.DB {
	selectFields := "comments.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.target_kind = 'comment' AND likes.target_id = comments.id) as likes_count"

	if viewerID != 0 {
		selectFields += ", EXISTS(SELECT 1 FROM likes WHERE likes.target_kind = 'comment' AND likes.target_id = comments.id AND likes.user_id = ?) as liked"
		query = query.Select(selectFields, viewerID)
	} else {
		selectFields += ", false as liked"
		query = query.Select(selectFields)
	}

	return query.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select(models.PublicColumns())
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Comment, error) {
	var comment models.Comment
	query := applyCommentDetails(r.db.WithContext(ctx), viewerID)
	if err := query.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByVideo pages a video's comments newest-first.
func (r *commentRepository) ListByVideo(ctx context.Context, videoID uint, viewerID uint, page, limit int) ([]*models.Comment, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	comments := []*models.Comment{}
	err := applyCommentDetails(base, viewerID).
		Order("comments.created_at DESC, comments.id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return comments, total, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}
