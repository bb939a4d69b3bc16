package repository

import (
	"context"
	"errors"
	"fmt"

	"clipstream/internal/cache"
	"clipstream/internal/models"

	"gorm.io/gorm"
)

// VideoFilter narrows a feed query. Zero values mean "no filter".
type VideoFilter struct {
	OwnerID       uint
	Query         string
	OnlyPublished bool
}

// videoSortColumns is the allow-list for feed ordering. Anything outside it
// is rejected so caller-supplied identifiers never reach the SQL text.
var videoSortColumns = map[string]bool{
	"created_at": true,
	"views":      true,
	"duration":   true,
	"title":      true,
}

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Video, error)
	List(ctx context.Context, filter VideoFilter, viewerID uint, page, limit int, sortBy, sortDir string) ([]*models.Video, int64, error)
	Create(ctx context.Context, video *models.Video) error
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository returns a new VideoRepository implementation.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

// applyVideoDetails attaches the computed read-model columns: likes_count
// always, liked only when a viewer is known.
func applyVideoDetails(query *gorm.DB, viewerID uint) *gorm.DB {
	selectFields := "videos.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.target_kind = 'video' AND likes.target_id = videos.id) as likes_count"

	if viewerID != 0 {
		selectFields += ", EXISTS(SELECT 1 FROM likes WHERE likes.target_kind = 'video' AND likes.target_id = videos.id AND likes.user_id = ?) as liked"
		query = query.Select(selectFields, viewerID)
	} else {
		selectFields += ", false as liked"
		query = query.Select(selectFields)
	}

	return query.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select(models.PublicColumns())
	})
}

func (r *videoRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Video, error) {
	var video models.Video
	query := applyVideoDetails(r.db.WithContext(ctx), viewerID)
	if err := query.First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Video", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &video, nil
}

// List returns a page of the feed plus the total match count. Results are
// ordered by sortBy/sortDir with id as a tiebreaker for stable pagination.
func (r *videoRepository) List(ctx context.Context, filter VideoFilter, viewerID uint, page, limit int, sortBy, sortDir string) ([]*models.Video, int64, error) {
	if sortBy == "" {
		sortBy = "created_at"
	}
	if !videoSortColumns[sortBy] {
		return nil, 0, models.NewValidationError("Invalid sort field: " + sortBy)
	}
	if sortDir != "asc" {
		sortDir = "desc"
	}

	base := r.db.WithContext(ctx).Model(&models.Video{})

	if filter.OnlyPublished {
		base = base.Where("is_published = ?", true)
	}
	if filter.OwnerID != 0 {
		base = base.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		base = base.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	videos := []*models.Video{}
	query := applyVideoDetails(base, viewerID).
		Order(fmt.Sprintf("videos.%s %s, videos.id %s", sortBy, sortDir, sortDir)).
		Offset((page - 1) * limit).
		Limit(limit)

	if err := query.Find(&videos).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return videos, total, nil
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, video.ID)
	cache.InvalidateChannel(ctx, video.OwnerID)
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	var video models.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Video", id)
		}
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&video).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, id)
	cache.InvalidateChannel(ctx, video.OwnerID)
	return nil
}

// IncrementViews bumps the view counter atomically in SQL so concurrent
// watches never lose updates.
func (r *videoRepository) IncrementViews(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Video", id)
	}
	return nil
}
