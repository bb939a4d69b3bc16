package repository

import (
	"context"
	"errors"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// PlaylistRepository defines persistence operations for playlists.
type PlaylistRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uint, page, limit int) ([]*models.Playlist, int64, error)
	Create(ctx context.Context, playlist *models.Playlist) error
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id uint) error
	AddVideo(ctx context.Context, playlist *models.Playlist, video *models.Video) error
	RemoveVideo(ctx context.Context, playlist *models.Playlist, video *models.Video) error
}

type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository returns a new PlaylistRepository implementation.
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.db.WithContext(ctx).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Owner", func(db *gorm.DB) *gorm.DB {
				return db.Select(models.PublicColumns())
			})
		}).
		First(&playlist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Playlist", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uint, page, limit int) ([]*models.Playlist, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Playlist{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	playlists := []*models.Playlist{}
	err := base.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&playlists).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return playlists, total, nil
}

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	if err := r.db.WithContext(ctx).Save(playlist).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Select("Videos").Delete(&models.Playlist{ID: id})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Playlist", id)
	}
	return nil
}

// AddVideo is idempotent: appending an already-present video is a no-op at
// the association level.
func (r *playlistRepository) AddVideo(ctx context.Context, playlist *models.Playlist, video *models.Video) error {
	err := r.db.WithContext(ctx).Model(playlist).Association("Videos").Append(video)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlist *models.Playlist, video *models.Video) error {
	err := r.db.WithContext(ctx).Model(playlist).Association("Videos").Delete(video)
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
