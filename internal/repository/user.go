// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"clipstream/internal/cache"
	"clipstream/internal/models"

	"gorm.io/gorm"
)

// userReadColumns are the columns GetByID loads and caches. Password and
// refresh_token are excluded: they carry json:"-" tags, so a redis round-trip
// would silently drop them, and a cached struct must never feed a write.
var userReadColumns = []string{
	"id", "username", "email", "full_name", "avatar", "cover_image",
	"created_at", "updated_at",
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetWithSecrets loads the full row, credential columns included. It
	// never touches the cache; auth checks need the real stored values.
	GetWithSecrets(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// UpdateColumns writes only the named columns, so a partially loaded
	// struct can never clobber credentials with zero values.
	UpdateColumns(ctx context.Context, id uint, values map[string]any) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	RecordWatch(ctx context.Context, userID, videoID uint) error
	GetWatchHistory(ctx context.Context, userID uint, page, limit int) ([]*models.Video, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByID serves the public read model through the cache. Both the cache-hit
// and the database path return the same sanitized shape.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).Select(userReadColumns).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetWithSecrets(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", strings.ToLower(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) UpdateColumns(ctx context.Context, id uint, values map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return models.NewValidationError("Email is already registered")
		}
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// RecordWatch upserts a watch-history row for (user, video). Re-watching
// bumps watched_at so GetWatchHistory stays most-recent-first.
func (r *userRepository) RecordWatch(ctx context.Context, userID, videoID uint) error {
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO watch_histories (user_id, video_id, watched_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = NOW()`,
		userID, videoID,
	).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetWatchHistory resolves the viewer's history into full videos, ordered by
// most recently watched, each with a minimal public owner attached. An empty
// history yields an empty slice, not an error.
func (r *userRepository) GetWatchHistory(ctx context.Context, userID uint, page, limit int) ([]*models.Video, error) {
	videos := []*models.Video{}
	err := r.db.WithContext(ctx).
		Joins("JOIN watch_histories ON watch_histories.video_id = videos.id").
		Where("watch_histories.user_id = ?", userID).
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select(models.PublicColumns())
		}).
		Order("watch_histories.watched_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}
