package repository

import (
	"context"
	"errors"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// TweetRepository defines persistence operations for tweets.
type TweetRepository interface {
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Tweet, error)
	ListByOwner(ctx context.Context, ownerID uint, viewerID uint, page, limit int) ([]*models.Tweet, int64, error)
	Create(ctx context.Context, tweet *models.Tweet) error
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id uint) error
}

type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository returns a new TweetRepository implementation.
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func applyTweetDetails(query *gorm.DB, viewerID uint) *gorm.DB {
	selectFields := "tweets.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.target_kind = 'tweet' AND likes.target_id = tweets.id) as likes_count"

	if viewerID != 0 {
		selectFields += ", EXISTS(SELECT 1 FROM likes WHERE likes.target_kind = 'tweet' AND likes.target_id = tweets.id AND likes.user_id = ?) as liked"
		query = query.Select(selectFields, viewerID)
	} else {
		selectFields += ", false as liked"
		query = query.Select(selectFields)
	}

	return query.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select(models.PublicColumns())
	})
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Tweet, error) {
	var tweet models.Tweet
	query := applyTweetDetails(r.db.WithContext(ctx), viewerID)
	if err := query.First(&tweet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tweet", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID uint, viewerID uint, page, limit int) ([]*models.Tweet, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Tweet{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	tweets := []*models.Tweet{}
	err := applyTweetDetails(base, viewerID).
		Order("tweets.created_at DESC, tweets.id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tweets).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return tweets, total, nil
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Save(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Tweet{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Tweet", id)
	}
	return nil
}
