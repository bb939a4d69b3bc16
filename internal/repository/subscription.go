package repository

import (
	"context"

	"clipstream/internal/cache"
	"clipstream/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository defines persistence operations for channel
// subscriptions.
type SubscriptionRepository interface {
	// Toggle flips the subscription state for (subscriberID, channelID) and
	// reports the resulting state: true when the subscription now exists.
	Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error)
	ListSubscribers(ctx context.Context, channelID uint, page, limit int) ([]*models.User, int64, error)
	ListSubscribedChannels(ctx context.Context, subscriberID uint, page, limit int) ([]*models.User, int64, error)
	CountSubscribers(ctx context.Context, channelID uint) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository returns a new SubscriptionRepository implementation.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateChannel(ctx, channelID)
		return false, nil
	}

	sub := &models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if isUniqueConstraintError(err) {
			return true, nil
		}
		return false, models.NewInternalError(err)
	}
	cache.InvalidateChannel(ctx, channelID)
	return true, nil
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uint, page, limit int) ([]*models.User, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.id").
		Where("subscriptions.channel_id = ?", channelID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	users := []*models.User{}
	err := base.
		Select("users.id, users.username, users.full_name, users.avatar").
		Order("subscriptions.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID uint, page, limit int) ([]*models.User, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.channel_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	users := []*models.User{}
	err := base.
		Select("users.id, users.username, users.full_name, users.avatar").
		Order("subscriptions.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

func (r *subscriptionRepository) CountSubscribers(ctx context.Context, channelID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
