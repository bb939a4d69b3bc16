package repository

import (
	"context"
	"errors"
	"strings"

	"clipstream/internal/cache"
	"clipstream/internal/models"

	"gorm.io/gorm"
)

// ChannelRepository builds the aggregated channel read models: the public
// profile and the owner dashboard stats.
type ChannelRepository interface {
	GetProfile(ctx context.Context, username string, viewerID uint) (*models.ChannelProfile, error)
	GetStats(ctx context.Context, ownerID uint) (*models.ChannelStats, error)
}

type channelRepository struct {
	db *gorm.DB
}

// NewChannelRepository returns a new ChannelRepository implementation.
func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

// GetProfile resolves a channel by username with subscription counts and,
// when a viewer is known, whether that viewer subscribes to the channel.
func (r *channelRepository) GetProfile(ctx context.Context, username string, viewerID uint) (*models.ChannelProfile, error) {
	username = strings.ToLower(username)
	var profile models.ChannelProfile
	key := cache.ProfileKey(username, viewerID)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		selectFields := `users.id, users.username, users.full_name, users.email,
			users.avatar, users.cover_image, users.created_at,
			(SELECT COUNT(*) FROM subscriptions WHERE subscriptions.channel_id = users.id) as subscriber_count,
			(SELECT COUNT(*) FROM subscriptions WHERE subscriptions.subscriber_id = users.id) as subscribed_to_count`

		query := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username)
		if viewerID != 0 {
			selectFields += ", EXISTS(SELECT 1 FROM subscriptions WHERE subscriptions.channel_id = users.id AND subscriptions.subscriber_id = ?) as is_subscribed"
			query = query.Select(selectFields, viewerID)
		} else {
			selectFields += ", false as is_subscribed"
			query = query.Select(selectFields)
		}

		if err := query.First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Channel", username)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	// Registering on every read keeps the key set alive across cache hits.
	cache.TrackProfileKey(ctx, profile.ID, key)
	return &profile, nil
}

// GetStats aggregates a channel owner's totals. Channels with no videos,
// likes, or subscribers get explicit zeros via COALESCE.
func (r *channelRepository) GetStats(ctx context.Context, ownerID uint) (*models.ChannelStats, error) {
	var stats models.ChannelStats
	key := cache.StatsKey(ownerID)

	err := cache.Aside(ctx, key, &stats, cache.StatsTTL, func() error {
		row := r.db.WithContext(ctx).Raw(`
			SELECT
				(SELECT COUNT(*) FROM videos WHERE owner_id = ? AND deleted_at IS NULL) as total_videos,
				COALESCE((SELECT SUM(views) FROM videos WHERE owner_id = ? AND deleted_at IS NULL), 0) as total_views,
				(SELECT COUNT(*) FROM likes
					JOIN videos ON likes.target_kind = 'video' AND likes.target_id = videos.id
					WHERE videos.owner_id = ? AND videos.deleted_at IS NULL) as total_likes,
				(SELECT COUNT(*) FROM subscriptions WHERE channel_id = ?) as total_subscribers`,
			ownerID, ownerID, ownerID, ownerID,
		)
		if err := row.Scan(&stats).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &stats, nil
}
