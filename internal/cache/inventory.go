package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	VideoKeyPrefix   = "video:%d"
	ProfileKeyPrefix = "channel:%s:viewer:%d"
	StatsKeyPrefix   = "stats:%d"
	// profileKeysPrefix names the set of live profile entries per channel.
	// Profile entries are viewer-scoped, so invalidating a channel has to
	// find every viewer's copy through this set.
	profileKeysPrefix = "channel-keys:%d"
)

const (
	UserTTL    = 5 * time.Minute
	VideoTTL   = 10 * time.Minute
	ProfileTTL = 2 * time.Minute
	StatsTTL   = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func VideoKey(videoID uint) string {
	return fmt.Sprintf(VideoKeyPrefix, videoID)
}

func ProfileKey(username string, viewerID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, username, viewerID)
}

func StatsKey(ownerID uint) string {
	return fmt.Sprintf(StatsKeyPrefix, ownerID)
}

func profileKeysKey(channelID uint) string {
	return fmt.Sprintf(profileKeysPrefix, channelID)
}

// TrackProfileKey records a viewer-scoped profile entry under its channel so
// InvalidateChannel can drop every viewer's copy at once. The set expires
// together with the newest entry it tracks.
func TrackProfileKey(ctx context.Context, channelID uint, key string) {
	if client == nil {
		return
	}
	set := profileKeysKey(channelID)
	client.SAdd(ctx, set, key)
	client.Expire(ctx, set, ProfileTTL)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateVideo(ctx context.Context, videoID uint) {
	Invalidate(ctx, VideoKey(videoID))
}

// InvalidateChannel drops the cached stats for a channel owner plus every
// tracked profile entry, so a viewer who subscribes sees the new state on the
// next read instead of a stale is_subscribed flag.
func InvalidateChannel(ctx context.Context, ownerID uint) {
	Invalidate(ctx, StatsKey(ownerID))
	if client == nil {
		return
	}
	set := profileKeysKey(ownerID)
	if keys, err := client.SMembers(ctx, set).Result(); err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
	client.Del(ctx, set)
}
