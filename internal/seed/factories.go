// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"clipstream/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	NumUsers  int
	NumVideos int
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
	// SkipBcrypt stores a plaintext marker instead of hashing. Dev only;
	// login will not work against such rows.
	SkipBcrypt bool
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pastTime returns a timestamp spread over the configured window so feeds
// look lived-in rather than created all at once.
func (f *Factory) pastTime() time.Time {
	daysBack := f.rng.Intn(f.opts.MaxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(hoursBack) * time.Hour).
		Add(-time.Duration(minsBack) * time.Minute)
}

// CreateUser constructs and persists a sample user. Overrides may modify
// the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:   fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:      gofakeit.Email(),
		FullName:   gofakeit.Name(),
		Avatar:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		CoverImage: fmt.Sprintf("https://picsum.photos/seed/%s/1200/300", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateVideo constructs and persists a video for the given owner.
func (f *Factory) CreateVideo(owner *models.User, overrides ...func(*models.Video)) (*models.Video, error) {
	id := gofakeit.UUID()
	video := &models.Video{
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 3, 5, "\n"),
		VideoFile:   fmt.Sprintf("https://cdn.clipstream.dev/videos/%s.mp4", id),
		Thumbnail:   fmt.Sprintf("https://picsum.photos/seed/%s/1280/720", id),
		Duration:    float64(f.rng.Intn(1800) + 30),
		Views:       int64(f.rng.Intn(50000)),
		IsPublished: f.rng.Intn(10) > 1,
		OwnerID:     owner.ID,
		CreatedAt:   f.pastTime(),
	}

	for _, override := range overrides {
		override(video)
	}
	if err := f.db.Create(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

// CreateTweet constructs and persists a tweet for the given owner.
func (f *Factory) CreateTweet(owner *models.User, overrides ...func(*models.Tweet)) (*models.Tweet, error) {
	tweet := &models.Tweet{
		Content:   gofakeit.Sentence(12),
		OwnerID:   owner.ID,
		CreatedAt: f.pastTime(),
	}
	for _, override := range overrides {
		override(tweet)
	}
	if err := f.db.Create(tweet).Error; err != nil {
		return nil, err
	}
	return tweet, nil
}

// CreateComment constructs and persists a comment on the given video.
func (f *Factory) CreateComment(owner *models.User, video *models.Video, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:   gofakeit.Sentence(8),
		VideoID:   video.ID,
		OwnerID:   owner.ID,
		CreatedAt: f.pastTime(),
	}
	for _, override := range overrides {
		override(comment)
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from the user on the given target. Duplicate
// likes are skipped silently so random meshes don't fail on collisions.
func (f *Factory) CreateLike(user *models.User, target models.LikeTarget) error {
	like, err := models.NewLike(user.ID, target)
	if err != nil {
		return err
	}
	err = f.db.Create(like).Error
	if err != nil && isDuplicate(err) {
		return nil
	}
	return err
}

// CreateSubscription persists a subscription; duplicates are skipped.
func (f *Factory) CreateSubscription(subscriber, channel *models.User) error {
	if subscriber.ID == channel.ID {
		return nil
	}
	sub := &models.Subscription{SubscriberID: subscriber.ID, ChannelID: channel.ID}
	err := f.db.Create(sub).Error
	if err != nil && isDuplicate(err) {
		return nil
	}
	return err
}

// CreatePlaylist constructs and persists a playlist holding the given videos.
func (f *Factory) CreatePlaylist(owner *models.User, videos []*models.Video, overrides ...func(*models.Playlist)) (*models.Playlist, error) {
	playlist := &models.Playlist{
		Name:        gofakeit.Sentence(3),
		Description: gofakeit.Sentence(10),
		OwnerID:     owner.ID,
	}
	for _, override := range overrides {
		override(playlist)
	}
	if err := f.db.Create(playlist).Error; err != nil {
		return nil, err
	}
	if len(videos) > 0 {
		if err := f.db.Model(playlist).Association("Videos").Append(videos); err != nil {
			return nil, err
		}
	}
	return playlist, nil
}
