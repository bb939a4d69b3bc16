package seed

import (
	"fmt"
	"log"
	"strings"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with a realistic content mesh: creators
// with videos, viewers who comment, like and subscribe, and playlists
// collecting videos.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes all seeded data. Join and leaf tables go first so
// foreign keys don't block the deletes.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"playlist_videos",
		"watch_histories",
		"likes",
		"subscriptions",
		"comments",
		"playlists",
		"tweets",
		"videos",
		"users",
	}
	for _, table := range tables {
		if err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Cleared all seeded tables")
	return nil
}

// SeedDemo builds the full demo mesh and returns the created users.
func (s *Seeder) SeedDemo() ([]*models.User, error) {
	f := s.factory

	numUsers := f.opts.NumUsers
	if numUsers <= 0 {
		numUsers = 20
	}
	numVideos := f.opts.NumVideos
	if numVideos <= 0 {
		numVideos = numUsers * 4
	}

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	videos := make([]*models.Video, 0, numVideos)
	for i := 0; i < numVideos; i++ {
		owner := users[f.rng.Intn(len(users))]
		video, err := f.CreateVideo(owner)
		if err != nil {
			return nil, fmt.Errorf("creating video: %w", err)
		}
		videos = append(videos, video)
	}
	log.Printf("Seeded %d videos", len(videos))

	for _, user := range users {
		for i := 0; i < f.rng.Intn(4); i++ {
			if _, err := f.CreateTweet(user); err != nil {
				return nil, fmt.Errorf("creating tweet: %w", err)
			}
		}
	}

	for _, video := range videos {
		for i := 0; i < f.rng.Intn(6); i++ {
			author := users[f.rng.Intn(len(users))]
			comment, err := f.CreateComment(author, video)
			if err != nil {
				return nil, fmt.Errorf("creating comment: %w", err)
			}
			if f.rng.Intn(2) == 0 {
				liker := users[f.rng.Intn(len(users))]
				target := models.LikeTarget{Kind: models.LikeTargetComment, ID: comment.ID}
				if err := f.CreateLike(liker, target); err != nil {
					return nil, fmt.Errorf("liking comment: %w", err)
				}
			}
		}

		for i := 0; i < f.rng.Intn(8); i++ {
			liker := users[f.rng.Intn(len(users))]
			target := models.LikeTarget{Kind: models.LikeTargetVideo, ID: video.ID}
			if err := f.CreateLike(liker, target); err != nil {
				return nil, fmt.Errorf("liking video: %w", err)
			}
		}
	}

	for _, subscriber := range users {
		for i := 0; i < f.rng.Intn(5); i++ {
			channel := users[f.rng.Intn(len(users))]
			if err := f.CreateSubscription(subscriber, channel); err != nil {
				return nil, fmt.Errorf("subscribing: %w", err)
			}
		}
	}

	for _, owner := range users[:len(users)/4+1] {
		picks := make([]*models.Video, 0, 5)
		for i := 0; i < f.rng.Intn(5)+1; i++ {
			picks = append(picks, videos[f.rng.Intn(len(videos))])
		}
		if _, err := f.CreatePlaylist(owner, dedupeVideos(picks)); err != nil {
			return nil, fmt.Errorf("creating playlist: %w", err)
		}
	}

	log.Println("Demo mesh seeded")
	return users, nil
}

func dedupeVideos(videos []*models.Video) []*models.Video {
	seen := make(map[uint]struct{}, len(videos))
	out := videos[:0]
	for _, v := range videos {
		if _, ok := seen[v.ID]; ok {
			continue
		}
		seen[v.ID] = struct{}{}
		out = append(out, v)
	}
	return out
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
