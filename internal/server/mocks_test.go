package server

import (
	"context"

	"clipstream/internal/config"
	"clipstream/internal/models"
	"clipstream/internal/repository"
	"clipstream/internal/service"
	"clipstream/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetWithSecrets(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateColumns(ctx context.Context, id uint, values map[string]any) error {
	args := m.Called(ctx, id, values)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) RecordWatch(ctx context.Context, userID, videoID uint) error {
	args := m.Called(ctx, userID, videoID)
	return args.Error(0)
}

func (m *MockUserRepository) GetWatchHistory(ctx context.Context, userID uint, page, limit int) ([]*models.Video, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Video), args.Error(1)
}

// MockVideoRepository is a mock of the VideoRepository interface
type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.Video, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoRepository) List(ctx context.Context, filter repository.VideoFilter, viewerID uint, page, limit int, sortBy, sortDir string) ([]*models.Video, int64, error) {
	args := m.Called(ctx, filter, viewerID, page, limit, sortBy, sortDir)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Video), args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoRepository) Create(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) Update(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoRepository) IncrementViews(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTweetRepository is a mock of the TweetRepository interface
type MockTweetRepository struct {
	mock.Mock
}

func (m *MockTweetRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.Tweet, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tweet), args.Error(1)
}

func (m *MockTweetRepository) ListByOwner(ctx context.Context, ownerID, viewerID uint, page, limit int) ([]*models.Tweet, int64, error) {
	args := m.Called(ctx, ownerID, viewerID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Tweet), args.Get(1).(int64), args.Error(2)
}

func (m *MockTweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	args := m.Called(ctx, tweet)
	return args.Error(0)
}

func (m *MockTweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	args := m.Called(ctx, tweet)
	return args.Error(0)
}

func (m *MockTweetRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.Comment, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByVideo(ctx context.Context, videoID, viewerID uint, page, limit int) ([]*models.Comment, int64, error) {
	args := m.Called(ctx, videoID, viewerID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLikeRepository is a mock of the LikeRepository interface
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(ctx context.Context, userID uint, target models.LikeTarget) (bool, error) {
	args := m.Called(ctx, userID, target)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) CountFor(ctx context.Context, target models.LikeTarget) (int64, error) {
	args := m.Called(ctx, target)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) ListLikedVideos(ctx context.Context, userID uint, page, limit int) ([]*models.Video, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Video), args.Get(1).(int64), args.Error(2)
}

// MockSubscriptionRepository is a mock of the SubscriptionRepository interface
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscribers(ctx context.Context, channelID uint, page, limit int) ([]*models.User, int64, error) {
	args := m.Called(ctx, channelID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID uint, page, limit int) ([]*models.User, int64, error) {
	args := m.Called(ctx, subscriberID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriptionRepository) CountSubscribers(ctx context.Context, channelID uint) (int64, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(int64), args.Error(1)
}

// MockChannelRepository is a mock of the ChannelRepository interface
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) GetProfile(ctx context.Context, username string, viewerID uint) (*models.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelProfile), args.Error(1)
}

func (m *MockChannelRepository) GetStats(ctx context.Context, ownerID uint) (*models.ChannelStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelStats), args.Error(1)
}

// MockPlaylistRepository is a mock of the PlaylistRepository interface
type MockPlaylistRepository struct {
	mock.Mock
}

func (m *MockPlaylistRepository) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) ListByOwner(ctx context.Context, ownerID uint, page, limit int) ([]*models.Playlist, int64, error) {
	args := m.Called(ctx, ownerID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Playlist), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	args := m.Called(ctx, playlist)
	return args.Error(0)
}

func (m *MockPlaylistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	args := m.Called(ctx, playlist)
	return args.Error(0)
}

func (m *MockPlaylistRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlaylistRepository) AddVideo(ctx context.Context, playlist *models.Playlist, video *models.Video) error {
	args := m.Called(ctx, playlist, video)
	return args.Error(0)
}

func (m *MockPlaylistRepository) RemoveVideo(ctx context.Context, playlist *models.Playlist, video *models.Video) error {
	args := m.Called(ctx, playlist, video)
	return args.Error(0)
}

// MockUploader is a mock of the storage.Uploader interface
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, localPath, folder string) (*storage.UploadResult, error) {
	args := m.Called(ctx, localPath, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}

func (m *MockUploader) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// testMocks bundles every mocked dependency behind a Server.
type testMocks struct {
	users     *MockUserRepository
	videos    *MockVideoRepository
	tweets    *MockTweetRepository
	comments  *MockCommentRepository
	likes     *MockLikeRepository
	subs      *MockSubscriptionRepository
	channels  *MockChannelRepository
	playlists *MockPlaylistRepository
	uploader  *MockUploader
}

// newTestServer builds a Server whose services run on mocked repositories.
func newTestServer() (*Server, *testMocks) {
	m := &testMocks{
		users:     new(MockUserRepository),
		videos:    new(MockVideoRepository),
		tweets:    new(MockTweetRepository),
		comments:  new(MockCommentRepository),
		likes:     new(MockLikeRepository),
		subs:      new(MockSubscriptionRepository),
		channels:  new(MockChannelRepository),
		playlists: new(MockPlaylistRepository),
		uploader:  new(MockUploader),
	}

	s := &Server{
		config:       &config.Config{JWTSecret: "test_secret", JWTRefreshSecret: "test_refresh_secret"},
		userRepo:     m.users,
		videoRepo:    m.videos,
		tweetRepo:    m.tweets,
		commentRepo:  m.comments,
		likeRepo:     m.likes,
		subRepo:      m.subs,
		channelRepo:  m.channels,
		playlistRepo: m.playlists,
		uploader:     m.uploader,
	}
	s.userService = service.NewUserService(m.users, m.uploader)
	s.videoService = service.NewVideoService(m.videos, m.users, m.uploader)
	s.tweetService = service.NewTweetService(m.tweets)
	s.commentService = service.NewCommentService(m.comments, m.videos)
	s.likeService = service.NewLikeService(m.likes, m.videos, m.comments, m.tweets)
	s.subService = service.NewSubscriptionService(m.subs, m.users)
	s.channelService = service.NewChannelService(m.channels, m.videos)
	s.playlistService = service.NewPlaylistService(m.playlists, m.videos)

	return s, m
}

// asUser is test middleware that injects an authenticated user.
func asUser(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", id)
		return c.Next()
	}
}
