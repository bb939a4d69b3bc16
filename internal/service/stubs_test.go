package service

import (
	"context"
	"errors"
	"testing"

	"clipstream/internal/models"
	"clipstream/internal/repository"
	"clipstream/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getWithSecretsFn  func(context.Context, uint) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
	createFn          func(context.Context, *models.User) error
	updateColumnsFn   func(context.Context, uint, map[string]any) error
	deleteFn          func(context.Context, uint) error
	listFn            func(context.Context, int, int) ([]models.User, error)
	recordWatchFn     func(context.Context, uint, uint) error
	getWatchHistoryFn func(context.Context, uint, int, int) ([]*models.Video, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetWithSecrets(ctx context.Context, id uint) (*models.User, error) {
	return s.getWithSecretsFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateColumns(ctx context.Context, id uint, values map[string]any) error {
	return s.updateColumnsFn(ctx, id, values)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) RecordWatch(ctx context.Context, userID, videoID uint) error {
	return s.recordWatchFn(ctx, userID, videoID)
}
func (s *userRepoStub) GetWatchHistory(ctx context.Context, userID uint, page, limit int) ([]*models.Video, error) {
	return s.getWatchHistoryFn(ctx, userID, page, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:         func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getWithSecretsFn:  func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:      func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:   func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:          func(_ context.Context, _ *models.User) error { return nil },
		updateColumnsFn:   func(_ context.Context, _ uint, _ map[string]any) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		listFn:            func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		recordWatchFn:     func(_ context.Context, _, _ uint) error { return nil },
		getWatchHistoryFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Video, error) { return nil, nil },
	}
}

// videoRepoStub is a stub for repository.VideoRepository.
type videoRepoStub struct {
	getByIDFn        func(context.Context, uint, uint) (*models.Video, error)
	listFn           func(context.Context, repository.VideoFilter, uint, int, int, string, string) ([]*models.Video, int64, error)
	createFn         func(context.Context, *models.Video) error
	updateFn         func(context.Context, *models.Video) error
	deleteFn         func(context.Context, uint) error
	incrementViewsFn func(context.Context, uint) error
}

func (s *videoRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Video, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *videoRepoStub) List(ctx context.Context, filter repository.VideoFilter, viewerID uint, page, limit int, sortBy, sortDir string) ([]*models.Video, int64, error) {
	return s.listFn(ctx, filter, viewerID, page, limit, sortBy, sortDir)
}
func (s *videoRepoStub) Create(ctx context.Context, video *models.Video) error {
	return s.createFn(ctx, video)
}
func (s *videoRepoStub) Update(ctx context.Context, video *models.Video) error {
	return s.updateFn(ctx, video)
}
func (s *videoRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *videoRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}

func noopVideoRepo() *videoRepoStub {
	return &videoRepoStub{
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Video, error) {
			return &models.Video{ID: id, IsPublished: true}, nil
		},
		listFn: func(_ context.Context, _ repository.VideoFilter, _ uint, _, _ int, _, _ string) ([]*models.Video, int64, error) {
			return nil, 0, nil
		},
		createFn:         func(_ context.Context, _ *models.Video) error { return nil },
		updateFn:         func(_ context.Context, _ *models.Video) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		incrementViewsFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// tweetRepoStub is a stub for repository.TweetRepository.
type tweetRepoStub struct {
	getByIDFn     func(context.Context, uint, uint) (*models.Tweet, error)
	listByOwnerFn func(context.Context, uint, uint, int, int) ([]*models.Tweet, int64, error)
	createFn      func(context.Context, *models.Tweet) error
	updateFn      func(context.Context, *models.Tweet) error
	deleteFn      func(context.Context, uint) error
}

func (s *tweetRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Tweet, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *tweetRepoStub) ListByOwner(ctx context.Context, ownerID, viewerID uint, page, limit int) ([]*models.Tweet, int64, error) {
	return s.listByOwnerFn(ctx, ownerID, viewerID, page, limit)
}
func (s *tweetRepoStub) Create(ctx context.Context, tweet *models.Tweet) error {
	return s.createFn(ctx, tweet)
}
func (s *tweetRepoStub) Update(ctx context.Context, tweet *models.Tweet) error {
	return s.updateFn(ctx, tweet)
}
func (s *tweetRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopTweetRepo() *tweetRepoStub {
	return &tweetRepoStub{
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Tweet, error) { return &models.Tweet{ID: id}, nil },
		listByOwnerFn: func(_ context.Context, _, _ uint, _, _ int) ([]*models.Tweet, int64, error) {
			return nil, 0, nil
		},
		createFn: func(_ context.Context, _ *models.Tweet) error { return nil },
		updateFn: func(_ context.Context, _ *models.Tweet) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	getByIDFn     func(context.Context, uint, uint) (*models.Comment, error)
	listByVideoFn func(context.Context, uint, uint, int, int) ([]*models.Comment, int64, error)
	createFn      func(context.Context, *models.Comment) error
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *commentRepoStub) ListByVideo(ctx context.Context, videoID, viewerID uint, page, limit int) ([]*models.Comment, int64, error) {
	return s.listByVideoFn(ctx, videoID, viewerID, page, limit)
}
func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByVideoFn: func(_ context.Context, _, _ uint, _, _ int) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn          func(context.Context, uint, models.LikeTarget) (bool, error)
	countForFn        func(context.Context, models.LikeTarget) (int64, error)
	listLikedVideosFn func(context.Context, uint, int, int) ([]*models.Video, int64, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, userID uint, target models.LikeTarget) (bool, error) {
	return s.toggleFn(ctx, userID, target)
}
func (s *likeRepoStub) CountFor(ctx context.Context, target models.LikeTarget) (int64, error) {
	return s.countForFn(ctx, target)
}
func (s *likeRepoStub) ListLikedVideos(ctx context.Context, userID uint, page, limit int) ([]*models.Video, int64, error) {
	return s.listLikedVideosFn(ctx, userID, page, limit)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleFn:   func(_ context.Context, _ uint, _ models.LikeTarget) (bool, error) { return true, nil },
		countForFn: func(_ context.Context, _ models.LikeTarget) (int64, error) { return 1, nil },
		listLikedVideosFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Video, int64, error) {
			return nil, 0, nil
		},
	}
}

// subRepoStub is a stub for repository.SubscriptionRepository.
type subRepoStub struct {
	toggleFn                 func(context.Context, uint, uint) (bool, error)
	listSubscribersFn        func(context.Context, uint, int, int) ([]*models.User, int64, error)
	listSubscribedChannelsFn func(context.Context, uint, int, int) ([]*models.User, int64, error)
	countSubscribersFn       func(context.Context, uint) (int64, error)
}

func (s *subRepoStub) Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	return s.toggleFn(ctx, subscriberID, channelID)
}
func (s *subRepoStub) ListSubscribers(ctx context.Context, channelID uint, page, limit int) ([]*models.User, int64, error) {
	return s.listSubscribersFn(ctx, channelID, page, limit)
}
func (s *subRepoStub) ListSubscribedChannels(ctx context.Context, subscriberID uint, page, limit int) ([]*models.User, int64, error) {
	return s.listSubscribedChannelsFn(ctx, subscriberID, page, limit)
}
func (s *subRepoStub) CountSubscribers(ctx context.Context, channelID uint) (int64, error) {
	return s.countSubscribersFn(ctx, channelID)
}

func noopSubRepo() *subRepoStub {
	return &subRepoStub{
		toggleFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		listSubscribersFn: func(_ context.Context, _ uint, _, _ int) ([]*models.User, int64, error) {
			return nil, 0, nil
		},
		listSubscribedChannelsFn: func(_ context.Context, _ uint, _, _ int) ([]*models.User, int64, error) {
			return nil, 0, nil
		},
		countSubscribersFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// playlistRepoStub is a stub for repository.PlaylistRepository.
type playlistRepoStub struct {
	getByIDFn     func(context.Context, uint) (*models.Playlist, error)
	listByOwnerFn func(context.Context, uint, int, int) ([]*models.Playlist, int64, error)
	createFn      func(context.Context, *models.Playlist) error
	updateFn      func(context.Context, *models.Playlist) error
	deleteFn      func(context.Context, uint) error
	addVideoFn    func(context.Context, *models.Playlist, *models.Video) error
	removeVideoFn func(context.Context, *models.Playlist, *models.Video) error
}

func (s *playlistRepoStub) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	return s.getByIDFn(ctx, id)
}
func (s *playlistRepoStub) ListByOwner(ctx context.Context, ownerID uint, page, limit int) ([]*models.Playlist, int64, error) {
	return s.listByOwnerFn(ctx, ownerID, page, limit)
}
func (s *playlistRepoStub) Create(ctx context.Context, playlist *models.Playlist) error {
	return s.createFn(ctx, playlist)
}
func (s *playlistRepoStub) Update(ctx context.Context, playlist *models.Playlist) error {
	return s.updateFn(ctx, playlist)
}
func (s *playlistRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *playlistRepoStub) AddVideo(ctx context.Context, playlist *models.Playlist, video *models.Video) error {
	return s.addVideoFn(ctx, playlist, video)
}
func (s *playlistRepoStub) RemoveVideo(ctx context.Context, playlist *models.Playlist, video *models.Video) error {
	return s.removeVideoFn(ctx, playlist, video)
}

func noopPlaylistRepo() *playlistRepoStub {
	return &playlistRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Playlist, error) { return &models.Playlist{ID: id}, nil },
		listByOwnerFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Playlist, int64, error) {
			return nil, 0, nil
		},
		createFn:      func(_ context.Context, _ *models.Playlist) error { return nil },
		updateFn:      func(_ context.Context, _ *models.Playlist) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		addVideoFn:    func(_ context.Context, _ *models.Playlist, _ *models.Video) error { return nil },
		removeVideoFn: func(_ context.Context, _ *models.Playlist, _ *models.Video) error { return nil },
	}
}

// uploaderStub is a stub for storage.Uploader.
type uploaderStub struct {
	uploadFn func(context.Context, string, string) (*storage.UploadResult, error)
	deleteFn func(context.Context, string) error
}

func (s *uploaderStub) Upload(ctx context.Context, localPath, folder string) (*storage.UploadResult, error) {
	return s.uploadFn(ctx, localPath, folder)
}
func (s *uploaderStub) Delete(ctx context.Context, key string) error {
	return s.deleteFn(ctx, key)
}

func noopUploader() *uploaderStub {
	return &uploaderStub{
		uploadFn: func(_ context.Context, localPath, folder string) (*storage.UploadResult, error) {
			return &storage.UploadResult{URL: "https://cdn.example.com/" + folder + "/" + localPath}, nil
		},
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

// assertForbiddenError asserts that err is an AppError with code FORBIDDEN.
func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
