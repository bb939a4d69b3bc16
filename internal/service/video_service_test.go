package service

import (
	"context"
	"testing"

	"clipstream/internal/models"
	"clipstream/internal/repository"
	"clipstream/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoService_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("Duration comes from the upload provider", func(t *testing.T) {
		videoRepo := noopVideoRepo()
		var created *models.Video
		videoRepo.createFn = func(_ context.Context, v *models.Video) error {
			v.ID = 1
			created = v
			return nil
		}
		uploader := noopUploader()
		uploader.uploadFn = func(_ context.Context, _, folder string) (*storage.UploadResult, error) {
			if folder == "videos" {
				return &storage.UploadResult{URL: "https://cdn.example.com/videos/v.mp4", Duration: 123.4}, nil
			}
			return &storage.UploadResult{URL: "https://cdn.example.com/thumbnails/t.png"}, nil
		}
		svc := NewVideoService(videoRepo, noopUserRepo(), uploader)

		_, err := svc.Publish(ctx, PublishVideoInput{
			OwnerID:       1,
			Title:         "My first upload",
			VideoPath:     "/tmp/v.mp4",
			ThumbnailPath: "/tmp/t.png",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, 123.4, created.Duration)
		assert.True(t, created.IsPublished)
		assert.Equal(t, uint(1), created.OwnerID)
	})

	t.Run("Requires title and files", func(t *testing.T) {
		svc := NewVideoService(noopVideoRepo(), noopUserRepo(), noopUploader())

		_, err := svc.Publish(ctx, PublishVideoInput{OwnerID: 1, VideoPath: "/tmp/v.mp4", ThumbnailPath: "/tmp/t.png"})
		assertValidationError(t, err)

		_, err = svc.Publish(ctx, PublishVideoInput{OwnerID: 1, Title: "x", ThumbnailPath: "/tmp/t.png"})
		assertValidationError(t, err)

		_, err = svc.Publish(ctx, PublishVideoInput{OwnerID: 1, Title: "x", VideoPath: "/tmp/v.mp4"})
		assertValidationError(t, err)
	})
}

func TestVideoService_Get_DraftVisibility(t *testing.T) {
	ctx := context.Background()

	videoRepo := noopVideoRepo()
	videoRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Video, error) {
		return &models.Video{ID: id, OwnerID: 1, IsPublished: false}, nil
	}
	svc := NewVideoService(videoRepo, noopUserRepo(), noopUploader())

	t.Run("Owner sees their draft", func(t *testing.T) {
		video, err := svc.Get(ctx, 10, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(10), video.ID)
	})

	t.Run("Others get not found", func(t *testing.T) {
		_, err := svc.Get(ctx, 10, 2)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("Anonymous gets not found", func(t *testing.T) {
		_, err := svc.Get(ctx, 10, 0)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})
}

func TestVideoService_View(t *testing.T) {
	ctx := context.Background()

	t.Run("Signed-in viewer lands in watch history", func(t *testing.T) {
		videoRepo := noopVideoRepo()
		videoRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Video, error) {
			return &models.Video{ID: id, OwnerID: 2, IsPublished: true, Views: 5}, nil
		}
		incremented := false
		videoRepo.incrementViewsFn = func(_ context.Context, _ uint) error {
			incremented = true
			return nil
		}
		userRepo := noopUserRepo()
		var watchedUser, watchedVideo uint
		userRepo.recordWatchFn = func(_ context.Context, userID, videoID uint) error {
			watchedUser, watchedVideo = userID, videoID
			return nil
		}
		svc := NewVideoService(videoRepo, userRepo, noopUploader())

		video, err := svc.View(ctx, 10, 7)
		require.NoError(t, err)
		assert.True(t, incremented)
		assert.Equal(t, uint(7), watchedUser)
		assert.Equal(t, uint(10), watchedVideo)
		assert.Equal(t, int64(6), video.Views)
	})

	t.Run("Anonymous view counts but records no history", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.recordWatchFn = func(_ context.Context, _, _ uint) error {
			t.Fatal("watch history must not be recorded for anonymous viewers")
			return nil
		}
		svc := NewVideoService(noopVideoRepo(), userRepo, noopUploader())

		_, err := svc.View(ctx, 10, 0)
		assert.NoError(t, err)
	})
}

func TestVideoService_List_DraftFiltering(t *testing.T) {
	ctx := context.Background()

	var gotFilter repository.VideoFilter
	videoRepo := noopVideoRepo()
	videoRepo.listFn = func(_ context.Context, filter repository.VideoFilter, _ uint, _, _ int, _, _ string) ([]*models.Video, int64, error) {
		gotFilter = filter
		return nil, 0, nil
	}
	svc := NewVideoService(videoRepo, noopUserRepo(), noopUploader())

	_, _, err := svc.List(ctx, ListVideosInput{ViewerID: 1, OwnerID: 1, IncludeUnpublished: true, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.False(t, gotFilter.OnlyPublished)

	// Drafts never leak to other viewers even when requested.
	_, _, err = svc.List(ctx, ListVideosInput{ViewerID: 2, OwnerID: 1, IncludeUnpublished: true, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.True(t, gotFilter.OnlyPublished)
}

func TestVideoService_OwnershipChecks(t *testing.T) {
	ctx := context.Background()

	videoRepo := noopVideoRepo()
	videoRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Video, error) {
		return &models.Video{ID: id, OwnerID: 1, IsPublished: true}, nil
	}
	svc := NewVideoService(videoRepo, noopUserRepo(), noopUploader())

	t.Run("Update by non-owner", func(t *testing.T) {
		_, err := svc.Update(ctx, UpdateVideoInput{UserID: 2, VideoID: 10, Title: "hijack"})
		assertForbiddenError(t, err)
	})

	t.Run("Delete by non-owner", func(t *testing.T) {
		err := svc.Delete(ctx, 2, 10)
		assertForbiddenError(t, err)
	})

	t.Run("TogglePublish by non-owner", func(t *testing.T) {
		_, err := svc.TogglePublish(ctx, 2, 10)
		assertForbiddenError(t, err)
	})

	t.Run("TogglePublish flips state", func(t *testing.T) {
		video, err := svc.TogglePublish(ctx, 1, 10)
		require.NoError(t, err)
		assert.False(t, video.IsPublished)
	})
}
