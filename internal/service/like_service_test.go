package service

import (
	"context"
	"testing"

	"clipstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeService_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("Likes a video and reports the new count", func(t *testing.T) {
		likeRepo := noopLikeRepo()
		likeRepo.toggleFn = func(_ context.Context, userID uint, target models.LikeTarget) (bool, error) {
			assert.Equal(t, uint(7), userID)
			assert.Equal(t, models.LikeTargetVideo, target.Kind)
			assert.Equal(t, uint(10), target.ID)
			return true, nil
		}
		likeRepo.countForFn = func(_ context.Context, _ models.LikeTarget) (int64, error) { return 4, nil }
		svc := NewLikeService(likeRepo, noopVideoRepo(), noopCommentRepo(), noopTweetRepo())

		res, err := svc.Toggle(ctx, 7, models.LikeTargetVideo, 10)
		require.NoError(t, err)
		assert.True(t, res.Liked)
		assert.Equal(t, int64(4), res.LikesCount)
	})

	t.Run("Second toggle removes the like", func(t *testing.T) {
		likeRepo := noopLikeRepo()
		likeRepo.toggleFn = func(_ context.Context, _ uint, _ models.LikeTarget) (bool, error) { return false, nil }
		likeRepo.countForFn = func(_ context.Context, _ models.LikeTarget) (int64, error) { return 3, nil }
		svc := NewLikeService(likeRepo, noopVideoRepo(), noopCommentRepo(), noopTweetRepo())

		res, err := svc.Toggle(ctx, 7, models.LikeTargetVideo, 10)
		require.NoError(t, err)
		assert.False(t, res.Liked)
		assert.Equal(t, int64(3), res.LikesCount)
	})

	t.Run("Rejects unknown target kind", func(t *testing.T) {
		svc := NewLikeService(noopLikeRepo(), noopVideoRepo(), noopCommentRepo(), noopTweetRepo())
		_, err := svc.Toggle(ctx, 7, models.LikeTargetKind("playlist"), 10)
		assertValidationError(t, err)
	})

	t.Run("Rejects missing target", func(t *testing.T) {
		videoRepo := noopVideoRepo()
		videoRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Video, error) {
			return nil, models.NewNotFoundError("Video", id)
		}
		svc := NewLikeService(noopLikeRepo(), videoRepo, noopCommentRepo(), noopTweetRepo())

		_, err := svc.Toggle(ctx, 7, models.LikeTargetVideo, 99)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("Draft video of another owner cannot be liked", func(t *testing.T) {
		videoRepo := noopVideoRepo()
		videoRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Video, error) {
			return &models.Video{ID: id, OwnerID: 2, IsPublished: false}, nil
		}
		likeRepo := noopLikeRepo()
		toggled := false
		likeRepo.toggleFn = func(_ context.Context, _ uint, _ models.LikeTarget) (bool, error) {
			toggled = true
			return true, nil
		}
		svc := NewLikeService(likeRepo, videoRepo, noopCommentRepo(), noopTweetRepo())

		_, err := svc.Toggle(ctx, 7, models.LikeTargetVideo, 10)
		assertAppErrorCode(t, err, models.CodeNotFound)
		assert.False(t, toggled, "a hidden draft must not accept likes")
	})

	t.Run("Owner can like their own draft", func(t *testing.T) {
		videoRepo := noopVideoRepo()
		videoRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Video, error) {
			return &models.Video{ID: id, OwnerID: 7, IsPublished: false}, nil
		}
		svc := NewLikeService(noopLikeRepo(), videoRepo, noopCommentRepo(), noopTweetRepo())

		res, err := svc.Toggle(ctx, 7, models.LikeTargetVideo, 10)
		require.NoError(t, err)
		assert.True(t, res.Liked)
	})

	t.Run("Checks the right repository per kind", func(t *testing.T) {
		commentChecked := false
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Comment, error) {
			commentChecked = true
			return &models.Comment{ID: id}, nil
		}
		tweetChecked := false
		tweetRepo := noopTweetRepo()
		tweetRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Tweet, error) {
			tweetChecked = true
			return &models.Tweet{ID: id}, nil
		}
		svc := NewLikeService(noopLikeRepo(), noopVideoRepo(), commentRepo, tweetRepo)

		_, err := svc.Toggle(ctx, 7, models.LikeTargetComment, 5)
		require.NoError(t, err)
		assert.True(t, commentChecked)

		_, err = svc.Toggle(ctx, 7, models.LikeTargetTweet, 6)
		require.NoError(t, err)
		assert.True(t, tweetChecked)
	})
}
