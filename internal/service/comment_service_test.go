package service

import (
	"context"
	"strings"
	"testing"

	"clipstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		}
		svc := NewCommentService(commentRepo, noopVideoRepo())

		comment, err := svc.Add(ctx, AddCommentInput{OwnerID: 1, VideoID: 10, Content: "  great video  "})
		require.NoError(t, err)
		assert.Equal(t, uint(1), comment.ID)
	})

	t.Run("Rejected on missing video", func(t *testing.T) {
		videoRepo := noopVideoRepo()
		videoRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Video, error) {
			return nil, models.NewNotFoundError("Video", id)
		}
		svc := NewCommentService(noopCommentRepo(), videoRepo)

		_, err := svc.Add(ctx, AddCommentInput{OwnerID: 1, VideoID: 99, Content: "hello"})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("Rejected on another owner's draft", func(t *testing.T) {
		videoRepo := noopVideoRepo()
		videoRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Video, error) {
			return &models.Video{ID: id, OwnerID: 2, IsPublished: false}, nil
		}
		commentRepo := noopCommentRepo()
		created := false
		commentRepo.createFn = func(_ context.Context, _ *models.Comment) error {
			created = true
			return nil
		}
		svc := NewCommentService(commentRepo, videoRepo)

		_, err := svc.Add(ctx, AddCommentInput{OwnerID: 1, VideoID: 10, Content: "hello"})
		assertAppErrorCode(t, err, models.CodeNotFound)
		assert.False(t, created, "a hidden draft must not accept comments")
	})

	t.Run("Rejects blank and oversized content", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), noopVideoRepo())

		_, err := svc.Add(ctx, AddCommentInput{OwnerID: 1, VideoID: 10, Content: "   "})
		assertValidationError(t, err)

		_, err = svc.Add(ctx, AddCommentInput{OwnerID: 1, VideoID: 10, Content: strings.Repeat("a", maxCommentLen+1)})
		assertValidationError(t, err)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()

	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: id, OwnerID: 1, VideoID: 10}, nil
	}
	videoRepo := noopVideoRepo()
	videoRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Video, error) {
		return &models.Video{ID: id, OwnerID: 2, IsPublished: true}, nil
	}
	svc := NewCommentService(commentRepo, videoRepo)

	t.Run("Author can delete", func(t *testing.T) {
		assert.NoError(t, svc.Delete(ctx, 1, 5))
	})

	t.Run("Video owner can delete", func(t *testing.T) {
		assert.NoError(t, svc.Delete(ctx, 2, 5))
	})

	t.Run("Anyone else is forbidden", func(t *testing.T) {
		assertForbiddenError(t, svc.Delete(ctx, 3, 5))
	})
}

func TestCommentService_Update_OwnerOnly(t *testing.T) {
	ctx := context.Background()

	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: id, OwnerID: 1, VideoID: 10}, nil
	}
	svc := NewCommentService(commentRepo, noopVideoRepo())

	_, err := svc.Update(ctx, UpdateCommentInput{UserID: 2, CommentID: 5, Content: "edited"})
	assertForbiddenError(t, err)

	comment, err := svc.Update(ctx, UpdateCommentInput{UserID: 1, CommentID: 5, Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", comment.Content)
}
