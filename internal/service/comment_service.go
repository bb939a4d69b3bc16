package service

import (
	"context"
	"strings"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

const maxCommentLen = 2000

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

type AddCommentInput struct {
	OwnerID uint
	VideoID uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return models.NewValidationError("Content too long (max 2000 characters)")
	}
	return nil
}

func (s *CommentService) Add(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}
	// Commenting on a missing or hidden video must report the video, not a
	// broken foreign key.
	if _, err := visibleVideo(ctx, s.videoRepo, in.VideoID, in.OwnerID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: strings.TrimSpace(in.Content),
		VideoID: in.VideoID,
		OwnerID: in.OwnerID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID, in.OwnerID)
}

func (s *CommentService) ListByVideo(ctx context.Context, videoID, viewerID uint, page, limit int) ([]*models.Comment, int64, error) {
	if _, err := visibleVideo(ctx, s.videoRepo, videoID, viewerID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByVideo(ctx, videoID, viewerID, page, limit)
}

func (s *CommentService) Update(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID, in.UserID)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	comment.Content = strings.TrimSpace(in.Content)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment. The comment's author and the owner of the video
// it sits on may both delete it.
func (s *CommentService) Delete(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if comment.OwnerID != userID {
		video, err := s.videoRepo.GetByID(ctx, comment.VideoID, userID)
		if err != nil {
			return err
		}
		if video.OwnerID != userID {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}
	return s.commentRepo.Delete(ctx, commentID)
}
