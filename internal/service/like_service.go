package service

import (
	"context"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

// ToggleLikeResult reports the state after a toggle.
type ToggleLikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// Toggle flips the caller's like on the target. The target must exist; a
// like can never dangle.
func (s *LikeService) Toggle(ctx context.Context, userID uint, kind models.LikeTargetKind, targetID uint) (*ToggleLikeResult, error) {
	target, err := models.NewLikeTarget(kind, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureTargetExists(ctx, userID, target); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Toggle(ctx, userID, target)
	if err != nil {
		return nil, err
	}
	count, err := s.likeRepo.CountFor(ctx, target)
	if err != nil {
		return nil, err
	}
	return &ToggleLikeResult{Liked: liked, LikesCount: count}, nil
}

func (s *LikeService) ensureTargetExists(ctx context.Context, userID uint, target models.LikeTarget) error {
	var err error
	switch target.Kind {
	case models.LikeTargetVideo:
		_, err = visibleVideo(ctx, s.videoRepo, target.ID, userID)
	case models.LikeTargetComment:
		_, err = s.commentRepo.GetByID(ctx, target.ID, userID)
	case models.LikeTargetTweet:
		_, err = s.tweetRepo.GetByID(ctx, target.ID, userID)
	default:
		return models.NewValidationError("Unknown like target kind")
	}
	return err
}

func (s *LikeService) ListLikedVideos(ctx context.Context, userID uint, page, limit int) ([]*models.Video, int64, error) {
	return s.likeRepo.ListLikedVideos(ctx, userID, page, limit)
}
