package service

import (
	"context"
	"strings"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

const maxTweetLen = 500

type TweetService struct {
	tweetRepo repository.TweetRepository
}

type CreateTweetInput struct {
	OwnerID uint
	Content string
}

type UpdateTweetInput struct {
	UserID  uint
	TweetID uint
	Content string
}

func NewTweetService(tweetRepo repository.TweetRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo}
}

func validateTweetContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxTweetLen {
		return models.NewValidationError("Content too long (max 500 characters)")
	}
	return nil
}

func (s *TweetService) Create(ctx context.Context, in CreateTweetInput) (*models.Tweet, error) {
	if err := validateTweetContent(in.Content); err != nil {
		return nil, err
	}
	tweet := &models.Tweet{
		Content: strings.TrimSpace(in.Content),
		OwnerID: in.OwnerID,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return s.tweetRepo.GetByID(ctx, tweet.ID, in.OwnerID)
}

func (s *TweetService) ListByOwner(ctx context.Context, ownerID, viewerID uint, page, limit int) ([]*models.Tweet, int64, error) {
	return s.tweetRepo.ListByOwner(ctx, ownerID, viewerID, page, limit)
}

func (s *TweetService) Update(ctx context.Context, in UpdateTweetInput) (*models.Tweet, error) {
	if err := validateTweetContent(in.Content); err != nil {
		return nil, err
	}
	tweet, err := s.tweetRepo.GetByID(ctx, in.TweetID, in.UserID)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own tweets")
	}
	tweet.Content = strings.TrimSpace(in.Content)
	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, userID, tweetID uint) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID, userID)
	if err != nil {
		return err
	}
	if tweet.OwnerID != userID {
		return models.NewForbiddenError("You can only delete your own tweets")
	}
	return s.tweetRepo.Delete(ctx, tweetID)
}
