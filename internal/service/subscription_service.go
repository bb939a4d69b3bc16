package service

import (
	"context"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

// ToggleSubscriptionResult reports the state after a toggle.
type ToggleSubscriptionResult struct {
	Subscribed      bool  `json:"subscribed"`
	SubscriberCount int64 `json:"subscriber_count"`
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID uint) (*ToggleSubscriptionResult, error) {
	if subscriberID == channelID {
		return nil, models.NewValidationError("You cannot subscribe to your own channel")
	}
	// The channel must be a real user.
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}

	subscribed, err := s.subRepo.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}
	count, err := s.subRepo.CountSubscribers(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return &ToggleSubscriptionResult{Subscribed: subscribed, SubscriberCount: count}, nil
}

func (s *SubscriptionService) ListSubscribers(ctx context.Context, channelID uint, page, limit int) ([]*models.User, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, 0, err
	}
	return s.subRepo.ListSubscribers(ctx, channelID, page, limit)
}

func (s *SubscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID uint, page, limit int) ([]*models.User, int64, error) {
	return s.subRepo.ListSubscribedChannels(ctx, subscriberID, page, limit)
}
