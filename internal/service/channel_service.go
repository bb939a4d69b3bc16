package service

import (
	"context"
	"strings"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

type ChannelService struct {
	channelRepo repository.ChannelRepository
	videoRepo   repository.VideoRepository
}

func NewChannelService(channelRepo repository.ChannelRepository, videoRepo repository.VideoRepository) *ChannelService {
	return &ChannelService{channelRepo: channelRepo, videoRepo: videoRepo}
}

func (s *ChannelService) GetProfile(ctx context.Context, username string, viewerID uint) (*models.ChannelProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, models.NewValidationError("Username is required")
	}
	return s.channelRepo.GetProfile(ctx, username, viewerID)
}

// GetStats returns the caller's own dashboard aggregates.
func (s *ChannelService) GetStats(ctx context.Context, ownerID uint) (*models.ChannelStats, error) {
	return s.channelRepo.GetStats(ctx, ownerID)
}

// ListOwnVideos lists everything the owner has uploaded, drafts included.
func (s *ChannelService) ListOwnVideos(ctx context.Context, ownerID uint, page, limit int, sortBy, sortDir string) ([]*models.Video, int64, error) {
	filter := repository.VideoFilter{OwnerID: ownerID}
	return s.videoRepo.List(ctx, filter, ownerID, page, limit, sortBy, sortDir)
}
