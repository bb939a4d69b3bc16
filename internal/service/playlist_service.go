package service

import (
	"context"
	"strings"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

const maxPlaylistNameLen = 100

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

type CreatePlaylistInput struct {
	OwnerID     uint
	Name        string
	Description string
}

type UpdatePlaylistInput struct {
	UserID      uint
	PlaylistID  uint
	Name        string
	Description string
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

func (s *PlaylistService) Create(ctx context.Context, in CreatePlaylistInput) (*models.Playlist, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(name) > maxPlaylistNameLen {
		return nil, models.NewValidationError("Name too long (max 100 characters)")
	}

	playlist := &models.Playlist{
		Name:        name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Get(ctx context.Context, playlistID uint) (*models.Playlist, error) {
	return s.playlistRepo.GetByID(ctx, playlistID)
}

func (s *PlaylistService) ListByOwner(ctx context.Context, ownerID uint, page, limit int) ([]*models.Playlist, int64, error) {
	return s.playlistRepo.ListByOwner(ctx, ownerID, page, limit)
}

func (s *PlaylistService) Update(ctx context.Context, in UpdatePlaylistInput) (*models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, in.UserID, in.PlaylistID, "update")
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		name := strings.TrimSpace(in.Name)
		if len(name) > maxPlaylistNameLen {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		playlist.Name = name
	}
	if in.Description != "" {
		playlist.Description = in.Description
	}

	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, userID, playlistID uint) error {
	if _, err := s.ownedPlaylist(ctx, userID, playlistID, "delete"); err != nil {
		return err
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

func (s *PlaylistService) AddVideo(ctx context.Context, userID, playlistID, videoID uint) (*models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, userID, playlistID, "modify")
	if err != nil {
		return nil, err
	}
	video, err := visibleVideo(ctx, s.videoRepo, videoID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.playlistRepo.AddVideo(ctx, playlist, video); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByID(ctx, playlistID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, userID, playlistID, videoID uint) (*models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, userID, playlistID, "modify")
	if err != nil {
		return nil, err
	}
	video, err := s.videoRepo.GetByID(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.playlistRepo.RemoveVideo(ctx, playlist, video); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByID(ctx, playlistID)
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, userID, playlistID uint, verb string) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != userID {
		return nil, models.NewForbiddenError("You can only " + verb + " your own playlists")
	}
	return playlist, nil
}
