package server

import (
	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePlaylist handles POST /api/v1/playlists
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	playlist, err := s.playlistService.Create(c.Context(), service.CreatePlaylistInput{
		OwnerID:     currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, playlist, "Playlist created successfully")
}

// GetPlaylist handles GET /api/v1/playlists/:id
func (s *Server) GetPlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.Get(c.Context(), playlistID)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist fetched successfully")
}

// GetUserPlaylists handles GET /api/v1/playlists/user/:userId
func (s *Server) GetUserPlaylists(c *fiber.Ctx) error {
	ownerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	playlists, total, err := s.playlistService.ListByOwner(c.Context(), ownerID, p.Page, p.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, paged(playlists, total, p), "Playlists fetched successfully")
}

// UpdatePlaylist handles PATCH /api/v1/playlists/:id
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	playlist, err := s.playlistService.Update(c.Context(), service.UpdatePlaylistInput{
		UserID:      currentUserID(c),
		PlaylistID:  playlistID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist updated successfully")
}

// DeletePlaylist handles DELETE /api/v1/playlists/:id
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.playlistService.Delete(c.Context(), currentUserID(c), playlistID); err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Playlist deleted successfully")
}

// AddVideoToPlaylist handles PATCH /api/v1/playlists/:id/videos/:videoId
func (s *Server) AddVideoToPlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.AddVideo(c.Context(), currentUserID(c), playlistID, videoID)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Video added to playlist successfully")
}

// RemoveVideoFromPlaylist handles DELETE /api/v1/playlists/:id/videos/:videoId
func (s *Server) RemoveVideoFromPlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.RemoveVideo(c.Context(), currentUserID(c), playlistID, videoID)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Video removed from playlist successfully")
}
