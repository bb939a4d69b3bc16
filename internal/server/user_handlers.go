package server

import (
	"context"

	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser handles GET /api/v1/users/me
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Current user fetched successfully")
}

// UpdateAccount handles PATCH /api/v1/users/me
func (s *Server) UpdateAccount(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}
	if req.FullName == "" && req.Email == "" {
		return fail(c, models.NewValidationError("Nothing to update"))
	}

	user, err := s.userService.UpdateAccount(c.Context(), service.UpdateAccountInput{
		UserID:   currentUserID(c),
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Account updated successfully")
}

// ChangePassword handles POST /api/v1/users/me/change-password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	err := s.userService.ChangePassword(c.Context(), service.ChangePasswordInput{
		UserID:      currentUserID(c),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Password changed successfully")
}

// UpdateAvatar handles PATCH /api/v1/users/me/avatar
func (s *Server) UpdateAvatar(c *fiber.Ctx) error {
	return s.updateUserImage(c, "avatar", s.userService.UpdateAvatar, "Avatar updated successfully")
}

// UpdateCoverImage handles PATCH /api/v1/users/me/cover-image
func (s *Server) UpdateCoverImage(c *fiber.Ctx) error {
	return s.updateUserImage(c, "coverImage", s.userService.UpdateCoverImage, "Cover image updated successfully")
}

func (s *Server) updateUserImage(
	c *fiber.Ctx,
	field string,
	update func(ctx context.Context, userID uint, localPath string) (*models.User, error),
	message string,
) error {
	path, err := s.formFileToTemp(c, field)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}
	defer removeIfSet(path)

	user, err := update(c.Context(), currentUserID(c), path)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, message)
}

// GetWatchHistory handles GET /api/v1/users/me/watch-history
func (s *Server) GetWatchHistory(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	videos, err := s.userService.GetWatchHistory(c.Context(), currentUserID(c), p.Page, p.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, videos, "Watch history fetched successfully")
}

// GetChannelProfile handles GET /api/v1/users/channel/:username
func (s *Server) GetChannelProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	viewerID := s.optionalUserID(c)

	profile, err := s.channelService.GetProfile(c.Context(), username, viewerID)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, profile, "Channel profile fetched successfully")
}
