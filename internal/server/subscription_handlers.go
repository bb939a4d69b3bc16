package server

import (
	"clipstream/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleSubscription handles POST /api/v1/subscriptions/c/:channelId
func (s *Server) ToggleSubscription(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}

	result, err := s.subService.Toggle(c.Context(), currentUserID(c), channelID)
	if err != nil {
		return fail(c, err)
	}

	message := "Unsubscribed successfully"
	if result.Subscribed {
		message = "Subscribed successfully"
	}
	return models.Respond(c, fiber.StatusOK, result, message)
}

// GetChannelSubscribers handles GET /api/v1/subscriptions/c/:channelId/subscribers
func (s *Server) GetChannelSubscribers(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	subscribers, total, err := s.subService.ListSubscribers(c.Context(), channelID, p.Page, p.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, paged(subscribers, total, p), "Subscribers fetched successfully")
}

// GetSubscribedChannels handles GET /api/v1/subscriptions/me/channels
func (s *Server) GetSubscribedChannels(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	channels, total, err := s.subService.ListSubscribedChannels(c.Context(), currentUserID(c), p.Page, p.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, paged(channels, total, p), "Subscribed channels fetched successfully")
}
