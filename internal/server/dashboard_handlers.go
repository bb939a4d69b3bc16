package server

import (
	"clipstream/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetChannelStats handles GET /api/v1/dashboard/stats. Totals are always
// present and zero-valued for channels with no content.
func (s *Server) GetChannelStats(c *fiber.Ctx) error {
	stats, err := s.channelService.GetStats(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, stats, "Channel stats fetched successfully")
}

// GetChannelVideos handles GET /api/v1/dashboard/videos. Lists the owner's
// videos including unpublished drafts.
func (s *Server) GetChannelVideos(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	videos, total, err := s.channelService.ListOwnVideos(
		c.Context(), currentUserID(c), p.Page, p.Limit,
		c.Query("sortBy", "created_at"), c.Query("sortDir", "desc"))
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, paged(videos, total, p), "Channel videos fetched successfully")
}
