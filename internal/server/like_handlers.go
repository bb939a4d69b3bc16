package server

import (
	"clipstream/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleVideoLike handles POST /api/v1/likes/toggle/v/:videoId
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	return s.toggleLike(c, "videoId", models.LikeTargetVideo)
}

// ToggleCommentLike handles POST /api/v1/likes/toggle/c/:commentId
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	return s.toggleLike(c, "commentId", models.LikeTargetComment)
}

// ToggleTweetLike handles POST /api/v1/likes/toggle/t/:tweetId
func (s *Server) ToggleTweetLike(c *fiber.Ctx) error {
	return s.toggleLike(c, "tweetId", models.LikeTargetTweet)
}

func (s *Server) toggleLike(c *fiber.Ctx, param string, kind models.LikeTargetKind) error {
	targetID, err := s.parseID(c, param)
	if err != nil {
		return nil
	}

	result, err := s.likeService.Toggle(c.Context(), currentUserID(c), kind, targetID)
	if err != nil {
		return fail(c, err)
	}

	message := "Like removed successfully"
	if result.Liked {
		message = "Like added successfully"
	}
	return models.Respond(c, fiber.StatusOK, result, message)
}

// GetLikedVideos handles GET /api/v1/likes/videos
func (s *Server) GetLikedVideos(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	videos, total, err := s.likeService.ListLikedVideos(c.Context(), currentUserID(c), p.Page, p.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, paged(videos, total, p), "Liked videos fetched successfully")
}
