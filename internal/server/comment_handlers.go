package server

import (
	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetVideoComments handles GET /api/v1/videos/:id/comments
func (s *Server) GetVideoComments(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)
	viewerID := s.optionalUserID(c)

	comments, total, err := s.commentService.ListByVideo(c.Context(), videoID, viewerID, p.Page, p.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, paged(comments, total, p), "Comments fetched successfully")
}

// AddComment handles POST /api/v1/videos/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Add(c.Context(), service.AddCommentInput{
		OwnerID: currentUserID(c),
		VideoID: videoID,
		Content: req.Content,
	})
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, comment, "Comment added successfully")
}

// UpdateComment handles PATCH /api/v1/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Update(c.Context(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, comment, "Comment updated successfully")
}

// DeleteComment handles DELETE /api/v1/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.Delete(c.Context(), currentUserID(c), commentID); err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Comment deleted successfully")
}
