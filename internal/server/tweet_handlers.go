package server

import (
	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTweet handles POST /api/v1/tweets
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.Create(c.Context(), service.CreateTweetInput{
		OwnerID: currentUserID(c),
		Content: req.Content,
	})
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, tweet, "Tweet created successfully")
}

// GetUserTweets handles GET /api/v1/tweets/user/:userId
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	ownerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)
	viewerID := s.optionalUserID(c)

	tweets, total, err := s.tweetService.ListByOwner(c.Context(), ownerID, viewerID, p.Page, p.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, paged(tweets, total, p), "Tweets fetched successfully")
}

// UpdateTweet handles PATCH /api/v1/tweets/:id
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.Update(c.Context(), service.UpdateTweetInput{
		UserID:  currentUserID(c),
		TweetID: tweetID,
		Content: req.Content,
	})
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, tweet, "Tweet updated successfully")
}

// DeleteTweet handles DELETE /api/v1/tweets/:id
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.tweetService.Delete(c.Context(), currentUserID(c), tweetID); err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Tweet deleted successfully")
}
