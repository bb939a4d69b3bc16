package server

import (
	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetVideos handles GET /api/v1/videos. Supports query (text search),
// userId (channel filter), page, limit, sortBy and sortDir parameters.
func (s *Server) GetVideos(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	viewerID := s.optionalUserID(c)

	ownerID := uint(c.QueryInt("userId", 0))
	videos, total, err := s.videoService.List(c.Context(), service.ListVideosInput{
		ViewerID: viewerID,
		OwnerID:  ownerID,
		Query:    c.Query("query"),
		Page:     p.Page,
		Limit:    p.Limit,
		SortBy:   c.Query("sortBy", "created_at"),
		SortDir:  c.Query("sortDir", "desc"),
	})
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, paged(videos, total, p), "Videos fetched successfully")
}

// GetVideo handles GET /api/v1/videos/:id. Fetching a video counts as a
// watch: views are bumped and signed-in viewers get a history entry.
func (s *Server) GetVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID := s.optionalUserID(c)

	video, err := s.videoService.View(c.Context(), videoID, viewerID)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Video fetched successfully")
}

// PublishVideo handles POST /api/v1/videos. Multipart: title, description,
// videoFile and thumbnail.
func (s *Server) PublishVideo(c *fiber.Ctx) error {
	videoPath, err := s.formFileToTemp(c, "videoFile")
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}
	defer removeIfSet(videoPath)

	thumbPath, err := s.formFileToTemp(c, "thumbnail")
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}
	defer removeIfSet(thumbPath)

	video, err := s.videoService.Publish(c.Context(), service.PublishVideoInput{
		OwnerID:       currentUserID(c),
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, video, "Video published successfully")
}

// UpdateVideo handles PATCH /api/v1/videos/:id. Multipart or JSON: title,
// description, optional thumbnail file.
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	in := service.UpdateVideoInput{
		UserID:  currentUserID(c),
		VideoID: videoID,
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.Title = c.FormValue("title")
		in.Description = c.FormValue("description")
		thumbPath, err := s.formFileToTemp(c, "thumbnail")
		if err != nil {
			return fail(c, models.NewInternalError(err))
		}
		defer removeIfSet(thumbPath)
		in.ThumbnailPath = thumbPath
	} else {
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, models.NewValidationError("Invalid request body"))
		}
		in.Title = req.Title
		in.Description = req.Description
	}

	video, err := s.videoService.Update(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Video updated successfully")
}

// DeleteVideo handles DELETE /api/v1/videos/:id
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.videoService.Delete(c.Context(), currentUserID(c), videoID); err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Video deleted successfully")
}

// TogglePublishVideo handles PATCH /api/v1/videos/:id/toggle-publish
func (s *Server) TogglePublishVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	video, err := s.videoService.TogglePublish(c.Context(), currentUserID(c), videoID)
	if err != nil {
		return fail(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Publish state toggled successfully")
}
