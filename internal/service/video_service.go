package service

import (
	"context"
	"strings"

	"clipstream/internal/models"
	"clipstream/internal/repository"
	"clipstream/internal/storage"
)

const (
	maxVideoTitleLen       = 200
	maxVideoDescriptionLen = 5000
)

type VideoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	uploader  storage.Uploader
}

type PublishVideoInput struct {
	OwnerID     uint
	Title       string
	Description string
	// VideoPath and ThumbnailPath are local temp files from the multipart
	// request. Both are required.
	VideoPath     string
	ThumbnailPath string
}

type ListVideosInput struct {
	ViewerID uint
	OwnerID  uint
	Query    string
	Page     int
	Limit    int
	SortBy   string
	SortDir  string
	// IncludeUnpublished lists drafts too. Only honored when the viewer is
	// the owner being filtered on.
	IncludeUnpublished bool
}

type UpdateVideoInput struct {
	UserID      uint
	VideoID     uint
	Title       string
	Description string
	// ThumbnailPath replaces the thumbnail when set.
	ThumbnailPath string
}

func NewVideoService(videoRepo repository.VideoRepository, userRepo repository.UserRepository, uploader storage.Uploader) *VideoService {
	return &VideoService{videoRepo: videoRepo, userRepo: userRepo, uploader: uploader}
}

func validateVideoText(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxVideoTitleLen {
		return models.NewValidationError("Title too long (max 200 characters)")
	}
	if len(description) > maxVideoDescriptionLen {
		return models.NewValidationError("Description too long (max 5000 characters)")
	}
	return nil
}

// Publish uploads the media, stores the video record, and returns it. The
// duration comes from the upload provider; clients never supply it.
func (s *VideoService) Publish(ctx context.Context, in PublishVideoInput) (*models.Video, error) {
	if err := validateVideoText(in.Title, in.Description); err != nil {
		return nil, err
	}
	if in.VideoPath == "" {
		return nil, models.NewValidationError("Video file is required")
	}
	if in.ThumbnailPath == "" {
		return nil, models.NewValidationError("Thumbnail file is required")
	}

	videoRes, err := s.uploader.Upload(ctx, in.VideoPath, "videos")
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	thumbRes, err := s.uploader.Upload(ctx, in.ThumbnailPath, "thumbnails")
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	video := &models.Video{
		VideoFile:   videoRes.URL,
		Thumbnail:   thumbRes.URL,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Duration:    videoRes.Duration,
		IsPublished: true,
		OwnerID:     in.OwnerID,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	return s.videoRepo.GetByID(ctx, video.ID, in.OwnerID)
}

func (s *VideoService) Get(ctx context.Context, videoID, viewerID uint) (*models.Video, error) {
	return visibleVideo(ctx, s.videoRepo, videoID, viewerID)
}

// visibleVideo loads a video and hides other owners' drafts behind the same
// not-found as a missing video. Every read that resolves a caller-supplied
// video id goes through here, likes and comments included.
func visibleVideo(ctx context.Context, repo repository.VideoRepository, videoID, viewerID uint) (*models.Video, error) {
	video, err := repo.GetByID(ctx, videoID, viewerID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, models.NewNotFoundError("Video", videoID)
	}
	return video, nil
}

// View records a watch: the view counter is bumped and, for signed-in
// viewers, the video lands at the top of their watch history.
func (s *VideoService) View(ctx context.Context, videoID, viewerID uint) (*models.Video, error) {
	video, err := s.Get(ctx, videoID, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		return nil, err
	}
	video.Views++
	if viewerID != 0 {
		if err := s.userRepo.RecordWatch(ctx, viewerID, videoID); err != nil {
			return nil, err
		}
	}
	return video, nil
}

func (s *VideoService) List(ctx context.Context, in ListVideosInput) ([]*models.Video, int64, error) {
	filter := repository.VideoFilter{
		OwnerID:       in.OwnerID,
		Query:         strings.TrimSpace(in.Query),
		OnlyPublished: true,
	}
	if in.IncludeUnpublished && in.OwnerID != 0 && in.OwnerID == in.ViewerID {
		filter.OnlyPublished = false
	}
	return s.videoRepo.List(ctx, filter, in.ViewerID, in.Page, in.Limit, in.SortBy, in.SortDir)
}

func (s *VideoService) Update(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, in.VideoID, in.UserID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own videos")
	}

	if in.Title != "" {
		if err := validateVideoText(in.Title, in.Description); err != nil {
			return nil, err
		}
		video.Title = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		if len(in.Description) > maxVideoDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 5000 characters)")
		}
		video.Description = in.Description
	}
	if in.ThumbnailPath != "" {
		res, err := s.uploader.Upload(ctx, in.ThumbnailPath, "thumbnails")
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		video.Thumbnail = res.URL
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) Delete(ctx context.Context, userID, videoID uint) error {
	video, err := s.videoRepo.GetByID(ctx, videoID, userID)
	if err != nil {
		return err
	}
	if video.OwnerID != userID {
		return models.NewForbiddenError("You can only delete your own videos")
	}
	return s.videoRepo.Delete(ctx, videoID)
}

// TogglePublish flips a video between draft and published and returns the
// new state.
func (s *VideoService) TogglePublish(ctx context.Context, userID, videoID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != userID {
		return nil, models.NewForbiddenError("You can only publish your own videos")
	}
	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}
