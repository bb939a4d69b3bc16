// Package service contains the business logic for the application's domain.
package service

import (
	"context"
	"strings"

	"clipstream/internal/models"
	"clipstream/internal/repository"
	"clipstream/internal/storage"
	"clipstream/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
	uploader storage.Uploader
}

type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
	// AvatarPath and CoverPath are local temp files from the multipart
	// request. Avatar is required, cover is optional.
	AvatarPath string
	CoverPath  string
}

type UpdateAccountInput struct {
	UserID   uint
	FullName string
	Email    string
}

type ChangePasswordInput struct {
	UserID      uint
	OldPassword string
	NewPassword string
}

func NewUserService(userRepo repository.UserRepository, uploader storage.Uploader) *UserService {
	return &UserService{userRepo: userRepo, uploader: uploader}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, models.NewValidationError("Full name is required")
	}
	if in.AvatarPath == "" {
		return nil, models.NewValidationError("Avatar image is required")
	}

	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username is already taken")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	avatar, err := s.uploader.Upload(ctx, in.AvatarPath, "avatars")
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	var coverURL string
	if in.CoverPath != "" {
		cover, err := s.uploader.Upload(ctx, in.CoverPath, "covers")
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		coverURL = cover.URL
	}

	user := &models.User{
		Username:   username,
		Email:      email,
		FullName:   strings.TrimSpace(in.FullName),
		Password:   string(hash),
		Avatar:     avatar.URL,
		CoverImage: coverURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a user by username or email and verifies the
// password. The error is identical for unknown identity and wrong password.
func (s *UserService) Authenticate(ctx context.Context, identity, password string) (*models.User, error) {
	identity = strings.ToLower(strings.TrimSpace(identity))
	if identity == "" || password == "" {
		return nil, models.NewValidationError("Username or email and password are required")
	}

	var user *models.User
	var err error
	if strings.Contains(identity, "@") {
		user, err = s.userRepo.GetByEmail(ctx, identity)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, identity)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateAccount(ctx context.Context, in UpdateAccountInput) (*models.User, error) {
	user, err := s.userRepo.GetWithSecrets(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.FullName != "" {
		user.FullName = strings.TrimSpace(in.FullName)
		updates["full_name"] = user.FullName
	}
	if in.Email != "" {
		email := strings.ToLower(strings.TrimSpace(in.Email))
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != user.ID {
			return nil, models.NewValidationError("Email is already registered")
		}
		user.Email = email
		updates["email"] = email
	}

	if len(updates) == 0 {
		return user, nil
	}
	if err := s.userRepo.UpdateColumns(ctx, user.ID, updates); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, localPath string) (*models.User, error) {
	return s.updateImage(ctx, userID, localPath, "avatars", "avatar", func(u *models.User, url string) {
		u.Avatar = url
	})
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID uint, localPath string) (*models.User, error) {
	return s.updateImage(ctx, userID, localPath, "covers", "cover_image", func(u *models.User, url string) {
		u.CoverImage = url
	})
}

func (s *UserService) updateImage(ctx context.Context, userID uint, localPath, folder, column string, apply func(*models.User, string)) (*models.User, error) {
	if localPath == "" {
		return nil, models.NewValidationError("Image file is required")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	res, err := s.uploader.Upload(ctx, localPath, folder)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	apply(user, res.URL)
	if err := s.userRepo.UpdateColumns(ctx, userID, map[string]any{column: res.URL}); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	user, err := s.userRepo.GetWithSecrets(ctx, in.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.UpdateColumns(ctx, in.UserID, map[string]any{"password": string(hash)})
}

// SaveRefreshToken persists the current refresh token for rotation checks.
func (s *UserService) SaveRefreshToken(ctx context.Context, userID uint, token string) error {
	return s.userRepo.UpdateColumns(ctx, userID, map[string]any{"refresh_token": token})
}

// VerifyRefreshToken checks the presented token against the stored one. The
// stored value is read straight from the database: the read cache never holds
// credentials.
func (s *UserService) VerifyRefreshToken(ctx context.Context, userID uint, token string) (*models.User, error) {
	user, err := s.userRepo.GetWithSecrets(ctx, userID)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid refresh token")
	}
	// A mismatch means the token was already rotated or revoked.
	if user.RefreshToken == "" || user.RefreshToken != token {
		return nil, models.NewUnauthorizedError("Refresh token is expired or used")
	}
	return user, nil
}

func (s *UserService) ClearRefreshToken(ctx context.Context, userID uint) error {
	return s.SaveRefreshToken(ctx, userID, "")
}

func (s *UserService) GetWatchHistory(ctx context.Context, userID uint, page, limit int) ([]*models.Video, error) {
	return s.userRepo.GetWatchHistory(ctx, userID, page, limit)
}
