package server

import (
	"fmt"
	"strconv"
	"time"

	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "clipstream-api"
	tokenAudience = "clipstream-client"

	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Register handles POST /api/v1/users/register. The request is multipart:
// text fields plus a required avatar file and an optional coverImage file.
func (s *Server) Register(c *fiber.Ctx) error {
	avatarPath, err := s.formFileToTemp(c, "avatar")
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}
	defer removeIfSet(avatarPath)

	coverPath, err := s.formFileToTemp(c, "coverImage")
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}
	defer removeIfSet(coverPath)

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Username:   c.FormValue("username"),
		Email:      c.FormValue("email"),
		FullName:   c.FormValue("fullName"),
		Password:   c.FormValue("password"),
		AvatarPath: avatarPath,
		CoverPath:  coverPath,
	})
	if err != nil {
		return fail(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, user, "User registered successfully")
}

// Login handles POST /api/v1/users/login. Accepts username or email.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	identity := req.Username
	if identity == "" {
		identity = req.Email
	}

	user, err := s.userService.Authenticate(c.Context(), identity, req.Password)
	if err != nil {
		return fail(c, err)
	}

	accessToken, refreshToken, err := s.issueTokenPair(c, user.ID, user.Username)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "User logged in successfully")
}

// Logout handles POST /api/v1/users/logout. The refresh token is cleared and
// the current access token's jti is blacklisted until it would expire.
func (s *Server) Logout(c *fiber.Ctx) error {
	userID := currentUserID(c)

	if err := s.userService.ClearRefreshToken(c.Context(), userID); err != nil {
		return fail(c, err)
	}

	if tokenString := s.accessTokenFrom(c); tokenString != "" && s.redis != nil {
		if _, jti, err := s.parseAccessToken(tokenString); err == nil && jti != "" {
			s.redis.Set(c.Context(), "blacklist:"+jti, "1", accessTokenTTL)
		}
	}

	s.clearAuthCookies(c)
	return models.Respond(c, fiber.StatusOK, nil, "User logged out successfully")
}

// RefreshToken handles POST /api/v1/users/refresh-token. The refresh token
// comes from the cookie or the body, must match the one stored on the user,
// and is rotated on every use.
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	tokenString := c.Cookies("refreshToken")
	if tokenString == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.BodyParser(&req); err == nil {
			tokenString = req.RefreshToken
		}
	}
	if tokenString == "" {
		return fail(c, models.NewUnauthorizedError("Refresh token required"))
	}

	userID, err := s.parseRefreshToken(tokenString)
	if err != nil {
		return fail(c, err)
	}

	user, err := s.userService.VerifyRefreshToken(c.Context(), userID, tokenString)
	if err != nil {
		return fail(c, err)
	}

	accessToken, refreshToken, err := s.issueTokenPair(c, user.ID, user.Username)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Access token refreshed")
}

// issueTokenPair generates both tokens, persists the refresh token for
// rotation, and sets the auth cookies.
func (s *Server) issueTokenPair(c *fiber.Ctx, userID uint, username string) (string, string, error) {
	accessToken, err := s.generateToken(userID, username)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.generateRefreshToken(userID)
	if err != nil {
		return "", "", err
	}
	if err := s.userService.SaveRefreshToken(c.Context(), userID, refreshToken); err != nil {
		return "", "", err
	}

	secure := s.config.Env == "production"
	c.Cookie(&fiber.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		Expires:  time.Now().Add(accessTokenTTL),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		Expires:  time.Now().Add(refreshTokenTTL),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
	})

	return accessToken, refreshToken, nil
}

func (s *Server) clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "accessToken", Value: "", Expires: expired, HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: "refreshToken", Value: "", Expires: expired, HTTPOnly: true})
}

// generateToken creates a short-lived access token for the given user.
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(accessTokenTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateRefreshToken creates a long-lived refresh token. It is signed with
// a separate secret and carries only the subject.
func (s *Server) generateRefreshToken(userID uint) (string, error) {
	if s.config.JWTRefreshSecret == "" {
		return "", fmt.Errorf("JWT refresh secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(refreshTokenTTL).Unix(),
		"iat": now.Unix(),
		"jti": s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTRefreshSecret))
}

func (s *Server) parseRefreshToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTRefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}
	return uint(userID), nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
