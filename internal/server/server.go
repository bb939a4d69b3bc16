// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"clipstream/internal/cache"
	"clipstream/internal/config"
	"clipstream/internal/database"
	"clipstream/internal/middleware"
	"clipstream/internal/models"
	"clipstream/internal/repository"
	"clipstream/internal/service"
	"clipstream/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	uploader       storage.Uploader

	userRepo     repository.UserRepository
	videoRepo    repository.VideoRepository
	tweetRepo    repository.TweetRepository
	commentRepo  repository.CommentRepository
	likeRepo     repository.LikeRepository
	subRepo      repository.SubscriptionRepository
	channelRepo  repository.ChannelRepository
	playlistRepo repository.PlaylistRepository

	userService     *service.UserService
	videoService    *service.VideoService
	tweetService    *service.TweetService
	commentService  *service.CommentService
	likeService     *service.LikeService
	subService      *service.SubscriptionService
	channelService  *service.ChannelService
	playlistService *service.PlaylistService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	uploader, err := storage.NewS3Uploader(context.Background(), cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		return nil, fmt.Errorf("object storage init failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, uploader)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis/storage.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, uploader storage.Uploader) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("clipstream-api"),
		uploader:       uploader,
		userRepo:       repository.NewUserRepository(db),
		videoRepo:      repository.NewVideoRepository(db),
		tweetRepo:      repository.NewTweetRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
		subRepo:        repository.NewSubscriptionRepository(db),
		channelRepo:    repository.NewChannelRepository(db),
		playlistRepo:   repository.NewPlaylistRepository(db),
	}

	server.userService = service.NewUserService(server.userRepo, uploader)
	server.videoService = service.NewVideoService(server.videoRepo, server.userRepo, uploader)
	server.tweetService = service.NewTweetService(server.tweetRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.videoRepo)
	server.likeService = service.NewLikeService(server.likeRepo, server.videoRepo, server.commentRepo, server.tweetRepo)
	server.subService = service.NewSubscriptionService(server.subRepo, server.userRepo)
	server.channelService = service.NewChannelService(server.channelRepo, server.videoRepo)
	server.playlistService = service.NewPlaylistService(server.playlistRepo, server.videoRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewValidationError("Too many requests, please try again later."))
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api/v1")

	// User and auth routes
	users := api.Group("/users")
	users.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	users.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	users.Post("/refresh-token", s.RefreshToken)
	users.Post("/logout", s.AuthRequired(), s.Logout)
	users.Get("/me", s.AuthRequired(), s.GetCurrentUser)
	users.Patch("/me", s.AuthRequired(), s.UpdateAccount)
	users.Post("/me/change-password", s.AuthRequired(), s.ChangePassword)
	users.Patch("/me/avatar", s.AuthRequired(), s.UpdateAvatar)
	users.Patch("/me/cover-image", s.AuthRequired(), s.UpdateCoverImage)
	users.Get("/me/watch-history", s.AuthRequired(), s.GetWatchHistory)
	// Channel profile lookup is public; the viewer only affects is_subscribed.
	users.Get("/channel/:username", s.GetChannelProfile)

	// Video routes
	videos := api.Group("/videos")
	videos.Get("/", s.GetVideos)
	videos.Post("/", s.AuthRequired(), middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "publish_video"), s.PublishVideo)
	videos.Get("/:id", s.GetVideo)
	videos.Patch("/:id", s.AuthRequired(), s.UpdateVideo)
	videos.Delete("/:id", s.AuthRequired(), s.DeleteVideo)
	videos.Patch("/:id/toggle-publish", s.AuthRequired(), s.TogglePublishVideo)

	// Comment routes hang off videos for listing and creation
	videos.Get("/:id/comments", s.GetVideoComments)
	videos.Post("/:id/comments", s.AuthRequired(), middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.AddComment)
	comments := api.Group("/comments", s.AuthRequired())
	comments.Patch("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	// Tweet routes
	tweets := api.Group("/tweets")
	tweets.Post("/", s.AuthRequired(), middleware.RateLimit(
		s.redis, 10, time.Minute, "create_tweet"), s.CreateTweet)
	tweets.Get("/user/:userId", s.GetUserTweets)
	tweets.Patch("/:id", s.AuthRequired(), s.UpdateTweet)
	tweets.Delete("/:id", s.AuthRequired(), s.DeleteTweet)

	// Like routes
	likes := api.Group("/likes", s.AuthRequired())
	likes.Post("/toggle/v/:videoId", s.ToggleVideoLike)
	likes.Post("/toggle/c/:commentId", s.ToggleCommentLike)
	likes.Post("/toggle/t/:tweetId", s.ToggleTweetLike)
	likes.Get("/videos", s.GetLikedVideos)

	// Subscription routes
	subs := api.Group("/subscriptions")
	subs.Post("/c/:channelId", s.AuthRequired(), s.ToggleSubscription)
	subs.Get("/c/:channelId/subscribers", s.GetChannelSubscribers)
	subs.Get("/me/channels", s.AuthRequired(), s.GetSubscribedChannels)

	// Playlist routes
	playlists := api.Group("/playlists")
	playlists.Post("/", s.AuthRequired(), s.CreatePlaylist)
	playlists.Get("/user/:userId", s.GetUserPlaylists)
	playlists.Get("/:id", s.GetPlaylist)
	playlists.Patch("/:id", s.AuthRequired(), s.UpdatePlaylist)
	playlists.Delete("/:id", s.AuthRequired(), s.DeletePlaylist)
	playlists.Patch("/:id/videos/:videoId", s.AuthRequired(), s.AddVideoToPlaylist)
	playlists.Delete("/:id/videos/:videoId", s.AuthRequired(), s.RemoveVideoFromPlaylist)

	// Dashboard routes (channel owner only)
	dashboard := api.Group("/dashboard", s.AuthRequired())
	dashboard.Get("/stats", s.GetChannelStats)
	dashboard.Get("/videos", s.GetChannelVideos)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. The access token is
// read from the httpOnly cookie first, then the Authorization header.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := s.accessTokenFrom(c)
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, jti, err := s.parseAccessToken(tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		// Check JTI for revocation
		if jti != "" && s.redis != nil {
			isBlacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
			if err == nil && isBlacklisted > 0 {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

func (s *Server) accessTokenFrom(c *fiber.Ctx) string {
	if cookie := c.Cookies("accessToken"); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// parseAccessToken validates an access token and returns the subject user ID
// and the token's jti.
func (s *Server) parseAccessToken(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", models.NewUnauthorizedError("Invalid token claims")
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, "", models.NewUnauthorizedError("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, "", models.NewUnauthorizedError("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, "", models.NewUnauthorizedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, "", models.NewUnauthorizedError("Invalid user ID in token")
	}

	jti, _ := claims["jti"].(string)
	return uint(userID), jti, nil
}

// optionalUserID extracts the viewer from the cookie or Authorization header
// without enforcing authentication. Public feeds use it to compute the
// viewer-dependent liked and is_subscribed flags.
func (s *Server) optionalUserID(c *fiber.Ctx) uint {
	tokenString := s.accessTokenFrom(c)
	if tokenString == "" {
		return 0
	}
	userID, _, err := s.parseAccessToken(tokenString)
	if err != nil {
		return 0
	}
	return userID
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Clipstream API",
		BodyLimit: 512 * 1024 * 1024, // video uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
