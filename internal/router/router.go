package router

import (
	"github.com/campushub/backend/internal/cache"
	"github.com/campushub/backend/internal/handlers"
	"github.com/campushub/backend/internal/middleware"
	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"github.com/campushub/backend/internal/services"
	"github.com/campushub/backend/pkg/config"
	"github.com/campushub/backend/pkg/events"
	"github.com/campushub/backend/pkg/wechat"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies.
// producer may be nil when Kafka is not configured.
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, producer *events.Producer, logger zerolog.Logger) {
	// AutoMigrate PostgreSQL models
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Action{},
		&models.Notification{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.PrivateMessage{},
		&models.StudentIDUpload{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate models")
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	postRepo := repositories.NewPostgresPostRepository(db.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)
	actionRepo := repositories.NewPostgresActionRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	conversationRepo := repositories.NewPostgresConversationRepository(db.Postgres)
	categoryRepo := repositories.NewPostgresCategoryRepository(db.Postgres)
	tagRepo := repositories.NewPostgresTagRepository(db.Postgres)
	uploadRepo := repositories.NewPostgresUploadRepository(db.Postgres)
	blobRepo := repositories.NewMongoBlobRepository(db.Mongo.Database("campushub"))

	// --- Services ---
	counts := cache.NewCounts(db.Redis, logger)
	resolver := services.NewTargetResolver(postRepo, commentRepo)
	notifier := services.NewNotifier(notificationRepo, counts, producer, logger)
	reactionService := services.NewReactionService(actionRepo, userRepo, resolver, notifier, counts, producer, logger)
	notificationService := services.NewNotificationService(notificationRepo, resolver, counts, logger)
	messagingService := services.NewMessagingService(conversationRepo, userRepo, producer, logger)
	verificationService := services.NewVerificationService(uploadRepo, blobRepo, userRepo, logger)

	var wechatClient *wechat.Client
	if cfg.WechatAppID != "" && cfg.WechatAppSecret != "" {
		wechatClient = wechat.NewClient(cfg.WechatAppID, cfg.WechatAppSecret)
	}

	// --- Unprotected routes ---
	public := e.Group("/api/v1")
	authHandler := handlers.NewAuthHandler(userRepo, wechatClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(public)

	// --- Protected routes ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	handlers.NewUserHandler(userRepo).RegisterProfileRoutes(api)
	handlers.NewPostHandler(postRepo, userRepo, reactionService).RegisterPostRoutes(api)
	handlers.NewCommentHandler(commentRepo, postRepo, userRepo, notifier).RegisterCommentRoutes(api)
	handlers.NewReactionHandler(reactionService).RegisterReactionRoutes(api)
	handlers.NewCategoryHandler(categoryRepo, tagRepo, userRepo).RegisterCategoryRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)
	handlers.NewConversationHandler(messagingService).RegisterConversationRoutes(api)
	handlers.NewUploadHandler(verificationService).RegisterUploadRoutes(api)

	logger.Info().Msg("all routes configured")
}
