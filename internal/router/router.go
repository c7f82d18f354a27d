package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rdmitry/openforum/backend/internal/content"
	"github.com/rdmitry/openforum/backend/internal/contentmgr"
	"github.com/rdmitry/openforum/backend/internal/fanout"
	"github.com/rdmitry/openforum/backend/internal/handlers"
	"github.com/rdmitry/openforum/backend/internal/middleware"
	"github.com/rdmitry/openforum/backend/internal/models"
	"github.com/rdmitry/openforum/backend/internal/notify"
	"github.com/rdmitry/openforum/backend/internal/repositories"
	"github.com/rdmitry/openforum/backend/internal/tasks"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, taskRegistry *tasks.Registry) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Site{},
		&models.Comment{},
		&models.CommentVote{},
		&models.Watch{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := mgClient.Database("openforum")
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	siteRepo := repositories.NewPostgresSiteRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	voteRepo := repositories.NewPostgresVoteRepository(pgdb)
	watchRepo := repositories.NewPostgresWatchRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	feedRepo := repositories.NewMongoFeedRepository(mongoDB)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Core services ---
	parser := content.NewMarkdownParser()
	dispatcher := notify.NewRepoDispatcher(notificationRepo, userRepo)
	fanoutService := fanout.NewFeedFanout(feedRepo, followRepo, watchRepo, postRepo)
	contentManager := contentmgr.NewManager(siteRepo, postRepo, commentRepo, watchRepo, parser, dispatcher, fanoutService, taskRegistry)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Site routes
	siteHandler := handlers.NewSiteHandler(siteRepo)
	siteHandler.RegisterSiteRoutes(api)
	log.Println("Site routes configured.")

	// Content routes (posts, comments, preview)
	contentHandler := handlers.NewContentHandler(contentManager)
	contentHandler.RegisterContentRoutes(api)
	log.Println("Content routes configured.")

	// Bookmark/watch/read routes
	watchHandler := handlers.NewWatchHandler(contentManager)
	watchHandler.RegisterWatchRoutes(api)
	log.Println("Watch routes configured.")

	// Vote routes
	voteHandler := handlers.NewVoteHandler(voteRepo, commentRepo)
	voteHandler.RegisterVoteRoutes(api)
	log.Println("Vote routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(feedRepo, userRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
