package router

import (
	"context"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/ayomikun-ade/framez/internal/handlers"
	"github.com/ayomikun-ade/framez/internal/middleware"
	"github.com/ayomikun-ade/framez/internal/models"
	"github.com/ayomikun-ade/framez/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.RequestID())
	e.Use(requestLogger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// requestLogger logs every request with zerolog
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mongoDB *mongo.Database, firebaseAuthClient *auth.Client) {
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to auto migrate models")
	}

	postRepo := repositories.NewMongoPostRepository(mongoDB)
	if err := postRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to create post indexes")
	}
	userRepo := repositories.NewPostgresUserRepository(pgdb)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Everything else requires a verified ID token
	api := e.Group("/api/v1")
	api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, userRepo)
	postHandler.RegisterPostRoutes(api)

	likeHandler := handlers.NewLikeHandler(postRepo, userRepo)
	likeHandler.RegisterLikeRoutes(api)

	commentHandler := handlers.NewCommentHandler(postRepo, userRepo)
	commentHandler.RegisterCommentRoutes(api)

	log.Info().Msg("All routes configured")
}
