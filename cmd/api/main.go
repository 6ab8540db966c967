package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinelist/cinelist-backend/internal/config"
	"github.com/cinelist/cinelist-backend/internal/handler"
	"github.com/cinelist/cinelist-backend/internal/middleware"
	"github.com/cinelist/cinelist-backend/internal/repository/postgres"
	"github.com/cinelist/cinelist-backend/internal/repository/tmdb"
	"github.com/cinelist/cinelist-backend/internal/service"
	"github.com/cinelist/cinelist-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Apply schema migrations
	if err := postgres.RunMigrations(pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	listRepo := postgres.NewListRepository(pool)
	listItemRepo := postgres.NewListItemRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	watchedRepo := postgres.NewWatchedRepository(pool)

	// Initialize the movie catalog gateway
	movieGateway := tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey, nil)

	// Initialize services
	userSyncService := service.NewUserSyncService(userRepo)
	listService := service.NewListService(listRepo, listItemRepo)
	reviewService := service.NewReviewService(reviewRepo, userRepo)
	watchedService := service.NewWatchedService(watchedRepo)
	movieService := service.NewMovieService(movieGateway)

	// Initialize WebSocket hub and wire live events into services
	hub := websocket.NewHub()
	listService.SetEventPublisher(hub)
	reviewService.SetEventPublisher(hub)
	watchedService.SetEventPublisher(hub)

	// Create user provider adapter for auth middleware
	userProvider := &userProviderAdapter{userSyncService: userSyncService}

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, userProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	// Initialize per-user rate limiter for the catalog proxy
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Initialize handlers
	userHandler := handler.NewUserHandler(userSyncService)
	listHandler := handler.NewListHandler(listService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	watchedHandler := handler.NewWatchedHandler(watchedService)
	movieHandler := handler.NewMovieHandler(movieService)
	wsHandler := handler.NewWebSocketHandler(hub, authMiddleware, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, userHandler, listHandler, reviewHandler, watchedHandler, movieHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// userProviderAdapter adapts UserSyncService to middleware.UserProvider
type userProviderAdapter struct {
	userSyncService *service.UserSyncService
}

// GetUserIDByExternalID implements middleware.UserProvider
func (a *userProviderAdapter) GetUserIDByExternalID(externalID string) (int64, error) {
	user, err := a.userSyncService.GetByExternalID(externalID)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
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
