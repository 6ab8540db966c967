package handler

import (
	"github.com/cinelist/cinelist-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, userHandler *UserHandler, listHandler *ListHandler, reviewHandler *ReviewHandler, watchedHandler *WatchedHandler, movieHandler *MovieHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// User routes. Sync runs behind token validation alone so first-time
	// callers can create their local user; /me needs the user to exist.
	users := api.Group("/users")
	users.Use(authMiddleware.Authenticate())
	users.POST("/sync", userHandler.Sync)
	users.GET("/me", userHandler.Me, authMiddleware.RequireUser())

	// List routes (protected)
	lists := api.Group("/lists")
	lists.Use(authMiddleware.Authenticate())
	lists.Use(authMiddleware.RequireUser())
	lists.POST("", listHandler.CreateList)
	lists.GET("", listHandler.GetLists)
	lists.GET("/:id", listHandler.GetList)
	lists.PUT("/:id", listHandler.UpdateList)
	lists.DELETE("/:id", listHandler.DeleteList)
	lists.POST("/:id/movies", listHandler.AddMovie)
	lists.DELETE("/:id/movies/:movieId", listHandler.RemoveMovie)

	// Review routes (protected)
	reviews := api.Group("/reviews")
	reviews.Use(authMiddleware.Authenticate())
	reviews.Use(authMiddleware.RequireUser())
	reviews.POST("", reviewHandler.WriteReview)
	reviews.GET("/me", reviewHandler.GetMyReviews)
	reviews.GET("/movie/:movieId", reviewHandler.GetReviewsByMovie)
	reviews.DELETE("/:id", reviewHandler.DeleteReview)

	// Watch status routes (protected)
	watched := api.Group("/watched")
	watched.Use(authMiddleware.Authenticate())
	watched.Use(authMiddleware.RequireUser())
	watched.PUT("", watchedHandler.TrackMovie)
	watched.GET("", watchedHandler.GetWatched)
	watched.DELETE("/:movieId", watchedHandler.UntrackMovie)

	// Catalog proxy routes (protected, rate limited per user)
	movies := api.Group("/movies")
	movies.Use(authMiddleware.Authenticate())
	movies.Use(authMiddleware.RequireUser())
	movies.Use(middleware.RateLimitMiddleware(rateLimiter))
	movies.GET("/search", movieHandler.SearchMovies)
	movies.GET("/popular", movieHandler.GetPopularMovies)
	movies.GET("/trending", movieHandler.GetTrendingMovies)
	movies.GET("/:movieId", movieHandler.GetMovieDetails)

	// WebSocket endpoint (token validated during handshake)
	e.GET("/ws", wsHandler.HandleWS)
}
