package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/cinelist/cinelist-backend/internal/middleware"
	"github.com/cinelist/cinelist-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WatchedHandler handles watch status HTTP requests
type WatchedHandler struct {
	watchedService *service.WatchedService
}

// NewWatchedHandler creates a new WatchedHandler
func NewWatchedHandler(watchedService *service.WatchedService) *WatchedHandler {
	return &WatchedHandler{watchedService: watchedService}
}

// TrackMovieRequest represents the track movie request body
type TrackMovieRequest struct {
	MovieID     int64    `json:"movieId"`
	Title       string   `json:"title"`
	PosterPath  *string  `json:"posterPath"`
	ReleaseYear *string  `json:"releaseYear"`
	Genres      *string  `json:"genres"`
	Status      string   `json:"status"`
	Score       *float64 `json:"score"`
}

// WatchedResponse represents a watch entry in API responses
type WatchedResponse struct {
	ID          int64    `json:"id"`
	MovieID     int64    `json:"movieId"`
	Title       string   `json:"title"`
	PosterPath  *string  `json:"posterPath,omitempty"`
	ReleaseYear *string  `json:"releaseYear,omitempty"`
	Genres      *string  `json:"genres,omitempty"`
	Status      string   `json:"status"`
	Score       *float64 `json:"score,omitempty"`
	AddedAt     string   `json:"addedAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// TrackMovie handles PUT /api/v1/watched
func (h *WatchedHandler) TrackMovie(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req TrackMovieRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	entry, err := h.watchedService.TrackMovie(userID, service.TrackMovieInput{
		MovieID:     req.MovieID,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		ReleaseYear: req.ReleaseYear,
		Genres:      req.Genres,
		Status:      domain.WatchStatus(req.Status),
		Score:       req.Score,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMovieIDRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "movieId", Message: "Movie id is required"},
			})
		}
		if errors.Is(err, domain.ErrMovieTitleRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "title", Message: "Title is required"},
			})
		}
		if errors.Is(err, domain.ErrInvalidStatus) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "status", Message: "Status must be watching, completed, planned or dropped"},
			})
		}
		if errors.Is(err, domain.ErrInvalidRating) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "score", Message: "Score must be between 0 and 10"},
			})
		}
		log.Error().Err(err).Int64("user_id", userID).Int64("movie_id", req.MovieID).Msg("Failed to track movie")
		return NewInternalError(c, "Failed to track movie")
	}

	return c.JSON(http.StatusOK, toWatchedResponse(entry))
}

// GetWatched handles GET /api/v1/watched?status=
func (h *WatchedHandler) GetWatched(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	status := domain.WatchStatus(c.QueryParam("status"))

	entries, err := h.watchedService.GetWatched(userID, status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return NewValidationError(c, "Invalid status filter", nil)
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get watched movies")
		return NewInternalError(c, "Failed to get watched movies")
	}

	response := make([]WatchedResponse, len(entries))
	for i, entry := range entries {
		response[i] = toWatchedResponse(entry)
	}

	return c.JSON(http.StatusOK, response)
}

// UntrackMovie handles DELETE /api/v1/watched/:movieId
func (h *WatchedHandler) UntrackMovie(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	movieID, err := strconv.ParseInt(c.Param("movieId"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid movie ID", nil)
	}

	if err := h.watchedService.UntrackMovie(userID, movieID); err != nil {
		if errors.Is(err, domain.ErrMovieIDRequired) {
			return NewValidationError(c, "Invalid movie ID", nil)
		}
		log.Error().Err(err).Int64("user_id", userID).Int64("movie_id", movieID).Msg("Failed to untrack movie")
		return NewInternalError(c, "Failed to untrack movie")
	}

	return c.NoContent(http.StatusNoContent)
}

func toWatchedResponse(entry *domain.WatchedMovie) WatchedResponse {
	return WatchedResponse{
		ID:          entry.ID,
		MovieID:     entry.MovieID,
		Title:       entry.Title,
		PosterPath:  entry.PosterPath,
		ReleaseYear: entry.ReleaseYear,
		Genres:      entry.Genres,
		Status:      string(entry.Status),
		Score:       entry.Score,
		AddedAt:     entry.AddedAt.Format(time.RFC3339),
		UpdatedAt:   entry.UpdatedAt.Format(time.RFC3339),
	}
}
