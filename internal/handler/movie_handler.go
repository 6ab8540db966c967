package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/cinelist/cinelist-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// MovieHandler proxies catalog reads to the movie gateway
type MovieHandler struct {
	movieService *service.MovieService
}

// NewMovieHandler creates a new MovieHandler
func NewMovieHandler(movieService *service.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

// SearchMovies handles GET /api/v1/movies/search?query=&page=
func (h *MovieHandler) SearchMovies(c echo.Context) error {
	query := c.QueryParam("query")
	page := parsePage(c.QueryParam("page"))

	data, err := h.movieService.Search(c.Request().Context(), query, page)
	if err != nil {
		if errors.Is(err, domain.ErrMovieTitleRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "query", Message: "Search query is required"},
			})
		}
		if errors.Is(err, domain.ErrMovieUnavailable) {
			return NewUpstreamError(c, "Movie catalog is unavailable")
		}
		log.Error().Err(err).Str("query", query).Msg("Failed to search movies")
		return NewInternalError(c, "Failed to search movies")
	}

	return c.JSONBlob(http.StatusOK, data)
}

// GetPopularMovies handles GET /api/v1/movies/popular?page=
func (h *MovieHandler) GetPopularMovies(c echo.Context) error {
	page := parsePage(c.QueryParam("page"))

	data, err := h.movieService.Popular(c.Request().Context(), page)
	if err != nil {
		if errors.Is(err, domain.ErrMovieUnavailable) {
			return NewUpstreamError(c, "Movie catalog is unavailable")
		}
		log.Error().Err(err).Msg("Failed to get popular movies")
		return NewInternalError(c, "Failed to get popular movies")
	}

	return c.JSONBlob(http.StatusOK, data)
}

// GetTrendingMovies handles GET /api/v1/movies/trending?page=
func (h *MovieHandler) GetTrendingMovies(c echo.Context) error {
	page := parsePage(c.QueryParam("page"))

	data, err := h.movieService.Trending(c.Request().Context(), page)
	if err != nil {
		if errors.Is(err, domain.ErrMovieUnavailable) {
			return NewUpstreamError(c, "Movie catalog is unavailable")
		}
		log.Error().Err(err).Msg("Failed to get trending movies")
		return NewInternalError(c, "Failed to get trending movies")
	}

	return c.JSONBlob(http.StatusOK, data)
}

// GetMovieDetails handles GET /api/v1/movies/:movieId
func (h *MovieHandler) GetMovieDetails(c echo.Context) error {
	movieID, err := strconv.ParseInt(c.Param("movieId"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid movie ID", nil)
	}

	data, err := h.movieService.Details(c.Request().Context(), movieID)
	if err != nil {
		if errors.Is(err, domain.ErrMovieIDRequired) {
			return NewValidationError(c, "Invalid movie ID", nil)
		}
		if errors.Is(err, domain.ErrMovieUnavailable) {
			return NewUpstreamError(c, "Movie catalog is unavailable")
		}
		log.Error().Err(err).Int64("movie_id", movieID).Msg("Failed to get movie details")
		return NewInternalError(c, "Failed to get movie details")
	}

	return c.JSONBlob(http.StatusOK, data)
}

func parsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
