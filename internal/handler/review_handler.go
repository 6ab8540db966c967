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

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// WriteReviewRequest represents the write review request body
type WriteReviewRequest struct {
	MovieID    int64   `json:"movieId"`
	MovieTitle string  `json:"movieTitle"`
	Rating     float64 `json:"rating"`
	Comment    *string `json:"comment"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	UserEmail  string  `json:"userEmail,omitempty"`
	MovieID    int64   `json:"movieId"`
	MovieTitle string  `json:"movieTitle"`
	Rating     float64 `json:"rating"`
	Comment    *string `json:"comment,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// WriteReview handles POST /api/v1/reviews. Writing again for the same
// movie overwrites the existing review instead of creating another.
func (h *ReviewHandler) WriteReview(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req WriteReviewRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	review, err := h.reviewService.WriteReview(userID, service.WriteReviewInput{
		MovieID:    req.MovieID,
		MovieTitle: req.MovieTitle,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMovieIDRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "movieId", Message: "Movie id is required"},
			})
		}
		if errors.Is(err, domain.ErrMovieTitleRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "movieTitle", Message: "Movie title is required"},
			})
		}
		if errors.Is(err, domain.ErrInvalidRating) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "rating", Message: "Rating must be between 0 and 10"},
			})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Int64("user_id", userID).Int64("movie_id", req.MovieID).Msg("Failed to write review")
		return NewInternalError(c, "Failed to write review")
	}

	return c.JSON(http.StatusCreated, toReviewResponse(review))
}

// GetReviewsByMovie handles GET /api/v1/reviews/movie/:movieId
func (h *ReviewHandler) GetReviewsByMovie(c echo.Context) error {
	movieID, err := strconv.ParseInt(c.Param("movieId"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid movie ID", nil)
	}

	reviews, err := h.reviewService.GetReviewsByMovie(movieID)
	if err != nil {
		if errors.Is(err, domain.ErrMovieIDRequired) {
			return NewValidationError(c, "Invalid movie ID", nil)
		}
		log.Error().Err(err).Int64("movie_id", movieID).Msg("Failed to get reviews by movie")
		return NewInternalError(c, "Failed to get reviews")
	}

	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// GetMyReviews handles GET /api/v1/reviews/me
func (h *ReviewHandler) GetMyReviews(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	reviews, err := h.reviewService.GetReviewsByUser(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get reviews by user")
		return NewInternalError(c, "Failed to get reviews")
	}

	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// DeleteReview handles DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid review ID", nil)
	}

	if err := h.reviewService.DeleteReview(id, userID); err != nil {
		if errors.Is(err, domain.ErrReviewNotFound) {
			return NewNotFoundError(c, "Review not found")
		}
		if errors.Is(err, domain.ErrReviewForbidden) {
			return NewForbiddenError(c, "You may only delete your own reviews")
		}
		log.Error().Err(err).Int64("user_id", userID).Int64("review_id", id).Msg("Failed to delete review")
		return NewInternalError(c, "Failed to delete review")
	}

	return c.NoContent(http.StatusNoContent)
}

func toReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		UserID:     review.UserID,
		MovieID:    review.MovieID,
		MovieTitle: review.MovieTitle,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  review.UpdatedAt.Format(time.RFC3339),
	}
}

func toReviewResponses(reviews []*domain.ReviewWithAuthor) []ReviewResponse {
	response := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		response[i] = toReviewResponse(&review.Review)
		response[i].UserEmail = review.UserEmail
	}
	return response
}
