package service

import (
	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/cinelist/cinelist-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// ReviewService handles review business logic
type ReviewService struct {
	reviewRepo     domain.ReviewRepository
	userRepo       domain.UserRepository
	eventPublisher websocket.EventPublisher
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo domain.ReviewRepository, userRepo domain.UserRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ReviewService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ReviewService) publishEvent(userID int64, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// WriteReviewInput contains a review payload. MovieTitle is the display
// title captured by the caller; it is refreshed on every write.
type WriteReviewInput struct {
	MovieID    int64
	MovieTitle string
	Rating     float64
	Comment    *string
}

// WriteReview creates or overwrites the user's review of a movie. The
// store performs a single conflict-handled write, so the (user, movie)
// pair can never hold two rows no matter how callers race.
func (s *ReviewService) WriteReview(userID int64, input WriteReviewInput) (*domain.Review, error) {
	review := &domain.Review{
		UserID:     userID,
		MovieID:    input.MovieID,
		MovieTitle: input.MovieTitle,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	// The referenced user must exist before touching the reviews relation.
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	saved, err := s.reviewRepo.Upsert(review)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", userID).Int64("movie_id", input.MovieID).
		Int64("review_id", saved.ID).Msg("Review written")
	s.publishEvent(userID, websocket.ReviewWritten(saved))
	return saved, nil
}

// GetReviewsByMovie retrieves all reviews of a movie, oldest first
func (s *ReviewService) GetReviewsByMovie(movieID int64) ([]*domain.ReviewWithAuthor, error) {
	if movieID == 0 {
		return nil, domain.ErrMovieIDRequired
	}
	return s.reviewRepo.GetAllByMovie(movieID)
}

// GetReviewsByUser retrieves all reviews written by a user, oldest first
func (s *ReviewService) GetReviewsByUser(userID int64) ([]*domain.ReviewWithAuthor, error) {
	return s.reviewRepo.GetAllByUser(userID)
}

// DeleteReview deletes a review. Only the author may delete; anyone
// else gets ErrReviewForbidden and the review is left untouched.
func (s *ReviewService) DeleteReview(reviewID int64, requestingUserID int64) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review.UserID != requestingUserID {
		return domain.ErrReviewForbidden
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return err
	}

	log.Info().Int64("user_id", requestingUserID).Int64("review_id", reviewID).Msg("Review deleted")
	s.publishEvent(requestingUserID, websocket.ReviewDeleted(map[string]int64{"reviewId": reviewID}))
	return nil
}
