package domain

import (
	"errors"
	"time"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrReviewForbidden = errors.New("review does not belong to this user")
	ErrInvalidRating   = errors.New("rating must be between 0 and 10")
)

// Review is a user's single review of a movie. At most one review
// exists per (user, movie) pair; writing again overwrites in place.
type Review struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	MovieID    int64     `json:"movieId"`
	MovieTitle string    `json:"movieTitle"`
	Rating     float64   `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ReviewWithAuthor includes the author's email for display
type ReviewWithAuthor struct {
	Review
	UserEmail string `json:"userEmail"`
}

func (r *Review) Validate() error {
	if r.MovieID == 0 {
		return ErrMovieIDRequired
	}
	if r.MovieTitle == "" {
		return ErrMovieTitleRequired
	}
	if r.Rating < 0 || r.Rating > 10 {
		return ErrInvalidRating
	}
	return nil
}

// ReviewRepository defines the interface for review persistence.
// Upsert is a single conflict-handled write on (user_id, movie_id):
// the database decides between insert and overwrite, so concurrent
// writers for the same pair can never produce two rows.
type ReviewRepository interface {
	Upsert(review *Review) (*Review, error)
	GetByID(id int64) (*Review, error)
	GetAllByMovie(movieID int64) ([]*ReviewWithAuthor, error)
	GetAllByUser(userID int64) ([]*ReviewWithAuthor, error)
	Delete(id int64) error
}
