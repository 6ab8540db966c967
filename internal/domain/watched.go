package domain

import (
	"errors"
	"time"
)

var (
	ErrWatchedNotFound = errors.New("watched entry not found")
	ErrInvalidStatus   = errors.New("invalid watch status")
)

// WatchStatus is the user's progress on a movie
type WatchStatus string

const (
	StatusWatching  WatchStatus = "watching"
	StatusCompleted WatchStatus = "completed"
	StatusPlanned   WatchStatus = "planned"
	StatusDropped   WatchStatus = "dropped"
)

func (s WatchStatus) Valid() bool {
	switch s {
	case StatusWatching, StatusCompleted, StatusPlanned, StatusDropped:
		return true
	}
	return false
}

// WatchedMovie tracks a user's watch status for a movie, one row per
// (user, movie) pair. Display fields are captured when first tracked.
type WatchedMovie struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	MovieID     int64       `json:"movieId"`
	Title       string      `json:"title"`
	PosterPath  *string     `json:"posterPath,omitempty"`
	ReleaseYear *string     `json:"releaseYear,omitempty"`
	Genres      *string     `json:"genres,omitempty"`
	Status      WatchStatus `json:"status"`
	Score       *float64    `json:"score,omitempty"`
	AddedAt     time.Time   `json:"addedAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (w *WatchedMovie) Validate() error {
	if w.MovieID == 0 {
		return ErrMovieIDRequired
	}
	if w.Title == "" {
		return ErrMovieTitleRequired
	}
	if !w.Status.Valid() {
		return ErrInvalidStatus
	}
	if w.Score != nil && (*w.Score < 0 || *w.Score > 10) {
		return ErrInvalidRating
	}
	return nil
}

// WatchedRepository defines the interface for watch status persistence.
// Upsert follows the same storage-level conflict handling as reviews.
type WatchedRepository interface {
	Upsert(entry *WatchedMovie) (*WatchedMovie, error)
	GetByUserAndMovie(userID int64, movieID int64) (*WatchedMovie, error)
	GetAllByUser(userID int64) ([]*WatchedMovie, error)
	GetAllByUserAndStatus(userID int64, status WatchStatus) ([]*WatchedMovie, error)
	// DeleteByUserAndMovie is idempotent.
	DeleteByUserAndMovie(userID int64, movieID int64) error
}
