package service

import (
	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/cinelist/cinelist-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WatchedService handles per-user watch status tracking
type WatchedService struct {
	watchedRepo    domain.WatchedRepository
	eventPublisher websocket.EventPublisher
}

// NewWatchedService creates a new WatchedService
func NewWatchedService(watchedRepo domain.WatchedRepository) *WatchedService {
	return &WatchedService{watchedRepo: watchedRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *WatchedService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *WatchedService) publishEvent(userID int64, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// TrackMovieInput contains a watch status payload
type TrackMovieInput struct {
	MovieID     int64
	Title       string
	PosterPath  *string
	ReleaseYear *string
	Genres      *string
	Status      domain.WatchStatus
	Score       *float64
}

// TrackMovie records or updates the user's watch status for a movie.
// Status and score overwrite on repeat; display fields stick from the
// first call, same storage-level conflict handling as reviews.
func (s *WatchedService) TrackMovie(userID int64, input TrackMovieInput) (*domain.WatchedMovie, error) {
	entry := &domain.WatchedMovie{
		UserID:      userID,
		MovieID:     input.MovieID,
		Title:       input.Title,
		PosterPath:  input.PosterPath,
		ReleaseYear: input.ReleaseYear,
		Genres:      input.Genres,
		Status:      input.Status,
		Score:       input.Score,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.watchedRepo.Upsert(entry)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", userID).Int64("movie_id", input.MovieID).
		Str("status", string(input.Status)).Msg("Watch status tracked")
	s.publishEvent(userID, websocket.WatchedTracked(saved))
	return saved, nil
}

// GetWatched retrieves the user's watch entries, optionally filtered by
// status. An empty status returns everything.
func (s *WatchedService) GetWatched(userID int64, status domain.WatchStatus) ([]*domain.WatchedMovie, error) {
	if status == "" {
		return s.watchedRepo.GetAllByUser(userID)
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.watchedRepo.GetAllByUserAndStatus(userID, status)
}

// UntrackMovie removes the user's watch entry for a movie; untracking
// an absent movie is a no-op
func (s *WatchedService) UntrackMovie(userID int64, movieID int64) error {
	if movieID == 0 {
		return domain.ErrMovieIDRequired
	}
	if err := s.watchedRepo.DeleteByUserAndMovie(userID, movieID); err != nil {
		return err
	}

	log.Info().Int64("user_id", userID).Int64("movie_id", movieID).Msg("Watch status removed")
	s.publishEvent(userID, websocket.WatchedRemoved(map[string]int64{"movieId": movieID}))
	return nil
}
