package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cinelist/cinelist-backend/internal/domain"
)

// MovieService proxies catalog reads to the movie gateway. It holds no
// state and performs no caching; failures surface to the caller as
// domain.ErrMovieUnavailable.
type MovieService struct {
	gateway domain.MovieGateway
}

// NewMovieService creates a new MovieService
func NewMovieService(gateway domain.MovieGateway) *MovieService {
	return &MovieService{gateway: gateway}
}

// Search searches the catalog by title
func (s *MovieService) Search(ctx context.Context, query string, page int) (json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrMovieTitleRequired
	}
	if page < 1 {
		page = 1
	}
	return s.gateway.SearchMovies(ctx, query, page)
}

// Popular fetches the popular movies page
func (s *MovieService) Popular(ctx context.Context, page int) (json.RawMessage, error) {
	if page < 1 {
		page = 1
	}
	return s.gateway.GetPopularMovies(ctx, page)
}

// Trending fetches the trending movies page
func (s *MovieService) Trending(ctx context.Context, page int) (json.RawMessage, error) {
	if page < 1 {
		page = 1
	}
	return s.gateway.GetTrendingMovies(ctx, page)
}

// Details fetches one movie record by catalog id
func (s *MovieService) Details(ctx context.Context, movieID int64) (json.RawMessage, error) {
	if movieID == 0 {
		return nil, domain.ErrMovieIDRequired
	}
	return s.gateway.GetMovieDetails(ctx, movieID)
}
