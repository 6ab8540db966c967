package domain

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrMovieUnavailable indicates the downstream movie catalog failed or
// returned a non-success status. Callers may retry with backoff; the
// gateway itself never retries.
var ErrMovieUnavailable = errors.New("movie catalog unavailable")

// MovieGateway is a read-only pass-through to the external movie
// catalog. Responses are opaque catalog JSON returned to the caller
// as-is; nothing in this system parses or stores them.
type MovieGateway interface {
	SearchMovies(ctx context.Context, query string, page int) (json.RawMessage, error)
	GetPopularMovies(ctx context.Context, page int) (json.RawMessage, error)
	GetTrendingMovies(ctx context.Context, page int) (json.RawMessage, error)
	GetMovieDetails(ctx context.Context, movieID int64) (json.RawMessage, error)
}
