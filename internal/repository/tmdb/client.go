// Package tmdb is a read-only client for the TMDB catalog API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// Client fetches movie data from the TMDB API. Responses are returned
// as raw JSON; nothing here is cached or retried.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new TMDB client
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

var _ domain.MovieGateway = (*Client)(nil)

// SearchMovies searches the catalog by title
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (json.RawMessage, error) {
	return c.get(ctx, "/search/movie", url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	})
}

// GetPopularMovies fetches the current popular movies page
func (c *Client) GetPopularMovies(ctx context.Context, page int) (json.RawMessage, error) {
	return c.get(ctx, "/movie/popular", url.Values{
		"page": {strconv.Itoa(page)},
	})
}

// GetTrendingMovies fetches the weekly trending movies page
func (c *Client) GetTrendingMovies(ctx context.Context, page int) (json.RawMessage, error) {
	return c.get(ctx, "/trending/movie/week", url.Values{
		"page": {strconv.Itoa(page)},
	})
}

// GetMovieDetails fetches a single movie record by its catalog id
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("language", "pt-BR")

	fullURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("TMDB request failed")
		return nil, domain.ErrMovieUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrMovieUnavailable
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("TMDB returned non-success status")
		return nil, domain.ErrMovieUnavailable
	}

	return json.RawMessage(body), nil
}
