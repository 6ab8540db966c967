package postgres

import (
	"context"
	"errors"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WatchedRepository implements domain.WatchedRepository using PostgreSQL
type WatchedRepository struct {
	pool *pgxpool.Pool
}

// NewWatchedRepository creates a new WatchedRepository
func NewWatchedRepository(pool *pgxpool.Pool) *WatchedRepository {
	return &WatchedRepository{pool: pool}
}

const watchedColumns = `id, user_id, movie_id, title, poster_path, release_year, genres, status, score, added_at, updated_at`

// Upsert writes a watch entry with the same conflict handling as
// reviews: status and score overwrite in place, display fields keep
// their first-tracked values.
func (r *WatchedRepository) Upsert(entry *domain.WatchedMovie) (*domain.WatchedMovie, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO watched_movies (user_id, movie_id, title, poster_path, release_year, genres, status, score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, movie_id) DO UPDATE
		SET status = EXCLUDED.status,
		    score = EXCLUDED.score,
		    updated_at = now()
		RETURNING `+watchedColumns,
		entry.UserID, entry.MovieID, entry.Title, entry.PosterPath, entry.ReleaseYear,
		entry.Genres, entry.Status, entry.Score)
	return scanWatched(row)
}

// GetByUserAndMovie retrieves a single watch entry
func (r *WatchedRepository) GetByUserAndMovie(userID int64, movieID int64) (*domain.WatchedMovie, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+watchedColumns+` FROM watched_movies WHERE user_id = $1 AND movie_id = $2`,
		userID, movieID)
	return scanWatched(row)
}

// GetAllByUser retrieves all watch entries for a user, most recent first
func (r *WatchedRepository) GetAllByUser(userID int64) ([]*domain.WatchedMovie, error) {
	return r.query(`user_id = $1 ORDER BY added_at DESC, id DESC`, userID)
}

// GetAllByUserAndStatus retrieves a user's watch entries filtered by status
func (r *WatchedRepository) GetAllByUserAndStatus(userID int64, status domain.WatchStatus) ([]*domain.WatchedMovie, error) {
	return r.query(`user_id = $1 AND status = $2 ORDER BY added_at DESC, id DESC`, userID, status)
}

// DeleteByUserAndMovie removes a watch entry; absent entries are a no-op
func (r *WatchedRepository) DeleteByUserAndMovie(userID int64, movieID int64) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM watched_movies WHERE user_id = $1 AND movie_id = $2`, userID, movieID)
	return err
}

func (r *WatchedRepository) query(where string, args ...any) ([]*domain.WatchedMovie, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+watchedColumns+` FROM watched_movies WHERE `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.WatchedMovie{}
	for rows.Next() {
		entry, err := scanWatched(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanWatched(row pgx.Row) (*domain.WatchedMovie, error) {
	var w domain.WatchedMovie
	err := row.Scan(&w.ID, &w.UserID, &w.MovieID, &w.Title, &w.PosterPath, &w.ReleaseYear,
		&w.Genres, &w.Status, &w.Score, &w.AddedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWatchedNotFound
		}
		return nil, err
	}
	return &w, nil
}
