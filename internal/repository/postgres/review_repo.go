package postgres

import (
	"context"
	"errors"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReviewRepository implements domain.ReviewRepository using PostgreSQL
type ReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const reviewColumns = `id, user_id, movie_id, movie_title, rating, comment, created_at, updated_at`

// Upsert writes a review as a single conflict-handled statement.
// A second write for the same (user_id, movie_id) overwrites rating,
// comment and the display title in place and advances updated_at;
// created_at keeps the first write's value. Two rows for the same pair
// cannot exist, regardless of how the callers race.
func (r *ReviewRepository) Upsert(review *domain.Review) (*domain.Review, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO reviews (user_id, movie_id, movie_title, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, movie_id) DO UPDATE
		SET movie_title = EXCLUDED.movie_title,
		    rating = EXCLUDED.rating,
		    comment = EXCLUDED.comment,
		    updated_at = now()
		RETURNING `+reviewColumns,
		review.UserID, review.MovieID, review.MovieTitle, review.Rating, review.Comment)
	return scanReview(row)
}

// GetByID retrieves a review by id
func (r *ReviewRepository) GetByID(id int64) (*domain.Review, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	return scanReview(row)
}

// GetAllByMovie retrieves all reviews of a movie, oldest first
func (r *ReviewRepository) GetAllByMovie(movieID int64) ([]*domain.ReviewWithAuthor, error) {
	return r.queryWithAuthor(`r.movie_id = $1`, movieID)
}

// GetAllByUser retrieves all reviews written by a user, oldest first
func (r *ReviewRepository) GetAllByUser(userID int64) ([]*domain.ReviewWithAuthor, error) {
	return r.queryWithAuthor(`r.user_id = $1`, userID)
}

// Delete removes a review by id
func (r *ReviewRepository) Delete(id int64) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) queryWithAuthor(where string, arg any) ([]*domain.ReviewWithAuthor, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT r.id, r.user_id, r.movie_id, r.movie_title, r.rating, r.comment,
		       r.created_at, r.updated_at, u.email
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE `+where+`
		ORDER BY r.created_at ASC, r.id ASC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []*domain.ReviewWithAuthor{}
	for rows.Next() {
		var rv domain.ReviewWithAuthor
		err := rows.Scan(&rv.ID, &rv.UserID, &rv.MovieID, &rv.MovieTitle, &rv.Rating,
			&rv.Comment, &rv.CreatedAt, &rv.UpdatedAt, &rv.UserEmail)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, &rv)
	}
	return reviews, rows.Err()
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(&rv.ID, &rv.UserID, &rv.MovieID, &rv.MovieTitle, &rv.Rating,
		&rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	return &rv, nil
}
