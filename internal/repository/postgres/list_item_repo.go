package postgres

import (
	"context"
	"errors"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListItemRepository implements domain.ListItemRepository using PostgreSQL
type ListItemRepository struct {
	pool *pgxpool.Pool
}

// NewListItemRepository creates a new ListItemRepository
func NewListItemRepository(pool *pgxpool.Pool) *ListItemRepository {
	return &ListItemRepository{pool: pool}
}

const listItemColumns = `id, list_id, movie_id, title, poster_path, release_year, rating, genres, added_at`

// Create inserts a list item. The (list_id, movie_id) unique constraint
// is the final arbiter under concurrent duplicate adds.
func (r *ListItemRepository) Create(item *domain.ListItem) (*domain.ListItem, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO list_items (list_id, movie_id, title, poster_path, release_year, rating, genres)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+listItemColumns,
		item.ListID, item.MovieID, item.Title, item.PosterPath, item.ReleaseYear, item.Rating, item.Genres)
	created, err := scanListItem(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrListItemExists
		}
		return nil, err
	}
	return created, nil
}

// GetAllByList retrieves all items of a list in insertion order
func (r *ListItemRepository) GetAllByList(listID int64) ([]domain.ListItem, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+listItemColumns+` FROM list_items WHERE list_id = $1 ORDER BY added_at ASC, id ASC`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.ListItem{}
	for rows.Next() {
		item, err := scanListItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// DeleteByListAndMovie removes a movie from a list. Deleting an absent
// item is a no-op, not an error.
func (r *ListItemRepository) DeleteByListAndMovie(listID int64, movieID int64) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM list_items WHERE list_id = $1 AND movie_id = $2`, listID, movieID)
	return err
}

func scanListItem(row pgx.Row) (*domain.ListItem, error) {
	var item domain.ListItem
	err := row.Scan(&item.ID, &item.ListID, &item.MovieID, &item.Title, &item.PosterPath,
		&item.ReleaseYear, &item.Rating, &item.Genres, &item.AddedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListNotFound
		}
		return nil, err
	}
	return &item, nil
}
