package postgres

import (
	"context"
	"errors"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListRepository implements domain.ListRepository using PostgreSQL
type ListRepository struct {
	pool *pgxpool.Pool
}

// NewListRepository creates a new ListRepository
func NewListRepository(pool *pgxpool.Pool) *ListRepository {
	return &ListRepository{pool: pool}
}

const listColumns = `id, user_id, name, description, created_at, updated_at`

// Create creates a new list. The (user_id, name) unique constraint
// rejects duplicate names even when two creates race past a pre-check.
func (r *ListRepository) Create(list *domain.List) (*domain.List, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO lists (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING `+listColumns,
		list.UserID, list.Name, list.Description)
	created, err := scanList(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrListNameExists
		}
		return nil, err
	}
	created.Items = []domain.ListItem{}
	return created, nil
}

// GetByIDAndUser retrieves a list by id scoped to its owner, with items
func (r *ListRepository) GetByIDAndUser(userID int64, id int64) (*domain.List, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+listColumns+` FROM lists WHERE id = $1 AND user_id = $2`, id, userID)
	list, err := scanList(row)
	if err != nil {
		return nil, err
	}
	items, err := r.itemsForList(list.ID)
	if err != nil {
		return nil, err
	}
	list.Items = items
	return list, nil
}

// GetAllByUser retrieves all lists owned by a user, most recent first,
// each populated with its items
func (r *ListRepository) GetAllByUser(userID int64) ([]*domain.List, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+listColumns+` FROM lists WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*domain.List
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, list := range lists {
		items, err := r.itemsForList(list.ID)
		if err != nil {
			return nil, err
		}
		list.Items = items
	}
	if lists == nil {
		lists = []*domain.List{}
	}
	return lists, nil
}

// Update updates a list's name and description, scoped to its owner
func (r *ListRepository) Update(list *domain.List) (*domain.List, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE lists
		SET name = $3, description = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+listColumns,
		list.ID, list.UserID, list.Name, list.Description)
	updated, err := scanList(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrListNameExists
		}
		return nil, err
	}
	items, err := r.itemsForList(updated.ID)
	if err != nil {
		return nil, err
	}
	updated.Items = items
	return updated, nil
}

// Delete removes a list and all of its items in a single transaction.
// The explicit item delete keeps the cascade a contract of this store
// rather than an implicit schema behavior.
func (r *ListRepository) Delete(userID int64, id int64) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM list_items WHERE list_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM lists WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListNotFound
	}
	return tx.Commit(ctx)
}

func (r *ListRepository) itemsForList(listID int64) ([]domain.ListItem, error) {
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

func scanList(row pgx.Row) (*domain.List, error) {
	var l domain.List
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListNotFound
		}
		return nil, err
	}
	return &l, nil
}

// isPgUniqueViolation checks if an error is a PostgreSQL unique constraint violation
func isPgUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// PostgreSQL unique violation error code is 23505
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
