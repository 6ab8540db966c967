package domain

import (
	"errors"
	"time"
)

var (
	ErrListNotFound           = errors.New("list not found")
	ErrListNameExists         = errors.New("list with this name already exists")
	ErrListNameEmpty          = errors.New("list name is required")
	ErrListNameTooLong        = errors.New("list name must be 255 characters or less")
	ErrListDescriptionTooLong = errors.New("list description must be 500 characters or less")
	ErrListItemExists         = errors.New("movie is already in this list")
	ErrMovieIDRequired        = errors.New("movie id is required")
	ErrMovieTitleRequired     = errors.New("movie title is required")
)

// List is a user-owned, named collection of movies.
// Names are unique per owner.
type List struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Items       []ListItem `json:"items"`
}

// ListItem is a movie entry inside a list. Display fields are captured
// at insertion time and never re-fetched from the catalog.
type ListItem struct {
	ID          int64     `json:"id"`
	ListID      int64     `json:"listId"`
	MovieID     int64     `json:"movieId"`
	Title       string    `json:"title"`
	PosterPath  *string   `json:"posterPath,omitempty"`
	ReleaseYear *string   `json:"releaseYear,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	Genres      *string   `json:"genres,omitempty"`
	AddedAt     time.Time `json:"addedAt"`
}

func (l *List) Validate() error {
	if l.Name == "" {
		return ErrListNameEmpty
	}
	if len(l.Name) > 255 {
		return ErrListNameTooLong
	}
	if l.Description != nil && len(*l.Description) > 500 {
		return ErrListDescriptionTooLong
	}
	return nil
}

func (item *ListItem) Validate() error {
	if item.MovieID == 0 {
		return ErrMovieIDRequired
	}
	if item.Title == "" {
		return ErrMovieTitleRequired
	}
	return nil
}

// ListRepository defines the interface for list persistence operations.
// All lookups are scoped by the owning user; a list that exists but is
// owned by someone else behaves as if it does not exist.
type ListRepository interface {
	Create(list *List) (*List, error)
	GetByIDAndUser(userID int64, id int64) (*List, error)
	GetAllByUser(userID int64) ([]*List, error)
	Update(list *List) (*List, error)
	// Delete removes the list and all of its items in one transaction.
	Delete(userID int64, id int64) error
}

// ListItemRepository defines the interface for list item persistence.
// The (list_id, movie_id) pair is unique at the storage level; Create
// surfaces a constraint violation as ErrListItemExists so concurrent
// duplicate adds are arbitrated by the database, not the caller.
type ListItemRepository interface {
	Create(item *ListItem) (*ListItem, error)
	GetAllByList(listID int64) ([]ListItem, error)
	// DeleteByListAndMovie is idempotent: removing an absent item is a no-op.
	DeleteByListAndMovie(listID int64, movieID int64) error
}
