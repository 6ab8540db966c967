package service

import (
	"strings"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/cinelist/cinelist-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// ListService handles list and list-item business logic
type ListService struct {
	listRepo       domain.ListRepository
	listItemRepo   domain.ListItemRepository
	eventPublisher websocket.EventPublisher
}

// NewListService creates a new ListService
func NewListService(listRepo domain.ListRepository, listItemRepo domain.ListItemRepository) *ListService {
	return &ListService{
		listRepo:     listRepo,
		listItemRepo: listItemRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ListService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ListService) publishEvent(userID int64, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateListInput contains input for creating a list
type CreateListInput struct {
	Name        string
	Description *string
}

// CreateList creates a new list for a user. Duplicate names per user
// surface as domain.ErrListNameExists from the store.
func (s *ListService) CreateList(userID int64, input CreateListInput) (*domain.List, error) {
	list := &domain.List{
		UserID:      userID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
	}
	if err := list.Validate(); err != nil {
		return nil, err
	}

	created, err := s.listRepo.Create(list)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", userID).Int64("list_id", created.ID).Str("name", created.Name).Msg("List created")
	s.publishEvent(userID, websocket.ListCreated(created))
	return created, nil
}

// GetLists retrieves all lists owned by a user, most recent first,
// with items populated
func (s *ListService) GetLists(userID int64) ([]*domain.List, error) {
	return s.listRepo.GetAllByUser(userID)
}

// GetListByID retrieves one list owned by the user
func (s *ListService) GetListByID(userID int64, listID int64) (*domain.List, error) {
	return s.listRepo.GetByIDAndUser(userID, listID)
}

// UpdateListInput contains input for renaming a list
type UpdateListInput struct {
	Name        string
	Description *string
}

// UpdateList renames a list or changes its description, owner only
func (s *ListService) UpdateList(userID int64, listID int64, input UpdateListInput) (*domain.List, error) {
	existing, err := s.listRepo.GetByIDAndUser(userID, listID)
	if err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = input.Description
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.listRepo.Update(existing)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.ListUpdated(updated))
	return updated, nil
}

// AddMovieInput contains the movie entry to add, with display fields
// captured from the catalog by the caller at add time
type AddMovieInput struct {
	ListID      int64
	MovieID     int64
	Title       string
	PosterPath  *string
	ReleaseYear *string
	Rating      *float64
	Genres      *string
}

// AddMovie adds a movie to a list the user owns. The ownership check is
// repeated on every call; the duplicate check is the storage constraint,
// so losing a duplicate-add race still yields ErrListItemExists.
func (s *ListService) AddMovie(userID int64, input AddMovieInput) (*domain.ListItem, error) {
	if _, err := s.listRepo.GetByIDAndUser(userID, input.ListID); err != nil {
		return nil, err
	}

	item := &domain.ListItem{
		ListID:      input.ListID,
		MovieID:     input.MovieID,
		Title:       input.Title,
		PosterPath:  input.PosterPath,
		ReleaseYear: input.ReleaseYear,
		Rating:      input.Rating,
		Genres:      input.Genres,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	created, err := s.listItemRepo.Create(item)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", userID).Int64("list_id", input.ListID).
		Int64("movie_id", input.MovieID).Msg("Movie added to list")
	s.publishEvent(userID, websocket.ListItemAdded(created))
	return created, nil
}

// RemoveMovie removes a movie from a list the user owns. Removing a
// movie that is not in the list succeeds without effect.
func (s *ListService) RemoveMovie(userID int64, listID int64, movieID int64) error {
	if movieID == 0 {
		return domain.ErrMovieIDRequired
	}
	if _, err := s.listRepo.GetByIDAndUser(userID, listID); err != nil {
		return err
	}

	if err := s.listItemRepo.DeleteByListAndMovie(listID, movieID); err != nil {
		return err
	}

	log.Info().Int64("user_id", userID).Int64("list_id", listID).
		Int64("movie_id", movieID).Msg("Movie removed from list")
	s.publishEvent(userID, websocket.ListItemRemoved(map[string]int64{
		"listId":  listID,
		"movieId": movieID,
	}))
	return nil
}

// DeleteList deletes a list the user owns together with all its items
func (s *ListService) DeleteList(userID int64, listID int64) error {
	if err := s.listRepo.Delete(userID, listID); err != nil {
		return err
	}

	log.Info().Int64("user_id", userID).Int64("list_id", listID).Msg("List deleted")
	s.publishEvent(userID, websocket.ListDeleted(map[string]int64{"listId": listID}))
	return nil
}
