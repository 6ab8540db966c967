package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/cinelist/cinelist-backend/internal/middleware"
	"github.com/cinelist/cinelist-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ListHandler handles list-related HTTP requests
type ListHandler struct {
	listService *service.ListService
}

// NewListHandler creates a new ListHandler
func NewListHandler(listService *service.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// CreateListRequest represents the create list request body
type CreateListRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateListRequest represents the update list request body
type UpdateListRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// AddMovieRequest carries the movie to add plus its display snapshot
type AddMovieRequest struct {
	MovieID     int64    `json:"movieId"`
	Title       string   `json:"title"`
	PosterPath  *string  `json:"posterPath"`
	ReleaseYear *string  `json:"releaseYear"`
	Rating      *float64 `json:"rating"`
	Genres      *string  `json:"genres"`
}

// ListItemResponse represents a list item in API responses
type ListItemResponse struct {
	ID          int64    `json:"id"`
	MovieID     int64    `json:"movieId"`
	Title       string   `json:"title"`
	PosterPath  *string  `json:"posterPath,omitempty"`
	ReleaseYear *string  `json:"releaseYear,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Genres      *string  `json:"genres,omitempty"`
	AddedAt     string   `json:"addedAt"`
}

// ListResponse represents a list in API responses
type ListResponse struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"userId"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	CreatedAt   string             `json:"createdAt"`
	UpdatedAt   string             `json:"updatedAt"`
	Items       []ListItemResponse `json:"items"`
	TotalItems  int                `json:"totalItems"`
}

// CreateList handles POST /api/v1/lists
func (h *ListHandler) CreateList(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateListRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	list, err := h.listService.CreateList(userID, service.CreateListInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrListNameEmpty) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrListNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrListDescriptionTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "description", Message: "Description must be 500 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrListNameExists) {
			return NewConflictError(c, "A list with this name already exists")
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to create list")
		return NewInternalError(c, "Failed to create list")
	}

	return c.JSON(http.StatusCreated, toListResponse(list))
}

// GetLists handles GET /api/v1/lists
func (h *ListHandler) GetLists(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	lists, err := h.listService.GetLists(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get lists")
		return NewInternalError(c, "Failed to get lists")
	}

	response := make([]ListResponse, len(lists))
	for i, list := range lists {
		response[i] = toListResponse(list)
	}

	return c.JSON(http.StatusOK, response)
}

// GetList handles GET /api/v1/lists/:id
func (h *ListHandler) GetList(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid list ID", nil)
	}

	list, err := h.listService.GetListByID(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrListNotFound) {
			return NewNotFoundError(c, "List not found")
		}
		log.Error().Err(err).Int64("user_id", userID).Int64("list_id", id).Msg("Failed to get list")
		return NewInternalError(c, "Failed to get list")
	}

	return c.JSON(http.StatusOK, toListResponse(list))
}

// UpdateList handles PUT /api/v1/lists/:id
func (h *ListHandler) UpdateList(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid list ID", nil)
	}

	var req UpdateListRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	list, err := h.listService.UpdateList(userID, id, service.UpdateListInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrListNotFound) {
			return NewNotFoundError(c, "List not found")
		}
		if errors.Is(err, domain.ErrListNameEmpty) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrListNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrListDescriptionTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "description", Message: "Description must be 500 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrListNameExists) {
			return NewConflictError(c, "A list with this name already exists")
		}
		log.Error().Err(err).Int64("user_id", userID).Int64("list_id", id).Msg("Failed to update list")
		return NewInternalError(c, "Failed to update list")
	}

	return c.JSON(http.StatusOK, toListResponse(list))
}

// AddMovie handles POST /api/v1/lists/:id/movies
func (h *ListHandler) AddMovie(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	listID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid list ID", nil)
	}

	var req AddMovieRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	item, err := h.listService.AddMovie(userID, service.AddMovieInput{
		ListID:      listID,
		MovieID:     req.MovieID,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		ReleaseYear: req.ReleaseYear,
		Rating:      req.Rating,
		Genres:      req.Genres,
	})
	if err != nil {
		if errors.Is(err, domain.ErrListNotFound) {
			return NewNotFoundError(c, "List not found")
		}
		if errors.Is(err, domain.ErrMovieIDRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "movieId", Message: "Movie id is required"},
			})
		}
		if errors.Is(err, domain.ErrMovieTitleRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "title", Message: "Title is required"},
			})
		}
		if errors.Is(err, domain.ErrListItemExists) {
			return NewConflictError(c, "Movie is already in this list")
		}
		log.Error().Err(err).Int64("user_id", userID).Int64("list_id", listID).
			Int64("movie_id", req.MovieID).Msg("Failed to add movie to list")
		return NewInternalError(c, "Failed to add movie to list")
	}

	return c.JSON(http.StatusCreated, toListItemResponse(*item))
}

// RemoveMovie handles DELETE /api/v1/lists/:id/movies/:movieId
func (h *ListHandler) RemoveMovie(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	listID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid list ID", nil)
	}
	movieID, err := strconv.ParseInt(c.Param("movieId"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid movie ID", nil)
	}

	if err := h.listService.RemoveMovie(userID, listID, movieID); err != nil {
		if errors.Is(err, domain.ErrListNotFound) {
			return NewNotFoundError(c, "List not found")
		}
		if errors.Is(err, domain.ErrMovieIDRequired) {
			return NewValidationError(c, "Invalid movie ID", nil)
		}
		log.Error().Err(err).Int64("user_id", userID).Int64("list_id", listID).
			Int64("movie_id", movieID).Msg("Failed to remove movie from list")
		return NewInternalError(c, "Failed to remove movie from list")
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteList handles DELETE /api/v1/lists/:id
func (h *ListHandler) DeleteList(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid list ID", nil)
	}

	if err := h.listService.DeleteList(userID, id); err != nil {
		if errors.Is(err, domain.ErrListNotFound) {
			return NewNotFoundError(c, "List not found")
		}
		log.Error().Err(err).Int64("user_id", userID).Int64("list_id", id).Msg("Failed to delete list")
		return NewInternalError(c, "Failed to delete list")
	}

	return c.NoContent(http.StatusNoContent)
}

func toListResponse(list *domain.List) ListResponse {
	items := make([]ListItemResponse, len(list.Items))
	for i, item := range list.Items {
		items[i] = toListItemResponse(item)
	}
	return ListResponse{
		ID:          list.ID,
		UserID:      list.UserID,
		Name:        list.Name,
		Description: list.Description,
		CreatedAt:   list.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   list.UpdatedAt.Format(time.RFC3339),
		Items:       items,
		TotalItems:  len(items),
	}
}

func toListItemResponse(item domain.ListItem) ListItemResponse {
	return ListItemResponse{
		ID:          item.ID,
		MovieID:     item.MovieID,
		Title:       item.Title,
		PosterPath:  item.PosterPath,
		ReleaseYear: item.ReleaseYear,
		Rating:      item.Rating,
		Genres:      item.Genres,
		AddedAt:     item.AddedAt.Format(time.RFC3339),
	}
}
