package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cinelist/cinelist-backend/internal/service"
	"github.com/cinelist/cinelist-backend/internal/testutil"
	"github.com/labstack/echo/v4"
)

func newListHandler() (*ListHandler, *service.ListService) {
	listRepo := testutil.NewMockListRepository()
	itemRepo := testutil.NewMockListItemRepository()
	listRepo.ItemRepo = itemRepo
	listService := service.NewListService(listRepo, itemRepo)
	return NewListHandler(listService), listService
}

func TestCreateListHandler_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newListHandler()

	reqBody := `{"name": "Friday Nights", "description": "Movies for movie night"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|ana", "ana@example.com", "Ana", "", 1)

	if err := handler.CreateList(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Name != "Friday Nights" {
		t.Errorf("Expected name 'Friday Nights', got %s", response.Name)
	}
	if response.UserID != 1 {
		t.Errorf("Expected owner 1, got %d", response.UserID)
	}
	if response.TotalItems != 0 {
		t.Errorf("Expected empty list, got %d items", response.TotalItems)
	}
}

func TestCreateListHandler_EmptyName(t *testing.T) {
	e := echo.New()
	handler, _ := newListHandler()

	reqBody := `{"name": "   "}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|ana", "ana@example.com", "Ana", "", 1)

	if err := handler.CreateList(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem: %v", err)
	}
	if problem.Status != http.StatusBadRequest {
		t.Errorf("Expected problem status 400, got %d", problem.Status)
	}
}

func TestCreateListHandler_DuplicateName(t *testing.T) {
	e := echo.New()
	handler, listService := newListHandler()

	if _, err := listService.CreateList(1, service.CreateListInput{Name: "Favorites"}); err != nil {
		t.Fatalf("Expected no error seeding list, got %v", err)
	}

	reqBody := `{"name": "Favorites"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|ana", "ana@example.com", "Ana", "", 1)

	if err := handler.CreateList(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestCreateListHandler_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler, _ := newListHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists", strings.NewReader(`{"name":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateList(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetListHandler_NotOwned(t *testing.T) {
	e := echo.New()
	handler, listService := newListHandler()

	list, err := listService.CreateList(1, service.CreateListInput{Name: "Mine"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	_ = list

	setupAuthContextWithUser(c, "auth0|bruno", "bruno@example.com", "Bruno", "", 2)

	if err := handler.GetList(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for non-owner, got %d", rec.Code)
	}
}

func TestAddMovieHandler_Success(t *testing.T) {
	e := echo.New()
	handler, listService := newListHandler()

	list, err := listService.CreateList(1, service.CreateListInput{Name: "Favorites"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	reqBody := `{"movieId": 550, "title": "Fight Club", "posterPath": "/poster.jpg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists/1/movies", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	_ = list

	setupAuthContextWithUser(c, "auth0|ana", "ana@example.com", "Ana", "", 1)

	if err := handler.AddMovie(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response ListItemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.MovieID != 550 {
		t.Errorf("Expected movie 550, got %d", response.MovieID)
	}
}

func TestAddMovieHandler_Duplicate(t *testing.T) {
	e := echo.New()
	handler, listService := newListHandler()

	list, err := listService.CreateList(1, service.CreateListInput{Name: "Favorites"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := listService.AddMovie(1, service.AddMovieInput{ListID: list.ID, MovieID: 550, Title: "Fight Club"}); err != nil {
		t.Fatalf("Expected no error seeding item, got %v", err)
	}

	reqBody := `{"movieId": 550, "title": "Fight Club"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists/1/movies", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContextWithUser(c, "auth0|ana", "ana@example.com", "Ana", "", 1)

	if err := handler.AddMovie(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestRemoveMovieHandler_IdempotentNoContent(t *testing.T) {
	e := echo.New()
	handler, listService := newListHandler()

	if _, err := listService.CreateList(1, service.CreateListInput{Name: "Favorites"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/lists/1/movies/550", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "movieId")
	c.SetParamValues("1", "550")

	setupAuthContextWithUser(c, "auth0|ana", "ana@example.com", "Ana", "", 1)

	if err := handler.RemoveMovie(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 even when absent, got %d", rec.Code)
	}
}

func TestDeleteListHandler_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newListHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/lists/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	setupAuthContextWithUser(c, "auth0|ana", "ana@example.com", "Ana", "", 1)

	if err := handler.DeleteList(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetListsHandler_Empty(t *testing.T) {
	e := echo.New()
	handler, _ := newListHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|ana", "ana@example.com", "Ana", "", 1)

	if err := handler.GetLists(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response []ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 0 {
		t.Errorf("Expected empty array, got %d lists", len(response))
	}
}
