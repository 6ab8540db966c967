package testutil

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/cinelist/cinelist-backend/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	mu     sync.Mutex
	Users  map[int64]*domain.User
	NextID int64
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[int64]*domain.User),
		NextID: 1,
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByExternalID retrieves a user by provider subject
func (m *MockUserRepository) GetByExternalID(externalID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.Users {
		if user.ExternalID != nil && *user.ExternalID == externalID {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create creates a new user, enforcing email uniqueness like the
// database constraint does
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	user.ID = m.NextID
	m.NextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.Users[user.ID] = user
	return user, nil
}

// Update updates an existing user
func (m *MockUserRepository) Update(user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for id, existing := range m.Users {
		if id != user.ID && existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	user.UpdatedAt = time.Now()
	m.Users[user.ID] = user
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Users[user.ID] = user
	if user.ID >= m.NextID {
		m.NextID = user.ID + 1
	}
}

// MockListRepository is a mock implementation of domain.ListRepository.
// The mutex makes the (user_id, name) uniqueness check atomic, matching
// the database constraint under concurrent creates.
type MockListRepository struct {
	mu     sync.Mutex
	Lists  map[int64]*domain.List
	NextID int64

	// ItemRepo, when set, is cascaded into by Delete the way the
	// transactional delete does in Postgres.
	ItemRepo *MockListItemRepository
}

// NewMockListRepository creates a new MockListRepository
func NewMockListRepository() *MockListRepository {
	return &MockListRepository{
		Lists:  make(map[int64]*domain.List),
		NextID: 1,
	}
}

// Create creates a new list, enforcing per-user name uniqueness
func (m *MockListRepository) Create(list *domain.List) (*domain.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Lists {
		if existing.UserID == list.UserID && existing.Name == list.Name {
			return nil, domain.ErrListNameExists
		}
	}

	list.ID = m.NextID
	m.NextID++
	now := time.Now()
	list.CreatedAt = now
	list.UpdatedAt = now
	m.Lists[list.ID] = list
	return list, nil
}

// GetByIDAndUser retrieves a list scoped by owner
func (m *MockListRepository) GetByIDAndUser(userID int64, id int64) (*domain.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, ok := m.Lists[id]
	if !ok || list.UserID != userID {
		return nil, domain.ErrListNotFound
	}
	return list, nil
}

// GetAllByUser retrieves all lists for a user, newest first
func (m *MockListRepository) GetAllByUser(userID int64) ([]*domain.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lists []*domain.List
	for _, list := range m.Lists {
		if list.UserID == userID {
			lists = append(lists, list)
		}
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].ID > lists[j].ID })
	return lists, nil
}

// Update updates an existing list, enforcing per-user name uniqueness
func (m *MockListRepository) Update(list *domain.List) (*domain.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.Lists[list.ID]
	if !ok || existing.UserID != list.UserID {
		return nil, domain.ErrListNotFound
	}
	for id, other := range m.Lists {
		if id != list.ID && other.UserID == list.UserID && other.Name == list.Name {
			return nil, domain.ErrListNameExists
		}
	}

	list.CreatedAt = existing.CreatedAt
	list.UpdatedAt = time.Now()
	m.Lists[list.ID] = list
	return list, nil
}

// Delete removes a list and its items
func (m *MockListRepository) Delete(userID int64, id int64) error {
	m.mu.Lock()

	list, ok := m.Lists[id]
	if !ok || list.UserID != userID {
		m.mu.Unlock()
		return domain.ErrListNotFound
	}
	delete(m.Lists, id)
	m.mu.Unlock()

	if m.ItemRepo != nil {
		m.ItemRepo.deleteAllByList(id)
	}
	return nil
}

// MockListItemRepository is a mock implementation of
// domain.ListItemRepository. The mutex makes the (list_id, movie_id)
// uniqueness check atomic so concurrent duplicate adds resolve to one
// winner, like the database constraint.
type MockListItemRepository struct {
	mu     sync.Mutex
	Items  map[int64]*domain.ListItem
	NextID int64
}

// NewMockListItemRepository creates a new MockListItemRepository
func NewMockListItemRepository() *MockListItemRepository {
	return &MockListItemRepository{
		Items:  make(map[int64]*domain.ListItem),
		NextID: 1,
	}
}

// Create adds an item, enforcing per-list movie uniqueness
func (m *MockListItemRepository) Create(item *domain.ListItem) (*domain.ListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Items {
		if existing.ListID == item.ListID && existing.MovieID == item.MovieID {
			return nil, domain.ErrListItemExists
		}
	}

	item.ID = m.NextID
	m.NextID++
	item.AddedAt = time.Now()
	m.Items[item.ID] = item
	return item, nil
}

// GetAllByList retrieves all items in a list, oldest first
func (m *MockListItemRepository) GetAllByList(listID int64) ([]domain.ListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []domain.ListItem
	for _, item := range m.Items {
		if item.ListID == listID {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// DeleteByListAndMovie removes an item; absent items are a no-op
func (m *MockListItemRepository) DeleteByListAndMovie(listID int64, movieID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, item := range m.Items {
		if item.ListID == listID && item.MovieID == movieID {
			delete(m.Items, id)
			return nil
		}
	}
	return nil
}

func (m *MockListItemRepository) deleteAllByList(listID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, item := range m.Items {
		if item.ListID == listID {
			delete(m.Items, id)
		}
	}
}

// MockReviewRepository is a mock implementation of
// domain.ReviewRepository. Upsert resolves on (user_id, movie_id) under
// the mutex, mirroring the ON CONFLICT clause.
type MockReviewRepository struct {
	mu      sync.Mutex
	Reviews map[int64]*domain.Review
	NextID  int64

	// UserRepo, when set, supplies author emails for the joined reads
	UserRepo *MockUserRepository
}

// NewMockReviewRepository creates a new MockReviewRepository
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		Reviews: make(map[int64]*domain.Review),
		NextID:  1,
	}
}

// Upsert inserts a review or overwrites the existing one for the same
// user and movie
func (m *MockReviewRepository) Upsert(review *domain.Review) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, existing := range m.Reviews {
		if existing.UserID == review.UserID && existing.MovieID == review.MovieID {
			existing.MovieTitle = review.MovieTitle
			existing.Rating = review.Rating
			existing.Comment = review.Comment
			existing.UpdatedAt = now
			return existing, nil
		}
	}

	review.ID = m.NextID
	m.NextID++
	review.CreatedAt = now
	review.UpdatedAt = now
	m.Reviews[review.ID] = review
	return review, nil
}

// GetByID retrieves a review by ID
func (m *MockReviewRepository) GetByID(id int64) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if review, ok := m.Reviews[id]; ok {
		return review, nil
	}
	return nil, domain.ErrReviewNotFound
}

// GetAllByMovie retrieves all reviews for a movie with author emails,
// oldest first
func (m *MockReviewRepository) GetAllByMovie(movieID int64) ([]*domain.ReviewWithAuthor, error) {
	return m.collect(func(r *domain.Review) bool { return r.MovieID == movieID })
}

// GetAllByUser retrieves all reviews written by a user, oldest first
func (m *MockReviewRepository) GetAllByUser(userID int64) ([]*domain.ReviewWithAuthor, error) {
	return m.collect(func(r *domain.Review) bool { return r.UserID == userID })
}

func (m *MockReviewRepository) collect(match func(*domain.Review) bool) ([]*domain.ReviewWithAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var reviews []*domain.ReviewWithAuthor
	for _, review := range m.Reviews {
		if !match(review) {
			continue
		}
		entry := &domain.ReviewWithAuthor{Review: *review}
		if m.UserRepo != nil {
			if user, ok := m.UserRepo.Users[review.UserID]; ok {
				entry.UserEmail = user.Email
			}
		}
		reviews = append(reviews, entry)
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews, nil
}

// Delete removes a review by ID
func (m *MockReviewRepository) Delete(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(m.Reviews, id)
	return nil
}

// MockWatchedRepository is a mock implementation of
// domain.WatchedRepository
type MockWatchedRepository struct {
	mu      sync.Mutex
	Entries map[int64]*domain.WatchedMovie
	NextID  int64
}

// NewMockWatchedRepository creates a new MockWatchedRepository
func NewMockWatchedRepository() *MockWatchedRepository {
	return &MockWatchedRepository{
		Entries: make(map[int64]*domain.WatchedMovie),
		NextID:  1,
	}
}

// Upsert inserts a watch entry or overwrites status and score for the
// same user and movie; display fields stick from the first write
func (m *MockWatchedRepository) Upsert(entry *domain.WatchedMovie) (*domain.WatchedMovie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, existing := range m.Entries {
		if existing.UserID == entry.UserID && existing.MovieID == entry.MovieID {
			existing.Status = entry.Status
			existing.Score = entry.Score
			existing.UpdatedAt = now
			return existing, nil
		}
	}

	entry.ID = m.NextID
	m.NextID++
	entry.AddedAt = now
	entry.UpdatedAt = now
	m.Entries[entry.ID] = entry
	return entry, nil
}

// GetByUserAndMovie retrieves a single watch entry
func (m *MockWatchedRepository) GetByUserAndMovie(userID int64, movieID int64) (*domain.WatchedMovie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range m.Entries {
		if entry.UserID == userID && entry.MovieID == movieID {
			return entry, nil
		}
	}
	return nil, domain.ErrWatchedNotFound
}

// GetAllByUser retrieves all watch entries for a user
func (m *MockWatchedRepository) GetAllByUser(userID int64) ([]*domain.WatchedMovie, error) {
	return m.collect(func(e *domain.WatchedMovie) bool { return e.UserID == userID })
}

// GetAllByUserAndStatus retrieves watch entries filtered by status
func (m *MockWatchedRepository) GetAllByUserAndStatus(userID int64, status domain.WatchStatus) ([]*domain.WatchedMovie, error) {
	return m.collect(func(e *domain.WatchedMovie) bool {
		return e.UserID == userID && e.Status == status
	})
}

func (m *MockWatchedRepository) collect(match func(*domain.WatchedMovie) bool) ([]*domain.WatchedMovie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var entries []*domain.WatchedMovie
	for _, entry := range m.Entries {
		if match(entry) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// DeleteByUserAndMovie removes a watch entry; absent entries are a no-op
func (m *MockWatchedRepository) DeleteByUserAndMovie(userID int64, movieID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, entry := range m.Entries {
		if entry.UserID == userID && entry.MovieID == movieID {
			delete(m.Entries, id)
			return nil
		}
	}
	return nil
}

// MockMovieGateway is a mock implementation of domain.MovieGateway
type MockMovieGateway struct {
	SearchFn   func(ctx context.Context, query string, page int) (json.RawMessage, error)
	PopularFn  func(ctx context.Context, page int) (json.RawMessage, error)
	TrendingFn func(ctx context.Context, page int) (json.RawMessage, error)
	DetailsFn  func(ctx context.Context, movieID int64) (json.RawMessage, error)
}

// SearchMovies delegates to SearchFn or returns an empty result page
func (m *MockMovieGateway) SearchMovies(ctx context.Context, query string, page int) (json.RawMessage, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query, page)
	}
	return json.RawMessage(`{"results":[]}`), nil
}

// GetPopularMovies delegates to PopularFn or returns an empty result page
func (m *MockMovieGateway) GetPopularMovies(ctx context.Context, page int) (json.RawMessage, error) {
	if m.PopularFn != nil {
		return m.PopularFn(ctx, page)
	}
	return json.RawMessage(`{"results":[]}`), nil
}

// GetTrendingMovies delegates to TrendingFn or returns an empty result page
func (m *MockMovieGateway) GetTrendingMovies(ctx context.Context, page int) (json.RawMessage, error) {
	if m.TrendingFn != nil {
		return m.TrendingFn(ctx, page)
	}
	return json.RawMessage(`{"results":[]}`), nil
}

// GetMovieDetails delegates to DetailsFn or returns an empty object
func (m *MockMovieGateway) GetMovieDetails(ctx context.Context, movieID int64) (json.RawMessage, error) {
	if m.DetailsFn != nil {
		return m.DetailsFn(ctx, movieID)
	}
	return json.RawMessage(`{}`), nil
}
