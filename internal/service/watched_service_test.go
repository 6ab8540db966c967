package service

import (
	"errors"
	"testing"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/cinelist/cinelist-backend/internal/testutil"
)

func TestTrackMovie_Success(t *testing.T) {
	watchedRepo := testutil.NewMockWatchedRepository()
	watchedService := NewWatchedService(watchedRepo)

	entry, err := watchedService.TrackMovie(1, TrackMovieInput{
		MovieID: 550,
		Title:   "Fight Club",
		Status:  domain.StatusWatching,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if entry.ID == 0 {
		t.Error("Expected a persisted ID")
	}
	if entry.Status != domain.StatusWatching {
		t.Errorf("Expected status watching, got %s", entry.Status)
	}
}

func TestTrackMovie_UpsertOverwritesStatus(t *testing.T) {
	watchedRepo := testutil.NewMockWatchedRepository()
	watchedService := NewWatchedService(watchedRepo)

	first, err := watchedService.TrackMovie(1, TrackMovieInput{
		MovieID: 550,
		Title:   "Fight Club",
		Status:  domain.StatusPlanned,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	score := 9.0
	second, err := watchedService.TrackMovie(1, TrackMovieInput{
		MovieID: 550,
		Title:   "Fight Club",
		Status:  domain.StatusCompleted,
		Score:   &score,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("Expected same entry, got %d and %d", first.ID, second.ID)
	}
	if second.Status != domain.StatusCompleted {
		t.Errorf("Expected overwritten status, got %s", second.Status)
	}
	if second.Score == nil || *second.Score != 9.0 {
		t.Errorf("Expected overwritten score, got %v", second.Score)
	}
	if len(watchedRepo.Entries) != 1 {
		t.Errorf("Expected one entry, got %d", len(watchedRepo.Entries))
	}
}

func TestTrackMovie_Validation(t *testing.T) {
	watchedRepo := testutil.NewMockWatchedRepository()
	watchedService := NewWatchedService(watchedRepo)

	if _, err := watchedService.TrackMovie(1, TrackMovieInput{Title: "Fight Club", Status: domain.StatusWatching}); !errors.Is(err, domain.ErrMovieIDRequired) {
		t.Errorf("Expected ErrMovieIDRequired, got %v", err)
	}
	if _, err := watchedService.TrackMovie(1, TrackMovieInput{MovieID: 550, Status: domain.StatusWatching}); !errors.Is(err, domain.ErrMovieTitleRequired) {
		t.Errorf("Expected ErrMovieTitleRequired, got %v", err)
	}
	if _, err := watchedService.TrackMovie(1, TrackMovieInput{MovieID: 550, Title: "Fight Club", Status: "binging"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
}

func TestGetWatched_StatusFilter(t *testing.T) {
	watchedRepo := testutil.NewMockWatchedRepository()
	watchedService := NewWatchedService(watchedRepo)

	if _, err := watchedService.TrackMovie(1, TrackMovieInput{MovieID: 550, Title: "Fight Club", Status: domain.StatusCompleted}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := watchedService.TrackMovie(1, TrackMovieInput{MovieID: 603, Title: "The Matrix", Status: domain.StatusPlanned}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	all, err := watchedService.GetWatched(1, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 entries without filter, got %d", len(all))
	}

	planned, err := watchedService.GetWatched(1, domain.StatusPlanned)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(planned) != 1 || planned[0].MovieID != 603 {
		t.Errorf("Expected only the planned entry, got %v", planned)
	}

	if _, err := watchedService.GetWatched(1, "binging"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus for bad filter, got %v", err)
	}
}

func TestUntrackMovie_Idempotent(t *testing.T) {
	watchedRepo := testutil.NewMockWatchedRepository()
	watchedService := NewWatchedService(watchedRepo)

	if _, err := watchedService.TrackMovie(1, TrackMovieInput{MovieID: 550, Title: "Fight Club", Status: domain.StatusCompleted}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := watchedService.UntrackMovie(1, 550); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := watchedService.UntrackMovie(1, 550); err != nil {
		t.Errorf("Expected repeat untrack to be a no-op, got %v", err)
	}
	if err := watchedService.UntrackMovie(1, 0); !errors.Is(err, domain.ErrMovieIDRequired) {
		t.Errorf("Expected ErrMovieIDRequired, got %v", err)
	}
}
