package service

import (
	"errors"
	"testing"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/cinelist/cinelist-backend/internal/testutil"
)

func newReviewService() (*ReviewService, *testutil.MockReviewRepository, *testutil.MockUserRepository) {
	userRepo := testutil.NewMockUserRepository()
	reviewRepo := testutil.NewMockReviewRepository()
	reviewRepo.UserRepo = userRepo
	return NewReviewService(reviewRepo, userRepo), reviewRepo, userRepo
}

func addReviewer(userRepo *testutil.MockUserRepository, id int64, email string) {
	userRepo.AddUser(&domain.User{ID: id, Email: email, Name: email})
}

func TestWriteReview_Success(t *testing.T) {
	reviewService, _, userRepo := newReviewService()
	addReviewer(userRepo, 1, "ana@example.com")

	comment := "Great movie"
	review, err := reviewService.WriteReview(1, WriteReviewInput{
		MovieID:    550,
		MovieTitle: "Fight Club",
		Rating:     9.5,
		Comment:    &comment,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if review.ID == 0 {
		t.Error("Expected a persisted ID")
	}
	if review.Rating != 9.5 {
		t.Errorf("Expected rating 9.5, got %f", review.Rating)
	}
	if review.MovieTitle != "Fight Club" {
		t.Errorf("Expected title 'Fight Club', got %s", review.MovieTitle)
	}
}

func TestWriteReview_UpsertOverwrites(t *testing.T) {
	reviewService, reviewRepo, userRepo := newReviewService()
	addReviewer(userRepo, 1, "ana@example.com")

	first, err := reviewService.WriteReview(1, WriteReviewInput{
		MovieID:    550,
		MovieTitle: "Fight Club",
		Rating:     7,
	})
	if err != nil {
		t.Fatalf("Expected no error on first write, got %v", err)
	}

	comment := "Changed my mind"
	second, err := reviewService.WriteReview(1, WriteReviewInput{
		MovieID:    550,
		MovieTitle: "Fight Club (1999)",
		Rating:     9,
		Comment:    &comment,
	})
	if err != nil {
		t.Fatalf("Expected no error on second write, got %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("Expected same review row, got %d and %d", first.ID, second.ID)
	}
	if second.Rating != 9 {
		t.Errorf("Expected overwritten rating 9, got %f", second.Rating)
	}
	if second.MovieTitle != "Fight Club (1999)" {
		t.Errorf("Expected refreshed title, got %s", second.MovieTitle)
	}
	if second.Comment == nil || *second.Comment != comment {
		t.Errorf("Expected overwritten comment, got %v", second.Comment)
	}
	if !second.UpdatedAt.After(first.CreatedAt) && !second.UpdatedAt.Equal(first.CreatedAt) {
		t.Error("Expected updatedAt at or after creation")
	}
	if len(reviewRepo.Reviews) != 1 {
		t.Errorf("Expected exactly one review row, got %d", len(reviewRepo.Reviews))
	}
}

func TestWriteReview_DifferentUsersSameMovie(t *testing.T) {
	reviewService, reviewRepo, userRepo := newReviewService()
	addReviewer(userRepo, 1, "ana@example.com")
	addReviewer(userRepo, 2, "bruno@example.com")

	if _, err := reviewService.WriteReview(1, WriteReviewInput{MovieID: 550, MovieTitle: "Fight Club", Rating: 8}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := reviewService.WriteReview(2, WriteReviewInput{MovieID: 550, MovieTitle: "Fight Club", Rating: 6}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(reviewRepo.Reviews) != 2 {
		t.Errorf("Expected two review rows, got %d", len(reviewRepo.Reviews))
	}
}

func TestWriteReview_Validation(t *testing.T) {
	reviewService, _, userRepo := newReviewService()
	addReviewer(userRepo, 1, "ana@example.com")

	if _, err := reviewService.WriteReview(1, WriteReviewInput{MovieTitle: "Fight Club", Rating: 5}); !errors.Is(err, domain.ErrMovieIDRequired) {
		t.Errorf("Expected ErrMovieIDRequired, got %v", err)
	}
	if _, err := reviewService.WriteReview(1, WriteReviewInput{MovieID: 550, Rating: 5}); !errors.Is(err, domain.ErrMovieTitleRequired) {
		t.Errorf("Expected ErrMovieTitleRequired, got %v", err)
	}
	if _, err := reviewService.WriteReview(1, WriteReviewInput{MovieID: 550, MovieTitle: "Fight Club", Rating: 10.5}); !errors.Is(err, domain.ErrInvalidRating) {
		t.Errorf("Expected ErrInvalidRating above 10, got %v", err)
	}
	if _, err := reviewService.WriteReview(1, WriteReviewInput{MovieID: 550, MovieTitle: "Fight Club", Rating: -1}); !errors.Is(err, domain.ErrInvalidRating) {
		t.Errorf("Expected ErrInvalidRating below 0, got %v", err)
	}
}

func TestWriteReview_UnknownUser(t *testing.T) {
	reviewService, _, _ := newReviewService()

	if _, err := reviewService.WriteReview(42, WriteReviewInput{MovieID: 550, MovieTitle: "Fight Club", Rating: 5}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestGetReviewsByMovie_IncludesAuthorEmail(t *testing.T) {
	reviewService, _, userRepo := newReviewService()
	addReviewer(userRepo, 1, "ana@example.com")
	addReviewer(userRepo, 2, "bruno@example.com")

	if _, err := reviewService.WriteReview(1, WriteReviewInput{MovieID: 550, MovieTitle: "Fight Club", Rating: 8}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := reviewService.WriteReview(2, WriteReviewInput{MovieID: 550, MovieTitle: "Fight Club", Rating: 6}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	reviews, err := reviewService.GetReviewsByMovie(550)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("Expected 2 reviews, got %d", len(reviews))
	}
	if reviews[0].UserEmail != "ana@example.com" {
		t.Errorf("Expected oldest review first with author email, got %s", reviews[0].UserEmail)
	}
	if reviews[1].UserEmail != "bruno@example.com" {
		t.Errorf("Expected second author email, got %s", reviews[1].UserEmail)
	}
}

func TestGetReviewsByMovie_MissingID(t *testing.T) {
	reviewService, _, _ := newReviewService()

	if _, err := reviewService.GetReviewsByMovie(0); !errors.Is(err, domain.ErrMovieIDRequired) {
		t.Errorf("Expected ErrMovieIDRequired, got %v", err)
	}
}

func TestDeleteReview_OwnerOnly(t *testing.T) {
	reviewService, reviewRepo, userRepo := newReviewService()
	addReviewer(userRepo, 1, "ana@example.com")
	addReviewer(userRepo, 2, "bruno@example.com")

	review, err := reviewService.WriteReview(1, WriteReviewInput{MovieID: 550, MovieTitle: "Fight Club", Rating: 8})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := reviewService.DeleteReview(review.ID, 2); !errors.Is(err, domain.ErrReviewForbidden) {
		t.Errorf("Expected ErrReviewForbidden for non-author, got %v", err)
	}
	if len(reviewRepo.Reviews) != 1 {
		t.Errorf("Expected review untouched after forbidden delete, got %d rows", len(reviewRepo.Reviews))
	}

	if err := reviewService.DeleteReview(review.ID, 1); err != nil {
		t.Fatalf("Expected author delete to succeed, got %v", err)
	}
	if len(reviewRepo.Reviews) != 0 {
		t.Errorf("Expected review deleted, got %d rows", len(reviewRepo.Reviews))
	}
}

func TestDeleteReview_NotFound(t *testing.T) {
	reviewService, _, _ := newReviewService()

	if err := reviewService.DeleteReview(99, 1); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Errorf("Expected ErrReviewNotFound, got %v", err)
	}
}
