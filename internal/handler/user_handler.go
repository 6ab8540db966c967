package handler

import (
	"errors"
	"net/http"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/cinelist/cinelist-backend/internal/middleware"
	"github.com/cinelist/cinelist-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// UserHandler handles identity sync HTTP requests
type UserHandler struct {
	syncService *service.UserSyncService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(syncService *service.UserSyncService) *UserHandler {
	return &UserHandler{syncService: syncService}
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// Sync handles POST /api/v1/users/sync. The validated token is the
// identity payload: subject, email, name and picture come from the
// provider, not the request body.
func (h *UserHandler) Sync(c echo.Context) error {
	externalID := middleware.GetExternalID(c)
	claims := middleware.GetCustomClaims(c)
	if externalID == "" || claims == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	input := service.SyncInput{
		ExternalID: externalID,
		Email:      claims.Email,
		Name:       claims.Name,
	}
	if claims.Picture != "" {
		picture := claims.Picture
		input.AvatarURL = &picture
	}

	user, err := h.syncService.Sync(input)
	if err != nil {
		if errors.Is(err, domain.ErrExternalIDRequired) || errors.Is(err, domain.ErrEmailRequired) {
			return NewValidationError(c, "Identity payload incomplete", nil)
		}
		log.Error().Err(err).Str("external_id", externalID).Msg("Failed to sync user")
		return NewInternalError(c, "Failed to sync user")
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.syncService.GetByID(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get user")
		return NewInternalError(c, "Failed to get user")
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
}
