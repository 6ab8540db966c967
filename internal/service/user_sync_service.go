package service

import (
	"errors"
	"strings"

	"github.com/cinelist/cinelist-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// UserSyncService reconciles identity-provider payloads with local users
type UserSyncService struct {
	userRepo domain.UserRepository
}

// NewUserSyncService creates a new UserSyncService
func NewUserSyncService(userRepo domain.UserRepository) *UserSyncService {
	return &UserSyncService{userRepo: userRepo}
}

// SyncInput is the identity payload from the provider. ExternalID and
// Email are authoritative; Name and AvatarURL are best-effort.
type SyncInput struct {
	ExternalID string
	Email      string
	Name       string
	AvatarURL  *string
}

// resolution tags how an incoming identity matched the local store
type resolution int

const (
	resolvedNew resolution = iota
	resolvedByExternalID
	resolvedByEmail
)

// Sync creates or updates the local user for an identity-provider
// payload. Repeated calls with identical input converge to the same
// persisted state.
func (s *UserSyncService) Sync(input SyncInput) (*domain.User, error) {
	if input.ExternalID == "" {
		return nil, domain.ErrExternalIDRequired
	}
	if input.Email == "" {
		return nil, domain.ErrEmailRequired
	}

	user, how, err := s.resolve(input)
	if err != nil {
		return nil, err
	}

	// The provider is authoritative for these two fields.
	externalID := input.ExternalID
	user.ExternalID = &externalID
	user.Email = input.Email

	if strings.TrimSpace(input.Name) != "" {
		user.Name = input.Name
	} else if strings.TrimSpace(user.Name) == "" {
		user.Name = input.Email
	}
	// A present-but-blank avatar URL is an intentional value, nil means
	// the provider sent nothing.
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}

	var saved *domain.User
	if how == resolvedNew {
		saved, err = s.userRepo.Create(user)
	} else {
		saved, err = s.userRepo.Update(user)
	}
	if err != nil {
		log.Error().Err(err).Str("external_id", input.ExternalID).Msg("Failed to persist synced user")
		return nil, err
	}

	log.Info().Int64("user_id", saved.ID).Str("external_id", input.ExternalID).
		Bool("created", how == resolvedNew).Msg("User synced")
	return saved, nil
}

// resolve performs the three-way identity match: by external id first,
// then by email, otherwise a fresh user. New users get an opaque random
// secret; synced identities never authenticate with it.
func (s *UserSyncService) resolve(input SyncInput) (*domain.User, resolution, error) {
	user, err := s.userRepo.GetByExternalID(input.ExternalID)
	if err == nil {
		return user, resolvedByExternalID, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, 0, err
	}

	user, err = s.userRepo.GetByEmail(input.Email)
	if err == nil {
		return user, resolvedByEmail, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, 0, err
	}

	return &domain.User{Secret: uuid.New().String()}, resolvedNew, nil
}

// GetByID retrieves a user by id
func (s *UserSyncService) GetByID(id int64) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// GetByExternalID retrieves a user by their identity-provider id
func (s *UserSyncService) GetByExternalID(externalID string) (*domain.User, error) {
	return s.userRepo.GetByExternalID(externalID)
}
