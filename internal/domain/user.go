package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrExternalIDRequired = errors.New("external id is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailTaken         = errors.New("email already in use")
)

// User represents a user reconciled from the identity provider
type User struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Secret     string    `json:"-"`
	Name       string    `json:"name"`
	ExternalID *string   `json:"externalId,omitempty"`
	AvatarURL  *string   `json:"avatarUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetByID(id int64) (*User, error)
	GetByExternalID(externalID string) (*User, error)
	GetByEmail(email string) (*User, error)
	Create(user *User) (*User, error)
	Update(user *User) (*User, error)
}
