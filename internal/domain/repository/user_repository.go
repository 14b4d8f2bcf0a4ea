// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"shopkart/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByEmailOrPhone retrieves a user matching either identifier.
	// Used for the duplicate-account check at registration.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// UpdateRefreshToken overwrites the user's single refresh-token slot.
	// This is a plain single-column update with no compare-and-swap:
	// concurrent writers race and the last write wins, which is the
	// documented single-session semantics of this system.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	// ClearRefreshToken empties the user's refresh-token slot. It is
	// idempotent and succeeds even when the slot is already empty.
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error

	// UpdateCredentialHash replaces the user's stored password hash.
	UpdateCredentialHash(ctx context.Context, id uuid.UUID, hash string) error
}
