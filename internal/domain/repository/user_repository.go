// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"clearpass/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrUserAlreadyExists is returned when a mutation would violate email uniqueness.
var ErrUserAlreadyExists = errors.New("user already exists")

// UserRepository defines the standard operations for user persistence.
//
// Implementations own password hashing and email field encryption: entities
// going in carry plaintext, entities coming out carry plaintext email and the
// stored password hash. The application layer depends on this interface, not
// the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail retrieves a single user by plaintext email address.
	// The lookup is a linear scan over all stored users because the stored
	// email field is encrypted and has no secondary index.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByEmailAndPassword resolves the user by email and verifies the
	// password against the stored hash. Any hash-format error counts as an
	// authentication failure, not a hard error.
	FindByEmailAndPassword(ctx context.Context, email, password string) (*entity.User, error)

	// FindByGoogleID retrieves a user by their federated identity subject.
	FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error)

	// Create persists a new user. The incoming entity carries a plaintext
	// password (possibly empty for federated accounts) and plaintext email.
	// Returns ErrUserAlreadyExists if the email is already taken.
	Create(ctx context.Context, user *entity.User) (*entity.User, error)

	// Update applies a partial update to an existing user. An email change
	// re-checks uniqueness excluding the record itself; a password change is
	// re-hashed. Returns the updated user with plaintext email.
	Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)

	// Delete removes a user. Returns true iff a record was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
