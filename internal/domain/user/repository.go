package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for user aggregates.
type Repository interface {
	// FindByID retrieves a user by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindAll retrieves all users.
	FindAll(ctx context.Context) ([]*User, error)

	// FindByEmail retrieves a user by email, or nil when no user holds it.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a new user.
	Save(ctx context.Context, user *User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *User) error

	// Delete removes a user by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
