package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for user aggregates.
type Repository interface {
	// Save persists a new user. A duplicate email fails with a Conflict error.
	Save(ctx context.Context, u *User) error

	// Update persists changes to an existing user. A duplicate email fails
	// with a Conflict error.
	Update(ctx context.Context, u *User) error

	// FindByID retrieves a user by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// ListAll retrieves every user.
	ListAll(ctx context.Context) ([]*User, error)

	// Delete removes a user by id. Deleting a missing user is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}
