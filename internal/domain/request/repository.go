package request

import (
	"context"

	"github.com/google/uuid"
)

// Page holds offset/limit pagination parameters, zero-based offset.
type Page struct {
	Offset int
	Limit  int
}

// Repository defines the persistence contract for item requests.
type Repository interface {
	// Save persists a new request.
	Save(ctx context.Context, r *Request) error

	// FindByID retrieves a request by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)

	// FindByRequester lists a user's own requests, newest first, paginated.
	FindByRequester(ctx context.Context, requesterID uuid.UUID, page Page) ([]*Request, error)

	// FindByOtherRequesters lists requests created by everyone except the given
	// user, newest first, paginated.
	FindByOtherRequesters(ctx context.Context, requesterID uuid.UUID, page Page) ([]*Request, error)
}
