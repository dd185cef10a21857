package application

import (
	"context"

	"github.com/google/uuid"

	bookingDomain "github.com/borrowhub/service-rental/internal/domain/booking"
	itemDomain "github.com/borrowhub/service-rental/internal/domain/item"
	requestDomain "github.com/borrowhub/service-rental/internal/domain/request"
	userDomain "github.com/borrowhub/service-rental/internal/domain/user"
)

// Resolver is the single lookup-and-validate capability shared by the
// application services: it loads a referenced entity or fails with the
// repository's NotFound error. Services embed it instead of each re-implementing
// the lookup helpers.
type Resolver struct {
	users    userDomain.Repository
	items    itemDomain.Repository
	bookings bookingDomain.Repository
	requests requestDomain.Repository
}

// NewResolver creates a Resolver over the given stores. Stores a service never
// resolves through may be nil.
func NewResolver(
	users userDomain.Repository,
	items itemDomain.Repository,
	bookings bookingDomain.Repository,
	requests requestDomain.Repository,
) *Resolver {
	return &Resolver{users: users, items: items, bookings: bookings, requests: requests}
}

// User resolves a user by id.
func (r *Resolver) User(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return r.users.FindByID(ctx, id)
}

// Item resolves an item by id.
func (r *Resolver) Item(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	return r.items.FindByID(ctx, id)
}

// Booking resolves a booking by id.
func (r *Resolver) Booking(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	return r.bookings.FindByID(ctx, id)
}

// Request resolves an item request by id.
func (r *Resolver) Request(ctx context.Context, id uuid.UUID) (*requestDomain.Request, error) {
	return r.requests.FindByID(ctx, id)
}
