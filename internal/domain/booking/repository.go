package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Page holds offset/limit pagination parameters. Offset is a zero-based row
// offset, not a page index; ordering is fixed per query and there is no
// stability guarantee across concurrent inserts.
type Page struct {
	Offset int
	Limit  int
}

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// Create persists a new booking. Implementations must re-run the interval
	// conflict check against APPROVED bookings of the same item inside the same
	// transaction as the insert, and return an Unavailable error on conflict,
	// so two concurrent bookers cannot both pass a stale check.
	Create(ctx context.Context, bk *Booking) error

	// Update persists a status decision with optimistic locking; it fails with
	// an Unavailable error if the stored status was finalized concurrently.
	Update(ctx context.Context, bk *Booking) error

	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindApprovedByItem retrieves all APPROVED bookings of an item.
	FindApprovedByItem(ctx context.Context, itemID uuid.UUID) ([]*Booking, error)

	// FindByBooker lists bookings requested by a user, filtered by state
	// relative to now, ordered by start descending.
	FindByBooker(ctx context.Context, bookerID uuid.UUID, state State, now time.Time, page Page) ([]*Booking, error)

	// FindByItemOwner lists bookings on items owned by a user, filtered by
	// state relative to now, ordered by start descending.
	FindByItemOwner(ctx context.Context, ownerID uuid.UUID, state State, now time.Time, page Page) ([]*Booking, error)

	// FindNextByItem returns the APPROVED booking with the earliest start
	// strictly after now, or nil if there is none.
	FindNextByItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*Booking, error)

	// FindLastByItem returns the booking with the latest start strictly before
	// now regardless of status, ties broken by latest end, or nil if none.
	FindLastByItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*Booking, error)

	// FindPastApprovedByItemAndBooker retrieves APPROVED bookings of an item by
	// a given booker that ended before now. Used to gate comments.
	FindPastApprovedByItemAndBooker(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) ([]*Booking, error)

	// FindByItems retrieves all bookings of the given items, any status.
	FindByItems(ctx context.Context, itemIDs []uuid.UUID) ([]*Booking, error)
}
