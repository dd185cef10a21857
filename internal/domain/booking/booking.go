package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/borrowhub/service-rental/internal/apperr"
)

// ItemRef is the slice of an item a booking needs: identity, display name and
// the owner who decides on the booking.
type ItemRef struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	OwnerID uuid.UUID `json:"owner_id"`
}

// UserRef identifies the booker.
type UserRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Booking is the aggregate root for the booking domain: a reservation of an
// item by a user for a time interval with a lifecycle status.
type Booking struct {
	id     uuid.UUID
	start  time.Time
	end    time.Time
	item   ItemRef
	booker UserRef
	status Status

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a booking in WAITING status. The interval must be
// well-formed: end strictly after start.
func NewBooking(item ItemRef, booker UserRef, start, end time.Time) (*Booking, error) {
	if item.ID == uuid.Nil {
		return nil, apperr.Validationf("item is required")
	}
	if booker.ID == uuid.Nil {
		return nil, apperr.Validationf("booker is required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, apperr.Validationf("booking start and end are required")
	}
	if !end.After(start) {
		return nil, apperr.Validationf("booking end must be after start")
	}

	now := time.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		start:     start.UTC(),
		end:       end.UTC(),
		item:      item,
		booker:    booker,
		status:    StatusWaiting,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	start, end time.Time,
	item ItemRef,
	booker UserRef,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		start:     start,
		end:       end,
		item:      item,
		booker:    booker,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// Start returns the interval start.
func (b *Booking) Start() time.Time { return b.start }

// End returns the interval end.
func (b *Booking) End() time.Time { return b.end }

// Item returns the booked item reference.
func (b *Booking) Item() ItemRef { return b.item }

// Booker returns the requesting user reference.
func (b *Booking) Booker() UserRef { return b.booker }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// Decide applies the owner's verdict. Only the item owner may decide, and only
// while the booking is still WAITING; a finalized booking cannot be decided
// again.
func (b *Booking) Decide(actorID uuid.UUID, approve bool) error {
	if b.item.OwnerID != actorID {
		return apperr.AccessDeniedf("only the item owner can approve or reject a booking")
	}
	target := StatusRejected
	if approve {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		return apperr.Unavailablef("booking is already approved or rejected")
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// VisibleTo reports whether the given user may read this booking. Visibility is
// limited to the booker and the item owner; everyone else is told the booking
// does not exist.
func (b *Booking) VisibleTo(userID uuid.UUID) bool {
	return b.booker.ID == userID || b.item.OwnerID == userID
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
