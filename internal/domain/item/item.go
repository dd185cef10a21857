package item

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/borrowhub/service-rental/internal/apperr"
)

// Item is the aggregate root for a listed thing. The available flag gates new
// bookings but is independent of booking state: an unavailable item keeps its
// existing bookings, and an available one can still refuse a conflicting
// interval.
type Item struct {
	id          uuid.UUID
	name        string
	description string
	available   bool
	ownerID     uuid.UUID
	requestID   *uuid.UUID

	createdAt time.Time
	updatedAt time.Time
}

// NewItem creates an item owned by ownerID, optionally answering an item
// request.
func NewItem(ownerID uuid.UUID, name, description string, available bool, requestID *uuid.UUID) (*Item, error) {
	if ownerID == uuid.Nil {
		return nil, apperr.Validationf("owner ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validationf("item name is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validationf("item description is required")
	}

	now := time.Now().UTC()
	return &Item{
		id:          uuid.New(),
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name, description string,
	available bool,
	ownerID uuid.UUID,
	requestID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the item's unique identifier.
func (i *Item) ID() uuid.UUID { return i.id }

// Name returns the display name.
func (i *Item) Name() string { return i.name }

// Description returns the free-text description.
func (i *Item) Description() string { return i.description }

// Available reports whether new bookings are accepted.
func (i *Item) Available() bool { return i.available }

// OwnerID returns the owning user's identifier.
func (i *Item) OwnerID() uuid.UUID { return i.ownerID }

// RequestID returns the originating item request, or nil.
func (i *Item) RequestID() *uuid.UUID { return i.requestID }

// CreatedAt returns the creation timestamp.
func (i *Item) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// IsOwnedBy reports whether userID owns this item.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool { return i.ownerID == userID }

// Patch applies a partial update: nil fields keep their current value. Only
// the owner may patch; the caller enforces that.
func (i *Item) Patch(name, description *string, available *bool) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return apperr.Validationf("item name cannot be blank")
		}
		i.name = *name
	}
	if description != nil {
		if strings.TrimSpace(*description) == "" {
			return apperr.Validationf("item description cannot be blank")
		}
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
	i.updatedAt = time.Now().UTC()
	return nil
}
