package request

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/borrowhub/service-rental/internal/apperr"
)

// Request is a user's ask for an item that is not listed yet. Owners answer a
// request by creating an item bound to it.
type Request struct {
	id          uuid.UUID
	description string
	requesterID uuid.UUID
	createdAt   time.Time
}

// NewRequest creates an item request by the given user.
func NewRequest(requesterID uuid.UUID, description string) (*Request, error) {
	if requesterID == uuid.Nil {
		return nil, apperr.Validationf("requester ID is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validationf("request description is required")
	}

	return &Request{
		id:          uuid.New(),
		description: description,
		requesterID: requesterID,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Request from persistence data (no validation).
func Reconstruct(id uuid.UUID, description string, requesterID uuid.UUID, createdAt time.Time) *Request {
	return &Request{
		id:          id,
		description: description,
		requesterID: requesterID,
		createdAt:   createdAt,
	}
}

// ID returns the request's unique identifier.
func (r *Request) ID() uuid.UUID { return r.id }

// Description returns what the requester is looking for.
func (r *Request) Description() string { return r.description }

// RequesterID returns the requesting user's identifier.
func (r *Request) RequesterID() uuid.UUID { return r.requesterID }

// CreatedAt returns the creation timestamp.
func (r *Request) CreatedAt() time.Time { return r.createdAt }
