// Package events publishes booking lifecycle events to Kafka so downstream
// consumers (notifications, analytics) can react without coupling to this
// service's database.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Topic and event type constants for the booking event stream.
const (
	TopicBookingEvents = "rental.booking.events"

	BookingRequested = "booking.requested"
	BookingApproved  = "booking.approved"
	BookingRejected  = "booking.rejected"
)

// Envelope is the wire format for published events: a CloudEvents-style
// wrapper with a JSON payload.
type Envelope struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewEnvelope wraps data into an Envelope for the given source and type.
func NewEnvelope(source, eventType string, data interface{}) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return Envelope{
		ID:     uuid.NewString(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   raw,
	}, nil
}

// ParseData unmarshals the envelope payload into v.
func (e Envelope) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// BookingEvent is the payload published on every booking lifecycle change.
type BookingEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
