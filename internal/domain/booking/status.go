package booking

import "fmt"

// Status represents the current state of a booking in its lifecycle.
type Status string

const (
	// StatusWaiting is the initial status of every booking.
	StatusWaiting Status = "WAITING"
	// StatusApproved means the item owner confirmed the booking.
	StatusApproved Status = "APPROVED"
	// StatusRejected means the item owner declined the booking.
	StatusRejected Status = "REJECTED"
	// StatusCancelled is reserved for booker-initiated cancellation. No exposed
	// operation reaches it today; the value is kept for forward compatibility.
	StatusCancelled Status = "CANCELLED"
)

// validTransitions defines the state machine for booking status transitions.
var validTransitions = map[Status][]Status{
	StatusWaiting:   {StatusApproved, StatusRejected},
	StatusApproved:  {},
	StatusRejected:  {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
