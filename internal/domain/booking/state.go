package booking

import (
	"strings"

	"github.com/borrowhub/service-rental/internal/apperr"
)

// State is a temporal or status filter applied to booking listings. It is a
// query-side concept, distinct from Status: CURRENT/PAST/FUTURE slice the list
// by interval position relative to "now", WAITING/REJECTED by status.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState converts a raw query value to a State. Unknown values fail with an
// IncorrectRequest error so the handler can answer deterministically.
func ParseState(raw string) (State, error) {
	if raw == "" {
		return StateAll, nil
	}
	state := State(strings.ToUpper(raw))
	switch state {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return state, nil
	}
	return "", apperr.Incorrectf("unsupported state: %s", raw)
}
