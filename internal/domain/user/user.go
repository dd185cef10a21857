package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/borrowhub/service-rental/internal/apperr"
)

// User is the aggregate root for a marketplace account. Email is unique across
// the system; uniqueness is enforced by the store.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a user with validated fields.
func NewUser(name, email string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validationf("user name is required")
	}
	if !validEmail(email) {
		return nil, apperr.Validationf("a valid email is required")
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Name returns the display name.
func (u *User) Name() string { return u.name }

// Email returns the unique email address.
func (u *User) Email() string { return u.email }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Patch applies a partial update: nil fields keep their current value.
func (u *User) Patch(name, email *string) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return apperr.Validationf("user name cannot be blank")
		}
		u.name = *name
	}
	if email != nil {
		if !validEmail(*email) {
			return apperr.Validationf("a valid email is required")
		}
		u.email = *email
	}
	u.updatedAt = time.Now().UTC()
	return nil
}

// validEmail keeps the check deliberately shallow; the store's unique index
// and the mail transport are the real arbiters.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
