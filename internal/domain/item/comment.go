package item

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/borrowhub/service-rental/internal/apperr"
)

// AuthorRef identifies the user who wrote a comment.
type AuthorRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Comment is feedback left on an item by a user with a completed rental. The
// gating rule (past APPROVED booking ending before now) is enforced by the
// item service, not here.
type Comment struct {
	id        uuid.UUID
	text      string
	itemID    uuid.UUID
	author    AuthorRef
	createdAt time.Time
}

// NewComment creates a comment on an item.
func NewComment(itemID uuid.UUID, author AuthorRef, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validationf("comment text is required")
	}

	return &Comment{
		id:        uuid.New(),
		text:      text,
		itemID:    itemID,
		author:    author,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data.
func ReconstructComment(id uuid.UUID, text string, itemID uuid.UUID, author AuthorRef, createdAt time.Time) *Comment {
	return &Comment{
		id:        id,
		text:      text,
		itemID:    itemID,
		author:    author,
		createdAt: createdAt,
	}
}

// ID returns the comment's unique identifier.
func (c *Comment) ID() uuid.UUID { return c.id }

// Text returns the comment body.
func (c *Comment) Text() string { return c.text }

// ItemID returns the commented item's identifier.
func (c *Comment) ItemID() uuid.UUID { return c.itemID }

// Author returns the authoring user reference.
func (c *Comment) Author() AuthorRef { return c.author }

// CreatedAt returns the creation timestamp.
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
