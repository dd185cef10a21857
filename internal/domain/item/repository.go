package item

import (
	"context"

	"github.com/google/uuid"
)

// Page holds offset/limit pagination parameters, zero-based offset.
type Page struct {
	Offset int
	Limit  int
}

// Repository defines the persistence contract for item aggregates.
type Repository interface {
	// Save persists a new item.
	Save(ctx context.Context, i *Item) error

	// Update persists changes to an existing item.
	Update(ctx context.Context, i *Item) error

	// FindByID retrieves an item by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByOwner lists a user's items ordered by creation, paginated.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, page Page) ([]*Item, error)

	// Search lists available items whose name or description contains the text,
	// case-insensitively. Empty text returns no items.
	Search(ctx context.Context, text string, page Page) ([]*Item, error)

	// FindByRequests retrieves items answering any of the given item requests.
	FindByRequests(ctx context.Context, requestIDs []uuid.UUID) ([]*Item, error)

	// Delete removes an item by id. Deleting a missing item is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository defines the persistence contract for comments.
type CommentRepository interface {
	// Save persists a new comment.
	Save(ctx context.Context, c *Comment) error

	// FindByItem retrieves all comments on an item, oldest first.
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)

	// FindByItems retrieves all comments on any of the given items.
	FindByItems(ctx context.Context, itemIDs []uuid.UUID) ([]*Comment, error)
}
