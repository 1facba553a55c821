package item

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for item aggregates.
type Repository interface {
	// FindByID retrieves an item by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByOwnerID retrieves all items listed by the given owner.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Item, error)

	// SearchAvailable finds available items whose name or description contains
	// the given text (case-insensitive).
	SearchAvailable(ctx context.Context, text string) ([]*Item, error)

	// Save persists a new item.
	Save(ctx context.Context, item *Item) error

	// Update persists changes to an existing item with optimistic locking.
	Update(ctx context.Context, item *Item) error

	// Delete removes an item by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository defines the persistence contract for item comments.
type CommentRepository interface {
	// Save persists a new comment.
	Save(ctx context.Context, comment *Comment) error

	// FindByItemID retrieves all comments on an item, newest first.
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)
}
