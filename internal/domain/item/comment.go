package item

import (
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/google/uuid"
)

// Comment is a user's feedback on an item they previously rented. The author
// name is denormalized at creation time.
type Comment struct {
	id         uuid.UUID
	itemID     uuid.UUID
	authorName string
	text       string
	createdAt  time.Time
}

// NewComment creates a comment on an item.
func NewComment(itemID uuid.UUID, authorName, text string) (*Comment, error) {
	if itemID == uuid.Nil {
		return nil, domain.NewInvalidInputError("item ID is required")
	}
	if text == "" {
		return nil, domain.NewInvalidInputError("comment text is required")
	}
	return &Comment{
		id:         uuid.New(),
		itemID:     itemID,
		authorName: authorName,
		text:       text,
		createdAt:  time.Now().UTC(),
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data.
func ReconstructComment(id, itemID uuid.UUID, authorName, text string, createdAt time.Time) *Comment {
	return &Comment{
		id:         id,
		itemID:     itemID,
		authorName: authorName,
		text:       text,
		createdAt:  createdAt,
	}
}

func (c *Comment) ID() uuid.UUID        { return c.id }
func (c *Comment) ItemID() uuid.UUID    { return c.itemID }
func (c *Comment) AuthorName() string   { return c.authorName }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
