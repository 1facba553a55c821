package item

import (
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/google/uuid"
)

// Item is the aggregate root for a listed rental item. The availability flag
// controls whether new bookings may be created against it; bookings themselves
// never mutate an item.
type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewItem creates a new item listing with validated fields. The availability
// flag is required on creation; callers with an optional flag pass nil to
// signal it was absent.
func NewItem(ownerID uuid.UUID, name, description string, available *bool) (*Item, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewInvalidInputError("owner ID is required")
	}
	if name == "" {
		return nil, domain.NewInvalidInputError("item name is required")
	}
	if description == "" {
		return nil, domain.NewInvalidInputError("item description is required")
	}
	if available == nil {
		return nil, domain.NewInvalidStateError("availability not set")
	}

	now := time.Now().UTC()
	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   *available,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name, description string,
	available bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (i *Item) ID() uuid.UUID        { return i.id }
func (i *Item) OwnerID() uuid.UUID   { return i.ownerID }
func (i *Item) Name() string         { return i.name }
func (i *Item) Description() string  { return i.description }
func (i *Item) Available() bool      { return i.available }
func (i *Item) Version() int64       { return i.version }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// --- Behavior ---

// IsOwnedBy reports whether the item belongs to the given user.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

// Update applies partial updates. Empty strings and a nil availability flag
// leave the corresponding field unchanged.
func (i *Item) Update(name, description string, available *bool) {
	if name != "" {
		i.name = name
	}
	if description != "" {
		i.description = description
	}
	if available != nil {
		i.available = *available
	}
	i.version++
	i.updatedAt = time.Now().UTC()
}

// Snapshot is the serializable form of an Item, used by the cache layer.
type Snapshot struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns the item's serializable form.
func (i *Item) Snapshot() Snapshot {
	return Snapshot{
		ID:          i.id,
		OwnerID:     i.ownerID,
		Name:        i.name,
		Description: i.description,
		Available:   i.available,
		Version:     i.version,
		CreatedAt:   i.createdAt,
		UpdatedAt:   i.updatedAt,
	}
}

// FromSnapshot rebuilds an Item from its serializable form.
func FromSnapshot(s Snapshot) *Item {
	return Reconstruct(s.ID, s.OwnerID, s.Name, s.Description, s.Available, s.Version, s.CreatedAt, s.UpdatedAt)
}
