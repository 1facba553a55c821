package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// UpdateStatusFromWaiting atomically sets the status of the given booking,
	// conditioned on the stored status still being WAITING. Returns false when
	// the condition did not hold (the booking was decided concurrently).
	UpdateStatusFromWaiting(ctx context.Context, id uuid.UUID, target Status) (bool, error)

	// --- Booker-scoped filter queries (start descending unless noted) ---

	FindAllByBooker(ctx context.Context, bookerID uuid.UUID) ([]*Booking, error)
	FindCurrentByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*Booking, error)
	FindPastByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*Booking, error)
	FindFutureByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*Booking, error)
	FindByBookerAndStatus(ctx context.Context, bookerID uuid.UUID, status Status) ([]*Booking, error)

	// --- Owner-scoped filter queries (bookings on items the user owns) ---

	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Booking, error)
	FindCurrentByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*Booking, error)
	FindPastByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*Booking, error)
	FindFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*Booking, error)
	FindByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status Status) ([]*Booking, error)

	// --- Item-centric queries (item detail view, comment eligibility) ---

	// FindLastForItem returns the most recently ended booking that started
	// before now, or nil if the item has none.
	FindLastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*Booking, error)

	// FindNextForItem returns the next booking starting after now, or nil.
	FindNextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*Booking, error)

	// HasFinishedBooking reports whether the user has a booking on the item
	// whose window ended before now.
	HasFinishedBooking(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error)

	// --- Admin queries ---

	// ListAll retrieves all bookings with pagination.
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
