package booking

import (
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/google/uuid"
)

// Booking is the aggregate root for the booking domain. The reserved window
// (start/end) is immutable after creation; only the status field ever changes,
// and only through Decide.
//
// Overlapping windows from different bookers on the same item are deliberately
// not prevented; the owner arbitrates by choosing which waiting bookings to
// approve.
type Booking struct {
	id       uuid.UUID
	itemID   uuid.UUID
	bookerID uuid.UUID
	start    time.Time
	end      time.Time
	status   Status

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking in status waiting.
func NewBooking(bookerID, itemID uuid.UUID, start, end time.Time) (*Booking, error) {
	if bookerID == uuid.Nil {
		return nil, domain.NewInvalidInputError("booker ID is required")
	}
	if itemID == uuid.Nil {
		return nil, domain.NewInvalidInputError("item ID is required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, domain.NewInvalidInputError("start and end dates are required")
	}
	if start.After(end) {
		return nil, domain.NewInvalidDateRangeError(
			fmt.Sprintf("booking start %s is after end %s", start.Format(time.RFC3339), end.Format(time.RFC3339)))
	}

	now := time.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    StatusWaiting,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, itemID, bookerID uuid.UUID,
	start, end time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ItemID returns the reserved item's identifier.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// BookerID returns the identifier of the user who requested the reservation.
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }

// Start returns the beginning of the reserved window.
func (b *Booking) Start() time.Time { return b.start }

// End returns the end of the reserved window.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// IsBookedBy reports whether the given user requested this booking.
func (b *Booking) IsBookedBy(userID uuid.UUID) bool {
	return b.bookerID == userID
}

// Decide resolves a waiting booking to approved or rejected. Both outcomes are
// terminal; deciding a booking that already left waiting fails with a conflict.
func (b *Booking) Decide(approve bool) error {
	target := StatusRejected
	if approve {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		return domain.NewConflictError(
			fmt.Sprintf("status change not allowed from %s", b.status))
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// IsFinishedBefore reports whether the booking's window ended before the given instant.
func (b *Booking) IsFinishedBefore(now time.Time) bool {
	return b.end.Before(now)
}
