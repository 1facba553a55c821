// Package events defines the booking lifecycle events this service publishes.
package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicBookingEvents carries every booking lifecycle event.
const TopicBookingEvents = "booking.events"

// Event type identifiers.
const (
	BookingCreated  = "booking.created"
	BookingApproved = "booking.approved"
	BookingRejected = "booking.rejected"
)

// BookingCreatedEvent is published after a booking is persisted in WAITING.
type BookingCreatedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingDecidedEvent is published after the owner approves or rejects.
type BookingDecidedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Approved   bool      `json:"approved"`
	OccurredAt time.Time `json:"occurred_at"`
}
