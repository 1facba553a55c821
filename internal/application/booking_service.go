package application

import (
	"context"
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	bookingDomain "github.com/gearshare/service-rental/internal/domain/booking"
	itemDomain "github.com/gearshare/service-rental/internal/domain/item"
	userDomain "github.com/gearshare/service-rental/internal/domain/user"
	"github.com/gearshare/service-rental/internal/events"
	"github.com/gearshare/service-rental/internal/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher publishes CloudEvents; failures are logged, never surfaced.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event kafka.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	BookerID  uuid.UUID `json:"booker_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingService orchestrates the booking lifecycle: creation validation, the
// approve/reject decision, read authorization and the filtered list views.
type BookingService struct {
	bookings bookingDomain.Repository
	users    userDomain.Repository
	items    itemDomain.Repository

	bookerFilters bookingDomain.FilterRegistry
	ownerFilters  bookingDomain.FilterRegistry

	producer EventPublisher
	logger   *zap.Logger
}

// NewBookingService creates a BookingService and builds its two filter
// registries from the booking repository.
func NewBookingService(
	bookings bookingDomain.Repository,
	users userDomain.Repository,
	items itemDomain.Repository,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:      bookings,
		users:         users,
		items:         items,
		bookerFilters: bookingDomain.NewBookerFilterRegistry(bookings),
		ownerFilters:  bookingDomain.NewOwnerFilterRegistry(bookings),
		producer:      producer,
		logger:        logger,
	}
}

// CreateBooking validates and persists a new reservation in status WAITING.
// Validation order: booker exists, item exists, item available, start not
// after end. Overlap with other bookers' windows is not checked.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, bookerID); err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available() {
		return nil, domain.NewInvalidStateError("availability not set")
	}

	bk, err := bookingDomain.NewBooking(bookerID, req.ItemID, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	evt := events.BookingCreatedEvent{
		BookingID:  bk.ID(),
		ItemID:     it.ID(),
		BookerID:   bookerID,
		OwnerID:    it.OwnerID(),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.BookingCreated, bk.ID().String(), evt)

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("item_id", it.ID().String()),
		zap.String("booker_id", bookerID.String()),
	)
	result := toBookingDTO(bk)
	return &result, nil
}

// DecideBooking lets the item owner approve or reject a waiting booking. The
// write is a conditional update on status=WAITING so a concurrent second
// decision loses with a conflict instead of overwriting the first.
func (s *BookingService) DecideBooking(ctx context.Context, userID, bookingID uuid.UUID, approve bool) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if err := bookingDomain.AuthorizeDecide(userID, it.OwnerID()); err != nil {
		return nil, err
	}

	if err := bk.Decide(approve); err != nil {
		return nil, err
	}

	applied, err := s.bookings.UpdateStatusFromWaiting(ctx, bk.ID(), bk.Status())
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.NewConflictError(
			fmt.Sprintf("status change not allowed from %s", bookingDomain.StatusWaiting))
	}

	evt := events.BookingDecidedEvent{
		BookingID:  bk.ID(),
		ItemID:     it.ID(),
		BookerID:   bk.BookerID(),
		OwnerID:    it.OwnerID(),
		Approved:   approve,
		OccurredAt: time.Now().UTC(),
	}
	eventType := events.BookingRejected
	if approve {
		eventType = events.BookingApproved
	}
	s.publishEvent(ctx, eventType, bk.ID().String(), evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking returns a booking to its booker or to the owner of its item.
func (s *BookingService) GetBooking(ctx context.Context, requesterID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if err := bookingDomain.AuthorizeRead(requesterID, bk, it.OwnerID()); err != nil {
		return nil, err
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// ListBookingsForBooker returns the user's own bookings filtered by state.
func (s *BookingService) ListBookingsForBooker(ctx context.Context, userID uuid.UUID, state string) ([]BookingDTO, error) {
	return s.listBookings(ctx, userID, state, s.bookerFilters)
}

// ListBookingsForOwner returns bookings on the user's items filtered by state.
func (s *BookingService) ListBookingsForOwner(ctx context.Context, userID uuid.UUID, state string) ([]BookingDTO, error) {
	return s.listBookings(ctx, userID, state, s.ownerFilters)
}

func (s *BookingService) listBookings(ctx context.Context, userID uuid.UUID, state string, registry bookingDomain.FilterRegistry) ([]BookingDTO, error) {
	filterState, err := bookingDomain.ParseFilterState(state)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	// "now" is fixed once per call; every time-relative predicate in the
	// dispatched query sees the same instant.
	now := time.Now().UTC()
	bookings, err := registry.Dispatch(ctx, filterState, userID, now)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetBookingStats returns aggregate booking counts (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		Start:     bk.Start(),
		End:       bk.End(),
		Status:    string(bk.Status()),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	if s.producer == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent("service-rental", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
