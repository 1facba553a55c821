package booking

import (
	"context"
	"strings"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/google/uuid"
)

// FilterState selects a time- or status-relative view over a user's bookings.
type FilterState string

const (
	FilterAll      FilterState = "ALL"
	FilterCurrent  FilterState = "CURRENT"
	FilterPast     FilterState = "PAST"
	FilterFuture   FilterState = "FUTURE"
	FilterWaiting  FilterState = "WAITING"
	FilterRejected FilterState = "REJECTED"
)

// ParseFilterState matches the input case-insensitively against the six filter
// states. Blank input and unknown values are both rejected; there is no
// fallback to ALL here.
func ParseFilterState(value string) (FilterState, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", domain.NewInvalidInputError("state cannot be empty")
	}
	state := FilterState(strings.ToUpper(trimmed))
	switch state {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return state, nil
	}
	return "", domain.NewInvalidInputError("unknown state: " + value)
}

// FilterQuery runs one fixed store query scoped to userID. now is the single
// instant the time-relative filters evaluate against.
type FilterQuery func(ctx context.Context, userID uuid.UUID, now time.Time) ([]*Booking, error)

// FilterRegistry maps each filter state to its query. It is built once at
// startup and read-only afterwards, so it needs no locking.
type FilterRegistry map[FilterState]FilterQuery

// Dispatch runs the query registered for state.
func (r FilterRegistry) Dispatch(ctx context.Context, state FilterState, userID uuid.UUID, now time.Time) ([]*Booking, error) {
	query, ok := r[state]
	if !ok {
		return nil, domain.NewInvalidInputError("unknown state: " + string(state))
	}
	return query(ctx, userID, now)
}

// NewBookerFilterRegistry builds the registry for queries scoped by the booker.
func NewBookerFilterRegistry(repo Repository) FilterRegistry {
	return FilterRegistry{
		FilterAll: func(ctx context.Context, userID uuid.UUID, _ time.Time) ([]*Booking, error) {
			return repo.FindAllByBooker(ctx, userID)
		},
		FilterCurrent: func(ctx context.Context, userID uuid.UUID, now time.Time) ([]*Booking, error) {
			return repo.FindCurrentByBooker(ctx, userID, now)
		},
		FilterPast: func(ctx context.Context, userID uuid.UUID, now time.Time) ([]*Booking, error) {
			return repo.FindPastByBooker(ctx, userID, now)
		},
		FilterFuture: func(ctx context.Context, userID uuid.UUID, now time.Time) ([]*Booking, error) {
			return repo.FindFutureByBooker(ctx, userID, now)
		},
		FilterWaiting: func(ctx context.Context, userID uuid.UUID, _ time.Time) ([]*Booking, error) {
			return repo.FindByBookerAndStatus(ctx, userID, StatusWaiting)
		},
		FilterRejected: func(ctx context.Context, userID uuid.UUID, _ time.Time) ([]*Booking, error) {
			return repo.FindByBookerAndStatus(ctx, userID, StatusRejected)
		},
	}
}

// NewOwnerFilterRegistry builds the registry for queries scoped by the owner of
// the reserved items. Same predicate family as the booker registry, only the
// scoping key changes.
func NewOwnerFilterRegistry(repo Repository) FilterRegistry {
	return FilterRegistry{
		FilterAll: func(ctx context.Context, userID uuid.UUID, _ time.Time) ([]*Booking, error) {
			return repo.FindAllByOwner(ctx, userID)
		},
		FilterCurrent: func(ctx context.Context, userID uuid.UUID, now time.Time) ([]*Booking, error) {
			return repo.FindCurrentByOwner(ctx, userID, now)
		},
		FilterPast: func(ctx context.Context, userID uuid.UUID, now time.Time) ([]*Booking, error) {
			return repo.FindPastByOwner(ctx, userID, now)
		},
		FilterFuture: func(ctx context.Context, userID uuid.UUID, now time.Time) ([]*Booking, error) {
			return repo.FindFutureByOwner(ctx, userID, now)
		},
		FilterWaiting: func(ctx context.Context, userID uuid.UUID, _ time.Time) ([]*Booking, error) {
			return repo.FindByOwnerAndStatus(ctx, userID, StatusWaiting)
		},
		FilterRejected: func(ctx context.Context, userID uuid.UUID, _ time.Time) ([]*Booking, error) {
			return repo.FindByOwnerAndStatus(ctx, userID, StatusRejected)
		},
	}
}
