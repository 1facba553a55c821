package application

import (
	"context"
	"time"

	bookingDomain "github.com/gearshare/service-rental/internal/domain/booking"
	itemDomain "github.com/gearshare/service-rental/internal/domain/item"
	userDomain "github.com/gearshare/service-rental/internal/domain/user"
	"github.com/gearshare/service-rental/internal/kafka"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, booking *bookingDomain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatusFromWaiting(ctx context.Context, id uuid.UUID, target bookingDomain.Status) (bool, error) {
	args := m.Called(ctx, id, target)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) FindAllByBooker(ctx context.Context, bookerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, bookerID)
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindCurrentByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, bookerID, now)
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindPastByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, bookerID, now)
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindFutureByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, bookerID, now)
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByBookerAndStatus(ctx context.Context, bookerID uuid.UUID, status bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, bookerID, status)
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindCurrentByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, ownerID, now)
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindPastByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, ownerID, now)
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, ownerID, now)
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindLastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindNextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) HasFinishedBooking(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, itemID, bookerID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]*bookingDomain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]*userDomain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*itemDomain.Item), args.Error(1)
}

func (m *MockItemRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*itemDomain.Item, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]*itemDomain.Item), args.Error(1)
}

func (m *MockItemRepository) SearchAvailable(ctx context.Context, text string) ([]*itemDomain.Item, error) {
	args := m.Called(ctx, text)
	return args.Get(0).([]*itemDomain.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, it *itemDomain.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, it *itemDomain.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Save(ctx context.Context, c *itemDomain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*itemDomain.Comment, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]*itemDomain.Comment), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishEvent(ctx context.Context, topic, key string, event kafka.CloudEvent) error {
	args := m.Called(ctx, topic, key, event)
	return args.Error(0)
}

type MockSearchCache struct {
	mock.Mock
}

func (m *MockSearchCache) GetSearch(ctx context.Context, text string) ([]*itemDomain.Item, bool, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*itemDomain.Item), args.Bool(1), args.Error(2)
}

func (m *MockSearchCache) SetSearch(ctx context.Context, text string, items []*itemDomain.Item) error {
	args := m.Called(ctx, text, items)
	return args.Error(0)
}
