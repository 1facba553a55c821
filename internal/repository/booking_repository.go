package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	bookingDomain "github.com/gearshare/service-rental/internal/domain/booking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;index;not null"`
	BookerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	StartDate time.Time `gorm:"type:timestamptz;not null;index"`
	EndDate   time.Time `gorm:"type:timestamptz;not null"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	if err := r.db.WithContext(ctx).Create(toBookingModel(bk)).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// UpdateStatusFromWaiting performs a single conditional update so two
// concurrent decisions on the same booking cannot both win: only the write
// that still sees WAITING takes effect.
func (r *GormBookingRepository) UpdateStatusFromWaiting(ctx context.Context, id uuid.UUID, target bookingDomain.Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, string(bookingDomain.StatusWaiting)).
		Updates(map[string]interface{}{
			"status":     string(target),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// --- Booker-scoped filter queries ---

func (r *GormBookingRepository) FindAllByBooker(ctx context.Context, bookerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.bookerScope(ctx, bookerID))
}

func (r *GormBookingRepository) FindCurrentByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.bookerScope(ctx, bookerID).
		Where("start_date < ? AND end_date > ?", now, now))
}

func (r *GormBookingRepository) FindPastByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.bookerScope(ctx, bookerID).
		Where("end_date < ?", now))
}

func (r *GormBookingRepository) FindFutureByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.bookerScope(ctx, bookerID).
		Where("start_date > ?", now))
}

func (r *GormBookingRepository) FindByBookerAndStatus(ctx context.Context, bookerID uuid.UUID, status bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.bookerScope(ctx, bookerID).
		Where("status = ?", string(status)))
}

// --- Owner-scoped filter queries (join through items) ---

func (r *GormBookingRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.ownerScope(ctx, ownerID))
}

func (r *GormBookingRepository) FindCurrentByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.ownerScope(ctx, ownerID).
		Where("bookings.start_date < ? AND bookings.end_date > ?", now, now))
}

func (r *GormBookingRepository) FindPastByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.ownerScope(ctx, ownerID).
		Where("bookings.end_date < ?", now))
}

func (r *GormBookingRepository) FindFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.ownerScope(ctx, ownerID).
		Where("bookings.start_date > ?", now))
}

func (r *GormBookingRepository) FindByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.ownerScope(ctx, ownerID).
		Where("bookings.status = ?", string(status)))
}

// --- Item-centric queries ---

// FindLastForItem returns the most recently ended booking that started before now.
func (r *GormBookingRepository) FindLastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND start_date < ? AND end_date < ?", itemID, now, now).
		Order("end_date DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last booking for item: %w", err)
	}
	return toDomainBooking(&model)
}

// FindNextForItem returns the next booking starting after now.
func (r *GormBookingRepository) FindNextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND start_date > ?", itemID, now).
		Order("start_date ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find next booking for item: %w", err)
	}
	return toDomainBooking(&model)
}

// HasFinishedBooking reports whether the user has a booking on the item that ended before now.
func (r *GormBookingRepository) HasFinishedBooking(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND end_date < ?", itemID, bookerID, now).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}

// --- Admin queries ---

// ListAll retrieves all bookings with pagination.
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	offset := (page - 1) * limit
	bookings, err := r.findBookings(ctx, r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Order("start_date DESC").
		Offset(offset).
		Limit(limit))
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// --- Scopes and helpers ---

func (r *GormBookingRepository) bookerScope(ctx context.Context, bookerID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("booker_id = ?", bookerID).
		Order("start_date DESC")
}

func (r *GormBookingRepository) ownerScope(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Order("bookings.start_date DESC")
}

func (r *GormBookingRepository) findBookings(ctx context.Context, query *gorm.DB) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

// --- Conversions ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		StartDate: bk.Start(),
		EndDate:   bk.End(),
		Status:    string(bk.Status()),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(
		m.ID, m.ItemID, m.BookerID,
		m.StartDate, m.EndDate,
		status,
		m.CreatedAt, m.UpdatedAt,
	), nil
}
