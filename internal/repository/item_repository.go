package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	itemDomain "github.com/gearshare/service-rental/internal/domain/item"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	Available   bool      `gorm:"not null"`
	Version     int64     `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null"`
}

func (ItemModel) TableName() string { return "items" }

// GormItemRepository implements item.Repository using GORM.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("item", id.String())
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return toDomainItem(&model), nil
}

func (r *GormItemRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*itemDomain.Item, error) {
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by owner: %w", err)
	}
	return toDomainItems(models), nil
}

// SearchAvailable finds available items matching the text in name or description.
func (r *GormItemRepository) SearchAvailable(ctx context.Context, text string) ([]*itemDomain.Item, error) {
	pattern := "%" + text + "%"
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("available = ? AND (name ILIKE ? OR description ILIKE ?)", true, pattern, pattern).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return toDomainItems(models), nil
}

func (r *GormItemRepository) Save(ctx context.Context, it *itemDomain.Item) error {
	if err := r.db.WithContext(ctx).Create(toItemModel(it)).Error; err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}

// Update persists changes with optimistic locking on the version column.
func (r *GormItemRepository) Update(ctx context.Context, it *itemDomain.Item) error {
	model := toItemModel(it)
	previousVersion := it.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"available":   model.Available,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("item was modified by another transaction")
	}
	return nil
}

func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ItemModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// --- Conversions ---

func toItemModel(it *itemDomain.Item) *ItemModel {
	return &ItemModel{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		Version:     it.Version(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}

func toDomainItem(m *ItemModel) *itemDomain.Item {
	return itemDomain.Reconstruct(
		m.ID, m.OwnerID,
		m.Name, m.Description,
		m.Available,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toDomainItems(models []ItemModel) []*itemDomain.Item {
	items := make([]*itemDomain.Item, len(models))
	for i, m := range models {
		items[i] = toDomainItem(&m)
	}
	return items
}
