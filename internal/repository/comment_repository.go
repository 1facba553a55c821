package repository

import (
	"context"
	"fmt"
	"time"

	itemDomain "github.com/gearshare/service-rental/internal/domain/item"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID     uuid.UUID `gorm:"type:uuid;index;not null"`
	AuthorName string    `gorm:"type:varchar(255);not null"`
	Text       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null"`
}

func (CommentModel) TableName() string { return "comments" }

// GormCommentRepository implements item.CommentRepository using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Save(ctx context.Context, c *itemDomain.Comment) error {
	model := &CommentModel{
		ID:         c.ID(),
		ItemID:     c.ItemID(),
		AuthorName: c.AuthorName(),
		Text:       c.Text(),
		CreatedAt:  c.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

func (r *GormCommentRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*itemDomain.Comment, error) {
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	comments := make([]*itemDomain.Comment, len(models))
	for i, m := range models {
		comments[i] = itemDomain.ReconstructComment(m.ID, m.ItemID, m.AuthorName, m.Text, m.CreatedAt)
	}
	return comments, nil
}
