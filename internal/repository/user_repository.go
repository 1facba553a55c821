package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	userDomain "github.com/gearshare/service-rental/internal/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null"`
}

func (UserModel) TableName() string { return "users" }

// GormUserRepository implements user.Repository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", id.String())
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return toDomainUser(&model), nil
}

func (r *GormUserRepository) FindAll(ctx context.Context) ([]*userDomain.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]*userDomain.User, len(models))
	for i, m := range models {
		users[i] = toDomainUser(&m)
	}
	return users, nil
}

// FindByEmail returns nil when no user holds the email.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return toDomainUser(&model), nil
}

func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	if err := r.db.WithContext(ctx).Create(toUserModel(u)).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"email":      model.Email,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("user", model.ID.String())
	}
	return nil
}

func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// --- Conversions ---

func toUserModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func toDomainUser(m *UserModel) *userDomain.User {
	return userDomain.Reconstruct(m.ID, m.Name, m.Email, m.CreatedAt, m.UpdatedAt)
}
