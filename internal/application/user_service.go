package application

import (
	"context"
	"fmt"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	userDomain "github.com/gearshare/service-rental/internal/domain/user"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateUserRequest holds the data needed to register a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UpdateUserRequest holds partial updates to a user.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserDTO is the response representation of a user.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService implements use cases for account management.
type UserService struct {
	users  userDomain.Repository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userDomain.Repository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// CreateUser registers a new user; the email must not already be taken.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	u, err := userDomain.NewUser(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, u.Email(), uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user created", zap.String("user_id", u.ID().String()))
	result := toUserDTO(u)
	return &result, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	return dtos, nil
}

// UpdateUser applies a partial update; a new email must not belong to someone else.
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != u.Email() {
		if err := s.ensureEmailFree(ctx, req.Email, userID); err != nil {
			return nil, err
		}
	}
	if err := u.Update(req.Name, req.Email); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	result := toUserDTO(u)
	return &result, nil
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, exceptID uuid.UUID) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID() != exceptID {
		return domain.NewConflictError(fmt.Sprintf("email %s is already in use", email))
	}
	return nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}
