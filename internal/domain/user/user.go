package user

import (
	"strings"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/google/uuid"
)

// User is the aggregate root for a registered account. Email is unique across
// all users; the repository enforces it at the store and the service checks it
// before writes to produce a typed conflict.
type User struct {
	id    uuid.UUID
	name  string
	email string

	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new user with validated fields.
func NewUser(name, email string) (*User, error) {
	if name == "" {
		return nil, domain.NewInvalidInputError("user name is required")
	}
	if !isValidEmail(email) {
		return nil, domain.NewInvalidInputError("a valid email is required")
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Update applies partial updates; empty fields are left unchanged.
func (u *User) Update(name, email string) error {
	if name != "" {
		u.name = name
	}
	if email != "" {
		if !isValidEmail(email) {
			return domain.NewInvalidInputError("a valid email is required")
		}
		u.email = email
	}
	u.updatedAt = time.Now().UTC()
	return nil
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
