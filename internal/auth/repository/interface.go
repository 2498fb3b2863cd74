package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is a row in the users table. PasswordHash and the reset token
// columns never leave the auth and users bounded contexts.
type User struct {
	ID                  uuid.UUID
	Name                string
	Email               string
	Role                string
	PasswordHash        string
	ResetPasswordToken  *string
	ResetPasswordExpire *time.Time
	CourseCreatedCount  int
	CourseCreatedLimit  int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CreateParams contains parameters for creating a user.
type CreateParams struct {
	Name         string
	Email        string
	Role         string
	PasswordHash string
}

// UpdateDetailsParams contains the self-service profile fields a user
// may change. Nil fields are left untouched.
type UpdateDetailsParams struct {
	Name  *string
	Email *string
}

// Repository provides persistence for the auth bounded context.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, params UpdateDetailsParams) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// SetResetToken stores the hash of an issued reset token with its
	// expiry. A new request overwrites any previous token.
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expire time.Time) error
	// GetByResetToken finds the user holding an unexpired reset token hash.
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (User, error)
	ClearResetToken(ctx context.Context, id uuid.UUID) error
}
