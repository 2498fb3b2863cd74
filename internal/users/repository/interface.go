package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is the administrative view of a row in the users table.
type User struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	Role               string
	CourseCreatedCount int
	CourseCreatedLimit int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CreateParams contains parameters for creating a user.
type CreateParams struct {
	Name         string
	Email        string
	Role         string
	PasswordHash string
}

// UpdateParams contains parameters for updating a user. Nil fields are
// left untouched.
type UpdateParams struct {
	Name               *string
	Email              *string
	Role               *string
	CourseCreatedLimit *int
}

// Repository provides administrative persistence for users.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
