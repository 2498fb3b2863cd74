package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Review is a row in the reviews table.
type Review struct {
	ID         uuid.UUID
	BootcampID uuid.UUID
	UserID     uuid.UUID
	Title      string
	Body       string
	Rating     int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateParams contains parameters for creating a review.
type CreateParams struct {
	BootcampID uuid.UUID
	UserID     uuid.UUID
	Title      string
	Body       string
	Rating     int
}

// UpdateParams contains parameters for updating a review.
// Nil fields are left untouched.
type UpdateParams struct {
	Title  *string
	Body   *string
	Rating *int
}

// Repository provides persistence for reviews.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (Review, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
