package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Course is a row in the courses table.
type Course struct {
	ID                   uuid.UUID
	BootcampID           uuid.UUID
	OwnerID              uuid.UUID
	Title                string
	Description          string
	Weeks                int
	Tuition              float64
	MinimumSkill         string
	ScholarshipAvailable bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CreateParams contains parameters for creating a course.
type CreateParams struct {
	BootcampID           uuid.UUID
	OwnerID              uuid.UUID
	Title                string
	Description          string
	Weeks                int
	Tuition              float64
	MinimumSkill         string
	ScholarshipAvailable bool
}

// UpdateParams contains parameters for updating a course.
// Nil fields are left untouched.
type UpdateParams struct {
	Title                *string
	Description          *string
	Weeks                *int
	Tuition              *float64
	MinimumSkill         *string
	ScholarshipAvailable *bool
}

// Repository provides persistence for courses.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (Course, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
