// Package transport holds the request and response types for the
// administrative users HTTP API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest is the payload for creating a user as an admin.
// Unlike self-registration, any role may be assigned.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher admin"`
}

// UpdateUserRequest is the payload for updating a user. All fields are
// optional.
type UpdateUserRequest struct {
	Name               *string `json:"name" validate:"omitempty,max=100"`
	Email              *string `json:"email" validate:"omitempty,email"`
	Role               *string `json:"role" validate:"omitempty,oneof=user publisher admin"`
	CourseCreatedLimit *int    `json:"courseCreatedLimit" validate:"omitempty,gte=0"`
}

// UserResponse is the administrative API representation of a user.
type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	CourseCreatedCount int       `json:"courseCreatedCount"`
	CourseCreatedLimit int       `json:"courseCreatedLimit"`
	CreatedAt          time.Time `json:"createdAt"`
}
