// Package transport holds the request and response types for the
// reviews HTTP API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateReviewRequest is the payload for submitting a review.
type CreateReviewRequest struct {
	Title  string `json:"title" validate:"required,max=100"`
	Body   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,gte=1,lte=10"`
}

// UpdateReviewRequest is the payload for updating a review. All fields
// are optional.
type UpdateReviewRequest struct {
	Title  *string `json:"title" validate:"omitempty,max=100"`
	Body   *string `json:"text" validate:"omitempty"`
	Rating *int    `json:"rating" validate:"omitempty,gte=1,lte=10"`
}

// ReviewResponse is the API representation of a review.
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	BootcampID uuid.UUID `json:"bootcampId"`
	UserID     uuid.UUID `json:"userId"`
	Title      string    `json:"title"`
	Body       string    `json:"text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
}
