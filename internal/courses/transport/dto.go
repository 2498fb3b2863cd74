package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateCourseRequest struct {
	Title                string  `json:"title" validate:"required,max=100"`
	Description          string  `json:"description" validate:"required"`
	Weeks                int     `json:"weeks" validate:"required,gt=0"`
	Tuition              float64 `json:"tuition" validate:"required,gte=0"`
	MinimumSkill         string  `json:"minimumSkill" validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

type UpdateCourseRequest struct {
	Title                *string  `json:"title" validate:"omitempty,max=100"`
	Description          *string  `json:"description"`
	Weeks                *int     `json:"weeks" validate:"omitempty,gt=0"`
	Tuition              *float64 `json:"tuition" validate:"omitempty,gte=0"`
	MinimumSkill         *string  `json:"minimumSkill" validate:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}

type CourseResponse struct {
	ID                   uuid.UUID `json:"id"`
	BootcampID           uuid.UUID `json:"bootcampId"`
	OwnerID              uuid.UUID `json:"ownerId"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Weeks                int       `json:"weeks"`
	Tuition              float64   `json:"tuition"`
	MinimumSkill         string    `json:"minimumSkill"`
	ScholarshipAvailable bool      `json:"scholarshipAvailable"`
	CreatedAt            time.Time `json:"createdAt"`
}
