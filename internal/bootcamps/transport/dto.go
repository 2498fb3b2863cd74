package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateBootcampRequest struct {
	Name        string   `json:"name" validate:"required,max=50"`
	Description string   `json:"description" validate:"required,max=500"`
	Website     *string  `json:"website" validate:"omitempty,url"`
	Phone       *string  `json:"phone" validate:"omitempty,max=20"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Address     string   `json:"address" validate:"required"`
	Careers     []string `json:"careers" validate:"required,min=1,dive,oneof='Web Development' 'Mobile Development' 'UI/UX' 'Data Science' Business Other"`
	Housing     bool     `json:"housing"`
	JobAssist   bool     `json:"jobAssistance"`
	JobGuar     bool     `json:"jobGuarantee"`
	AcceptGi    bool     `json:"acceptGi"`
}

type UpdateBootcampRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=50"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Website     *string  `json:"website" validate:"omitempty,url"`
	Phone       *string  `json:"phone" validate:"omitempty,max=20"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Careers     []string `json:"careers" validate:"omitempty,min=1,dive,oneof='Web Development' 'Mobile Development' 'UI/UX' 'Data Science' Business Other"`
	Housing     *bool    `json:"housing"`
	JobAssist   *bool    `json:"jobAssistance"`
	JobGuar     *bool    `json:"jobGuarantee"`
	AcceptGi    *bool    `json:"acceptGi"`
}

// LocationResponse is the geocoded location block of a bootcamp.
type LocationResponse struct {
	FormattedAddress *string  `json:"formattedAddress"`
	Street           *string  `json:"street"`
	City             *string  `json:"city"`
	State            *string  `json:"state"`
	Zipcode          *string  `json:"zipcode"`
	Country          *string  `json:"country"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
}

type BootcampResponse struct {
	ID            uuid.UUID        `json:"id"`
	OwnerID       uuid.UUID        `json:"ownerId"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description"`
	Website       *string          `json:"website"`
	Phone         *string          `json:"phone"`
	Email         *string          `json:"email"`
	Address       string           `json:"address"`
	Location      LocationResponse `json:"location"`
	Careers       []string         `json:"careers"`
	Housing       bool             `json:"housing"`
	JobAssistance bool             `json:"jobAssistance"`
	JobGuarantee  bool             `json:"jobGuarantee"`
	AcceptGi      bool             `json:"acceptGi"`
	AverageRating *float64         `json:"averageRating"`
	AverageCost   *int             `json:"averageCost"`
	Photo         string           `json:"photo"`
	CreatedAt     time.Time        `json:"createdAt"`
}
