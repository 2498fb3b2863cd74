package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Bootcamp is a row in the bootcamps table.
type Bootcamp struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Name             string
	Slug             string
	Description      string
	Website          *string
	Phone            *string
	Email            *string
	Address          string
	FormattedAddress *string
	Street           *string
	City             *string
	State            *string
	Zipcode          *string
	Country          *string
	Latitude         *float64
	Longitude        *float64
	Careers          []string
	Housing          bool
	JobAssistance    bool
	JobGuarantee     bool
	AcceptGi         bool
	AverageRating    *float64
	AverageCost      *int
	Photo            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// GeoFields holds the geocoded location persisted with a bootcamp.
type GeoFields struct {
	FormattedAddress string
	Street           string
	City             string
	State            string
	Zipcode          string
	Country          string
	Latitude         float64
	Longitude        float64
}

// CreateParams contains parameters for creating a bootcamp.
type CreateParams struct {
	OwnerID       uuid.UUID
	Name          string
	Slug          string
	Description   string
	Website       *string
	Phone         *string
	Email         *string
	Address       string
	Careers       []string
	Housing       bool
	JobAssistance bool
	JobGuarantee  bool
	AcceptGi      bool
	Geo           GeoFields
}

// UpdateParams contains parameters for updating a bootcamp.
// Nil fields are left untouched.
type UpdateParams struct {
	Name          *string
	Slug          *string
	Description   *string
	Website       *string
	Phone         *string
	Email         *string
	Careers       []string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGi      *bool
}

// Repository provides persistence for bootcamps.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Bootcamp, error)
	GetByID(ctx context.Context, id uuid.UUID) (Bootcamp, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Bootcamp, error)
	UpdatePhoto(ctx context.Context, id uuid.UUID, filename string) error

	// DeleteCascade removes the bootcamp with its courses and reviews in
	// one transaction. It returns the distinct owners of the deleted
	// courses so their created-course counters can be reconciled.
	DeleteCascade(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)

	// WithinRadius returns bootcamps whose coordinates fall inside a
	// spherical cap of the given radius (in radians) around a center.
	WithinRadius(ctx context.Context, lat, lon, radians float64) ([]Bootcamp, error)
}
