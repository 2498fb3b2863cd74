// Package ports defines the interfaces the courses domain needs from
// other bounded contexts. Adapters elsewhere satisfy them, so this
// domain never imports auth or bootcamps internals.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// BootcampInfo is the slice of a bootcamp the courses domain needs.
type BootcampInfo struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
}

// BootcampProvider verifies bootcamp existence and ownership before a
// course is attached.
type BootcampProvider interface {
	GetBootcampByID(ctx context.Context, id uuid.UUID) (BootcampInfo, error)
}

// UserInfo is the slice of a user the courses domain needs to enforce
// the created-course limit.
type UserInfo struct {
	ID                 uuid.UUID
	Role               string
	CourseCreatedCount int
	CourseCreatedLimit int
}

// UserProvider looks up publishers for limit checks.
type UserProvider interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (UserInfo, error)
}
