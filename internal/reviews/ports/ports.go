// Package ports defines the interfaces the reviews domain needs from
// other bounded contexts.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// BootcampInfo is the slice of a bootcamp the reviews domain needs.
type BootcampInfo struct {
	ID   uuid.UUID
	Name string
}

// BootcampProvider verifies a bootcamp exists before a review is
// attached to it.
type BootcampProvider interface {
	GetBootcampByID(ctx context.Context, id uuid.UUID) (BootcampInfo, error)
}
