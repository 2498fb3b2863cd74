// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"bootcamp_directory_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserRegistered is published when a new user successfully registers.
type UserRegistered struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

func (e UserRegistered) EventName() string { return "auth.user.registered" }

// PasswordResetRequested is published when a user requests a password reset.
type PasswordResetRequested struct {
	BaseEvent
	UserID     uuid.UUID `json:"userId"`
	Email      string    `json:"email"`
	ResetToken string    `json:"resetToken"`
	ResetURL   string    `json:"resetUrl"`
}

func (e PasswordResetRequested) EventName() string { return "auth.password.reset_requested" }

// =============================================================================
// Course Domain Events
// =============================================================================

// CourseCreated is published after a course is persisted. It drives the
// publisher's created-course counter and the bootcamp's average cost.
type CourseCreated struct {
	BaseEvent
	CourseID   uuid.UUID `json:"courseId"`
	BootcampID uuid.UUID `json:"bootcampId"`
	OwnerID    uuid.UUID `json:"ownerId"`
	Tuition    float64   `json:"tuition"`
}

func (e CourseCreated) EventName() string { return "courses.created" }

// CourseUpdated is published after a course's tuition may have changed.
type CourseUpdated struct {
	BaseEvent
	CourseID   uuid.UUID `json:"courseId"`
	BootcampID uuid.UUID `json:"bootcampId"`
}

func (e CourseUpdated) EventName() string { return "courses.updated" }

// CourseDeleted is published after a course is removed. The owner's
// counter decrements and the bootcamp's average cost is recomputed.
type CourseDeleted struct {
	BaseEvent
	CourseID   uuid.UUID `json:"courseId"`
	BootcampID uuid.UUID `json:"bootcampId"`
	OwnerID    uuid.UUID `json:"ownerId"`
}

func (e CourseDeleted) EventName() string { return "courses.deleted" }

// =============================================================================
// Review Domain Events
// =============================================================================

// ReviewWritten is published after a review is created or its rating
// updated. The bootcamp's average rating is recomputed.
type ReviewWritten struct {
	BaseEvent
	ReviewID   uuid.UUID `json:"reviewId"`
	BootcampID uuid.UUID `json:"bootcampId"`
	Rating     int       `json:"rating"`
}

func (e ReviewWritten) EventName() string { return "reviews.written" }

// ReviewDeleted is published after a review is removed.
type ReviewDeleted struct {
	BaseEvent
	ReviewID   uuid.UUID `json:"reviewId"`
	BootcampID uuid.UUID `json:"bootcampId"`
}

func (e ReviewDeleted) EventName() string { return "reviews.deleted" }

// =============================================================================
// Bootcamp Domain Events
// =============================================================================

// BootcampDeleted is published after a bootcamp and its dependents are
// removed in one transaction. Counters for every affected publisher are
// reconciled from what remains.
type BootcampDeleted struct {
	BaseEvent
	BootcampID     uuid.UUID   `json:"bootcampId"`
	OwnerID        uuid.UUID   `json:"ownerId"`
	CourseOwnerIDs []uuid.UUID `json:"courseOwnerIds"`
}

func (e BootcampDeleted) EventName() string { return "bootcamps.deleted" }

// PhotoUploaded is published after a bootcamp photo is stored on disk
// and its filename persisted.
type PhotoUploaded struct {
	BaseEvent
	BootcampID uuid.UUID `json:"bootcampId"`
	Filename   string    `json:"filename"`
}

func (e PhotoUploaded) EventName() string { return "bootcamps.photo.uploaded" }
