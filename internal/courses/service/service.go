package service

import (
	"context"
	"fmt"
	"net/url"

	"bootcamp_directory_backend/internal/courses/ports"
	"bootcamp_directory_backend/internal/courses/repository"
	"bootcamp_directory_backend/internal/courses/transport"
	"bootcamp_directory_backend/internal/events"
	"bootcamp_directory_backend/internal/listing"
	"bootcamp_directory_backend/platform/apperr"
	"bootcamp_directory_backend/platform/logger"

	"github.com/google/uuid"
)

const roleAdmin = "admin"

// Service provides business logic for courses.
type Service struct {
	repo      repository.Repository
	db        listing.Querier
	bootcamps ports.BootcampProvider
	users     ports.UserProvider
	bus       events.Bus
	log       *logger.Logger
}

func New(repo repository.Repository, db listing.Querier, bootcamps ports.BootcampProvider, users ports.UserProvider, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, db: db, bootcamps: bootcamps, users: users, bus: bus, log: log}
}

// List runs an advanced-results query over all courses.
func (s *Service) List(ctx context.Context, values url.Values) (*listing.Result, error) {
	params, err := listing.Parse(values, repository.ListFields)
	if err != nil {
		return nil, err
	}
	return listing.Execute(ctx, s.db, repository.ListQuery, params)
}

// ListByBootcamp runs an advanced-results query scoped to one bootcamp.
func (s *Service) ListByBootcamp(ctx context.Context, bootcampID uuid.UUID, values url.Values) (*listing.Result, error) {
	params, err := listing.Parse(values, repository.ListFields)
	if err != nil {
		return nil, err
	}
	scope := listing.NewCondition("c.bootcamp_id = $%d", bootcampID)
	return listing.Execute(ctx, s.db, repository.ListQuery, params, scope)
}

// Get retrieves a single course.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.CourseResponse, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CourseResponse{}, err
	}
	return toResponse(course), nil
}

// Create attaches a course to a bootcamp. The caller must own the
// bootcamp and stay under their created-course limit; admins are
// exempt from both.
func (s *Service) Create(ctx context.Context, callerID uuid.UUID, role string, bootcampID uuid.UUID, req transport.CreateCourseRequest) (transport.CourseResponse, error) {
	bootcamp, err := s.bootcamps.GetBootcampByID(ctx, bootcampID)
	if err != nil {
		return transport.CourseResponse{}, err
	}

	if bootcamp.OwnerID != callerID && role != roleAdmin {
		return transport.CourseResponse{}, apperr.Forbidden(
			fmt.Sprintf("user %s is not authorized to add a course to bootcamp %s", callerID, bootcampID))
	}

	if role != roleAdmin {
		user, err := s.users.GetUserByID(ctx, callerID)
		if err != nil {
			return transport.CourseResponse{}, err
		}
		if user.CourseCreatedCount >= user.CourseCreatedLimit {
			return transport.CourseResponse{}, apperr.Forbidden(
				fmt.Sprintf("the user with ID %s has reached the maximum number of courses", callerID))
		}
	}

	course, err := s.repo.Create(ctx, repository.CreateParams{
		BootcampID:           bootcampID,
		OwnerID:              callerID,
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		return transport.CourseResponse{}, err
	}

	s.bus.Publish(ctx, events.CourseCreated{
		BaseEvent:  events.NewBaseEvent(),
		CourseID:   course.ID,
		BootcampID: course.BootcampID,
		OwnerID:    course.OwnerID,
		Tuition:    course.Tuition,
	})
	return toResponse(course), nil
}

// Update modifies a course owned by the caller.
func (s *Service) Update(ctx context.Context, callerID uuid.UUID, role string, id uuid.UUID, req transport.UpdateCourseRequest) (transport.CourseResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CourseResponse{}, err
	}
	if existing.OwnerID != callerID && role != roleAdmin {
		return transport.CourseResponse{}, apperr.Forbidden(
			fmt.Sprintf("user %s is not authorized to update course %s", callerID, id))
	}

	course, err := s.repo.Update(ctx, id, repository.UpdateParams{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		return transport.CourseResponse{}, err
	}

	s.bus.Publish(ctx, events.CourseUpdated{
		BaseEvent:  events.NewBaseEvent(),
		CourseID:   course.ID,
		BootcampID: course.BootcampID,
	})
	return toResponse(course), nil
}

// Delete removes a course owned by the caller.
func (s *Service) Delete(ctx context.Context, callerID uuid.UUID, role string, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != callerID && role != roleAdmin {
		return apperr.Forbidden(
			fmt.Sprintf("user %s is not authorized to delete course %s", callerID, id))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.CourseDeleted{
		BaseEvent:  events.NewBaseEvent(),
		CourseID:   existing.ID,
		BootcampID: existing.BootcampID,
		OwnerID:    existing.OwnerID,
	})
	return nil
}

func toResponse(c repository.Course) transport.CourseResponse {
	return transport.CourseResponse{
		ID:                   c.ID,
		BootcampID:           c.BootcampID,
		OwnerID:              c.OwnerID,
		Title:                c.Title,
		Description:          c.Description,
		Weeks:                c.Weeks,
		Tuition:              c.Tuition,
		MinimumSkill:         c.MinimumSkill,
		ScholarshipAvailable: c.ScholarshipAvailable,
		CreatedAt:            c.CreatedAt,
	}
}
