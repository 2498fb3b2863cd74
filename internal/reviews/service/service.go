// Package service implements the business logic for reviews.
package service

import (
	"context"
	"fmt"
	"net/url"

	"bootcamp_directory_backend/internal/events"
	"bootcamp_directory_backend/internal/listing"
	"bootcamp_directory_backend/internal/reviews/ports"
	"bootcamp_directory_backend/internal/reviews/repository"
	"bootcamp_directory_backend/internal/reviews/transport"
	"bootcamp_directory_backend/platform/apperr"
	"bootcamp_directory_backend/platform/logger"

	"github.com/google/uuid"
)

const roleAdmin = "admin"

// Service provides business logic for reviews.
type Service struct {
	repo      repository.Repository
	db        listing.Querier
	bootcamps ports.BootcampProvider
	bus       events.Bus
	log       *logger.Logger
}

func New(repo repository.Repository, db listing.Querier, bootcamps ports.BootcampProvider, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, db: db, bootcamps: bootcamps, bus: bus, log: log}
}

// List runs an advanced-results query over all reviews.
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
	scope := listing.NewCondition("r.bootcamp_id = $%d", bootcampID)
	return listing.Execute(ctx, s.db, repository.ListQuery, params, scope)
}

// Get retrieves a single review.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.ReviewResponse, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ReviewResponse{}, err
	}
	return toResponse(review), nil
}

// Create attaches a review to a bootcamp. A user may review each
// bootcamp at most once.
func (s *Service) Create(ctx context.Context, callerID uuid.UUID, bootcampID uuid.UUID, req transport.CreateReviewRequest) (transport.ReviewResponse, error) {
	if _, err := s.bootcamps.GetBootcampByID(ctx, bootcampID); err != nil {
		return transport.ReviewResponse{}, err
	}

	review, err := s.repo.Create(ctx, repository.CreateParams{
		BootcampID: bootcampID,
		UserID:     callerID,
		Title:      req.Title,
		Body:       req.Body,
		Rating:     req.Rating,
	})
	if err != nil {
		return transport.ReviewResponse{}, err
	}

	s.bus.Publish(ctx, events.ReviewWritten{
		BaseEvent:  events.NewBaseEvent(),
		ReviewID:   review.ID,
		BootcampID: review.BootcampID,
		Rating:     review.Rating,
	})
	return toResponse(review), nil
}

// Update modifies a review written by the caller.
func (s *Service) Update(ctx context.Context, callerID uuid.UUID, role string, id uuid.UUID, req transport.UpdateReviewRequest) (transport.ReviewResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ReviewResponse{}, err
	}
	if existing.UserID != callerID && role != roleAdmin {
		return transport.ReviewResponse{}, apperr.Forbidden(
			fmt.Sprintf("user %s is not authorized to update review %s", callerID, id))
	}

	review, err := s.repo.Update(ctx, id, repository.UpdateParams{
		Title:  req.Title,
		Body:   req.Body,
		Rating: req.Rating,
	})
	if err != nil {
		return transport.ReviewResponse{}, err
	}

	s.bus.Publish(ctx, events.ReviewWritten{
		BaseEvent:  events.NewBaseEvent(),
		ReviewID:   review.ID,
		BootcampID: review.BootcampID,
		Rating:     review.Rating,
	})
	return toResponse(review), nil
}

// Delete removes a review written by the caller.
func (s *Service) Delete(ctx context.Context, callerID uuid.UUID, role string, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != callerID && role != roleAdmin {
		return apperr.Forbidden(
			fmt.Sprintf("user %s is not authorized to delete review %s", callerID, id))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.ReviewDeleted{
		BaseEvent:  events.NewBaseEvent(),
		ReviewID:   existing.ID,
		BootcampID: existing.BootcampID,
	})
	return nil
}

func toResponse(r repository.Review) transport.ReviewResponse {
	return transport.ReviewResponse{
		ID:         r.ID,
		BootcampID: r.BootcampID,
		UserID:     r.UserID,
		Title:      r.Title,
		Body:       r.Body,
		Rating:     r.Rating,
		CreatedAt:  r.CreatedAt,
	}
}
