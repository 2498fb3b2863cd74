// Package service implements the administrative user management logic.
package service

import (
	"context"
	"net/url"

	"bootcamp_directory_backend/internal/auth/password"
	"bootcamp_directory_backend/internal/listing"
	"bootcamp_directory_backend/internal/users/repository"
	"bootcamp_directory_backend/internal/users/transport"
	"bootcamp_directory_backend/platform/logger"

	"github.com/google/uuid"
)

const defaultRole = "user"

// Service provides admin-only user management. Route-level role checks
// keep it behind the admin role.
type Service struct {
	repo repository.Repository
	db   listing.Querier
	log  *logger.Logger
}

func New(repo repository.Repository, db listing.Querier, log *logger.Logger) *Service {
	return &Service{repo: repo, db: db, log: log}
}

// List runs an advanced-results query over all users.
func (s *Service) List(ctx context.Context, values url.Values) (*listing.Result, error) {
	params, err := listing.Parse(values, repository.ListFields)
	if err != nil {
		return nil, err
	}
	return listing.Execute(ctx, s.db, repository.ListQuery, params)
}

// Get retrieves a single user.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.UserResponse{}, err
	}
	return toResponse(user), nil
}

// Create adds a user with any role.
func (s *Service) Create(ctx context.Context, req transport.CreateUserRequest) (transport.UserResponse, error) {
	role := req.Role
	if role == "" {
		role = defaultRole
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.UserResponse{}, err
	}

	user, err := s.repo.Create(ctx, repository.CreateParams{
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		return transport.UserResponse{}, err
	}
	return toResponse(user), nil
}

// Update modifies a user's details, role or course limit.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateUserRequest) (transport.UserResponse, error) {
	user, err := s.repo.Update(ctx, id, repository.UpdateParams{
		Name:               req.Name,
		Email:              req.Email,
		Role:               req.Role,
		CourseCreatedLimit: req.CourseCreatedLimit,
	})
	if err != nil {
		return transport.UserResponse{}, err
	}
	return toResponse(user), nil
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func toResponse(u repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		CourseCreatedCount: u.CourseCreatedCount,
		CourseCreatedLimit: u.CourseCreatedLimit,
		CreatedAt:          u.CreatedAt,
	}
}
