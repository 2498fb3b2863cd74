package service

import (
	"context"
	"testing"
	"time"

	"bootcamp_directory_backend/internal/auth/password"
	"bootcamp_directory_backend/internal/users/repository"
	"bootcamp_directory_backend/internal/users/transport"
	"bootcamp_directory_backend/platform/apperr"
	"bootcamp_directory_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	users  map[uuid.UUID]repository.User
	hashes map[uuid.UUID]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:  make(map[uuid.UUID]repository.User),
		hashes: make(map[uuid.UUID]string),
	}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.User, error) {
	for _, u := range f.users {
		if u.Email == params.Email {
			return repository.User{}, apperr.Conflict("email already registered")
		}
	}
	u := repository.User{
		ID:                 uuid.New(),
		Name:               params.Name,
		Email:              params.Email,
		Role:               params.Role,
		CourseCreatedLimit: 5,
		CreatedAt:          time.Now(),
	}
	f.users[u.ID] = u
	f.hashes[u.ID] = params.PasswordHash
	return u, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, params repository.UpdateParams) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	if params.Role != nil {
		u.Role = *params.Role
	}
	if params.CourseCreatedLimit != nil {
		u.CourseCreatedLimit = *params.CourseCreatedLimit
	}
	f.users[id] = u
	return u, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return apperr.NotFound("user not found")
	}
	delete(f.users, id)
	return nil
}

func TestCreate_DefaultsRoleAndHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, nil, logger.New("development"))

	created, err := svc.Create(context.Background(), transport.CreateUserRequest{
		Name: "John Doe", Email: "john@example.com", Password: "123456",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != "user" {
		t.Fatalf("role = %q, want user", created.Role)
	}

	hash := repo.hashes[created.ID]
	if hash == "123456" || hash == "" {
		t.Fatal("password stored without hashing")
	}
	if err := password.Compare(hash, "123456"); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestCreate_AdminRoleAllowed(t *testing.T) {
	svc := New(newFakeRepo(), nil, logger.New("development"))

	created, err := svc.Create(context.Background(), transport.CreateUserRequest{
		Name: "Root", Email: "root@example.com", Password: "123456", Role: "admin",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != "admin" {
		t.Fatalf("role = %q, want admin", created.Role)
	}
}

func TestUpdate_ChangesRoleAndLimit(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, nil, logger.New("development"))

	created, err := svc.Create(context.Background(), transport.CreateUserRequest{
		Name: "Jane", Email: "jane@example.com", Password: "123456",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	role := "publisher"
	limit := 10
	updated, err := svc.Update(context.Background(), created.ID, transport.UpdateUserRequest{
		Role: &role, CourseCreatedLimit: &limit,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != "publisher" || updated.CourseCreatedLimit != 10 {
		t.Fatalf("updated = %+v", updated)
	}
}
