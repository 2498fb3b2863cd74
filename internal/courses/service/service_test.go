package service

import (
	"context"
	"testing"
	"time"

	"bootcamp_directory_backend/internal/courses/ports"
	"bootcamp_directory_backend/internal/courses/repository"
	"bootcamp_directory_backend/internal/courses/transport"
	"bootcamp_directory_backend/internal/events"
	"bootcamp_directory_backend/platform/apperr"
	"bootcamp_directory_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	courses map[uuid.UUID]repository.Course
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{courses: make(map[uuid.UUID]repository.Course)}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Course, error) {
	for _, c := range f.courses {
		if c.BootcampID == params.BootcampID && c.Title == params.Title {
			return repository.Course{}, apperr.Conflict("course title already taken for this bootcamp")
		}
	}
	c := repository.Course{
		ID:           uuid.New(),
		BootcampID:   params.BootcampID,
		OwnerID:      params.OwnerID,
		Title:        params.Title,
		Description:  params.Description,
		Weeks:        params.Weeks,
		Tuition:      params.Tuition,
		MinimumSkill: params.MinimumSkill,
		CreatedAt:    time.Now(),
	}
	f.courses[c.ID] = c
	return c, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return repository.Course{}, apperr.NotFound("course not found")
	}
	return c, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, params repository.UpdateParams) (repository.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return repository.Course{}, apperr.NotFound("course not found")
	}
	if params.Title != nil {
		c.Title = *params.Title
	}
	if params.Tuition != nil {
		c.Tuition = *params.Tuition
	}
	f.courses[id] = c
	return c, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.courses[id]; !ok {
		return apperr.NotFound("course not found")
	}
	delete(f.courses, id)
	return nil
}

type fakeBootcamps struct {
	info map[uuid.UUID]ports.BootcampInfo
}

func (f *fakeBootcamps) GetBootcampByID(_ context.Context, id uuid.UUID) (ports.BootcampInfo, error) {
	info, ok := f.info[id]
	if !ok {
		return ports.BootcampInfo{}, apperr.NotFound("bootcamp not found")
	}
	return info, nil
}

type fakeUsers struct {
	users map[uuid.UUID]ports.UserInfo
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (ports.UserInfo, error) {
	u, ok := f.users[id]
	if !ok {
		return ports.UserInfo{}, apperr.NotFound("user not found")
	}
	return u, nil
}

type fixture struct {
	svc        *Service
	repo       *fakeRepo
	ownerID    uuid.UUID
	bootcampID uuid.UUID
	users      *fakeUsers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newFakeRepo()
	ownerID := uuid.New()
	bootcampID := uuid.New()

	bootcamps := &fakeBootcamps{info: map[uuid.UUID]ports.BootcampInfo{
		bootcampID: {ID: bootcampID, OwnerID: ownerID, Name: "Devworks"},
	}}
	users := &fakeUsers{users: map[uuid.UUID]ports.UserInfo{
		ownerID: {ID: ownerID, Role: "publisher", CourseCreatedCount: 0, CourseCreatedLimit: 5},
	}}

	log := logger.New("development")
	svc := New(repo, nil, bootcamps, users, events.NewInMemoryBus(log), log)
	return &fixture{svc: svc, repo: repo, ownerID: ownerID, bootcampID: bootcampID, users: users}
}

func createRequest(title string) transport.CreateCourseRequest {
	return transport.CreateCourseRequest{
		Title:        title,
		Description:  "Full stack web development",
		Weeks:        8,
		Tuition:      8000,
		MinimumSkill: "beginner",
	}
}

func TestCreate_UnknownBootcamp(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.ownerID, "publisher", uuid.New(), createRequest("Go"))
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreate_RequiresBootcampOwnership(t *testing.T) {
	f := newFixture(t)
	stranger := uuid.New()
	f.users.users[stranger] = ports.UserInfo{ID: stranger, Role: "publisher", CourseCreatedLimit: 5}

	_, err := f.svc.Create(context.Background(), stranger, "publisher", f.bootcampID, createRequest("Go"))
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// Admins may add courses to any bootcamp.
	if _, err := f.svc.Create(context.Background(), stranger, "admin", f.bootcampID, createRequest("Go")); err != nil {
		t.Fatalf("admin create: %v", err)
	}
}

func TestCreate_EnforcesCourseLimit(t *testing.T) {
	f := newFixture(t)
	f.users.users[f.ownerID] = ports.UserInfo{
		ID: f.ownerID, Role: "publisher", CourseCreatedCount: 5, CourseCreatedLimit: 5,
	}

	_, err := f.svc.Create(context.Background(), f.ownerID, "publisher", f.bootcampID, createRequest("Go"))
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden at limit, got %v", err)
	}

	// The limit does not apply to admins.
	if _, err := f.svc.Create(context.Background(), f.ownerID, "admin", f.bootcampID, createRequest("Go")); err != nil {
		t.Fatalf("admin create at limit: %v", err)
	}
}

func TestCreate_DuplicateTitleSameBootcamp(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Create(context.Background(), f.ownerID, "publisher", f.bootcampID, createRequest("Go")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := f.svc.Create(context.Background(), f.ownerID, "publisher", f.bootcampID, createRequest("Go"))
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateAndDelete_OwnershipEnforced(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), f.ownerID, "publisher", f.bootcampID, createRequest("Go"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tuition := 9000.0
	stranger := uuid.New()
	if _, err := f.svc.Update(context.Background(), stranger, "user", created.ID, transport.UpdateCourseRequest{Tuition: &tuition}); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden update, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), stranger, "user", created.ID); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden delete, got %v", err)
	}

	updated, err := f.svc.Update(context.Background(), f.ownerID, "publisher", created.ID, transport.UpdateCourseRequest{Tuition: &tuition})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Tuition != 9000 {
		t.Fatalf("tuition = %v", updated.Tuition)
	}

	if err := f.svc.Delete(context.Background(), f.ownerID, "publisher", created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), created.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("course should be gone, got %v", err)
	}
}
