package service

import (
	"context"
	"testing"
	"time"

	"bootcamp_directory_backend/internal/events"
	"bootcamp_directory_backend/internal/reviews/ports"
	"bootcamp_directory_backend/internal/reviews/repository"
	"bootcamp_directory_backend/internal/reviews/transport"
	"bootcamp_directory_backend/platform/apperr"
	"bootcamp_directory_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	reviews map[uuid.UUID]repository.Review
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reviews: make(map[uuid.UUID]repository.Review)}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Review, error) {
	for _, r := range f.reviews {
		if r.BootcampID == params.BootcampID && r.UserID == params.UserID {
			return repository.Review{}, apperr.Conflict("user has already submitted a review for this bootcamp")
		}
	}
	r := repository.Review{
		ID:         uuid.New(),
		BootcampID: params.BootcampID,
		UserID:     params.UserID,
		Title:      params.Title,
		Body:       params.Body,
		Rating:     params.Rating,
		CreatedAt:  time.Now(),
	}
	f.reviews[r.ID] = r
	return r, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return repository.Review{}, apperr.NotFound("review not found")
	}
	return r, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, params repository.UpdateParams) (repository.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return repository.Review{}, apperr.NotFound("review not found")
	}
	if params.Title != nil {
		r.Title = *params.Title
	}
	if params.Rating != nil {
		r.Rating = *params.Rating
	}
	f.reviews[id] = r
	return r, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.reviews[id]; !ok {
		return apperr.NotFound("review not found")
	}
	delete(f.reviews, id)
	return nil
}

type fakeBootcamps struct {
	known map[uuid.UUID]bool
}

func (f *fakeBootcamps) GetBootcampByID(_ context.Context, id uuid.UUID) (ports.BootcampInfo, error) {
	if !f.known[id] {
		return ports.BootcampInfo{}, apperr.NotFound("bootcamp not found")
	}
	return ports.BootcampInfo{ID: id, Name: "Devworks"}, nil
}

func newService(t *testing.T, bootcampID uuid.UUID) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	log := logger.New("development")
	svc := New(repo, nil, &fakeBootcamps{known: map[uuid.UUID]bool{bootcampID: true}}, events.NewInMemoryBus(log), log)
	return svc, repo
}

func createRequest() transport.CreateReviewRequest {
	return transport.CreateReviewRequest{Title: "Great course", Body: "Learned a lot", Rating: 8}
}

func TestCreate_UnknownBootcamp(t *testing.T) {
	svc, _ := newService(t, uuid.New())

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), createRequest())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreate_OneReviewPerUserPerBootcamp(t *testing.T) {
	bootcampID := uuid.New()
	svc, _ := newService(t, bootcampID)
	userID := uuid.New()

	if _, err := svc.Create(context.Background(), userID, bootcampID, createRequest()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), userID, bootcampID, createRequest())
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Another user may still review the same bootcamp.
	if _, err := svc.Create(context.Background(), uuid.New(), bootcampID, createRequest()); err != nil {
		t.Fatalf("second user create: %v", err)
	}
}

func TestUpdate_OwnershipEnforced(t *testing.T) {
	bootcampID := uuid.New()
	svc, _ := newService(t, bootcampID)
	author := uuid.New()

	created, err := svc.Create(context.Background(), author, bootcampID, createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rating := 3
	if _, err := svc.Update(context.Background(), uuid.New(), "user", created.ID, transport.UpdateReviewRequest{Rating: &rating}); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	updated, err := svc.Update(context.Background(), author, "user", created.ID, transport.UpdateReviewRequest{Rating: &rating})
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Rating != 3 {
		t.Fatalf("rating = %d", updated.Rating)
	}
}

func TestDelete_AdminMayRemoveAnyReview(t *testing.T) {
	bootcampID := uuid.New()
	svc, _ := newService(t, bootcampID)
	author := uuid.New()

	created, err := svc.Create(context.Background(), author, bootcampID, createRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), uuid.New(), "user", created.ID); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), uuid.New(), "admin", created.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("review should be gone, got %v", err)
	}
}
