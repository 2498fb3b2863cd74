package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"bootcamp_directory_backend/internal/bootcamps/repository"
	"bootcamp_directory_backend/internal/bootcamps/transport"
	"bootcamp_directory_backend/internal/events"
	"bootcamp_directory_backend/internal/geocoder"
	"bootcamp_directory_backend/platform/apperr"
	"bootcamp_directory_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	bootcamps map[uuid.UUID]repository.Bootcamp
	photos    map[uuid.UUID]string
	deleted   []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bootcamps: make(map[uuid.UUID]repository.Bootcamp),
		photos:    make(map[uuid.UUID]string),
	}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Bootcamp, error) {
	for _, b := range f.bootcamps {
		if b.Name == params.Name {
			return repository.Bootcamp{}, apperr.Conflict("bootcamp name already taken")
		}
	}
	b := repository.Bootcamp{
		ID:          uuid.New(),
		OwnerID:     params.OwnerID,
		Name:        params.Name,
		Slug:        params.Slug,
		Description: params.Description,
		Address:     params.Address,
		Careers:     params.Careers,
		Latitude:    &params.Geo.Latitude,
		Longitude:   &params.Geo.Longitude,
		Photo:       "no-photo.jpg",
		CreatedAt:   time.Now(),
	}
	f.bootcamps[b.ID] = b
	return b, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Bootcamp, error) {
	b, ok := f.bootcamps[id]
	if !ok {
		return repository.Bootcamp{}, apperr.NotFound("bootcamp not found")
	}
	return b, nil
}

func (f *fakeRepo) CountByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	count := 0
	for _, b := range f.bootcamps {
		if b.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, params repository.UpdateParams) (repository.Bootcamp, error) {
	b, ok := f.bootcamps[id]
	if !ok {
		return repository.Bootcamp{}, apperr.NotFound("bootcamp not found")
	}
	if params.Name != nil {
		b.Name = *params.Name
	}
	if params.Slug != nil {
		b.Slug = *params.Slug
	}
	if params.Description != nil {
		b.Description = *params.Description
	}
	f.bootcamps[id] = b
	return b, nil
}

func (f *fakeRepo) UpdatePhoto(_ context.Context, id uuid.UUID, filename string) error {
	f.photos[id] = filename
	return nil
}

func (f *fakeRepo) DeleteCascade(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	if _, ok := f.bootcamps[id]; !ok {
		return nil, apperr.NotFound("bootcamp not found")
	}
	delete(f.bootcamps, id)
	f.deleted = append(f.deleted, id)
	return nil, nil
}

func (f *fakeRepo) WithinRadius(_ context.Context, lat, lon, radians float64) ([]repository.Bootcamp, error) {
	var out []repository.Bootcamp
	for _, b := range f.bootcamps {
		out = append(out, b)
	}
	return out, nil
}

type fakeGeocoder struct {
	loc  geocoder.Location
	err  error
	last string
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (geocoder.Location, error) {
	f.last = address
	if f.err != nil {
		return geocoder.Location{}, f.err
	}
	return f.loc, nil
}

type fakeStore struct {
	saved map[string]string
	fail  bool
}

func (f *fakeStore) Save(filename string, r io.Reader) error {
	if f.fail {
		return io.ErrClosedPipe
	}
	data, _ := io.ReadAll(r)
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	f.saved[filename] = string(data)
	return nil
}

type testUploadConfig struct{}

func (testUploadConfig) GetMaxFileUpload() int64   { return 100 }
func (testUploadConfig) GetFileUploadPath() string { return "/tmp" }

func newTestService(repo repository.Repository, geo geocoder.Geocoder, store *fakeStore) *Service {
	log := logger.New("development")
	return New(repo, nil, geo, store, testUploadConfig{}, events.NewInMemoryBus(log), log)
}

func createRequest(name string) transport.CreateBootcampRequest {
	return transport.CreateBootcampRequest{
		Name:        name,
		Description: "MERN stack from zero",
		Address:     "233 Bay State Rd Boston MA 02215",
		Careers:     []string{"Web Development"},
	}
}

func TestCreate_SlugAndGeocode(t *testing.T) {
	repo := newFakeRepo()
	geo := &fakeGeocoder{loc: geocoder.Location{Latitude: 42.35, Longitude: -71.1, City: "Boston"}}
	svc := newTestService(repo, geo, &fakeStore{})

	b, err := svc.Create(context.Background(), uuid.New(), "publisher", createRequest("Devworks Bootcamp"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.Slug != "devworks-bootcamp" {
		t.Fatalf("slug = %q", b.Slug)
	}
	if geo.last != "233 Bay State Rd Boston MA 02215" {
		t.Fatalf("geocoded %q", geo.last)
	}
	if b.Location.Latitude == nil || *b.Location.Latitude != 42.35 {
		t.Fatalf("location not persisted: %+v", b.Location)
	}
}

func TestCreate_OneBootcampPerPublisher(t *testing.T) {
	repo := newFakeRepo()
	geo := &fakeGeocoder{}
	svc := newTestService(repo, geo, &fakeStore{})
	ownerID := uuid.New()

	if _, err := svc.Create(context.Background(), ownerID, "publisher", createRequest("First")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), ownerID, "publisher", createRequest("Second"))
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestCreate_AdminExemptFromLimit(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeGeocoder{}, &fakeStore{})
	adminID := uuid.New()

	if _, err := svc.Create(context.Background(), adminID, "admin", createRequest("First")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), adminID, "admin", createRequest("Second")); err != nil {
		t.Fatalf("admin second create: %v", err)
	}
}

func TestUpdate_OwnershipEnforced(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeGeocoder{}, &fakeStore{})
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), ownerID, "publisher", createRequest("Devworks"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Hacked"
	_, err = svc.Update(context.Background(), uuid.New(), "publisher", created.ID, transport.UpdateBootcampRequest{Name: &name})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}

	// Admin may update anyone's bootcamp; the slug follows the name.
	updated, err := svc.Update(context.Background(), uuid.New(), "admin", created.ID, transport.UpdateBootcampRequest{Name: &name})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Slug != "hacked" {
		t.Fatalf("slug = %q, want hacked", updated.Slug)
	}
}

func TestDelete_OwnershipEnforced(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeGeocoder{}, &fakeStore{})
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), ownerID, "publisher", createRequest("Devworks"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), uuid.New(), "publisher", created.ID); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), ownerID, "publisher", created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("cascade delete not invoked")
	}
}

func TestUploadPhoto_Validation(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{}
	svc := newTestService(repo, &fakeGeocoder{}, store)
	ownerID := uuid.New()

	created, err := svc.Create(context.Background(), ownerID, "publisher", createRequest("Devworks"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UploadPhoto(context.Background(), ownerID, "publisher", created.ID, Upload{
		Filename: "notes.pdf", ContentType: "application/pdf", Size: 10, Reader: strings.NewReader("x"),
	})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for non-image, got %v", err)
	}

	_, err = svc.UploadPhoto(context.Background(), ownerID, "publisher", created.ID, Upload{
		Filename: "big.jpg", ContentType: "image/jpeg", Size: 101, Reader: strings.NewReader("x"),
	})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for oversized file, got %v", err)
	}

	filename, err := svc.UploadPhoto(context.Background(), ownerID, "publisher", created.ID, Upload{
		Filename: "pic.jpg", ContentType: "image/jpeg", Size: 10, Reader: strings.NewReader("jpeg"),
	})
	if err != nil {
		t.Fatalf("UploadPhoto: %v", err)
	}
	want := "photo_" + created.ID.String() + ".jpg"
	if filename != want {
		t.Fatalf("filename = %q, want %q", filename, want)
	}
	if _, ok := store.saved[want]; !ok {
		t.Fatalf("photo not written to store")
	}
	if repo.photos[created.ID] != want {
		t.Fatalf("photo filename not persisted")
	}
}

func TestWithinRadius_RejectsNonPositiveDistance(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeGeocoder{}, &fakeStore{})

	_, err := svc.WithinRadius(context.Background(), "02215", 0, "")
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}
