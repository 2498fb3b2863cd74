package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"bootcamp_directory_backend/internal/bootcamps/repository"
	"bootcamp_directory_backend/internal/bootcamps/transport"
	"bootcamp_directory_backend/internal/events"
	"bootcamp_directory_backend/internal/geocoder"
	"bootcamp_directory_backend/internal/listing"
	"bootcamp_directory_backend/internal/storage"
	"bootcamp_directory_backend/platform/apperr"
	"bootcamp_directory_backend/platform/config"
	"bootcamp_directory_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	// Mean earth radius used to convert a surface distance to radians.
	earthRadiusMiles = 3963
	earthRadiusKm    = 6378

	roleAdmin = "admin"
)

// Upload carries one multipart photo upload into the service.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Service provides business logic for bootcamps.
type Service struct {
	repo  repository.Repository
	db    listing.Querier
	geo   geocoder.Geocoder
	store storage.PhotoStore
	cfg   config.UploadConfig
	bus   events.Bus
	log   *logger.Logger
}

func New(repo repository.Repository, db listing.Querier, geo geocoder.Geocoder, store storage.PhotoStore, cfg config.UploadConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, db: db, geo: geo, store: store, cfg: cfg, bus: bus, log: log}
}

// List runs an advanced-results query over all bootcamps.
func (s *Service) List(ctx context.Context, values url.Values) (*listing.Result, error) {
	params, err := listing.Parse(values, repository.ListFields)
	if err != nil {
		return nil, err
	}
	return listing.Execute(ctx, s.db, repository.ListQuery, params)
}

// Get retrieves a single bootcamp.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.BootcampResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.BootcampResponse{}, err
	}
	return toResponse(b), nil
}

// Create geocodes the address and persists a new bootcamp. Publishers
// may own at most one bootcamp; admins are exempt.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, role string, req transport.CreateBootcampRequest) (transport.BootcampResponse, error) {
	if role != roleAdmin {
		count, err := s.repo.CountByOwner(ctx, ownerID)
		if err != nil {
			return transport.BootcampResponse{}, err
		}
		if count > 0 {
			return transport.BootcampResponse{}, apperr.BadRequest(
				fmt.Sprintf("the user with ID %s has already published a bootcamp", ownerID))
		}
	}

	loc, err := s.geo.Geocode(ctx, req.Address)
	if err != nil {
		return transport.BootcampResponse{}, err
	}

	b, err := s.repo.Create(ctx, repository.CreateParams{
		OwnerID:       ownerID,
		Name:          req.Name,
		Slug:          slugify(req.Name),
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssist,
		JobGuarantee:  req.JobGuar,
		AcceptGi:      req.AcceptGi,
		Geo: repository.GeoFields{
			FormattedAddress: loc.FormattedAddress,
			Street:           loc.Street,
			City:             loc.City,
			State:            loc.State,
			Zipcode:          loc.Zipcode,
			Country:          loc.Country,
			Latitude:         loc.Latitude,
			Longitude:        loc.Longitude,
		},
	})
	if err != nil {
		return transport.BootcampResponse{}, err
	}
	return toResponse(b), nil
}

// Update modifies a bootcamp owned by the caller.
func (s *Service) Update(ctx context.Context, callerID uuid.UUID, role string, id uuid.UUID, req transport.UpdateBootcampRequest) (transport.BootcampResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.BootcampResponse{}, err
	}
	if err := authorize(existing.OwnerID, callerID, role, "update this bootcamp"); err != nil {
		return transport.BootcampResponse{}, err
	}

	params := repository.UpdateParams{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssist,
		JobGuarantee:  req.JobGuar,
		AcceptGi:      req.AcceptGi,
	}
	if req.Name != nil {
		slug := slugify(*req.Name)
		params.Slug = &slug
	}

	b, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return transport.BootcampResponse{}, err
	}
	return toResponse(b), nil
}

// Delete removes a bootcamp together with its courses and reviews, then
// announces the deletion so derived counters get reconciled.
func (s *Service) Delete(ctx context.Context, callerID uuid.UUID, role string, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(existing.OwnerID, callerID, role, "delete this bootcamp"); err != nil {
		return err
	}

	courseOwners, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, events.BootcampDeleted{
		BaseEvent:      events.NewBaseEvent(),
		BootcampID:     id,
		OwnerID:        existing.OwnerID,
		CourseOwnerIDs: courseOwners,
	})
	return nil
}

// WithinRadius geocodes a zipcode and returns all bootcamps within the
// given distance of it. Units are miles by default, or kilometers.
func (s *Service) WithinRadius(ctx context.Context, zipcode string, distance float64, units string) ([]transport.BootcampResponse, error) {
	if distance <= 0 {
		return nil, apperr.BadRequest("distance must be positive")
	}

	earthRadius := float64(earthRadiusMiles)
	if units == "km" {
		earthRadius = earthRadiusKm
	}

	loc, err := s.geo.Geocode(ctx, zipcode)
	if err != nil {
		return nil, err
	}

	found, err := s.repo.WithinRadius(ctx, loc.Latitude, loc.Longitude, distance/earthRadius)
	if err != nil {
		return nil, err
	}

	result := make([]transport.BootcampResponse, 0, len(found))
	for _, b := range found {
		result = append(result, toResponse(b))
	}
	return result, nil
}

// UploadPhoto validates and stores a bootcamp photo, then records its
// filename. The file lands as photo_<bootcampID><ext>.
func (s *Service) UploadPhoto(ctx context.Context, callerID uuid.UUID, role string, id uuid.UUID, upload Upload) (string, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := authorize(existing.OwnerID, callerID, role, "update this bootcamp"); err != nil {
		return "", err
	}

	if !strings.HasPrefix(upload.ContentType, "image/") {
		return "", apperr.BadRequest("please upload an image file")
	}
	ext := strings.ToLower(path.Ext(upload.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", apperr.BadRequest("please upload an image file")
	}
	if upload.Size > s.cfg.GetMaxFileUpload() {
		return "", apperr.BadRequest(
			fmt.Sprintf("please upload an image less than %d bytes", s.cfg.GetMaxFileUpload()))
	}

	filename := fmt.Sprintf("photo_%s%s", id, ext)
	if err := s.store.Save(filename, upload.Reader); err != nil {
		s.log.Error("photo upload failed", "bootcamp_id", id.String(), "error", err)
		return "", apperr.Internal("problem with file upload")
	}

	if err := s.repo.UpdatePhoto(ctx, id, filename); err != nil {
		return "", err
	}

	s.bus.Publish(ctx, events.PhotoUploaded{
		BaseEvent:  events.NewBaseEvent(),
		BootcampID: id,
		Filename:   filename,
	})
	return filename, nil
}

// GetInfo exposes a bootcamp to other bounded contexts via the adapter.
func (s *Service) GetInfo(ctx context.Context, id uuid.UUID) (repository.Bootcamp, error) {
	return s.repo.GetByID(ctx, id)
}

// authorize allows the resource owner and admins.
func authorize(ownerID, callerID uuid.UUID, role, action string) error {
	if callerID == ownerID || role == roleAdmin {
		return nil
	}
	return apperr.Forbidden(fmt.Sprintf("user %s is not authorized to %s", callerID, action))
}

func toResponse(b repository.Bootcamp) transport.BootcampResponse {
	return transport.BootcampResponse{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		Website:     b.Website,
		Phone:       b.Phone,
		Email:       b.Email,
		Address:     b.Address,
		Location: transport.LocationResponse{
			FormattedAddress: b.FormattedAddress,
			Street:           b.Street,
			City:             b.City,
			State:            b.State,
			Zipcode:          b.Zipcode,
			Country:          b.Country,
			Latitude:         b.Latitude,
			Longitude:        b.Longitude,
		},
		Careers:       b.Careers,
		Housing:       b.Housing,
		JobAssistance: b.JobAssistance,
		JobGuarantee:  b.JobGuarantee,
		AcceptGi:      b.AcceptGi,
		AverageRating: b.AverageRating,
		AverageCost:   b.AverageCost,
		Photo:         b.Photo,
		CreatedAt:     b.CreatedAt,
	}
}
