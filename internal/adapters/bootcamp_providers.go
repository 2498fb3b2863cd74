package adapters

import (
	"context"

	bootcampsvc "bootcamp_directory_backend/internal/bootcamps/service"
	courseports "bootcamp_directory_backend/internal/courses/ports"
	reviewports "bootcamp_directory_backend/internal/reviews/ports"

	"github.com/google/uuid"
)

// CourseBootcampProvider implements courses/ports.BootcampProvider
// using the bootcamps service.
type CourseBootcampProvider struct {
	svc *bootcampsvc.Service
}

func NewCourseBootcampProvider(svc *bootcampsvc.Service) *CourseBootcampProvider {
	return &CourseBootcampProvider{svc: svc}
}

var _ courseports.BootcampProvider = (*CourseBootcampProvider)(nil)

func (a *CourseBootcampProvider) GetBootcampByID(ctx context.Context, id uuid.UUID) (courseports.BootcampInfo, error) {
	b, err := a.svc.GetInfo(ctx, id)
	if err != nil {
		return courseports.BootcampInfo{}, err
	}
	return courseports.BootcampInfo{ID: b.ID, OwnerID: b.OwnerID, Name: b.Name}, nil
}

// ReviewBootcampProvider implements reviews/ports.BootcampProvider
// using the bootcamps service.
type ReviewBootcampProvider struct {
	svc *bootcampsvc.Service
}

func NewReviewBootcampProvider(svc *bootcampsvc.Service) *ReviewBootcampProvider {
	return &ReviewBootcampProvider{svc: svc}
}

var _ reviewports.BootcampProvider = (*ReviewBootcampProvider)(nil)

func (a *ReviewBootcampProvider) GetBootcampByID(ctx context.Context, id uuid.UUID) (reviewports.BootcampInfo, error) {
	b, err := a.svc.GetInfo(ctx, id)
	if err != nil {
		return reviewports.BootcampInfo{}, err
	}
	return reviewports.BootcampInfo{ID: b.ID, Name: b.Name}, nil
}
