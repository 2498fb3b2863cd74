package scheduler

import (
	"context"

	"bootcamp_directory_backend/internal/scheduler/repository"
	"bootcamp_directory_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DirectReconciler recomputes aggregates in-process instead of
// enqueueing tasks. Used when no Redis is configured; the event bus
// already runs handlers off the request path and logs failures.
type DirectReconciler struct {
	repo *repository.Repository
	log  *logger.Logger
}

func NewDirectReconciler(pool *pgxpool.Pool, log *logger.Logger) *DirectReconciler {
	return &DirectReconciler{repo: repository.New(pool), log: log}
}

var _ Enqueuer = (*DirectReconciler)(nil)

func (d *DirectReconciler) EnqueueRecomputeAverageCost(ctx context.Context, bootcampID uuid.UUID) error {
	return d.repo.RecomputeAverageCost(ctx, bootcampID)
}

func (d *DirectReconciler) EnqueueRecomputeAverageRating(ctx context.Context, bootcampID uuid.UUID) error {
	return d.repo.RecomputeAverageRating(ctx, bootcampID)
}

func (d *DirectReconciler) EnqueueRecomputeCourseCount(ctx context.Context, userID uuid.UUID) error {
	return d.repo.RecomputeCourseCount(ctx, userID)
}
