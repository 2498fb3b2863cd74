package scheduler

import (
	"context"

	"bootcamp_directory_backend/internal/events"
	"bootcamp_directory_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Subscriber bridges domain events onto the task queue. It is
// registered in the API process; the worker process drains the queue.
type Subscriber struct {
	enq Enqueuer
	log *logger.Logger
}

func NewSubscriber(enq Enqueuer, log *logger.Logger) *Subscriber {
	return &Subscriber{enq: enq, log: log}
}

// Register subscribes to every event that invalidates derived data.
func (s *Subscriber) Register(bus events.Bus) {
	bus.Subscribe(events.CourseCreated{}.EventName(), events.HandlerFunc(s.onCourseCreated))
	bus.Subscribe(events.CourseUpdated{}.EventName(), events.HandlerFunc(s.onCourseUpdated))
	bus.Subscribe(events.CourseDeleted{}.EventName(), events.HandlerFunc(s.onCourseDeleted))
	bus.Subscribe(events.ReviewWritten{}.EventName(), events.HandlerFunc(s.onReviewChanged))
	bus.Subscribe(events.ReviewDeleted{}.EventName(), events.HandlerFunc(s.onReviewChanged))
	bus.Subscribe(events.BootcampDeleted{}.EventName(), events.HandlerFunc(s.onBootcampDeleted))
}

func (s *Subscriber) onCourseCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.CourseCreated)
	if !ok {
		return nil
	}
	if err := s.enq.EnqueueRecomputeAverageCost(ctx, e.BootcampID); err != nil {
		return err
	}
	return s.enq.EnqueueRecomputeCourseCount(ctx, e.OwnerID)
}

func (s *Subscriber) onCourseUpdated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.CourseUpdated)
	if !ok {
		return nil
	}
	return s.enq.EnqueueRecomputeAverageCost(ctx, e.BootcampID)
}

func (s *Subscriber) onCourseDeleted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.CourseDeleted)
	if !ok {
		return nil
	}
	if err := s.enq.EnqueueRecomputeAverageCost(ctx, e.BootcampID); err != nil {
		return err
	}
	return s.enq.EnqueueRecomputeCourseCount(ctx, e.OwnerID)
}

func (s *Subscriber) onReviewChanged(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.ReviewWritten:
		return s.enq.EnqueueRecomputeAverageRating(ctx, e.BootcampID)
	case events.ReviewDeleted:
		return s.enq.EnqueueRecomputeAverageRating(ctx, e.BootcampID)
	}
	return nil
}

// onBootcampDeleted repairs the counters of every publisher whose
// courses went down with the bootcamp.
func (s *Subscriber) onBootcampDeleted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.BootcampDeleted)
	if !ok {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, ownerID := range e.CourseOwnerIDs {
		ownerID := ownerID
		g.Go(func() error {
			return s.enq.EnqueueRecomputeCourseCount(ctx, ownerID)
		})
	}
	return g.Wait()
}
