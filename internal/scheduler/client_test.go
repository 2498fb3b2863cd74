package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type testSchedulerConfig struct {
	redisURL string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetAsynqQueueName() string { return "reconcile" }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestClient_EnqueuesTasksOnConfiguredQueue(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testSchedulerConfig{redisURL: "redis://" + mr.Addr()}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	bootcampID := uuid.New()
	userID := uuid.New()
	ctx := context.Background()

	if err := client.EnqueueRecomputeAverageCost(ctx, bootcampID); err != nil {
		t.Fatalf("enqueue average cost: %v", err)
	}
	if err := client.EnqueueRecomputeAverageRating(ctx, bootcampID); err != nil {
		t.Fatalf("enqueue average rating: %v", err)
	}
	if err := client.EnqueueRecomputeCourseCount(ctx, userID); err != nil {
		t.Fatalf("enqueue course count: %v", err)
	}

	opt, err := redisClientOpt(cfg.redisURL)
	if err != nil {
		t.Fatalf("redis opt: %v", err)
	}
	inspector := asynq.NewInspector(opt)
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("reconcile")
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("pending tasks = %d, want 3", len(pending))
	}

	types := make(map[string]bool)
	for _, task := range pending {
		types[task.Type] = true
	}
	for _, want := range []string{TaskRecomputeAverageCost, TaskRecomputeAverageRating, TaskRecomputeCourseCount} {
		if !types[want] {
			t.Fatalf("missing task type %s", want)
		}
	}
}

func TestClient_RequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected error for empty redis url")
	}
}

func TestTaskPayloadRoundTrip(t *testing.T) {
	bootcampID := uuid.New()

	task, err := NewRecomputeAverageCostTask(RecomputeBootcampPayload{BootcampID: bootcampID.String()})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	payload, err := ParseRecomputeBootcampPayload(task)
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if payload.BootcampID != bootcampID.String() {
		t.Fatalf("bootcamp id = %s", payload.BootcampID)
	}
}
