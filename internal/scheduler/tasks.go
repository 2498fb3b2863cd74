package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskRecomputeAverageCost = "bootcamps.recompute.average_cost"

const TaskRecomputeAverageRating = "bootcamps.recompute.average_rating"

const TaskRecomputeCourseCount = "users.recompute.course_count"

// RecomputeBootcampPayload targets one bootcamp's derived aggregates.
type RecomputeBootcampPayload struct {
	BootcampID string `json:"bootcampId"`
}

// RecomputeCourseCountPayload targets one publisher's course counter.
type RecomputeCourseCountPayload struct {
	UserID string `json:"userId"`
}

func NewRecomputeAverageCostTask(payload RecomputeBootcampPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRecomputeAverageCost, data), nil
}

func NewRecomputeAverageRatingTask(payload RecomputeBootcampPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRecomputeAverageRating, data), nil
}

func NewRecomputeCourseCountTask(payload RecomputeCourseCountPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRecomputeCourseCount, data), nil
}

func ParseRecomputeBootcampPayload(task *asynq.Task) (RecomputeBootcampPayload, error) {
	var payload RecomputeBootcampPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RecomputeBootcampPayload{}, err
	}
	return payload, nil
}

func ParseRecomputeCourseCountPayload(task *asynq.Task) (RecomputeCourseCountPayload, error) {
	var payload RecomputeCourseCountPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RecomputeCourseCountPayload{}, err
	}
	return payload, nil
}
