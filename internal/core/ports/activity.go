package ports

import (
	"context"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// ActivityRepository persists the task audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.TaskActivity) error
	// ListByTask returns a task's trail, oldest first.
	ListByTask(ctx context.Context, taskID string) ([]*domain.TaskActivity, error)
}

// ActivityPublisher hands activity records to the asynchronous recorder.
type ActivityPublisher interface {
	Publish(activity domain.TaskActivity)
}

// ActivityService processes and serves task activity.
type ActivityService interface {
	Process(ctx context.Context, activity domain.TaskActivity) error
	History(ctx context.Context, taskID string) ([]*domain.TaskActivity, error)
}
