package ports

import (
	"context"
	"time"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task.
type CreateTaskInput struct {
	Name           string     `json:"name"           validate:"required"`
	ProjectID      string     `json:"project"        validate:"required,mongodb"`
	TeamID         string     `json:"team"           validate:"required,mongodb"`
	OwnerID        string     `json:"owner"          validate:"required,mongodb"`
	TimeToComplete *float64   `json:"timeToComplete" validate:"required,gt=0"`
	Tags           []string   `json:"tags"`
	Status         string     `json:"status"`
	CreatedAt      *time.Time `json:"createdAt"`
	// CompletedAt is kept only when the task is created Completed.
	CompletedAt    *time.Time `json:"completedAt"`
	IdempotencyKey string     `json:"-"`
}

// TaskResult is returned by TaskService.Create.
type TaskResult struct {
	Task *domain.Task
	// AlreadyExisted is true when the Idempotency-Key matched an earlier task.
	AlreadyExisted bool
}

// TaskService defines the task lifecycle use cases.
type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (*TaskResult, error)
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
