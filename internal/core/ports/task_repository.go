package ports

import (
	"context"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// TaskFilter is the allow-listed set of list criteria. Empty fields do not filter.
type TaskFilter struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	ProjectID string `json:"project" validate:"omitempty,mongodb"`
	TeamID    string `json:"team"    validate:"omitempty,mongodb"`
	OwnerID   string `json:"owner"   validate:"omitempty,mongodb"`
	Tag       string `json:"tag"`
}

// TaskRepository defines persistence operations for tasks. Reads expand the
// project, team and owner references.
type TaskRepository interface {
	// Create inserts the task and sets its ID.
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Find(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	// Update applies patch; domain.ErrTaskNotFound when id matches nothing.
	Update(ctx context.Context, id string, patch domain.TaskPatch) error
	Delete(ctx context.Context, id string) error
}

// IdempotencyStore remembers which task an Idempotency-Key produced.
type IdempotencyStore interface {
	// Reserve atomically claims key for a new create. When the key is already
	// held, reserved is false and taskID is the stored id, empty while the
	// holder's create is still running.
	Reserve(ctx context.Context, key string) (taskID string, reserved bool, err error)
	// Remember binds a reserved key to the task it created.
	Remember(ctx context.Context, key, taskID string) error
	// Release drops a reservation whose create failed.
	Release(ctx context.Context, key string) error
}
