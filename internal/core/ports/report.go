package ports

import (
	"context"
	"time"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// ReportRepository exposes the read paths the reporting engine reduces over.
type ReportRepository interface {
	// CompletedSince returns completed tasks with completedAt >= since.
	CompletedSince(ctx context.Context, since time.Time) ([]*domain.Task, error)
	// ForEachPending streams every task whose status is not Completed.
	ForEachPending(ctx context.Context, fn func(*domain.Task) error) error
	// ForEachCompleted streams the grouping key of every completed task.
	ForEachCompleted(ctx context.Context, fn func(domain.ClosedTaskKey) error) error
}

type ReportService interface {
	LastWeekCompleted(ctx context.Context) ([]*domain.Task, error)
	PendingWorkTotal(ctx context.Context) (float64, error)
	ClosedTaskCounts(ctx context.Context) ([]domain.ClosedTaskCount, error)
}
