package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process persists a single activity record.
func (s *activityService) Process(ctx context.Context, a domain.TaskActivity) error {
	if a.TaskID == "" {
		return errors.New("process activity: missing task id")
	}
	if a.At.IsZero() {
		a.At = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &a); err != nil {
		return fmt.Errorf("process activity: %w", err)
	}

	s.log.Debug().
		Str("task_id", a.TaskID).
		Str("action", string(a.Action)).
		Msg("activity recorded")
	return nil
}

// History returns a task's trail, oldest first.
func (s *activityService) History(ctx context.Context, taskID string) ([]*domain.TaskActivity, error) {
	items, err := s.repo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("activity history: %w", err)
	}
	if len(items) == 0 {
		return nil, domain.ErrNoActivity
	}
	return items, nil
}
