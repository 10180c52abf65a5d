package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
	"github.com/taskboard/tracker-api/internal/pkg/validation"
	"github.com/taskboard/tracker-api/pkg/logger"
)

type TaskService struct {
	repo     ports.TaskRepository
	idem     ports.IdempotencyStore
	activity ports.ActivityPublisher
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

// NewTaskService wires the task use cases. idem and activity may be nil.
func NewTaskService(repo ports.TaskRepository, idem ports.IdempotencyStore, activity ports.ActivityPublisher, logger zerolog.Logger) *TaskService {
	return &TaskService{
		repo:     repo,
		idem:     idem,
		activity: activity,
		validate: validation.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Create validates and persists a task, then returns it with its project,
// team and owner expanded. A repeated Idempotency-Key returns the task the
// first request created.
func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput) (*ports.TaskResult, error) {
	log := logger.FromContext(ctx, s.logger)
	if err := validation.Struct(s.validate, input); err != nil {
		return nil, err
	}

	held, existing, err := s.claim(ctx, input.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &ports.TaskResult{Task: existing, AlreadyExisted: true}, nil
	}

	now := s.now().UTC()
	task := &domain.Task{
		Name:           strings.TrimSpace(input.Name),
		ProjectID:      input.ProjectID,
		TeamID:         input.TeamID,
		OwnerID:        input.OwnerID,
		Tags:           input.Tags,
		TimeToComplete: input.TimeToComplete,
		Status:         input.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if task.Status == "" {
		task.Status = domain.StatusToDo
	}
	if input.CreatedAt != nil {
		task.CreatedAt = input.CreatedAt.UTC()
	}
	if task.IsCompleted() {
		completedAt := now
		if input.CompletedAt != nil {
			completedAt = input.CompletedAt.UTC()
		}
		task.CompletedAt = &completedAt
	}

	if err := s.repo.Create(ctx, task); err != nil {
		if held {
			s.release(input.IdempotencyKey)
		}
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		log.Error().Err(err).Msg("failed to create task")
		return nil, &domain.CreationError{Entity: "task", Err: err}
	}

	if held {
		if err := s.idem.Remember(ctx, input.IdempotencyKey, task.ID); err != nil {
			log.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.publish(domain.TaskActivity{
		TaskID:  task.ID,
		Action:  domain.ActivityCreated,
		Status:  task.Status,
		Changed: []string{"name", "project", "team", "owner", "timeToComplete", "status"},
		At:      now,
	})

	expanded, err := s.repo.FindByID(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("create task: expand: %w", err)
	}

	log.Info().Str("task_id", task.ID).Str("owner", task.OwnerID).Msg("task created")
	return &ports.TaskResult{Task: expanded}, nil
}

// claim reserves key for this create. held reports whether the reservation
// is ours to bind or release. existing is the task an earlier request with
// the same key created. A key whose first create is still running is
// domain.ErrIdempotencyInFlight. Store failures are logged and skip the
// reservation.
func (s *TaskService) claim(ctx context.Context, key string) (held bool, existing *domain.Task, err error) {
	log := logger.FromContext(ctx, s.logger)
	if key == "" || s.idem == nil {
		return false, nil, nil
	}

	taskID, reserved, err := s.idem.Reserve(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, creating anyway")
		return false, nil, nil
	}
	if reserved {
		return true, nil, nil
	}
	if taskID == "" {
		return false, nil, fmt.Errorf("idempotency key %q: %w", key, domain.ErrIdempotencyInFlight)
	}

	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		// The key is ours to rebind once the new task exists.
		log.Warn().Err(err).Str("idempotency_key", key).Str("task_id", taskID).Msg("idempotent task unavailable, creating anew")
		return true, nil, nil
	}

	log.Info().Str("idempotency_key", key).Str("task_id", taskID).Msg("idempotent replay")
	return false, task, nil
}

func (s *TaskService) release(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.idem.Release(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}

// List returns the tasks matching filter. An empty result is domain.ErrNoTasks.
func (s *TaskService) List(ctx context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	if err := validation.Struct(s.validate, filter); err != nil {
		return nil, err
	}

	tasks, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, domain.ErrNoTasks
	}
	return tasks, nil
}

// Update merges patch into the task and returns the post-update record.
func (s *TaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContext(ctx, s.logger)
	if s.validate.Var(id, "mongodb") != nil {
		return nil, fmt.Errorf("task id %s: %w", id, domain.ErrTaskNotFound)
	}
	if err := s.checkPatch(patch); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, fmt.Errorf("task id %s: %w", id, domain.ErrTaskNotFound)
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	now := s.now().UTC()
	patch.ResolveCompletion(current.Status, now)

	if err := s.repo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, fmt.Errorf("task id %s: %w", id, domain.ErrTaskNotFound)
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update task: reload: %w", err)
	}

	s.publish(domain.TaskActivity{
		TaskID:  id,
		Action:  domain.ActivityUpdated,
		Status:  updated.Status,
		Changed: patch.Fields(),
		At:      now,
	})

	if current.Status != updated.Status {
		log.Info().Str("task_id", id).Str("from", current.Status).Str("to", updated.Status).Msg("task status changed")
	}
	return updated, nil
}

func (s *TaskService) checkPatch(patch domain.TaskPatch) error {
	if patch.IsEmpty() {
		return domain.NewValidationError("no updatable fields supplied")
	}

	var problems []string
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		problems = append(problems, "name must not be empty")
	}
	if patch.Status != nil && strings.TrimSpace(*patch.Status) == "" {
		problems = append(problems, "status must not be empty")
	}
	if patch.TimeToComplete != nil && *patch.TimeToComplete <= 0 {
		problems = append(problems, "timeToComplete must be greater than 0")
	}
	refs := []struct {
		name  string
		value *string
	}{
		{"project", patch.ProjectID},
		{"team", patch.TeamID},
		{"owner", patch.OwnerID},
	}
	for _, ref := range refs {
		if ref.value == nil {
			continue
		}
		var ve *domain.ValidationError
		if errors.As(validation.Var(s.validate, ref.name, *ref.value, "required,mongodb"), &ve) {
			problems = append(problems, ve.Problems...)
		}
	}

	if len(problems) > 0 {
		return domain.NewValidationError(problems...)
	}
	return nil
}

// Delete removes the task. A missing id is domain.ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx, s.logger)
	if s.validate.Var(id, "mongodb") != nil {
		return fmt.Errorf("task id %s: %w", id, domain.ErrTaskNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return fmt.Errorf("task id %s: %w", id, domain.ErrTaskNotFound)
		}
		return fmt.Errorf("delete task: %w", err)
	}

	s.publish(domain.TaskActivity{
		TaskID: id,
		Action: domain.ActivityDeleted,
		At:     s.now().UTC(),
	})

	log.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

func (s *TaskService) publish(a domain.TaskActivity) {
	if s.activity == nil {
		return
	}
	s.activity.Publish(a)
}
