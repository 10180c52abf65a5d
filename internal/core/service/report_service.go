package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// lastWeekWindow is the trailing window of the last-week report.
const lastWeekWindow = 7 * 24 * time.Hour

// ReportService computes read-only aggregates over tasks.
type ReportService struct {
	repo   ports.ReportRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewReportService(repo ports.ReportRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, logger: logger, now: time.Now}
}

// LastWeekCompleted returns completed tasks with completedAt >= now - 7 days.
func (s *ReportService) LastWeekCompleted(ctx context.Context) ([]*domain.Task, error) {
	since := s.now().UTC().Add(-lastWeekWindow)
	tasks, err := s.repo.CompletedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("last week report: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// PendingWorkTotal sums timeToComplete over tasks that are not completed.
// Tasks without an estimate count as zero.
func (s *ReportService) PendingWorkTotal(ctx context.Context) (float64, error) {
	var total float64
	err := s.repo.ForEachPending(ctx, func(t *domain.Task) error {
		if t.TimeToComplete != nil {
			total += *t.TimeToComplete
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("pending report: %w", err)
	}
	return total, nil
}

// ClosedTaskCounts counts completed tasks per (team, owner, project).
func (s *ReportService) ClosedTaskCounts(ctx context.Context) ([]domain.ClosedTaskCount, error) {
	counter := domain.NewClosedTaskCounter()
	err := s.repo.ForEachCompleted(ctx, func(key domain.ClosedTaskKey) error {
		counter.Add(key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("closed tasks report: %w", err)
	}

	rows := counter.Rows()
	s.logger.Debug().Int("groups", len(rows)).Msg("closed tasks report computed")
	return rows, nil
}
