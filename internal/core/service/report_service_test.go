package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

func TestReportService_LastWeekBoundary(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	inside := now.Add(-7*24*time.Hour + time.Second)
	outside := now.Add(-7*24*time.Hour - time.Second)

	repo := &stubReportRepo{tasks: []*domain.Task{
		{ID: "in", Status: domain.StatusCompleted, CompletedAt: &inside},
		{ID: "out", Status: domain.StatusCompleted, CompletedAt: &outside},
		{ID: "pending", Status: domain.StatusToDo, CompletedAt: &inside},
	}}
	svc := NewReportService(repo, discardLogger)
	svc.now = fixedClock(now)

	tasks, err := svc.LastWeekCompleted(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "in" {
		t.Fatalf("expected only the task inside the window, got %+v", tasks)
	}
	if want := now.Add(-7 * 24 * time.Hour); !repo.since.Equal(want) {
		t.Errorf("window starts at %v, want %v", repo.since, want)
	}
}

func TestReportService_LastWeekEmptyIsNotAnError(t *testing.T) {
	svc := NewReportService(&stubReportRepo{}, discardLogger)

	tasks, err := svc.LastWeekCompleted(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", tasks)
	}
}

func TestReportService_PendingWorkTotal(t *testing.T) {
	repo := &stubReportRepo{tasks: []*domain.Task{
		{Status: domain.StatusToDo, TimeToComplete: ptr(3.0)},
		{Status: "In Progress"},
		{Status: domain.StatusToDo, TimeToComplete: ptr(5.0)},
		{Status: domain.StatusCompleted, TimeToComplete: ptr(100.0)},
	}}
	svc := NewReportService(repo, discardLogger)

	total, err := svc.PendingWorkTotal(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 8 {
		t.Fatalf("expected 8, got %v", total)
	}
}

func TestReportService_ClosedTaskCounts(t *testing.T) {
	repo := &stubReportRepo{tasks: []*domain.Task{
		{Status: domain.StatusCompleted, TeamID: "A", OwnerID: "U1", ProjectID: "P1"},
		{Status: domain.StatusCompleted, TeamID: "A", OwnerID: "U1", ProjectID: "P1"},
		{Status: domain.StatusCompleted, TeamID: "B", OwnerID: "U2", ProjectID: "P2"},
		{Status: domain.StatusToDo, TeamID: "A", OwnerID: "U1", ProjectID: "P1"},
	}}
	svc := NewReportService(repo, discardLogger)

	rows, err := svc.ClosedTaskCounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := map[domain.ClosedTaskKey]int{}
	for _, r := range rows {
		got[r.ClosedTaskKey] = r.Count
	}
	want := map[domain.ClosedTaskKey]int{
		{TeamID: "A", OwnerID: "U1", ProjectID: "P1"}: 2,
		{TeamID: "B", OwnerID: "U2", ProjectID: "P2"}: 1,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(got))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("group %+v: expected %d, got %d", k, v, got[k])
		}
	}
}

func TestReportService_PropagatesStoreErrors(t *testing.T) {
	repo := &stubReportRepo{err: errors.New("mongo down")}
	svc := NewReportService(repo, discardLogger)

	if _, err := svc.LastWeekCompleted(context.Background()); err == nil {
		t.Error("LastWeekCompleted: expected error")
	}
	if _, err := svc.PendingWorkTotal(context.Background()); err == nil {
		t.Error("PendingWorkTotal: expected error")
	}
	if _, err := svc.ClosedTaskCounts(context.Background()); err == nil {
		t.Error("ClosedTaskCounts: expected error")
	}
}
