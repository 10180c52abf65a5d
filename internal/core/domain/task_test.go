package domain

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestTaskPatch_ResolveCompletion_StampsOnEnter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := TaskPatch{Status: strPtr(StatusCompleted)}

	p.ResolveCompletion("In Progress", now)

	if p.CompletedAt == nil || !p.CompletedAt.Equal(now) {
		t.Fatalf("expected completedAt=%v, got %v", now, p.CompletedAt)
	}
	if p.ClearCompletedAt {
		t.Fatal("must not clear completedAt when entering Completed")
	}
}

func TestTaskPatch_ResolveCompletion_KeepsSuppliedTimestamp(t *testing.T) {
	supplied := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	p := TaskPatch{Status: strPtr(StatusCompleted), CompletedAt: &supplied}

	p.ResolveCompletion(StatusToDo, time.Now())

	if !p.CompletedAt.Equal(supplied) {
		t.Fatalf("supplied completedAt overwritten: %v", p.CompletedAt)
	}
}

func TestTaskPatch_ResolveCompletion_AlreadyCompleted(t *testing.T) {
	p := TaskPatch{Status: strPtr(StatusCompleted)}

	p.ResolveCompletion(StatusCompleted, time.Now())

	if p.CompletedAt != nil {
		t.Fatal("re-completing must not move completedAt")
	}
}

func TestTaskPatch_ResolveCompletion_ClearsOnLeave(t *testing.T) {
	p := TaskPatch{Status: strPtr("In Progress")}

	p.ResolveCompletion(StatusCompleted, time.Now())

	if !p.ClearCompletedAt || p.CompletedAt != nil {
		t.Fatalf("expected completedAt to be cleared, got %+v", p)
	}
}

func TestTaskPatch_FieldsAndEmpty(t *testing.T) {
	if !(TaskPatch{}).IsEmpty() {
		t.Fatal("zero patch should be empty")
	}

	ttc := 3.0
	p := TaskPatch{Name: strPtr("x"), TimeToComplete: &ttc}
	fields := p.Fields()
	if len(fields) != 2 || fields[0] != "name" || fields[1] != "timeToComplete" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if p.IsEmpty() {
		t.Fatal("patch with fields should not be empty")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(ErrNoTeams) || !IsNotFound(ErrTaskNotFound) {
		t.Fatal("expected not-found errors to be recognised")
	}
	if IsNotFound(ErrUserExists) {
		t.Fatal("conflict is not a not-found error")
	}
}
