package domain

import "time"

const (
	StatusToDo      = "To Do"
	StatusCompleted = "Completed"
)

// Task is the core aggregate. Project, Team and Owner are only populated when
// the repository expands the references; the *ID fields are always set.
type Task struct {
	ID             string
	Name           string
	ProjectID      string
	TeamID         string
	OwnerID        string
	Project        *Project
	Team           *Team
	Owner          *User
	Tags           []string
	TimeToComplete *float64 // nil on legacy documents
	Status         string
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsCompleted reports whether the task is in the terminal status.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// TaskPatch is the allow-listed set of fields a partial update may touch.
// A nil pointer leaves the field unchanged.
type TaskPatch struct {
	Name           *string
	ProjectID      *string
	TeamID         *string
	OwnerID        *string
	Tags           *[]string
	TimeToComplete *float64
	Status         *string
	CompletedAt    *time.Time

	// ClearCompletedAt unsets completedAt. Set by ResolveCompletion.
	ClearCompletedAt bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return len(p.Fields()) == 0 && !p.ClearCompletedAt
}

// Fields returns the JSON names of the fields the patch sets, in a stable order.
func (p TaskPatch) Fields() []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(p.Name != nil, "name")
	add(p.ProjectID != nil, "project")
	add(p.TeamID != nil, "team")
	add(p.OwnerID != nil, "owner")
	add(p.Tags != nil, "tags")
	add(p.TimeToComplete != nil, "timeToComplete")
	add(p.Status != nil, "status")
	add(p.CompletedAt != nil, "completedAt")
	return fields
}

// ResolveCompletion applies the completion rule against the task's current
// status: entering Completed stamps completedAt with now unless the caller
// supplied one, leaving Completed clears it.
func (p *TaskPatch) ResolveCompletion(current string, now time.Time) {
	if p.Status == nil {
		return
	}
	if *p.Status == StatusCompleted {
		if p.CompletedAt == nil && current != StatusCompleted {
			stamp := now
			p.CompletedAt = &stamp
		}
		return
	}
	p.CompletedAt = nil
	p.ClearCompletedAt = true
}

// ActivityAction names what happened to a task.
type ActivityAction string

const (
	ActivityCreated ActivityAction = "created"
	ActivityUpdated ActivityAction = "updated"
	ActivityDeleted ActivityAction = "deleted"
)

// TaskActivity is one entry in a task's audit trail.
type TaskActivity struct {
	ID      string
	TaskID  string
	Action  ActivityAction
	Status  string
	Changed []string
	At      time.Time
}
