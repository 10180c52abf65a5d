package handler

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateTaskInput(req createTaskRequest, idempotencyKey string) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Name:           req.Name,
		ProjectID:      req.Project,
		TeamID:         req.Team,
		OwnerID:        req.Owner,
		TimeToComplete: req.TimeToComplete,
		Tags:           req.Tags,
		Status:         req.Status,
		CreatedAt:      req.CreatedAt,
		CompletedAt:    req.CompletedAt,
		IdempotencyKey: idempotencyKey,
	}
}

func toTaskPatch(req updateTaskRequest) domain.TaskPatch {
	return domain.TaskPatch{
		Name:           req.Name,
		ProjectID:      req.Project,
		TeamID:         req.Team,
		OwnerID:        req.Owner,
		Tags:           req.Tags,
		TimeToComplete: req.TimeToComplete,
		Status:         req.Status,
		CompletedAt:    req.CompletedAt,
	}
}

// filterKeys maps the accepted query parameters onto TaskFilter fields.
var filterKeys = map[string]func(f *ports.TaskFilter, v string){
	"name":    func(f *ports.TaskFilter, v string) { f.Name = v },
	"status":  func(f *ports.TaskFilter, v string) { f.Status = v },
	"project": func(f *ports.TaskFilter, v string) { f.ProjectID = v },
	"team":    func(f *ports.TaskFilter, v string) { f.TeamID = v },
	"owner":   func(f *ports.TaskFilter, v string) { f.OwnerID = v },
	"tag":     func(f *ports.TaskFilter, v string) { f.Tag = v },
}

// parseTaskFilter builds a TaskFilter from the query string. Unknown keys are
// rejected rather than silently ignored.
func parseTaskFilter(q url.Values) (ports.TaskFilter, error) {
	var (
		f       ports.TaskFilter
		unknown []string
	)
	for key, values := range q {
		set, ok := filterKeys[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		if len(values) > 0 {
			set(&f, strings.TrimSpace(values[0]))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		problems := make([]string, len(unknown))
		for i, k := range unknown {
			problems[i] = fmt.Sprintf("unknown filter %q", k)
		}
		return ports.TaskFilter{}, domain.NewValidationError(problems...)
	}
	return f, nil
}

// --- Domain → HTTP response ---

func toTaskResponse(t *domain.Task) taskResponse {
	resp := taskResponse{
		ID:             t.ID,
		Name:           t.Name,
		Project:        t.ProjectID,
		Team:           t.TeamID,
		Owner:          t.OwnerID,
		Tags:           t.Tags,
		TimeToComplete: t.TimeToComplete,
		Status:         t.Status,
		CreatedAt:      t.CreatedAt.UTC().Format(timeLayout),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if t.Project != nil {
		resp.Project = t.Project
	}
	if t.Team != nil {
		resp.Team = t.Team
	}
	if t.Owner != nil {
		resp.Owner = toUserResponse(t.Owner)
	}
	if t.CompletedAt != nil {
		resp.CompletedAt = t.CompletedAt.UTC().Format(timeLayout)
	}
	if !t.UpdatedAt.IsZero() {
		resp.UpdatedAt = t.UpdatedAt.UTC().Format(timeLayout)
	}
	return resp
}

func toTaskResponses(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

func toActivityResponse(a *domain.TaskActivity) activityResponse {
	return activityResponse{
		ID:      a.ID,
		TaskID:  a.TaskID,
		Action:  string(a.Action),
		Status:  a.Status,
		Changed: a.Changed,
		At:      a.At.UTC().Format(timeLayout),
	}
}
