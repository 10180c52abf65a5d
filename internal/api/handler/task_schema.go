package handler

import "time"

const timeLayout = time.RFC3339

// errorResponse documents the envelope rendered by the central error handler.
type errorResponse struct {
	Error string `json:"error"`
}

type createTaskRequest struct {
	Name           string     `json:"name"`
	Project        string     `json:"project"`
	Team           string     `json:"team"`
	Owner          string     `json:"owner"`
	TimeToComplete *float64   `json:"timeToComplete"`
	Tags           []string   `json:"tags"`
	Status         string     `json:"status"`
	CreatedAt      *time.Time `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt"`
}

// updateTaskRequest lists the fields a PATCH may touch. Others are ignored.
type updateTaskRequest struct {
	Name           *string    `json:"name"`
	Project        *string    `json:"project"`
	Team           *string    `json:"team"`
	Owner          *string    `json:"owner"`
	Tags           *[]string  `json:"tags"`
	TimeToComplete *float64   `json:"timeToComplete"`
	Status         *string    `json:"status"`
	CompletedAt    *time.Time `json:"completedAt"`
}

type taskResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Project        any      `json:"project"`
	Team           any      `json:"team"`
	Owner          any      `json:"owner"`
	Tags           []string `json:"tags"`
	TimeToComplete *float64 `json:"timeToComplete,omitempty"`
	Status         string   `json:"status"`
	CompletedAt    string   `json:"completedAt,omitempty"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt,omitempty"`
}

type taskEnvelope struct {
	Message string       `json:"message"`
	Task    taskResponse `json:"task"`
}

type activityResponse struct {
	ID      string   `json:"id"`
	TaskID  string   `json:"taskId"`
	Action  string   `json:"action"`
	Status  string   `json:"status,omitempty"`
	Changed []string `json:"changed,omitempty"`
	At      string   `json:"at"`
}
