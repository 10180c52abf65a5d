package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/tracker-api/internal/api/metrics"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service  ports.TaskService
	activity ports.ActivityService
}

func NewTaskHandler(service ports.TaskService, activity ports.ActivityService) *TaskHandler {
	return &TaskHandler{service: service, activity: activity}
}

// Create handles POST /tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        Idempotency-Key  header    string             false  "Replays the first result for a repeated key"
// @Param        body             body      createTaskRequest  true   "Task details"
// @Success      201              {object}  taskEnvelope
// @Success      200              {object}  taskEnvelope
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}

	key := c.Request().Header.Get("Idempotency-Key")
	result, err := h.service.Create(c.Request().Context(), toCreateTaskInput(req, key))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
		metrics.TasksCreatedTotal.WithLabelValues("replayed").Inc()
	} else {
		metrics.TasksCreatedTotal.WithLabelValues("created").Inc()
	}

	return c.JSON(status, taskEnvelope{
		Message: "Task created successfully",
		Task:    toTaskResponse(result.Task),
	})
}

// List handles GET /tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     TokenAuth
// @Param        name     query     string  false  "Exact task name"
// @Param        status   query     string  false  "Task status"
// @Param        project  query     string  false  "Project id"
// @Param        team     query     string  false  "Team id"
// @Param        owner    query     string  false  "Owner id"
// @Param        tag      query     string  false  "Tag"
// @Success      200      {array}   taskResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	filter, err := parseTaskFilter(c.QueryParams())
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// Update handles PATCH /tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), toTaskPatch(req))
	if err != nil {
		return err
	}

	if req.Status != nil {
		metrics.TaskStatusUpdatesTotal.WithLabelValues(metrics.StatusLabel(task.Status)).Inc()
	}
	return c.JSON(http.StatusOK, taskEnvelope{
		Message: "Task update successfully",
		Task:    toTaskResponse(task),
	})
}

// Delete handles DELETE /tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Task delete successfully."})
}

// Activity handles GET /tasks/:id/activity.
//
// @Summary      Task activity trail
// @Tags         tasks
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {array}   activityResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id}/activity [get]
func (h *TaskHandler) Activity(c echo.Context) error {
	history, err := h.activity.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	resp := make([]activityResponse, len(history))
	for i, a := range history {
		resp[i] = toActivityResponse(a)
	}
	return c.JSON(http.StatusOK, resp)
}
