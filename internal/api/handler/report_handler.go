package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/ports"
)

// ReportHandler serves the reporting endpoints. Each route maps its own
// failure to a fixed status code.
type ReportHandler struct {
	service ports.ReportService
	log     zerolog.Logger
}

func NewReportHandler(service ports.ReportService, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{service: service, log: log}
}

type lastWeekResponse struct {
	Message string         `json:"message"`
	Tasks   []taskResponse `json:"tasks"`
}

type pendingResponse struct {
	Message string  `json:"message"`
	Total   float64 `json:"total"`
}

type closedTaskRow struct {
	Team             string `json:"team"`
	Owner            string `json:"owner"`
	Project          string `json:"project"`
	ClosedTasksCount int    `json:"closedTasksCount"`
}

type closedTasksResponse struct {
	Message string          `json:"message"`
	Data    []closedTaskRow `json:"data"`
}

// LastWeek handles GET /report/last-week.
//
// @Summary      Tasks completed in the last seven days
// @Tags         reports
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  lastWeekResponse
// @Failure      404  {object}  errorResponse
// @Router       /report/last-week [get]
func (h *ReportHandler) LastWeek(c echo.Context) error {
	tasks, err := h.service.LastWeekCompleted(c.Request().Context())
	if err != nil {
		return h.fail(c, err, http.StatusNotFound, "failed to fetch last week completed data")
	}
	return c.JSON(http.StatusOK, lastWeekResponse{
		Message: "Task completed in last week",
		Tasks:   toTaskResponses(tasks),
	})
}

// Pending handles GET /report/pending.
//
// @Summary      Total estimated days of open work
// @Tags         reports
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  pendingResponse
// @Failure      404  {object}  errorResponse
// @Router       /report/pending [get]
func (h *ReportHandler) Pending(c echo.Context) error {
	total, err := h.service.PendingWorkTotal(c.Request().Context())
	if err != nil {
		return h.fail(c, err, http.StatusNotFound, "failed to fetch pending work")
	}
	return c.JSON(http.StatusOK, pendingResponse{Message: "Task pending work in days", Total: total})
}

// ClosedTasks handles GET /report/closed-tasks.
//
// @Summary      Completed task counts by team, owner and project
// @Tags         reports
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  closedTasksResponse
// @Failure      500  {object}  errorResponse
// @Router       /report/closed-tasks [get]
func (h *ReportHandler) ClosedTasks(c echo.Context) error {
	counts, err := h.service.ClosedTaskCounts(c.Request().Context())
	if err != nil {
		return h.fail(c, err, http.StatusInternalServerError, "Failed to generate closed tasks report")
	}

	rows := make([]closedTaskRow, len(counts))
	for i, row := range counts {
		rows[i] = closedTaskRow{
			Team:             row.TeamID,
			Owner:            row.OwnerID,
			Project:          row.ProjectID,
			ClosedTasksCount: row.Count,
		}
	}
	return c.JSON(http.StatusOK, closedTasksResponse{
		Message: "Closed task counts grouped by team, owner, and project",
		Data:    rows,
	})
}

func (h *ReportHandler) fail(c echo.Context, err error, status int, msg string) error {
	h.log.Error().Err(err).Str("path", c.Path()).Msg("report failed")
	return c.JSON(status, errorResponse{Error: msg})
}
