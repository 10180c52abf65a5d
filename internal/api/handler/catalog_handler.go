package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// CatalogHandler serves teams, projects and tags.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type createTeamRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Members     []string `json:"members" validate:"omitempty,dive,required"`
}

type createProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type createTagRequest struct {
	Name string `json:"name" validate:"required"`
}

type teamEnvelope struct {
	Message string       `json:"message"`
	Team    *domain.Team `json:"team"`
}

type projectEnvelope struct {
	Message string          `json:"message"`
	Project *domain.Project `json:"project"`
}

type tagEnvelope struct {
	Message string      `json:"message"`
	Tags    *domain.Tag `json:"tags"`
}

// CreateTeam handles POST /teams.
//
// @Summary      Create a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      createTeamRequest  true  "Team"
// @Success      200   {object}  teamEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /teams [post]
func (h *CatalogHandler) CreateTeam(c echo.Context) error {
	var req createTeamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	team, err := h.service.CreateTeam(c.Request().Context(), &domain.Team{
		Name:        req.Name,
		Description: req.Description,
		Members:     req.Members,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teamEnvelope{Message: "Team created successfully", Team: team})
}

// ListTeams handles GET /teams.
//
// @Summary      List teams
// @Tags         teams
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Team
// @Failure      404  {object}  errorResponse
// @Router       /teams [get]
func (h *CatalogHandler) ListTeams(c echo.Context) error {
	teams, err := h.service.ListTeams(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teams)
}

// CreateProject handles POST /projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      createProjectRequest  true  "Project"
// @Success      200   {object}  projectEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /projects [post]
func (h *CatalogHandler) CreateProject(c echo.Context) error {
	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.service.CreateProject(c.Request().Context(), &domain.Project{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projectEnvelope{Message: "Project added successfully", Project: project})
}

// ListProjects handles GET /projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Project
// @Failure      404  {object}  errorResponse
// @Router       /projects [get]
func (h *CatalogHandler) ListProjects(c echo.Context) error {
	projects, err := h.service.ListProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// CreateTag handles POST /tags.
//
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      createTagRequest  true  "Tag"
// @Success      200   {object}  tagEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /tags [post]
func (h *CatalogHandler) CreateTag(c echo.Context) error {
	var req createTagRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tag, err := h.service.CreateTag(c.Request().Context(), &domain.Tag{Name: req.Name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tagEnvelope{Message: "Tags added successfully", Tags: tag})
}

// ListTags handles GET /tags.
//
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Tag
// @Failure      404  {object}  errorResponse
// @Router       /tags [get]
func (h *CatalogHandler) ListTags(c echo.Context) error {
	tags, err := h.service.ListTags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}
