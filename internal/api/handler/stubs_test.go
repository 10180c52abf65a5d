package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// newContext builds an echo context for a JSON request with the handler
// package's validator installed.
func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubAuthService struct {
	signupFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
	meFn     func(ctx context.Context, userID string) (*domain.User, error)
	usersFn  func(ctx context.Context) ([]*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.signupFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.usersFn(ctx)
}

type stubTaskService struct {
	createFn func(ctx context.Context, in ports.CreateTaskInput) (*ports.TaskResult, error)
	listFn   func(ctx context.Context, f ports.TaskFilter) ([]*domain.Task, error)
	updateFn func(ctx context.Context, id string, p domain.TaskPatch) (*domain.Task, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubTaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*ports.TaskResult, error) {
	return s.createFn(ctx, in)
}

func (s *stubTaskService) List(ctx context.Context, f ports.TaskFilter) ([]*domain.Task, error) {
	return s.listFn(ctx, f)
}

func (s *stubTaskService) Update(ctx context.Context, id string, p domain.TaskPatch) (*domain.Task, error) {
	return s.updateFn(ctx, id, p)
}

func (s *stubTaskService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubActivityService struct {
	history []*domain.TaskActivity
	err     error
}

func (s *stubActivityService) Process(context.Context, domain.TaskActivity) error { return nil }

func (s *stubActivityService) History(context.Context, string) ([]*domain.TaskActivity, error) {
	return s.history, s.err
}

type stubCatalogService struct {
	teamErr error
	teams   []*domain.Team
	listErr error
	created *domain.Team
}

func (s *stubCatalogService) CreateTeam(_ context.Context, t *domain.Team) (*domain.Team, error) {
	if s.teamErr != nil {
		return nil, s.teamErr
	}
	t.ID = "65a1f0c2b3d4e5f601234567"
	s.created = t
	return t, nil
}

func (s *stubCatalogService) ListTeams(context.Context) ([]*domain.Team, error) {
	return s.teams, s.listErr
}

func (s *stubCatalogService) CreateProject(_ context.Context, p *domain.Project) (*domain.Project, error) {
	return p, nil
}

func (s *stubCatalogService) ListProjects(context.Context) ([]*domain.Project, error) {
	return nil, domain.ErrNoProjects
}

func (s *stubCatalogService) CreateTag(_ context.Context, t *domain.Tag) (*domain.Tag, error) {
	return t, nil
}

func (s *stubCatalogService) ListTags(context.Context) ([]*domain.Tag, error) {
	return []*domain.Tag{{ID: "1", Name: "backend"}}, nil
}

type stubReportService struct {
	tasks  []*domain.Task
	total  float64
	counts []domain.ClosedTaskCount
	err    error
}

func (s *stubReportService) LastWeekCompleted(context.Context) ([]*domain.Task, error) {
	return s.tasks, s.err
}

func (s *stubReportService) PendingWorkTotal(context.Context) (float64, error) {
	return s.total, s.err
}

func (s *stubReportService) ClosedTaskCounts(context.Context) ([]domain.ClosedTaskCount, error) {
	return s.counts, s.err
}
