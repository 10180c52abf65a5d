package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/api/handler"
	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
	"github.com/taskboard/tracker-api/internal/core/service"
)

type emptyTaskService struct{}

func (emptyTaskService) Create(context.Context, ports.CreateTaskInput) (*ports.TaskResult, error) {
	return nil, domain.NewValidationError("name is required")
}

func (emptyTaskService) List(context.Context, ports.TaskFilter) ([]*domain.Task, error) {
	return nil, domain.ErrNoTasks
}

func (emptyTaskService) Update(context.Context, string, domain.TaskPatch) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (emptyTaskService) Delete(context.Context, string) error { return domain.ErrTaskNotFound }

type meOnlyAuth struct{ ports.AuthService }

func (meOnlyAuth) Me(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, Name: "Ada", Email: "ada@example.com"}, nil
}

func newTestRouter(t *testing.T, authRequired bool) (http.Handler, string) {
	t.Helper()
	tokens := service.NewTokenService("test-secret", time.Hour)
	token, err := tokens.Issue("65a1f0c2b3d4e5f601234567")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	e := NewRouter(Dependencies{
		Auth:         meOnlyAuth{},
		Tokens:       tokens,
		Tasks:        emptyTaskService{},
		Health:       handler.NewHealthHandler(nil, nil),
		Log:          zerolog.Nop(),
		AuthRequired: authRequired,
		Registry:     prometheus.NewRegistry(),
	})
	return e, token
}

func do(h http.Handler, method, target, token string) (int, map[string]any) {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec.Code, body
}

func TestRouter_GatedRoutes(t *testing.T) {
	h, token := newTestRouter(t, true)

	code, body := do(h, http.MethodGet, "/tasks", "")
	if code != http.StatusUnauthorized || body["error"] != "no token provided" {
		t.Fatalf("no token: got %d %v", code, body)
	}

	code, body = do(h, http.MethodGet, "/tasks", "not-a-jwt")
	if code != http.StatusUnauthorized || body["error"] != "invalid token" {
		t.Fatalf("bad token: got %d %v", code, body)
	}

	code, body = do(h, http.MethodGet, "/tasks", token)
	if code != http.StatusNotFound || body["error"] != "no task found" {
		t.Fatalf("valid token: got %d %v", code, body)
	}

	code, _ = do(h, http.MethodGet, "/tasks", "Bearer "+token)
	if code != http.StatusNotFound {
		t.Fatalf("bearer form: got %d", code)
	}
}

func TestRouter_OpenLayout(t *testing.T) {
	h, token := newTestRouter(t, false)

	if code, _ := do(h, http.MethodGet, "/tasks", ""); code != http.StatusNotFound {
		t.Fatalf("ungated /tasks: got %d, want 404", code)
	}
	if code, _ := do(h, http.MethodGet, "/auth/me", ""); code != http.StatusUnauthorized {
		t.Fatalf("/auth/me must stay gated, got %d", code)
	}

	code, body := do(h, http.MethodGet, "/auth/me", token)
	if code != http.StatusOK || body["email"] != "ada@example.com" {
		t.Fatalf("/auth/me with token: got %d %v", code, body)
	}
}

func TestRouter_UnknownFilterRejected(t *testing.T) {
	h, token := newTestRouter(t, true)
	code, body := do(h, http.MethodGet, "/tasks?password=x", token)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %v", code, body)
	}
}

func TestRouter_DeleteUnknownTask(t *testing.T) {
	h, token := newTestRouter(t, true)
	code, body := do(h, http.MethodDelete, "/tasks/65a1f0c2b3d4e5f601234567", token)
	if code != http.StatusNotFound || body["error"] != "task not found" {
		t.Fatalf("expected 404, got %d %v", code, body)
	}
}

func TestRouter_PublicProbes(t *testing.T) {
	h, _ := newTestRouter(t, true)
	if code, _ := do(h, http.MethodGet, "/health", ""); code != http.StatusOK {
		t.Fatalf("/health: got %d", code)
	}
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics: got %d", rec.Code)
	}
}
