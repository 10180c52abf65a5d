package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", domain.NewValidationError("name is required", "owner must be a valid object id"), http.StatusBadRequest, "name is required; owner must be a valid object id"},
		{"token missing", domain.ErrTokenMissing, http.StatusUnauthorized, "no token provided"},
		{"token invalid", domain.ErrTokenInvalid, http.StatusUnauthorized, "invalid token"},
		{"bad password", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"duplicate email", domain.ErrUserExists, http.StatusConflict, "email already registered"},
		{"idempotency key in flight", domain.ErrIdempotencyInFlight, http.StatusConflict, "a request with this idempotency key is still in progress"},
		{"user gone", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"task id", fmt.Errorf("task id abc: %w", domain.ErrTaskNotFound), http.StatusNotFound, "task id abc: task not found"},
		{"empty list", domain.ErrNoTasks, http.StatusNotFound, "no task found"},
		{"creation", &domain.CreationError{Entity: "team", Err: errors.New("E11000")}, http.StatusInternalServerError, "failed to add team"},
		{"echo", echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"), http.StatusMethodNotAllowed, "method not allowed"},
		{"unexpected", errors.New("socket closed"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("message = %q, want %q", body.Error, tc.msg)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusAccepted, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusAccepted || rec.Body.String() != "done" {
		t.Fatalf("committed response was overwritten: %d %q", rec.Code, rec.Body.String())
	}
}
