package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/taskboard/tracker-api/internal/api/middleware"
	"github.com/taskboard/tracker-api/internal/core/domain"
)

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			if name != "Alice" || email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return &domain.User{ID: "u1", Name: name, Email: email, PasswordHash: "hash"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(t, http.MethodPost, "/auth/signup", `{"name":"Alice","email":"alice@example.com","password":"secret"}`)
	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User registered successfully.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatal("password hash leaked into response")
	}
}

func TestAuthHandler_Signup_UserExists(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/auth/signup", `{"name":"Bob","email":"b@example.com","password":"x"}`)
	if err := handler.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/auth/signup", "not-json")
	var verr *domain.ValidationError
	if err := handler.Signup(c); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u1", Name: "Alice"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(t, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" || resp["message"] != "Login successful" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	for _, want := range []error{domain.ErrInvalidCredentials, domain.ErrUserNotFound} {
		stub := &stubAuthService{
			loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
				return "", nil, want
			},
		}
		c, _ := newContext(t, http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"bad"}`)
		if err := NewAuthHandler(stub).Login(c); !errors.Is(err, want) {
			t.Errorf("expected %v, got %v", want, err)
		}
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(t, http.MethodGet, "/auth/me", "")
	c.Set(middleware.UserIDKey, "u1")
	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["password"]; ok {
		t.Fatal("password must not be serialised")
	}
}

func TestAuthHandler_Me_WithoutIdentity(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})
	c, _ := newContext(t, http.MethodGet, "/auth/me", "")
	if err := handler.Me(c); !errors.Is(err, domain.ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestAuthHandler_Users_Empty(t *testing.T) {
	stub := &stubAuthService{
		usersFn: func(ctx context.Context) ([]*domain.User, error) { return nil, domain.ErrNoUsers },
	}
	c, _ := newContext(t, http.MethodGet, "/users", "")
	if err := NewAuthHandler(stub).Users(c); !errors.Is(err, domain.ErrNoUsers) {
		t.Fatalf("expected ErrNoUsers, got %v", err)
	}
}
