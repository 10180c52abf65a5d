package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User // keyed by email
	nextID  int
	creates int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.creates++
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("%024x", r.nextID)
	r.users[copy.Email] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

// bcryptHasher uses the minimum cost to keep tests fast.
type bcryptHasher struct{}

func (bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(b), err
}

func (bcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks     map[string]*domain.Task
	nextID    int
	createErr error
	findErr   error
	lastPatch domain.TaskPatch
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	t.ID = fmt.Sprintf("%024x", r.nextID)
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

// FindByID mimics reference expansion by attaching stub sub-documents.
func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	out := cloneTask(t)
	out.Project = &domain.Project{ID: t.ProjectID, Name: "project"}
	out.Team = &domain.Team{ID: t.TeamID, Name: "team"}
	out.Owner = &domain.User{ID: t.OwnerID, Name: "owner"}
	return out, nil
}

func (r *stubTaskRepo) Find(_ context.Context, f ports.TaskFilter) ([]*domain.Task, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.Task
	for _, t := range r.tasks {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.OwnerID != "" && t.OwnerID != f.OwnerID {
			continue
		}
		out = append(out, cloneTask(t))
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, id string, p domain.TaskPatch) error {
	r.lastPatch = p
	t, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.TeamID != nil {
		t.TeamID = *p.TeamID
	}
	if p.OwnerID != nil {
		t.OwnerID = *p.OwnerID
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
	if p.TimeToComplete != nil {
		t.TimeToComplete = p.TimeToComplete
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.CompletedAt != nil {
		t.CompletedAt = p.CompletedAt
	}
	if p.ClearCompletedAt {
		t.CompletedAt = nil
	}
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// stubIdempotency mirrors the SETNX reservation: an empty value is a key
// whose create is still running.
type stubIdempotency struct {
	mu         sync.Mutex
	keys       map[string]string
	reserveErr error
	released   []string
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Reserve(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserveErr != nil {
		return "", false, s.reserveErr
	}
	if id, ok := s.keys[key]; ok {
		return id, false, nil
	}
	s.keys[key] = ""
	return "", true, nil
}

func (s *stubIdempotency) Remember(_ context.Context, key, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = taskID
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	s.released = append(s.released, key)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.TaskActivity
}

func (p *recordingPublisher) Publish(a domain.TaskActivity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, a)
}

// ---------------------------------------------------------------------------
// Reports
// ---------------------------------------------------------------------------

type stubReportRepo struct {
	tasks []*domain.Task
	err   error
	since time.Time
}

func (r *stubReportRepo) CompletedSince(_ context.Context, since time.Time) ([]*domain.Task, error) {
	r.since = since
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.IsCompleted() && t.CompletedAt != nil && !t.CompletedAt.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubReportRepo) ForEachPending(_ context.Context, fn func(*domain.Task) error) error {
	if r.err != nil {
		return r.err
	}
	for _, t := range r.tasks {
		if t.IsCompleted() {
			continue
		}
		if err := fn(t); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubReportRepo) ForEachCompleted(_ context.Context, fn func(domain.ClosedTaskKey) error) error {
	if r.err != nil {
		return r.err
	}
	for _, t := range r.tasks {
		if !t.IsCompleted() {
			continue
		}
		if err := fn(domain.ClosedTaskKey{TeamID: t.TeamID, OwnerID: t.OwnerID, ProjectID: t.ProjectID}); err != nil {
			return err
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
