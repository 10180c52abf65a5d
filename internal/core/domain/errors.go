package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserExists         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenMissing = errors.New("no token provided")
	ErrTokenInvalid = errors.New("invalid token")

	ErrTaskNotFound = errors.New("task not found")
	ErrNoTasks      = errors.New("no task found")
	ErrNoUsers      = errors.New("no users found")
	ErrNoTeams      = errors.New("team does not exist")
	ErrNoProjects   = errors.New("no project found")
	ErrNoTags       = errors.New("tags not found")
	ErrNoActivity   = errors.New("no activity found")

	ErrIdempotencyInFlight = errors.New("a request with this idempotency key is still in progress")
)

// notFound lists every error that renders as a 404.
var notFound = []error{
	ErrUserNotFound,
	ErrTaskNotFound,
	ErrNoTasks,
	ErrNoUsers,
	ErrNoTeams,
	ErrNoProjects,
	ErrNoTags,
	ErrNoActivity,
}

// IsNotFound reports whether err denotes a missing entity or an empty collection.
func IsNotFound(err error) bool {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ValidationError carries every problem found in a malformed payload.
type ValidationError struct {
	Problems []string
}

// NewValidationError builds a ValidationError from one or more problems.
func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid payload"
	}
	return strings.Join(e.Problems, "; ")
}

// CreationError reports that the store rejected a new record.
type CreationError struct {
	Entity string
	Err    error
}

func (e *CreationError) Error() string {
	return "failed to add " + e.Entity
}

func (e *CreationError) Unwrap() error { return e.Err }
