// Package repository defines the data access contract for courses,
// evaluations, and users. Two profiles implement it: postgres (production)
// and memory (fixture-backed, with artificial latency). The rest profile is
// the same contract spoken over the HTTP API, used by the console client.
// Callers treat every profile as a black box failing only with the typed
// errors in errors.go.
package repository

import (
	"context"

	"github.com/courseval/courseval-backend/internal/model"
)

// CourseRepository handles course persistence.
type CourseRepository interface {
	// List returns all courses, newest first.
	List(ctx context.Context) ([]model.Course, error)

	// GetByID retrieves a course or ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Course, error)

	// Create inserts a course, filling ID and timestamps.
	Create(ctx context.Context, course *model.Course) error

	// Update modifies an existing course or returns ErrNotFound.
	Update(ctx context.Context, course *model.Course) error

	// Delete removes a course. A dependency-blocked delete (dependent
	// enrollments) returns a ConflictError carrying the server's reason.
	Delete(ctx context.Context, id string) error
}

// EvaluationRepository handles evaluation persistence.
type EvaluationRepository interface {
	// ListByCourse returns a course's evaluations in creation order.
	ListByCourse(ctx context.Context, courseID string) ([]model.Evaluation, error)

	// GetByID retrieves an evaluation or ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Evaluation, error)

	// Create inserts an evaluation, filling ID and CreatedAt. A missing
	// course yields ErrNotFound.
	Create(ctx context.Context, eval *model.Evaluation) error

	// Delete removes an evaluation or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// UserRepository handles user accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}
