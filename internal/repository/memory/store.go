// Package memory implements the repository contract on in-process maps.
// It exists for offline development and tests: same typed errors as the
// postgres profile, plus a configurable artificial latency so callers see
// timing close to a real round-trip. Thread-safe via sync.RWMutex.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/repository"
)

// Store holds the complete in-memory dataset. The per-resource repositories
// returned by Courses, Evaluations, and Users share it.
type Store struct {
	mu          sync.RWMutex
	latency     time.Duration
	courses     map[string]model.Course
	evaluations map[string]model.Evaluation
	users       map[string]model.User
	// enrollments tracks course IDs with dependent enrollments; deleting
	// such a course is rejected with a ConflictError, mirroring the FK
	// restriction the postgres profile enforces.
	enrollments map[string]int
}

// New creates an empty Store with the given artificial latency.
func New(latency time.Duration) *Store {
	return &Store{
		latency:     latency,
		courses:     make(map[string]model.Course),
		evaluations: make(map[string]model.Evaluation),
		users:       make(map[string]model.User),
		enrollments: make(map[string]int),
	}
}

// Courses returns the course repository view.
func (s *Store) Courses() *CourseRepository {
	return &CourseRepository{s: s}
}

// Evaluations returns the evaluation repository view.
func (s *Store) Evaluations() *EvaluationRepository {
	return &EvaluationRepository{s: s}
}

// Users returns the user repository view.
func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

// Enroll registers a dependent enrollment on a course, blocking its deletion.
func (s *Store) Enroll(courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollments[courseID]++
}

// delay blocks for the configured latency, honoring ctx cancellation. A
// canceled context reports ErrUnavailable like a dropped connection would.
func (s *Store) delay(ctx context.Context) error {
	if s.latency <= 0 {
		if ctx.Err() != nil {
			return repository.ErrUnavailable
		}
		return nil
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return repository.ErrUnavailable
	}
}
