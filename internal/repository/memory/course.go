package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/repository"
)

// CourseRepository is the in-memory course store view.
type CourseRepository struct {
	s *Store
}

// List returns all courses, newest first.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	if err := r.s.delay(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	courses := make([]model.Course, 0, len(r.s.courses))
	for _, c := range r.s.courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})
	return courses, nil
}

// GetByID retrieves a course by its ID.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	if err := r.s.delay(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

// Create inserts a course, assigning ID and timestamps.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	if err := r.s.delay(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()
	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.s.courses[c.ID] = *c
	return nil
}

// Update modifies an existing course. Creation metadata is immutable.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	if err := r.s.delay(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.courses[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	c.CreatedAt = stored.CreatedAt
	c.CreatorEmail = stored.CreatorEmail
	c.UpdatedAt = time.Now().UTC()
	r.s.courses[c.ID] = *c
	return nil
}

// Delete removes a course and cascades its evaluations. Courses with
// dependent enrollments are rejected with a ConflictError.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if err := r.s.delay(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.courses[id]; !ok {
		return repository.ErrNotFound
	}
	if r.s.enrollments[id] > 0 {
		return &repository.ConflictError{Reason: "course has active enrollments"}
	}
	delete(r.s.courses, id)
	for evalID, e := range r.s.evaluations {
		if e.CourseID == id {
			delete(r.s.evaluations, evalID)
		}
	}
	return nil
}
