package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/repository"
)

// EvaluationRepository is the in-memory evaluation store view.
type EvaluationRepository struct {
	s *Store
}

// ListByCourse returns a course's evaluations in creation order.
func (r *EvaluationRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Evaluation, error) {
	if err := r.s.delay(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var evals []model.Evaluation
	for _, e := range r.s.evaluations {
		if e.CourseID == courseID {
			evals = append(evals, e)
		}
	}
	sort.Slice(evals, func(i, j int) bool {
		return evals[i].CreatedAt.Before(evals[j].CreatedAt)
	})
	return evals, nil
}

// GetByID retrieves an evaluation by its ID.
func (r *EvaluationRepository) GetByID(ctx context.Context, id string) (*model.Evaluation, error) {
	if err := r.s.delay(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.evaluations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

// Create inserts an evaluation, assigning ID and CreatedAt. A missing
// course yields ErrNotFound.
func (r *EvaluationRepository) Create(ctx context.Context, e *model.Evaluation) error {
	if err := r.s.delay(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.courses[e.CourseID]; !ok {
		return repository.ErrNotFound
	}
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()
	r.s.evaluations[e.ID] = *e
	return nil
}

// Delete removes an evaluation by its ID.
func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	if err := r.s.delay(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.evaluations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.evaluations, id)
	return nil
}
