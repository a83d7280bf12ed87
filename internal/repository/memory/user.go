package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/repository"
)

// UserRepository is the in-memory user store view.
type UserRepository struct {
	s *Store
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := r.s.delay(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := r.s.delay(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Create inserts a user, assigning ID and CreatedAt. Duplicate emails are
// rejected with a ConflictError.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	if err := r.s.delay(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return &repository.ConflictError{Reason: "email already registered"}
		}
	}
	u.ID = uuid.New().String()
	u.CreatedAt = time.Now().UTC()
	r.s.users[u.ID] = *u
	return nil
}
