package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/repository"
	"github.com/courseval/courseval-backend/internal/repository/memory"
)

func newEvalService(store *memory.Store) *EvaluationService {
	return NewEvaluationService(store.Evaluations(), nil, zerolog.Nop())
}

func TestEvaluationCreate_AssignsServerFields(t *testing.T) {
	svc := newEvalService(memory.NewFixture(0))

	eval, err := svc.Create(context.Background(), &model.CreateEvaluationRequest{
		CourseID: "1", Rating: 4, Title: "Solid", Description: "Worth the time.",
	}, "user@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, eval.ID)
	assert.False(t, eval.CreatedAt.IsZero())
	assert.Equal(t, "user@example.com", eval.StudentEmail)
}

func TestEvaluationCreate_UnknownCourse(t *testing.T) {
	svc := newEvalService(memory.NewFixture(0))

	_, err := svc.Create(context.Background(), &model.CreateEvaluationRequest{
		CourseID: "missing", Rating: 4, Title: "t", Description: "d",
	}, "user@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEvaluationDelete_AuthorAllowed(t *testing.T) {
	store := memory.NewFixture(0)
	svc := newEvalService(store)
	ctx := context.Background()

	// Evaluation 1 belongs to user@example.com.
	require.NoError(t, svc.Delete(ctx, "1", "user@example.com", false))

	evals, err := store.Evaluations().ListByCourse(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, evals, 1)
}

func TestEvaluationDelete_NonAuthorRejected(t *testing.T) {
	store := memory.NewFixture(0)
	svc := newEvalService(store)
	ctx := context.Background()

	err := svc.Delete(ctx, "1", "someone-else@example.com", false)
	assert.ErrorIs(t, err, ErrNotEvaluationAuthor)

	// List unchanged after the rejected delete.
	evals, listErr := store.Evaluations().ListByCourse(ctx, "1")
	require.NoError(t, listErr)
	assert.Len(t, evals, 2)
}

func TestEvaluationDelete_AdminAllowed(t *testing.T) {
	svc := newEvalService(memory.NewFixture(0))
	assert.NoError(t, svc.Delete(context.Background(), "1", "admin@example.com", true))
}

func TestEvaluationDelete_RepeatReportsNotFound(t *testing.T) {
	svc := newEvalService(memory.NewFixture(0))
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "1", "user@example.com", false))
	assert.ErrorIs(t, svc.Delete(ctx, "1", "user@example.com", false), repository.ErrNotFound)
}
