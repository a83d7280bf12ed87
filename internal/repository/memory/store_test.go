package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/repository"
)

func TestFixture_SeededCatalog(t *testing.T) {
	s := NewFixture(0)
	ctx := context.Background()

	courses, err := s.Courses().List(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 4)

	evals, err := s.Evaluations().ListByCourse(ctx, "1")
	require.NoError(t, err)
	require.Len(t, evals, 2)
	// Creation order.
	assert.Equal(t, 5, evals[0].Rating)
	assert.Equal(t, 4, evals[1].Rating)

	admin, err := s.Users().GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

func TestCourseDelete_BlockedByEnrollment(t *testing.T) {
	s := NewFixture(0)
	ctx := context.Background()
	s.Enroll("1")

	err := s.Courses().Delete(ctx, "1")
	reason, ok := repository.IsConflict(err)
	require.True(t, ok)
	assert.Equal(t, "course has active enrollments", reason)

	// Course is still visible after the rejected delete.
	_, err = s.Courses().GetByID(ctx, "1")
	assert.NoError(t, err)
}

func TestCourseDelete_CascadesEvaluations(t *testing.T) {
	s := NewFixture(0)
	ctx := context.Background()

	require.NoError(t, s.Courses().Delete(ctx, "1"))

	evals, err := s.Evaluations().ListByCourse(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, evals)
}

func TestEvaluationCreate_UnknownCourse(t *testing.T) {
	s := NewFixture(0)
	err := s.Evaluations().Create(context.Background(), &model.Evaluation{
		CourseID: "missing", StudentEmail: "user@example.com", Rating: 4,
		Title: "t", Description: "d",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEvaluationDelete_SecondDeleteNotFound(t *testing.T) {
	s := NewFixture(0)
	ctx := context.Background()

	require.NoError(t, s.Evaluations().Delete(ctx, "1"))
	assert.ErrorIs(t, s.Evaluations().Delete(ctx, "1"), repository.ErrNotFound)
}

func TestDelay_CanceledContextReportsUnavailable(t *testing.T) {
	s := NewFixture(50 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Courses().List(ctx)
	assert.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestUserCreate_DuplicateEmailConflict(t *testing.T) {
	s := NewFixture(0)
	err := s.Users().Create(context.Background(), &model.User{
		Email: "user@example.com", Name: "Other", Role: model.RoleUser,
	})
	_, ok := repository.IsConflict(err)
	assert.True(t, ok)
}
