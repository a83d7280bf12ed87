package viewstate

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseval/courseval-backend/internal/repository"
	"github.com/courseval/courseval-backend/internal/repository/memory"
	"github.com/courseval/courseval-backend/internal/session"
)

func newTestView(t *testing.T, email string, admin bool) (*CourseView, *memory.Store) {
	t.Helper()
	store := memory.NewFixture(0)
	sess := session.NewContext(&session.StaticProvider{
		Accounts: map[string]string{email: "password123"},
		Admins:   map[string]bool{email: admin},
	})
	require.NoError(t, sess.Login(context.Background(), email, "password123"))
	view := NewCourseView(store.Courses(), store.Evaluations(), sess, zerolog.Nop())
	return view, store
}

func TestLoad_ComputesAggregate(t *testing.T) {
	view, _ := newTestView(t, "user@example.com", false)
	require.NoError(t, view.Load(context.Background(), "1"))

	assert.Equal(t, StatusReady, view.Status())
	snap := view.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "Introduction to Web Development", snap.Title)
	assert.Equal(t, 2, snap.TotalEvaluations)
	assert.InDelta(t, 4.5, snap.AverageRating, 1e-9)
}

func TestLoad_UnknownCourseFails(t *testing.T) {
	view, _ := newTestView(t, "user@example.com", false)
	err := view.Load(context.Background(), "missing")

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, StatusFailed, view.Status())
	assert.Nil(t, view.Snapshot())
}

func TestSubmitEvaluation_OutOfRangeRatingRejectedLocally(t *testing.T) {
	view, store := newTestView(t, "user@example.com", false)
	require.NoError(t, view.Load(context.Background(), "1"))

	for _, bad := range []int{0, 6} {
		fields, err := view.SubmitEvaluation(context.Background(), EvaluationInput{
			Rating: bad, Title: "t", Description: "d",
		})
		require.NoError(t, err)
		assert.Contains(t, fields, "rating")
	}

	// No network call was issued: the store still holds two evaluations.
	evals, err := store.Evaluations().ListByCourse(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, evals, 2)
	assert.Equal(t, 2, view.Snapshot().TotalEvaluations)
}

func TestSubmitEvaluation_EmptyFieldsRejectedLocally(t *testing.T) {
	view, _ := newTestView(t, "user@example.com", false)
	require.NoError(t, view.Load(context.Background(), "1"))

	fields, err := view.SubmitEvaluation(context.Background(), EvaluationInput{Rating: 4})
	require.NoError(t, err)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "description")
}

func TestSubmitThenRemove_RestoresAggregate(t *testing.T) {
	// Course 1 starts at [5,4]: average 4.5, count 2. Submitting a 3 moves
	// it to average 4.0, count 3; deleting the new evaluation restores it.
	view, _ := newTestView(t, "user@example.com", false)
	ctx := context.Background()
	require.NoError(t, view.Load(ctx, "1"))

	fields, err := view.SubmitEvaluation(ctx, EvaluationInput{
		Rating: 3, Title: "Average", Description: "Middle of the road.",
	})
	require.NoError(t, err)
	require.Empty(t, fields)

	snap := view.Snapshot()
	assert.Equal(t, 3, snap.TotalEvaluations)
	assert.InDelta(t, 4.0, snap.AverageRating, 1e-9)

	newID := snap.Evaluations[2].ID
	require.NoError(t, view.RemoveEvaluation(ctx, newID))

	snap = view.Snapshot()
	assert.Equal(t, 2, snap.TotalEvaluations)
	assert.InDelta(t, 4.5, snap.AverageRating, 1e-9)
}

func TestRemoveEvaluation_SecondDeleteNotFound(t *testing.T) {
	view, _ := newTestView(t, "user@example.com", false)
	ctx := context.Background()
	require.NoError(t, view.Load(ctx, "1"))

	require.NoError(t, view.RemoveEvaluation(ctx, "1"))
	err := view.RemoveEvaluation(ctx, "1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 1, view.Snapshot().TotalEvaluations)
}

func TestRemoveEvaluation_NonExistentLeavesListUnchanged(t *testing.T) {
	view, _ := newTestView(t, "user@example.com", false)
	ctx := context.Background()
	require.NoError(t, view.Load(ctx, "1"))

	err := view.RemoveEvaluation(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 2, view.Snapshot().TotalEvaluations)
}

func TestRemoveEvaluation_AuthorOnly(t *testing.T) {
	// Evaluation 2 on course 1 belongs to student1@example.com.
	view, _ := newTestView(t, "user@example.com", false)
	ctx := context.Background()
	require.NoError(t, view.Load(ctx, "1"))

	err := view.RemoveEvaluation(ctx, "2")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 2, view.Snapshot().TotalEvaluations)
}

func TestRemoveEvaluation_AdminMayRemoveAny(t *testing.T) {
	view, _ := newTestView(t, "admin@example.com", true)
	ctx := context.Background()
	require.NoError(t, view.Load(ctx, "1"))

	require.NoError(t, view.RemoveEvaluation(ctx, "2"))
	snap := view.Snapshot()
	assert.Equal(t, 1, snap.TotalEvaluations)
	assert.InDelta(t, 5.0, snap.AverageRating, 1e-9)
}

func TestRemoveCourse_AdminOnly(t *testing.T) {
	view, _ := newTestView(t, "user@example.com", false)
	ctx := context.Background()
	require.NoError(t, view.Load(ctx, "1"))

	assert.ErrorIs(t, view.RemoveCourse(ctx), ErrForbidden)
}

func TestRemoveCourse_ConflictSurfacedVerbatim(t *testing.T) {
	view, store := newTestView(t, "admin@example.com", true)
	ctx := context.Background()
	store.Enroll("1")
	require.NoError(t, view.Load(ctx, "1"))

	err := view.RemoveCourse(ctx)
	reason, ok := repository.IsConflict(err)
	require.True(t, ok)
	assert.Equal(t, "course has active enrollments", reason)

	// The course remains visible and the view stays Ready.
	assert.Equal(t, StatusReady, view.Status())
	courses, listErr := store.Courses().List(ctx)
	require.NoError(t, listErr)
	assert.Len(t, courses, 4)
}

func TestSubmitEvaluation_RequiresLogin(t *testing.T) {
	view, _ := newTestView(t, "user@example.com", false)
	ctx := context.Background()
	require.NoError(t, view.Load(ctx, "1"))
	require.NoError(t, view.sess.Logout(ctx))

	_, err := view.SubmitEvaluation(ctx, EvaluationInput{
		Rating: 4, Title: "t", Description: "d",
	})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClose_DiscardsResults(t *testing.T) {
	view, _ := newTestView(t, "user@example.com", false)
	view.Close()

	assert.ErrorIs(t, view.Load(context.Background(), "1"), ErrClosed)
	assert.Equal(t, StatusIdle, view.Status())
}

func TestLoad_CanceledContextLeavesStateUntouched(t *testing.T) {
	view, _ := newTestView(t, "user@example.com", false)
	ctx := context.Background()
	require.NoError(t, view.Load(ctx, "1"))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	err := view.Load(canceled, "2")
	assert.Error(t, err)

	// Previous Ready state restored, old data intact.
	assert.Equal(t, StatusReady, view.Status())
	assert.Equal(t, "1", view.Snapshot().ID)
}
