// Package viewstate keeps a single course page session consistent across
// load, submit, and delete operations. It owns the in-memory
// CourseWithEvaluations representation, talks to the repository contract,
// and recomputes the rating aggregate incrementally. Mutations are applied
// only after the store confirms them; on any failure the state stays in its
// last-known-good configuration.
//
// A CourseView is owned by one goroutine (the UI event loop); it is not
// safe for concurrent use. Independent sessions racing each other resolve
// last-write-wins at the server, which is not treated as an error here.
package viewstate

import (
	"context"
	"errors"
	"strings"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/rating"
	"github.com/courseval/courseval-backend/internal/repository"
	"github.com/courseval/courseval-backend/internal/session"
)

// Status is the page session state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

var (
	// ErrNotAuthenticated: the operation requires a logged-in user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden: the session's user may not perform the operation.
	ErrForbidden = errors.New("operation not permitted for this user")

	// ErrNotReady: a mutation was requested before a successful load.
	ErrNotReady = errors.New("course view is not loaded")

	// ErrClosed: the view was torn down; results of in-flight operations
	// are discarded.
	ErrClosed = errors.New("course view is closed")
)

// validate checks evaluation input fields locally, before any store call.
var validate = govalidator.New()

// EvaluationInput is the locally validated submission payload.
type EvaluationInput struct {
	Rating      int
	Title       string
	Description string
}

// CourseView synchronizes one course's view state.
type CourseView struct {
	courses repository.CourseRepository
	evals   repository.EvaluationRepository
	sess    *session.Context
	log     zerolog.Logger

	status      Status
	loadErr     error
	course      model.Course
	evaluations []model.Evaluation
	agg         rating.Aggregate
	// pending marks evaluation IDs with a delete in flight, suppressing
	// duplicate submissions of the same delete.
	pending map[string]bool
	closed  bool
}

// NewCourseView creates an idle view bound to a session context.
func NewCourseView(
	courses repository.CourseRepository,
	evals repository.EvaluationRepository,
	sess *session.Context,
	log zerolog.Logger,
) *CourseView {
	return &CourseView{
		courses: courses,
		evals:   evals,
		sess:    sess,
		log:     log.With().Str("component", "course_view").Logger(),
		pending: make(map[string]bool),
	}
}

// Status returns the current page state.
func (v *CourseView) Status() Status {
	return v.status
}

// Err returns the load failure, if the view is in StatusFailed.
func (v *CourseView) Err() error {
	return v.loadErr
}

// Snapshot returns the current composite view. Valid only in StatusReady.
// AverageRating carries full precision; display rounding is the caller's
// concern.
func (v *CourseView) Snapshot() *model.CourseWithEvaluations {
	if v.status != StatusReady {
		return nil
	}
	evals := make([]model.Evaluation, len(v.evaluations))
	copy(evals, v.evaluations)
	return &model.CourseWithEvaluations{
		Course:           v.course,
		Evaluations:      evals,
		AverageRating:    v.agg.Average,
		TotalEvaluations: v.agg.Count,
	}
}

// Aggregate returns the current rating aggregate.
func (v *CourseView) Aggregate() rating.Aggregate {
	return v.agg
}

// Close tears the view down. Results of operations still in flight are
// discarded without mutating state.
func (v *CourseView) Close() {
	v.closed = true
}

// Load fetches the course and its evaluations. On success the view becomes
// Ready; on failure it becomes Failed and the caller is expected to navigate
// away or retry. A canceled context discards the result and leaves the
// previous state untouched.
func (v *CourseView) Load(ctx context.Context, courseID string) error {
	if v.closed {
		return ErrClosed
	}
	prev := v.status
	v.status = StatusLoading

	course, err := v.courses.GetByID(ctx, courseID)
	if err != nil {
		return v.loadFailed(ctx, prev, err)
	}
	evals, err := v.evals.ListByCourse(ctx, courseID)
	if err != nil {
		return v.loadFailed(ctx, prev, err)
	}
	if v.discard(ctx, prev) {
		return v.discardErr(ctx)
	}

	v.course = *course
	v.evaluations = evals
	v.agg = rating.Compute(evals)
	v.pending = make(map[string]bool)
	v.status = StatusReady
	v.loadErr = nil
	return nil
}

// SubmitEvaluation validates the input locally and, if it passes, creates
// the evaluation for the logged-in user. Validation failures return a
// field-keyed map and issue no store call. The new evaluation is appended
// only after the store confirms it, and the aggregate is updated
// incrementally.
func (v *CourseView) SubmitEvaluation(ctx context.Context, input EvaluationInput) (map[string]string, error) {
	if v.closed {
		return nil, ErrClosed
	}
	if v.status != StatusReady {
		return nil, ErrNotReady
	}
	sess := v.sess.Current()
	if !sess.Authenticated || sess.User == nil {
		return nil, ErrNotAuthenticated
	}

	if fields := validateInput(input, sess.User.Email); len(fields) > 0 {
		return fields, nil
	}

	eval := &model.Evaluation{
		CourseID:     v.course.ID,
		StudentEmail: sess.User.Email,
		Rating:       input.Rating,
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
	}
	if err := v.evals.Create(ctx, eval); err != nil {
		v.log.Warn().Err(err).Str("course_id", v.course.ID).Msg("evaluation submit failed")
		return nil, err
	}
	if v.discard(ctx, v.status) {
		return nil, v.discardErr(ctx)
	}

	v.evaluations = append(v.evaluations, *eval)
	v.agg = rating.ApplyInsert(v.agg, eval.Rating)
	return nil, nil
}

// RemoveEvaluation deletes an evaluation after checking the session is its
// author or an administrator. A second delete of an already-removed ID
// reports ErrNotFound without touching state; a delete already in flight for
// the same ID is treated the same way.
func (v *CourseView) RemoveEvaluation(ctx context.Context, evaluationID string) error {
	if v.closed {
		return ErrClosed
	}
	if v.status != StatusReady {
		return ErrNotReady
	}
	sess := v.sess.Current()
	if !sess.Authenticated || sess.User == nil {
		return ErrNotAuthenticated
	}

	idx := -1
	for i, e := range v.evaluations {
		if e.ID == evaluationID {
			idx = i
			break
		}
	}
	if idx < 0 || v.pending[evaluationID] {
		return repository.ErrNotFound
	}
	target := v.evaluations[idx]
	if target.StudentEmail != sess.User.Email && !sess.User.Admin {
		return ErrForbidden
	}

	v.pending[evaluationID] = true
	err := v.evals.Delete(ctx, evaluationID)
	delete(v.pending, evaluationID)
	if err != nil {
		v.log.Warn().Err(err).Str("evaluation_id", evaluationID).Msg("evaluation delete failed")
		return err
	}
	if v.discard(ctx, v.status) {
		return v.discardErr(ctx)
	}

	v.evaluations = append(v.evaluations[:idx:idx], v.evaluations[idx+1:]...)
	v.agg = rating.ApplyRemove(v.agg, target.Rating)
	return nil
}

// RemoveCourse deletes the loaded course. Admin only. A dependency-blocked
// delete surfaces the store's ConflictError unchanged so the caller can show
// the server's explanation verbatim.
func (v *CourseView) RemoveCourse(ctx context.Context) error {
	if v.closed {
		return ErrClosed
	}
	if v.status != StatusReady {
		return ErrNotReady
	}
	if !v.sess.IsAdmin() {
		return ErrForbidden
	}

	if err := v.courses.Delete(ctx, v.course.ID); err != nil {
		v.log.Warn().Err(err).Str("course_id", v.course.ID).Msg("course delete failed")
		return err
	}
	if v.discard(ctx, v.status) {
		return v.discardErr(ctx)
	}

	v.status = StatusIdle
	v.evaluations = nil
	v.agg = rating.Aggregate{}
	return nil
}

// loadFailed records a load failure, unless the context was canceled or the
// view closed, in which case the previous state is restored.
func (v *CourseView) loadFailed(ctx context.Context, prev Status, err error) error {
	if v.discard(ctx, prev) {
		return v.discardErr(ctx)
	}
	v.status = StatusFailed
	v.loadErr = err
	v.log.Error().Err(err).Msg("course load failed")
	return err
}

// discard reports whether an operation's result must be thrown away
// (canceled context or torn-down view), restoring the given status.
func (v *CourseView) discard(ctx context.Context, restore Status) bool {
	if v.closed {
		return true
	}
	if ctx.Err() != nil {
		v.status = restore
		return true
	}
	return false
}

// discardErr names the reason a result was thrown away.
func (v *CourseView) discardErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrClosed
}

// validateInput performs the local pre-network checks and returns a
// field-keyed error map, empty when the input is valid.
func validateInput(input EvaluationInput, email string) map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "title must not be empty"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "description must not be empty"
	}
	if input.Rating < 1 || input.Rating > 5 {
		fields["rating"] = "rating must be between 1 and 5"
	}
	if err := validate.Var(email, "required,email"); err != nil {
		fields["studentEmail"] = "a well-formed email address is required"
	}
	return fields
}
