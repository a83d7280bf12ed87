package service

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/repository"
)

// ErrNotEvaluationAuthor: only the author or an admin may delete an
// evaluation.
var ErrNotEvaluationAuthor = errors.New("not the evaluation author")

// EvaluationService handles review submission and removal, keeping the
// cached course aggregate in step incrementally.
type EvaluationService struct {
	evalRepo repository.EvaluationRepository
	cache    *aggregateCache
	log      zerolog.Logger
}

// NewEvaluationService creates a new EvaluationService. rdb may be nil in
// tests; aggregate caching is skipped then.
func NewEvaluationService(evalRepo repository.EvaluationRepository, rdb *redis.Client, log zerolog.Logger) *EvaluationService {
	s := &EvaluationService{
		evalRepo: evalRepo,
		log:      log.With().Str("component", "evaluation_service").Logger(),
	}
	if rdb != nil {
		s.cache = &aggregateCache{rdb: rdb}
	}
	return s
}

// Get retrieves a single evaluation or ErrNotFound.
func (s *EvaluationService) Get(ctx context.Context, id string) (*model.Evaluation, error) {
	return s.evalRepo.GetByID(ctx, id)
}

// ListByCourse returns a course's evaluations in creation order.
func (s *EvaluationService) ListByCourse(ctx context.Context, courseID string) ([]model.Evaluation, error) {
	return s.evalRepo.ListByCourse(ctx, courseID)
}

// Create submits an evaluation for the authenticated student. The referenced
// course must exist (ErrNotFound otherwise). On success the cached aggregate
// is advanced incrementally instead of being recomputed.
func (s *EvaluationService) Create(ctx context.Context, req *model.CreateEvaluationRequest, studentEmail string) (*model.Evaluation, error) {
	eval := &model.Evaluation{
		CourseID:     req.CourseID,
		StudentEmail: studentEmail,
		Rating:       req.Rating,
		Title:        req.Title,
		Description:  req.Description,
	}
	if err := s.evalRepo.Create(ctx, eval); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Insert(ctx, eval.CourseID, eval.Rating); err != nil {
			s.log.Warn().Err(err).Str("course_id", eval.CourseID).Msg("aggregate cache insert failed")
		}
	}
	return eval, nil
}

// Delete removes an evaluation on behalf of actorEmail. Only the author or
// an admin may delete; a repeat delete of the same ID reports ErrNotFound.
func (s *EvaluationService) Delete(ctx context.Context, id, actorEmail string, actorIsAdmin bool) error {
	eval, err := s.evalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if eval.StudentEmail != actorEmail && !actorIsAdmin {
		return ErrNotEvaluationAuthor
	}

	if err := s.evalRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Remove(ctx, eval.CourseID, eval.Rating); err != nil {
			s.log.Warn().Err(err).Str("course_id", eval.CourseID).Msg("aggregate cache remove failed")
		}
	}
	return nil
}
