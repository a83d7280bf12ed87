package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/rating"
	"github.com/courseval/courseval-backend/internal/repository"
)

// CourseService handles catalog business logic and composes the derived
// CourseWithEvaluations read model.
type CourseService struct {
	courseRepo repository.CourseRepository
	evalRepo   repository.EvaluationRepository
	cache      *aggregateCache
	log        zerolog.Logger
}

// NewCourseService creates a new CourseService. rdb may be nil in tests;
// the aggregate cache is skipped entirely then.
func NewCourseService(
	courseRepo repository.CourseRepository,
	evalRepo repository.EvaluationRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *CourseService {
	s := &CourseService{
		courseRepo: courseRepo,
		evalRepo:   evalRepo,
		log:        log.With().Str("component", "course_service").Logger(),
	}
	if rdb != nil {
		s.cache = &aggregateCache{rdb: rdb}
	}
	return s
}

// List retrieves all courses, newest first.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.List(ctx)
}

// ListWithRatings retrieves the catalog with per-course aggregates for the
// list view. Aggregates come from the cache when warm; misses are computed
// from the evaluations and backfilled.
func (s *CourseService) ListWithRatings(ctx context.Context) ([]model.CourseSummary, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.CourseSummary, 0, len(courses))
	for _, course := range courses {
		agg, cached := s.cachedAggregate(ctx, course.ID)
		if !cached {
			evals, err := s.evalRepo.ListByCourse(ctx, course.ID)
			if err != nil {
				return nil, err
			}
			agg = rating.Compute(evals)
			s.backfillAggregate(ctx, course.ID, agg)
		}
		summaries = append(summaries, model.CourseSummary{
			Course:           course,
			AverageRating:    agg.Rounded(),
			TotalEvaluations: agg.Count,
		})
	}
	return summaries, nil
}

// GetWithEvaluations composes the derived read model for the course detail
// view. The aggregate is always recomputed from the freshly fetched
// evaluations so the count matches the returned list exactly; the result
// also backfills the cache.
func (s *CourseService) GetWithEvaluations(ctx context.Context, id string) (*model.CourseWithEvaluations, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	evals, err := s.evalRepo.ListByCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if evals == nil {
		evals = []model.Evaluation{}
	}

	agg := rating.Compute(evals)
	s.backfillAggregate(ctx, id, agg)

	return &model.CourseWithEvaluations{
		Course:           *course,
		Evaluations:      evals,
		AverageRating:    agg.Rounded(),
		TotalEvaluations: agg.Count,
	}, nil
}

// Create inserts a new course owned by the creating admin.
func (s *CourseService) Create(ctx context.Context, req *model.CreateCourseRequest, creatorEmail string) (*model.Course, error) {
	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		Hours:        req.Hours,
		Instructor:   req.Instructor,
		CreatorEmail: creatorEmail,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Update modifies an existing course.
func (s *CourseService) Update(ctx context.Context, id string, req *model.UpdateCourseRequest) (*model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Title = req.Title
	course.Description = req.Description
	course.Hours = req.Hours
	course.Instructor = req.Instructor

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course. A dependency-blocked delete propagates the
// repository's ConflictError untouched; its reason reaches the user
// verbatim.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("course_id", id).Msg("aggregate cache invalidation failed")
		}
	}
	return nil
}

func (s *CourseService) cachedAggregate(ctx context.Context, id string) (rating.Aggregate, bool) {
	if s.cache == nil {
		return rating.Aggregate{}, false
	}
	return s.cache.Get(ctx, id)
}

func (s *CourseService) backfillAggregate(ctx context.Context, id string, agg rating.Aggregate) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, id, agg); err != nil {
		s.log.Warn().Err(err).Str("course_id", id).Msg("aggregate cache backfill failed")
	}
}
