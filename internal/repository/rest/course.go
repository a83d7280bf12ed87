package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/courseval/courseval-backend/internal/model"
)

// CourseRepository is the course contract spoken over HTTP.
type CourseRepository struct {
	c *Client
}

func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	// The list endpoint returns summaries; the aggregate fields are simply
	// ignored when only the course rows are wanted.
	var summaries []model.CourseSummary
	if err := r.c.do(ctx, http.MethodGet, "/api/v1/courses", nil, &summaries); err != nil {
		return nil, err
	}

	courses := make([]model.Course, 0, len(summaries))
	for _, s := range summaries {
		courses = append(courses, s.Course)
	}
	return courses, nil
}

// ListSummaries returns the list rows with their rating aggregates intact.
func (r *CourseRepository) ListSummaries(ctx context.Context) ([]model.CourseSummary, error) {
	var summaries []model.CourseSummary
	if err := r.c.do(ctx, http.MethodGet, "/api/v1/courses", nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var detail model.CourseWithEvaluations
	if err := r.c.do(ctx, http.MethodGet, "/api/v1/courses/"+url.PathEscape(id), nil, &detail); err != nil {
		return nil, err
	}
	course := detail.Course
	return &course, nil
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	req := model.CreateCourseRequest{
		Title:       course.Title,
		Description: course.Description,
		Hours:       course.Hours,
		Instructor:  course.Instructor,
	}
	return r.c.do(ctx, http.MethodPost, "/api/v1/courses", req, course)
}

func (r *CourseRepository) Update(ctx context.Context, course *model.Course) error {
	req := model.UpdateCourseRequest{
		Title:       course.Title,
		Description: course.Description,
		Hours:       course.Hours,
		Instructor:  course.Instructor,
	}
	return r.c.do(ctx, http.MethodPut, "/api/v1/courses/"+url.PathEscape(course.ID), req, course)
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/api/v1/courses/"+url.PathEscape(id), nil, nil)
}
