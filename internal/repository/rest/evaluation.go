package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/courseval/courseval-backend/internal/model"
)

// EvaluationRepository is the evaluation contract spoken over HTTP.
type EvaluationRepository struct {
	c *Client
}

func (r *EvaluationRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	path := "/api/v1/courses/" + url.PathEscape(courseID) + "/evaluations"
	if err := r.c.do(ctx, http.MethodGet, path, nil, &evaluations); err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *EvaluationRepository) GetByID(ctx context.Context, id string) (*model.Evaluation, error) {
	var eval model.Evaluation
	if err := r.c.do(ctx, http.MethodGet, "/api/v1/evaluations/"+url.PathEscape(id), nil, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

// Create submits the evaluation as the authenticated user. The server stamps
// the student email from the token; StudentEmail on the input is ignored.
func (r *EvaluationRepository) Create(ctx context.Context, eval *model.Evaluation) error {
	req := model.CreateEvaluationRequest{
		CourseID:    eval.CourseID,
		Rating:      eval.Rating,
		Title:       eval.Title,
		Description: eval.Description,
	}
	return r.c.do(ctx, http.MethodPost, "/api/v1/evaluations", req, eval)
}

func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/api/v1/evaluations/"+url.PathEscape(id), nil, nil)
}
