package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/repository"
)

// EvaluationRepository is the pgx-backed evaluation store.
type EvaluationRepository struct {
	pool *pgxpool.Pool
}

// NewEvaluationRepository creates a new EvaluationRepository.
func NewEvaluationRepository(pool *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{pool: pool}
}

// ListByCourse retrieves a course's evaluations in creation order.
func (r *EvaluationRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Evaluation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, student_email, rating, title, description, created_at
		 FROM evaluations WHERE course_id = $1 ORDER BY created_at ASC`, courseID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var evals []model.Evaluation
	for rows.Next() {
		var e model.Evaluation
		if err := rows.Scan(&e.ID, &e.CourseID, &e.StudentEmail, &e.Rating,
			&e.Title, &e.Description, &e.CreatedAt); err != nil {
			return nil, translate(err)
		}
		evals = append(evals, e)
	}
	return evals, translate(rows.Err())
}

// GetByID retrieves an evaluation by its ID.
func (r *EvaluationRepository) GetByID(ctx context.Context, id string) (*model.Evaluation, error) {
	e := &model.Evaluation{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, course_id, student_email, rating, title, description, created_at
		 FROM evaluations WHERE id = $1`, id,
	).Scan(&e.ID, &e.CourseID, &e.StudentEmail, &e.Rating, &e.Title, &e.Description, &e.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// Create inserts a new evaluation. A dangling course reference violates the
// FK and is reported as ErrNotFound, matching the contract.
func (r *EvaluationRepository) Create(ctx context.Context, e *model.Evaluation) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO evaluations (course_id, student_email, rating, title, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.CourseID, e.StudentEmail, e.Rating, e.Title, e.Description,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if _, conflict := repository.IsConflict(translate(err)); conflict {
			// The only FK on this insert points at courses.
			return repository.ErrNotFound
		}
		return translate(err)
	}
	return nil
}

// Delete removes an evaluation by its ID.
func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
