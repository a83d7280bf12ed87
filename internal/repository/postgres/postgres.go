// Package postgres implements the repository contract on a pgx connection
// pool. Driver errors are translated into the repository error taxonomy at
// this boundary so nothing pgx-specific escapes.
package postgres

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/courseval/courseval-backend/internal/repository"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// translate maps a pgx error onto the repository taxonomy.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return repository.ErrUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return &repository.ConflictError{Reason: conflictReason(pgErr)}
		case pgUniqueViolation:
			return &repository.ConflictError{Reason: "resource already exists"}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return repository.ErrUnavailable
	}

	return err
}

// conflictReason turns a foreign key violation into the user-facing
// explanation the handlers surface verbatim.
func conflictReason(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName == "enrollments_course_id_fkey" {
		return "course has active enrollments"
	}
	return "resource is referenced by other data"
}
