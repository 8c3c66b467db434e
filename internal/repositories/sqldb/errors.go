package sqldb

import (
	"context"
	"errors"

	"tattoo-studio-api/internal/repositories"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// PostgreSQL SQLSTATE codes for integrity violations
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
	pqCheckViolation      = "23514"
	pqNotNullViolation    = "23502"
)

// classify maps driver errors onto the repository error taxonomy
func classify(op, entity string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqForeignKeyViolation:
			return repositories.ForeignKeyError(op, entity, err)
		case pqUniqueViolation:
			return repositories.DuplicateError(op, entity, err)
		case pqCheckViolation, pqNotNullViolation:
			return repositories.ConstraintError(op, entity, err)
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return repositories.ForeignKeyError(op, entity, err)
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return repositories.DuplicateError(op, entity, err)
		default:
			return repositories.ConstraintError(op, entity, err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	return repositories.NewRepositoryError(op, entity, 0, err)
}
