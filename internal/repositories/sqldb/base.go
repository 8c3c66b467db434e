package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tattoo-studio-api/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// baseRepository provides the logged query helpers shared by all repositories.
// Queries are written with ? placeholders and rebound for the active driver.
type baseRepository struct {
	ext    sqlx.ExtContext
	entity string
	logger *logrus.Logger
}

func newBaseRepository(ext sqlx.ExtContext, entity string, logger *logrus.Logger) baseRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return baseRepository{
		ext:    ext,
		entity: entity,
		logger: logger,
	}
}

// logQuery logs a query with its execution time
func (r *baseRepository) logQuery(operation, query string, args []interface{}, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"entity":    r.entity,
		"query":     query,
		"args":      args,
		"duration":  duration,
	}

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
	} else {
		r.logger.WithFields(fields).Debug("Query executed")
	}
}

// get scans a single row into dest. A missing row is returned as sql.ErrNoRows.
func (r *baseRepository) get(ctx context.Context, operation string, dest interface{}, query string, args ...interface{}) error {
	query = r.ext.Rebind(query)

	start := time.Now()
	err := sqlx.GetContext(ctx, r.ext, dest, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return classify(operation, r.entity, err)
	}
	return err
}

// selectRows scans all rows into dest, which must be a pointer to a slice
func (r *baseRepository) selectRows(ctx context.Context, operation string, dest interface{}, query string, args ...interface{}) error {
	query = r.ext.Rebind(query)

	start := time.Now()
	err := sqlx.SelectContext(ctx, r.ext, dest, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return classify(operation, r.entity, err)
	}
	return nil
}

// exec executes a non-query statement and logs the result
func (r *baseRepository) exec(ctx context.Context, operation, query string, args ...interface{}) (sql.Result, error) {
	query = r.ext.Rebind(query)

	start := time.Now()
	result, err := r.ext.ExecContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return nil, classify(operation, r.entity, err)
	}
	return result, nil
}

// insert runs an INSERT ... RETURNING id statement and returns the new id
func (r *baseRepository) insert(ctx context.Context, operation, query string, args ...interface{}) (int64, error) {
	query = r.ext.Rebind(query)

	var id int64
	start := time.Now()
	err := r.ext.QueryRowxContext(ctx, query, args...).Scan(&id)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return 0, classify(operation, r.entity, err)
	}
	return id, nil
}

// checkRowsAffected returns a not-found error when the statement touched no rows
func (r *baseRepository) checkRowsAffected(result sql.Result, operation string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return repositories.NewRepositoryError(operation, r.entity, id, err)
	}

	if rowsAffected == 0 {
		return repositories.NotFoundError(r.entity, id)
	}

	return nil
}

// notFound converts sql.ErrNoRows into the repository not-found error
func (r *baseRepository) notFound(err error, operation string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repositories.NotFoundError(r.entity, id)
	}
	if err != nil {
		return repositories.NewRepositoryError(operation, r.entity, id, err)
	}
	return nil
}
