package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/forgo/clubs/api/internal/database"
)

// getOne runs a single-row query. A missing row yields (nil, nil).
func getOne[T any](ctx context.Context, q database.Querier, query string, args ...interface{}) (*T, error) {
	var v T
	if err := q.GetContext(ctx, &v, q.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, database.MapError(err)
	}
	return &v, nil
}

// selectAll runs a multi-row query. The result is never nil.
func selectAll[T any](ctx context.Context, q database.Querier, query string, args ...interface{}) ([]T, error) {
	out := []T{}
	if err := q.SelectContext(ctx, &out, q.Rebind(query), args...); err != nil {
		return nil, database.MapError(err)
	}
	return out, nil
}

// insertID runs an INSERT ... RETURNING id statement.
func insertID(ctx context.Context, q database.Querier, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := q.QueryRowxContext(ctx, q.Rebind(query), args...).Scan(&id); err != nil {
		return 0, database.MapError(err)
	}
	return id, nil
}

// execAffected runs a statement and reports whether it touched any row.
func execAffected(ctx context.Context, q database.Querier, query string, args ...interface{}) (bool, error) {
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return false, database.MapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// exists runs a SELECT EXISTS(...) query.
func exists(ctx context.Context, q database.Querier, query string, args ...interface{}) (bool, error) {
	var ok bool
	if err := q.GetContext(ctx, &ok, q.Rebind(query), args...); err != nil {
		return false, database.MapError(err)
	}
	return ok, nil
}

// nullString maps a nil pointer to NULL.
func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
