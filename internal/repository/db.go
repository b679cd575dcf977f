package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errNoRows = errors.New("no rows in result set")

type rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

type row interface {
	Scan(dest ...any) error
}

// conn is the subset of a driver the repository needs. Queries use $N
// placeholders, which both Postgres and SQLite accept.
type conn interface {
	query(ctx context.Context, sql string, args ...any) (rows, error)
	queryRow(ctx context.Context, sql string, args ...any) row
	exec(ctx context.Context, sql string, args ...any) (int64, error)
	close()
}

type pgxConn struct {
	pool *pgxpool.Pool
}

func (c pgxConn) query(ctx context.Context, q string, args ...any) (rows, error) {
	return c.pool.Query(ctx, q, args...)
}

func (c pgxConn) queryRow(ctx context.Context, q string, args ...any) row {
	return pgxRow{c.pool.QueryRow(ctx, q, args...)}
}

func (c pgxConn) exec(ctx context.Context, q string, args ...any) (int64, error) {
	tag, err := c.pool.Exec(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (c pgxConn) close() { c.pool.Close() }

type pgxRow struct {
	pgx.Row
}

func (r pgxRow) Scan(dest ...any) error {
	if err := r.Row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errNoRows
		}
		return err
	}
	return nil
}

type sqlConn struct {
	db *sql.DB
}

func (c sqlConn) query(ctx context.Context, q string, args ...any) (rows, error) {
	rs, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rs}, nil
}

func (c sqlConn) queryRow(ctx context.Context, q string, args ...any) row {
	return sqlRow{c.db.QueryRowContext(ctx, q, args...)}
}

func (c sqlConn) exec(ctx context.Context, q string, args ...any) (int64, error) {
	res, err := c.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c sqlConn) close() { c.db.Close() }

type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() { r.Rows.Close() }

type sqlRow struct {
	*sql.Row
}

func (r sqlRow) Scan(dest ...any) error {
	if err := r.Row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errNoRows
		}
		return err
	}
	return nil
}
