package selector

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

// Executor is the part of database/sql a Database runs statements with.
// Both *sql.DB and *sql.Tx satisfy it, so a caller decides whether work happens inside a transaction.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	_ Executor = (*sql.DB)(nil)
	_ Executor = (*sql.Tx)(nil)
)

// Driver executes reads and writes on behalf of a SelectionBuilder.
type Driver interface {
	Query(ctx context.Context, p QueryParams) (*sql.Rows, error)
	Update(ctx context.Context, table string, values Values, selection string, selectionArgs []any) (int64, error)
	Delete(ctx context.Context, table string, selection string, selectionArgs []any) (int64, error)
}

var _ Driver = (*Database)(nil)

// Database is a Driver which renders SQL and runs it with an Executor.
// Errors from the Executor are passed back as they are.
type Database struct {
	exec   Executor
	logger *zap.Logger
}

type Option func(*Database)

// WithLogger sets the logger statements are written to, at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Database) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func NewDatabase(exec Executor, opts ...Option) *Database {
	d := &Database{
		exec:   exec,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Query runs the SELECT described by p. The caller owns, and must close, the returned rows.
func (d *Database) Query(ctx context.Context, p QueryParams) (*sql.Rows, error) {
	query, err := buildQueryString(p)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("query", zap.String("sql", query), zap.Int("args", len(p.SelectionArgs)))
	rows, err := d.exec.QueryContext(ctx, query, p.SelectionArgs...)
	if err != nil {
		d.logger.Debug("query failed", zap.String("sql", query), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// Update sets values on every row of table matching selection, and returns the number of rows affected.
func (d *Database) Update(ctx context.Context, table string, values Values, selection string, selectionArgs []any) (int64, error) {
	query, args, err := buildUpdateString(table, values, selection, selectionArgs)
	if err != nil {
		return 0, err
	}

	result, err := d.execContext(ctx, query, args)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Delete removes every row of table matching selection, and returns the number of rows affected.
func (d *Database) Delete(ctx context.Context, table string, selection string, selectionArgs []any) (int64, error) {
	result, err := d.execContext(ctx, buildDeleteString(table, selection), selectionArgs)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Insert writes a single row and returns its row ID.
func (d *Database) Insert(ctx context.Context, table string, values Values) (int64, error) {
	query, args, err := buildInsertString(table, values)
	if err != nil {
		return 0, err
	}

	result, err := d.execContext(ctx, query, args)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (d *Database) execContext(ctx context.Context, query string, args []any) (sql.Result, error) {
	d.logger.Debug("exec", zap.String("sql", query), zap.Int("args", len(args)))
	result, err := d.exec.ExecContext(ctx, query, args...)
	if err != nil {
		d.logger.Debug("exec failed", zap.String("sql", query), zap.Error(err))
		return nil, err
	}
	return result, nil
}
