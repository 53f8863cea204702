package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"

	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

// Result reports what a write changed.
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// Executor runs single statements and transaction scripts against the
// pool with the shared retry policy. Reads fetch the full result set and
// release the connection; writes always run inside an explicit
// transaction and either commit or roll back. No path leaks a lease.
type Executor struct {
	db     *sqlx.DB
	policy RetryPolicy
	logger *slog.Logger
}

// ExecutorOption customizes an Executor.
type ExecutorOption func(*Executor)

// WithPolicy overrides the retry policy.
func WithPolicy(policy RetryPolicy) ExecutorOption {
	return func(e *Executor) { e.policy = policy }
}

// WithLogger attaches a logger for retry and rollback events.
func WithLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) { e.logger = logger }
}

// NewExecutor builds an Executor over the pool.
func NewExecutor(pool *Pool, opts ...ExecutorOption) *Executor {
	e := &Executor{db: pool.db, policy: DefaultRetryPolicy(), logger: pool.logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Select runs a read and scans all rows into dest.
func (e *Executor) Select(ctx context.Context, dest any, query string, args ...any) error {
	err := e.policy.Do(ctx, e.logger, "select", func() error {
		return e.db.SelectContext(ctx, dest, query, args...)
	})
	return e.classifyRead(err)
}

// Get runs a read expecting a single row. sql.ErrNoRows passes through
// untouched so callers can map it to their own not-found failures.
func (e *Executor) Get(ctx context.Context, dest any, query string, args ...any) error {
	err := e.policy.Do(ctx, e.logger, "get", func() error {
		return e.db.GetContext(ctx, dest, query, args...)
	})
	return e.classifyRead(err)
}

// QueryMaps runs a read and returns dictionary rows, the shape the
// ad-hoc SELECT surface and the table browser expose.
func (e *Executor) QueryMaps(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	var result []map[string]any
	err := e.policy.Do(ctx, e.logger, "query", func() error {
		rows, err := e.db.QueryxContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		result = result[:0]
		for rows.Next() {
			row := map[string]any{}
			if err := rows.MapScan(row); err != nil {
				return err
			}
			for k, v := range row {
				if b, ok := v.([]byte); ok {
					row[k] = string(b)
				}
			}
			result = append(result, row)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, e.classifyRead(err)
	}
	return result, nil
}

// Exec runs a single write inside an explicit transaction: begin,
// execute, commit. Any failure between execute and commit rolls back
// before the connection is released.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	var result Result
	err := e.Transact(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		id, _ := res.LastInsertId()
		n, _ := res.RowsAffected()
		result = Result{LastInsertID: id, RowsAffected: n}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// Transact runs fn inside one transaction. A failing fn or a failing
// commit rolls everything back; the whole script is retried only while
// nothing has committed, so a commit error is never re-run.
func (e *Executor) Transact(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	err := e.policy.Do(ctx, e.logger, "transact", func() error {
		tx, err := e.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		if err := fn(tx); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && e.logger != nil {
				e.logger.Error("rollback failed", slog.String("error", rbErr.Error()))
			}
			return err
		}
		if err := tx.Commit(); err != nil {
			return permanent(err)
		}
		return nil
	})
	return e.classifyWrite(err)
}

// classifyRead wraps driver-level read errors, leaving sentinel results
// (no rows) and already-classified failures alone.
func (e *Executor) classifyRead(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return e.classify(err)
}

func (e *Executor) classifyWrite(err error) error {
	if err == nil {
		return nil
	}
	return e.classify(err)
}

func (e *Executor) classify(err error) error {
	var failure *sharederrors.Failure
	if errors.As(err, &failure) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return sharederrors.Wrap(sharederrors.KindNonTransientQuery, "query rejected by store", err)
}
