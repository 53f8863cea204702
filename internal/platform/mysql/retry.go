package mysql

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	mysqldrv "github.com/go-sql-driver/mysql"

	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

// MySQL server error numbers that are worth retrying: lock wait timeout
// and deadlock victim. Every other server-side error is a statement or
// constraint problem that a retry cannot fix.
const (
	errLockWaitTimeout = 1205
	errDeadlock        = 1213
)

// RetryPolicy bounds the retry loop shared by reads, writes, and the
// order transaction: total attempts, base delay, and growth factor.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	Multiplier      float64
}

// DefaultRetryPolicy mirrors the behavior the store has always had:
// three attempts with 1s, 2s, 4s between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialInterval: time.Second, Multiplier: 2}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialInterval
	bo.Multiplier = p.Multiplier
	bo.RandomizationFactor = 0
	bo.MaxInterval = time.Hour
	bo.MaxElapsedTime = 0
	bo.Reset()
	return backoff.WithContext(bo, ctx)
}

// Transient reports whether err is an infrastructure failure expected to
// resolve on retry. Context cancellation and server-side statement
// errors are not transient.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var serverErr *mysqldrv.MySQLError
	if errors.As(err, &serverErr) {
		return serverErr.Number == errLockWaitTimeout || serverErr.Number == errDeadlock
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysqldrv.ErrInvalidConn) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// permanentError pins an error so the retry loop surfaces it untouched,
// even when its cause would classify as transient. A failed COMMIT is
// the one case that needs this: the transaction may have landed, so
// re-running it is never safe.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error { return &permanentError{err: err} }

// Do runs fn under the policy. Transient failures are retried with
// exponential backoff until the attempts run out, then wrapped in a
// retries-exhausted failure (pool-exhausted when the last error was an
// acquisition timeout). Non-transient failures surface immediately.
func (p RetryPolicy) Do(ctx context.Context, logger *slog.Logger, op string, fn func() error) error {
	attempt := 0
	wrapped := func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		var pinned *permanentError
		if errors.As(err, &pinned) {
			return backoff.Permanent(pinned)
		}
		if !Transient(err) {
			return backoff.Permanent(err)
		}
		if logger != nil {
			logger.Warn("query failed, will retry",
				slog.String("op", op),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
		}
		return err
	}

	err := backoff.Retry(wrapped, backoff.WithMaxRetries(p.backOff(ctx), uint64(p.MaxAttempts-1)))
	if err == nil {
		return nil
	}
	var pinned *permanentError
	if errors.As(err, &pinned) {
		// A pinned error keeps its identity: its cause may look
		// transient, but the pin means retrying was never an option.
		return pinned.err
	}
	if !Transient(err) {
		return err
	}
	kind := sharederrors.KindRetriesExhausted
	if errors.Is(err, context.DeadlineExceeded) {
		kind = sharederrors.KindPoolExhausted
	}
	return sharederrors.Wrap(kind, op+" failed after retries", err).
		WithDetail("attempts", attempt)
}
