package mysql

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

func TestTransient(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		transient bool
	}{
		{"nil", nil, false},
		{"bad conn", driver.ErrBadConn, true},
		{"invalid conn", mysqldrv.ErrInvalidConn, true},
		{"eof", io.EOF, true},
		{"unexpected eof", io.ErrUnexpectedEOF, true},
		{"deadline", context.DeadlineExceeded, true},
		{"net timeout", &net.OpError{Op: "read", Err: errors.New("connection reset")}, true},
		{"lock wait timeout", &mysqldrv.MySQLError{Number: 1205}, true},
		{"deadlock", &mysqldrv.MySQLError{Number: 1213}, true},
		{"duplicate key", &mysqldrv.MySQLError{Number: 1062}, false},
		{"syntax error", &mysqldrv.MySQLError{Number: 1064}, false},
		{"canceled", context.Canceled, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.transient, Transient(tc.err))
		})
	}
}

func TestDo_RetriesTransientThenSucceeds(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, InitialInterval: time.Millisecond, Multiplier: 2}

	calls := 0
	err := policy.Do(context.Background(), nil, "test", func() error {
		calls++
		if calls < 3 {
			return mysqldrv.ErrInvalidConn
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, InitialInterval: time.Millisecond, Multiplier: 2}

	calls := 0
	err := policy.Do(context.Background(), nil, "test", func() error {
		calls++
		return mysqldrv.ErrInvalidConn
	})
	assert.Equal(t, 3, calls)
	assert.Equal(t, sharederrors.KindRetriesExhausted, sharederrors.KindOf(err))
	assert.Equal(t, 3, sharederrors.AsFailure(err).Details["attempts"])
}

func TestDo_NonTransientSurfacesImmediately(t *testing.T) {
	policy := DefaultRetryPolicy()

	calls := 0
	boom := &mysqldrv.MySQLError{Number: 1062, Message: "duplicate entry"}
	err := policy.Do(context.Background(), nil, "test", func() error {
		calls++
		return boom
	})
	assert.Equal(t, 1, calls, "non-transient errors must not be retried")
	assert.ErrorIs(t, err, boom)
}

func TestDo_PinnedErrorNeverRetried(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, InitialInterval: time.Millisecond, Multiplier: 2}

	calls := 0
	err := policy.Do(context.Background(), nil, "test", func() error {
		calls++
		return permanent(mysqldrv.ErrInvalidConn)
	})
	assert.Equal(t, 1, calls, "a pinned error stops the loop even when transient")
	assert.ErrorIs(t, err, mysqldrv.ErrInvalidConn)
}

func TestDo_DeadlineMapsToPoolExhausted(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 2, InitialInterval: time.Millisecond, Multiplier: 2}

	err := policy.Do(context.Background(), nil, "test", func() error {
		return context.DeadlineExceeded
	})
	assert.Equal(t, sharederrors.KindPoolExhausted, sharederrors.KindOf(err))
}

func TestBackOff_DoublesInterval(t *testing.T) {
	policy := DefaultRetryPolicy()
	bo := policy.backOff(context.Background())

	assert.Equal(t, time.Second, bo.NextBackOff())
	assert.Equal(t, 2*time.Second, bo.NextBackOff())
	assert.Equal(t, 4*time.Second, bo.NextBackOff())
}
