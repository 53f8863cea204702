package mysql

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

func newMockExecutor(t *testing.T) (*Executor, *Pool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pool := NewPoolFromDB(sqlx.NewDb(db, "sqlmock"), nil)
	exec := NewExecutor(pool, WithPolicy(RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
		Multiplier:      2,
	}))
	return exec, pool, mock
}

const countQuery = `SELECT COUNT(*) AS n FROM product`

func TestSelect_RetriesDroppedConnection(t *testing.T) {
	exec, _, mock := newMockExecutor(t)

	mock.ExpectQuery(regexp.QuoteMeta(countQuery)).WillReturnError(mysqldrv.ErrInvalidConn)
	mock.ExpectQuery(regexp.QuoteMeta(countQuery)).WillReturnError(mysqldrv.ErrInvalidConn)
	mock.ExpectQuery(regexp.QuoteMeta(countQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(12))

	var counts []int
	err := exec.Select(context.Background(), &counts, countQuery)
	require.NoError(t, err)
	assert.Equal(t, []int{12}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelect_GivesUpAfterMaxAttempts(t *testing.T) {
	exec, _, mock := newMockExecutor(t)

	for i := 0; i < 3; i++ {
		mock.ExpectQuery(regexp.QuoteMeta(countQuery)).WillReturnError(mysqldrv.ErrInvalidConn)
	}

	var counts []int
	err := exec.Select(context.Background(), &counts, countQuery)
	assert.Equal(t, sharederrors.KindRetriesExhausted, sharederrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet(), "exactly three attempts, no more")
}

func TestGet_NoRowsPassesThrough(t *testing.T) {
	exec, _, mock := newMockExecutor(t)

	query := `SELECT name FROM product WHERE product_id = ?`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	var name string
	err := exec.Get(context.Background(), &name, query, int64(1))
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet(), "no rows is a result, not a retryable failure")
}

func TestExec_WrapsWriteInTransaction(t *testing.T) {
	exec, _, mock := newMockExecutor(t)

	stmt := `UPDATE product SET price = ? WHERE product_id = ?`
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(stmt)).
		WithArgs(int64(2599), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := exec.Exec(context.Background(), stmt, int64(2599), int64(4))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.RowsAffected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExec_NonTransientRollsBackWithoutRetry(t *testing.T) {
	exec, _, mock := newMockExecutor(t)

	stmt := `INSERT INTO sellers (email) VALUES (?)`
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(stmt)).
		WithArgs("dup@example.com").
		WillReturnError(&mysqldrv.MySQLError{Number: 1062, Message: "duplicate entry"})
	mock.ExpectRollback()

	_, err := exec.Exec(context.Background(), stmt, "dup@example.com")
	assert.Equal(t, sharederrors.KindNonTransientQuery, sharederrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet(), "single attempt, rolled back")
}

func TestTransact_CommitFailureIsNeverRetried(t *testing.T) {
	exec, _, mock := newMockExecutor(t)

	stmt := `UPDATE settings SET value = ? WHERE name = ?`
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(stmt)).
		WithArgs("on", "maintenance").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(mysqldrv.ErrInvalidConn)

	err := exec.Transact(context.Background(), func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(context.Background(), stmt, "on", "maintenance")
		return err
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, mysqldrv.ErrInvalidConn)
	assert.NoError(t, mock.ExpectationsWereMet(),
		"a failed commit may have landed on the server, so the script must not re-run")
}

func TestQueryMaps_NormalizesBytes(t *testing.T) {
	exec, _, mock := newMockExecutor(t)

	query := `SELECT name, price FROM product`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "price"}).
			AddRow([]byte("Denim Jacket"), int64(4999)))

	rows, err := exec.QueryMaps(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Denim Jacket", rows[0]["name"], "byte slices come back as strings")
	assert.Equal(t, int64(4999), rows[0]["price"])
}

func TestExecutor_ReleasesConnectionsOnEveryPath(t *testing.T) {
	exec, pool, mock := newMockExecutor(t)

	mock.ExpectQuery(regexp.QuoteMeta(countQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE product").WillReturnError(&mysqldrv.MySQLError{Number: 1064})
	mock.ExpectRollback()

	var counts []int
	require.NoError(t, exec.Select(context.Background(), &counts, countQuery))
	_, err := exec.Exec(context.Background(), `UPDATE product SET price = 0`)
	require.Error(t, err)

	assert.Zero(t, pool.Stats().InUse, "both paths must return their lease")
}
