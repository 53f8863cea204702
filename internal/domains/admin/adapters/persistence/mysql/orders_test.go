package mysql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	platformmysql "github.com/Ssshtea/DBMS-cp/internal/platform/mysql"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pool := platformmysql.NewPoolFromDB(sqlx.NewDb(db, "sqlmock"), nil)
	exec := platformmysql.NewExecutor(pool, platformmysql.WithPolicy(platformmysql.RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
		Multiplier:      2,
	}))
	return NewRepository(exec), mock
}

func TestUpdateOrderStatus_AdvancesAndLogs(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE order_id = ? FOR UPDATE`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Pending"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = ? WHERE order_id = ?`)).
		WithArgs("Approved", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO activity_log (action, detail) VALUES (?, ?)`)).
		WithArgs("order_status_changed", "order 7: Pending -> Approved").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.UpdateOrderStatus(context.Background(), 7, storedomain.StatusApproved)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatus_RegressionRollsBack(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE order_id = ? FOR UPDATE`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Delivered"))
	mock.ExpectRollback()

	err := repo.UpdateOrderStatus(context.Background(), 7, storedomain.StatusApproved)
	assert.Equal(t, sharederrors.KindValidation, sharederrors.KindOf(err))

	failure := sharederrors.AsFailure(err)
	assert.Equal(t, "Delivered", failure.Details["from"])
	assert.Equal(t, "Approved", failure.Details["to"])
	assert.NoError(t, mock.ExpectationsWereMet(), "no status write, no activity row")
}

func TestUpdateOrderStatus_UnknownOrder(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE order_id = ? FOR UPDATE`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	err := repo.UpdateOrderStatus(context.Background(), 99, storedomain.StatusApproved)
	assert.Equal(t, sharederrors.KindNotFound, sharederrors.KindOf(err))
}

func TestListProducts_AppliesFilters(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT .* FROM product WHERE name LIKE \? AND category = \? ORDER BY product_id`).
		WithArgs("%jacket%", "Jackets").
		WillReturnRows(sqlmock.NewRows([]string{
			"product_id", "name", "description", "price", "category",
			"quantityavailable", "seller_id", "created_at", "updated_at",
		}).AddRow(1, "Denim Jacket", "classic", 4999, "Jackets", 5, 3, time.Now(), time.Now()))

	products, err := repo.ListProducts(context.Background(), admindomain.ProductFilter{Search: "jacket", Category: "Jackets"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, storedomain.Cents(4999), products[0].Price)
}

func TestBulkUpdateStock_OneTransaction(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE product SET quantityavailable = ? WHERE product_id = ?`)).
		WithArgs(10, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE product SET quantityavailable = ? WHERE product_id = ?`)).
		WithArgs(0, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.BulkUpdateStock(context.Background(), []admindomain.StockUpdate{
		{ProductID: 1, Quantity: 10},
		{ProductID: 2, Quantity: 0},
	})
	assert.Equal(t, sharederrors.KindProductNotFound, sharederrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet(), "unknown product rolls the whole batch back")
}
