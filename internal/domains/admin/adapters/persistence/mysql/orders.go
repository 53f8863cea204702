package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

const orderSummaryQuery = `
	SELECT o.order_id, o.customer_id, c.name AS customer_name, o.order_date,
	       o.total_amount, o.status, o.tracking_number
	FROM orders o
	JOIN customers c ON c.customer_id = o.customer_id`

type orderSummaryRow struct {
	OrderID      int64          `db:"order_id"`
	CustomerID   int64          `db:"customer_id"`
	CustomerName string         `db:"customer_name"`
	OrderDate    sql.NullTime   `db:"order_date"`
	Total        int64          `db:"total_amount"`
	Status       string         `db:"status"`
	Tracking     sql.NullString `db:"tracking_number"`
}

func (o orderSummaryRow) toDomain() admindomain.OrderSummary {
	return admindomain.OrderSummary{
		OrderID:        o.OrderID,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		OrderDate:      o.OrderDate.Time,
		Total:          storedomain.Cents(o.Total),
		Status:         storedomain.Status(o.Status),
		TrackingNumber: o.Tracking.String,
	}
}

// ListOrders lists orders joined with customer names, newest first,
// optionally narrowed to one status.
func (r *Repository) ListOrders(ctx context.Context, status storedomain.Status) ([]admindomain.OrderSummary, error) {
	query := orderSummaryQuery
	var args []any
	if status != "" {
		query += ` WHERE o.status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY o.order_id DESC`

	var rows []orderSummaryRow
	if err := r.exec.Select(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	orders := make([]admindomain.OrderSummary, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toDomain())
	}
	return orders, nil
}

// OrderDetails fetches one order with its customer name.
func (r *Repository) OrderDetails(ctx context.Context, orderID int64) (admindomain.OrderSummary, error) {
	var row orderSummaryRow
	err := r.exec.Get(ctx, &row, orderSummaryQuery+` WHERE o.order_id = ?`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return admindomain.OrderSummary{}, sharederrors.Newf(sharederrors.KindNotFound, "order %d not found", orderID)
	}
	if err != nil {
		return admindomain.OrderSummary{}, err
	}
	return row.toDomain(), nil
}

// UpdateOrderStatus reads the stored status, checks the transition, and
// writes the new one, all in one transaction. The audit trail row lands
// in the same commit.
func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID int64, to storedomain.Status) error {
	return r.exec.Transact(ctx, func(tx *sqlx.Tx) error {
		var current string
		err := tx.GetContext(ctx, &current, `SELECT status FROM orders WHERE order_id = ? FOR UPDATE`, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return sharederrors.Newf(sharederrors.KindNotFound, "order %d not found", orderID)
		}
		if err != nil {
			return err
		}
		if err := storedomain.CanTransition(storedomain.Status(current), to); err != nil {
			return sharederrors.Wrap(sharederrors.KindValidation, err.Error(), err).
				WithDetail("from", current).
				WithDetail("to", string(to))
		}
		if _, err := tx.ExecContext(ctx, `UPDATE orders SET status = ? WHERE order_id = ?`, string(to), orderID); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO activity_log (action, detail) VALUES (?, ?)`,
			"order_status_changed",
			fmt.Sprintf("order %d: %s -> %s", orderID, current, to)); err != nil {
			return fmt.Errorf("record activity: %w", err)
		}
		return nil
	})
}

// UpdateTracking sets an order's tracking number.
func (r *Repository) UpdateTracking(ctx context.Context, orderID int64, trackingNumber string) error {
	result, err := r.exec.Exec(ctx,
		`UPDATE orders SET tracking_number = ? WHERE order_id = ?`, trackingNumber, orderID)
	if err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return sharederrors.Newf(sharederrors.KindNotFound, "order %d not found", orderID)
	}
	return nil
}
