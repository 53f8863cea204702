package mysql

import (
	"context"
	"database/sql"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

// Stats returns the dashboard headline totals in one round trip.
func (r *Repository) Stats(ctx context.Context) (admindomain.Stats, error) {
	var row struct {
		Products  int           `db:"products"`
		Orders    int           `db:"orders"`
		Customers int           `db:"customers"`
		Revenue   sql.NullInt64 `db:"revenue"`
	}
	err := r.exec.Get(ctx, &row, `
		SELECT
			(SELECT COUNT(*) FROM product) AS products,
			(SELECT COUNT(*) FROM orders) AS orders,
			(SELECT COUNT(*) FROM customers) AS customers,
			(SELECT SUM(total_amount) FROM orders) AS revenue`)
	if err != nil {
		return admindomain.Stats{}, err
	}
	return admindomain.Stats{
		Products:  row.Products,
		Orders:    row.Orders,
		Customers: row.Customers,
		Revenue:   storedomain.Cents(row.Revenue.Int64),
	}, nil
}

// MonthlySales returns order volume and revenue per month, oldest
// first.
func (r *Repository) MonthlySales(ctx context.Context) ([]admindomain.MonthlySale, error) {
	var rows []struct {
		Month   string `db:"month"`
		Orders  int    `db:"orders"`
		Revenue int64  `db:"revenue"`
	}
	err := r.exec.Select(ctx, &rows, `
		SELECT DATE_FORMAT(order_date, '%Y-%m') AS month,
		       COUNT(*) AS orders,
		       SUM(total_amount) AS revenue
		FROM orders
		GROUP BY month
		ORDER BY month`)
	if err != nil {
		return nil, err
	}
	sales := make([]admindomain.MonthlySale, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, admindomain.MonthlySale{
			Month:   row.Month,
			Orders:  row.Orders,
			Revenue: storedomain.Cents(row.Revenue),
		})
	}
	return sales, nil
}

// RevenueSummary returns revenue for today, the last 7 days, and the
// last 30 days.
func (r *Repository) RevenueSummary(ctx context.Context) (admindomain.RevenueSummary, error) {
	var row struct {
		Today sql.NullInt64 `db:"today"`
		Week  sql.NullInt64 `db:"week"`
		Month sql.NullInt64 `db:"month"`
	}
	err := r.exec.Get(ctx, &row, `
		SELECT
			SUM(CASE WHEN order_date = CURDATE() THEN total_amount ELSE 0 END) AS today,
			SUM(CASE WHEN order_date >= DATE_SUB(CURDATE(), INTERVAL 7 DAY) THEN total_amount ELSE 0 END) AS week,
			SUM(CASE WHEN order_date >= DATE_SUB(CURDATE(), INTERVAL 30 DAY) THEN total_amount ELSE 0 END) AS month
		FROM orders`)
	if err != nil {
		return admindomain.RevenueSummary{}, err
	}
	return admindomain.RevenueSummary{
		Today: storedomain.Cents(row.Today.Int64),
		Week:  storedomain.Cents(row.Week.Int64),
		Month: storedomain.Cents(row.Month.Int64),
	}, nil
}

// BestSellers ranks products by units sold. Orders placed before the
// quantity column existed count as one unit each.
func (r *Repository) BestSellers(ctx context.Context, limit int) ([]admindomain.BestSeller, error) {
	var rows []struct {
		ProductID int64  `db:"product_id"`
		Name      string `db:"name"`
		UnitsSold int    `db:"units_sold"`
		Revenue   int64  `db:"revenue"`
	}
	err := r.exec.Select(ctx, &rows, `
		SELECT p.product_id, p.name,
		       SUM(COALESCE(o.quantity, 1)) AS units_sold,
		       SUM(o.total_amount) AS revenue
		FROM orders o
		JOIN product p ON p.product_id = o.product_id
		GROUP BY p.product_id, p.name
		ORDER BY units_sold DESC, p.product_id
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	sellers := make([]admindomain.BestSeller, 0, len(rows))
	for _, row := range rows {
		sellers = append(sellers, admindomain.BestSeller{
			ProductID: row.ProductID,
			Name:      row.Name,
			UnitsSold: row.UnitsSold,
			Revenue:   storedomain.Cents(row.Revenue),
		})
	}
	return sellers, nil
}

// RecentNotifications lists the newest notifications.
func (r *Repository) RecentNotifications(ctx context.Context, limit int) ([]admindomain.Notification, error) {
	var rows []struct {
		ID        int64        `db:"notification_id"`
		Message   string       `db:"message"`
		Read      bool         `db:"is_read"`
		CreatedAt sql.NullTime `db:"created_at"`
	}
	err := r.exec.Select(ctx, &rows, `
		SELECT notification_id, message, is_read, created_at
		FROM notifications
		ORDER BY notification_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	notifications := make([]admindomain.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, admindomain.Notification{
			ID:        row.ID,
			Message:   row.Message,
			Read:      row.Read,
			CreatedAt: row.CreatedAt.Time,
		})
	}
	return notifications, nil
}

// MarkNotificationRead flags one notification as seen.
func (r *Repository) MarkNotificationRead(ctx context.Context, id int64) error {
	result, err := r.exec.Exec(ctx,
		`UPDATE notifications SET is_read = 1 WHERE notification_id = ?`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return sharederrors.Newf(sharederrors.KindNotFound, "notification %d not found", id)
	}
	return nil
}

// ActivityLog lists the newest audit entries.
func (r *Repository) ActivityLog(ctx context.Context, limit int) ([]admindomain.ActivityEntry, error) {
	var rows []struct {
		ID        int64          `db:"activity_id"`
		Action    string         `db:"action"`
		Detail    sql.NullString `db:"detail"`
		CreatedAt sql.NullTime   `db:"created_at"`
	}
	err := r.exec.Select(ctx, &rows, `
		SELECT activity_id, action, detail, created_at
		FROM activity_log
		ORDER BY activity_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]admindomain.ActivityEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, admindomain.ActivityEntry{
			ID:        row.ID,
			Action:    row.Action,
			Detail:    row.Detail.String,
			CreatedAt: row.CreatedAt.Time,
		})
	}
	return entries, nil
}
