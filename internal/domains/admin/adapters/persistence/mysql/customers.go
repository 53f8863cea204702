package mysql

import (
	"context"
	"database/sql"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

type customerRow struct {
	ID         int64          `db:"customer_id"`
	Name       string         `db:"name"`
	Email      sql.NullString `db:"email"`
	Phone      sql.NullString `db:"phone"`
	Segment    string         `db:"segment"`
	Active     bool           `db:"active"`
	OrderCount int            `db:"order_count"`
}

func (c customerRow) toDomain() admindomain.Customer {
	return admindomain.Customer{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email.String,
		Phone:      c.Phone.String,
		Segment:    c.Segment,
		Active:     c.Active,
		OrderCount: c.OrderCount,
	}
}

// ListCustomers lists shoppers with their order counts.
func (r *Repository) ListCustomers(ctx context.Context) ([]admindomain.Customer, error) {
	var rows []customerRow
	err := r.exec.Select(ctx, &rows, `
		SELECT c.customer_id, c.name, c.email, c.phone, c.segment, c.active,
		       COUNT(o.order_id) AS order_count
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.customer_id
		GROUP BY c.customer_id, c.name, c.email, c.phone, c.segment, c.active
		ORDER BY c.customer_id`)
	if err != nil {
		return nil, err
	}
	customers := make([]admindomain.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, row.toDomain())
	}
	return customers, nil
}

// SetCustomerActive toggles a shopper account.
func (r *Repository) SetCustomerActive(ctx context.Context, id int64, active bool) error {
	result, err := r.exec.Exec(ctx,
		`UPDATE customers SET active = ? WHERE customer_id = ?`, active, id)
	if err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return sharederrors.Newf(sharederrors.KindNotFound, "customer %d not found", id)
	}
	return nil
}

// CustomerSegments counts customers per segment.
func (r *Repository) CustomerSegments(ctx context.Context) ([]admindomain.SegmentSummary, error) {
	var rows []struct {
		Segment string `db:"segment"`
		Count   int    `db:"count"`
	}
	err := r.exec.Select(ctx, &rows, `
		SELECT segment, COUNT(*) AS count
		FROM customers
		GROUP BY segment
		ORDER BY count DESC`)
	if err != nil {
		return nil, err
	}
	segments := make([]admindomain.SegmentSummary, 0, len(rows))
	for _, row := range rows {
		segments = append(segments, admindomain.SegmentSummary{Segment: row.Segment, Count: row.Count})
	}
	return segments, nil
}
