package mysql

import (
	"context"
	"database/sql"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

type couponRow struct {
	ID        int64        `db:"coupon_id"`
	Code      string       `db:"code"`
	Discount  int          `db:"discount_percent"`
	Active    bool         `db:"active"`
	ExpiresAt sql.NullTime `db:"expires_at"`
}

func (c couponRow) toDomain() admindomain.Coupon {
	return admindomain.Coupon{
		ID:        c.ID,
		Code:      c.Code,
		Discount:  c.Discount,
		Active:    c.Active,
		ExpiresAt: c.ExpiresAt.Time,
	}
}

// ListCoupons lists discount codes.
func (r *Repository) ListCoupons(ctx context.Context) ([]admindomain.Coupon, error) {
	var rows []couponRow
	err := r.exec.Select(ctx, &rows,
		`SELECT coupon_id, code, discount_percent, active, expires_at FROM coupons ORDER BY coupon_id`)
	if err != nil {
		return nil, err
	}
	coupons := make([]admindomain.Coupon, 0, len(rows))
	for _, row := range rows {
		coupons = append(coupons, row.toDomain())
	}
	return coupons, nil
}

// AddCoupon inserts a discount code.
func (r *Repository) AddCoupon(ctx context.Context, coupon admindomain.Coupon) (int64, error) {
	var expires any
	if !coupon.ExpiresAt.IsZero() {
		expires = coupon.ExpiresAt
	}
	result, err := r.exec.Exec(ctx,
		`INSERT INTO coupons (code, discount_percent, active, expires_at) VALUES (?, ?, 1, ?)`,
		coupon.Code, coupon.Discount, expires)
	if err != nil {
		return 0, err
	}
	return result.LastInsertID, nil
}

// DeactivateCoupon retires a discount code.
func (r *Repository) DeactivateCoupon(ctx context.Context, id int64) error {
	result, err := r.exec.Exec(ctx, `UPDATE coupons SET active = 0 WHERE coupon_id = ?`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return sharederrors.Newf(sharederrors.KindNotFound, "coupon %d not found", id)
	}
	return nil
}
