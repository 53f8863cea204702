package mysql

import (
	"context"
	"database/sql"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

type sellerRow struct {
	ID    int64          `db:"seller_id"`
	Name  string         `db:"name"`
	Email sql.NullString `db:"email"`
	Phone sql.NullString `db:"phone"`
	City  sql.NullString `db:"city"`
}

func (s sellerRow) toDomain() admindomain.Seller {
	return admindomain.Seller{
		ID:    s.ID,
		Name:  s.Name,
		Email: s.Email.String,
		Phone: s.Phone.String,
		City:  s.City.String,
	}
}

// ListSellers lists merchants.
func (r *Repository) ListSellers(ctx context.Context) ([]admindomain.Seller, error) {
	var rows []sellerRow
	err := r.exec.Select(ctx, &rows,
		`SELECT seller_id, name, email, phone, city FROM sellers ORDER BY seller_id`)
	if err != nil {
		return nil, err
	}
	sellers := make([]admindomain.Seller, 0, len(rows))
	for _, row := range rows {
		sellers = append(sellers, row.toDomain())
	}
	return sellers, nil
}

// AddSeller inserts a merchant and returns its id.
func (r *Repository) AddSeller(ctx context.Context, seller admindomain.Seller) (int64, error) {
	result, err := r.exec.Exec(ctx,
		`INSERT INTO sellers (name, email, phone, city) VALUES (?, ?, ?, ?)`,
		seller.Name, seller.Email, seller.Phone, seller.City)
	if err != nil {
		return 0, err
	}
	return result.LastInsertID, nil
}

// UpdateSeller rewrites a merchant record.
func (r *Repository) UpdateSeller(ctx context.Context, seller admindomain.Seller) error {
	result, err := r.exec.Exec(ctx,
		`UPDATE sellers SET name = ?, email = ?, phone = ?, city = ? WHERE seller_id = ?`,
		seller.Name, seller.Email, seller.Phone, seller.City, seller.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return sharederrors.Newf(sharederrors.KindNotFound, "seller %d not found", seller.ID)
	}
	return nil
}

// DeleteSeller removes a merchant.
func (r *Repository) DeleteSeller(ctx context.Context, id int64) error {
	result, err := r.exec.Exec(ctx, `DELETE FROM sellers WHERE seller_id = ?`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return sharederrors.Newf(sharederrors.KindNotFound, "seller %d not found", id)
	}
	return nil
}
