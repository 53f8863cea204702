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

const productColumns = `product_id, name, description, price, category, quantityavailable, seller_id, created_at, updated_at`

type productRow struct {
	ID          int64          `db:"product_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Price       int64          `db:"price"`
	Category    sql.NullString `db:"category"`
	Quantity    int            `db:"quantityavailable"`
	SellerID    sql.NullInt64  `db:"seller_id"`
	CreatedAt   sql.NullTime   `db:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
}

func (p productRow) toDomain() storedomain.Product {
	return storedomain.Product{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description.String,
		Price:             storedomain.Cents(p.Price),
		Category:          p.Category.String,
		QuantityAvailable: p.Quantity,
		SellerID:          p.SellerID.Int64,
		CreatedAt:         p.CreatedAt.Time,
		UpdatedAt:         p.UpdatedAt.Time,
	}
}

// ListProducts lists the catalogue, narrowed by search term and
// category when given.
func (r *Repository) ListProducts(ctx context.Context, filter admindomain.ProductFilter) ([]storedomain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product`
	var (
		clauses []string
		args    []any
	)
	if filter.Search != "" {
		clauses = append(clauses, `name LIKE ?`)
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		clauses = append(clauses, `category = ?`)
		args = append(args, filter.Category)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY product_id"

	var rows []productRow
	if err := r.exec.Select(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	products := make([]storedomain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toDomain())
	}
	return products, nil
}

// GetProduct fetches one catalogue entry.
func (r *Repository) GetProduct(ctx context.Context, id int64) (storedomain.Product, error) {
	var row productRow
	err := r.exec.Get(ctx, &row, `SELECT `+productColumns+` FROM product WHERE product_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return storedomain.Product{}, sharederrors.Newf(sharederrors.KindProductNotFound, "product %d not found", id)
	}
	if err != nil {
		return storedomain.Product{}, err
	}
	return row.toDomain(), nil
}

// AddProduct inserts a catalogue entry and returns its id.
func (r *Repository) AddProduct(ctx context.Context, product storedomain.Product) (int64, error) {
	result, err := r.exec.Exec(ctx,
		`INSERT INTO product (name, description, price, category, quantityavailable, seller_id) VALUES (?, ?, ?, ?, ?, ?)`,
		product.Name, product.Description, int64(product.Price), product.Category,
		product.QuantityAvailable, nullableID(product.SellerID))
	if err != nil {
		return 0, err
	}
	return result.LastInsertID, nil
}

// UpdateProduct rewrites a catalogue entry.
func (r *Repository) UpdateProduct(ctx context.Context, product storedomain.Product) error {
	result, err := r.exec.Exec(ctx,
		`UPDATE product SET name = ?, description = ?, price = ?, category = ?, quantityavailable = ?, seller_id = ? WHERE product_id = ?`,
		product.Name, product.Description, int64(product.Price), product.Category,
		product.QuantityAvailable, nullableID(product.SellerID), product.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return sharederrors.Newf(sharederrors.KindProductNotFound, "product %d not found", product.ID)
	}
	return nil
}

// DeleteProduct removes a catalogue entry.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	result, err := r.exec.Exec(ctx, `DELETE FROM product WHERE product_id = ?`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return sharederrors.Newf(sharederrors.KindProductNotFound, "product %d not found", id)
	}
	return nil
}

// LowStock lists products at or below the alert threshold.
func (r *Repository) LowStock(ctx context.Context, threshold int) ([]storedomain.Product, error) {
	var rows []productRow
	err := r.exec.Select(ctx, &rows,
		`SELECT `+productColumns+` FROM product WHERE quantityavailable <= ? ORDER BY quantityavailable`, threshold)
	if err != nil {
		return nil, err
	}
	products := make([]storedomain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toDomain())
	}
	return products, nil
}

// BulkUpdateStock sets absolute stock levels inside one transaction, so
// a partial batch never lands.
func (r *Repository) BulkUpdateStock(ctx context.Context, updates []admindomain.StockUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.exec.Transact(ctx, func(tx *sqlx.Tx) error {
		for _, u := range updates {
			res, err := tx.ExecContext(ctx,
				`UPDATE product SET quantityavailable = ? WHERE product_id = ?`, u.Quantity, u.ProductID)
			if err != nil {
				return fmt.Errorf("update stock for product %d: %w", u.ProductID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return sharederrors.Newf(sharederrors.KindProductNotFound, "product %d not found", u.ProductID)
			}
		}
		return nil
	})
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
