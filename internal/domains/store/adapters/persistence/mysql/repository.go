// Package mysql persists the store aggregates through the retrying
// executor. The order placement here is the one multi-statement
// transaction in the system.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	"github.com/Ssshtea/DBMS-cp/internal/domains/store/ports"
	platformmysql "github.com/Ssshtea/DBMS-cp/internal/platform/mysql"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

const (
	stockQuery     = `SELECT price, quantityavailable FROM product WHERE product_id = ?`
	insertOrder    = `INSERT INTO orders (customer_id, product_id, quantity, order_date, total_amount, status) VALUES (?, ?, ?, CURDATE(), ?, ?)`
	insertPayment  = `INSERT INTO payments (order_id, payment_date, payment_method, amount) VALUES (?, CURDATE(), ?, ?)`
	decrementStock = `UPDATE product SET quantityavailable = quantityavailable - ? WHERE product_id = ?`
)

var _ ports.Repository = (*Repository)(nil)

// Repository runs store reads and the placement transaction.
type Repository struct {
	exec *platformmysql.Executor
	// strictStock adds row locking between the stock check and the
	// decrement. Off by default: the stock check and the decrement are
	// separate statements, so concurrent placements against the same
	// low-stock product can oversell. The flag exists so both behaviors
	// stay observable.
	strictStock bool
}

// RepositoryOption customizes the repository.
type RepositoryOption func(*Repository)

// WithStrictStock locks the product row for the duration of the
// placement transaction.
func WithStrictStock(strict bool) RepositoryOption {
	return func(r *Repository) { r.strictStock = strict }
}

// NewRepository wires the repository over the executor.
func NewRepository(exec *platformmysql.Executor, opts ...RepositoryOption) *Repository {
	r := &Repository{exec: exec}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PlaceOrder checks stock, inserts the order and its payment, and
// decrements the product quantity, all under one commit. Business
// failures roll back before any write; transient failures re-run the
// whole script, which is safe because nothing commits until the end.
func (r *Repository) PlaceOrder(ctx context.Context, customerID, productID int64, quantity int) (domain.Receipt, error) {
	var receipt domain.Receipt
	err := r.exec.Transact(ctx, func(tx *sqlx.Tx) error {
		query := stockQuery
		if r.strictStock {
			query += " FOR UPDATE"
		}
		var row struct {
			Price    int64 `db:"price"`
			Quantity int   `db:"quantityavailable"`
		}
		if err := tx.GetContext(ctx, &row, query, productID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return sharederrors.Newf(sharederrors.KindProductNotFound, "product %d not found", productID).
					WithDetail("productID", productID)
			}
			return err
		}
		if quantity > row.Quantity {
			return sharederrors.Newf(sharederrors.KindInsufficientStock, "only %d items available", row.Quantity).
				WithDetail("available", row.Quantity).
				WithDetail("requested", quantity)
		}

		total := domain.Cents(row.Price).Mul(quantity)
		res, err := tx.ExecContext(ctx, insertOrder, customerID, productID, quantity, int64(total), string(domain.StatusPending))
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		orderID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read order id: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertPayment, orderID, domain.DefaultPaymentMethod, int64(total)); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		if _, err := tx.ExecContext(ctx, decrementStock, quantity, productID); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		receipt = domain.Receipt{OrderID: orderID, Total: total}
		return nil
	})
	if err != nil {
		return domain.Receipt{}, err
	}
	return receipt, nil
}

type productRow struct {
	ID          int64          `db:"product_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Price       int64          `db:"price"`
	Category    sql.NullString `db:"category"`
	Quantity    int            `db:"quantityavailable"`
	SellerID    sql.NullInt64  `db:"seller_id"`
}

func (p productRow) toDomain() domain.Product {
	return domain.Product{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description.String,
		Price:             domain.Cents(p.Price),
		Category:          p.Category.String,
		QuantityAvailable: p.Quantity,
		SellerID:          p.SellerID.Int64,
	}
}

// GetProduct fetches one catalogue entry.
func (r *Repository) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var row productRow
	err := r.exec.Get(ctx, &row,
		`SELECT product_id, name, description, price, category, quantityavailable, seller_id FROM product WHERE product_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, sharederrors.Newf(sharederrors.KindProductNotFound, "product %d not found", id)
	}
	if err != nil {
		return domain.Product{}, err
	}
	return row.toDomain(), nil
}

// ListProducts returns the full catalogue.
func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	err := r.exec.Select(ctx, &rows,
		`SELECT product_id, name, description, price, category, quantityavailable, seller_id FROM product ORDER BY product_id`)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toDomain())
	}
	return products, nil
}

type orderRow struct {
	ID       int64          `db:"order_id"`
	Customer int64          `db:"customer_id"`
	Product  sql.NullInt64  `db:"product_id"`
	Quantity sql.NullInt64  `db:"quantity"`
	Date     sql.NullTime   `db:"order_date"`
	Total    int64          `db:"total_amount"`
	Status   string         `db:"status"`
	Tracking sql.NullString `db:"tracking_number"`
}

func (o orderRow) toDomain() domain.Order {
	return domain.Order{
		ID:             o.ID,
		CustomerID:     o.Customer,
		ProductID:      o.Product.Int64,
		Quantity:       int(o.Quantity.Int64),
		OrderDate:      o.Date.Time,
		Total:          domain.Cents(o.Total),
		Status:         domain.Status(o.Status),
		TrackingNumber: o.Tracking.String,
	}
}

// OrdersForCustomer returns a customer's order history.
func (r *Repository) OrdersForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	var rows []orderRow
	err := r.exec.Select(ctx, &rows,
		`SELECT order_id, customer_id, product_id, quantity, order_date, total_amount, status, tracking_number FROM orders WHERE customer_id = ? ORDER BY order_id`, customerID)
	if err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toDomain())
	}
	return orders, nil
}

// AddReview records a review for a product.
func (r *Repository) AddReview(ctx context.Context, customerID, productID int64, rating int, comment string) error {
	_, err := r.exec.Exec(ctx,
		`INSERT INTO reviews (customer_id, product_id, rating, comment) VALUES (?, ?, ?, ?)`,
		customerID, productID, rating, comment)
	return err
}
