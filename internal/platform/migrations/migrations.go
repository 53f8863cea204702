// Package migrations applies the store schema. Money columns are BIGINT
// cents so totals come out of integer arithmetic, never floats.
package migrations

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS admin (
		admin_id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(64) NOT NULL UNIQUE,
		password VARCHAR(128) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sellers (
		seller_id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		email VARCHAR(128),
		phone VARCHAR(32),
		city VARCHAR(64)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		email VARCHAR(128),
		phone VARCHAR(32),
		segment VARCHAR(32) NOT NULL DEFAULT 'new',
		active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS product (
		product_id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		description TEXT,
		price BIGINT NOT NULL,
		category VARCHAR(64),
		quantityavailable INT NOT NULL DEFAULT 0,
		seller_id INT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_product_category (category)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id INT AUTO_INCREMENT PRIMARY KEY,
		customer_id INT NOT NULL,
		product_id INT,
		quantity INT,
		order_date DATE NOT NULL,
		total_amount BIGINT NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'Pending',
		tracking_number VARCHAR(64),
		INDEX idx_orders_customer (customer_id),
		INDEX idx_orders_product (product_id),
		INDEX idx_orders_status (status)
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		payment_id INT AUTO_INCREMENT PRIMARY KEY,
		order_id INT NOT NULL,
		payment_date DATE NOT NULL,
		payment_method VARCHAR(32) NOT NULL,
		amount BIGINT NOT NULL,
		INDEX idx_payments_order (order_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		review_id INT AUTO_INCREMENT PRIMARY KEY,
		customer_id INT NOT NULL,
		product_id INT NOT NULL,
		rating INT NOT NULL,
		comment TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_reviews_product (product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS coupons (
		coupon_id INT AUTO_INCREMENT PRIMARY KEY,
		code VARCHAR(32) NOT NULL UNIQUE,
		discount_percent INT NOT NULL,
		active TINYINT(1) NOT NULL DEFAULT 1,
		expires_at DATE
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		setting_key VARCHAR(64) PRIMARY KEY,
		setting_value VARCHAR(256) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		notification_id INT AUTO_INCREMENT PRIMARY KEY,
		message VARCHAR(256) NOT NULL,
		is_read TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS activity_log (
		activity_id INT AUTO_INCREMENT PRIMARY KEY,
		action VARCHAR(64) NOT NULL,
		detail VARCHAR(256),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Run applies the schema statements in order.
func Run(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
