// Package ports declares the capability-scoped persistence interfaces
// the back office is built on. Adapters implement them against the
// retrying executor; the application service composes them.
package ports

import (
	"context"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
)

// Catalog manages the product catalogue.
type Catalog interface {
	ListProducts(ctx context.Context, filter admindomain.ProductFilter) ([]storedomain.Product, error)
	GetProduct(ctx context.Context, id int64) (storedomain.Product, error)
	AddProduct(ctx context.Context, product storedomain.Product) (int64, error)
	UpdateProduct(ctx context.Context, product storedomain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	LowStock(ctx context.Context, threshold int) ([]storedomain.Product, error)
	BulkUpdateStock(ctx context.Context, updates []admindomain.StockUpdate) error
}

// Sellers manages merchant records.
type Sellers interface {
	ListSellers(ctx context.Context) ([]admindomain.Seller, error)
	AddSeller(ctx context.Context, seller admindomain.Seller) (int64, error)
	UpdateSeller(ctx context.Context, seller admindomain.Seller) error
	DeleteSeller(ctx context.Context, id int64) error
}

// Orders manages order lifecycle from the back office.
type Orders interface {
	ListOrders(ctx context.Context, status storedomain.Status) ([]admindomain.OrderSummary, error)
	OrderDetails(ctx context.Context, orderID int64) (admindomain.OrderSummary, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, to storedomain.Status) error
	UpdateTracking(ctx context.Context, orderID int64, trackingNumber string) error
}

// Customers manages shopper accounts.
type Customers interface {
	ListCustomers(ctx context.Context) ([]admindomain.Customer, error)
	SetCustomerActive(ctx context.Context, id int64, active bool) error
	CustomerSegments(ctx context.Context) ([]admindomain.SegmentSummary, error)
}

// Reviews reads product reviews.
type Reviews interface {
	ReviewsForProduct(ctx context.Context, productID int64) ([]storedomain.Review, error)
}

// Coupons manages discount codes.
type Coupons interface {
	ListCoupons(ctx context.Context) ([]admindomain.Coupon, error)
	AddCoupon(ctx context.Context, coupon admindomain.Coupon) (int64, error)
	DeactivateCoupon(ctx context.Context, id int64) error
}

// Settings manages store configuration rows.
type Settings interface {
	AllSettings(ctx context.Context) ([]admindomain.Setting, error)
	UpsertSetting(ctx context.Context, setting admindomain.Setting) error
}

// Dashboard reads the aggregates behind the landing screen.
type Dashboard interface {
	Stats(ctx context.Context) (admindomain.Stats, error)
	MonthlySales(ctx context.Context) ([]admindomain.MonthlySale, error)
	RevenueSummary(ctx context.Context) (admindomain.RevenueSummary, error)
	BestSellers(ctx context.Context, limit int) ([]admindomain.BestSeller, error)
	RecentNotifications(ctx context.Context, limit int) ([]admindomain.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	ActivityLog(ctx context.Context, limit int) ([]admindomain.ActivityEntry, error)
}

// AdHoc exposes the raw read-only query surface.
type AdHoc interface {
	Tables(ctx context.Context) ([]string, error)
	DescribeTable(ctx context.Context, table string) ([]admindomain.TableColumn, error)
	RunSelect(ctx context.Context, query string, args ...any) ([]map[string]any, error)
}

// Auth checks back-office credentials.
type Auth interface {
	FindAdmin(ctx context.Context, username, password string) (admindomain.Admin, error)
}

// Repository is the full persistence surface the back office needs.
type Repository interface {
	Catalog
	Sellers
	Orders
	Customers
	Reviews
	Coupons
	Settings
	Dashboard
	AdHoc
	Auth
}
