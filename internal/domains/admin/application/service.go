// Package application orchestrates the back-office use cases: catalogue
// and seller management, order lifecycle, dashboard aggregates, and the
// guarded ad-hoc query surface.
package application

import (
	"context"
	"log/slog"
	"strings"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	"github.com/Ssshtea/DBMS-cp/internal/domains/admin/ports"
	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

// Service is the back-office facade over the capability repositories.
type Service struct {
	repo   ports.Repository
	logger *slog.Logger
}

// Option customizes the service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService builds the admin service.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks back-office credentials. The stored credentials are
// compared as-is, matching how the admin table has always been used.
func (s *Service) Login(ctx context.Context, username, password string) (admindomain.Admin, error) {
	if username == "" || password == "" {
		return admindomain.Admin{}, sharederrors.Wrap(sharederrors.KindValidation,
			admindomain.ErrEmptyCredentials.Error(), admindomain.ErrEmptyCredentials)
	}
	admin, err := s.repo.FindAdmin(ctx, username, password)
	if err != nil {
		return admindomain.Admin{}, err
	}
	if s.logger != nil {
		s.logger.Info("admin logged in", slog.String("username", admin.Username))
	}
	return admin, nil
}

// ListProducts lists the catalogue with optional search and category
// filters.
func (s *Service) ListProducts(ctx context.Context, filter admindomain.ProductFilter) ([]storedomain.Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

// GetProduct fetches one catalogue entry.
func (s *Service) GetProduct(ctx context.Context, id int64) (storedomain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// AddProduct validates and inserts a catalogue entry.
func (s *Service) AddProduct(ctx context.Context, product storedomain.Product) (int64, error) {
	if err := product.Validate(); err != nil {
		return 0, sharederrors.Wrap(sharederrors.KindValidation, err.Error(), err)
	}
	return s.repo.AddProduct(ctx, product)
}

// UpdateProduct validates and updates a catalogue entry.
func (s *Service) UpdateProduct(ctx context.Context, product storedomain.Product) error {
	if err := product.Validate(); err != nil {
		return sharederrors.Wrap(sharederrors.KindValidation, err.Error(), err)
	}
	return s.repo.UpdateProduct(ctx, product)
}

// DeleteProduct removes a catalogue entry.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}

// LowStock lists products at or below the alert threshold.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]storedomain.Product, error) {
	if threshold < 0 {
		threshold = 0
	}
	return s.repo.LowStock(ctx, threshold)
}

// BulkUpdateStock sets absolute stock levels for several products.
func (s *Service) BulkUpdateStock(ctx context.Context, updates []admindomain.StockUpdate) error {
	for _, u := range updates {
		if u.Quantity < 0 {
			return sharederrors.Wrap(sharederrors.KindValidation,
				storedomain.ErrInvalidStock.Error(), storedomain.ErrInvalidStock)
		}
	}
	return s.repo.BulkUpdateStock(ctx, updates)
}

// ListSellers lists merchants.
func (s *Service) ListSellers(ctx context.Context) ([]admindomain.Seller, error) {
	return s.repo.ListSellers(ctx)
}

// AddSeller validates and inserts a merchant.
func (s *Service) AddSeller(ctx context.Context, seller admindomain.Seller) (int64, error) {
	if err := seller.Validate(); err != nil {
		return 0, sharederrors.Wrap(sharederrors.KindValidation, err.Error(), err)
	}
	return s.repo.AddSeller(ctx, seller)
}

// UpdateSeller validates and updates a merchant.
func (s *Service) UpdateSeller(ctx context.Context, seller admindomain.Seller) error {
	if err := seller.Validate(); err != nil {
		return sharederrors.Wrap(sharederrors.KindValidation, err.Error(), err)
	}
	return s.repo.UpdateSeller(ctx, seller)
}

// DeleteSeller removes a merchant.
func (s *Service) DeleteSeller(ctx context.Context, id int64) error {
	return s.repo.DeleteSeller(ctx, id)
}

// ListOrders lists orders, optionally filtered by status.
func (s *Service) ListOrders(ctx context.Context, status storedomain.Status) ([]admindomain.OrderSummary, error) {
	if status != "" && !storedomain.ValidStatus(status) {
		return nil, sharederrors.Wrap(sharederrors.KindValidation,
			storedomain.ErrInvalidStatus.Error(), storedomain.ErrInvalidStatus)
	}
	return s.repo.ListOrders(ctx, status)
}

// OrderDetails fetches one order with its customer name.
func (s *Service) OrderDetails(ctx context.Context, orderID int64) (admindomain.OrderSummary, error) {
	return s.repo.OrderDetails(ctx, orderID)
}

// UpdateOrderStatus advances one order through its lifecycle. The
// repository enforces the transition against the currently stored
// status inside the same transaction as the update.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int64, to storedomain.Status) error {
	if !storedomain.ValidStatus(to) {
		return sharederrors.Wrap(sharederrors.KindValidation,
			storedomain.ErrInvalidStatus.Error(), storedomain.ErrInvalidStatus)
	}
	if err := s.repo.UpdateOrderStatus(ctx, orderID, to); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("order status updated",
			slog.Int64("orderID", orderID), slog.String("status", string(to)))
	}
	return nil
}

// BulkUpdateStatus advances several orders, stopping at the first
// failure so a bad transition never hides behind a partial success.
func (s *Service) BulkUpdateStatus(ctx context.Context, orderIDs []int64, to storedomain.Status) error {
	if !storedomain.ValidStatus(to) {
		return sharederrors.Wrap(sharederrors.KindValidation,
			storedomain.ErrInvalidStatus.Error(), storedomain.ErrInvalidStatus)
	}
	for _, id := range orderIDs {
		if err := s.repo.UpdateOrderStatus(ctx, id, to); err != nil {
			return sharederrors.AsFailure(err).WithDetail("orderID", id)
		}
	}
	return nil
}

// UpdateTracking sets an order's tracking number.
func (s *Service) UpdateTracking(ctx context.Context, orderID int64, trackingNumber string) error {
	return s.repo.UpdateTracking(ctx, orderID, trackingNumber)
}

// ListCustomers lists shoppers with their order counts.
func (s *Service) ListCustomers(ctx context.Context) ([]admindomain.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// SetCustomerActive toggles a shopper account.
func (s *Service) SetCustomerActive(ctx context.Context, id int64, active bool) error {
	return s.repo.SetCustomerActive(ctx, id, active)
}

// CustomerSegments summarizes customers per segment.
func (s *Service) CustomerSegments(ctx context.Context) ([]admindomain.SegmentSummary, error) {
	return s.repo.CustomerSegments(ctx)
}

// ReviewsForProduct lists a product's reviews.
func (s *Service) ReviewsForProduct(ctx context.Context, productID int64) ([]storedomain.Review, error) {
	return s.repo.ReviewsForProduct(ctx, productID)
}

// ListCoupons lists discount codes.
func (s *Service) ListCoupons(ctx context.Context) ([]admindomain.Coupon, error) {
	return s.repo.ListCoupons(ctx)
}

// AddCoupon validates and inserts a discount code.
func (s *Service) AddCoupon(ctx context.Context, coupon admindomain.Coupon) (int64, error) {
	if err := coupon.Validate(); err != nil {
		return 0, sharederrors.Wrap(sharederrors.KindValidation, err.Error(), err)
	}
	return s.repo.AddCoupon(ctx, coupon)
}

// DeactivateCoupon retires a discount code.
func (s *Service) DeactivateCoupon(ctx context.Context, id int64) error {
	return s.repo.DeactivateCoupon(ctx, id)
}

// AllSettings lists store configuration.
func (s *Service) AllSettings(ctx context.Context) ([]admindomain.Setting, error) {
	return s.repo.AllSettings(ctx)
}

// UpsertSetting writes one configuration row.
func (s *Service) UpsertSetting(ctx context.Context, setting admindomain.Setting) error {
	if setting.Name == "" {
		return sharederrors.Wrap(sharederrors.KindValidation,
			admindomain.ErrInvalidSettingName.Error(), admindomain.ErrInvalidSettingName)
	}
	return s.repo.UpsertSetting(ctx, setting)
}

// Stats returns the dashboard headline totals.
func (s *Service) Stats(ctx context.Context) (admindomain.Stats, error) {
	return s.repo.Stats(ctx)
}

// MonthlySales returns order volume and revenue per month.
func (s *Service) MonthlySales(ctx context.Context) ([]admindomain.MonthlySale, error) {
	return s.repo.MonthlySales(ctx)
}

// RevenueSummary returns revenue for today, this week, and this month.
func (s *Service) RevenueSummary(ctx context.Context) (admindomain.RevenueSummary, error) {
	return s.repo.RevenueSummary(ctx)
}

// BestSellers ranks products by units sold.
func (s *Service) BestSellers(ctx context.Context, limit int) ([]admindomain.BestSeller, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.BestSellers(ctx, limit)
}

// RecentNotifications lists the newest dashboard notifications.
func (s *Service) RecentNotifications(ctx context.Context, limit int) ([]admindomain.Notification, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.RecentNotifications(ctx, limit)
}

// MarkNotificationRead flags one notification as seen.
func (s *Service) MarkNotificationRead(ctx context.Context, id int64) error {
	return s.repo.MarkNotificationRead(ctx, id)
}

// ActivityLog lists recent order status changes.
func (s *Service) ActivityLog(ctx context.Context, limit int) ([]admindomain.ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ActivityLog(ctx, limit)
}

// Tables lists the store tables for the ad-hoc browser.
func (s *Service) Tables(ctx context.Context) ([]string, error) {
	return s.repo.Tables(ctx)
}

// DescribeTable returns one table's column layout.
func (s *Service) DescribeTable(ctx context.Context, table string) ([]admindomain.TableColumn, error) {
	return s.repo.DescribeTable(ctx, table)
}

// RunSelect executes an ad-hoc statement after proving it is a single
// read. Anything that is not one SELECT is rejected before it reaches
// the database.
func (s *Service) RunSelect(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	if err := checkSelectOnly(query); err != nil {
		return nil, err
	}
	return s.repo.RunSelect(ctx, query, args...)
}

// checkSelectOnly accepts exactly one SELECT statement. A trailing
// semicolon is tolerated; embedded ones are not, which keeps stacked
// statements out.
func checkSelectOnly(query string) error {
	trimmed := strings.TrimSpace(query)
	trimmed = strings.TrimSuffix(trimmed, ";")
	if trimmed == "" {
		return sharederrors.New(sharederrors.KindValidation, "query must not be empty")
	}
	if strings.Contains(trimmed, ";") {
		return sharederrors.New(sharederrors.KindValidation, "only a single statement is allowed")
	}
	if !strings.HasPrefix(strings.ToUpper(trimmed), "SELECT") {
		return sharederrors.New(sharederrors.KindValidation, "only SELECT statements are allowed")
	}
	return nil
}
