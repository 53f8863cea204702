// Package domain holds the back-office view of the store: sellers,
// customers, coupons, settings, and the dashboard aggregates.
package domain

import (
	"errors"
	"time"

	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
)

var (
	ErrInvalidSellerName  = errors.New("seller name must not be empty")
	ErrInvalidCouponCode  = errors.New("coupon code must not be empty")
	ErrInvalidDiscount    = errors.New("discount must be between 1 and 100 percent")
	ErrInvalidSettingName = errors.New("setting name must not be empty")
	ErrEmptyCredentials   = errors.New("username and password must not be empty")
)

// Admin is a back-office account.
type Admin struct {
	ID       int64
	Username string
}

// Seller is a merchant whose products the store carries.
type Seller struct {
	ID    int64
	Name  string
	Email string
	Phone string
	City  string
}

func (s Seller) Validate() error {
	if s.Name == "" {
		return ErrInvalidSellerName
	}
	return nil
}

// Customer is a shopper account as the back office sees it: profile
// plus order count and segment.
type Customer struct {
	ID         int64
	Name       string
	Email      string
	Phone      string
	Segment    string
	Active     bool
	OrderCount int
}

// SegmentSummary counts customers per marketing segment.
type SegmentSummary struct {
	Segment string
	Count   int
}

// Coupon is a percentage discount code.
type Coupon struct {
	ID        int64
	Code      string
	Discount  int
	ExpiresAt time.Time
	Active    bool
}

func (c Coupon) Validate() error {
	if c.Code == "" {
		return ErrInvalidCouponCode
	}
	if c.Discount < 1 || c.Discount > 100 {
		return ErrInvalidDiscount
	}
	return nil
}

// Setting is one key/value pair of store configuration.
type Setting struct {
	Name  string
	Value string
}

// Notification is one row the notifier worker writes for the dashboard.
type Notification struct {
	ID        int64
	Message   string
	Read      bool
	CreatedAt time.Time
}

// ActivityEntry records one back-office action for the audit trail.
type ActivityEntry struct {
	ID        int64
	Action    string
	Detail    string
	CreatedAt time.Time
}

// OrderSummary is an order joined with its customer's name, the shape
// the order management screens list.
type OrderSummary struct {
	OrderID        int64
	CustomerID     int64
	CustomerName   string
	OrderDate      time.Time
	Total          storedomain.Cents
	Status         storedomain.Status
	TrackingNumber string
}

// Stats carries the dashboard headline totals.
type Stats struct {
	Products  int
	Orders    int
	Customers int
	Revenue   storedomain.Cents
}

// MonthlySale is one month of order volume and revenue.
type MonthlySale struct {
	Month   string
	Orders  int
	Revenue storedomain.Cents
}

// RevenueSummary is revenue over the three dashboard windows.
type RevenueSummary struct {
	Today storedomain.Cents
	Week  storedomain.Cents
	Month storedomain.Cents
}

// BestSeller is one product ranked by units sold.
type BestSeller struct {
	ProductID int64
	Name      string
	UnitsSold int
	Revenue   storedomain.Cents
}

// ProductFilter narrows catalogue listings.
type ProductFilter struct {
	Search   string
	Category string
}

// StockUpdate sets one product's absolute stock level.
type StockUpdate struct {
	ProductID int64
	Quantity  int
}

// TableColumn describes one column of a store table for the ad-hoc
// browser.
type TableColumn struct {
	Name     string
	Type     string
	Nullable bool
	Key      string
}
