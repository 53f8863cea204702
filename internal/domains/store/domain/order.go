package domain

import (
	"errors"
	"time"
)

// Status enumerates order progression. Orders only move forward; there
// is no transition back to Pending.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusReturned  Status = "Returned"
)

// DefaultPaymentMethod is recorded when the caller does not name one.
const DefaultPaymentMethod = "Credit Card"

var (
	ErrInvalidCustomer  = errors.New("customer id must be greater than zero")
	ErrInvalidProduct   = errors.New("product id must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidStatus    = errors.New("order status is invalid")
	ErrStatusRegression = errors.New("order status cannot move backwards")
)

// statusRank orders the lifecycle for the monotonic-progress check.
var statusRank = map[Status]int{
	StatusPending:   0,
	StatusApproved:  1,
	StatusRejected:  1,
	StatusShipped:   2,
	StatusDelivered: 3,
	StatusReturned:  4,
}

// ValidStatus reports whether s names a known lifecycle state.
func ValidStatus(s Status) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another: strictly forward, never back to Pending.
func CanTransition(from, to Status) error {
	if !ValidStatus(from) || !ValidStatus(to) {
		return ErrInvalidStatus
	}
	if to == StatusPending || statusRank[to] <= statusRank[from] {
		return ErrStatusRegression
	}
	return nil
}

// Order records a purchase. Total is computed once at placement time
// from the product price and never recomputed.
type Order struct {
	ID             int64
	CustomerID     int64
	ProductID      int64
	Quantity       int
	OrderDate      time.Time
	Total          Cents
	Status         Status
	TrackingNumber string
}

// Payment settles exactly one order, for exactly the order's total.
type Payment struct {
	ID      int64
	OrderID int64
	Date    time.Time
	Method  string
	Amount  Cents
}

// Receipt is what a successful placement returns to the caller.
type Receipt struct {
	OrderID int64
	Total   Cents
}
