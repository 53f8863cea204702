package ports

import (
	"context"

	"github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
)

// Service exposes the customer-facing store use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, customerID, productID int64, quantity int) (domain.Receipt, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	OrdersForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	AddReview(ctx context.Context, customerID, productID int64, rating int, comment string) error
}
