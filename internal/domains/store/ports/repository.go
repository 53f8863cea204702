package ports

import (
	"context"

	"github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
)

// Repository is the transactional persistence boundary for the store.
// PlaceOrder runs the whole placement inside one transaction: stock
// check, order row, payment row, stock decrement, all or nothing.
type Repository interface {
	PlaceOrder(ctx context.Context, customerID, productID int64, quantity int) (domain.Receipt, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	OrdersForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	AddReview(ctx context.Context, customerID, productID int64, rating int, comment string) error
}

// EventPublisher announces committed placements. Implementations must
// not make delivery a condition of the order succeeding.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, event domain.OrderPlaced) error
}
