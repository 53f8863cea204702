package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	"github.com/Ssshtea/DBMS-cp/internal/domains/store/ports"
)

// Service orchestrates the customer-facing store use cases.
type Service struct {
	repo   ports.Repository
	events ports.EventPublisher
	logger *slog.Logger
}

// Option customizes the service.
type Option func(*Service)

// WithEvents wires an event publisher for committed placements.
func WithEvents(events ports.EventPublisher) Option {
	return func(s *Service) { s.events = events }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService builds the store service.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder validates the request, runs the placement transaction, and
// announces the committed order. Publish failures are logged, never
// surfaced: the order already exists.
func (s *Service) PlaceOrder(ctx context.Context, customerID, productID int64, quantity int) (domain.Receipt, error) {
	if customerID <= 0 {
		return domain.Receipt{}, mapError(domain.ErrInvalidCustomer)
	}
	if productID <= 0 {
		return domain.Receipt{}, mapError(domain.ErrInvalidProduct)
	}
	if quantity <= 0 {
		return domain.Receipt{}, mapError(domain.ErrInvalidQuantity)
	}

	receipt, err := s.repo.PlaceOrder(ctx, customerID, productID, quantity)
	if err != nil {
		return domain.Receipt{}, err
	}

	if s.events != nil {
		event := domain.OrderPlaced{
			EventID:    uuid.NewString(),
			OrderID:    receipt.OrderID,
			CustomerID: customerID,
			ProductID:  productID,
			Quantity:   quantity,
			Total:      receipt.Total,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.events.OrderPlaced(ctx, event); err != nil && s.logger != nil {
			s.logger.Warn("failed to publish order placed event",
				slog.Int64("orderID", receipt.OrderID),
				slog.String("error", err.Error()))
		}
	}
	return receipt, nil
}

// ListProducts returns the catalogue.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

// OrdersForCustomer returns a customer's order history.
func (s *Service) OrdersForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	if customerID <= 0 {
		return nil, mapError(domain.ErrInvalidCustomer)
	}
	return s.repo.OrdersForCustomer(ctx, customerID)
}

// AddReview records a product review.
func (s *Service) AddReview(ctx context.Context, customerID, productID int64, rating int, comment string) error {
	if customerID <= 0 {
		return mapError(domain.ErrInvalidCustomer)
	}
	if productID <= 0 {
		return mapError(domain.ErrInvalidProduct)
	}
	if rating < 1 || rating > 5 {
		return mapError(errInvalidRating)
	}
	return s.repo.AddReview(ctx, customerID, productID, rating, comment)
}

var _ ports.Service = (*Service)(nil)
