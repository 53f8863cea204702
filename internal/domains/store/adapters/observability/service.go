package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	storeports "github.com/Ssshtea/DBMS-cp/internal/domains/store/ports"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

const tracerName = "github.com/Ssshtea/DBMS-cp/internal/domains/store/adapters/observability/service"

// Service decorates the store service with tracing, logging, and metrics.
type Service struct {
	inner   storeports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core store service.
func New(inner storeports.Service, opts ...Option) storeports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, customerID, productID int64, quantity int) (storedomain.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.PlaceOrder",
		trace.WithAttributes(
			attribute.Int64("order.customer_id", customerID),
			attribute.Int64("order.product_id", productID),
			attribute.Int("order.quantity", quantity)))
	defer span.End()

	s.logInfo(ctx, "placing order",
		slog.Int64("customer.id", customerID),
		slog.Int64("product.id", productID),
		slog.Int("quantity", quantity))
	receipt, err := s.inner.PlaceOrder(ctx, customerID, productID, quantity)
	if err != nil {
		s.metrics.recordPlacementFailed(ctx, sharederrors.KindOf(err))
		return storedomain.Receipt{}, s.handleError(ctx, span, err, "failed to place order",
			slog.Int64("customer.id", customerID), slog.Int64("product.id", productID))
	}
	span.SetAttributes(attribute.Int64("order.id", receipt.OrderID))
	s.metrics.recordPlaced(ctx)
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", receipt.OrderID),
		slog.String("total", receipt.Total.String()))
	return receipt, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]storedomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.ListProducts")
	defer span.End()

	products, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("catalogue.size", len(products)))
	return products, nil
}

func (s *Service) OrdersForCustomer(ctx context.Context, customerID int64) ([]storedomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "StoreService.OrdersForCustomer",
		trace.WithAttributes(attribute.Int64("customer.id", customerID)))
	defer span.End()

	orders, err := s.inner.OrdersForCustomer(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load customer orders",
			slog.Int64("customer.id", customerID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}

func (s *Service) AddReview(ctx context.Context, customerID, productID int64, rating int, comment string) error {
	ctx, span := s.tracer.Start(ctx, "StoreService.AddReview",
		trace.WithAttributes(
			attribute.Int64("customer.id", customerID),
			attribute.Int64("product.id", productID),
			attribute.Int("review.rating", rating)))
	defer span.End()

	if err := s.inner.AddReview(ctx, customerID, productID, rating, comment); err != nil {
		return s.handleError(ctx, span, err, "failed to add review",
			slog.Int64("customer.id", customerID), slog.Int64("product.id", productID))
	}
	s.metrics.recordReview(ctx, rating)
	s.logInfo(ctx, "review added",
		slog.Int64("product.id", productID), slog.Int("rating", rating))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersPlaced     metric.Int64Counter
	placementsFailed metric.Int64Counter
	reviewsAdded     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("store.service.orders_placed",
		metric.WithDescription("Number of orders committed"))
	placementsFailed, _ := m.Int64Counter("store.service.placements_failed",
		metric.WithDescription("Number of order placements that failed, by failure kind"))
	reviewsAdded, _ := m.Int64Counter("store.service.reviews_added",
		metric.WithDescription("Number of product reviews recorded"))
	return serviceMetrics{ordersPlaced: ordersPlaced, placementsFailed: placementsFailed, reviewsAdded: reviewsAdded}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordPlacementFailed(ctx context.Context, kind sharederrors.Kind) {
	if m.placementsFailed != nil {
		m.placementsFailed.Add(ctx, 1, metric.WithAttributes(attribute.String("failure.kind", string(kind))))
	}
}

func (m serviceMetrics) recordReview(ctx context.Context, rating int) {
	if m.reviewsAdded != nil {
		m.reviewsAdded.Add(ctx, 1, metric.WithAttributes(attribute.Int("review.rating", rating)))
	}
}

var _ storeports.Service = (*Service)(nil)
