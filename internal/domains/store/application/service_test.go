package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

type fakeStoreRepo struct {
	receipt    domain.Receipt
	placeErr   error
	placements int
}

func (f *fakeStoreRepo) PlaceOrder(_ context.Context, customerID, productID int64, quantity int) (domain.Receipt, error) {
	f.placements++
	if f.placeErr != nil {
		return domain.Receipt{}, f.placeErr
	}
	return f.receipt, nil
}

func (f *fakeStoreRepo) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	return domain.Product{}, sharederrors.New(sharederrors.KindProductNotFound, "no such product")
}

func (f *fakeStoreRepo) ListProducts(_ context.Context) ([]domain.Product, error) {
	return []domain.Product{{ID: 1, Name: "Denim Jacket", Price: 4999, QuantityAvailable: 5}}, nil
}

func (f *fakeStoreRepo) OrdersForCustomer(_ context.Context, customerID int64) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeStoreRepo) AddReview(_ context.Context, customerID, productID int64, rating int, comment string) error {
	return nil
}

type fakePublisher struct {
	events []domain.OrderPlaced
	err    error
}

func (f *fakePublisher) OrderPlaced(_ context.Context, event domain.OrderPlaced) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func TestPlaceOrder_PublishesEvent(t *testing.T) {
	repo := &fakeStoreRepo{receipt: domain.Receipt{OrderID: 7, Total: 14997}}
	pub := &fakePublisher{}
	svc := NewService(repo, WithEvents(pub))

	receipt, err := svc.PlaceOrder(context.Background(), 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), receipt.OrderID)
	assert.Equal(t, domain.Cents(14997), receipt.Total)

	require.Len(t, pub.events, 1)
	assert.Equal(t, int64(7), pub.events[0].OrderID)
	assert.Equal(t, 3, pub.events[0].Quantity)
	assert.NotEmpty(t, pub.events[0].EventID)
}

func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	repo := &fakeStoreRepo{receipt: domain.Receipt{OrderID: 7, Total: 100}}
	pub := &fakePublisher{err: assert.AnError}
	svc := NewService(repo, WithEvents(pub))

	_, err := svc.PlaceOrder(context.Background(), 1, 2, 1)
	require.NoError(t, err)
}

func TestPlaceOrder_InvalidInput(t *testing.T) {
	repo := &fakeStoreRepo{}
	svc := NewService(repo)

	_, err := svc.PlaceOrder(context.Background(), 0, 2, 1)
	assert.Equal(t, sharederrors.KindValidation, sharederrors.KindOf(err))

	_, err = svc.PlaceOrder(context.Background(), 1, 2, 0)
	assert.Equal(t, sharederrors.KindValidation, sharederrors.KindOf(err))

	assert.Zero(t, repo.placements, "no placement attempted for invalid input")
}

func TestPlaceOrder_BusinessFailurePassesThrough(t *testing.T) {
	repo := &fakeStoreRepo{
		placeErr: sharederrors.New(sharederrors.KindInsufficientStock, "only 2 items available").
			WithDetail("available", 2),
	}
	pub := &fakePublisher{}
	svc := NewService(repo, WithEvents(pub))

	_, err := svc.PlaceOrder(context.Background(), 1, 2, 3)
	assert.Equal(t, sharederrors.KindInsufficientStock, sharederrors.KindOf(err))
	assert.Empty(t, pub.events, "failed placement must not publish")
}

func TestAddReview_RatingBounds(t *testing.T) {
	svc := NewService(&fakeStoreRepo{})

	assert.NoError(t, svc.AddReview(context.Background(), 1, 1, 5, "great fit"))
	err := svc.AddReview(context.Background(), 1, 1, 6, "")
	assert.Equal(t, sharederrors.KindValidation, sharederrors.KindOf(err))
}
