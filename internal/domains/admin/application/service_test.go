package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

type fakeAdminRepo struct {
	orders        []admindomain.OrderSummary
	statusUpdates []int64
	statusErrAt   int64
	selectQueries []string
}

func (f *fakeAdminRepo) ListProducts(_ context.Context, _ admindomain.ProductFilter) ([]storedomain.Product, error) {
	return nil, nil
}
func (f *fakeAdminRepo) GetProduct(_ context.Context, _ int64) (storedomain.Product, error) {
	return storedomain.Product{}, nil
}
func (f *fakeAdminRepo) AddProduct(_ context.Context, _ storedomain.Product) (int64, error) {
	return 1, nil
}
func (f *fakeAdminRepo) UpdateProduct(_ context.Context, _ storedomain.Product) error { return nil }
func (f *fakeAdminRepo) DeleteProduct(_ context.Context, _ int64) error              { return nil }
func (f *fakeAdminRepo) LowStock(_ context.Context, _ int) ([]storedomain.Product, error) {
	return nil, nil
}
func (f *fakeAdminRepo) BulkUpdateStock(_ context.Context, _ []admindomain.StockUpdate) error {
	return nil
}

func (f *fakeAdminRepo) ListSellers(_ context.Context) ([]admindomain.Seller, error) {
	return nil, nil
}
func (f *fakeAdminRepo) AddSeller(_ context.Context, _ admindomain.Seller) (int64, error) {
	return 1, nil
}
func (f *fakeAdminRepo) UpdateSeller(_ context.Context, _ admindomain.Seller) error { return nil }
func (f *fakeAdminRepo) DeleteSeller(_ context.Context, _ int64) error              { return nil }

func (f *fakeAdminRepo) ListOrders(_ context.Context, _ storedomain.Status) ([]admindomain.OrderSummary, error) {
	return f.orders, nil
}
func (f *fakeAdminRepo) OrderDetails(_ context.Context, _ int64) (admindomain.OrderSummary, error) {
	return admindomain.OrderSummary{}, nil
}
func (f *fakeAdminRepo) UpdateOrderStatus(_ context.Context, orderID int64, _ storedomain.Status) error {
	if orderID == f.statusErrAt {
		return sharederrors.New(sharederrors.KindValidation, "status can only move forward")
	}
	f.statusUpdates = append(f.statusUpdates, orderID)
	return nil
}
func (f *fakeAdminRepo) UpdateTracking(_ context.Context, _ int64, _ string) error { return nil }

func (f *fakeAdminRepo) ListCustomers(_ context.Context) ([]admindomain.Customer, error) {
	return nil, nil
}
func (f *fakeAdminRepo) SetCustomerActive(_ context.Context, _ int64, _ bool) error { return nil }
func (f *fakeAdminRepo) CustomerSegments(_ context.Context) ([]admindomain.SegmentSummary, error) {
	return nil, nil
}

func (f *fakeAdminRepo) ReviewsForProduct(_ context.Context, _ int64) ([]storedomain.Review, error) {
	return nil, nil
}

func (f *fakeAdminRepo) ListCoupons(_ context.Context) ([]admindomain.Coupon, error) {
	return nil, nil
}
func (f *fakeAdminRepo) AddCoupon(_ context.Context, _ admindomain.Coupon) (int64, error) {
	return 1, nil
}
func (f *fakeAdminRepo) DeactivateCoupon(_ context.Context, _ int64) error { return nil }

func (f *fakeAdminRepo) AllSettings(_ context.Context) ([]admindomain.Setting, error) {
	return nil, nil
}
func (f *fakeAdminRepo) UpsertSetting(_ context.Context, _ admindomain.Setting) error { return nil }

func (f *fakeAdminRepo) Stats(_ context.Context) (admindomain.Stats, error) {
	return admindomain.Stats{}, nil
}
func (f *fakeAdminRepo) MonthlySales(_ context.Context) ([]admindomain.MonthlySale, error) {
	return nil, nil
}
func (f *fakeAdminRepo) RevenueSummary(_ context.Context) (admindomain.RevenueSummary, error) {
	return admindomain.RevenueSummary{}, nil
}
func (f *fakeAdminRepo) BestSellers(_ context.Context, _ int) ([]admindomain.BestSeller, error) {
	return nil, nil
}
func (f *fakeAdminRepo) RecentNotifications(_ context.Context, _ int) ([]admindomain.Notification, error) {
	return nil, nil
}
func (f *fakeAdminRepo) MarkNotificationRead(_ context.Context, _ int64) error { return nil }
func (f *fakeAdminRepo) ActivityLog(_ context.Context, _ int) ([]admindomain.ActivityEntry, error) {
	return nil, nil
}

func (f *fakeAdminRepo) Tables(_ context.Context) ([]string, error) { return nil, nil }
func (f *fakeAdminRepo) DescribeTable(_ context.Context, _ string) ([]admindomain.TableColumn, error) {
	return nil, nil
}
func (f *fakeAdminRepo) RunSelect(_ context.Context, query string, _ ...any) ([]map[string]any, error) {
	f.selectQueries = append(f.selectQueries, query)
	return []map[string]any{{"n": int64(1)}}, nil
}

func (f *fakeAdminRepo) FindAdmin(_ context.Context, username, password string) (admindomain.Admin, error) {
	if username == "admin" && password == "admin" {
		return admindomain.Admin{ID: 1, Username: "admin"}, nil
	}
	return admindomain.Admin{}, sharederrors.New(sharederrors.KindUnauthorized, "invalid credentials")
}

func TestRunSelect_RejectsNonSelect(t *testing.T) {
	repo := &fakeAdminRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	cases := []string{
		"DELETE FROM orders",
		"UPDATE product SET price = 0",
		"DROP TABLE customers",
		"SELECT 1; DELETE FROM orders",
		"   ",
	}
	for _, query := range cases {
		_, err := svc.RunSelect(ctx, query)
		assert.Equal(t, sharederrors.KindValidation, sharederrors.KindOf(err), query)
	}
	assert.Empty(t, repo.selectQueries, "rejected statements must never reach the database")
}

func TestRunSelect_AcceptsSelectWithTrailingSemicolon(t *testing.T) {
	repo := &fakeAdminRepo{}
	svc := NewService(repo)

	rows, err := svc.RunSelect(context.Background(), "  select count(*) AS n FROM orders; ")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, repo.selectQueries, 1)
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	repo := &fakeAdminRepo{}
	svc := NewService(repo)

	err := svc.UpdateOrderStatus(context.Background(), 1, "Teleported")
	assert.Equal(t, sharederrors.KindValidation, sharederrors.KindOf(err))
	assert.Empty(t, repo.statusUpdates)
}

func TestBulkUpdateStatus_StopsAtFirstFailure(t *testing.T) {
	repo := &fakeAdminRepo{statusErrAt: 2}
	svc := NewService(repo)

	err := svc.BulkUpdateStatus(context.Background(), []int64{1, 2, 3}, storedomain.StatusApproved)
	require.Error(t, err)
	assert.Equal(t, []int64{1}, repo.statusUpdates, "no updates after the failing order")
	assert.EqualValues(t, int64(2), sharederrors.AsFailure(err).Details["orderID"])
}

func TestLogin(t *testing.T) {
	svc := NewService(&fakeAdminRepo{})
	ctx := context.Background()

	admin, err := svc.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)

	_, err = svc.Login(ctx, "admin", "wrong")
	assert.Equal(t, sharederrors.KindUnauthorized, sharederrors.KindOf(err))

	_, err = svc.Login(ctx, "", "")
	assert.Equal(t, sharederrors.KindValidation, sharederrors.KindOf(err))
}

func TestAddCoupon_Validation(t *testing.T) {
	svc := NewService(&fakeAdminRepo{})
	ctx := context.Background()

	_, err := svc.AddCoupon(ctx, admindomain.Coupon{Code: "", Discount: 10})
	assert.Equal(t, sharederrors.KindValidation, sharederrors.KindOf(err))

	_, err = svc.AddCoupon(ctx, admindomain.Coupon{Code: "SUMMER", Discount: 150})
	assert.Equal(t, sharederrors.KindValidation, sharederrors.KindOf(err))

	_, err = svc.AddCoupon(ctx, admindomain.Coupon{Code: "SUMMER", Discount: 15})
	assert.NoError(t, err)
}

func TestExportOrdersCSV(t *testing.T) {
	repo := &fakeAdminRepo{orders: []admindomain.OrderSummary{
		{
			OrderID:      7,
			CustomerName: "Ana Costa",
			OrderDate:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			Total:        storedomain.Cents(14997),
			Status:       storedomain.StatusShipped,
		},
	}}
	svc := NewService(repo)

	out, err := svc.ExportOrdersCSV(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t,
		"order_id,customer,date,total,status\n7,Ana Costa,2026-03-14,149.97,Shipped\n",
		string(out))
}
