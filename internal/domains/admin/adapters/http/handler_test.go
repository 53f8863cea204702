package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	"github.com/Ssshtea/DBMS-cp/internal/domains/admin/application"
	"github.com/Ssshtea/DBMS-cp/internal/domains/admin/ports"
	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

// stubRepo embeds the interface so each test only fills in what it
// exercises.
type stubRepo struct {
	ports.Repository
}

func (stubRepo) FindAdmin(_ context.Context, username, password string) (admindomain.Admin, error) {
	if username == "admin" && password == "secret" {
		return admindomain.Admin{ID: 1, Username: "admin"}, nil
	}
	return admindomain.Admin{}, sharederrors.New(sharederrors.KindUnauthorized, "invalid credentials")
}

func (stubRepo) ListOrders(_ context.Context, _ storedomain.Status) ([]admindomain.OrderSummary, error) {
	return []admindomain.OrderSummary{{
		OrderID:      7,
		CustomerName: "Ana Costa",
		OrderDate:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Total:        storedomain.Cents(14997),
		Status:       storedomain.StatusShipped,
	}}, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc := application.NewService(stubRepo{})
	NewHandler(svc, sharederrors.NewResponder()).Register(router.Group("/api/admin"))
	return router
}

func TestLogin(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"username":"admin","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"admin"`)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"username":"admin","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateOrderStatus_UnknownStatusIsBadRequest(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/7/status",
		strings.NewReader(`{"status":"Teleported"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"validation"`)
}

func TestRunSelect_RejectsWrites(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/query",
		strings.NewReader(`{"query":"DELETE FROM orders"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// lowStockRepo records the threshold the handler asked for.
type lowStockRepo struct {
	ports.Repository
	threshold int
}

func (r *lowStockRepo) LowStock(_ context.Context, threshold int) ([]storedomain.Product, error) {
	r.threshold = threshold
	return nil, nil
}

func TestLowStock_ConfiguredDefaultThreshold(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	repo := &lowStockRepo{}
	svc := application.NewService(repo)
	NewHandler(svc, sharederrors.NewResponder(),
		WithLowStockThreshold(3)).Register(router.Group("/api/admin"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/inventory/low-stock", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, repo.threshold)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/inventory/low-stock?threshold=12", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12, repo.threshold)
}

func TestExportOrdersCSV(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/reports/orders.csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "7,Ana Costa,2026-03-14,149.97,Shipped")
}
