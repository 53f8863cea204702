// Package http exposes the back-office API under /api/admin.
package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ssshtea/DBMS-cp/internal/domains/admin/application"
	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

// Handler binds the admin service to gin routes.
type Handler struct {
	service           *application.Service
	responder         *sharederrors.Responder
	lowStockThreshold int
}

// Option customizes the handler.
type Option func(*Handler)

// WithLowStockThreshold sets the stock level used when the low-stock
// listing is requested without an explicit threshold.
func WithLowStockThreshold(threshold int) Option {
	return func(h *Handler) {
		if threshold > 0 {
			h.lowStockThreshold = threshold
		}
	}
}

// NewHandler builds the handler.
func NewHandler(service *application.Service, responder *sharederrors.Responder, opts ...Option) *Handler {
	h := &Handler{service: service, responder: responder, lowStockThreshold: 5}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the admin routes under group. Collections that need a
// static sibling to an :id route live under their own prefix so the
// router never has to arbitrate between them.
func (h *Handler) Register(group gin.IRouter) {
	group.POST("/login", h.login)

	group.GET("/products", h.listProducts)
	group.POST("/products", h.addProduct)
	group.GET("/products/:id", h.getProduct)
	group.PUT("/products/:id", h.updateProduct)
	group.DELETE("/products/:id", h.deleteProduct)
	group.GET("/products/:id/reviews", h.reviewsForProduct)

	group.GET("/inventory/low-stock", h.lowStock)
	group.POST("/inventory/bulk-update", h.bulkUpdateStock)

	group.GET("/sellers", h.listSellers)
	group.POST("/sellers", h.addSeller)
	group.PUT("/sellers/:id", h.updateSeller)
	group.DELETE("/sellers/:id", h.deleteSeller)

	group.GET("/orders", h.listOrders)
	group.GET("/orders/:id", h.orderDetails)
	group.PUT("/orders/:id/status", h.updateOrderStatus)
	group.PUT("/orders/:id/tracking", h.updateTracking)
	group.POST("/orders/bulk-status", h.bulkUpdateStatus)
	group.GET("/reports/orders.csv", h.exportOrdersCSV)

	group.GET("/customers", h.listCustomers)
	group.GET("/customers/segments", h.customerSegments)
	group.PUT("/customers/:id/active", h.setCustomerActive)

	group.GET("/coupons", h.listCoupons)
	group.POST("/coupons", h.addCoupon)
	group.PUT("/coupons/:id/deactivate", h.deactivateCoupon)

	group.GET("/settings", h.allSettings)
	group.PUT("/settings", h.upsertSetting)

	group.GET("/dashboard/stats", h.stats)
	group.GET("/dashboard/monthly-sales", h.monthlySales)
	group.GET("/dashboard/revenue", h.revenueSummary)
	group.GET("/dashboard/best-sellers", h.bestSellers)
	group.GET("/notifications", h.recentNotifications)
	group.PUT("/notifications/:id/read", h.markNotificationRead)
	group.GET("/activity", h.activityLog)

	group.GET("/tables", h.tables)
	group.GET("/tables/:name", h.describeTable)
	group.POST("/query", h.runSelect)
}

func idParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (h *Handler) failBadID(c *gin.Context, err error) {
	h.responder.Fail(c, sharederrors.Wrap(sharederrors.KindValidation, "invalid id", err))
}

func (h *Handler) failBadBody(c *gin.Context, err error) {
	h.responder.Fail(c, sharederrors.Wrap(sharederrors.KindValidation, "invalid request payload", err))
}

// --- auth

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	admin, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"admin_id": admin.ID, "username": admin.Username})
}

// --- catalogue

type productPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity_available" binding:"gte=0"`
	SellerID    int64  `json:"seller_id"`
}

func (p productPayload) toDomain(id int64) storedomain.Product {
	return storedomain.Product{
		ID:                id,
		Name:              p.Name,
		Description:       p.Description,
		Price:             storedomain.Cents(p.PriceCents),
		Category:          p.Category,
		QuantityAvailable: p.Quantity,
		SellerID:          p.SellerID,
	}
}

type productResponse struct {
	ID          int64  `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	PriceCents  int64  `json:"price_cents"`
	Category    string `json:"category,omitempty"`
	Quantity    int    `json:"quantity_available"`
	SellerID    int64  `json:"seller_id,omitempty"`
}

func toProductResponse(p storedomain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		PriceCents:  int64(p.Price),
		Category:    p.Category,
		Quantity:    p.QuantityAvailable,
		SellerID:    p.SellerID,
	}
}

func toProductResponses(products []storedomain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func (h *Handler) listProducts(c *gin.Context) {
	filter := admindomain.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	products, err := h.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, toProductResponses(products))
}

func (h *Handler) getProduct(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.failBadID(c, err)
		return
	}
	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, toProductResponse(product))
}

func (h *Handler) addProduct(c *gin.Context) {
	var req productPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	id, err := h.service.AddProduct(c.Request.Context(), req.toDomain(0))
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusCreated, gin.H{"product_id": id})
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.failBadID(c, err)
		return
	}
	var req productPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	if err := h.service.UpdateProduct(c.Request.Context(), req.toDomain(id)); err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.failBadID(c, err)
		return
	}
	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) lowStock(c *gin.Context) {
	threshold, _ := strconv.Atoi(c.DefaultQuery("threshold", strconv.Itoa(h.lowStockThreshold)))
	products, err := h.service.LowStock(c.Request.Context(), threshold)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, toProductResponses(products))
}

type bulkStockRequest struct {
	Updates []struct {
		ProductID int64 `json:"product_id" binding:"required,gt=0"`
		Quantity  int   `json:"quantity"`
	} `json:"updates" binding:"required,min=1"`
}

func (h *Handler) bulkUpdateStock(c *gin.Context) {
	var req bulkStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	updates := make([]admindomain.StockUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, admindomain.StockUpdate{ProductID: u.ProductID, Quantity: u.Quantity})
	}
	if err := h.service.BulkUpdateStock(c.Request.Context(), updates); err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"updated": len(updates)})
}

// --- sellers

type sellerPayload struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	City  string `json:"city"`
}

func (h *Handler) listSellers(c *gin.Context) {
	sellers, err := h.service.ListSellers(c.Request.Context())
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, sellersToResponse(sellers))
}

type sellerResponse struct {
	ID    int64  `json:"seller_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	City  string `json:"city,omitempty"`
}

func sellersToResponse(sellers []admindomain.Seller) []sellerResponse {
	out := make([]sellerResponse, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, sellerResponse{ID: s.ID, Name: s.Name, Email: s.Email, Phone: s.Phone, City: s.City})
	}
	return out
}

func (h *Handler) addSeller(c *gin.Context) {
	var req sellerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	id, err := h.service.AddSeller(c.Request.Context(),
		admindomain.Seller{Name: req.Name, Email: req.Email, Phone: req.Phone, City: req.City})
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusCreated, gin.H{"seller_id": id})
}

func (h *Handler) updateSeller(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.failBadID(c, err)
		return
	}
	var req sellerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	err = h.service.UpdateSeller(c.Request.Context(),
		admindomain.Seller{ID: id, Name: req.Name, Email: req.Email, Phone: req.Phone, City: req.City})
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) deleteSeller(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.failBadID(c, err)
		return
	}
	if err := h.service.DeleteSeller(c.Request.Context(), id); err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"deleted": true})
}

// --- orders

type orderResponse struct {
	OrderID        int64  `json:"order_id"`
	CustomerID     int64  `json:"customer_id"`
	CustomerName   string `json:"customer_name"`
	OrderDate      string `json:"order_date"`
	Total          string `json:"total"`
	TotalCents     int64  `json:"total_cents"`
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

func toOrderResponse(o admindomain.OrderSummary) orderResponse {
	return orderResponse{
		OrderID:        o.OrderID,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		OrderDate:      o.OrderDate.Format("2006-01-02"),
		Total:          o.Total.String(),
		TotalCents:     int64(o.Total),
		Status:         string(o.Status),
		TrackingNumber: o.TrackingNumber,
	}
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), storedomain.Status(c.Query("status")))
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	h.responder.OK(c, http.StatusOK, out)
}

func (h *Handler) orderDetails(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.failBadID(c, err)
		return
	}
	order, err := h.service.OrderDetails(c.Request.Context(), id)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.failBadID(c, err)
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	if err := h.service.UpdateOrderStatus(c.Request.Context(), id, storedomain.Status(req.Status)); err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) updateTracking(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.failBadID(c, err)
		return
	}
	var req struct {
		TrackingNumber string `json:"tracking_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	if err := h.service.UpdateTracking(c.Request.Context(), id, req.TrackingNumber); err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) bulkUpdateStatus(c *gin.Context) {
	var req struct {
		OrderIDs []int64 `json:"order_ids" binding:"required,min=1"`
		Status   string  `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	if err := h.service.BulkUpdateStatus(c.Request.Context(), req.OrderIDs, storedomain.Status(req.Status)); err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"updated": len(req.OrderIDs)})
}

func (h *Handler) exportOrdersCSV(c *gin.Context) {
	out, err := h.service.ExportOrdersCSV(c.Request.Context(), storedomain.Status(c.Query("status")))
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	filename := "orders-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", out)
}

// --- customers

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	type customerResponse struct {
		ID         int64  `json:"customer_id"`
		Name       string `json:"name"`
		Email      string `json:"email,omitempty"`
		Phone      string `json:"phone,omitempty"`
		Segment    string `json:"segment"`
		Active     bool   `json:"active"`
		OrderCount int    `json:"order_count"`
	}
	out := make([]customerResponse, 0, len(customers))
	for _, cust := range customers {
		out = append(out, customerResponse{
			ID:         cust.ID,
			Name:       cust.Name,
			Email:      cust.Email,
			Phone:      cust.Phone,
			Segment:    cust.Segment,
			Active:     cust.Active,
			OrderCount: cust.OrderCount,
		})
	}
	h.responder.OK(c, http.StatusOK, out)
}

func (h *Handler) setCustomerActive(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.failBadID(c, err)
		return
	}
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	if err := h.service.SetCustomerActive(c.Request.Context(), id, *req.Active); err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) customerSegments(c *gin.Context) {
	segments, err := h.service.CustomerSegments(c.Request.Context())
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, segments)
}

// --- reviews

func (h *Handler) reviewsForProduct(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.failBadID(c, err)
		return
	}
	reviews, err := h.service.ReviewsForProduct(c.Request.Context(), id)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	type reviewResponse struct {
		ID         int64  `json:"review_id"`
		CustomerID int64  `json:"customer_id"`
		Rating     int    `json:"rating"`
		Comment    string `json:"comment,omitempty"`
		CreatedAt  string `json:"created_at,omitempty"`
	}
	out := make([]reviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		created := ""
		if !rv.CreatedAt.IsZero() {
			created = rv.CreatedAt.Format(time.RFC3339)
		}
		out = append(out, reviewResponse{
			ID:         rv.ID,
			CustomerID: rv.CustomerID,
			Rating:     rv.Rating,
			Comment:    rv.Comment,
			CreatedAt:  created,
		})
	}
	h.responder.OK(c, http.StatusOK, out)
}

// --- coupons

func (h *Handler) listCoupons(c *gin.Context) {
	coupons, err := h.service.ListCoupons(c.Request.Context())
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	type couponResponse struct {
		ID        int64  `json:"coupon_id"`
		Code      string `json:"code"`
		Discount  int    `json:"discount_percent"`
		Active    bool   `json:"active"`
		ExpiresAt string `json:"expires_at,omitempty"`
	}
	out := make([]couponResponse, 0, len(coupons))
	for _, cp := range coupons {
		expires := ""
		if !cp.ExpiresAt.IsZero() {
			expires = cp.ExpiresAt.Format("2006-01-02")
		}
		out = append(out, couponResponse{
			ID:        cp.ID,
			Code:      cp.Code,
			Discount:  cp.Discount,
			Active:    cp.Active,
			ExpiresAt: expires,
		})
	}
	h.responder.OK(c, http.StatusOK, out)
}

func (h *Handler) addCoupon(c *gin.Context) {
	var req struct {
		Code      string `json:"code" binding:"required"`
		Discount  int    `json:"discount_percent" binding:"required"`
		ExpiresAt string `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	coupon := admindomain.Coupon{Code: req.Code, Discount: req.Discount}
	if req.ExpiresAt != "" {
		expires, err := time.Parse("2006-01-02", req.ExpiresAt)
		if err != nil {
			h.failBadBody(c, err)
			return
		}
		coupon.ExpiresAt = expires
	}
	id, err := h.service.AddCoupon(c.Request.Context(), coupon)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusCreated, gin.H{"coupon_id": id})
}

func (h *Handler) deactivateCoupon(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.failBadID(c, err)
		return
	}
	if err := h.service.DeactivateCoupon(c.Request.Context(), id); err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"deactivated": true})
}

// --- settings

func (h *Handler) allSettings(c *gin.Context) {
	settings, err := h.service.AllSettings(c.Request.Context())
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Name] = s.Value
	}
	h.responder.OK(c, http.StatusOK, out)
}

func (h *Handler) upsertSetting(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	if err := h.service.UpsertSetting(c.Request.Context(), admindomain.Setting{Name: req.Name, Value: req.Value}); err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"saved": true})
}

// --- dashboard

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{
		"total_products":  stats.Products,
		"total_orders":    stats.Orders,
		"total_customers": stats.Customers,
		"total_revenue":   stats.Revenue.String(),
		"revenue_cents":   int64(stats.Revenue),
	})
}

func (h *Handler) monthlySales(c *gin.Context) {
	sales, err := h.service.MonthlySales(c.Request.Context())
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	type monthResponse struct {
		Month        string `json:"month"`
		Orders       int    `json:"orders"`
		Revenue      string `json:"revenue"`
		RevenueCents int64  `json:"revenue_cents"`
	}
	out := make([]monthResponse, 0, len(sales))
	for _, m := range sales {
		out = append(out, monthResponse{
			Month:        m.Month,
			Orders:       m.Orders,
			Revenue:      m.Revenue.String(),
			RevenueCents: int64(m.Revenue),
		})
	}
	h.responder.OK(c, http.StatusOK, out)
}

func (h *Handler) revenueSummary(c *gin.Context) {
	summary, err := h.service.RevenueSummary(c.Request.Context())
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{
		"today": summary.Today.String(),
		"week":  summary.Week.String(),
		"month": summary.Month.String(),
	})
}

func (h *Handler) bestSellers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	best, err := h.service.BestSellers(c.Request.Context(), limit)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	type bestSellerResponse struct {
		ProductID int64  `json:"product_id"`
		Name      string `json:"name"`
		UnitsSold int    `json:"units_sold"`
		Revenue   string `json:"revenue"`
	}
	out := make([]bestSellerResponse, 0, len(best))
	for _, b := range best {
		out = append(out, bestSellerResponse{
			ProductID: b.ProductID,
			Name:      b.Name,
			UnitsSold: b.UnitsSold,
			Revenue:   b.Revenue.String(),
		})
	}
	h.responder.OK(c, http.StatusOK, out)
}

func (h *Handler) recentNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	notifications, err := h.service.RecentNotifications(c.Request.Context(), limit)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	type notificationResponse struct {
		ID        int64  `json:"notification_id"`
		Message   string `json:"message"`
		Read      bool   `json:"read"`
		CreatedAt string `json:"created_at,omitempty"`
	}
	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		created := ""
		if !n.CreatedAt.IsZero() {
			created = n.CreatedAt.Format(time.RFC3339)
		}
		out = append(out, notificationResponse{ID: n.ID, Message: n.Message, Read: n.Read, CreatedAt: created})
	}
	h.responder.OK(c, http.StatusOK, out)
}

func (h *Handler) markNotificationRead(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.failBadID(c, err)
		return
	}
	if err := h.service.MarkNotificationRead(c.Request.Context(), id); err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"read": true})
}

func (h *Handler) activityLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	entries, err := h.service.ActivityLog(c.Request.Context(), limit)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	type activityResponse struct {
		ID        int64  `json:"activity_id"`
		Action    string `json:"action"`
		Detail    string `json:"detail,omitempty"`
		CreatedAt string `json:"created_at,omitempty"`
	}
	out := make([]activityResponse, 0, len(entries))
	for _, e := range entries {
		created := ""
		if !e.CreatedAt.IsZero() {
			created = e.CreatedAt.Format(time.RFC3339)
		}
		out = append(out, activityResponse{ID: e.ID, Action: e.Action, Detail: e.Detail, CreatedAt: created})
	}
	h.responder.OK(c, http.StatusOK, out)
}

// --- ad-hoc

func (h *Handler) tables(c *gin.Context) {
	tables, err := h.service.Tables(c.Request.Context())
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, tables)
}

func (h *Handler) describeTable(c *gin.Context) {
	columns, err := h.service.DescribeTable(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, columns)
}

func (h *Handler) runSelect(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBadBody(c, err)
		return
	}
	rows, err := h.service.RunSelect(c.Request.Context(), req.Query)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}
