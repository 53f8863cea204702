// Package http exposes the customer-facing store endpoints.
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	"github.com/Ssshtea/DBMS-cp/internal/domains/store/ports"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

// Handler binds the store service to gin routes.
type Handler struct {
	service   ports.Service
	responder *sharederrors.Responder
}

// NewHandler builds the handler.
func NewHandler(service ports.Service, responder *sharederrors.Responder) *Handler {
	return &Handler{service: service, responder: responder}
}

// Register mounts the store routes under group.
func (h *Handler) Register(group gin.IRouter) {
	group.GET("/products", h.listProducts)
	group.POST("/orders", h.placeOrder)
	group.GET("/customers/:id/orders", h.ordersForCustomer)
	group.POST("/reviews", h.addReview)
}

type productResponse struct {
	ID          int64  `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	PriceCents  int64  `json:"price_cents"`
	Category    string `json:"category,omitempty"`
	Quantity    int    `json:"quantity_available"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		PriceCents:  int64(p.Price),
		Category:    p.Category,
		Quantity:    p.QuantityAvailable,
	}
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	h.responder.OK(c, http.StatusOK, out)
}

type placeOrderRequest struct {
	CustomerID int64 `json:"customer_id" binding:"required,gt=0"`
	ProductID  int64 `json:"product_id" binding:"required,gt=0"`
	Quantity   int   `json:"quantity" binding:"required,gt=0"`
}

type receiptResponse struct {
	OrderID    int64  `json:"order_id"`
	Total      string `json:"total"`
	TotalCents int64  `json:"total_cents"`
}

func (h *Handler) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.Fail(c, sharederrors.Wrap(sharederrors.KindValidation, "invalid order payload", err))
		return
	}
	receipt, err := h.service.PlaceOrder(c.Request.Context(), req.CustomerID, req.ProductID, req.Quantity)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusCreated, receiptResponse{
		OrderID:    receipt.OrderID,
		Total:      receipt.Total.String(),
		TotalCents: int64(receipt.Total),
	})
}

type orderResponse struct {
	OrderID        int64  `json:"order_id"`
	OrderDate      string `json:"order_date"`
	Total          string `json:"total"`
	TotalCents     int64  `json:"total_cents"`
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

func (h *Handler) ordersForCustomer(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.responder.Fail(c, sharederrors.Wrap(sharederrors.KindValidation, "invalid customer id", err))
		return
	}
	orders, err := h.service.OrdersForCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.responder.Fail(c, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderResponse{
			OrderID:        o.ID,
			OrderDate:      o.OrderDate.Format("2006-01-02"),
			Total:          o.Total.String(),
			TotalCents:     int64(o.Total),
			Status:         string(o.Status),
			TrackingNumber: o.TrackingNumber,
		})
	}
	h.responder.OK(c, http.StatusOK, out)
}

type addReviewRequest struct {
	CustomerID int64  `json:"customer_id" binding:"required,gt=0"`
	ProductID  int64  `json:"product_id" binding:"required,gt=0"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

func (h *Handler) addReview(c *gin.Context) {
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.Fail(c, sharederrors.Wrap(sharederrors.KindValidation, "invalid review payload", err))
		return
	}
	if err := h.service.AddReview(c.Request.Context(), req.CustomerID, req.ProductID, req.Rating, req.Comment); err != nil {
		h.responder.Fail(c, err)
		return
	}
	h.responder.OK(c, http.StatusCreated, gin.H{"recorded": true})
}
