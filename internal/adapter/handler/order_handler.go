package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/grocery-shop/internal/core/domain"
	"github.com/rl1809/grocery-shop/internal/core/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

type placeOrderRequest struct {
	RequestID string            `json:"request_id"`
	Items     []domain.CartLine `json:"items" binding:"required"`
}

type placeOrderResponse struct {
	OrderID string             `json:"orderId"`
	Lines   []domain.OrderLine `json:"lines"`
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items array is required"})
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), userIDFrom(c), req.RequestID, req.Items)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, placeOrderResponse{OrderID: order.ID, Lines: order.Lines})
}

func (h *OrderHandler) writeOrderError(c *gin.Context, err error) {
	var notFound *domain.ItemNotFoundError
	var insufficient *domain.InsufficientInventoryError

	switch {
	case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate request"})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":  notFound.Error(),
			"itemId": notFound.ItemID,
		})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, gin.H{
			"error":     insufficient.Error(),
			"itemId":    insufficient.ItemID,
			"requested": insufficient.Requested,
			"available": insufficient.Available,
			"shortfall": insufficient.Shortfall(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.orders.OrdersByUser(c.Request.Context(), userIDFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}
