package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/grocery-shop/internal/core/domain"
	"github.com/rl1809/grocery-shop/internal/core/service"
)

type GroceryHandler struct {
	groceries *service.GroceryService
}

type createGroceryRequest struct {
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Inventory int     `json:"inventory" binding:"gte=0"`
}

type updateGroceryRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

type setInventoryRequest struct {
	Inventory *int `json:"inventory" binding:"required,gte=0"`
}

func NewGroceryHandler(groceries *service.GroceryService) *GroceryHandler {
	return &GroceryHandler{groceries: groceries}
}

func (h *GroceryHandler) Create(c *gin.Context) {
	var req createGroceryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.groceries.Create(c.Request.Context(), req.Name, req.Price, req.Inventory)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *GroceryHandler) List(c *gin.Context) {
	items, err := h.groceries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if items == nil {
		items = []domain.GroceryItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *GroceryHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	item, err := h.groceries.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *GroceryHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	var req updateGroceryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.groceries.Update(c.Request.Context(), id, req.Name, req.Price); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item updated"})
}

func (h *GroceryHandler) SetInventory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	var req setInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.groceries.SetInventory(c.Request.Context(), id, *req.Inventory); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inventory updated"})
}

func (h *GroceryHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	if err := h.groceries.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

func (h *GroceryHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	case errors.Is(err, service.ErrInvalidPrice), errors.Is(err, service.ErrInvalidInventory):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// pathID parses the :id path parameter, writing a 400 response on failure.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, errors.New("invalid id")
	}
	return id, nil
}
