package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/grocery-shop/internal/core/domain"
)

func TestPlaceOrder_RequiresAuth(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/orders", "", gin.H{"items": []gin.H{{"itemId": 1, "quantity": 1}}})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceOrder_Success(t *testing.T) {
	app := newTestApp(t)
	_, token := app.registerUser(t, "buyer@example.com", domain.RoleCustomer)
	itemID := app.seedItem(t, 2.50, 10)

	w := app.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{{"itemId": itemID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		OrderID string             `json:"orderId"`
		Lines   []domain.OrderLine `json:"lines"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.OrderID)
	require.Len(t, resp.Lines, 1)
	require.Equal(t, 2.50, resp.Lines[0].UnitPrice)

	item, err := app.store.GetItem(context.Background(), itemID)
	require.NoError(t, err)
	require.Equal(t, 8, item.Inventory)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	app := newTestApp(t)
	_, token := app.registerUser(t, "buyer@example.com", domain.RoleCustomer)

	w := app.do(t, http.MethodPost, "/api/orders", token, gin.H{"items": []gin.H{}})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrder_InvalidQuantity(t *testing.T) {
	app := newTestApp(t)
	_, token := app.registerUser(t, "buyer@example.com", domain.RoleCustomer)
	itemID := app.seedItem(t, 2.50, 10)

	w := app.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{{"itemId": itemID, "quantity": -1}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	item, err := app.store.GetItem(context.Background(), itemID)
	require.NoError(t, err)
	require.Equal(t, 10, item.Inventory)
}

func TestPlaceOrder_ItemNotFound(t *testing.T) {
	app := newTestApp(t)
	_, token := app.registerUser(t, "buyer@example.com", domain.RoleCustomer)

	w := app.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{{"itemId": 404, "quantity": 1}},
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		ItemID int64 `json:"itemId"`
	}
	decodeBody(t, w, &resp)
	require.Equal(t, int64(404), resp.ItemID)
}

func TestPlaceOrder_InsufficientInventory(t *testing.T) {
	app := newTestApp(t)
	_, token := app.registerUser(t, "buyer@example.com", domain.RoleCustomer)
	itemID := app.seedItem(t, 2.50, 10)

	w := app.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{{"itemId": itemID, "quantity": 11}},
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		ItemID    int64 `json:"itemId"`
		Requested int   `json:"requested"`
		Available int   `json:"available"`
		Shortfall int   `json:"shortfall"`
	}
	decodeBody(t, w, &resp)
	require.Equal(t, itemID, resp.ItemID)
	require.Equal(t, 11, resp.Requested)
	require.Equal(t, 10, resp.Available)
	require.Equal(t, 1, resp.Shortfall)

	item, err := app.store.GetItem(context.Background(), itemID)
	require.NoError(t, err)
	require.Equal(t, 10, item.Inventory)
}

func TestPlaceOrder_DuplicateRequestID(t *testing.T) {
	app := newTestApp(t)
	_, token := app.registerUser(t, "buyer@example.com", domain.RoleCustomer)
	itemID := app.seedItem(t, 2.50, 10)

	body := gin.H{
		"request_id": "req-1",
		"items":      []gin.H{{"itemId": itemID, "quantity": 1}},
	}

	w := app.do(t, http.MethodPost, "/api/orders", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodPost, "/api/orders", token, body)
	require.Equal(t, http.StatusConflict, w.Code)

	item, err := app.store.GetItem(context.Background(), itemID)
	require.NoError(t, err)
	require.Equal(t, 9, item.Inventory)
}

func TestMyOrders(t *testing.T) {
	app := newTestApp(t)
	_, token := app.registerUser(t, "buyer@example.com", domain.RoleCustomer)
	_, otherToken := app.registerUser(t, "other@example.com", domain.RoleCustomer)
	itemID := app.seedItem(t, 2.50, 10)

	w := app.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{{"itemId": itemID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var mine []domain.Order
	decodeBody(t, w, &mine)
	require.Len(t, mine, 1)
	require.Len(t, mine[0].Lines, 1)

	w = app.do(t, http.MethodGet, "/api/orders", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var others []domain.Order
	decodeBody(t, w, &others)
	require.Empty(t, others)
}
