package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/grocery-shop/internal/core/service"
)

type Handlers struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Products  *ProductHandler
	Groceries *GroceryHandler
	Orders    *OrderHandler
}

func NewRouter(auth *service.AuthService, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/me", AuthRequired(auth), h.Auth.Me)

	users := api.Group("/users", AuthRequired(auth))
	users.GET("", AdminOnly(), h.Users.List)
	users.GET("/:id", h.Users.Get)

	products := api.Group("/products")
	products.GET("", h.Products.List)
	products.GET("/:id", h.Products.Get)
	products.GET("/admin/:adminId", h.Products.ListByAdmin)
	products.POST("", AuthRequired(auth), AdminOnly(), h.Products.Create)
	products.PUT("/:id", AuthRequired(auth), AdminOnly(), h.Products.Update)
	products.DELETE("/:id", AuthRequired(auth), AdminOnly(), h.Products.Delete)

	groceries := api.Group("/groceries")
	groceries.GET("", h.Groceries.List)
	groceries.GET("/:id", h.Groceries.Get)
	groceries.POST("", AuthRequired(auth), AdminOnly(), h.Groceries.Create)
	groceries.PATCH("/:id", AuthRequired(auth), AdminOnly(), h.Groceries.Update)
	groceries.PATCH("/:id/inventory", AuthRequired(auth), AdminOnly(), h.Groceries.SetInventory)
	groceries.DELETE("/:id", AuthRequired(auth), AdminOnly(), h.Groceries.Delete)

	orders := api.Group("/orders", AuthRequired(auth))
	orders.POST("", h.Orders.PlaceOrder)
	orders.GET("", h.Orders.MyOrders)

	return r
}
