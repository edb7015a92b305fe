package port

import (
	"context"

	"github.com/rl1809/grocery-shop/internal/core/domain"
)

type UserRepository interface {
	// CreateUser persists a new user and returns its generated id.
	CreateUser(ctx context.Context, user *domain.User) (int64, error)

	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) (int64, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByAdmin(ctx context.Context, adminID int64) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type GroceryRepository interface {
	CreateItem(ctx context.Context, item *domain.GroceryItem) (int64, error)
	GetItem(ctx context.Context, id int64) (*domain.GroceryItem, error)
	ListItems(ctx context.Context) ([]domain.GroceryItem, error)

	// UpdateItem changes name and price, leaving inventory untouched.
	UpdateItem(ctx context.Context, id int64, name string, price float64) error

	// SetInventory replaces the on-hand quantity outright.
	SetInventory(ctx context.Context, id int64, inventory int) error

	DeleteItem(ctx context.Context, id int64) error
}

type OrderRepository interface {
	// PlaceOrder runs the whole checkout in one transaction: locking reads of
	// every referenced item, the order row, its lines with captured unit
	// prices, and the conditional inventory decrements. On error nothing is
	// persisted. On success order.Lines is populated.
	PlaceOrder(ctx context.Context, order *domain.Order, lines []domain.CartLine) error

	ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}
